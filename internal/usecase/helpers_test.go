package usecase

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"testing"
	"time"

	"portfolio-api/internal/domain/profile"
	"portfolio-api/internal/domain/user"
	"portfolio-api/internal/repository/memory"

	"github.com/stretchr/testify/require"
)

type mapCache struct {
	mu      sync.Mutex
	data    map[string][]byte
	gets    int
	deletes []string
}

func newMapCache() *mapCache {
	return &mapCache{data: map[string][]byte{}}
}

func (c *mapCache) GetJSON(_ context.Context, key string, out any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gets++
	b, ok := c.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, out)
}

func (c *mapCache) SetJSON(_ context.Context, key string, value any, _ time.Duration) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = b
	return nil
}

func (c *mapCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.deletes = append(c.deletes, key)
	delete(c.data, key)
	return nil
}

func (c *mapCache) DeleteByPattern(_ context.Context, pattern string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.deletes = append(c.deletes, pattern)
	prefix := strings.TrimSuffix(pattern, "*")
	for k := range c.data {
		if strings.HasPrefix(k, prefix) {
			delete(c.data, k)
		}
	}
	return nil
}

func (c *mapCache) has(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.data[key]
	return ok
}

type event struct {
	resource string
	action   string
	id       int64
}

type recordingNotifier struct {
	mu     sync.Mutex
	events []event
}

func (n *recordingNotifier) Notify(resource, action string, id int64) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, event{resource, action, id})
}

func (n *recordingNotifier) last() event {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.events) == 0 {
		return event{}
	}
	return n.events[len(n.events)-1]
}

// seedUser creates a user that owns a profile and returns both ids.
func seedUser(t *testing.T, store *memory.Store, username string) (int64, int64) {
	t.Helper()
	u, p, err := store.Users().CreateWithProfile(context.Background(), username, "hash", profile.Fields{
		Name:  username,
		Email: username + "@example.com",
	})
	require.NoError(t, err)
	return u.ID, p.ID
}

func seedBareUser(t *testing.T, store *memory.Store, username string) user.User {
	t.Helper()
	u, err := store.Users().Create(context.Background(), username, "hash")
	require.NoError(t, err)
	return u
}
