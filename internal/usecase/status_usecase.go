package usecase

import (
	"context"
	"fmt"
	"time"

	"portfolio-api/internal/domain/project"
	"portfolio-api/internal/domain/skill"
)

// Pinger is any backend that can report reachability.
type Pinger interface {
	Ping(ctx context.Context) error
}

// ClientCounter reports connected change-stream clients.
type ClientCounter interface {
	ClientCount() int
}

// Status is the operational snapshot served at /status.
type Status struct {
	Projects        int       `json:"projects"`
	Skills          int       `json:"skills"`
	DatabaseHealthy bool      `json:"database_healthy"`
	CacheHealthy    bool      `json:"cache_healthy"`
	StreamClients   int       `json:"stream_clients"`
	ServerTime      time.Time `json:"server_time"`
}

type StatusUsecase interface {
	GetStatus(ctx context.Context) (Status, error)
}

type StatusReporter struct {
	projects project.Repository
	skills   skill.Repository
	db       Pinger
	cache    Pinger
	stream   ClientCounter
	now      func() time.Time
}

// NewStatusUsecase accepts nil db, cache and stream; absent backends are
// reported unhealthy.
func NewStatusUsecase(projects project.Repository, skills skill.Repository, db, cache Pinger, stream ClientCounter) *StatusReporter {
	return &StatusReporter{projects: projects, skills: skills, db: db, cache: cache, stream: stream, now: time.Now}
}

func (u *StatusReporter) GetStatus(ctx context.Context) (Status, error) {
	_, projects, err := u.projects.List(ctx, project.ListFilter{Limit: 1})
	if err != nil {
		return Status{}, fmt.Errorf("count projects: %w", err)
	}
	skills, err := u.skills.Count(ctx)
	if err != nil {
		return Status{}, fmt.Errorf("count skills: %w", err)
	}

	st := Status{
		Projects:        projects,
		Skills:          skills,
		DatabaseHealthy: ping(ctx, u.db),
		CacheHealthy:    ping(ctx, u.cache),
		ServerTime:      u.now().UTC(),
	}
	if u.stream != nil {
		st.StreamClients = u.stream.ClientCount()
	}
	return st, nil
}

func ping(ctx context.Context, p Pinger) bool {
	if p == nil {
		return false
	}
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return p.Ping(pingCtx) == nil
}
