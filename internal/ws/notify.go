package ws

import (
	"encoding/json"
	"time"

	"go.uber.org/zap"
)

const EventPortfolioUpdated = "portfolio_updated"

type ChangeEvent struct {
	Type      string `json:"type"`
	Resource  string `json:"resource"`
	Action    string `json:"action"`
	ID        int64  `json:"id,omitempty"`
	Timestamp string `json:"timestamp"`
}

// Notifier publishes committed mutations to the hub.
type Notifier struct {
	hub    *Hub
	logger *zap.Logger
	now    func() time.Time
}

func NewNotifier(hub *Hub, logger *zap.Logger) *Notifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Notifier{hub: hub, logger: logger, now: time.Now}
}

func (n *Notifier) Notify(resource, action string, id int64) {
	if n == nil || n.hub == nil {
		return
	}

	b, err := json.Marshal(ChangeEvent{
		Type:      EventPortfolioUpdated,
		Resource:  resource,
		Action:    action,
		ID:        id,
		Timestamp: n.now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		n.logger.Warn("encode change event", zap.Error(err))
		return
	}
	n.hub.Broadcast(b)
}
