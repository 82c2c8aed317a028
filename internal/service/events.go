package service

import (
	"context"
	"time"

	"github.com/Skotchmaster/furnishing_catalog/internal/logging"
)

const (
	TopicProducts   = "product_events"
	TopicCategories = "category_events"
	TopicEnquiries  = "enquiry_events"
)

type Event struct {
	Type string    `json:"type"`
	ID   string    `json:"id"`
	At   time.Time `json:"at"`
	Data any       `json:"data,omitempty"`
}

const publishTimeout = 5 * time.Second

// publish is best effort: failures are logged and never reach the caller.
func publish(ctx context.Context, pub EventPublisher, topic, typ, id string, data any) {
	if pub == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	ev := Event{Type: typ, ID: id, At: time.Now().UTC(), Data: data}
	if err := pub.PublishEvent(ctx, topic, id, ev); err != nil {
		logging.FromContext(ctx).Error("publish_event_failed", "topic", topic, "type", typ, "id", id, "error", err)
	}
}
