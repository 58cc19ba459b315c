package application

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	EventUserRegistered = "user.registered"
	EventUserLoggedIn   = "user.logged_in"
	EventUserLoggedOut  = "user.logged_out"
	EventBlogCreated    = "blog.created"
	EventBlogUpdated    = "blog.updated"
	EventBlogDeleted    = "blog.deleted"
	EventArticleCreated = "article.created"
	EventArticleUpdated = "article.updated"
	EventArticleDeleted = "article.deleted"
)

// Event is the JSON body put on the events queue.
type Event struct {
	Type       string         `json:"type"`
	Username   string         `json:"username"`
	Email      string         `json:"email,omitempty"`
	ResourceID string         `json:"resource_id,omitempty"`
	Data       map[string]any `json:"data,omitempty"`
	OccurredAt time.Time      `json:"occurred_at"`
}

// emitter publishes events without ever failing the caller.
type emitter struct {
	pub    EventPublisher
	logger *logrus.Logger
}

func (e emitter) emit(ctx context.Context, ev Event) {
	if e.pub == nil {
		return
	}
	ev.OccurredAt = time.Now().UTC()
	if err := e.pub.PublishJSON(ctx, ev); err != nil && e.logger != nil {
		e.logger.WithError(err).WithField("event", ev.Type).Warn("publish event failed")
	}
}
