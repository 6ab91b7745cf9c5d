package ports

import (
	"context"

	"github.com/Apurer/go-gin-adoption-server/internal/domains/adoptions/domain"
)

// EventPublisher receives workflow events once their transaction has committed.
type EventPublisher interface {
	Publish(ctx context.Context, event domain.Event) error
}

// NoopEventPublisher drops every event.
var NoopEventPublisher EventPublisher = noopEventPublisher{}

type noopEventPublisher struct{}

func (noopEventPublisher) Publish(context.Context, domain.Event) error { return nil }
