// Package events delivers adoption workflow events to structured logs.
package events

import (
	"context"
	"io"
	"log/slog"

	"github.com/Apurer/go-gin-adoption-server/internal/domains/adoptions/domain"
	"github.com/Apurer/go-gin-adoption-server/internal/domains/adoptions/ports"
)

// LogPublisher writes one log record per event.
type LogPublisher struct {
	logger *slog.Logger
}

func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &LogPublisher{logger: logger}
}

func (p *LogPublisher) Publish(ctx context.Context, event domain.Event) error {
	attrs := []slog.Attr{
		slog.String("event", event.EventName()),
		slog.Time("occurred_at", event.OccurredAt()),
	}
	switch e := event.(type) {
	case domain.AdoptionRequested:
		attrs = append(attrs, slog.Int64("adoption_id", e.AdoptionID), slog.Int64("user_id", e.UserID), slog.Int64("pet_id", e.PetID))
	case domain.AdoptionApproved:
		attrs = append(attrs, slog.Int64("adoption_id", e.AdoptionID), slog.Int64("pet_id", e.PetID))
	case domain.AdoptionRejected:
		attrs = append(attrs, slog.Int64("adoption_id", e.AdoptionID), slog.Int64("pet_id", e.PetID))
	case domain.AdoptionCancelled:
		attrs = append(attrs,
			slog.Int64("adoption_id", e.AdoptionID),
			slog.Int64("pet_id", e.PetID),
			slog.String("previous_status", string(e.PreviousStatus)),
		)
	}
	p.logger.LogAttrs(ctx, slog.LevelInfo, "adoption event", attrs...)
	return nil
}

var _ ports.EventPublisher = (*LogPublisher)(nil)
