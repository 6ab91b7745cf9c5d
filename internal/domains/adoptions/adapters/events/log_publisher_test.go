package events

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/go-gin-adoption-server/internal/domains/adoptions/domain"
)

func TestLogPublisherWritesEventFields(t *testing.T) {
	var buf bytes.Buffer
	publisher := NewLogPublisher(slog.New(slog.NewJSONHandler(&buf, nil)))

	err := publisher.Publish(context.Background(), domain.AdoptionCancelled{
		BaseEvent:      domain.BaseEvent{Timestamp: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)},
		AdoptionID:     7,
		PetID:          3,
		PreviousStatus: domain.StatusApproved,
	})
	require.NoError(t, err)

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "adoptions.adoption.cancelled", record["event"])
	assert.Equal(t, float64(7), record["adoption_id"])
	assert.Equal(t, "Approved", record["previous_status"])
}
