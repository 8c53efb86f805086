package kafka

import (
	"context"
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/volcano-explorer/internal/config"
	"github.com/couchcryptid/volcano-explorer/internal/domain"
)

func TestSerializeToMessage(t *testing.T) {
	loadedAt := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	elevation := 1486.0
	year := 1991
	v := domain.Volcano{
		Number:       "273083",
		Name:         "Pinatubo",
		Region:       "Luzon",
		Type:         "Stratovolcano",
		Elevation:    &elevation,
		EruptionYear: &year,
	}

	msg, err := serializeToMessage(v, loadedAt)
	require.NoError(t, err)

	assert.Equal(t, []byte("273083"), msg.Key)
	require.Len(t, msg.Headers, 2)
	assert.Equal(t, "region", msg.Headers[0].Key)
	assert.Equal(t, []byte("Luzon"), msg.Headers[0].Value)
	assert.Equal(t, "loaded_at", msg.Headers[1].Key)
	assert.Equal(t, []byte("2025-03-01T09:00:00Z"), msg.Headers[1].Value)

	var decoded domain.Volcano
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, v, decoded)
	assert.Contains(t, string(msg.Value), `"tectonic_setting":null`)
}

func TestSerializeToMessage_KeyFallsBackToName(t *testing.T) {
	msg, err := serializeToMessage(domain.Volcano{Name: "Etna"}, time.Now())
	require.NoError(t, err)
	assert.Equal(t, []byte("Etna"), msg.Key)
}

func TestPublishBatch_Empty(t *testing.T) {
	w := NewWriter(&config.Config{KafkaBrokers: []string{"localhost:1"}, KafkaTopic: "t"}, slog.Default())
	defer w.Close()

	require.NoError(t, w.PublishBatch(context.Background(), nil, time.Now()))
}
