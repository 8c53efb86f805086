//go:build integration

package integration_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"net"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tckafka "github.com/testcontainers/testcontainers-go/modules/kafka"

	"github.com/couchcryptid/volcano-explorer/internal/adapter/kafka"
	"github.com/couchcryptid/volcano-explorer/internal/config"
	"github.com/couchcryptid/volcano-explorer/internal/dataset"
	"github.com/couchcryptid/volcano-explorer/internal/domain"
	"github.com/couchcryptid/volcano-explorer/internal/observability"
	"github.com/couchcryptid/volcano-explorer/internal/pipeline"
)

const testTopic = "test-volcano-records"

func startKafka(ctx context.Context, t *testing.T) string {
	t.Helper()

	container, err := tckafka.Run(ctx, "confluentinc/confluent-local:7.5.0", tckafka.WithClusterID("volcano-test"))
	testcontainers.CleanupContainer(t, container)
	require.NoError(t, err, "start kafka container")

	brokers, err := container.Brokers(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, brokers)
	return brokers[0]
}

func createTopic(t *testing.T, broker, topic string) {
	t.Helper()

	conn, err := kafkago.Dial("tcp", broker)
	require.NoError(t, err)
	defer conn.Close()

	controller, err := conn.Controller()
	require.NoError(t, err)

	ctrl, err := kafkago.Dial("tcp", net.JoinHostPort(controller.Host, strconv.Itoa(controller.Port)))
	require.NoError(t, err)
	defer ctrl.Close()

	require.NoError(t, ctrl.CreateTopics(kafkago.TopicConfig{
		Topic:             topic,
		NumPartitions:     1,
		ReplicationFactor: 1,
	}))
}

// TestPipelinePublishesDataset loads the CSV fixture through the pipeline
// and reads every record back from the topic.
func TestPipelinePublishesDataset(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	broker := startKafka(ctx, t)
	createTopic(t, broker, testTopic)

	cfg := &config.Config{KafkaBrokers: []string{broker}, KafkaTopic: testTopic, BatchSize: 4}
	writer := kafka.NewWriter(cfg, slog.Default())
	defer writer.Close()

	store := dataset.NewStore()
	source := dataset.NewFileSource(filepath.Join("..", "dataset", "testdata", "volcanoes.csv"), "")
	p := pipeline.New(source, store, writer, slog.Default(), observability.NewMetricsForTesting(), cfg.BatchSize)

	require.NoError(t, p.Run(ctx))

	snap, ok := store.Current()
	require.True(t, ok)
	want := snap.Table.Volcanoes()

	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:   []string{broker},
		Topic:     testTopic,
		Partition: 0,
		MinBytes:  1,
		MaxBytes:  10e6,
	})
	defer reader.Close()

	got := make(map[string]domain.Volcano, len(want))
	for range want {
		readCtx, readCancel := context.WithTimeout(ctx, 30*time.Second)
		msg, err := reader.ReadMessage(readCtx)
		readCancel()
		require.NoError(t, err, "read from topic")

		var v domain.Volcano
		require.NoError(t, json.Unmarshal(msg.Value, &v))
		got[string(msg.Key)] = v
	}

	require.Len(t, got, len(want))
	for _, v := range want {
		assert.Equal(t, v, got[v.Key()])
	}
}
