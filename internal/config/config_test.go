package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "data/volcanoes.xlsx", cfg.DatasetPath)
	assert.Empty(t, cfg.DatasetSheet)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, 10, cfg.TopN)
	assert.Equal(t, 20, cfg.HistogramBins)
	assert.Equal(t, "Mount", cfg.NameSubstring)
	assert.False(t, cfg.KafkaEnabled)
	assert.Empty(t, cfg.KafkaBrokers)
	assert.Equal(t, "volcano-records", cfg.KafkaTopic)
	assert.Equal(t, 50, cfg.BatchSize)
}

func TestLoad_CustomEnv(t *testing.T) {
	t.Setenv("DATASET_PATH", "/data/gvp.csv")
	t.Setenv("DATASET_SHEET", "Holocene")
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("SHUTDOWN_TIMEOUT", "30s")
	t.Setenv("TOP_N", "5")
	t.Setenv("HISTOGRAM_BINS", "40")
	t.Setenv("NAME_SUBSTRING", "Volc")
	t.Setenv("KAFKA_BROKERS", "broker1:9092,broker2:9092")
	t.Setenv("KAFKA_TOPIC", "gvp")
	t.Setenv("BATCH_SIZE", "100")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/data/gvp.csv", cfg.DatasetPath)
	assert.Equal(t, "Holocene", cfg.DatasetSheet)
	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, 5, cfg.TopN)
	assert.Equal(t, 40, cfg.HistogramBins)
	assert.Equal(t, "Volc", cfg.NameSubstring)
	assert.True(t, cfg.KafkaEnabled)
	assert.Equal(t, []string{"broker1:9092", "broker2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "gvp", cfg.KafkaTopic)
	assert.Equal(t, 100, cfg.BatchSize)
}

func TestLoad_InvalidShutdownTimeout(t *testing.T) {
	t.Setenv("SHUTDOWN_TIMEOUT", "not-a-duration")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SHUTDOWN_TIMEOUT")
}

func TestLoad_InvalidBatchSize(t *testing.T) {
	t.Setenv("BATCH_SIZE", "0")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "BATCH_SIZE")
}

func TestLoad_InvalidTopN(t *testing.T) {
	for _, v := range []string{"0", "101", "ten"} {
		t.Setenv("TOP_N", v)
		_, err := Load()
		require.Error(t, err, "TOP_N=%s", v)
		assert.Contains(t, err.Error(), "TOP_N")
	}
}

func TestLoad_InvalidHistogramBins(t *testing.T) {
	t.Setenv("HISTOGRAM_BINS", "-3")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HISTOGRAM_BINS")
}

func TestLoad_BlankDatasetPath(t *testing.T) {
	t.Setenv("DATASET_PATH", "   ")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATASET_PATH")
}
