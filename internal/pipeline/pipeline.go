package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/couchcryptid/volcano-explorer/internal/domain"
	"github.com/couchcryptid/volcano-explorer/internal/observability"
)

// Extractor reads the raw dataset from its source.
type Extractor interface {
	Extract(ctx context.Context) (domain.RawTable, error)
	Name() string
}

// TableSink receives each successfully built table.
type TableSink interface {
	Replace(table *domain.Table)
}

// Publisher writes normalized records to a downstream consumer.
type Publisher interface {
	PublishBatch(ctx context.Context, volcanoes []domain.Volcano, loadedAt time.Time) error
}

// Pipeline orchestrates the extract-normalize-load cycle.
type Pipeline struct {
	extractor Extractor
	sink      TableSink
	publisher Publisher
	logger    *slog.Logger
	metrics   *observability.Metrics
	batchSize int
}

// New creates a Pipeline. Pass a nil publisher to disable publishing.
func New(e Extractor, sink TableSink, pub Publisher, logger *slog.Logger, metrics *observability.Metrics, batchSize int) *Pipeline {
	if batchSize < 1 {
		batchSize = 1
	}
	return &Pipeline{
		extractor: e,
		sink:      sink,
		publisher: pub,
		logger:    logger,
		metrics:   metrics,
		batchSize: batchSize,
	}
}

// Run loads the dataset once and hands the table to the sink. On error the
// sink is left untouched. Publishing failures are logged and counted but do
// not fail the load.
func (p *Pipeline) Run(ctx context.Context) error {
	start := time.Now()

	table, err := p.load(ctx)
	if err != nil {
		p.metrics.DatasetLoads.WithLabelValues("error").Inc()
		return err
	}

	p.sink.Replace(table)
	p.metrics.DatasetLoads.WithLabelValues("success").Inc()
	p.metrics.DatasetRows.Set(float64(table.Len()))
	p.metrics.DatasetLoadDuration.Observe(time.Since(start).Seconds())

	p.publish(ctx, table)
	return nil
}

func (p *Pipeline) load(ctx context.Context) (*domain.Table, error) {
	raw, err := p.extractor.Extract(ctx)
	if err != nil {
		return nil, fmt.Errorf("extract %s: %w", p.extractor.Name(), err)
	}

	volcanoes, err := normalize(raw, p.logger, p.metrics)
	if err != nil {
		return nil, fmt.Errorf("normalize %s: %w", p.extractor.Name(), err)
	}

	table := domain.NewTable(p.extractor.Name(), volcanoes)
	p.logger.Info("dataset loaded",
		"source", table.Source(),
		"rows", table.Len(),
		"loaded_at", table.LoadedAt(),
	)
	return table, nil
}

// publish writes the table in batches of batchSize, stopping at the first
// failed batch.
func (p *Pipeline) publish(ctx context.Context, table *domain.Table) {
	if p.publisher == nil {
		return
	}

	volcanoes := table.Volcanoes()
	published := 0
	for start := 0; start < len(volcanoes); start += p.batchSize {
		end := min(start+p.batchSize, len(volcanoes))
		if err := p.publisher.PublishBatch(ctx, volcanoes[start:end], table.LoadedAt()); err != nil {
			p.metrics.PublishErrors.Inc()
			p.logger.Error("publish batch failed",
				"error", err,
				"offset", start,
				"batch_size", end-start,
				"published", published,
			)
			return
		}
		published += end - start
		p.metrics.RecordsPublished.Add(float64(end - start))
	}
	p.logger.Info("dataset published", "records", published)
}
