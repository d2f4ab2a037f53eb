package blog

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/panjf2000/ants/v2"
	"go.opentelemetry.io/otel/attribute"

	"github.com/tripweaver-ai/tripweaver/log"
	"github.com/tripweaver-ai/tripweaver/telemetry"
)

// ErrRecordNotFound reports a broken join between the fetch and analysis
// stages: a fetched record has no matching analysis. Fatal for the run.
var ErrRecordNotFound = errors.New("no analysis found for fetched record")

// defaultAnalysisWorkers bounds the fan-out across record analyses.
const defaultAnalysisWorkers = 4

// Pipeline runs fetch, per-record analysis, scoring and ranking.
// Record analyses run concurrently on a bounded worker pool; scoring and
// ranking are a single-threaded reduction over the collected results.
type Pipeline struct {
	fetcher  Fetcher
	analyzer Analyzer
	workers  int
}

// PipelineOption configures a Pipeline.
type PipelineOption func(*Pipeline)

// WithAnalysisWorkers sets the size of the analysis worker pool.
func WithAnalysisWorkers(n int) PipelineOption {
	return func(p *Pipeline) {
		if n > 0 {
			p.workers = n
		}
	}
}

// NewPipeline creates a pipeline over the given fetcher and analyzer.
func NewPipeline(fetcher Fetcher, analyzer Analyzer, opts ...PipelineOption) *Pipeline {
	p := &Pipeline{
		fetcher:  fetcher,
		analyzer: analyzer,
		workers:  defaultAnalysisWorkers,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run produces the ranked place list for a location. An empty fetch result
// yields an empty list, not an error.
func (p *Pipeline) Run(ctx context.Context, location string, userCtx UserContext) ([]RankedPlace, error) {
	ctx, span := telemetry.Tracer.Start(ctx, "blog.pipeline")
	defer span.End()
	span.SetAttributes(attribute.String("blog.location", location))

	records, err := p.fetcher.FetchRawContent(ctx, location)
	if err != nil {
		return nil, fmt.Errorf("fetch raw content: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	analyses, err := p.analyzeAll(ctx, records, userCtx)
	if err != nil {
		return nil, err
	}

	scored := ScoreContent(analyses, userCtx)
	places := ExtractAndRankPlaces(scored, userCtx)
	span.SetAttributes(
		attribute.Int("blog.records", len(records)),
		attribute.Int("blog.places", len(places)),
	)
	log.Debugf("ranked %d places from %d blog records for %s", len(places), len(records), location)
	return places, nil
}

// analyzeAll fans the records out across the worker pool and collects the
// analyses back in document order. Each worker owns exactly one slot of the
// result slice.
func (p *Pipeline) analyzeAll(ctx context.Context, records []RawContentRecord, userCtx UserContext) ([]AnalyzedContent, error) {
	pool, err := ants.NewPool(p.workers)
	if err != nil {
		return nil, fmt.Errorf("create analysis pool: %w", err)
	}
	defer pool.Release()

	analyses := make([]AnalyzedContent, len(records))
	errs := make([]error, len(records))
	var wg sync.WaitGroup
	for i := range records {
		i := i
		wg.Add(1)
		task := func() {
			defer wg.Done()
			analyses[i], errs[i] = p.analyzer.AnalyzeContent(ctx, records[i], userCtx)
		}
		if err := pool.Submit(task); err != nil {
			// Pool exhaustion degrades to inline execution.
			task()
		}
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("analyze %q: %w", records[i].URL, err)
		}
	}
	// Defensive join check between the fetch and analysis stages.
	for i, record := range records {
		if analyses[i].SourceURL != record.URL {
			return nil, fmt.Errorf("%w: %s", ErrRecordNotFound, record.URL)
		}
	}
	return analyses, nil
}
