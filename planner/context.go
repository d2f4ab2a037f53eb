package planner

import (
	"context"
	"encoding/json"
	"sync"

	"go.opentelemetry.io/otel/attribute"

	"github.com/tripweaver-ai/tripweaver/blog"
	"github.com/tripweaver-ai/tripweaver/log"
	"github.com/tripweaver-ai/tripweaver/plan"
	"github.com/tripweaver-ai/tripweaver/telemetry"
	"github.com/tripweaver-ai/tripweaver/tool"
	placestool "github.com/tripweaver-ai/tripweaver/tool/places"
)

// maxContextRunes bounds each tool's formatted context block.
const maxContextRunes = 2000

// Placeholders used when a tool degrades.
const (
	weatherUnavailable = "weather information is currently unavailable"
	placesUnavailable  = "no place recommendations available"
)

// toolContext is the pre-fetched information folded into the prompt.
type toolContext struct {
	weatherBlock string
	placesBlock  string
	// sources maps the URLs the places tool produced; references outside
	// this set are dropped from the final plan.
	sources map[string]struct{}
}

// contextBlock renders both tool results as one system-context block.
func (tc *toolContext) contextBlock() string {
	return "Context gathered for this trip.\n\n" +
		"Weather forecast:\n" + tc.weatherBlock + "\n\n" +
		"Recommended places:\n" + tc.placesBlock
}

// gatherToolContext invokes the weather and places tools concurrently and
// waits for both to settle. A failed tool degrades to a placeholder block;
// it never cancels its sibling and never aborts the pipeline.
func (e *Engine) gatherToolContext(ctx context.Context, req plan.TripRequest) *toolContext {
	ctx, span := telemetry.Tracer.Start(ctx, "planner.gather_context")
	defer span.End()

	tc := &toolContext{
		weatherBlock: weatherUnavailable,
		placesBlock:  placesUnavailable,
		sources:      map[string]struct{}{},
	}

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		tc.weatherBlock = e.fetchWeatherBlock(ctx, req)
	}()
	go func() {
		defer wg.Done()
		tc.placesBlock, tc.sources = e.fetchPlacesBlock(ctx, req)
	}()
	wg.Wait()

	span.SetAttributes(attribute.Int("context.sources", len(tc.sources)))
	return tc
}

func (e *Engine) fetchWeatherBlock(ctx context.Context, req plan.TripRequest) string {
	ctx, cancel := context.WithTimeout(ctx, e.toolTimeout)
	defer cancel()

	args, err := json.Marshal(map[string]string{
		"location":   req.Location,
		"start_date": req.StartDate,
		"end_date":   req.EndDate,
	})
	if err != nil {
		return weatherUnavailable
	}
	result, err := e.weatherTool.Call(ctx, args)
	if err != nil {
		log.Warnf("weather tool failed, degrading to placeholder: %v", err)
		return weatherUnavailable
	}
	summary, ok := result.(string)
	if !ok || summary == "" {
		return weatherUnavailable
	}
	return boundContext(summary)
}

func (e *Engine) fetchPlacesBlock(ctx context.Context, req plan.TripRequest) (string, map[string]struct{}) {
	ctx, cancel := context.WithTimeout(ctx, e.toolTimeout)
	defer cancel()

	sources := map[string]struct{}{}
	args, err := json.Marshal(map[string]string{
		"location":  req.Location,
		"interests": req.Keywords,
	})
	if err != nil {
		return placesUnavailable, sources
	}
	result, err := e.placesTool.Call(ctx, args)
	if err != nil {
		log.Warnf("places tool failed, degrading to placeholder: %v", err)
		return placesUnavailable, sources
	}
	envelope, ok := result.(tool.Result[[]blog.RankedPlace])
	if !ok || !envelope.OK() {
		if ok && envelope.ErrorMessage != "" {
			log.Warnf("places tool reported failure: %s", envelope.ErrorMessage)
		}
		return placesUnavailable, sources
	}
	for _, p := range envelope.Data {
		sources[p.SourceURL] = struct{}{}
	}
	return boundContext(placestool.Format(envelope.Data)), sources
}

// boundContext truncates a context block to maxContextRunes.
func boundContext(s string) string {
	runes := []rune(s)
	if len(runes) <= maxContextRunes {
		return s
	}
	return string(runes[:maxContextRunes])
}
