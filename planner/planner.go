// Package planner implements the plan generation and plan revision
// pipelines: multi-step processes that gather context through tools, invoke
// a model under a schema contract, and validate or repair the output.
package planner

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/tripweaver-ai/tripweaver/log"
	"github.com/tripweaver-ai/tripweaver/metrics"
	"github.com/tripweaver-ai/tripweaver/model"
	"github.com/tripweaver-ai/tripweaver/plan"
	"github.com/tripweaver-ai/tripweaver/prompt"
	"github.com/tripweaver-ai/tripweaver/telemetry"
	"github.com/tripweaver-ai/tripweaver/tool"
)

// Error taxonomy of the pipelines.
var (
	// ErrModelTransport covers timeouts, rate limits and connection
	// failures. Surfaced to the caller as a generic internal failure.
	ErrModelTransport = errors.New("model call failed")

	// ErrSchemaViolation reports structured output that does not parse or
	// does not satisfy the plan schema.
	ErrSchemaViolation = errors.New("model output violates the plan schema")
)

// Orchestrator produces one validated travel plan from one trip request.
type Orchestrator interface {
	GeneratePlan(ctx context.Context, req plan.TripRequest) (*plan.TravelPlan, error)
}

// Reviser produces a new travel plan from an existing plan and feedback.
type Reviser interface {
	RevisePlan(ctx context.Context, req plan.UpdateRequest) (*plan.TravelPlan, error)
}

// Default timeouts. A timeout is the same failure class as a transport
// error.
const (
	defaultToolTimeout  = 5 * time.Second
	defaultModelTimeout = 30 * time.Second
)

// planSchema is the JSON schema every plan-producing model call is
// constrained to. Strict mode requires every property listed as required
// and additionalProperties forbidden on every object.
var planSchema = tool.Strictify(tool.GenerateSchema(reflect.TypeOf(plan.TravelPlan{})))

// Engine is the pre-fetch planning engine: it invokes the weather and places
// tools up front, folds their output into the prompt context, and issues one
// schema-constrained model call with a capped repair-and-fallback ladder.
type Engine struct {
	model        model.Model
	prompts      *prompt.Manager
	weatherTool  tool.CallableTool
	placesTool   tool.CallableTool
	toolTimeout  time.Duration
	modelTimeout time.Duration
}

// Option configures the engine.
type Option func(*Engine)

// WithToolTimeout overrides the per-tool invocation timeout.
func WithToolTimeout(d time.Duration) Option {
	return func(e *Engine) { e.toolTimeout = d }
}

// WithModelTimeout overrides the per-model-call timeout.
func WithModelTimeout(d time.Duration) Option {
	return func(e *Engine) { e.modelTimeout = d }
}

// New creates a planning engine.
func New(m model.Model, prompts *prompt.Manager, weatherTool, placesTool tool.CallableTool, opts ...Option) *Engine {
	e := &Engine{
		model:        m,
		prompts:      prompts,
		weatherTool:  weatherTool,
		placesTool:   placesTool,
		toolTimeout:  defaultToolTimeout,
		modelTimeout: defaultModelTimeout,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// GeneratePlan implements the Orchestrator interface.
//
// The ladder never loops: one primary call, at most one repair call, then
// the deterministic fallback plan. The outermost layer degrades rather than
// hard-fails; only a transport failure of the primary call surfaces as an
// error.
func (e *Engine) GeneratePlan(ctx context.Context, req plan.TripRequest) (*plan.TravelPlan, error) {
	ctx, span := telemetry.Tracer.Start(ctx, "planner.generate")
	defer span.End()
	span.SetAttributes(
		attribute.String("trip.location", req.Location),
		attribute.String("trip.start_date", req.StartDate),
		attribute.String("trip.end_date", req.EndDate),
	)
	timer := time.Now()
	defer func() {
		metrics.StageDuration.WithLabelValues("generate").Observe(time.Since(timer).Seconds())
	}()

	tc := e.gatherToolContext(ctx, req)

	tmpl, err := e.prompts.Get(ctx, prompt.TravelPlannerID)
	if err != nil {
		metrics.PlanRequests.WithLabelValues(metrics.OutcomeError).Inc()
		return nil, fmt.Errorf("load planner template: %w", err)
	}
	rendered, err := e.prompts.Render(ctx, prompt.TravelPlannerID, promptVariables(req))
	if err != nil {
		metrics.PlanRequests.WithLabelValues(metrics.OutcomeError).Inc()
		return nil, fmt.Errorf("render planner template: %w", err)
	}
	span.SetAttributes(attribute.String("prompt.version", tmpl.Version))

	messages := []model.Message{
		model.NewSystemMessage(rendered),
		model.NewSystemMessage(tc.contextBlock()),
		model.NewUserMessage("Create the travel plan now and respond with the structured plan only."),
	}

	resp, err := e.callStructured(ctx, messages, tmpl.Config, metrics.CallKindGenerate)
	if err != nil {
		metrics.PlanRequests.WithLabelValues(metrics.OutcomeError).Inc()
		span.RecordError(err)
		return nil, fmt.Errorf("%w: %v", ErrModelTransport, err)
	}

	p, err := decodePlan(resp.Content, req)
	if err != nil {
		log.Warnf("generated plan violates schema, attempting repair: %v", err)
		span.RecordError(err)
		p, err = e.repairPlan(ctx, resp.Content, req, tmpl.Config)
		if err != nil {
			log.Errorf("plan repair failed, degrading to fallback plan: %v", err)
			span.RecordError(err)
			metrics.PlanRequests.WithLabelValues(metrics.OutcomeFallback).Inc()
			p = FallbackPlan(req)
			e.finalize(p, req, tc)
			return p, nil
		}
	}

	metrics.PlanRequests.WithLabelValues(metrics.OutcomeSuccess).Inc()
	e.finalize(p, req, tc)
	return p, nil
}

// finalize stamps the plan ID and restricts references to the sources the
// places tool actually produced.
func (e *Engine) finalize(p *plan.TravelPlan, req plan.TripRequest, tc *toolContext) {
	if p.PlanID == "" {
		p.PlanID = req.PlanID
	}
	if p.PlanID == "" {
		p.PlanID = plan.NewID()
	}
	if len(tc.sources) == 0 {
		p.References = nil
		return
	}
	kept := p.References[:0]
	for _, ref := range p.References {
		if _, ok := tc.sources[ref.URL]; ok {
			kept = append(kept, ref)
		}
	}
	p.References = kept
}

// repairPlan issues the single allowed repair call: a schema-constrained
// conversion of the non-conformant output into the plan contract.
func (e *Engine) repairPlan(ctx context.Context, rawOutput string, req plan.TripRequest, cfg prompt.Config) (*plan.TravelPlan, error) {
	messages := []model.Message{
		model.NewSystemMessage("You convert travel itinerary text into a structured travel plan. " +
			"Respond with the plan only, following the required schema exactly. " +
			"Dates must be YYYY-MM-DD and fall between " + dateOnly(req.StartDate) + " and " + dateOnly(req.EndDate) + "."),
		model.NewUserMessage("Convert this itinerary into the structured plan:\n\n" + rawOutput),
	}
	resp, err := e.callStructured(ctx, messages, cfg, metrics.CallKindRepair)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrModelTransport, err)
	}
	return decodePlan(resp.Content, req)
}

// callStructured performs one schema-constrained completion call under the
// model timeout.
func (e *Engine) callStructured(ctx context.Context, messages []model.Message, cfg prompt.Config, kind string) (*model.Response, error) {
	metrics.ModelCalls.WithLabelValues(kind).Inc()
	ctx, cancel := context.WithTimeout(ctx, e.modelTimeout)
	defer cancel()

	request := &model.Request{
		Messages: messages,
		StructuredOutput: &model.StructuredOutput{
			Name:        "travel_plan",
			Description: "A structured day-by-day travel plan.",
			Schema:      planSchema,
			Strict:      true,
		},
	}
	request.Temperature = cfg.Temperature
	return e.model.GenerateContent(ctx, request)
}

// decodePlan parses and validates structured model output against the plan
// contract.
func decodePlan(content string, req plan.TripRequest) (*plan.TravelPlan, error) {
	var p plan.TravelPlan
	if err := json.Unmarshal([]byte(content), &p); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSchemaViolation, err)
	}
	if err := p.Validate(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSchemaViolation, err)
	}
	return &p, nil
}

// promptVariables flattens the request into template variables.
func promptVariables(req plan.TripRequest) map[string]string {
	return map[string]string{
		"location":       req.Location,
		"date_ranges":    req.StartDate + " - " + req.EndDate,
		"keywords":       req.Keywords,
		"transportation": req.Transportation,
		"style":          req.Style,
		"companion":      req.Companion,
	}
}
