package planner

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/tripweaver-ai/tripweaver/metrics"
	"github.com/tripweaver-ai/tripweaver/model"
	"github.com/tripweaver-ai/tripweaver/plan"
	"github.com/tripweaver-ai/tripweaver/prompt"
	"github.com/tripweaver-ai/tripweaver/telemetry"
)

// RevisePlan implements the Reviser interface: exactly one schema-
// constrained model call, no tool invocations, no repair, no fallback.
// There is no cheaper deterministic substitute for applying feedback, so any
// failure propagates to the caller.
func (e *Engine) RevisePlan(ctx context.Context, req plan.UpdateRequest) (*plan.TravelPlan, error) {
	ctx, span := telemetry.Tracer.Start(ctx, "planner.revise")
	defer span.End()
	span.SetAttributes(attribute.String("plan.id", req.PlanID))
	timer := time.Now()
	defer func() {
		metrics.StageDuration.WithLabelValues("revise").Observe(time.Since(timer).Seconds())
	}()

	tmpl, err := e.prompts.Get(ctx, prompt.TravelPlannerModifierID)
	if err != nil {
		metrics.PlanRequests.WithLabelValues(metrics.OutcomeError).Inc()
		return nil, fmt.Errorf("load modifier template: %w", err)
	}

	planJSON := "{}"
	if req.Plan != nil {
		encoded, err := json.MarshalIndent(req.Plan, "", "  ")
		if err != nil {
			metrics.PlanRequests.WithLabelValues(metrics.OutcomeError).Inc()
			return nil, fmt.Errorf("encode current plan: %w", err)
		}
		planJSON = string(encoded)
	}

	variables := promptVariables(req.TravelRequest)
	variables["plan"] = planJSON
	variables["user_feedback"] = req.Feedback
	rendered, err := e.prompts.Render(ctx, prompt.TravelPlannerModifierID, variables)
	if err != nil {
		metrics.PlanRequests.WithLabelValues(metrics.OutcomeError).Inc()
		return nil, fmt.Errorf("render modifier template: %w", err)
	}
	span.SetAttributes(attribute.String("prompt.version", tmpl.Version))

	messages := []model.Message{
		model.NewSystemMessage(rendered),
		model.NewUserMessage("Revise the plan according to the feedback and respond with the full updated plan."),
	}
	resp, err := e.callStructured(ctx, messages, tmpl.Config, metrics.CallKindRevise)
	if err != nil {
		span.RecordError(err)
		metrics.PlanRequests.WithLabelValues(metrics.OutcomeError).Inc()
		return nil, fmt.Errorf("%w: %v", ErrModelTransport, err)
	}

	revised, err := decodePlan(resp.Content, req.TravelRequest)
	if err != nil {
		span.RecordError(err)
		metrics.PlanRequests.WithLabelValues(metrics.OutcomeError).Inc()
		return nil, err
	}
	revised.PlanID = req.PlanID
	metrics.PlanRequests.WithLabelValues(metrics.OutcomeSuccess).Inc()
	return revised, nil
}
