// Package server exposes the planning pipelines over HTTP.
package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"go.opentelemetry.io/otel/attribute"

	"github.com/tripweaver-ai/tripweaver/log"
	"github.com/tripweaver-ai/tripweaver/metrics"
	"github.com/tripweaver-ai/tripweaver/plan"
	"github.com/tripweaver-ai/tripweaver/planner"
	"github.com/tripweaver-ai/tripweaver/telemetry"
)

// Server wires the planning pipelines to the /api routes.
type Server struct {
	router       *mux.Router
	orchestrator planner.Orchestrator
	reviser      planner.Reviser
}

// Option configures the Server instance.
type Option func(*Server)

// New creates a server over the given pipelines.
func New(orchestrator planner.Orchestrator, reviser planner.Reviser, opts ...Option) *Server {
	s := &Server{
		router:       mux.NewRouter(),
		orchestrator: orchestrator,
		reviser:      reviser,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.router.HandleFunc("/api", s.handleMakePlan).Methods(http.MethodPost)
	s.router.HandleFunc("/api", s.handleUpdatePlan).Methods(http.MethodPut)
	s.router.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	s.router.Handle("/metrics", metrics.Handler()).Methods(http.MethodGet)
}

// Handler returns the HTTP handler with CORS applied.
func (s *Server) Handler() http.Handler {
	return cors.AllowAll().Handler(s.router)
}

// successResponse is the wire shape of a successful plan response: exactly
// one plan message and one assistant message.
type successResponse struct {
	Success  bool                   `json:"success"`
	Messages []plan.ChattingMessage `json:"messages"`
}

type errorResponse struct {
	Title  string   `json:"title"`
	Errors []string `json:"errors,omitempty"`
}

func (s *Server) handleMakePlan(w http.ResponseWriter, r *http.Request) {
	ctx, span := telemetry.Tracer.Start(r.Context(), "http.make_plan")
	defer span.End()

	var req plan.TripRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		metrics.PlanRequests.WithLabelValues(metrics.OutcomeInvalid).Inc()
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Title:  "invalid request body",
			Errors: []string{"body is not valid JSON"},
		})
		return
	}
	if err := req.Validate(); err != nil {
		metrics.PlanRequests.WithLabelValues(metrics.OutcomeInvalid).Inc()
		writeValidationError(w, err)
		return
	}
	span.SetAttributes(attribute.String("trip.location", req.Location))

	p, err := s.orchestrator.GeneratePlan(ctx, req)
	if err != nil {
		span.RecordError(err)
		log.Errorf("plan generation failed: %v", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{
			Title: "failed to process the request",
		})
		return
	}
	writeJSON(w, http.StatusOK, successResponse{Success: true, Messages: plan.Messages(p)})
}

func (s *Server) handleUpdatePlan(w http.ResponseWriter, r *http.Request) {
	ctx, span := telemetry.Tracer.Start(r.Context(), "http.update_plan")
	defer span.End()

	var req plan.UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		metrics.PlanRequests.WithLabelValues(metrics.OutcomeInvalid).Inc()
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Title:  "invalid request body",
			Errors: []string{"body is not valid JSON"},
		})
		return
	}
	if err := req.Validate(); err != nil {
		metrics.PlanRequests.WithLabelValues(metrics.OutcomeInvalid).Inc()
		writeValidationError(w, err)
		return
	}
	span.SetAttributes(attribute.String("plan.id", req.PlanID))

	p, err := s.reviser.RevisePlan(ctx, req)
	if err != nil {
		span.RecordError(err)
		log.Errorf("plan revision failed: %v", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{
			Title: "failed to process the request",
		})
		return
	}
	writeJSON(w, http.StatusOK, successResponse{Success: true, Messages: plan.Messages(p)})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// writeValidationError translates a validation error into the structured
// 400 payload. Non-validation errors should not reach here; they degrade to
// a generic bad-request body rather than leaking internals.
func writeValidationError(w http.ResponseWriter, err error) {
	var verr *plan.ValidationError
	if errors.As(err, &verr) {
		writeJSON(w, http.StatusBadRequest, errorResponse{Title: verr.Title, Errors: verr.Errors})
		return
	}
	writeJSON(w, http.StatusBadRequest, errorResponse{Title: "invalid request"})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Errorf("encode response: %v", err)
	}
}
