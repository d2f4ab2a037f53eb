// Package plan defines the travel plan domain types exchanged between the
// HTTP surface and the planning pipelines.
package plan

import (
	"time"
)

// TripRequest carries the parameters of one trip-planning request.
// It is immutable once received.
type TripRequest struct {
	// Location is the destination, e.g. "사가" or "Seoul".
	Location string `json:"location"`
	// StartDate is the arrival date in YYYY-MM-DD form.
	StartDate string `json:"startDate"`
	// EndDate is the departure date in YYYY-MM-DD form.
	EndDate string `json:"endDate"`
	// Keywords are free-text interests, comma separated.
	Keywords string `json:"keywords,omitempty"`
	// Transportation describes how the traveler moves around.
	Transportation string `json:"transportation,omitempty"`
	// Style describes the travel style, e.g. "relaxed".
	Style string `json:"style,omitempty"`
	// Companion describes who travels along.
	Companion string `json:"companion,omitempty"`
	// PlanID identifies the plan this request belongs to, if any.
	PlanID string `json:"planId,omitempty"`
}

// PlanDay is the itinerary of a single calendar day.
type PlanDay struct {
	Date      string `json:"date"`
	Morning   string `json:"morning"`
	Lunch     string `json:"lunch"`
	Afternoon string `json:"afternoon"`
	Evening   string `json:"evening"`
}

// Reference points at an external source the plan drew from.
type Reference struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	Description string `json:"description,omitempty"`
}

// TravelPlan is the structured itinerary contract that model output must
// satisfy. Days is never empty for a valid plan and every day's date falls
// inside the originating request's date range.
type TravelPlan struct {
	Title            string      `json:"title"`
	Overview         string      `json:"overview"`
	AssistantMessage string      `json:"assistantMessage"`
	Days             []PlanDay   `json:"days"`
	References       []Reference `json:"references,omitempty"`
	PlanID           string      `json:"planId,omitempty"`
}

// UpdateRequest asks the revision pipeline to rework an existing plan
// according to free-text feedback.
type UpdateRequest struct {
	PlanID        string      `json:"planId"`
	Feedback      string      `json:"feedback"`
	Plan          *TravelPlan `json:"plan,omitempty"`
	TravelRequest TripRequest `json:"travelRequest"`
}

// Message roles on the chat wire.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RolePlan      = "plan"
)

// ChattingMessage is one message on the chat wire. Content is a string for
// user/assistant messages and a full TravelPlan for plan messages.
type ChattingMessage struct {
	Role      string `json:"role"`
	Content   any    `json:"content"`
	Timestamp string `json:"timestamp"`
}

// Messages renders a plan as the two-message success payload: the plan
// itself followed by the assistant's follow-up message.
func Messages(p *TravelPlan) []ChattingMessage {
	now := time.Now().UTC().Format(time.RFC3339)
	return []ChattingMessage{
		{Role: RolePlan, Content: p, Timestamp: now},
		{Role: RoleAssistant, Content: p.AssistantMessage, Timestamp: now},
	}
}
