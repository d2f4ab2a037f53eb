package planner

import (
	"fmt"

	"github.com/tripweaver-ai/tripweaver/plan"
)

// dateOnly trims a datetime string to its YYYY-MM-DD prefix. Shorter values
// pass through untouched.
func dateOnly(s string) string {
	if len(s) > 10 {
		return s[:10]
	}
	return s
}

// FallbackPlan is the deterministic, always-available plan returned when
// every model-based attempt has failed: a single day on the request's start
// date with generic activities and no references.
func FallbackPlan(req plan.TripRequest) *plan.TravelPlan {
	date := dateOnly(req.StartDate)
	return &plan.TravelPlan{
		Title:    fmt.Sprintf("%s travel plan", req.Location),
		Overview: fmt.Sprintf("A minimal starting itinerary for %s.", req.Location),
		AssistantMessage: "I could not gather enough information for a detailed itinerary, " +
			"so here is a starting point. Tell me what you would like to change and I will refine it.",
		Days: []plan.PlanDay{
			{
				Date:      date,
				Morning:   "Explore the area around your accommodation",
				Lunch:     "Try a well-reviewed local restaurant",
				Afternoon: fmt.Sprintf("Visit one of the main sights of %s", req.Location),
				Evening:   "Stroll through the city center and have dinner",
			},
		},
		References: nil,
		PlanID:     req.PlanID,
	}
}
