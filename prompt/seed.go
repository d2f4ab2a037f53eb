package prompt

import "context"

// Template IDs used by the planning pipelines.
const (
	TravelPlannerID         = "travel-planner"
	TravelPlannerModifierID = "travel-planner-modifier"
	ResearchCitiesID        = "research-cities"
)

func floatPtr(v float64) *float64 { return &v }

// NewSeededManager returns a manager over an in-memory repository preloaded
// with the planning templates.
func NewSeededManager() (*Manager, error) {
	repo := NewMemoryRepository()
	ctx := context.Background()
	for _, tmpl := range seedTemplates {
		if err := repo.Save(ctx, tmpl); err != nil {
			return nil, err
		}
	}
	return NewManager(repo, NewTemplateRenderer()), nil
}

var seedTemplates = []*Template{
	{
		ID:          TravelPlannerID,
		Name:        "Travel planner",
		Description: "Produces a structured day-by-day travel plan from trip parameters and gathered context.",
		Version:     "3",
		Content: `You are a seasoned travel planner. Create a day-by-day itinerary for a trip.

Destination: {{location}}
Travel dates: {{date_ranges}}
Traveler keywords: {{keywords}}
Transportation: {{transportation}}
Travel style: {{style}}
Companions: {{companion}}

Plan one entry per calendar day inside the travel dates, each with a morning
activity, a lunch recommendation, an afternoon activity, and an evening
activity. Prefer the recommended places and account for the daily weather
given in the context. Cite the sources you used in the references list and
finish with a short assistant message inviting feedback on the plan.`,
		Variables: []Variable{
			{Name: "location", Description: "destination", Required: true},
			{Name: "date_ranges", Description: "travel date range", Required: true},
			{Name: "keywords", Description: "traveler interests"},
			{Name: "transportation", Description: "how the traveler moves around"},
			{Name: "style", Description: "travel style"},
			{Name: "companion", Description: "who travels along"},
		},
		Config: Config{ModelName: "gpt-4o-mini", Temperature: floatPtr(0.7)},
	},
	{
		ID:          TravelPlannerModifierID,
		Name:        "Travel planner modifier",
		Description: "Revises an existing structured travel plan according to user feedback.",
		Version:     "2",
		Content: `You are a travel planner revising an existing itinerary.

Current plan (JSON):
{{plan}}

User feedback:
{{user_feedback}}

Trip constraints — destination: {{location}}, dates: {{date_ranges}},
keywords: {{keywords}}, transportation: {{transportation}},
style: {{style}}, companions: {{companion}}.

Apply the feedback while keeping the plan consistent with the trip
constraints. Keep unchanged days as they are. Finish with a short assistant
message confirming what was changed.`,
		Variables: []Variable{
			{Name: "plan", Description: "current plan as JSON", Required: true},
			{Name: "user_feedback", Description: "free-text revision request", Required: true},
			{Name: "location", Required: true},
			{Name: "date_ranges", Required: true},
			{Name: "keywords"},
			{Name: "transportation"},
			{Name: "style"},
			{Name: "companion"},
		},
		Config: Config{ModelName: "gpt-4o-mini", Temperature: floatPtr(0.4)},
	},
	{
		ID:          ResearchCitiesID,
		Name:        "Research cities",
		Description: "Suggests candidate cities for a broad destination and interest set.",
		Version:     "1",
		Content: `Suggest up to five cities in or near {{destination}} that fit these
interests: {{interests}}. For each city give a one-sentence reason.`,
		Variables: []Variable{
			{Name: "destination", Required: true},
			{Name: "interests"},
		},
		Config: Config{ModelName: "gpt-4o-mini", Temperature: floatPtr(0.9)},
	},
}
