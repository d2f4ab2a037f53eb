// Package weather exposes a day-by-day forecast lookup as a tool.
package weather

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/tripweaver-ai/tripweaver/log"
	"github.com/tripweaver-ai/tripweaver/tool/function"
)

// ToolName identifies the weather tool.
const ToolName = "search_weather"

// Condition is the weather condition enum.
type Condition string

// Condition values.
const (
	ConditionClear  Condition = "clear"
	ConditionCloudy Condition = "cloudy"
	ConditionRain   Condition = "rain"
	ConditionSnow   Condition = "snow"
)

// DailyForecast is the forecast of one calendar day. Immutable.
type DailyForecast struct {
	// Date in YYYY-MM-DD form.
	Date string `json:"date"`
	// HighTemp and LowTemp in degrees Celsius.
	HighTemp int `json:"highTemp"`
	LowTemp  int `json:"lowTemp"`
	// Condition is one of clear, cloudy, rain, snow.
	Condition Condition `json:"condition"`
	// PrecipitationChance in percent.
	PrecipitationChance int `json:"precipitationChance"`
}

// Source provides forecasts for a location and date range.
type Source interface {
	Forecast(ctx context.Context, location, startDate, endDate string) ([]DailyForecast, error)
}

// SearchInput is the tool's argument schema.
type SearchInput struct {
	// Location is the city to look up, e.g. "사가" or "서울".
	Location string `json:"location"`
	// StartDate and EndDate bound the lookup, YYYY-MM-DD.
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// NewTool wraps the source as a callable tool returning a multi-line
// day-by-day summary string. An empty range degrades to an explanatory
// placeholder rather than an error.
func NewTool(source Source) *function.FunctionTool[SearchInput, string] {
	fn := func(ctx context.Context, input SearchInput) (string, error) {
		log.Debugf("weather lookup: %s %s..%s", input.Location, input.StartDate, input.EndDate)
		days, err := source.Forecast(ctx, input.Location, input.StartDate, input.EndDate)
		if err != nil {
			return "", fmt.Errorf("forecast lookup: %w", err)
		}
		return Format(input.Location, days), nil
	}
	return function.New(fn,
		function.WithName(ToolName),
		function.WithDescription("Looks up the day-by-day weather forecast for a city between a start and an end date. Useful for checking the weather while planning a trip."),
	)
}

// Format renders forecasts as one line per day. No data yields an
// explanatory placeholder.
func Format(location string, days []DailyForecast) string {
	if len(days) == 0 {
		return fmt.Sprintf("no weather data available for %s in the requested period", location)
	}
	lines := make([]string, 0, len(days))
	for _, d := range days {
		lines = append(lines, fmt.Sprintf("%s: %s, high %d°C / low %d°C, %d%% chance of precipitation",
			d.Date, d.Condition, d.HighTemp, d.LowTemp, d.PrecipitationChance))
	}
	return strings.Join(lines, "\n")
}

// MockSource serves a fixed forecast table, standing in for a live weather
// API.
type MockSource struct{}

// NewMockSource creates a source over the built-in forecast table.
func NewMockSource() *MockSource {
	return &MockSource{}
}

// Forecast implements the Source interface. Unknown locations and empty
// overlaps return an empty slice, not an error.
func (s *MockSource) Forecast(ctx context.Context, location, startDate, endDate string) ([]DailyForecast, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	cityData, ok := mockForecasts[location]
	if !ok {
		return nil, nil
	}
	start, err := time.Parse("2006-01-02", truncateDate(startDate))
	if err != nil {
		return nil, fmt.Errorf("parse start date %q: %w", startDate, err)
	}
	end, err := time.Parse("2006-01-02", truncateDate(endDate))
	if err != nil {
		return nil, fmt.Errorf("parse end date %q: %w", endDate, err)
	}

	var days []DailyForecast
	for _, d := range cityData {
		date, err := time.Parse("2006-01-02", d.Date)
		if err != nil {
			continue
		}
		if !date.Before(start) && !date.After(end) {
			days = append(days, d)
		}
	}
	return days, nil
}

func truncateDate(s string) string {
	if len(s) > 10 {
		return s[:10]
	}
	return s
}

var mockForecasts = map[string][]DailyForecast{
	"서울": {
		{Date: "2025-05-25", HighTemp: 24, LowTemp: 15, Condition: ConditionClear, PrecipitationChance: 10},
		{Date: "2025-05-26", HighTemp: 23, LowTemp: 16, Condition: ConditionCloudy, PrecipitationChance: 40},
		{Date: "2025-05-27", HighTemp: 21, LowTemp: 15, Condition: ConditionRain, PrecipitationChance: 80},
		{Date: "2025-05-28", HighTemp: 22, LowTemp: 14, Condition: ConditionClear, PrecipitationChance: 20},
		{Date: "2025-05-29", HighTemp: 25, LowTemp: 17, Condition: ConditionClear, PrecipitationChance: 0},
	},
	"사가": {
		{Date: "2025-05-25", HighTemp: 18, LowTemp: 10, Condition: ConditionCloudy, PrecipitationChance: 30},
		{Date: "2025-05-26", HighTemp: 17, LowTemp: 9, Condition: ConditionRain, PrecipitationChance: 70},
		{Date: "2025-05-27", HighTemp: 19, LowTemp: 11, Condition: ConditionCloudy, PrecipitationChance: 40},
		{Date: "2025-05-28", HighTemp: 20, LowTemp: 12, Condition: ConditionClear, PrecipitationChance: 10},
		{Date: "2025-05-29", HighTemp: 19, LowTemp: 11, Condition: ConditionRain, PrecipitationChance: 60},
	},
}
