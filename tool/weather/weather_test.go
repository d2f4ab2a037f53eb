package weather

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripweaver-ai/tripweaver/tool"
)

func TestMockSource_FiltersDateRange(t *testing.T) {
	source := NewMockSource()
	days, err := source.Forecast(context.Background(), "사가", "2025-05-26", "2025-05-28")
	require.NoError(t, err)
	require.Len(t, days, 3)
	assert.Equal(t, "2025-05-26", days[0].Date)
	assert.Equal(t, "2025-05-28", days[2].Date)
	assert.Equal(t, ConditionRain, days[0].Condition)
}

func TestMockSource_UnknownLocation(t *testing.T) {
	days, err := NewMockSource().Forecast(context.Background(), "Atlantis", "2025-05-26", "2025-05-28")
	require.NoError(t, err)
	assert.Empty(t, days)
}

func TestFormat(t *testing.T) {
	out := Format("사가", []DailyForecast{
		{Date: "2025-05-26", HighTemp: 17, LowTemp: 9, Condition: ConditionRain, PrecipitationChance: 70},
		{Date: "2025-05-27", HighTemp: 19, LowTemp: 11, Condition: ConditionCloudy, PrecipitationChance: 40},
	})
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "2025-05-26")
	assert.Contains(t, lines[0], "rain")
	assert.Contains(t, lines[0], "70%")
}

func TestFormat_EmptyRangePlaceholder(t *testing.T) {
	out := Format("사가", nil)
	assert.Contains(t, out, "no weather data")
	assert.Contains(t, out, "사가")
}

func TestTool_CallReturnsSummary(t *testing.T) {
	weatherTool := NewTool(NewMockSource())
	result, err := weatherTool.Call(context.Background(),
		[]byte(`{"location":"사가","start_date":"2025-05-26","end_date":"2025-05-28"}`))
	require.NoError(t, err)
	summary, ok := result.(string)
	require.True(t, ok)
	assert.Len(t, strings.Split(summary, "\n"), 3)
}

func TestTool_RejectsInvalidArguments(t *testing.T) {
	weatherTool := NewTool(NewMockSource())
	_, err := weatherTool.Call(context.Background(), []byte(`{"location":"사가"}`))
	assert.ErrorIs(t, err, tool.ErrInvalidInput)
}
