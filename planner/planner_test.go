package planner

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripweaver-ai/tripweaver/blog"
	"github.com/tripweaver-ai/tripweaver/metrics"
	"github.com/tripweaver-ai/tripweaver/model"
	"github.com/tripweaver-ai/tripweaver/plan"
	"github.com/tripweaver-ai/tripweaver/prompt"
	"github.com/tripweaver-ai/tripweaver/tool"
	"github.com/tripweaver-ai/tripweaver/tool/weather"
)

// fakeModel replays a scripted sequence of responses and records every
// request it receives.
type fakeModel struct {
	mu       sync.Mutex
	requests []*model.Request
	script   []fakeReply
}

type fakeReply struct {
	content string
	err     error
}

func (m *fakeModel) GenerateContent(ctx context.Context, request *model.Request) (*model.Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests = append(m.requests, request)
	if len(m.script) == 0 {
		return nil, errors.New("fake model script exhausted")
	}
	reply := m.script[0]
	m.script = m.script[1:]
	if reply.err != nil {
		return nil, reply.err
	}
	return &model.Response{Content: reply.content, Model: "fake"}, nil
}

func (m *fakeModel) Info() model.Info { return model.Info{Name: "fake"} }

func (m *fakeModel) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.requests)
}

// promptText concatenates all message contents of the i-th request.
func (m *fakeModel) promptText(i int) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	var sb strings.Builder
	for _, msg := range m.requests[i].Messages {
		sb.WriteString(msg.Content)
		sb.WriteString("\n")
	}
	return sb.String()
}

// fakeTool is a scripted CallableTool.
type fakeTool struct {
	name   string
	result any
	err    error
	calls  int
	mu     sync.Mutex
}

func (t *fakeTool) Declaration() *tool.Declaration {
	return &tool.Declaration{Name: t.name}
}

func (t *fakeTool) Call(ctx context.Context, jsonArgs []byte) (any, error) {
	t.mu.Lock()
	t.calls++
	t.mu.Unlock()
	if t.err != nil {
		return nil, t.err
	}
	return t.result, nil
}

func (t *fakeTool) callCount() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.calls
}

func sagaRequest() plan.TripRequest {
	return plan.TripRequest{
		Location:  "사가",
		StartDate: "2025-05-26",
		EndDate:   "2025-05-28",
		Keywords:  "온천, 도자기",
	}
}

func sagaPlaces() tool.Result[[]blog.RankedPlace] {
	return tool.Success([]blog.RankedPlace{
		{Name: "아리타 포슬린파크", Score: 9.5, Description: "도자기 테마파크", SourceURL: "https://blog.naver.com/saga_park/111"},
		{Name: "다케오 온천", Score: 9.2, Description: "1300년 역사의 온천", SourceURL: "https://tistory.com/saga_onsen/222"},
	})
}

func sagaPlanJSON(t *testing.T, refs []plan.Reference) string {
	t.Helper()
	p := plan.TravelPlan{
		Title:            "사가 여행 계획",
		Overview:         "온천과 도자기를 즐기는 일정",
		AssistantMessage: "일정이 마음에 드시는지 알려주세요.",
		Days: []plan.PlanDay{
			{Date: "2025-05-26", Morning: "다케오 온천", Lunch: "소바", Afternoon: "료칸 휴식", Evening: "온천가 산책"},
			{Date: "2025-05-27", Morning: "아리타 포슬린파크", Lunch: "사가규", Afternoon: "도자기 체험", Evening: "지역 맛집"},
			{Date: "2025-05-28", Morning: "시내 산책", Lunch: "라멘", Afternoon: "기념품 쇼핑", Evening: "귀가 준비"},
		},
		References: refs,
	}
	encoded, err := json.Marshal(p)
	require.NoError(t, err)
	return string(encoded)
}

func newTestEngine(t *testing.T, m model.Model, weatherTool, placesTool tool.CallableTool) *Engine {
	t.Helper()
	prompts, err := prompt.NewSeededManager()
	require.NoError(t, err)
	return New(m, prompts, weatherTool, placesTool)
}

func TestGeneratePlan_Success(t *testing.T) {
	refs := []plan.Reference{{Title: "포슬린파크 후기", URL: "https://blog.naver.com/saga_park/111"}}
	m := &fakeModel{script: []fakeReply{{content: sagaPlanJSON(t, refs)}}}
	weatherTool := &fakeTool{name: "search_weather", result: "2025-05-26: rain, high 17°C / low 9°C, 70% chance of precipitation"}
	placesTool := &fakeTool{name: "search_places", result: sagaPlaces()}

	engine := newTestEngine(t, m, weatherTool, placesTool)
	p, err := engine.GeneratePlan(context.Background(), sagaRequest())
	require.NoError(t, err)

	assert.Len(t, p.Days, 3)
	assert.Equal(t, 1, m.callCount(), "happy path needs exactly one model call")
	assert.Equal(t, 1, weatherTool.callCount())
	assert.Equal(t, 1, placesTool.callCount())
	assert.NotEmpty(t, p.PlanID)

	// Both tool outputs reach the prompt context.
	promptText := m.promptText(0)
	assert.Contains(t, promptText, "70% chance of precipitation")
	assert.Contains(t, promptText, "아리타 포슬린파크")
}

func TestGeneratePlan_PartialToolFailureIndependence(t *testing.T) {
	tests := []struct {
		name        string
		weatherTool *fakeTool
		placesTool  *fakeTool
		wantInCtx   string
		wantAbsent  string
	}{
		{
			name:        "weather fails places succeeds",
			weatherTool: &fakeTool{name: "search_weather", err: errors.New("forecast service down")},
			placesTool:  &fakeTool{name: "search_places", result: sagaPlaces()},
			wantInCtx:   "다케오 온천",
			wantAbsent:  "70% chance",
		},
		{
			name:        "places fails weather succeeds",
			weatherTool: &fakeTool{name: "search_weather", result: "2025-05-26: rain, high 17°C / low 9°C, 70% chance of precipitation"},
			placesTool:  &fakeTool{name: "search_places", err: errors.New("blog search down")},
			wantInCtx:   "70% chance",
			wantAbsent:  "다케오 온천",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &fakeModel{script: []fakeReply{{content: sagaPlanJSON(t, nil)}}}
			engine := newTestEngine(t, m, tt.weatherTool, tt.placesTool)

			p, err := engine.GeneratePlan(context.Background(), sagaRequest())
			require.NoError(t, err, "one failed tool must not abort the pipeline")
			assert.NotEmpty(t, p.Days)

			promptText := m.promptText(0)
			assert.Contains(t, promptText, tt.wantInCtx)
			assert.NotContains(t, promptText, tt.wantAbsent)
			assert.Equal(t, 1, tt.weatherTool.callCount())
			assert.Equal(t, 1, tt.placesTool.callCount())
		})
	}
}

func TestGeneratePlan_SchemaViolationRepairedOnce(t *testing.T) {
	m := &fakeModel{script: []fakeReply{
		{content: "Day 1 we visit the onsen, day 2 the porcelain park..."},
		{content: sagaPlanJSON(t, nil)},
	}}
	engine := newTestEngine(t, m,
		&fakeTool{name: "search_weather", result: "sunny"},
		&fakeTool{name: "search_places", result: sagaPlaces()})

	p, err := engine.GeneratePlan(context.Background(), sagaRequest())
	require.NoError(t, err)
	assert.Len(t, p.Days, 3)
	assert.Equal(t, 2, m.callCount(), "one primary call plus exactly one repair call")
}

func TestGeneratePlan_FallbackAfterFailedRepair(t *testing.T) {
	m := &fakeModel{script: []fakeReply{
		{content: "free text, not a plan"},
		{content: `{"title":"","days":[]}`},
	}}
	engine := newTestEngine(t, m,
		&fakeTool{name: "search_weather", err: errors.New("down")},
		&fakeTool{name: "search_places", err: errors.New("down")})

	req := sagaRequest()
	p, err := engine.GeneratePlan(context.Background(), req)
	require.NoError(t, err, "the outermost layer degrades, it never hard-fails")

	assert.Equal(t, 2, m.callCount(), "the ladder is capped at one repair call")
	require.Len(t, p.Days, 1)
	assert.Equal(t, "2025-05-26", p.Days[0].Date)
	assert.Contains(t, p.Title, "사가")
	assert.Empty(t, p.References)
	assert.NoError(t, p.Validate(req), "the fallback plan satisfies the plan contract")
}

func TestGeneratePlan_ShortDatesSurviveRepairPath(t *testing.T) {
	// A request that bypassed HTTP validation must not panic the engine,
	// even when malformed dates force the repair-and-fallback ladder.
	m := &fakeModel{script: []fakeReply{
		{content: "not a plan"},
		{content: "still not a plan"},
	}}
	engine := newTestEngine(t, m,
		&fakeTool{name: "search_weather", err: errors.New("down")},
		&fakeTool{name: "search_places", err: errors.New("down")})

	req := plan.TripRequest{Location: "사가", StartDate: "2025-05", EndDate: "2025-06"}
	p, err := engine.GeneratePlan(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, p.Days, 1)
	assert.Equal(t, "2025-05", p.Days[0].Date)
	assert.Equal(t, 2, m.callCount())
}

func TestGeneratePlan_TransportErrorSurfaces(t *testing.T) {
	m := &fakeModel{script: []fakeReply{{err: errors.New("connection refused")}}}
	engine := newTestEngine(t, m,
		&fakeTool{name: "search_weather", result: "sunny"},
		&fakeTool{name: "search_places", result: sagaPlaces()})

	_, err := engine.GeneratePlan(context.Background(), sagaRequest())
	assert.ErrorIs(t, err, ErrModelTransport)
	assert.Equal(t, 1, m.callCount())
}

func TestGeneratePlan_ReferencesRestrictedToKnownSources(t *testing.T) {
	refs := []plan.Reference{
		{Title: "known", URL: "https://blog.naver.com/saga_park/111"},
		{Title: "hallucinated", URL: "https://made.up/by-the-model"},
	}
	m := &fakeModel{script: []fakeReply{{content: sagaPlanJSON(t, refs)}}}
	engine := newTestEngine(t, m,
		&fakeTool{name: "search_weather", result: "sunny"},
		&fakeTool{name: "search_places", result: sagaPlaces()})

	p, err := engine.GeneratePlan(context.Background(), sagaRequest())
	require.NoError(t, err)
	require.Len(t, p.References, 1)
	assert.Equal(t, "https://blog.naver.com/saga_park/111", p.References[0].URL)
}

func TestGeneratePlan_EndToEndSaga(t *testing.T) {
	// Real mock weather source (3 forecast days in range) plus the two
	// known blog sources.
	refs := []plan.Reference{
		{Title: "포슬린파크 후기", URL: "https://blog.naver.com/saga_park/111"},
		{Title: "다케오 온천 여행", URL: "https://tistory.com/saga_onsen/222"},
	}
	m := &fakeModel{script: []fakeReply{{content: sagaPlanJSON(t, refs)}}}
	engine := newTestEngine(t, m,
		weather.NewTool(weather.NewMockSource()),
		&fakeTool{name: "search_places", result: sagaPlaces()})

	req := sagaRequest()
	p, err := engine.GeneratePlan(context.Background(), req)
	require.NoError(t, err)

	require.Len(t, p.Days, 3, "days match the 3-day span of the request")
	for _, day := range p.Days {
		assert.GreaterOrEqual(t, day.Date, "2025-05-26")
		assert.LessOrEqual(t, day.Date, "2025-05-28")
	}
	known := map[string]bool{
		"https://blog.naver.com/saga_park/111":  true,
		"https://tistory.com/saga_onsen/222":    true,
	}
	for _, ref := range p.References {
		assert.True(t, known[ref.URL], "reference %q outside the known sources", ref.URL)
	}

	// The real weather tool's formatted forecast reaches the prompt.
	assert.Contains(t, m.promptText(0), "2025-05-26")
}

func TestRevisePlan_ExactlyOneModelCallNoTools(t *testing.T) {
	existing := plan.TravelPlan{}
	require.NoError(t, json.Unmarshal([]byte(sagaPlanJSON(t, nil)), &existing))

	m := &fakeModel{script: []fakeReply{{content: sagaPlanJSON(t, nil)}}}
	weatherTool := &fakeTool{name: "search_weather", result: "sunny"}
	placesTool := &fakeTool{name: "search_places", result: sagaPlaces()}
	engine := newTestEngine(t, m, weatherTool, placesTool)

	successBefore := testutil.ToFloat64(metrics.PlanRequests.WithLabelValues(metrics.OutcomeSuccess))
	revised, err := engine.RevisePlan(context.Background(), plan.UpdateRequest{
		PlanID:        "plan-42",
		Feedback:      "둘째 날 일정을 더 느긋하게 바꿔주세요",
		Plan:          &existing,
		TravelRequest: sagaRequest(),
	})
	require.NoError(t, err)

	assert.Equal(t, 1, m.callCount(), "revision issues exactly one model call")
	assert.Equal(t, 0, weatherTool.callCount(), "revision never invokes tools")
	assert.Equal(t, 0, placesTool.callCount())
	assert.Equal(t, "plan-42", revised.PlanID)

	promptText := m.promptText(0)
	assert.Contains(t, promptText, "느긋하게")
	assert.Contains(t, promptText, "사가 여행 계획")

	successAfter := testutil.ToFloat64(metrics.PlanRequests.WithLabelValues(metrics.OutcomeSuccess))
	assert.Equal(t, successBefore+1, successAfter, "revisions count toward request outcomes")
}

func TestRevisePlan_NoFallback(t *testing.T) {
	t.Run("schema violation propagates", func(t *testing.T) {
		m := &fakeModel{script: []fakeReply{{content: "not json"}}}
		engine := newTestEngine(t, m, &fakeTool{name: "w"}, &fakeTool{name: "p"})
		_, err := engine.RevisePlan(context.Background(), plan.UpdateRequest{
			PlanID: "p-1", Feedback: "change it", TravelRequest: sagaRequest(),
		})
		assert.ErrorIs(t, err, ErrSchemaViolation)
		assert.Equal(t, 1, m.callCount(), "no repair call in the revision pipeline")
	})

	t.Run("transport error propagates", func(t *testing.T) {
		m := &fakeModel{script: []fakeReply{{err: errors.New("timeout")}}}
		engine := newTestEngine(t, m, &fakeTool{name: "w"}, &fakeTool{name: "p"})
		_, err := engine.RevisePlan(context.Background(), plan.UpdateRequest{
			PlanID: "p-1", Feedback: "change it", TravelRequest: sagaRequest(),
		})
		assert.ErrorIs(t, err, ErrModelTransport)
	})
}

func TestFallbackPlan_SatisfiesContract(t *testing.T) {
	req := sagaRequest()
	p := FallbackPlan(req)
	require.NoError(t, p.Validate(req))
	assert.Len(t, p.Days, 1)
	assert.Empty(t, p.References)
}

func TestGeneratePlan_StructuredOutputRequested(t *testing.T) {
	m := &fakeModel{script: []fakeReply{{content: sagaPlanJSON(t, nil)}}}
	engine := newTestEngine(t, m,
		&fakeTool{name: "search_weather", result: "sunny"},
		&fakeTool{name: "search_places", result: sagaPlaces()})

	_, err := engine.GeneratePlan(context.Background(), sagaRequest())
	require.NoError(t, err)

	request := m.requests[0]
	require.NotNil(t, request.StructuredOutput)
	assert.Equal(t, "travel_plan", request.StructuredOutput.Name)
	schema := request.StructuredOutput.Schema
	require.NotNil(t, schema)
	assert.Contains(t, schema.Properties, "days")
	require.NotNil(t, request.Temperature, "template temperature is applied")

	// Strict mode demands every property required and no undeclared ones,
	// on every object in the schema.
	assert.Equal(t, false, schema.AdditionalProperties)
	assert.Contains(t, schema.Required, "references")
	assert.Contains(t, schema.Required, "planId")
	day := schema.Properties["days"].Items
	require.NotNil(t, day)
	assert.Equal(t, false, day.AdditionalProperties)
	assert.Contains(t, day.Required, "date")
}
