package places

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripweaver-ai/tripweaver/blog"
	"github.com/tripweaver-ai/tripweaver/tool"
)

type failingFetcher struct{}

func (f *failingFetcher) FetchRawContent(ctx context.Context, location string) ([]blog.RawContentRecord, error) {
	return nil, errors.New("blog source unavailable")
}

func TestTool_ReturnsRankedPlaces(t *testing.T) {
	pipeline := blog.NewPipeline(blog.NewMockFetcher(), blog.NewKeywordAnalyzer())
	placesTool := NewTool(pipeline)

	result, err := placesTool.Call(context.Background(), []byte(`{"location":"사가"}`))
	require.NoError(t, err)

	envelope, ok := result.(tool.Result[[]blog.RankedPlace])
	require.True(t, ok)
	assert.True(t, envelope.OK())
	require.NotEmpty(t, envelope.Data)
	assert.Equal(t, "아리타 포슬린파크", envelope.Data[0].Name)
}

func TestTool_InternalFailureBecomesFailureResult(t *testing.T) {
	pipeline := blog.NewPipeline(&failingFetcher{}, blog.NewKeywordAnalyzer())
	placesTool := NewTool(pipeline)

	result, err := placesTool.Call(context.Background(), []byte(`{"location":"사가"}`))
	require.NoError(t, err, "internal failures degrade to a failure result, not an error")

	envelope, ok := result.(tool.Result[[]blog.RankedPlace])
	require.True(t, ok)
	assert.False(t, envelope.OK())
	assert.Contains(t, envelope.ErrorMessage, "blog source unavailable")
	assert.Empty(t, envelope.Data)
}

func TestFormat(t *testing.T) {
	out := Format([]blog.RankedPlace{
		{Name: "다케오 온천", Score: 9.2, Description: "1300년 역사의 온천", Keywords: []string{"온천"}, SourceURL: "https://tistory.com/saga_onsen/222"},
	})
	assert.Contains(t, out, "다케오 온천")
	assert.Contains(t, out, "9.2")
	assert.Contains(t, out, "https://tistory.com/saga_onsen/222")

	assert.Contains(t, Format(nil), "no place recommendations")
}
