package blog

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeywordAnalyzer_ExtractsLexiconEntities(t *testing.T) {
	analyzer := NewKeywordAnalyzer()
	record := RawContentRecord{
		URL:   "https://tistory.com/saga_onsen/222",
		Title: "피로가 싹 풀리는 다케오 온천 여행",
		Body:  "1300년 역사의 다케오 온천. 주변에 작은 신사도 있어서 산책하기 좋았습니다.",
	}

	result, err := analyzer.AnalyzeContent(context.Background(), record, UserContext{})
	require.NoError(t, err)

	assert.Equal(t, record.URL, result.SourceURL)
	assert.Equal(t, record.Title, result.Title)
	require.Len(t, result.Entities, 2)
	assert.Equal(t, "다케오 온천", result.Entities[0].Name)
	assert.Equal(t, 9.2, result.Entities[0].Importance)
	assert.Equal(t, "작은 신사", result.Entities[1].Name)
	assert.Equal(t, SentimentPositive, result.OverallSentiment)
	assert.GreaterOrEqual(t, result.RelevanceScore, 0.5)
	assert.LessOrEqual(t, result.RelevanceScore, 1.0)
}

func TestKeywordAnalyzer_EmptyContent(t *testing.T) {
	analyzer := NewKeywordAnalyzer()
	result, err := analyzer.AnalyzeContent(context.Background(), RawContentRecord{URL: "https://x.test/empty"}, UserContext{})
	require.NoError(t, err)
	assert.Empty(t, result.Entities)
	assert.Empty(t, result.Summary)
	assert.Equal(t, "https://x.test/empty", result.SourceURL)
}

func TestSummarize_TruncatesToHundredRunes(t *testing.T) {
	long := strings.Repeat("가", 150)
	summary := summarize(long)
	assert.Equal(t, 103, len([]rune(summary)))
	assert.True(t, strings.HasSuffix(summary, "..."))

	short := "짧은 본문"
	assert.Equal(t, short+"...", summarize(short))
}

func TestKeywordAnalyzer_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewKeywordAnalyzer().AnalyzeContent(ctx, RawContentRecord{URL: "u"}, UserContext{})
	assert.Error(t, err)
}
