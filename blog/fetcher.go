package blog

import (
	"context"

	"github.com/tripweaver-ai/tripweaver/log"
)

// Fetcher retrieves the raw source documents for a location.
type Fetcher interface {
	// FetchRawContent returns the raw documents for the location. An empty
	// slice is a valid result.
	FetchRawContent(ctx context.Context, location string) ([]RawContentRecord, error)
}

// MockFetcher serves a fixed set of blog posts regardless of location,
// standing in for a live blog-search integration.
type MockFetcher struct{}

// NewMockFetcher creates a fetcher over the built-in dataset.
func NewMockFetcher() *MockFetcher {
	return &MockFetcher{}
}

// FetchRawContent implements the Fetcher interface.
func (f *MockFetcher) FetchRawContent(ctx context.Context, location string) ([]RawContentRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	log.Debugf("fetching raw blogs for %s (mock)", location)
	records := make([]RawContentRecord, len(mockRawContent))
	copy(records, mockRawContent)
	return records, nil
}

var mockRawContent = []RawContentRecord{
	{
		URL:   "https://blog.naver.com/saga_park/111",
		Title: "환상적인 사가 아리타 포슬린파크 방문 후기!",
		Body: "유럽 궁전 같은 외관에 놀랐어요. 아리타 도자기의 역사를 한눈에 볼 수 있고, " +
			"직접 체험도 가능해서 아이들과 오기 좋네요. 인생샷 명소로 강력 추천합니다. " +
			"점심은 근처 소바집에서 해결했어요.",
	},
	{
		URL:   "https://tistory.com/saga_onsen/222",
		Title: "피로가 싹 풀리는 다케오 온천 여행",
		Body: "1300년 역사의 다케오 온천. 미끌미끌한 온천수가 피부를 부드럽게 만들어주네요. " +
			"료칸에서 숙박하며 온천을 즐기니 신선이 된 기분입니다. " +
			"주변에 작은 신사도 있어서 산책하기 좋았습니다.",
	},
}
