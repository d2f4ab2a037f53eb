package blog

import (
	"context"
	"strings"

	"github.com/tripweaver-ai/tripweaver/log"
)

// summaryLimit bounds the length of a content summary in runes.
const summaryLimit = 100

// Analyzer extracts structured entities and a bounded summary from one raw
// document. Implementations must not fail on empty content; a record with no
// recognizable entities yields an AnalyzedContent with an empty entity list.
type Analyzer interface {
	AnalyzeContent(ctx context.Context, record RawContentRecord, userCtx UserContext) (AnalyzedContent, error)
}

// lexiconEntry ties a trigger phrase to the entity it denotes.
type lexiconEntry struct {
	trigger string
	entity  ExtractedEntity
}

// KeywordAnalyzer is a deterministic Analyzer driven by a phrase lexicon.
// A model-backed analyzer can replace it behind the same interface once live
// extraction is wired up.
type KeywordAnalyzer struct {
	lexicon []lexiconEntry
}

// NewKeywordAnalyzer creates an analyzer over the built-in place lexicon.
func NewKeywordAnalyzer() *KeywordAnalyzer {
	return &KeywordAnalyzer{lexicon: defaultLexicon}
}

// AnalyzeContent implements the Analyzer interface. It scans title and body
// for lexicon triggers, summarizes the body to its first hundred runes, and
// assigns a baseline relevance score that grows with the number of entities
// found.
func (a *KeywordAnalyzer) AnalyzeContent(ctx context.Context, record RawContentRecord, userCtx UserContext) (AnalyzedContent, error) {
	if err := ctx.Err(); err != nil {
		return AnalyzedContent{}, err
	}
	log.Debugf("analyzing blog %q", record.Title)

	text := record.Title + "\n" + record.Body
	var entities []ExtractedEntity
	for _, entry := range a.lexicon {
		if strings.Contains(text, entry.trigger) {
			entities = append(entities, entry.entity)
		}
	}

	return AnalyzedContent{
		SourceURL:        record.URL,
		Title:            record.Title,
		Summary:          summarize(record.Body),
		Entities:         entities,
		OverallSentiment: overallSentiment(entities),
		RelevanceScore:   baselineScore(len(entities)),
	}, nil
}

// summarize truncates body to the first summaryLimit runes and appends an
// ellipsis. Empty content yields an empty summary.
func summarize(body string) string {
	if body == "" {
		return ""
	}
	runes := []rune(body)
	if len(runes) <= summaryLimit {
		return string(runes) + "..."
	}
	return string(runes[:summaryLimit]) + "..."
}

// baselineScore maps the entity count to a starting relevance in [0.5, 1].
func baselineScore(entityCount int) float64 {
	score := 0.5 + 0.1*float64(entityCount)
	if score > 1 {
		return 1
	}
	return score
}

// overallSentiment is positive when any extracted entity reads positive,
// negative when all read negative, neutral otherwise.
func overallSentiment(entities []ExtractedEntity) Sentiment {
	if len(entities) == 0 {
		return ""
	}
	negatives := 0
	for _, e := range entities {
		switch e.Sentiment {
		case SentimentPositive:
			return SentimentPositive
		case SentimentNegative:
			negatives++
		}
	}
	if negatives == len(entities) {
		return SentimentNegative
	}
	return SentimentNeutral
}

var defaultLexicon = []lexiconEntry{
	{
		trigger: "포슬린파크",
		entity: ExtractedEntity{
			Name:        "아리타 포슬린파크",
			Category:    CategoryPlace,
			Description: "유럽 궁전 외관의 도자기 테마파크, 역사 학습 및 체험 가능",
			Keywords:    []string{"도자기", "테마파크", "체험", "사진명소"},
			Sentiment:   SentimentPositive,
			Importance:  9.5,
		},
	},
	{
		trigger: "다케오 온천",
		entity: ExtractedEntity{
			Name:        "다케오 온천",
			Category:    CategoryPlace,
			Description: "1300년 역사의 온천, 부드러운 수질이 특징",
			Keywords:    []string{"온천", "휴양", "료칸", "피부미용"},
			Sentiment:   SentimentPositive,
			Importance:  9.2,
		},
	},
	{
		trigger: "신사",
		entity: ExtractedEntity{
			Name:        "작은 신사",
			Category:    CategoryPlace,
			Description: "다케오 온천 주변에 위치한 산책하기 좋은 신사",
			Keywords:    []string{"신사", "산책"},
			Sentiment:   SentimentPositive,
			Importance:  7.8,
		},
	},
	{
		trigger: "소바",
		entity: ExtractedEntity{
			Name:        "근처 소바집",
			Category:    CategoryRestaurant,
			Description: "점심 식사를 해결한 소바 전문점",
			Keywords:    []string{"소바", "맛집", "점심"},
			Sentiment:   SentimentNeutral,
		},
	},
	{
		trigger: "우레시노",
		entity: ExtractedEntity{
			Name:        "우레시노 온천",
			Category:    CategoryPlace,
			Description: "피부 미인 온천으로 유명",
			Keywords:    []string{"온천", "힐링"},
			Sentiment:   SentimentPositive,
			Importance:  8.4,
		},
	},
	{
		trigger: "사가규",
		entity: ExtractedEntity{
			Name:        "사가규 맛집",
			Category:    CategoryRestaurant,
			Description: "입에서 살살 녹는 사가규 전문점",
			Keywords:    []string{"맛집", "사가규"},
			Sentiment:   SentimentPositive,
			Importance:  8.1,
		},
	},
}
