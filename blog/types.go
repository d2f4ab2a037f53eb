// Package blog implements the entity extraction and scoring engine that
// turns raw travel blog posts into relevance-ranked points of interest.
package blog

// Category classifies an extracted entity.
type Category string

// Entity categories.
const (
	CategoryPlace      Category = "place"
	CategoryActivity   Category = "activity"
	CategoryRestaurant Category = "restaurant"
	CategoryHotel      Category = "hotel"
	CategoryTip        Category = "tip"
)

// Sentiment describes the tone of a source toward an entity.
type Sentiment string

// Sentiment values.
const (
	SentimentPositive Sentiment = "positive"
	SentimentNegative Sentiment = "negative"
	SentimentNeutral  Sentiment = "neutral"
)

// RawContentRecord is one unstructured source document, typically a blog
// post. Immutable.
type RawContentRecord struct {
	URL   string `json:"url"`
	Title string `json:"title"`
	Body  string `json:"body"`
}

// ExtractedEntity is one named thing found in a source document.
// Importance is a 0-10 editorial weight; zero means unscored.
type ExtractedEntity struct {
	Name        string    `json:"name"`
	Category    Category  `json:"category"`
	Description string    `json:"description"`
	Keywords    []string  `json:"keywords,omitempty"`
	Sentiment   Sentiment `json:"sentiment,omitempty"`
	Importance  float64   `json:"importance,omitempty"`
}

// AnalyzedContent is the analysis of one RawContentRecord.
// RelevanceScore is in [0,1] and is rewritten by the scoring step.
type AnalyzedContent struct {
	SourceURL        string            `json:"sourceUrl"`
	Title            string            `json:"title"`
	Summary          string            `json:"summary"`
	Entities         []ExtractedEntity `json:"entities"`
	OverallSentiment Sentiment         `json:"overallSentiment,omitempty"`
	RelevanceScore   float64           `json:"relevanceScore"`
}

// RankedPlace is one entry of the final, descending-score output of the
// pipeline. Immutable.
type RankedPlace struct {
	Name        string   `json:"name"`
	Score       float64  `json:"score"`
	Description string   `json:"description"`
	Keywords    []string `json:"keywords,omitempty"`
	SourceURL   string   `json:"sourceUrl"`
}

// UserContext carries the traveler's location and comma-separated interests
// into analysis and scoring.
type UserContext struct {
	Location  string `json:"location,omitempty"`
	Interests string `json:"interests,omitempty"`
}
