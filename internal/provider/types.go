package provider

import "time"

// Article is a normalized news record from any news provider.
// Dedup identity is the lower-cased URL.
type Article struct {
	Title       string    `json:"title"`
	URL         string    `json:"url"`
	Source      string    `json:"source"`
	PublishedAt time.Time `json:"publishedAt"`
	Snippet     string    `json:"snippet"`
	Relevance   float64   `json:"relevance"`
}

// PriceQuote is a normalized price record for one symbol.
// Dedup identity is the upper-cased symbol.
type PriceQuote struct {
	Symbol        string    `json:"symbol"`
	Price         float64   `json:"price"`
	Change        float64   `json:"change"`
	ChangePercent float64   `json:"changePercent"`
	Volume        int64     `json:"volume"`
	High          float64   `json:"high"`
	Low           float64   `json:"low"`
	Timestamp     time.Time `json:"timestamp"`
	Source        string    `json:"source"`
}

// PostMetrics holds engagement counters for a social post.
type PostMetrics struct {
	Likes   int `json:"likes"`
	Reposts int `json:"reposts"`
	Replies int `json:"replies"`
}

// SocialPost is a normalized social record. Provider IDs are not
// trustworthy across sources, so dedup identity is the first 80
// characters of the text.
type SocialPost struct {
	ID        string          `json:"id"`
	Text      string          `json:"text"`
	Author    string          `json:"author"`
	CreatedAt time.Time       `json:"createdAt"`
	Metrics   PostMetrics     `json:"metrics"`
	Sentiment SentimentResult `json:"sentiment"`
	Source    string          `json:"source"`
}

// SentimentResult is derived from a post or article text and always
// travels embedded in the record it scores.
type SentimentResult struct {
	Score          int     `json:"score"`
	Comparative    float64 `json:"comparative"`
	Classification string  `json:"classification"`
}

// Outcome is one tradable outcome of a prediction market.
type Outcome struct {
	Name        string  `json:"name"`
	Probability float64 `json:"probability"`
}

// Market is a normalized prediction-market record.
type Market struct {
	ID       string    `json:"id"`
	Question string    `json:"question"`
	Outcomes []Outcome `json:"outcomes"`
	Volume   float64   `json:"volume"`
	EndDate  time.Time `json:"endDate"`
	Source   string    `json:"source"`
}
