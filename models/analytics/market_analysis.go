package analytics

// Sentiment classification over the recent price window.
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNegative Sentiment = "negative"
	SentimentNeutral  Sentiment = "neutral"
)

// Indicators bundles the technical indicator values computed for one
// analysis window.
type Indicators struct {
	RSI  float64 `json:"rsi"`
	MACD float64 `json:"macd"`
	SMA  float64 `json:"sma"`
	EMA  float64 `json:"ema"`
}

// MarketAnalysis is the per-symbol snapshot produced by the analyzer.
// Volatility is floored at 0.1 before the snapshot is stored.
type MarketAnalysis struct {
	Symbol     string     `json:"symbol"`
	Sentiment  Sentiment  `json:"sentiment"`
	Volatility float64    `json:"volatility"`
	Momentum   float64    `json:"momentum"`
	Volume     float64    `json:"volume"`
	Indicators Indicators `json:"indicators"`
}
