package analytics

import "time"

type Trend string

const (
	TrendBullish Trend = "bullish"
	TrendBearish Trend = "bearish"
	TrendNeutral Trend = "neutral"
)

// StockPrediction is the output of the weighted rule accumulation.
// Signals keep their generation order and are capped at four.
type StockPrediction struct {
	Symbol         string    `json:"symbol"`
	CurrentPrice   float64   `json:"currentPrice"`
	PredictedPrice float64   `json:"predictedPrice"`
	Confidence     float64   `json:"confidence"`
	Timeframe      string    `json:"timeframe"`
	Trend          Trend     `json:"trend"`
	Signals        []string  `json:"signals"`
	Rationale      string    `json:"rationale"`
	GeneratedAt    time.Time `json:"generatedAt"`
}
