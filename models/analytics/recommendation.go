package analytics

import "time"

type Action string

type RiskLevel string

type MarketSentiment string

const (
	ActionBuy  Action = "BUY"
	ActionSell Action = "SELL"
	ActionHold Action = "HOLD"

	RiskLow    RiskLevel = "LOW"
	RiskMedium RiskLevel = "MEDIUM"
	RiskHigh   RiskLevel = "HIGH"

	MarketBullish MarketSentiment = "BULLISH"
	MarketBearish MarketSentiment = "BEARISH"
	MarketNeutral MarketSentiment = "NEUTRAL"
)

// TradingRecommendation is the per-symbol verdict of the sweep.
// PotentialProfit carries the absolute percentage move; the direction
// lives in Action.
type TradingRecommendation struct {
	Symbol          string    `json:"symbol"`
	Action          Action    `json:"action"`
	Confidence      float64   `json:"confidence"`
	Rationale       string    `json:"rationale"`
	TargetPrice     float64   `json:"targetPrice"`
	StopLoss        float64   `json:"stopLoss"`
	PotentialProfit float64   `json:"potentialProfit"`
	RiskLevel       RiskLevel `json:"riskLevel"`
	Timeframe       string    `json:"timeframe"`
	GeneratedAt     time.Time `json:"generatedAt"`
}

// BotAnalysis aggregates one full sweep over the tracked universe.
type BotAnalysis struct {
	MarketSentiment MarketSentiment         `json:"marketSentiment"`
	VolatilityIndex float64                 `json:"volatilityIndex"`
	Recommendations []TradingRecommendation `json:"recommendations"`
	Summary         string                  `json:"summary"`
	RiskWarnings    []string                `json:"riskWarnings"`
}
