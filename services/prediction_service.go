package services

import (
	"fmt"
	"time"

	"github.com/jmarchena/marketbot/helpers"
	"github.com/jmarchena/marketbot/models/analytics"
	"github.com/patrickmn/go-cache"
)

const (
	predictionTimeframe = "1W"
	maxSignals          = 4
	tickSeconds         = 30
)

// PredictionService applies the weighted rule accumulation to a market
// analysis and produces a price prediction. Results are memoized per
// symbol, price and 30-second tick.
type PredictionService struct {
	cache *cache.Cache
	now   func() time.Time
}

func NewPredictionService() *PredictionService {
	return &PredictionService{
		cache: cache.New(tickSeconds*time.Second, 2*tickSeconds*time.Second),
		now:   time.Now,
	}
}

// Generate runs the ordered rule checks. Each fired rule nudges the
// price delta, raises the confidence and appends a readable signal;
// only the first four signals are kept, in generation order.
func (ps *PredictionService) Generate(symbol string, analysis analytics.MarketAnalysis, currentPrice float64) analytics.StockPrediction {
	key := fmt.Sprintf("%s:%.2f:%d", symbol, currentPrice, ps.now().Unix()/tickSeconds)
	if cached, found := ps.cache.Get(key); found {
		return cached.(analytics.StockPrediction)
	}

	delta := 0.0
	confidence := 50.0
	var signals []string

	rsi := analysis.Indicators.RSI
	switch {
	case rsi > 75:
		delta -= 0.04
		confidence += 20
		signals = append(signals, fmt.Sprintf("RSI %.1f deeply overbought", rsi))
	case rsi > 70:
		delta -= 0.02
		confidence += 15
		signals = append(signals, fmt.Sprintf("RSI %.1f overbought", rsi))
	case rsi < 25:
		delta += 0.05
		confidence += 25
		signals = append(signals, fmt.Sprintf("RSI %.1f deeply oversold", rsi))
	case rsi < 30:
		delta += 0.03
		confidence += 20
		signals = append(signals, fmt.Sprintf("RSI %.1f oversold", rsi))
	}

	macd := analysis.Indicators.MACD
	switch {
	case macd > 2:
		delta += 0.025
		confidence += 15
		signals = append(signals, fmt.Sprintf("MACD %.2f strongly positive", macd))
	case macd > 0:
		delta += 0.015
		confidence += 10
		signals = append(signals, fmt.Sprintf("MACD %.2f positive", macd))
	case macd < -2:
		delta -= 0.025
		confidence += 15
		signals = append(signals, fmt.Sprintf("MACD %.2f strongly negative", macd))
	default:
		delta -= 0.01
		confidence += 8
		signals = append(signals, fmt.Sprintf("MACD %.2f flat to negative", macd))
	}

	switch analysis.Sentiment {
	case analytics.SentimentPositive:
		delta += 0.03
		confidence += 18
		signals = append(signals, "positive market sentiment")
	case analytics.SentimentNegative:
		delta -= 0.025
		confidence += 15
		signals = append(signals, "negative market sentiment")
	}

	momentum := analysis.Momentum
	switch {
	case momentum > 0.02:
		delta += 0.02
		confidence += 12
		signals = append(signals, fmt.Sprintf("strong upward momentum %.1f%%", momentum*100))
	case momentum > 0.005:
		delta += 0.01
		confidence += 8
		signals = append(signals, fmt.Sprintf("mild upward momentum %.1f%%", momentum*100))
	case momentum < -0.02:
		delta -= 0.015
		confidence += 10
		signals = append(signals, fmt.Sprintf("downward momentum %.1f%%", momentum*100))
	}

	switch {
	case analysis.Volume > 2000000:
		confidence += 8
		signals = append(signals, "very heavy volume")
	case analysis.Volume > 1000000:
		confidence += 5
		signals = append(signals, "heavy volume")
	}

	switch {
	case analysis.Volatility > 0.4:
		confidence -= 5
		signals = append(signals, fmt.Sprintf("elevated volatility %.2f", analysis.Volatility))
	case analysis.Volatility < 0.15:
		confidence += 3
		signals = append(signals, fmt.Sprintf("calm volatility %.2f", analysis.Volatility))
	}

	if len(signals) > maxSignals {
		signals = signals[:maxSignals]
	}

	trend := analytics.TrendNeutral
	if delta > 0.01 {
		trend = analytics.TrendBullish
	} else if delta < -0.01 {
		trend = analytics.TrendBearish
	}

	prediction := analytics.StockPrediction{
		Symbol:         symbol,
		CurrentPrice:   currentPrice,
		PredictedPrice: currentPrice * (1 + delta),
		Confidence:     helpers.Clamp(confidence, 45, 95),
		Timeframe:      predictionTimeframe,
		Trend:          trend,
		Signals:        signals,
		Rationale:      buildRationale(analysis),
		GeneratedAt:    ps.now(),
	}

	ps.cache.SetDefault(key, prediction)
	return prediction
}

// buildRationale assembles the fixed template sentence. Same analysis
// in, same sentence out.
func buildRationale(analysis analytics.MarketAnalysis) string {
	rsiBand := "a balanced RSI"
	if analysis.Indicators.RSI > 70 {
		rsiBand = "an overbought RSI"
	} else if analysis.Indicators.RSI < 30 {
		rsiBand = "an oversold RSI"
	}

	macdSign := "a negative MACD"
	if analysis.Indicators.MACD > 0 {
		macdSign = "a positive MACD"
	}

	volumeTier := "light volume"
	if analysis.Volume > 2000000 {
		volumeTier = "very heavy volume"
	} else if analysis.Volume > 1000000 {
		volumeTier = "heavy volume"
	}

	return fmt.Sprintf("Combination of %s, %s and %s sentiment on %s.",
		rsiBand, macdSign, analysis.Sentiment, volumeTier)
}
