package services

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/jmarchena/marketbot/helpers"
	"github.com/jmarchena/marketbot/indicators"
	"github.com/jmarchena/marketbot/interfaces"
	"github.com/jmarchena/marketbot/models/analytics"
	"github.com/patrickmn/go-cache"
	"github.com/sdcoffey/techan"
)

var logger = helpers.Logger

const (
	analysisWindow     = 20
	sentimentThreshold = 0.015
	volatilityFloor    = 0.1
)

// MarketAnalysisService turns raw price history into a per-symbol
// MarketAnalysis snapshot. Snapshots are memoized per symbol and price
// for the cache TTL, so repeated calls within the window are idempotent.
type MarketAnalysisService struct {
	cache *cache.Cache
	rng   *rand.Rand
}

// NewMarketAnalysisService builds an analyzer with the given snapshot
// TTL. The rand source drives the small sentiment perturbation; seed it
// to make analyses reproducible.
func NewMarketAnalysisService(ttl time.Duration, rng *rand.Rand) *MarketAnalysisService {
	return &MarketAnalysisService{
		cache: cache.New(ttl, 2*ttl),
		rng:   rng,
	}
}

// Analyze computes the snapshot for the given history and price. The
// last 20 samples feed the indicator run; shorter histories surface
// interfaces.ErrDataUnavailable instead of being padded.
func (mas *MarketAnalysisService) Analyze(symbol string, series *techan.TimeSeries, currentPrice float64) (analytics.MarketAnalysis, error) {
	key := analysisCacheKey(symbol, currentPrice)
	if cached, found := mas.cache.Get(key); found {
		return cached.(analytics.MarketAnalysis), nil
	}

	if series == nil || len(series.Candles) < analysisWindow {
		logger.Warnln(fmt.Sprintf("not enough history to analyze %s: %d samples, need %d",
			symbol, seriesLen(series), analysisWindow))
		return analytics.MarketAnalysis{}, interfaces.ErrDataUnavailable
	}

	window := &techan.TimeSeries{Candles: series.Candles[len(series.Candles)-analysisWindow:]}

	volatility := indicators.Volatility(window)
	if volatility < volatilityFloor {
		volatility = volatilityFloor
	}

	analysis := analytics.MarketAnalysis{
		Symbol:     symbol,
		Sentiment:  mas.classifySentiment(window),
		Volatility: volatility,
		Momentum:   indicators.Momentum(window),
		Volume:     window.LastCandle().Volume.Float(),
		Indicators: analytics.Indicators{
			RSI:  indicators.RSI(window),
			MACD: indicators.MACD(window),
			SMA:  indicators.SMA(window, 20),
			EMA:  indicators.EMA(window, 12),
		},
	}

	mas.cache.SetDefault(key, analysis)
	return analysis, nil
}

// classifySentiment compares the average of the last five closes
// against the first of those five, with a small random perturbation so
// borderline windows don't flip-flop on the same side every tick.
func (mas *MarketAnalysisService) classifySentiment(window *techan.TimeSeries) analytics.Sentiment {
	closes := indicators.ClosePrices(window)
	lastFive := closes[len(closes)-5:]
	base := lastFive[0]
	if base == 0 {
		return analytics.SentimentNeutral
	}

	change := helpers.Mean(lastFive)/base - 1
	change += (mas.rng.Float64() - 0.5) * 0.004

	if change > sentimentThreshold {
		return analytics.SentimentPositive
	}
	if change < -sentimentThreshold {
		return analytics.SentimentNegative
	}
	return analytics.SentimentNeutral
}

func analysisCacheKey(symbol string, price float64) string {
	return fmt.Sprintf("%s:%.2f", symbol, price)
}

func seriesLen(series *techan.TimeSeries) int {
	if series == nil {
		return 0
	}
	return len(series.Candles)
}
