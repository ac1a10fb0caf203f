package services

import (
	"math/rand"
	"testing"
	"time"

	"github.com/jmarchena/marketbot/interfaces"
	"github.com/jmarchena/marketbot/models/analytics"
	"github.com/sdcoffey/big"
	"github.com/sdcoffey/techan"
	"github.com/stretchr/testify/assert"
)

func testSeries(closes []float64) *techan.TimeSeries {
	series := &techan.TimeSeries{}
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, price := range closes {
		period := techan.NewTimePeriod(start.Add(time.Duration(i)*24*time.Hour), 24*time.Hour)
		candle := techan.NewCandle(period)
		candle.OpenPrice = big.NewDecimal(price)
		candle.ClosePrice = big.NewDecimal(price)
		candle.MaxPrice = big.NewDecimal(price)
		candle.MinPrice = big.NewDecimal(price)
		candle.Volume = big.NewDecimal(1500000)
		series.AddCandle(candle)
	}
	return series
}

func flatSeries(length int, price float64) *techan.TimeSeries {
	closes := make([]float64, length)
	for i := range closes {
		closes[i] = price
	}
	return testSeries(closes)
}

func newTestAnalyzer() *MarketAnalysisService {
	return NewMarketAnalysisService(30*time.Second, rand.New(rand.NewSource(1)))
}

func TestAnalyzeRejectsShortHistory(t *testing.T) {
	analyzer := newTestAnalyzer()

	_, err := analyzer.Analyze("AAPL", flatSeries(10, 100), 100)

	assert.ErrorIs(t, err, interfaces.ErrDataUnavailable)
}

func TestAnalyzeFloorsVolatility(t *testing.T) {
	analyzer := newTestAnalyzer()

	analysis, err := analyzer.Analyze("AAPL", flatSeries(20, 100), 100)

	assert.NoError(t, err)
	assert.Equal(t, 0.1, analysis.Volatility)
}

func TestAnalyzeIsIdempotentWithinTTL(t *testing.T) {
	analyzer := newTestAnalyzer()
	series := flatSeries(25, 100)

	first, err := analyzer.Analyze("AAPL", series, 100)
	assert.NoError(t, err)
	second, err := analyzer.Analyze("AAPL", series, 100)
	assert.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestAnalyzeSentimentFollowsRecentTrend(t *testing.T) {
	analyzer := newTestAnalyzer()

	rising := []float64{100, 100, 100, 100, 100, 100, 100, 100, 100, 100,
		100, 100, 100, 100, 100, 100, 110, 120, 130, 140}
	analysis, err := analyzer.Analyze("UP", testSeries(rising), 140)
	assert.NoError(t, err)
	assert.Equal(t, analytics.SentimentPositive, analysis.Sentiment)

	falling := []float64{100, 100, 100, 100, 100, 100, 100, 100, 100, 100,
		100, 100, 100, 100, 100, 100, 90, 80, 70, 60}
	analysis, err = analyzer.Analyze("DOWN", testSeries(falling), 60)
	assert.NoError(t, err)
	assert.Equal(t, analytics.SentimentNegative, analysis.Sentiment)

	analysis, err = analyzer.Analyze("FLAT", flatSeries(20, 100), 100)
	assert.NoError(t, err)
	assert.Equal(t, analytics.SentimentNeutral, analysis.Sentiment)
}

func TestAnalyzeIndicatorBundle(t *testing.T) {
	analyzer := newTestAnalyzer()

	closes := make([]float64, 30)
	for i := range closes {
		closes[i] = 100 + float64(i)
	}
	analysis, err := analyzer.Analyze("AAPL", testSeries(closes), closes[len(closes)-1])

	assert.NoError(t, err)
	assert.GreaterOrEqual(t, analysis.Indicators.RSI, 0.0)
	assert.LessOrEqual(t, analysis.Indicators.RSI, 100.0)
	// the indicator run sees the trimmed 20-sample window, which can
	// never cover MACD's slow period
	assert.Equal(t, 0.0, analysis.Indicators.MACD)
	assert.InDelta(t, 1500000.0, analysis.Volume, 1e-9)
	assert.Greater(t, analysis.Momentum, 0.0)
}
