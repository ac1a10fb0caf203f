package services

import (
	"math/rand"
	"testing"
	"time"

	"github.com/jmarchena/marketbot/models"
	"github.com/jmarchena/marketbot/models/analytics"
	"github.com/sdcoffey/techan"
	"github.com/stretchr/testify/assert"
)

type fakeUniverseService struct {
	series map[string]*techan.TimeSeries
}

func (f *fakeUniverseService) GetQuote(symbol string) (models.Quote, error) {
	series, known := f.series[symbol]
	if !known {
		return models.Quote{}, assert.AnError
	}
	last := series.LastCandle()
	return models.Quote{
		Symbol: symbol,
		Price:  last.ClosePrice.Float(),
		Volume: last.Volume.Float(),
	}, nil
}

func (f *fakeUniverseService) GetSeries(symbol string, limit int) (techan.TimeSeries, error) {
	series, known := f.series[symbol]
	if !known {
		return techan.TimeSeries{}, assert.AnError
	}
	return *series, nil
}

func alternatingSeries(length int, low float64, high float64) *techan.TimeSeries {
	closes := make([]float64, length)
	for i := range closes {
		if i%2 == 0 {
			closes[i] = low
		} else {
			closes[i] = high
		}
	}
	return testSeries(closes)
}

func newSweep(symbols []string, series map[string]*techan.TimeSeries) *RecommendationService {
	analyzer := NewMarketAnalysisService(30*time.Second, rand.New(rand.NewSource(1)))
	generator := NewPredictionService()
	generator.now = fixedClock()
	return NewRecommendationService(&fakeUniverseService{series: series}, analyzer, generator, symbols)
}

func TestGenerateRecommendationsSweep(t *testing.T) {
	series := map[string]*techan.TimeSeries{
		"ALPHA": flatSeries(25, 100),
		"GAMMA": alternatingSeries(25, 100, 140),
	}
	sweep := newSweep([]string{"ALPHA", "BETA", "GAMMA"}, series)

	botAnalysis := sweep.GenerateRecommendations()

	// BETA has no data and is skipped, the others are ranked by the
	// size of the expected move
	assert.Len(t, botAnalysis.Recommendations, 2)
	for i := 1; i < len(botAnalysis.Recommendations); i++ {
		assert.GreaterOrEqual(t,
			botAnalysis.Recommendations[i-1].PotentialProfit,
			botAnalysis.Recommendations[i].PotentialProfit)
	}
	assert.NotEmpty(t, botAnalysis.Summary)
}

func TestFlatMarketIsSoldOnMaxedRSI(t *testing.T) {
	// a perfectly flat window has zero losses, which maxes the RSI and
	// tips the prediction bearish
	sweep := newSweep([]string{"ALPHA"}, map[string]*techan.TimeSeries{
		"ALPHA": flatSeries(25, 100),
	})

	botAnalysis := sweep.GenerateRecommendations()

	assert.Len(t, botAnalysis.Recommendations, 1)
	recommendation := botAnalysis.Recommendations[0]
	assert.Equal(t, analytics.ActionSell, recommendation.Action)
	assert.InDelta(t, 5.0, recommendation.PotentialProfit, 1e-9)
	assert.InDelta(t, 95.0, recommendation.TargetPrice, 1e-9)
	assert.InDelta(t, 105.0, recommendation.StopLoss, 1e-9)
	assert.Equal(t, analytics.RiskLow, recommendation.RiskLevel)
}

func TestHighVolatilitySymbolRaisesRiskWarning(t *testing.T) {
	sweep := newSweep([]string{"GAMMA"}, map[string]*techan.TimeSeries{
		"GAMMA": alternatingSeries(25, 100, 140),
	})

	botAnalysis := sweep.GenerateRecommendations()

	assert.Len(t, botAnalysis.Recommendations, 1)
	assert.Equal(t, analytics.RiskHigh, botAnalysis.Recommendations[0].RiskLevel)
	assert.Len(t, botAnalysis.RiskWarnings, 1)
	assert.Contains(t, botAnalysis.RiskWarnings[0], "GAMMA")
	assert.Greater(t, botAnalysis.VolatilityIndex, 40.0)
}

func TestNoBuysReadsBearish(t *testing.T) {
	sweep := newSweep([]string{"ALPHA"}, map[string]*techan.TimeSeries{
		"ALPHA": flatSeries(25, 100),
	})

	botAnalysis := sweep.GenerateRecommendations()

	assert.Equal(t, analytics.MarketBearish, botAnalysis.MarketSentiment)
}
