package synthetic

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSameSeedSameMarket(t *testing.T) {
	first := NewSyntheticService(42)
	second := NewSyntheticService(42)

	quoteA, err := first.GetQuote("AAPL")
	assert.NoError(t, err)
	quoteB, err := second.GetQuote("AAPL")
	assert.NoError(t, err)

	assert.Equal(t, quoteA, quoteB)
}

func TestSymbolsWalkIndependently(t *testing.T) {
	service := NewSyntheticService(42)

	quoteA, _ := service.GetQuote("AAPL")
	quoteB, _ := service.GetQuote("MSFT")

	assert.NotEqual(t, quoteA.Price, quoteB.Price)
}

func TestSeriesIsStableAcrossReads(t *testing.T) {
	service := NewSyntheticService(7)

	seriesA, err := service.GetSeries("TSLA", 60)
	assert.NoError(t, err)
	seriesB, err := service.GetSeries("TSLA", 60)
	assert.NoError(t, err)

	assert.Equal(t, 60, len(seriesA.Candles))
	assert.Equal(t, seriesA.Candles, seriesB.Candles)
}

func TestQuoteMatchesLastCandle(t *testing.T) {
	service := NewSyntheticService(7)

	quote, err := service.GetQuote("TSLA")
	assert.NoError(t, err)
	series, err := service.GetSeries("TSLA", 0)
	assert.NoError(t, err)

	assert.Equal(t, series.LastCandle().ClosePrice.Float(), quote.Price)
}
