package indicators

import (
	"testing"
	"time"

	"github.com/sdcoffey/big"
	"github.com/sdcoffey/techan"
	"github.com/stretchr/testify/assert"
)

func seriesFromCloses(closes []float64) *techan.TimeSeries {
	series := &techan.TimeSeries{}
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, close := range closes {
		period := techan.NewTimePeriod(start.Add(time.Duration(i)*24*time.Hour), 24*time.Hour)
		candle := techan.NewCandle(period)
		candle.OpenPrice = big.NewDecimal(close)
		candle.ClosePrice = big.NewDecimal(close)
		candle.MaxPrice = big.NewDecimal(close)
		candle.MinPrice = big.NewDecimal(close)
		candle.Volume = big.NewDecimal(1000000)
		series.AddCandle(candle)
	}
	return series
}

func TestRSIMonotonicRiseIsMaxed(t *testing.T) {
	closes := make([]float64, 15)
	for i := range closes {
		closes[i] = 100 + float64(i)
	}

	assert.Equal(t, 100.0, RSI(seriesFromCloses(closes)))
}

func TestRSIShortSeriesIsNeutral(t *testing.T) {
	closes := []float64{100, 101, 99, 102, 98}

	assert.Equal(t, 50.0, RSI(seriesFromCloses(closes)))
}

func TestRSIStaysInBounds(t *testing.T) {
	closes := []float64{100}
	for i := 0; i < 40; i++ {
		if i%3 == 0 {
			closes = append(closes, closes[len(closes)-1]*0.93)
		} else {
			closes = append(closes, closes[len(closes)-1]*1.04)
		}
		rsi := RSI(seriesFromCloses(closes))
		assert.GreaterOrEqual(t, rsi, 0.0)
		assert.LessOrEqual(t, rsi, 100.0)
	}
}

func TestEMASeedsWithFirstClose(t *testing.T) {
	assert.Equal(t, 42.0, EMA(seriesFromCloses([]float64{42}), 12))
}

func TestEMAFollowsRecurrence(t *testing.T) {
	closes := []float64{10, 11, 12}
	k := 2.0 / 4.0
	ema := closes[0]
	ema = closes[1]*k + ema*(1-k)
	ema = closes[2]*k + ema*(1-k)

	assert.InDelta(t, ema, EMA(seriesFromCloses(closes), 3), 1e-9)
}

func TestSMAAveragesLastPeriod(t *testing.T) {
	closes := []float64{1, 2, 3, 4, 5, 6}

	assert.InDelta(t, 5.0, SMA(seriesFromCloses(closes), 3), 1e-9)
}

func TestSMAUsesWhatIsAvailable(t *testing.T) {
	assert.InDelta(t, 2.0, SMA(seriesFromCloses([]float64{1, 2, 3}), 20), 1e-9)
}

func TestMACDNeedsSlowPeriod(t *testing.T) {
	closes := make([]float64, 25)
	for i := range closes {
		closes[i] = 100 + float64(i)
	}

	assert.Equal(t, 0.0, MACD(seriesFromCloses(closes)))
}

func TestMACDPositiveInUptrend(t *testing.T) {
	closes := make([]float64, 40)
	for i := range closes {
		closes[i] = 100 + float64(i)*2
	}

	assert.Greater(t, MACD(seriesFromCloses(closes)), 0.0)
}

func TestVolatilityOfFlatSeriesIsZero(t *testing.T) {
	closes := []float64{100, 100, 100, 100, 100}

	assert.Equal(t, 0.0, Volatility(seriesFromCloses(closes)))
}

func TestMomentumShortSeriesIsZero(t *testing.T) {
	assert.Equal(t, 0.0, Momentum(seriesFromCloses([]float64{1, 2, 3, 4, 5})))
}

func TestMomentumComparesWindows(t *testing.T) {
	closes := []float64{100, 100, 100, 100, 100, 110, 110, 110, 110, 110}

	assert.InDelta(t, 0.1, Momentum(seriesFromCloses(closes)), 1e-9)
}
