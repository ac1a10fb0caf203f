// Package indicators holds the pure technical functions the analyzer
// runs over a price window. Every function is stateless and leaves the
// series untouched.
package indicators

import (
	"math"

	"github.com/jmarchena/marketbot/helpers"
	"github.com/sdcoffey/techan"
)

const rsiPeriod = 14

// RSI computes the relative strength index over the last 15 closes
// with 14-period averaging. Series shorter than the period report the
// neutral 50.
func RSI(series *techan.TimeSeries) float64 {
	closes := ClosePrices(series)
	n := len(closes)
	if n < rsiPeriod {
		return 50
	}

	window := closes
	if n > rsiPeriod+1 {
		window = closes[n-(rsiPeriod+1):]
	}

	gains := 0.0
	losses := 0.0
	for i := 1; i < len(window); i++ {
		delta := window[i] - window[i-1]
		if delta > 0 {
			gains += delta
		} else {
			losses += -delta
		}
	}

	avgGain := gains / rsiPeriod
	avgLoss := losses / rsiPeriod
	if avgLoss == 0 {
		return 100
	}
	rs := avgGain / avgLoss
	return 100 - 100/(1+rs)
}

// EMA seeds with the first close and folds the usual 2/(period+1)
// multiplier over the rest.
func EMA(series *techan.TimeSeries, period int) float64 {
	closes := ClosePrices(series)
	if len(closes) == 0 {
		return 0
	}
	k := 2.0 / float64(period+1)
	ema := closes[0]
	for i := 1; i < len(closes); i++ {
		ema = closes[i]*k + ema*(1-k)
	}
	return ema
}

// SMA averages the last period closes, or whatever is available when
// the series is shorter.
func SMA(series *techan.TimeSeries, period int) float64 {
	closes := ClosePrices(series)
	if len(closes) == 0 {
		return 0
	}
	if len(closes) > period {
		closes = closes[len(closes)-period:]
	}
	return helpers.Mean(closes)
}

// MACD is EMA(12) minus EMA(26), zero when the series cannot cover the
// slow period.
func MACD(series *techan.TimeSeries) float64 {
	if len(series.Candles) < 26 {
		return 0
	}
	return EMA(series, 12) - EMA(series, 26)
}

// Volatility is the annualized standard deviation of simple returns.
// The 0.1 floor belongs to the analyzer, not here.
func Volatility(series *techan.TimeSeries) float64 {
	closes := ClosePrices(series)
	if len(closes) < 2 {
		return 0
	}
	returns := make([]float64, 0, len(closes)-1)
	for i := 1; i < len(closes); i++ {
		if closes[i-1] == 0 {
			continue
		}
		returns = append(returns, closes[i]/closes[i-1]-1)
	}
	return helpers.StdDev(returns, helpers.Mean(returns)) * math.Sqrt(252)
}

// Momentum compares the mean of the last five closes against the five
// before them.
func Momentum(series *techan.TimeSeries) float64 {
	closes := ClosePrices(series)
	n := len(closes)
	if n < 10 {
		return 0
	}
	recent := helpers.Mean(closes[n-5:])
	prior := helpers.Mean(closes[n-10 : n-5])
	if prior == 0 {
		return 0
	}
	return (recent - prior) / prior
}

// ClosePrices extracts the close column as floats.
func ClosePrices(series *techan.TimeSeries) []float64 {
	closes := make([]float64, 0, len(series.Candles))
	for _, candle := range series.Candles {
		closes = append(closes, candle.ClosePrice.Float())
	}
	return closes
}
