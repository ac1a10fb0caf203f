package synthetic

import (
	"hash/fnv"
	"math/rand"
	"sync"
	"time"

	"github.com/jmarchena/marketbot/models"
	"github.com/sdcoffey/big"
	"github.com/sdcoffey/techan"
)

const seriesLength = 120

// SyntheticService is a seedable quote source producing a daily
// random-walk per symbol. The same seed always yields the same candles
// and quotes, which is what the engine tests lean on.
type SyntheticService struct {
	mu     sync.Mutex
	seed   int64
	series map[string]*techan.TimeSeries
}

func NewSyntheticService(seed int64) *SyntheticService {
	return &SyntheticService{
		seed:   seed,
		series: make(map[string]*techan.TimeSeries),
	}
}

func (ss *SyntheticService) GetQuote(symbol string) (models.Quote, error) {
	series := ss.seriesFor(symbol)
	last := series.LastCandle()
	previous := series.Candles[len(series.Candles)-2]

	price := last.ClosePrice.Float()
	previousClose := previous.ClosePrice.Float()
	change := price - previousClose

	return models.Quote{
		Symbol:        symbol,
		Price:         price,
		Change:        change,
		ChangePercent: change / previousClose * 100,
		Volume:        last.Volume.Float(),
		High:          last.MaxPrice.Float(),
		Low:           last.MinPrice.Float(),
		Open:          last.OpenPrice.Float(),
		PreviousClose: previousClose,
		Timestamp:     last.Period.End,
	}, nil
}

func (ss *SyntheticService) GetSeries(symbol string, limit int) (techan.TimeSeries, error) {
	series := ss.seriesFor(symbol)
	candles := series.Candles
	if limit > 0 && limit < len(candles) {
		candles = candles[len(candles)-limit:]
	}
	return techan.TimeSeries{Candles: candles}, nil
}

// seriesFor lazily walks the symbol's series once and keeps it, so
// every later read sees the same market.
func (ss *SyntheticService) seriesFor(symbol string) *techan.TimeSeries {
	ss.mu.Lock()
	defer ss.mu.Unlock()

	if series, generated := ss.series[symbol]; generated {
		return series
	}

	rng := rand.New(rand.NewSource(ss.seed + symbolSeed(symbol)))
	price := 50 + rng.Float64()*450

	series := &techan.TimeSeries{}
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < seriesLength; i++ {
		open := price
		price *= 1 + (rng.Float64()-0.5)*0.04
		high := open
		low := price
		if price > open {
			high = price
			low = open
		}
		high *= 1 + rng.Float64()*0.01
		low *= 1 - rng.Float64()*0.01

		period := techan.NewTimePeriod(start.Add(time.Duration(i)*24*time.Hour), 24*time.Hour)
		candle := techan.NewCandle(period)
		candle.OpenPrice = big.NewDecimal(open)
		candle.ClosePrice = big.NewDecimal(price)
		candle.MaxPrice = big.NewDecimal(high)
		candle.MinPrice = big.NewDecimal(low)
		candle.Volume = big.NewDecimal(500000 + rng.Float64()*2500000)
		series.AddCandle(candle)
	}

	ss.series[symbol] = series
	return series
}

func symbolSeed(symbol string) int64 {
	h := fnv.New64a()
	h.Write([]byte(symbol))
	return int64(h.Sum64() % (1 << 31))
}
