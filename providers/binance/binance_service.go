package binance

import (
	"context"
	"os"
	"strconv"
	"time"

	"github.com/adshao/go-binance/v2"
	"github.com/jmarchena/marketbot/helpers"
	"github.com/jmarchena/marketbot/interfaces"
	"github.com/jmarchena/marketbot/models"
	"github.com/sdcoffey/big"
	"github.com/sdcoffey/techan"
)

// BinanceService serves quotes and candle history from the Binance
// market-data endpoints. Quote data only: the ledger fills orders
// itself.
type BinanceService struct {
	binanceClient *binance.Client
	interval      string
}

func NewBinanceService() *BinanceService {
	apiKey := os.Getenv("binanceAPIKey")
	apiSecret := os.Getenv("binanceAPISecret")
	interval := os.Getenv("interval")
	if interval == "" {
		interval = "1d"
	}
	return &BinanceService{
		binanceClient: binance.NewClient(apiKey, apiSecret),
		interval:      interval,
	}
}

func (bs *BinanceService) GetQuote(symbol string) (models.Quote, error) {
	stats, err := bs.binanceClient.NewListPriceChangeStatsService().Symbol(symbol).Do(context.Background())
	if err != nil {
		helpers.Logger.Errorln("error getting ticker stats for " + symbol + ": " + err.Error())
		return models.Quote{}, err
	}
	if len(stats) == 0 {
		return models.Quote{}, interfaces.ErrDataUnavailable
	}

	stat := stats[0]
	price, _ := strconv.ParseFloat(stat.LastPrice, 64)
	change, _ := strconv.ParseFloat(stat.PriceChange, 64)
	changePercent, _ := strconv.ParseFloat(stat.PriceChangePercent, 64)
	volume, _ := strconv.ParseFloat(stat.Volume, 64)
	high, _ := strconv.ParseFloat(stat.HighPrice, 64)
	low, _ := strconv.ParseFloat(stat.LowPrice, 64)
	open, _ := strconv.ParseFloat(stat.OpenPrice, 64)
	previousClose, _ := strconv.ParseFloat(stat.PrevClosePrice, 64)

	return models.Quote{
		Symbol:        symbol,
		Price:         price,
		Change:        change,
		ChangePercent: changePercent,
		Volume:        volume,
		High:          high,
		Low:           low,
		Open:          open,
		PreviousClose: previousClose,
		Timestamp:     time.Unix(stat.CloseTime/1000, 0),
	}, nil
}

func (bs *BinanceService) GetSeries(symbol string, limit int) (techan.TimeSeries, error) {
	timeSeries := techan.TimeSeries{}

	klines, err := bs.binanceClient.NewKlinesService().Symbol(symbol).
		Interval(bs.interval).Limit(limit).Do(context.Background())
	if err != nil {
		helpers.Logger.Errorln("error getting klines for " + symbol + ": " + err.Error())
		return timeSeries, err
	}
	if len(klines) == 0 {
		return timeSeries, interfaces.ErrDataUnavailable
	}

	for _, k := range klines {
		period := techan.NewTimePeriod(time.Unix(k.OpenTime/1000, 0),
			time.Duration(k.CloseTime-k.OpenTime)*time.Millisecond)
		candle := techan.NewCandle(period)
		candle.OpenPrice = big.NewFromString(k.Open)
		candle.ClosePrice = big.NewFromString(k.Close)
		candle.MaxPrice = big.NewFromString(k.High)
		candle.MinPrice = big.NewFromString(k.Low)
		candle.TradeCount = uint(k.TradeNum)
		candle.Volume = big.NewFromString(k.Volume)
		timeSeries.AddCandle(candle)
	}

	return timeSeries, nil
}
