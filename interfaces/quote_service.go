package interfaces

import (
	"errors"

	"github.com/jmarchena/marketbot/models"
	"github.com/sdcoffey/techan"
)

// ErrDataUnavailable is returned when a provider cannot serve a quote
// or enough history for a symbol. The engine surfaces it instead of
// padding with synthetic values.
var ErrDataUnavailable = errors.New("error: quote data unavailable")

type QuoteService interface {
	GetQuote(symbol string) (models.Quote, error)
	GetSeries(symbol string, limit int) (techan.TimeSeries, error)
}
