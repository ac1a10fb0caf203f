package models

// Position is an open holding for a single symbol. AvgPrice is the
// quantity-weighted mean of all buy fills not yet offset by sells.
type Position struct {
	Symbol               string  `json:"symbol"`
	Quantity             float64 `json:"quantity"`
	AvgPrice             float64 `json:"avgPrice"`
	CurrentPrice         float64 `json:"currentPrice"`
	TotalValue           float64 `json:"totalValue"`
	UnrealizedPnL        float64 `json:"unrealizedPnL"`
	UnrealizedPnLPercent float64 `json:"unrealizedPnLPercent"`
}

func NewPosition(symbol string, quantity float64, fillPrice float64) *Position {
	p := &Position{
		Symbol:   symbol,
		Quantity: quantity,
		AvgPrice: fillPrice,
	}
	p.MarkToMarket(fillPrice)
	return p
}

// MarkToMarket refreshes the derived value fields against the latest
// traded price.
func (p *Position) MarkToMarket(currentPrice float64) {
	p.CurrentPrice = currentPrice
	p.TotalValue = p.Quantity * currentPrice
	p.UnrealizedPnL = (currentPrice - p.AvgPrice) * p.Quantity
	if p.AvgPrice > 0 {
		p.UnrealizedPnLPercent = (currentPrice - p.AvgPrice) / p.AvgPrice * 100
	} else {
		p.UnrealizedPnLPercent = 0
	}
}

// CostBasis returns the total amount paid for the held quantity.
func (p *Position) CostBasis() float64 {
	return p.AvgPrice * p.Quantity
}
