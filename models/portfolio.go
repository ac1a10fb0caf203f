package models

// Portfolio is a derived snapshot of the ledger. Every aggregate field
// is recomputed from cash and positions on each read, never stored.
type Portfolio struct {
	CashBalance      float64    `json:"cashBalance"`
	Positions        []Position `json:"positions"`
	Orders           []Order    `json:"orders"`
	TotalValue       float64    `json:"totalValue"`
	TotalPnL         float64    `json:"totalPnL"`
	TotalPnLPercent  float64    `json:"totalPnLPercent"`
	DayChange        float64    `json:"dayChange"`
	DayChangePercent float64    `json:"dayChangePercent"`
}
