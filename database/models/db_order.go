package database

import "gorm.io/gorm"

// OrderStatusType define order status type
type OrderStatusType string

// OrderType define order type
type OrderType string

// SideType define side type
type SideType string

// Order is the persisted copy of a filled ledger order. Rows are
// append-only; the engine never reads them back.
type Order struct {
	gorm.Model
	OrderID     int64           `json:"orderId"`
	Symbol      string          `json:"symbol"`
	Side        SideType        `json:"side"`
	Type        OrderType       `json:"type"`
	Quantity    float64         `json:"quantity"`
	FillPrice   float64         `json:"fillPrice"`
	Commission  float64         `json:"commission"`
	Status      OrderStatusType `json:"status"`
	Time        int64           `json:"time"`
	CashBalance float64         `json:"cashBalance"`
}
