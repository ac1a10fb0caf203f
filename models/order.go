package models

import "time"

type Order struct {
	ID          int64           `json:"id"`
	Symbol      string          `json:"symbol"`
	Side        SideType        `json:"side"`
	Type        OrderType       `json:"orderType"`
	Quantity    float64         `json:"quantity"`
	Price       float64         `json:"price,omitempty"`
	StopPrice   float64         `json:"stopPrice,omitempty"`
	FillPrice   float64         `json:"fillPrice"`
	Commission  float64         `json:"commission"`
	TimeInForce TimeInForceType `json:"timeInForce"`
	Status      OrderStatusType `json:"status"`
	Timestamp   time.Time       `json:"timestamp"`
}

// OrderStatusType define order status type
type OrderStatusType string

// OrderType define order type
type OrderType string

// SideType define order side type
type SideType string

// TimeInForceType define how long an order stays active
type TimeInForceType string

// RejectionReason tags why a submit was refused
type RejectionReason string

// Global enums
const (
	SideTypeBuy  SideType = "BUY"
	SideTypeSell SideType = "SELL"

	OrderTypeMarket OrderType = "MARKET"
	OrderTypeLimit  OrderType = "LIMIT"
	OrderTypeStop   OrderType = "STOP"

	TimeInForceDay TimeInForceType = "DAY"
	TimeInForceGTC TimeInForceType = "GTC"

	OrderStatusTypeNew      OrderStatusType = "NEW"
	OrderStatusTypeFilled   OrderStatusType = "FILLED"
	OrderStatusTypeCanceled OrderStatusType = "CANCELED"
	OrderStatusTypeRejected OrderStatusType = "REJECTED"

	RejectionInsufficientFunds  RejectionReason = "INSUFFICIENT_FUNDS"
	RejectionInsufficientShares RejectionReason = "INSUFFICIENT_SHARES"
	RejectionInvalidQuantity    RejectionReason = "INVALID_QUANTITY"
)

// OrderRequest is what callers hand to the ledger.
type OrderRequest struct {
	Symbol      string          `json:"symbol"`
	Side        SideType        `json:"side"`
	Type        OrderType       `json:"orderType"`
	Quantity    float64         `json:"quantity"`
	Price       float64         `json:"price,omitempty"`
	StopPrice   float64         `json:"stopPrice,omitempty"`
	TimeInForce TimeInForceType `json:"timeInForce"`
}

// OrderResult is the structured outcome of a submit. Validation
// failures travel here, never as errors.
type OrderResult struct {
	Accepted bool            `json:"success"`
	OrderID  int64           `json:"orderId,omitempty"`
	Reason   RejectionReason `json:"reason,omitempty"`
	Message  string          `json:"message,omitempty"`
}
