package services

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/jmarchena/marketbot/database"
	"github.com/jmarchena/marketbot/interfaces"
	"github.com/jmarchena/marketbot/models"
)

// CommissionRate is the proportional fee applied to every trade
// notional.
const CommissionRate = 0.001

// PortfolioService is the order execution ledger: cash, open positions
// and the filled-order history. One mutex serializes submits so a
// rejected order never leaves a partial mutation behind.
type PortfolioService struct {
	mu           sync.Mutex
	quoteService interfaces.QuoteService
	dbService    *database.DBService
	cash         float64
	positions    map[string]*models.Position
	orders       []models.Order
	nextOrderID  int64
	now          func() time.Time
}

// NewPortfolioService opens a ledger with the given starting cash. The
// db service may be nil, in which case fills are not recorded.
func NewPortfolioService(quoteService interfaces.QuoteService, dbService *database.DBService, initialCash float64) *PortfolioService {
	return &PortfolioService{
		quoteService: quoteService,
		dbService:    dbService,
		cash:         initialCash,
		positions:    make(map[string]*models.Position),
		nextOrderID:  1,
		now:          time.Now,
	}
}

// Submit validates the request against the current quote and applies
// it. Validation failures come back as a rejected OrderResult, never as
// an error; cash, position and history always change together or not at
// all.
func (ps *PortfolioService) Submit(request models.OrderRequest) models.OrderResult {
	ps.mu.Lock()
	defer ps.mu.Unlock()

	if request.Quantity <= 0 {
		return rejection(models.RejectionInvalidQuantity,
			fmt.Sprintf("quantity must be positive, got %.4f", request.Quantity))
	}

	quote, err := ps.quoteService.GetQuote(request.Symbol)
	if err != nil {
		logger.Errorln(fmt.Sprintf("order for %s refused: %s", request.Symbol, err.Error()))
		return models.OrderResult{Accepted: false, Message: "quote data unavailable for " + request.Symbol}
	}

	fillPrice := quote.Price
	if request.Type != models.OrderTypeMarket && request.Price > 0 {
		fillPrice = request.Price
	}

	switch request.Side {
	case models.SideTypeBuy:
		return ps.fillBuy(request, quote, fillPrice)
	case models.SideTypeSell:
		return ps.fillSell(request, quote, fillPrice)
	default:
		return models.OrderResult{Accepted: false, Message: fmt.Sprintf("unknown order side %q", request.Side)}
	}
}

func (ps *PortfolioService) fillBuy(request models.OrderRequest, quote models.Quote, fillPrice float64) models.OrderResult {
	cost := request.Quantity * fillPrice
	commission := cost * CommissionRate
	if ps.cash < cost+commission {
		return rejection(models.RejectionInsufficientFunds,
			fmt.Sprintf("need %.2f (incl. %.2f commission), have %.2f", cost+commission, commission, ps.cash))
	}

	ps.cash -= cost + commission

	if position, held := ps.positions[request.Symbol]; held {
		newQuantity := position.Quantity + request.Quantity
		position.AvgPrice = (position.AvgPrice*position.Quantity + cost) / newQuantity
		position.Quantity = newQuantity
		position.MarkToMarket(quote.Price)
	} else {
		position := models.NewPosition(request.Symbol, request.Quantity, fillPrice)
		position.MarkToMarket(quote.Price)
		ps.positions[request.Symbol] = position
	}

	return ps.appendFill(request, fillPrice, commission)
}

func (ps *PortfolioService) fillSell(request models.OrderRequest, quote models.Quote, fillPrice float64) models.OrderResult {
	position, held := ps.positions[request.Symbol]
	if !held || position.Quantity < request.Quantity {
		heldQuantity := 0.0
		if held {
			heldQuantity = position.Quantity
		}
		return rejection(models.RejectionInsufficientShares,
			fmt.Sprintf("want to sell %.4f %s, hold %.4f", request.Quantity, request.Symbol, heldQuantity))
	}

	proceeds := request.Quantity * fillPrice
	commission := proceeds * CommissionRate
	ps.cash += proceeds - commission

	position.Quantity -= request.Quantity
	if position.Quantity == 0 {
		delete(ps.positions, request.Symbol)
	} else {
		position.MarkToMarket(quote.Price)
	}

	return ps.appendFill(request, fillPrice, commission)
}

// appendFill stamps the order, appends it to the immutable history and
// optionally records it.
func (ps *PortfolioService) appendFill(request models.OrderRequest, fillPrice float64, commission float64) models.OrderResult {
	order := models.Order{
		ID:          ps.nextOrderID,
		Symbol:      request.Symbol,
		Side:        request.Side,
		Type:        request.Type,
		Quantity:    request.Quantity,
		Price:       request.Price,
		StopPrice:   request.StopPrice,
		FillPrice:   fillPrice,
		Commission:  commission,
		TimeInForce: request.TimeInForce,
		Status:      models.OrderStatusTypeFilled,
		Timestamp:   ps.now(),
	}
	ps.nextOrderID++
	ps.orders = append(ps.orders, order)

	if ps.dbService != nil {
		ps.dbService.AddOrder(order, ps.cash)
	}

	logger.Infoln(fmt.Sprintf("💰 %s %s %.4f @ %.4f (commission %.4f)",
		order.Side, order.Symbol, order.Quantity, order.FillPrice, order.Commission))

	return models.OrderResult{Accepted: true, OrderID: order.ID}
}

// GetPortfolio returns the derived snapshot. Positions are re-marked
// against the latest quotes; every aggregate is recomputed from cash
// and positions on each call.
func (ps *PortfolioService) GetPortfolio() models.Portfolio {
	ps.mu.Lock()
	defer ps.mu.Unlock()

	positions := make([]models.Position, 0, len(ps.positions))
	positionsValue := 0.0
	totalPnL := 0.0
	dayChange := 0.0

	for _, position := range ps.positions {
		quote, err := ps.quoteService.GetQuote(position.Symbol)
		if err == nil {
			position.MarkToMarket(quote.Price)
			dayChange += position.Quantity * quote.Change
		}
		positionsValue += position.TotalValue
		totalPnL += position.UnrealizedPnL
		positions = append(positions, *position)
	}

	sort.Slice(positions, func(i, j int) bool { return positions[i].Symbol < positions[j].Symbol })

	totalValue := ps.cash + positionsValue

	totalPnLPercent := 0.0
	if basis := positionsValue - totalPnL; basis != 0 {
		totalPnLPercent = totalPnL / basis * 100
	}

	dayChangePercent := 0.0
	if previous := totalValue - dayChange; previous != 0 {
		dayChangePercent = dayChange / previous * 100
	}

	orders := make([]models.Order, len(ps.orders))
	copy(orders, ps.orders)

	return models.Portfolio{
		CashBalance:      ps.cash,
		Positions:        positions,
		Orders:           orders,
		TotalValue:       totalValue,
		TotalPnL:         totalPnL,
		TotalPnLPercent:  totalPnLPercent,
		DayChange:        dayChange,
		DayChangePercent: dayChangePercent,
	}
}

func rejection(reason models.RejectionReason, message string) models.OrderResult {
	return models.OrderResult{Accepted: false, Reason: reason, Message: message}
}
