package bot

import (
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/jmarchena/marketbot/database"
	"github.com/jmarchena/marketbot/helpers"
	"github.com/jmarchena/marketbot/interfaces"
	"github.com/jmarchena/marketbot/models"
	"github.com/jmarchena/marketbot/models/analytics"
	binance2 "github.com/jmarchena/marketbot/providers/binance"
	"github.com/jmarchena/marketbot/providers/synthetic"
	"github.com/jmarchena/marketbot/services"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
	str2duration "github.com/xhit/go-str2duration/v2"
)

const (
	defaultInitialCash   = 100000.0
	tradeConfidenceFloor = 70.0
	buyBudgetFraction    = 0.1
)

type Bot struct {
}

func init() {
	cwd, _ := os.Getwd()
	err := godotenv.Load(cwd + "/conf.env")
	if err != nil {
		log.Debugln("no conf.env file found, relying on environment variables")
	}
}

// Run wires the quote provider, engine services and ledger from the
// environment and starts the periodic sweep.
func (b *Bot) Run(c *cli.Context) error {
	helpers.Logger.Infoln("🖖🏻 MarketBot started")

	symbolsString := c.String("symbols")
	if symbolsString == "" {
		symbolsString = os.Getenv("symbols")
	}
	symbols := strings.Split(symbolsString, ",")
	if symbols[0] == "" {
		return fmt.Errorf("error: couldn't initialize bot. No symbols set")
	}

	quoteService, err := quoteServiceFromEnv()
	if err != nil {
		return err
	}

	var databaseService *database.DBService
	databaseIsEnabled, _ := strconv.ParseBool(os.Getenv("enableDatabaseRecording"))
	if databaseIsEnabled {
		databaseService, err = database.NewDBService(os.Getenv("databaseHost"), os.Getenv("databasePort"),
			os.Getenv("databaseName"), os.Getenv("databaseUser"), os.Getenv("databasePassword"))
		if err != nil {
			return err
		}
	}

	cacheTTL := durationFromEnv("analysisCacheTTL", 30*time.Second)
	tradeInterval := durationFromEnv("tradeInterval", time.Minute)

	initialCash := defaultInitialCash
	if cashString := os.Getenv("initialCash"); cashString != "" {
		initialCash, err = strconv.ParseFloat(cashString, 64)
		if err != nil {
			return fmt.Errorf("error: invalid initialCash %q", cashString)
		}
	}

	analysisService := services.NewMarketAnalysisService(cacheTTL, rand.New(rand.NewSource(time.Now().UnixNano())))
	predictionService := services.NewPredictionService()
	recommendationService := services.NewRecommendationService(quoteService, analysisService, predictionService, symbols)
	portfolioService := services.NewPortfolioService(quoteService, databaseService, initialCash)

	trader := NewTrader(quoteService, recommendationService, portfolioService, tradeInterval)
	trader.Start()
	return nil
}

// Trader periodically sweeps the universe and turns high-confidence
// recommendations into paper orders.
type Trader struct {
	quoteService          interfaces.QuoteService
	recommendationService *services.RecommendationService
	portfolioService      *services.PortfolioService
	interval              time.Duration
}

func NewTrader(quoteService interfaces.QuoteService, recommendationService *services.RecommendationService,
	portfolioService *services.PortfolioService, interval time.Duration) *Trader {
	return &Trader{
		quoteService:          quoteService,
		recommendationService: recommendationService,
		portfolioService:      portfolioService,
		interval:              interval,
	}
}

func (t *Trader) Start() {
	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		t.Sweep()
		<-ticker.C
	}
}

// Sweep runs one full recommendation pass and acts on it.
func (t *Trader) Sweep() {
	botAnalysis := t.recommendationService.GenerateRecommendations()
	helpers.Logger.Infoln(botAnalysis.Summary)
	for _, warning := range botAnalysis.RiskWarnings {
		helpers.Logger.Warnln("⚠️ " + warning)
	}

	for _, recommendation := range botAnalysis.Recommendations {
		if recommendation.Confidence < tradeConfidenceFloor {
			continue
		}
		switch recommendation.Action {
		case analytics.ActionBuy:
			t.enter(recommendation)
		case analytics.ActionSell:
			t.exit(recommendation)
		}
	}

	portfolio := t.portfolioService.GetPortfolio()
	helpers.Logger.Infoln(fmt.Sprintf("Portfolio value %.2f (cash %.2f, P&L %.2f / %.2f%%)",
		portfolio.TotalValue, portfolio.CashBalance, portfolio.TotalPnL, portfolio.TotalPnLPercent))
}

func (t *Trader) enter(recommendation analytics.TradingRecommendation) {
	quote, err := t.quoteService.GetQuote(recommendation.Symbol)
	if err != nil {
		helpers.Logger.Errorln("error sizing order for " + recommendation.Symbol + ": " + err.Error())
		return
	}

	budget := t.portfolioService.GetPortfolio().CashBalance * buyBudgetFraction
	quantity := budget / quote.Price
	if quantity <= 0 {
		return
	}

	result := t.portfolioService.Submit(models.OrderRequest{
		Symbol:      recommendation.Symbol,
		Side:        models.SideTypeBuy,
		Type:        models.OrderTypeMarket,
		Quantity:    quantity,
		TimeInForce: models.TimeInForceDay,
	})
	if !result.Accepted {
		helpers.Logger.Warnln(fmt.Sprintf("buy %s rejected: %s", recommendation.Symbol, result.Message))
	}
}

func (t *Trader) exit(recommendation analytics.TradingRecommendation) {
	for _, position := range t.portfolioService.GetPortfolio().Positions {
		if position.Symbol != recommendation.Symbol {
			continue
		}
		result := t.portfolioService.Submit(models.OrderRequest{
			Symbol:      recommendation.Symbol,
			Side:        models.SideTypeSell,
			Type:        models.OrderTypeMarket,
			Quantity:    position.Quantity,
			TimeInForce: models.TimeInForceDay,
		})
		if !result.Accepted {
			helpers.Logger.Warnln(fmt.Sprintf("sell %s rejected: %s", recommendation.Symbol, result.Message))
		}
	}
}

func quoteServiceFromEnv() (interfaces.QuoteService, error) {
	switch os.Getenv("quoteProvider") {
	case "binance":
		return binance2.NewBinanceService(), nil
	case "synthetic", "":
		seed := time.Now().UnixNano()
		if seedString := os.Getenv("syntheticSeed"); seedString != "" {
			parsed, err := strconv.ParseInt(seedString, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("error: invalid syntheticSeed %q", seedString)
			}
			seed = parsed
		}
		return synthetic.NewSyntheticService(seed), nil
	default:
		return nil, fmt.Errorf("error: unknown quoteProvider %q", os.Getenv("quoteProvider"))
	}
}

func durationFromEnv(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	duration, err := str2duration.ParseDuration(value)
	if err != nil {
		helpers.Logger.Warnln(fmt.Sprintf("invalid %s %q, falling back to %s", key, value, fallback))
		return fallback
	}
	return duration
}
