package services

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/jmarchena/marketbot/helpers"
	"github.com/jmarchena/marketbot/interfaces"
	"github.com/jmarchena/marketbot/models/analytics"
)

const (
	recommendationTimeframe = "1-2W"
	historyLimit            = 60
)

// RecommendationService sweeps the tracked universe and turns each
// symbol's analysis and prediction into an actionable recommendation,
// plus the market-wide aggregate.
type RecommendationService struct {
	quoteService      interfaces.QuoteService
	analysisService   *MarketAnalysisService
	predictionService *PredictionService
	symbols           []string
}

func NewRecommendationService(quoteService interfaces.QuoteService, analysisService *MarketAnalysisService,
	predictionService *PredictionService, symbols []string) *RecommendationService {
	return &RecommendationService{
		quoteService:      quoteService,
		analysisService:   analysisService,
		predictionService: predictionService,
		symbols:           symbols,
	}
}

// GenerateRecommendations runs analyzer and generator for every tracked
// symbol. Symbols without enough data are logged and skipped; they
// still count towards the universe size for the bullish ratio.
func (rs *RecommendationService) GenerateRecommendations() analytics.BotAnalysis {
	var recommendations []analytics.TradingRecommendation
	var volatilities []float64
	var riskWarnings []string
	buyCount := 0

	for _, symbol := range rs.symbols {
		quote, err := rs.quoteService.GetQuote(symbol)
		if err != nil {
			logger.Warnln(fmt.Sprintf("skipping %s: %s", symbol, err.Error()))
			continue
		}

		series, err := rs.quoteService.GetSeries(symbol, historyLimit)
		if err != nil {
			logger.Warnln(fmt.Sprintf("skipping %s: %s", symbol, err.Error()))
			continue
		}

		analysis, err := rs.analysisService.Analyze(symbol, &series, quote.Price)
		if err != nil {
			logger.Warnln(fmt.Sprintf("skipping %s: %s", symbol, err.Error()))
			continue
		}

		prediction := rs.predictionService.Generate(symbol, analysis, quote.Price)
		profitPotential := (prediction.PredictedPrice - quote.Price) / quote.Price * 100

		riskLevel := classifyRisk(analysis.Volatility, profitPotential)
		if riskLevel == analytics.RiskHigh {
			riskWarnings = append(riskWarnings,
				fmt.Sprintf("%s carries high risk (volatility %.2f, expected move %.1f%%)",
					symbol, analysis.Volatility, profitPotential))
		}

		action := analytics.ActionHold
		if profitPotential > 5 && prediction.Confidence > 70 {
			action = analytics.ActionBuy
			buyCount++
		} else if profitPotential < -3 && prediction.Confidence > 70 {
			action = analytics.ActionSell
		}

		targetPrice := quote.Price * 1.10
		stopLoss := quote.Price * 0.95
		if action == analytics.ActionSell {
			targetPrice = quote.Price * 0.95
			stopLoss = quote.Price * 1.05
		}

		recommendations = append(recommendations, analytics.TradingRecommendation{
			Symbol:     symbol,
			Action:     action,
			Confidence: prediction.Confidence,
			Rationale: fmt.Sprintf("%s Expected move %.1f%% over %s.",
				prediction.Rationale, profitPotential, prediction.Timeframe),
			TargetPrice:     targetPrice,
			StopLoss:        stopLoss,
			PotentialProfit: math.Abs(profitPotential),
			RiskLevel:       riskLevel,
			Timeframe:       recommendationTimeframe,
			GeneratedAt:     time.Now(),
		})
		volatilities = append(volatilities, analysis.Volatility)
	}

	sort.SliceStable(recommendations, func(i, j int) bool {
		return recommendations[i].PotentialProfit > recommendations[j].PotentialProfit
	})

	marketSentiment := analytics.MarketNeutral
	if len(rs.symbols) > 0 {
		bullishRatio := float64(buyCount) / float64(len(rs.symbols))
		if bullishRatio > 0.6 {
			marketSentiment = analytics.MarketBullish
		} else if bullishRatio < 0.3 {
			marketSentiment = analytics.MarketBearish
		}
	}

	volatilityIndex := helpers.Mean(volatilities) * 100

	return analytics.BotAnalysis{
		MarketSentiment: marketSentiment,
		VolatilityIndex: volatilityIndex,
		Recommendations: recommendations,
		Summary: fmt.Sprintf("Analyzed %d of %d tracked symbols: %d BUY, %d HOLD/SELL. Market is %s with volatility index %.1f.",
			len(recommendations), len(rs.symbols), buyCount, len(recommendations)-buyCount,
			marketSentiment, volatilityIndex),
		RiskWarnings: riskWarnings,
	}
}

// classifyRisk maps volatility and the size of the expected move to a
// risk tier.
func classifyRisk(volatility float64, profitPotential float64) analytics.RiskLevel {
	absProfit := math.Abs(profitPotential)
	if volatility > 0.4 || absProfit > 15 {
		return analytics.RiskHigh
	}
	if volatility > 0.25 || absProfit > 8 {
		return analytics.RiskMedium
	}
	return analytics.RiskLow
}
