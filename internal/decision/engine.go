package decision

import (
	"context"
	"fmt"
	"sync"
	"time"

	"goldpulse/internal/domain"
	"goldpulse/internal/indicator"
	"goldpulse/internal/logger"
	"goldpulse/internal/signal"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Engine fuses indicator and forecast votes into risk-managed trade
// decisions. It is stateless: every evaluation reads an immutable series and
// forecast snapshot and returns a new record, so concurrent evaluations need
// no synchronization.
type Engine struct {
	tracer trace.Tracer
	risk   signal.RiskParams
	now    func() time.Time
}

// Result pairs one timeframe's decision with its failure, if any.
type Result struct {
	Signal *domain.TradeSignal
	Err    error
}

func NewEngine(tracer trace.Tracer, risk signal.RiskParams, now func() time.Time) *Engine {
	if now == nil {
		now = time.Now
	}
	return &Engine{tracer: tracer, risk: risk, now: now}
}

// ComputeIndicators derives the indicator sets for a series, aligned by
// index. Exposed so callers evaluating repeatedly can precompute once and use
// EvaluateSnapshot.
func (e *Engine) ComputeIndicators(ctx context.Context, series []domain.PricePoint) []domain.IndicatorSet {
	_, span := e.tracer.Start(ctx, "decision-engine.compute-indicators")
	defer span.End()
	span.SetAttributes(attribute.Int("series.length", len(series)))

	return indicator.Compute(series)
}

// Evaluate runs the full pipeline for one timeframe: indicators, the five
// classifiers, fusion, and risk levels. The series must be in ascending
// timestamp order and at least indicator.MinHistory points long.
func (e *Engine) Evaluate(ctx context.Context, timeframe string, series []domain.PricePoint, forecast []float64) (*domain.TradeSignal, error) {
	ctx, span := e.tracer.Start(ctx, "decision-engine.evaluate")
	defer span.End()
	span.SetAttributes(
		attribute.String("timeframe", timeframe),
		attribute.Int("series.length", len(series)),
	)

	if len(series) < indicator.MinHistory {
		return nil, fmt.Errorf("%w: %d points for %s, need %d", ErrInsufficientData, len(series), timeframe, indicator.MinHistory)
	}
	return e.evaluate(ctx, timeframe, series, indicator.Compute(series), forecast)
}

// EvaluateSnapshot is Evaluate with a precomputed indicator sequence, aligned
// one-to-one with the series, to avoid recomputation on repeated calls.
func (e *Engine) EvaluateSnapshot(ctx context.Context, timeframe string, series []domain.PricePoint, sets []domain.IndicatorSet, forecast []float64) (*domain.TradeSignal, error) {
	ctx, span := e.tracer.Start(ctx, "decision-engine.evaluate-snapshot")
	defer span.End()

	if len(series) < indicator.MinHistory {
		return nil, fmt.Errorf("%w: %d points for %s, need %d", ErrInsufficientData, len(series), timeframe, indicator.MinHistory)
	}
	if len(sets) != len(series) {
		return nil, fmt.Errorf("indicator sets misaligned: %d sets for %d points", len(sets), len(series))
	}
	return e.evaluate(ctx, timeframe, series, sets, forecast)
}

// EvaluateAll evaluates each timeframe independently and concurrently. A
// failure on one timeframe never aborts the others; every requested timeframe
// gets an entry in the returned map.
func (e *Engine) EvaluateAll(ctx context.Context, timeframes []string, seriesByTimeframe map[string][]domain.PricePoint, forecastByTimeframe map[string][]float64) map[string]Result {
	ctx, span := e.tracer.Start(ctx, "decision-engine.evaluate-all")
	defer span.End()
	span.SetAttributes(attribute.Int("timeframes", len(timeframes)))

	results := make(map[string]Result, len(timeframes))

	var mu sync.Mutex
	var wg sync.WaitGroup
	for _, tf := range timeframes {
		wg.Add(1)
		go func(tf string) {
			defer wg.Done()
			sig, err := e.Evaluate(ctx, tf, seriesByTimeframe[tf], forecastByTimeframe[tf])
			mu.Lock()
			results[tf] = Result{Signal: sig, Err: err}
			mu.Unlock()
		}(tf)
	}
	wg.Wait()

	return results
}

func (e *Engine) evaluate(ctx context.Context, timeframe string, series []domain.PricePoint, sets []domain.IndicatorSet, forecast []float64) (*domain.TradeSignal, error) {
	latest := series[len(series)-1]
	ind := sets[len(sets)-1]

	if !ind.Complete() {
		return nil, fmt.Errorf("%w: timeframe %s at %s", ErrMissingIndicators, timeframe, latest.Timestamp.UTC().Format(time.RFC3339))
	}

	forecastUnavailable := len(forecast) == 0
	if forecastUnavailable {
		logger.Info(ctx, "no forecast available, forecast vote degraded to neutral",
			"timeframe", timeframe)
	}

	breakdown := domain.SignalBreakdown{
		RSI:           signal.ClassifyRSI(ind.RSI14),
		MACD:          signal.ClassifyMACD(ind.MACD, ind.MACDSignal, ind.MACDHistogram),
		Bollinger:     signal.ClassifyBollinger(latest.Close, ind.BollingerUpper, ind.BollingerMiddle, ind.BollingerLower),
		MovingAverage: signal.ClassifyMovingAverage(latest.Close, ind.SMA20, ind.SMA50),
		Forecast:      signal.ClassifyForecast(latest.Close, forecast),
	}

	fused := signal.Fuse(breakdown)
	stopLoss, takeProfit := e.risk.Levels(fused.Action, latest.Close)

	return &domain.TradeSignal{
		Timestamp:           e.now().UTC(),
		Timeframe:           timeframe,
		CurrentPrice:        latest.Close,
		Action:              fused.Action,
		Strength:            fused.Strength,
		Score:               fused.Score,
		Signals:             breakdown,
		Indicators:          ind,
		StopLoss:            stopLoss,
		TakeProfit:          takeProfit,
		Forecast:            forecast,
		ForecastUnavailable: forecastUnavailable,
	}, nil
}
