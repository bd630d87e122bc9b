package main

import (
	"bufio"
	"context"
	"encoding/csv"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"goldpulse/internal/config"
	"goldpulse/internal/decision"
	"goldpulse/internal/domain"
	"goldpulse/internal/logger"
	"goldpulse/internal/market"
	"goldpulse/internal/signal"
	"goldpulse/pkg/tracing"

	"github.com/joho/godotenv"
)

type options struct {
	configPath   string
	seriesPath   string
	forecastPath string
	timeframe    string
}

func main() {
	godotenv.Load()

	opts, err := parseOptions(os.Args[1:])
	if err != nil {
		log.Fatalf("parse options: %v", err)
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logger.Init(cfg.Log.Level, cfg.Log.Format)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tp, tracer, err := tracing.InitTracer(ctx)
	if err != nil {
		log.Fatalf("failed to initialize tracer: %v", err)
	}
	if tp != nil {
		defer func() {
			if err := tp.Shutdown(ctx); err != nil {
				log.Printf("error shutting down tracer provider: %v", err)
			}
		}()
	}

	series, err := loadSeries(opts.seriesPath, opts.timeframe)
	if err != nil {
		log.Fatalf("load price series: %v", err)
	}

	var forecast []float64
	if opts.forecastPath != "" {
		forecast, err = loadForecast(opts.forecastPath)
		if err != nil {
			log.Fatalf("load forecast: %v", err)
		}
	}

	if open, err := market.IsOpen(time.Now(), cfg.Market.OpenTime, cfg.Market.CloseTime); err == nil && !open {
		logger.Warn(ctx, "evaluating outside the trading session",
			"open", cfg.Market.OpenTime, "close", cfg.Market.CloseTime)
	}

	engine := decision.NewEngine(tracer, signal.RiskParams{
		StopLossPercent: cfg.Risk.StopLossPercent,
		RiskRewardRatio: cfg.Risk.RiskRewardRatio,
	}, nil)

	sig, err := engine.Evaluate(ctx, opts.timeframe, series, forecast)
	if err != nil {
		log.Fatalf("evaluate %s: %v", opts.timeframe, err)
	}

	out, err := json.MarshalIndent(sig, "", "  ")
	if err != nil {
		log.Fatalf("encode trade signal: %v", err)
	}
	fmt.Println(string(out))
}

func parseOptions(args []string) (options, error) {
	fs := flag.NewFlagSet("analyzer", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	configPath := fs.String("config", "config.yaml", "path to YAML config")
	seriesPath := fs.String("series", "", "path to CSV price series (timestamp,open,high,low,close,volume)")
	forecastPath := fs.String("forecast", "", "path to forecast file, one predicted price per line")
	timeframe := fs.String("timeframe", "1h", "timeframe tag of the series")

	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if *seriesPath == "" {
		return options{}, fmt.Errorf("series path is required")
	}
	if !domain.IsSupportedTimeframe(*timeframe) {
		return options{}, fmt.Errorf("unsupported timeframe: %s", *timeframe)
	}

	return options{
		configPath:   *configPath,
		seriesPath:   *seriesPath,
		forecastPath: *forecastPath,
		timeframe:    *timeframe,
	}, nil
}

func loadSeries(path, timeframe string) ([]domain.PricePoint, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return parseSeries(f, timeframe)
}

// parseSeries reads timestamp,open,high,low,close,volume rows in ascending
// timestamp order. A header row is skipped.
func parseSeries(r io.Reader, timeframe string) ([]domain.PricePoint, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	var series []domain.PricePoint
	var prev time.Time
	line := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		line++

		if len(record) < 6 {
			return nil, fmt.Errorf("line %d: expected 6 fields, got %d", line, len(record))
		}
		ts, err := time.Parse(time.RFC3339, strings.TrimSpace(record[0]))
		if err != nil {
			if line == 1 {
				continue // header
			}
			return nil, fmt.Errorf("line %d: parse timestamp: %w", line, err)
		}
		if !prev.IsZero() && !ts.After(prev) {
			return nil, fmt.Errorf("line %d: timestamps must be strictly increasing", line)
		}
		prev = ts

		fields := make([]float64, 5)
		for i := 0; i < 5; i++ {
			fields[i], err = strconv.ParseFloat(strings.TrimSpace(record[i+1]), 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: parse field %d: %w", line, i+1, err)
			}
		}

		series = append(series, domain.PricePoint{
			Timestamp: ts,
			Open:      fields[0],
			High:      fields[1],
			Low:       fields[2],
			Close:     fields[3],
			Volume:    fields[4],
			Source:    "csv",
			Timeframe: timeframe,
		})
	}
	return series, nil
}

func loadForecast(path string) ([]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return parseForecast(f)
}

func parseForecast(r io.Reader) ([]float64, error) {
	var out []float64
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		v, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: parse predicted price: %w", line, err)
		}
		out = append(out, v)
	}
	return out, scanner.Err()
}
