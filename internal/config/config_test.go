package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"goldpulse/internal/domain"
)

func TestLoadDefaultsWhenFileMissing(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Risk.StopLossPercent != 0.5 {
		t.Fatalf("expected default stop loss 0.5, got %v", cfg.Risk.StopLossPercent)
	}
	if cfg.Risk.RiskRewardRatio != 1.5 {
		t.Fatalf("expected default risk reward 1.5, got %v", cfg.Risk.RiskRewardRatio)
	}
	if !reflect.DeepEqual(cfg.Timeframes, domain.SupportedTimeframes) {
		t.Fatalf("expected all supported timeframes, got %v", cfg.Timeframes)
	}
	if cfg.Market.OpenTime != "09:00:00" || cfg.Market.CloseTime != "23:30:00" {
		t.Fatalf("unexpected market session: %s-%s", cfg.Market.OpenTime, cfg.Market.CloseTime)
	}
	if cfg.Log.Level != "INFO" || cfg.Log.Format != "json" {
		t.Fatalf("unexpected log defaults: %s %s", cfg.Log.Level, cfg.Log.Format)
	}
}

func TestLoadReadsYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte(`
risk:
  stop_loss_percent: 1.0
  risk_reward_ratio: 2.0
timeframes: ["1h", "1d"]
market:
  open_time: "10:00:00"
  close_time: "17:00:00"
log:
  level: DEBUG
  format: text
`)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Risk.StopLossPercent != 1.0 || cfg.Risk.RiskRewardRatio != 2.0 {
		t.Fatalf("unexpected risk params: %+v", cfg.Risk)
	}
	if !reflect.DeepEqual(cfg.Timeframes, []string{"1h", "1d"}) {
		t.Fatalf("unexpected timeframes: %v", cfg.Timeframes)
	}
	if cfg.Log.Level != "DEBUG" || cfg.Log.Format != "text" {
		t.Fatalf("unexpected log config: %+v", cfg.Log)
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("risk:\n  stop_loss_percent: 1.0\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	t.Setenv("STOP_LOSS_PERCENT", "0.25")
	t.Setenv("TIMEFRAMES", "1d,1h")
	t.Setenv("LOG_LEVEL", "WARN")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Risk.StopLossPercent != 0.25 {
		t.Fatalf("expected env override 0.25, got %v", cfg.Risk.StopLossPercent)
	}
	if !reflect.DeepEqual(cfg.Timeframes, []string{"1d", "1h"}) {
		t.Fatalf("unexpected timeframes: %v", cfg.Timeframes)
	}
	if cfg.Log.Level != "WARN" {
		t.Fatalf("expected WARN, got %s", cfg.Log.Level)
	}
}

func TestLoadInvalidEnvKeepsDefault(t *testing.T) {
	t.Setenv("RISK_REWARD_RATIO", "not-a-number")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Risk.RiskRewardRatio != 1.5 {
		t.Fatalf("expected default 1.5, got %v", cfg.Risk.RiskRewardRatio)
	}
}

func TestNormalizeTimeframes(t *testing.T) {
	got := normalizeTimeframes([]string{"1h", "bogus", " 1d ", "1h", ""})
	if !reflect.DeepEqual(got, []string{"1h", "1d"}) {
		t.Fatalf("unexpected timeframes: %v", got)
	}

	if got := normalizeTimeframes([]string{"bogus"}); !reflect.DeepEqual(got, domain.SupportedTimeframes) {
		t.Fatalf("expected fallback to supported timeframes, got %v", got)
	}
}
