package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"goldpulse/internal/domain"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Risk struct {
		StopLossPercent float64 `yaml:"stop_loss_percent"`
		RiskRewardRatio float64 `yaml:"risk_reward_ratio"`
	} `yaml:"risk"`
	Timeframes []string `yaml:"timeframes"`
	Market     struct {
		OpenTime  string `yaml:"open_time"`
		CloseTime string `yaml:"close_time"`
	} `yaml:"market"`
	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"log"`
}

// Load reads config from a YAML file if it exists, then applies environment
// variable overrides. Invalid values fall back to defaults with a warning.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	applyEnvOverrides(cfg)
	applyDefaults(cfg)
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv("STOP_LOSS_PERCENT")); v != "" {
		if n, err := strconv.ParseFloat(v, 64); err == nil && n > 0 {
			cfg.Risk.StopLossPercent = n
		} else {
			log.Printf("Warning: invalid STOP_LOSS_PERCENT=%q, keeping %v", v, cfg.Risk.StopLossPercent)
		}
	}
	if v := strings.TrimSpace(os.Getenv("RISK_REWARD_RATIO")); v != "" {
		if n, err := strconv.ParseFloat(v, 64); err == nil && n > 0 {
			cfg.Risk.RiskRewardRatio = n
		} else {
			log.Printf("Warning: invalid RISK_REWARD_RATIO=%q, keeping %v", v, cfg.Risk.RiskRewardRatio)
		}
	}
	if v := strings.TrimSpace(os.Getenv("TIMEFRAMES")); v != "" {
		cfg.Timeframes = strings.Split(v, ",")
	}
	if v := strings.TrimSpace(os.Getenv("MARKET_OPEN_TIME")); v != "" {
		cfg.Market.OpenTime = v
	}
	if v := strings.TrimSpace(os.Getenv("MARKET_CLOSE_TIME")); v != "" {
		cfg.Market.CloseTime = v
	}
	if v := strings.TrimSpace(os.Getenv("LOG_LEVEL")); v != "" {
		cfg.Log.Level = v
	}
	if v := strings.TrimSpace(os.Getenv("LOG_FORMAT")); v != "" {
		cfg.Log.Format = v
	}
}

func applyDefaults(cfg *Config) {
	if cfg.Risk.StopLossPercent <= 0 {
		cfg.Risk.StopLossPercent = 0.5
	}
	if cfg.Risk.RiskRewardRatio <= 0 {
		cfg.Risk.RiskRewardRatio = 1.5
	}
	cfg.Timeframes = normalizeTimeframes(cfg.Timeframes)
	if cfg.Market.OpenTime == "" {
		cfg.Market.OpenTime = "09:00:00"
	}
	if cfg.Market.CloseTime == "" {
		cfg.Market.CloseTime = "23:30:00"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "INFO"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "json"
	}
}

// normalizeTimeframes drops unsupported or duplicate entries, falling back to
// the full supported list when nothing valid remains.
func normalizeTimeframes(raw []string) []string {
	out := make([]string, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))
	for _, r := range raw {
		tf := strings.TrimSpace(r)
		if tf == "" {
			continue
		}
		if !domain.IsSupportedTimeframe(tf) {
			log.Printf("Warning: unsupported timeframe %q ignored", tf)
			continue
		}
		if _, ok := seen[tf]; ok {
			continue
		}
		seen[tf] = struct{}{}
		out = append(out, tf)
	}
	if len(out) == 0 {
		return append([]string(nil), domain.SupportedTimeframes...)
	}
	return out
}
