package domain

import (
	"fmt"
	"time"
)

// SupportedTimeframes lists the bar granularities the engine evaluates.
var SupportedTimeframes = []string{"1m", "5m", "15m", "1h", "1d"}

// IsSupportedTimeframe reports whether tf is one of SupportedTimeframes.
func IsSupportedTimeframe(tf string) bool {
	for _, s := range SupportedTimeframes {
		if s == tf {
			return true
		}
	}
	return false
}

// TimeframeDuration returns the bar duration for a timeframe tag.
func TimeframeDuration(tf string) (time.Duration, error) {
	switch tf {
	case "1m":
		return time.Minute, nil
	case "5m":
		return 5 * time.Minute, nil
	case "15m":
		return 15 * time.Minute, nil
	case "1h":
		return time.Hour, nil
	case "1d":
		return 24 * time.Hour, nil
	}
	return 0, fmt.Errorf("unsupported timeframe: %s", tf)
}

// NextBarTime returns the open time of the bar following ts for a timeframe.
func NextBarTime(ts time.Time, tf string) (time.Time, error) {
	d, err := TimeframeDuration(tf)
	if err != nil {
		return time.Time{}, err
	}
	return ts.Add(d), nil
}
