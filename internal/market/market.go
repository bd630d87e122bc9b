package market

import (
	"fmt"
	"time"
)

const clockLayout = "15:04:05"

// IsOpen reports whether now falls inside the trading session delimited by
// openTime and closeTime ("HH:MM:SS"). Sessions that close after midnight
// wrap around, e.g. 17:00:00-02:00:00.
func IsOpen(now time.Time, openTime, closeTime string) (bool, error) {
	openAt, err := time.Parse(clockLayout, openTime)
	if err != nil {
		return false, fmt.Errorf("parse open time: %w", err)
	}
	closeAt, err := time.Parse(clockLayout, closeTime)
	if err != nil {
		return false, fmt.Errorf("parse close time: %w", err)
	}

	cur := secondsOfDay(now.Hour(), now.Minute(), now.Second())
	o := secondsOfDay(openAt.Hour(), openAt.Minute(), openAt.Second())
	c := secondsOfDay(closeAt.Hour(), closeAt.Minute(), closeAt.Second())

	if c < o {
		return cur >= o || cur <= c, nil
	}
	return cur >= o && cur <= c, nil
}

// ProfitLoss returns the realized profit (positive) or loss (negative) of a
// closed trade.
func ProfitLoss(entryPrice, exitPrice, quantity float64, isBuy bool) float64 {
	if isBuy {
		return (exitPrice - entryPrice) * quantity
	}
	return (entryPrice - exitPrice) * quantity
}

func secondsOfDay(h, m, s int) int {
	return h*3600 + m*60 + s
}
