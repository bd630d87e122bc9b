package decision

import "errors"

var (
	// ErrInsufficientData means the price series is shorter than the largest
	// indicator window, so no fully defined indicator set exists yet.
	ErrInsufficientData = errors.New("insufficient price data")

	// ErrMissingIndicators means the latest point's indicator set has an
	// undefined field one of the classifiers needs.
	ErrMissingIndicators = errors.New("missing indicators for latest point")
)
