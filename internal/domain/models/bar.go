package models

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// ErrInvalidInput marks malformed bar input: non-monotonic dates or negative
// prices/volumes. Unlike short history, this is surfaced to the caller as a
// hard failure.
var ErrInvalidInput = errors.New("invalid input")

// PriceBar represents one daily OHLCV record.
type PriceBar struct {
	Date   time.Time
	Symbol string
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// ValidateBars checks that bars form a well-formed ascending daily series.
// Short series are fine here; the indicator layer degrades gracefully on
// those. Malformed bars are not.
func ValidateBars(bars []PriceBar) error {
	for i, b := range bars {
		if b.Open < 0 || b.High < 0 || b.Low < 0 || b.Close < 0 {
			return fmt.Errorf("%w: bar %d has negative price", ErrInvalidInput, i)
		}
		if b.Volume < 0 {
			return fmt.Errorf("%w: bar %d has negative volume", ErrInvalidInput, i)
		}
		if b.High < b.Low {
			return fmt.Errorf("%w: bar %d high below low", ErrInvalidInput, i)
		}
		if hasNaN(b) {
			return fmt.Errorf("%w: bar %d has NaN field", ErrInvalidInput, i)
		}
		if i > 0 && !bars[i-1].Date.Before(b.Date) {
			return fmt.Errorf("%w: bar %d date %s not after %s", ErrInvalidInput,
				i, b.Date.Format("2006-01-02"), bars[i-1].Date.Format("2006-01-02"))
		}
	}
	return nil
}

func hasNaN(b PriceBar) bool {
	return math.IsNaN(b.Open) || math.IsNaN(b.High) || math.IsNaN(b.Low) ||
		math.IsNaN(b.Close) || math.IsNaN(b.Volume)
}

// Closes extracts the close series from bars.
func Closes(bars []PriceBar) []float64 {
	out := make([]float64, len(bars))
	for i, b := range bars {
		out[i] = b.Close
	}
	return out
}

// Volumes extracts the volume series from bars.
func Volumes(bars []PriceBar) []float64 {
	out := make([]float64, len(bars))
	for i, b := range bars {
		out[i] = b.Volume
	}
	return out
}
