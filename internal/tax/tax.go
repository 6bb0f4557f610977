// Package tax resolves the VAT rate applied to a simulator line. The
// current strategy is a single configured rate; the per-line signature
// leaves room for category- or method-dependent rates later.
package tax

import (
	"os"
	"strconv"
)

const fallbackRate = 0.21

// Provider yields the VAT rate for one payment line.
type Provider interface {
	RateForLine(methodCode, brand, bankCode string) float64
}

// FlatRate applies the same rate to every line.
type FlatRate struct {
	Rate float64
}

func (f FlatRate) RateForLine(methodCode, brand, bankCode string) float64 {
	return f.Rate
}

// DefaultRate reads DEFAULT_VAT_RATE from the environment, falling back
// to the general 21% rate.
func DefaultRate() float64 {
	raw, ok := os.LookupEnv("DEFAULT_VAT_RATE")
	if !ok {
		return fallbackRate
	}
	rate, err := strconv.ParseFloat(raw, 64)
	if err != nil || rate < 0 {
		return fallbackRate
	}
	return rate
}
