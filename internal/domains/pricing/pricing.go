// Package pricing computes booking totals. All amounts share one currency and are
// rounded to cents.
package pricing

import (
	"hotel/shared"
	"hotel/shared/failure"
)

// ComputeBase returns rate × nights.
func ComputeBase(rate float64, nights int) (float64, error) {
	if nights < 1 {
		return 0, failure.InvalidInput("nights must be at least 1") // nolint:wrapcheck
	}

	if rate < 0 {
		return 0, failure.InvalidInput("nightly rate must not be negative") // nolint:wrapcheck
	}

	return shared.RoundMoney(rate * float64(nights)), nil
}

// ComputeFinal adds the extra charges recorded at check-out to the base total.
func ComputeFinal(base, extra float64) (float64, error) {
	if extra < 0 {
		return 0, failure.InvalidInput("extra charges must not be negative") // nolint:wrapcheck
	}

	return shared.RoundMoney(base + extra), nil
}
