package pricing

import "errors"

var (
	// ErrInvalidInput marks a simulation request rejected before any
	// computation: negative amounts, empty method codes and the like.
	ErrInvalidInput = errors.New("invalid input")

	// ErrPlanNotFound marks an explicit plan id that does not resolve
	// to an enabled, currently valid financing rate. Distinct from "no
	// plan chosen", which defaults the coefficient to 1.
	ErrPlanNotFound = errors.New("financing plan not found")

	// ErrDataUnavailable marks a catalog read that failed outright.
	// Callers surface it as a failed simulation instead of pretending
	// no rules exist.
	ErrDataUnavailable = errors.New("catalog unavailable")
)
