package fundlens

import "errors"

// Sentinel errors returned by the computation engine. Callers match
// them with errors.Is to map failures onto their own surface (the HTTP
// layer turns ErrNoData into a 404, ErrInvalidRequest into a 400, and
// so on).
var (
	// ErrInvalidRequest reports a request whose parameters fail
	// validation before any NAV data is consulted.
	ErrInvalidRequest = errors.New("invalid request")

	// ErrNoData reports a NAV series with no usable points in the
	// range a computation needs.
	ErrNoData = errors.New("no NAV data available")

	// ErrNoValidNav reports that no NAV could be resolved for a date
	// a computation cannot proceed without.
	ErrNoValidNav = errors.New("no valid NAV found")

	// ErrInsufficientHistory reports a series too short for the
	// requested period.
	ErrInsufficientHistory = errors.New("insufficient NAV history")

	// ErrNoPeriodsFound reports that a rolling-window analysis
	// retained no valid windows.
	ErrNoPeriodsFound = errors.New("no valid periods found")
)
