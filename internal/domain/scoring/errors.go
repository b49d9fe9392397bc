package scoring

import "errors"

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	// ErrUnknownSystem means the configured scoring-system name matches no
	// preset. This is a configuration error and aborts the run.
	ErrUnknownSystem = errors.New("unknown scoring system")
)
