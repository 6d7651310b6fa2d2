// errors.go — sentinel errors for the sdc package.
//
// Error policy follows the teacher's builder package: only sentinel
// variables are exposed, callers branch with errors.Is, and call sites
// attach context with %w rather than constructing ad hoc strings at the
// sentinel's definition site.
package sdc

import (
	"errors"
	"fmt"
)

// ErrClockNotFound is returned when a referenced clock name has not been
// created with CreateClock.
var ErrClockNotFound = errors.New("sdc: clock not found")

// ErrDuplicateClock is returned by CreateClock and CreateGeneratedClock when
// name is already in use.
var ErrDuplicateClock = errors.New("sdc: clock already exists")

// ErrInvalidPeriod is returned when a clock's period is not positive.
var ErrInvalidPeriod = errors.New("sdc: invalid clock period")

// ErrInvalidWaveform is returned when a clock's waveform is not a strictly
// increasing sequence of edge times within [0, period).
var ErrInvalidWaveform = errors.New("sdc: invalid clock waveform")

// ErrMasterClockNotFound is returned by CreateGeneratedClock when the named
// master clock does not exist.
var ErrMasterClockNotFound = errors.New("sdc: master clock not found")

// ErrExceptionEmptyTo is returned when an exception's To set is empty; every
// exception must terminate somewhere.
var ErrExceptionEmptyTo = errors.New("sdc: exception has no -to endpoints")

// ErrNotFound is a generic lookup-miss sentinel (spec §7: "surface as a
// failure from the caller that supplied the reference"). No function in
// this package returns it; the input/output delay and uncertainty queries
// report a miss with an empty result or a false bool.
var ErrNotFound = errors.New("sdc: not found")

func wrapf(method, format string, args ...interface{}) error {
	return fmt.Errorf("%s: %s", method, fmt.Sprintf(format, args...))
}
