package domain

import (
	"fmt"
	"time"
)

// FarFuture is the default upper bound: 2050-01-01.
const FarFuture int64 = 2524626000

// Window bounds the aggregation in epoch seconds. Both bounds are exclusive:
// an item created exactly at Start or End is outside the window.
type Window struct {
	Start int64
	End   int64
}

// DefaultWindow covers all time.
func DefaultWindow() Window {
	return Window{Start: 0, End: FarFuture}
}

// NewWindow builds a window from optional bounds; a nil bound falls back to
// the all-time default for that side.
func NewWindow(start, end *int64) Window {
	w := DefaultWindow()
	if start != nil {
		w.Start = *start
	}
	if end != nil {
		w.End = *end
	}
	return w
}

// Contains applies the strict comparison on both sides.
func (w Window) Contains(ts int64) bool {
	return ts > w.Start && ts < w.End
}

// ParseDate converts a YYYY-MM-DD date into epoch seconds at local midnight.
func ParseDate(s string, loc *time.Location) (int64, error) {
	if loc == nil {
		loc = time.Local
	}
	t, err := time.ParseInLocation(time.DateOnly, s, loc)
	if err != nil {
		return 0, fmt.Errorf("invalid date %q, want YYYY-MM-DD: %w", s, err)
	}
	return t.Unix(), nil
}
