// Copyright 2016 The Vanadium Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package clock

import (
	"math/bits"
	"time"
)

// Kind selects which host clock a TimeSource reads from.
type Kind int

const (
	// Monotonic reads a non-decreasing counter unaffected by wall-clock
	// jumps (NTP steps, user changing the system time, etc).
	Monotonic Kind = iota
	// Realtime reads the host wall clock in nanoseconds.
	Realtime
	// Tai reads International Atomic Time where the host provides it,
	// and otherwise falls back to Realtime with a logged degradation.
	Tai
)

func (k Kind) String() string {
	switch k {
	case Monotonic:
		return "monotonic"
	case Realtime:
		return "realtime"
	case Tai:
		return "tai"
	default:
		return "kind(?)"
	}
}

// ParseKind parses the clock-type property values {monotonic, realtime,
// tai}.
func ParseKind(s string) (Kind, bool) {
	switch s {
	case "monotonic":
		return Monotonic, true
	case "realtime":
		return Realtime, true
	case "tai":
		return Tai, true
	default:
		return 0, false
	}
}

// TimeSource reads the clock selected by Kind.
type TimeSource interface {
	// Now returns the current reading, in nanoseconds.
	Now() int64
	// Resolution returns the granularity of the underlying host clock,
	// used by consumers to bound expected jitter.
	Resolution() time.Duration
	// Kind returns which host clock this TimeSource reads.
	Kind() Kind
}

// NewTimeSource returns the TimeSource for kind, performing whatever
// one-time platform initialization (frequency queries, timebase queries)
// that kind requires. Initialization is idempotent and safe to repeat
// across goroutines; see the platform-specific files for the
// release/acquire one-shot flag each uses.
func NewTimeSource(kind Kind) TimeSource {
	switch kind {
	case Realtime:
		return realtimeSource{}
	case Tai:
		return newTaiSource()
	default:
		return newMonotonicSource()
	}
}

// scaleCounter converts a raw performance-counter reading to nanoseconds
// given a num/den frequency ratio, using a 64x64 wide multiply so that
// raw*num does not overflow a uint64 before the division. This is the
// conversion a QueryPerformanceCounter-style counter needs; clock_gettime
// already returns nanosecond-resolution values directly and has no use for
// it, but it is kept platform-independent (its caller is
// timesource_windows.go) rather than buried behind a single build tag.
func scaleCounter(raw, num, den uint64) uint64 {
	hi, lo := bits.Mul64(raw, num)
	q, _ := bits.Div64(hi, lo, den)
	return q
}
