// Copyright 2016 The Vanadium Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package clock

import (
	"time"

	"v.io/x/clock/internal/nsync"
)

// clockMinWaitTime is the platform floor below which a wait is treated as
// "fire immediately" rather than actually suspending. Pthread-condvar-class
// primitives (what nsync.CV itself emulates) see floors around 500ns on
// real kernels; Go's goroutine scheduler and timer wheel add enough
// overhead that a larger, still-conservative floor avoids spurious
// busy-looping on waits that are already essentially due.
const clockMinWaitTime = 1 * time.Microsecond

// nanosleepCeiling and overshootThreshold implement the two-tier fast path
// of wait_on_entry: short waits sleep directly; medium waits subtract a
// calibrated overshoot budget before blocking on the entry's wait
// primitive, trusting the next loop iteration's fine-grained sleep to
// absorb the remainder.
const (
	nanosleepCeiling   = 500 * time.Microsecond
	overshootThreshold = 2 * time.Millisecond
	overshootReduction = 500 * time.Microsecond
)

// waitCore implements 4.4's wait_on_entry. It is called with e.mu held and
// the clock lock NOT held, and returns with e.mu still held. jitterOut, if
// non-nil, receives the signed scheduling error now minus deadline
// (positive: entry was already past due when observed; negative: it was
// still ahead).
func (c *Clock) waitCore(e *Entry, jitterOut *time.Duration, restartAllowed bool) Result {
	// Step 1: release the entry lock before touching the TimeSource, so a
	// TimeSource implementation that itself takes a lock (none of the
	// ones in this package do, but a caller-supplied one might) can never
	// invert against e.mu.
	e.mu.Unlock()
	now := c.timeSource.Now()
	hostNow := time.Now()
	e.mu.Lock()

	for {
		if e.Status() == StatusUnscheduled {
			return Unscheduled
		}

		diff := time.Duration(e.deadline - now)
		jitter := -diff
		if jitterOut != nil {
			*jitterOut = jitter
		}

		if diff <= clockMinWaitTime {
			c.metrics.observeJitter(jitter)
			if diff != 0 {
				e.setStatus(StatusEarly)
				return Early
			}
			e.setStatus(StatusOK)
			return OK
		}

		wait := diff
		fastSleep := wait <= nanosleepCeiling
		if !fastSleep && wait < overshootThreshold {
			wait -= overshootReduction
		}

		var timedOut bool
		if fastSleep {
			e.mu.Unlock()
			time.Sleep(wait)
			e.mu.Lock()
			timedOut = true
		} else {
			deadline := hostNow.Add(wait)
			r := e.cond.WaitUntil(&e.mu, deadline)
			timedOut = r == nsync.Expired
		}

		if e.Status() == StatusUnscheduled {
			return Unscheduled
		}

		if !timedOut {
			if !restartAllowed {
				return e.Status().toResult()
			}
			now = c.timeSource.Now()
			hostNow = time.Now()
			continue
		}

		now = c.timeSource.Now()
		hostNow = time.Now()
		diff = time.Duration(e.deadline - now)
		if diff <= clockMinWaitTime {
			c.metrics.observeJitter(-diff)
			e.setStatus(StatusOK)
			return OK
		}
		c.metrics.observeBusyRetry()
		e.setStatus(StatusBusy)
	}
}
