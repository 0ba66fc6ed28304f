// Copyright 2016 The Vanadium Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package clock

import "errors"

// Result is returned by WaitSync and WaitAsync and describes why a wait
// ended.
type Result int

const (
	// OK indicates the wait completed at or after the entry's deadline.
	OK Result = iota
	// Early indicates the wait returned below the platform wait floor;
	// synonymous with "fire immediately".
	Early
	// Busy is an internal signalling value observed by the dispatcher; it
	// is never returned to an external caller of WaitSync or WaitAsync.
	Busy
	// Unscheduled indicates the entry was cancelled via Unschedule.
	Unscheduled
	// Error indicates the dispatcher could not be started, or the
	// platform time source failed. Fatal to the requesting call, not to
	// the Clock.
	Error
)

func (r Result) String() string {
	switch r {
	case OK:
		return "OK"
	case Early:
		return "Early"
	case Busy:
		return "Busy"
	case Unscheduled:
		return "Unscheduled"
	case Error:
		return "Error"
	default:
		return "Result(?)"
	}
}

// Status is the lifecycle state of an Entry.
type Status int32

const (
	// StatusOK is the state an Entry starts in, and the state it returns
	// to between periodic firings.
	StatusOK Status = iota
	// StatusBusy marks an entry that is currently being waited on, either
	// synchronously or by the AsyncDispatcher.
	StatusBusy
	// StatusDone is part of the status vocabulary but is not assigned by
	// this package: a fired single-shot entry is removed from the queue
	// and keeps the status its wait ended with (StatusOK or StatusEarly).
	StatusDone
	// StatusEarly marks an entry whose wait returned below the platform
	// wait floor.
	StatusEarly
	// StatusUnscheduled is sticky: once set, it is never overwritten for
	// the remaining lifetime of the entry.
	StatusUnscheduled
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "OK"
	case StatusBusy:
		return "Busy"
	case StatusDone:
		return "Done"
	case StatusEarly:
		return "Early"
	case StatusUnscheduled:
		return "Unscheduled"
	default:
		return "Status(?)"
	}
}

// toResult maps an entry's lifecycle status onto the Result vocabulary
// used when WaitCore returns control to the AsyncDispatcher without
// restarting -- the preempted-but-not-timed-out case of 4.4 step 6, where
// the dispatcher re-evaluates the queue head rather than looping itself.
func (s Status) toResult() Result {
	switch s {
	case StatusEarly:
		return Early
	case StatusUnscheduled:
		return Unscheduled
	case StatusBusy:
		return Busy
	default:
		return OK
	}
}

// Standard errors returned by Clock methods.
var (
	// ErrDispatcherStartFailed is returned when the AsyncDispatcher
	// worker could not be started.
	ErrDispatcherStartFailed = errors.New("clock: failed to start async dispatcher")
	// ErrTimeSourceUnavailable is returned when the configured
	// TimeSource kind is not available on this platform and no
	// degraded fallback applies.
	ErrTimeSourceUnavailable = errors.New("clock: time source unavailable")
	// ErrClockClosed is returned by operations attempted after Close.
	ErrClockClosed = errors.New("clock: clock has been closed")
	// ErrInvalidEntry is returned for malformed entries, e.g. a Periodic
	// entry with a non-positive interval.
	ErrInvalidEntry = errors.New("clock: invalid entry")
)
