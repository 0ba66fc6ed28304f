// Copyright 2016 The Vanadium Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package clock

import (
	"sync/atomic"
	"time"

	"v.io/x/clock/internal/nsync"
)

// EntryKind distinguishes a one-shot timer from a self-rearming one.
type EntryKind int

const (
	// Single fires its callback at most once.
	Single EntryKind = iota
	// Periodic rearms itself after every firing, advancing its deadline
	// by Interval measured against the originally-requested fire time,
	// not wall arrival.
	Periodic
)

func (k EntryKind) String() string {
	if k == Periodic {
		return "periodic"
	}
	return "single"
}

// Callback is invoked on the AsyncDispatcher goroutine, with no lock held,
// once an async Entry's deadline has passed. requestedDeadline is the
// entry's deadline at the moment it was picked up, in TimeSource
// nanoseconds -- for a Periodic entry this is the k-th exact
// t0+k*Interval value, independent of delivery jitter.
type Callback func(c *Clock, requestedDeadline int64, e *Entry, userData interface{})

var entryIDCounter atomic.Uint64

// Entry is one scheduled timer: a deadline, a kind, and (for async use) a
// callback. Entries are constructed with NewSingle or NewPeriodic and become live only once
// passed to one of the Clock's three scheduler operations.
//
// An Entry may be submitted exactly once. Re-submission after it has
// reached a terminal state is not supported; construct a new Entry
// instead -- this mirrors the "setting the deadline of a submitted entry is
// not permitted" rule of the scheduler design.
type Entry struct { // betteralign:ignore
	// id is assigned on first submission; zero beforehand. It is also
	// the EntryQueue insertion tiebreak for equal deadlines.
	id uint64

	kind     EntryKind
	interval time.Duration
	callback Callback
	userData interface{}

	// mu is the "entry lock" of the design: it guards deadline, status,
	// and pairs with cond. A zero-value nsync.Mu is already a valid,
	// unlocked mutex, so unlike the design's C ancestor there is no
	// separate allocation step -- "lazy initialization" below covers
	// only the clock back-reference and id, not the lock itself.
	mu   nsync.Mu
	cond nsync.CV

	deadline int64 // ns on the clock's TimeSource; guarded by mu
	status   atomic.Int32

	// clock is set once, under the owning Clock's lock, the first time
	// this Entry is submitted. It is never reset: an Entry may only ever
	// belong to one Clock.
	clock *Clock

	initialized bool // guarded by clock.mu
}

// NewSingle constructs a Single entry that fires once at deadline (TimeSource
// nanoseconds).
func NewSingle(deadline int64, callback Callback, userData interface{}) *Entry {
	e := &Entry{kind: Single, deadline: deadline, callback: callback, userData: userData}
	e.status.Store(int32(StatusOK))
	return e
}

// NewPeriodic constructs a Periodic entry whose first firing is at
// deadline and which rearms itself every interval thereafter. interval
// must be > 0.
func NewPeriodic(deadline int64, interval time.Duration, callback Callback, userData interface{}) *Entry {
	e := &Entry{kind: Periodic, deadline: deadline, interval: interval, callback: callback, userData: userData}
	e.status.Store(int32(StatusOK))
	return e
}

// ID returns the entry's stable handle, valid once the entry has been
// submitted to a Clock at least once; zero beforehand.
func (e *Entry) ID() uint64 { return e.id }

// Kind returns whether this is a Single or Periodic entry.
func (e *Entry) Kind() EntryKind { return e.kind }

// Interval returns the rearm interval; meaningful only for Periodic
// entries.
func (e *Entry) Interval() time.Duration { return e.interval }

// UserData returns the opaque value passed to New*.
func (e *Entry) UserData() interface{} { return e.userData }

// Status returns the entry's current status. It is safe to call from any
// goroutine without holding any lock.
func (e *Entry) Status() Status { return Status(e.status.Load()) }

// Deadline returns the entry's current deadline in TimeSource nanoseconds.
// For a Periodic entry this advances after each firing.
func (e *Entry) Deadline() int64 {
	e.mu.Lock()
	d := e.deadline
	e.mu.Unlock()
	return d
}

// setStatus must be called with e.mu held; it keeps the atomic mirror used
// by Status() in sync with the lock-guarded value used internally.
func (e *Entry) setStatus(s Status) { e.status.Store(int32(s)) }

// ensureInit idempotently attaches e to c, assigning e's id on first
// submission. Must be called with c.mu held -- this is the "lazy
// initialization under the clock lock" the Entry's initialized flag
// guards, per the design's check-then-init race-freedom requirement.
func (e *Entry) ensureInit(c *Clock) {
	if e.initialized {
		return
	}
	e.clock = c
	e.id = entryIDCounter.Add(1)
	e.initialized = true
}
