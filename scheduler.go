// Copyright 2016 The Vanadium Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package clock

import (
	"sync/atomic"
	"time"

	"v.io/x/clock/internal/nsync"
	"v.io/x/clock/vlog"
)

// Clock is a scheduler of Entry timers backed by a TimeSource. The zero
// value is not usable; construct one with New.
//
// Lock order, if ever nested: a process-wide singleton lock used only by
// ObtainDefault and SetDefault (§6), then Clock.mu, then an individual
// Entry's mu.
// Clock.mu is never held while invoking a user Callback or while blocked
// inside waitCore.
type Clock struct {
	mu             nsync.Mu
	entriesChanged nsync.CV

	queue entryQueue

	timeSource TimeSource
	kind       Kind

	starting         bool
	stopping         bool
	started          bool
	dispatcherExited bool

	// refs is the ObtainDefault/Release count from default.go; it has
	// nothing to do with queue membership, which the queue slice and Go's
	// GC already own outright.
	refs    atomic.Int32
	metrics *ClockMetrics
}

// Option configures a Clock constructed by New.
type Option func(*Clock)

// WithMetrics attaches a Prometheus collaborator; see §4.9.
func WithMetrics(m *ClockMetrics) Option {
	return func(c *Clock) { c.metrics = m }
}

// New constructs a Clock reading time from the given Kind's TimeSource.
// The AsyncDispatcher worker is not started until the first WaitAsync call.
func New(kind Kind, opts ...Option) *Clock {
	c := &Clock{
		timeSource: NewTimeSource(kind),
		kind:       kind,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ClockType returns the Kind this Clock currently reads time from.
func (c *Clock) ClockType() Kind {
	c.mu.Lock()
	k := c.kind
	c.mu.Unlock()
	return k
}

// SetClockType re-points the Clock at a different TimeSource kind. Entries
// already queued keep the deadline they were submitted with, computed
// against whichever TimeSource was active at the time -- this is a
// documented consequence of allowing the source to change underneath a
// live scheduler, not a bug to paper over.
func (c *Clock) SetClockType(kind Kind) error {
	ts := NewTimeSource(kind)
	c.mu.Lock()
	c.timeSource = ts
	c.kind = kind
	c.mu.Unlock()
	return nil
}

// WaitSync blocks the calling goroutine until e's deadline, returning why
// the wait ended. See spec §4.5 wait_sync.
func (c *Clock) WaitSync(e *Entry) (Result, error) {
	c.mu.Lock()
	if c.stopping {
		c.mu.Unlock()
		return Error, ErrClockClosed
	}
	e.ensureInit(c)
	c.mu.Unlock()

	e.mu.Lock()
	if e.Status() == StatusUnscheduled {
		e.mu.Unlock()
		return Unscheduled, nil
	}
	e.setStatus(StatusBusy)
	var jitter time.Duration
	result := c.waitCore(e, &jitter, true)
	e.mu.Unlock()

	if result == OK || result == Early {
		c.metrics.observeFired()
	} else if result == Unscheduled {
		c.metrics.observeUnscheduled()
	}
	return result, nil
}

// WaitAsync submits e for delivery on the AsyncDispatcher goroutine and
// returns immediately. See spec §4.5 wait_async.
func (c *Clock) WaitAsync(e *Entry) (Result, error) {
	c.mu.Lock()
	if c.stopping {
		c.mu.Unlock()
		return Error, ErrClockClosed
	}
	if !c.started {
		if err := c.startDispatcherLocked(); err != nil {
			c.mu.Unlock()
			return Error, err
		}
	}
	if e.kind == Periodic && e.interval <= 0 {
		c.mu.Unlock()
		return Error, ErrInvalidEntry
	}
	e.ensureInit(c)

	e.mu.Lock()
	if e.Status() == StatusUnscheduled {
		e.mu.Unlock()
		c.mu.Unlock()
		return Unscheduled, nil
	}
	e.mu.Unlock()

	prevHead := c.queue.head()
	c.queue.insert(e)

	if c.queue.head() == e {
		if prevHead == nil {
			c.entriesChanged.Broadcast()
		} else {
			prevHead.mu.Lock()
			if prevHead.Status() == StatusBusy {
				prevHead.cond.Broadcast()
			}
			prevHead.mu.Unlock()
		}
	}
	c.mu.Unlock()
	return OK, nil
}

// Unschedule cancels e. It is safe to call multiple times and safe to call
// concurrently with delivery; see spec §4.5 unschedule and the ordering
// note in §5 about the unavoidable race with an in-flight callback.
func (c *Clock) Unschedule(e *Entry) {
	c.mu.Lock()
	e.ensureInit(c)
	c.mu.Unlock()

	e.mu.Lock()
	wasBusy := e.Status() == StatusBusy
	e.setStatus(StatusUnscheduled)
	if wasBusy {
		e.cond.Broadcast()
	}
	e.mu.Unlock()
}

// startDispatcherLocked must be called with c.mu held.
func (c *Clock) startDispatcherLocked() error {
	c.starting = true
	go c.dispatchLoop()
	for c.starting {
		c.entriesChanged.Wait(&c.mu)
	}
	c.started = true
	return nil
}

// Close stops the AsyncDispatcher (if running), unschedules every queued
// entry, and releases the Clock's resources. It blocks until the
// dispatcher goroutine has exited. See spec §4.5 disposal.
func (c *Clock) Close() error {
	c.mu.Lock()
	c.stopping = true
	head := c.queue.head()
	for _, e := range c.queue.entries {
		e.mu.Lock()
		e.setStatus(StatusUnscheduled)
		e.mu.Unlock()
	}
	if head != nil {
		head.mu.Lock()
		if head.Status() == StatusUnscheduled {
			head.cond.Broadcast()
		}
		head.mu.Unlock()
	}
	started := c.started
	c.entriesChanged.Broadcast()
	c.mu.Unlock()

	if started {
		c.mu.Lock()
		for !c.dispatcherExited {
			c.entriesChanged.Wait(&c.mu)
		}
		c.mu.Unlock()
	}

	c.mu.Lock()
	c.queue.entries = nil
	c.mu.Unlock()
	vlog.Log.Infof("clock: closed")
	return nil
}
