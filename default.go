// Copyright 2016 The Vanadium Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package clock

import "sync"

// defaultMu guards defaultClock. It is the "process-wide singleton lock"
// of spec §5: acquired only by ObtainDefault and SetDefault, never while
// any of the three Scheduler operations are in flight.
var (
	defaultMu    sync.Mutex
	defaultClock *Clock
)

// ObtainDefault returns the process-wide default Clock, constructing a
// Monotonic one on first call. Every call while the default is live bumps
// its reference count; callers that no longer need the default should
// call Release.
func ObtainDefault() *Clock {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultClock == nil {
		defaultClock = New(Monotonic)
	}
	defaultClock.refs.Add(1)
	return defaultClock
}

// SetDefault overrides the process-wide default Clock, for tests that need
// a fake or differently-configured one. Passing nil clears the override,
// so the next ObtainDefault call constructs a fresh Monotonic Clock.
func SetDefault(c *Clock) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultClock = c
}

// Release drops a reference obtained from ObtainDefault. It does not close
// the clock -- the default clock outlives any single holder's interest in
// it for the life of the process -- it exists so callers can reason about
// how many subsystems currently depend on the default.
func (c *Clock) Release() {
	c.refs.Add(-1)
}
