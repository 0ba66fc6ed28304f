// Copyright 2016 The Vanadium Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package clock

import "v.io/x/clock/vlog"

// dispatchLoop is the AsyncDispatcher of spec §4.6: a single dedicated
// goroutine per Clock that delivers every WaitAsync-submitted Entry's
// callback, one at a time, with no lock held during delivery.
func (c *Clock) dispatchLoop() {
	c.mu.Lock()
	c.starting = false
	c.entriesChanged.Broadcast()
	c.mu.Unlock()

	for {
		c.mu.Lock()
		for c.queue.len() == 0 && !c.stopping {
			c.entriesChanged.Wait(&c.mu)
		}
		if c.stopping {
			c.dispatcherExited = true
			c.entriesChanged.Broadcast()
			c.mu.Unlock()
			return
		}

		e := c.queue.head()
		e.mu.Lock()
		switch e.Status() {
		case StatusUnscheduled:
			e.mu.Unlock()
			c.queue.remove(e)
			c.metrics.observeUnscheduled()
			c.mu.Unlock()
			continue
		case StatusOK, StatusEarly:
			e.setStatus(StatusBusy)
			requested := e.deadline
			c.mu.Unlock()

			result := c.waitCore(e, nil, false)
			switch result {
			case Unscheduled:
				e.mu.Unlock()
				c.mu.Lock()
				c.queue.remove(e)
				c.metrics.observeUnscheduled()
				c.mu.Unlock()

			case OK, Early:
				e.mu.Unlock()
				if e.callback != nil {
					e.callback(c, requested, e, e.userData)
				}
				c.metrics.observeFired()
				if e.Kind() == Periodic {
					c.mu.Lock()
					e.mu.Lock()
					// A concurrent Unschedule may have landed while the
					// callback was running. Status is sticky once
					// Unscheduled (errors.go), so check it here rather
					// than clobbering it back to OK -- this mirrors
					// gstsystemclock.c, which advances the entry's time
					// without touching its status, leaving the next loop
					// peek to observe UNSCHEDULED and remove it.
					if e.Status() == StatusUnscheduled {
						e.mu.Unlock()
						c.queue.remove(e)
						c.metrics.observeUnscheduled()
						c.mu.Unlock()
					} else {
						e.deadline = requested + int64(e.interval)
						e.mu.Unlock()
						c.queue.resort(e)
						c.mu.Unlock()
					}
				} else {
					c.mu.Lock()
					c.queue.remove(e)
					c.mu.Unlock()
				}

			case Busy:
				// A new earlier head preempted this wait. Put the entry
				// back to OK and let the next outer iteration re-peek the
				// (possibly new) head.
				e.setStatus(StatusOK)
				e.mu.Unlock()

			default:
				vlog.Log.Errorf("clock: dispatcher saw unexpected result %v for entry %d", result, e.ID())
				e.mu.Unlock()
				c.mu.Lock()
				c.queue.remove(e)
				c.mu.Unlock()
			}

		default:
			// Busy observed at the head: another goroutine is already
			// driving this entry (WaitSync racing WaitAsync on the same
			// Entry, which callers should not do). Release and let the
			// next iteration re-peek.
			e.mu.Unlock()
			c.mu.Unlock()
		}
	}
}
