// Copyright 2016 The Vanadium Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package nsync

import "time"

// WaitUntil blocks the calling goroutine on cv until awakened by Signal,
// Broadcast, a spurious wakeup, or absDeadline passing, then reacquires mu.
// It is WaitWithDeadline with no cancellation channel, named for the callers
// in this module that only ever wait on absolute host-monotonic deadlines.
func (cv *CV) WaitUntil(mu *Mu, absDeadline time.Time) int {
	return cv.WaitWithDeadline(mu, absDeadline, nil)
}
