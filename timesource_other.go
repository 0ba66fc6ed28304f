// Copyright 2016 The Vanadium Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build !linux && !darwin && !windows

package clock

import (
	"sync"
	"time"

	"v.io/x/clock/vlog"
)

// monotonicSource falls back to time.Now()'s embedded monotonic reading on
// platforms without a direct clock_gettime/QueryPerformanceCounter binding.
// time.Since/Sub on two values obtained from time.Now() already use the
// runtime's monotonic counter, so this remains non-decreasing even across
// wall-clock steps; see https://pkg.go.dev/time#hdr-Monotonic_Clocks.
type monotonicSource struct{}

var (
	monotonicAnchor   time.Time
	monotonicInitOnce sync.Once
)

func newMonotonicSource() TimeSource {
	monotonicInitOnce.Do(func() { monotonicAnchor = time.Now() })
	return monotonicSource{}
}

func (monotonicSource) Now() int64 {
	return int64(time.Since(monotonicAnchor))
}

func (monotonicSource) Resolution() time.Duration { return time.Millisecond }
func (monotonicSource) Kind() Kind                { return Monotonic }

type realtimeSource struct{}

func (realtimeSource) Now() int64                { return time.Now().UnixNano() }
func (realtimeSource) Resolution() time.Duration { return time.Millisecond }
func (realtimeSource) Kind() Kind                { return Realtime }

type taiSource struct{}

var taiWarnOnce sync.Once

func newTaiSource() TimeSource {
	taiWarnOnce.Do(func() {
		vlog.Log.Infof("clock: CLOCK_TAI unavailable on this platform, degrading to realtime")
	})
	return taiSource{}
}

func (taiSource) Now() int64                { return realtimeSource{}.Now() }
func (taiSource) Resolution() time.Duration { return time.Millisecond }
func (taiSource) Kind() Kind                { return Tai }
