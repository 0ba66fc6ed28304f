// Copyright 2016 The Vanadium Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build windows

package clock

import (
	"sync"
	"time"

	"golang.org/x/sys/windows"

	"v.io/x/clock/vlog"
)

// monotonicSource reads QueryPerformanceCounter, scaled to nanoseconds via
// the 64x64 wide multiply in scaleCounter: the counter's frequency (ticks
// per second) almost never divides evenly into 1e9, so naive
// raw*1e9/freq arithmetic on a plain uint64 would overflow for any
// long-running process.
type monotonicSource struct{}

var (
	qpcFrequency      uint64
	monotonicInitOnce sync.Once
)

func newMonotonicSource() TimeSource {
	monotonicInitOnce.Do(func() {
		var freq int64
		if err := windows.QueryPerformanceFrequency(&freq); err != nil || freq <= 0 {
			vlog.Log.Errorf("clock: QueryPerformanceFrequency failed: %v", err)
			freq = int64(time.Second) // degrade to a 1ns-per-tick counter
		}
		qpcFrequency = uint64(freq)
	})
	return monotonicSource{}
}

func (monotonicSource) Now() int64 {
	var counter int64
	if err := windows.QueryPerformanceCounter(&counter); err != nil {
		return time.Now().UnixNano()
	}
	return int64(scaleCounter(uint64(counter), uint64(time.Second), qpcFrequency))
}

func (monotonicSource) Resolution() time.Duration {
	if qpcFrequency == 0 {
		return time.Microsecond
	}
	return time.Duration(scaleCounter(1, uint64(time.Second), qpcFrequency))
}

func (monotonicSource) Kind() Kind { return Monotonic }

type realtimeSource struct{}

func (realtimeSource) Now() int64                { return time.Now().UnixNano() }
func (realtimeSource) Resolution() time.Duration { return time.Millisecond }
func (realtimeSource) Kind() Kind                { return Realtime }

// taiSource: Windows exposes no CLOCK_TAI equivalent, so Tai always
// degrades to Realtime here.
type taiSource struct{}

var taiWarnOnce sync.Once

func newTaiSource() TimeSource {
	taiWarnOnce.Do(func() {
		vlog.Log.Infof("clock: TAI unavailable on windows, degrading to realtime")
	})
	return taiSource{}
}

func (taiSource) Now() int64                { return realtimeSource{}.Now() }
func (taiSource) Resolution() time.Duration { return time.Millisecond }
func (taiSource) Kind() Kind                { return Tai }
