// Copyright 2016 The Vanadium Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build darwin

package clock

import (
	"sync"
	"time"

	"golang.org/x/sys/unix"

	"v.io/x/clock/vlog"
)

type monotonicSource struct{}

var monotonicInitOnce sync.Once

func newMonotonicSource() TimeSource {
	monotonicInitOnce.Do(func() {})
	return monotonicSource{}
}

func (monotonicSource) Now() int64 {
	var ts unix.Timespec
	if err := unix.ClockGettime(unix.CLOCK_MONOTONIC, &ts); err != nil {
		return time.Now().UnixNano()
	}
	return ts.Sec*int64(time.Second) + ts.Nsec
}

func (monotonicSource) Resolution() time.Duration { return time.Nanosecond }
func (monotonicSource) Kind() Kind                { return Monotonic }

type realtimeSource struct{}

func (realtimeSource) Now() int64 {
	var ts unix.Timespec
	if err := unix.ClockGettime(unix.CLOCK_REALTIME, &ts); err != nil {
		return time.Now().UnixNano()
	}
	return ts.Sec*int64(time.Second) + ts.Nsec
}

func (realtimeSource) Resolution() time.Duration { return time.Microsecond }
func (realtimeSource) Kind() Kind                { return Realtime }

// taiSource: Darwin's clock_gettime does not support CLOCK_TAI, so Tai
// always degrades to Realtime here.
type taiSource struct{}

var taiWarnOnce sync.Once

func newTaiSource() TimeSource {
	taiWarnOnce.Do(func() {
		vlog.Log.Infof("clock: CLOCK_TAI unavailable on darwin, degrading to realtime")
	})
	return taiSource{}
}

func (taiSource) Now() int64                { return realtimeSource{}.Now() }
func (taiSource) Resolution() time.Duration { return time.Microsecond }
func (taiSource) Kind() Kind                { return Tai }
