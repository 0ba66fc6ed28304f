// Copyright 2016 The Vanadium Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build linux

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
		vlog.Log.Errorf("clock: CLOCK_MONOTONIC unavailable: %v", err)
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

type taiSource struct{}

var taiInitOnce sync.Once
var taiAvailable bool

func newTaiSource() TimeSource {
	taiInitOnce.Do(func() {
		var ts unix.Timespec
		taiAvailable = unix.ClockGettime(unix.CLOCK_TAI, &ts) == nil
		if !taiAvailable {
			vlog.Log.Infof("clock: CLOCK_TAI unavailable, degrading to realtime")
		}
	})
	return taiSource{}
}

func (taiSource) Now() int64 {
	if taiAvailable {
		var ts unix.Timespec
		if err := unix.ClockGettime(unix.CLOCK_TAI, &ts); err == nil {
			return ts.Sec*int64(time.Second) + ts.Nsec
		}
	}
	return realtimeSource{}.Now()
}

func (taiSource) Resolution() time.Duration { return time.Microsecond }
func (taiSource) Kind() Kind                { return Tai }
