// Copyright 2016 The Vanadium Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package clock_test

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"v.io/x/clock"
)

func TestWaitAsyncRecordsFiredMetric(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := clock.NewClockMetrics("clock_test", "scheduler", reg)
	c := clock.New(clock.Monotonic, clock.WithMetrics(metrics))
	defer c.Close()

	now := clock.NewTimeSource(clock.Monotonic).Now()
	fired := make(chan struct{})
	e := clock.NewSingle(now+int64(5*time.Millisecond), func(_ *clock.Clock, _ int64, _ *clock.Entry, _ interface{}) {
		close(fired)
	}, nil)

	if _, err := c.WaitAsync(e); err != nil {
		t.Fatalf("WaitAsync() error = %v", err)
	}
	select {
	case <-fired:
	case <-time.After(time.Second):
		t.Fatal("callback never fired")
	}

	// Metric increments happen just after the callback returns on the
	// dispatcher goroutine; give it a moment to finish the step.
	time.Sleep(10 * time.Millisecond)

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather() error = %v", err)
	}
	var found bool
	for _, mf := range mfs {
		if mf.GetName() == "clock_test_scheduler_entries_fired_total" {
			found = true
			if got := mf.Metric[0].GetCounter().GetValue(); got != 1 {
				t.Errorf("entries_fired_total = %v, want 1", got)
			}
		}
	}
	if !found {
		t.Fatalf("entries_fired_total metric not registered")
	}
}
