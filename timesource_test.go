// Copyright 2016 The Vanadium Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package clock_test

import (
	"testing"
	"time"

	"v.io/x/clock"
)

func TestMonotonicIsNonDecreasing(t *testing.T) {
	ts := clock.NewTimeSource(clock.Monotonic)
	prev := ts.Now()
	for i := 0; i < 1000; i++ {
		cur := ts.Now()
		if cur < prev {
			t.Fatalf("monotonic source went backwards: %d then %d", prev, cur)
		}
		prev = cur
	}
}

func TestMonotonicAdvancesWithRealTime(t *testing.T) {
	ts := clock.NewTimeSource(clock.Monotonic)
	start := ts.Now()
	time.Sleep(5 * time.Millisecond)
	elapsed := ts.Now() - start
	if elapsed < int64(time.Millisecond) {
		t.Fatalf("expected at least 1ms to have elapsed, got %dns", elapsed)
	}
}

func TestParseKindRoundTrip(t *testing.T) {
	for _, k := range []clock.Kind{clock.Monotonic, clock.Realtime, clock.Tai} {
		got, ok := clock.ParseKind(k.String())
		if !ok || got != k {
			t.Errorf("ParseKind(%q) = %v, %v; want %v, true", k.String(), got, ok, k)
		}
	}
	if _, ok := clock.ParseKind("bogus"); ok {
		t.Errorf("ParseKind(bogus) unexpectedly succeeded")
	}
}

func TestEachKindHasPositiveResolution(t *testing.T) {
	for _, k := range []clock.Kind{clock.Monotonic, clock.Realtime, clock.Tai} {
		ts := clock.NewTimeSource(k)
		if ts.Resolution() <= 0 {
			t.Errorf("%v: resolution %v, want > 0", k, ts.Resolution())
		}
		if ts.Kind() != k {
			t.Errorf("%v: Kind() = %v", k, ts.Kind())
		}
	}
}
