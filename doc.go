// Copyright 2016 The Vanadium Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package clock provides a monotonic-capable system clock combined with a
// timer-entry scheduler: synchronous blocking waits, asynchronous callback
// delivery from a dedicated worker goroutine, one-shot and periodic timers,
// and cancellation that takes effect immediately, even against an entry
// currently being waited on.
//
// # Architecture
//
// A [Clock] owns a TimeSource (see [Kind]), an ordered [*Entry] queue, and
// a dedicated dispatcher goroutine. Callers submit entries through exactly
// three operations: [Clock.WaitSync] blocks the calling goroutine until its
// own entry's deadline (or cancellation); [Clock.WaitAsync] hands the entry
// to the queue and returns immediately, with the callback delivered later
// on the dispatcher goroutine; [Clock.Unschedule] cancels an entry
// regardless of which path it took.
//
// The entry lock and its paired wait primitive are an internal nsync.Mu/CV
// pair (see internal/nsync) rather than sync.Mutex/sync.Cond, because the
// scheduler needs WaitWithDeadline's absolute-deadline semantics: a wait
// must resume exactly at a host-monotonic instant without the caller
// recomputing a relative timeout on every loop iteration.
//
// # Thread safety
//
// WaitSync, WaitAsync, and Unschedule are safe to call concurrently from
// any goroutine, including against an entry the dispatcher currently holds.
// The clock lock is never held while a user callback runs, and never held
// while blocked inside WaitCore.
//
// # Ordering
//
// Entries fire in non-decreasing deadline order, ties broken by submission
// order. Submitting an entry with an earlier deadline than the current
// head preempts the dispatcher's in-flight wait in O(1).
package clock
