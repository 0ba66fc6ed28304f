// Copyright 2016 The Vanadium Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package nsync provides the mutex (Mu) and Mesa-style condition variable
// (CV) pair that backs the clock package's entry lock and wait primitive.
//
// The clock scheduler needs exactly the two properties CV adds over
// sync.Cond: an absolute-deadline wait (WaitWithDeadline) so WaitCore never
// has to recompute a relative timeout across loop iterations, and a
// zero-value CV that costs nothing until the first wait. Both Mu and CV are
// otherwise ordinary Mesa-style primitives and are used here with no
// modification to their synchronization algorithm.
package nsync
