// Copyright 2016 The Vanadium Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package clock

import "sort"

// entryQueue holds every live Entry owned by a Clock, kept sorted by
// (deadline, id) ascending. All methods assume the owning Clock's lock is
// already held -- entryQueue has no lock of its own, mirroring the
// design's single EntryQueue living inside the clock's private lock
// rather than synchronizing independently.
type entryQueue struct {
	entries []*Entry
}

func (q *entryQueue) len() int { return len(q.entries) }

// insert adds e in deadline order. Ties are broken by id so that two
// entries racing for the same deadline still produce a total, stable
// order -- required for the Ordering test property.
func (q *entryQueue) insert(e *Entry) {
	i := sort.Search(len(q.entries), func(i int) bool {
		o := q.entries[i]
		if o.deadline != e.deadline {
			return o.deadline > e.deadline
		}
		return o.id > e.id
	})
	q.entries = append(q.entries, nil)
	copy(q.entries[i+1:], q.entries[i:])
	q.entries[i] = e
}

// remove deletes e from the queue if present, reporting whether it found
// it. It is O(n); the queue is expected to hold a small number of live
// timers compared to the firing rate, so this matches the design's own
// choice of a flat ordered structure over a heap.
func (q *entryQueue) remove(e *Entry) bool {
	for i, o := range q.entries {
		if o == e {
			q.entries = append(q.entries[:i], q.entries[i+1:]...)
			return true
		}
	}
	return false
}

// head returns the earliest-deadline entry, or nil if empty.
func (q *entryQueue) head() *Entry {
	if len(q.entries) == 0 {
		return nil
	}
	return q.entries[0]
}

// resort restores sorted order after e's deadline has changed in place
// (the Periodic rearm case). e must currently be present in the queue.
func (q *entryQueue) resort(e *Entry) {
	if q.remove(e) {
		q.insert(e)
	}
}
