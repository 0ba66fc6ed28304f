// Copyright 2016 The Vanadium Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package clock

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// ClockMetrics is an optional Prometheus collaborator for a Clock. It is
// pure observation: nothing in the scheduler or dispatcher consults it to
// make a decision, matching the rest of this package's stance of keeping
// instrumentation orthogonal to control flow.
type ClockMetrics struct {
	fired       prometheus.Counter
	unscheduled prometheus.Counter
	busyRetries prometheus.Counter
	jitter      prometheus.Histogram
}

// NewClockMetrics builds a ClockMetrics registered under namespace/subsystem
// with r, or registered against prometheus.DefaultRegisterer if r is nil.
func NewClockMetrics(namespace, subsystem string, r prometheus.Registerer) *ClockMetrics {
	if r == nil {
		r = prometheus.DefaultRegisterer
	}
	m := &ClockMetrics{
		fired: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: subsystem, Name: "entries_fired_total",
			Help: "Number of entries whose callback has been invoked or whose sync wait returned OK/Early.",
		}),
		unscheduled: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: subsystem, Name: "entries_unscheduled_total",
			Help: "Number of entries observed in the Unscheduled state by the dispatcher or a sync waiter.",
		}),
		busyRetries: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: subsystem, Name: "wait_busy_retries_total",
			Help: "Number of times WaitCore looped after a timed-out wait that was still short of the deadline.",
		}),
		jitter: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace, Subsystem: subsystem, Name: "wait_jitter_seconds",
			Help:    "Signed scheduling error observed by WaitCore: positive means the wait fired late.",
			Buckets: prometheus.ExponentialBuckets(1e-6, 4, 10),
		}),
	}
	r.MustRegister(m.fired, m.unscheduled, m.busyRetries, m.jitter)
	return m
}

func (m *ClockMetrics) observeFired() {
	if m != nil {
		m.fired.Inc()
	}
}

func (m *ClockMetrics) observeUnscheduled() {
	if m != nil {
		m.unscheduled.Inc()
	}
}

func (m *ClockMetrics) observeBusyRetry() {
	if m != nil {
		m.busyRetries.Inc()
	}
}

func (m *ClockMetrics) observeJitter(d time.Duration) {
	if m != nil {
		m.jitter.Observe(d.Seconds())
	}
}
