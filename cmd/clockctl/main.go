// Copyright 2016 The Vanadium Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command clockctl is a small diagnostic tool for the clock package: it
// reports the resolution of each TimeSource kind and can drive a short
// live demonstration of single-shot asynchronous waits.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/pflag"

	"v.io/x/clock"
	"v.io/x/clock/cmd/pflagvar"
	"v.io/x/clock/textutil"
	"v.io/x/clock/vlog"
)

var flags = &struct {
	Kind     string        `flag:"kind,monotonic,time source to use: monotonic, realtime, or tai"`
	Count    int           `flag:"count,3,number of entries to demo"`
	Interval time.Duration `flag:"interval,200ms,spacing between demo entries"`
}{}

func main() {
	fs := pflag.NewFlagSet("clockctl", pflag.ExitOnError)
	if err := pflagvar.RegisterFlagsInStruct(fs, "flag", flags, nil, nil); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := vlog.Log.Configure(vlog.LogToStderr(true)); err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
	fs.Parse(os.Args[1:])

	args := fs.Args()
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "usage: clockctl [info|demo] [flags]")
		os.Exit(1)
	}

	var err error
	switch args[0] {
	case "info":
		err = runInfo(os.Stdout)
	case "demo":
		err = runDemo(os.Stdout)
	default:
		err = fmt.Errorf("unknown command %q", args[0])
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runInfo(w *os.File) error {
	out := textutil.PrefixWriter(w, "clockctl: ")
	for _, kind := range []clock.Kind{clock.Monotonic, clock.Realtime, clock.Tai} {
		ts := clock.NewTimeSource(kind)
		fmt.Fprintf(out, "%-10s resolution=%-12s now=%d\n", kind, ts.Resolution(), ts.Now())
	}
	return nil
}

func runDemo(w *os.File) error {
	kind, ok := clock.ParseKind(flags.Kind)
	if !ok {
		return fmt.Errorf("unknown clock kind %q", flags.Kind)
	}

	out := textutil.PrefixLineWriter(w, "demo: ")
	defer out.Close()

	c := clock.New(kind)
	defer c.Close()

	done := make(chan struct{})
	var fired int
	callback := func(_ *clock.Clock, requested int64, e *clock.Entry, _ interface{}) {
		fired++
		fmt.Fprintf(out, "fired entry=%d requested=%d kind=%v\n", e.ID(), requested, e.Kind())
		if fired >= flags.Count {
			close(done)
		}
	}

	now := clock.NewTimeSource(kind).Now()
	for i := 0; i < flags.Count; i++ {
		deadline := now + int64(flags.Interval)*int64(i+1)
		e := clock.NewSingle(deadline, callback, nil)
		if _, err := c.WaitAsync(e); err != nil {
			return err
		}
	}

	<-done
	vlog.Log.Infof("clockctl: demo complete, %d entries fired", fired)
	return nil
}
