// Copyright 2023 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package iometrics manages I/O metrics.
package iometrics

import (
	"fmt"
	"sync"
)

// Op is a kind of I/O operation.
type Op int

const (
	// Stat is a file metadata lookup.
	Stat Op = iota
	// Read is a whole file read.
	Read
	// Write is a whole file write.
	Write

	numOps
)

func (op Op) String() string {
	switch op {
	case Stat:
		return "stat"
	case Read:
		return "read"
	case Write:
		return "write"
	}
	return fmt.Sprintf("op(%d)", int(op))
}

type counter struct {
	ops   int64
	bytes int64
	errs  int64
}

// IOMetrics holds I/O metrics.
type IOMetrics struct {
	name string

	mu       sync.Mutex
	counters [numOps]counter
}

// New returns new iometrics for name.
func New(name string) *IOMetrics {
	return &IOMetrics{name: name}
}

// Done counts when op is done.
// n is the number of bytes transferred, and err is an I/O operation error.
func (m *IOMetrics) Done(op Op, n int, err error) {
	if m == nil || op < 0 || op >= numOps {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	c := &m.counters[op]
	c.ops++
	c.bytes += int64(n)
	if err != nil {
		c.errs++
	}
}

// Name returns the name of the iometrics.
func (m *IOMetrics) Name() string {
	if m == nil {
		return "<nil>"
	}
	return m.name
}

// Stats holds iometrics.
type Stats struct {
	// Number of stat operations.
	StatOps int64
	// Number of failed stat operations, including lookups of missing files.
	StatErrs int64

	// Number of read operations.
	ROps int64
	// Number of read bytes.
	RBytes int64
	// Number of read errors.
	RErrs int64

	// Number of write operations.
	WOps int64
	// Number of write bytes.
	WBytes int64
	// Number of write errors.
	WErrs int64
}

func (s Stats) String() string {
	return fmt.Sprintf("stat=%d/%d read=%d/%d(%dB) write=%d/%d(%dB)",
		s.StatErrs, s.StatOps,
		s.RErrs, s.ROps, s.RBytes,
		s.WErrs, s.WOps, s.WBytes)
}

// Stats returns the snapshot of the iometrics.
func (m *IOMetrics) Stats() Stats {
	if m == nil {
		return Stats{}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return Stats{
		StatOps:  m.counters[Stat].ops,
		StatErrs: m.counters[Stat].errs,
		ROps:     m.counters[Read].ops,
		RBytes:   m.counters[Read].bytes,
		RErrs:    m.counters[Read].errs,
		WOps:     m.counters[Write].ops,
		WBytes:   m.counters[Write].bytes,
		WErrs:    m.counters[Write].errs,
	}
}
