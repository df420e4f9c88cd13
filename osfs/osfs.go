// Copyright 2024 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package osfs provides OS Filesystem access.
package osfs

import (
	"context"
	"io"
	"io/fs"
	"os"
	"runtime"
	"time"

	"go.chromium.org/infra/build/aspp/o11y/clog"
	"go.chromium.org/infra/build/aspp/o11y/iometrics"
)

const slowOpThreshold = 1 * time.Minute

// OSFS provides OS Filesystem access.
// It counts metrics by iometrics.
type OSFS struct {
	*iometrics.IOMetrics
}

// New creates new OSFS.
func New(name string) *OSFS {
	return &OSFS{IOMetrics: iometrics.New(name)}
}

func logSlow(ctx context.Context, name string, dur time.Duration, err error) {
	buf := make([]byte, 4*1024)
	n := runtime.Stack(buf, false)
	clog.Warningf(ctx, "slow op %s: %s %v\n%s", name, dur, err, buf[:n])
}

// Stat returns a FileInfo describing the named file.
// It follows symlinks.
func (fs *OSFS) Stat(ctx context.Context, name string) (fs.FileInfo, error) {
	started := time.Now()
	fi, err := os.Stat(name)
	fs.Done(iometrics.Stat, 0, err)
	if dur := time.Since(started); dur > slowOpThreshold {
		logSlow(ctx, name, dur, err)
	}
	return fi, err
}

// ReadFile reads the whole contents of the named file.
// The file is closed before it returns, regardless of the result.
func (fs *OSFS) ReadFile(ctx context.Context, name string) ([]byte, error) {
	started := time.Now()
	buf, err := readFile(name)
	fs.Done(iometrics.Read, len(buf), err)
	if dur := time.Since(started); dur > slowOpThreshold {
		logSlow(ctx, name, dur, err)
	}
	return buf, err
}

func readFile(name string) ([]byte, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

// WriteFile writes data to the named file, creating it if necessary.
// If the file exists, it is truncated.
func (fs *OSFS) WriteFile(ctx context.Context, name string, data []byte, perm fs.FileMode) error {
	started := time.Now()
	err := os.WriteFile(name, data, perm)
	n := len(data)
	if err != nil {
		n = 0
	}
	fs.Done(iometrics.Write, n, err)
	if dur := time.Since(started); dur > slowOpThreshold {
		logSlow(ctx, name, dur, err)
	}
	return err
}

// Getwd returns an absolute path name of the current directory.
func (fs *OSFS) Getwd(ctx context.Context) (string, error) {
	started := time.Now()
	dir, err := os.Getwd()
	fs.Done(iometrics.Stat, 0, err)
	if dur := time.Since(started); dur > slowOpThreshold {
		logSlow(ctx, ".", dur, err)
	}
	return dir, err
}
