// Copyright 2023 The Chromium Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package makeutil

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"

	"go.chromium.org/infra/build/aspp/o11y/clog"
)

// FileReadWriter reads and writes a file.
type FileReadWriter interface {
	ReadFile(ctx context.Context, name string) ([]byte, error)
	WriteFile(ctx context.Context, name string, data []byte, perm fs.FileMode) error
}

// Format formats the rule in a single line terminated by newline.
// Names are written as is, without escaping.
func (r Rule) Format() []byte {
	var buf bytes.Buffer
	for i, t := range r.Targets {
		if i > 0 {
			buf.WriteByte(' ')
		}
		buf.WriteString(t)
	}
	buf.WriteByte(':')
	for _, p := range r.Prereqs {
		buf.WriteByte(' ')
		buf.WriteString(p)
	}
	buf.WriteByte('\n')
	return buf.Bytes()
}

// WriteDepsFile writes the rule to *.d file in fname on fsys.
// The file is replaced entirely, unless it already has the same contents.
// It returns true if it wrote the file.
func WriteDepsFile(ctx context.Context, fsys FileReadWriter, fname string, r Rule) (bool, error) {
	b := r.Format()
	old, err := fsys.ReadFile(ctx, fname)
	if err == nil && bytes.Equal(old, b) {
		if clog.V(ctx, 1) {
			clog.Debugf(ctx, "deps %s unchanged", fname)
		}
		return false, nil
	}
	if err == nil && clog.V(ctx, 1) {
		added, removed := diffNames(ParseRule(old).Prereqs, r.Prereqs)
		clog.Debugf(ctx, "deps %s changed: added=%q removed=%q", fname, added, removed)
	}
	err = fsys.WriteFile(ctx, fname, b, 0644)
	if err != nil {
		return false, fmt.Errorf("failed to write deps file %s: %w", fname, err)
	}
	if clog.V(ctx, 1) {
		clog.Debugf(ctx, "wrote deps %s %d bytes", fname, len(b))
	}
	return true, nil
}

// diffNames returns names only in cur, and names only in prev.
func diffNames(prev, cur []string) (added, removed []string) {
	seen := make(map[string]bool, len(prev))
	for _, name := range prev {
		seen[name] = true
	}
	for _, name := range cur {
		if seen[name] {
			delete(seen, name)
			continue
		}
		added = append(added, name)
	}
	for _, name := range prev {
		if seen[name] {
			removed = append(removed, name)
			delete(seen, name)
		}
	}
	return added, removed
}
