// Copyright 2023 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package ui

import (
	"fmt"
	"io"
)

// TermUI is a terminal-based UI.
// Warnings and errors are highlighted with SGR.
type TermUI struct {
	w io.Writer
}

// Infof reports a message as is.
func (t *TermUI) Infof(format string, args ...any) {
	fmt.Fprintln(t.w, fmt.Sprintf(format, args...))
}

// Warningf reports a message with yellow "warning:" prefix.
func (t *TermUI) Warningf(format string, args ...any) {
	fmt.Fprintln(t.w, SGR(Yellow, "warning: ")+fmt.Sprintf(format, args...))
}

// Errorf reports a message with red "error:" prefix.
func (t *TermUI) Errorf(format string, args ...any) {
	fmt.Fprintln(t.w, SGR(Red, "error: ")+fmt.Sprintf(format, args...))
}
