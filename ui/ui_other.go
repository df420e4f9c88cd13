// Copyright 2023 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

//go:build !windows

package ui

import "os"

// enableVirtualTerminal reports whether f handles ANSI escape sequence.
// Terminals handle it on other platforms.
func enableVirtualTerminal(f *os.File) bool {
	return true
}
