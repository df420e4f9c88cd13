// Copyright 2023 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package ui

import (
	"os"

	"golang.org/x/sys/windows"
)

// enableVirtualTerminal enables virtual terminal processing of the
// console f for ANSI escape sequence.
// It returns false if f is not a console or the mode can't be set.
func enableVirtualTerminal(f *os.File) bool {
	h := windows.Handle(f.Fd())
	var mode uint32
	err := windows.GetConsoleMode(h, &mode)
	if err != nil {
		return false
	}
	if mode&windows.ENABLE_VIRTUAL_TERMINAL_PROCESSING != 0 {
		return true
	}
	err = windows.SetConsoleMode(h, mode|windows.ENABLE_VIRTUAL_TERMINAL_PROCESSING)
	return err == nil
}
