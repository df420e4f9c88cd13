// Copyright 2023 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package ui provides user interface functionalities.
package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"golang.org/x/term"
)

// UI is a user interface to report diagnostics.
type UI interface {
	// Infof reports an informational message.
	Infof(format string, args ...any)
	// Warningf reports a warning message.
	Warningf(format string, args ...any)
	// Errorf reports an error message.
	Errorf(format string, args ...any)
}

// New returns a UI that writes to w.
// It uses a terminal UI if w is a terminal that handles ANSI escape
// sequence, and log UI otherwise.
func New(w io.Writer) UI {
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) && enableVirtualTerminal(f) {
		return &TermUI{w: f}
	}
	return &LogUI{l: log.NewWithOptions(w, log.Options{})}
}

// IsTerminal returns whether u is a terminal UI.
func IsTerminal(u UI) bool {
	_, ok := u.(*TermUI)
	return ok
}

// https://en.wikipedia.org/wiki/ANSI_escape_code#SGR_(Select_Graphic_Rendition)_parameters
type SGRCode int

const (
	Bold SGRCode = iota
	Red
	Green
	Yellow
	BackgroundRed
	Reset
)

var sgrEscSeq = map[SGRCode]string{
	Bold:          "\033[1m",
	Red:           "\033[31;1m",
	Green:         "\033[32m",
	Yellow:        "\033[33m",
	BackgroundRed: "\033[41;37m",
	Reset:         "\033[0m",
}

func (s SGRCode) String() string {
	return sgrEscSeq[s]
}

// SGR formats s in SGR (select graphic rendition).
func SGR(n SGRCode, s string) string {
	return fmt.Sprintf("%s%s%s", n, s, Reset)
}

// StripANSIEscapeCodes strips ANSI escape codes.
func StripANSIEscapeCodes(s string) string {
	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] != '\033' {
			sb.WriteByte(s[i])
			continue
		}
		// Only strip CSIs.
		if i+1 >= len(s) {
			break
		}
		if s[i+1] != '[' {
			continue
		}
		i += 2

		// Skip everything up to and including the next [a-zA-Z].
		for i < len(s) && !((s[i] >= 'a' && s[i] <= 'z') || s[i] >= 'A' && s[i] <= 'Z') {
			i++
		}
	}
	return sb.String()
}
