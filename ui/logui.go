// Copyright 2023 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package ui

import (
	"fmt"

	"github.com/charmbracelet/log"
)

// LogUI is a log-based UI.
type LogUI struct {
	l *log.Logger
}

// Infof reports at info level, stripping ansi escape sequence.
func (u *LogUI) Infof(format string, args ...any) {
	u.l.Helper()
	u.l.Info(StripANSIEscapeCodes(fmt.Sprintf(format, args...)))
}

// Warningf reports at warn level, stripping ansi escape sequence.
func (u *LogUI) Warningf(format string, args ...any) {
	u.l.Helper()
	u.l.Warn(StripANSIEscapeCodes(fmt.Sprintf(format, args...)))
}

// Errorf reports at error level, stripping ansi escape sequence.
func (u *LogUI) Errorf(format string, args ...any) {
	u.l.Helper()
	u.l.Error(StripANSIEscapeCodes(fmt.Sprintf(format, args...)))
}
