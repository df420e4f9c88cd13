// Copyright 2023 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package scandeps

import "bytes"

// LineScanner splits a buffer into lines without copying.
//
// A line ends at "\r\n", "\n\r", "\r" or "\n". The terminator is not a
// part of the line. A terminator at the end of the buffer doesn't
// produce an empty last line, and an empty buffer has no lines.
type LineScanner struct {
	buf []byte

	pos   int
	start int
	end   int
	line  int
}

// NewLineScanner returns a LineScanner for buf.
func NewLineScanner(buf []byte) *LineScanner {
	return &LineScanner{buf: buf}
}

// Scan advances the scanner to the next line.
// It returns false when no lines are left.
func (s *LineScanner) Scan() bool {
	if s.pos >= len(s.buf) {
		s.start, s.end = s.pos, s.pos
		return false
	}
	s.start = s.pos
	s.line++
	i := bytes.IndexAny(s.buf[s.pos:], "\r\n")
	if i < 0 {
		s.end = len(s.buf)
		s.pos = len(s.buf)
		return true
	}
	s.end = s.pos + i
	s.pos = s.end + 1
	if s.pos < len(s.buf) {
		c, next := s.buf[s.end], s.buf[s.pos]
		if (c == '\r' && next == '\n') || (c == '\n' && next == '\r') {
			s.pos++
		}
	}
	return true
}

// Bytes returns the current line.
// It aliases the buffer, so callers must not modify it.
func (s *LineScanner) Bytes() []byte {
	return s.buf[s.start:s.end]
}

// Line returns the 1-based line number of the current line.
func (s *LineScanner) Line() int {
	return s.line
}

// Span returns the offset and the length of the current line in the buffer.
func (s *LineScanner) Span() (start, n int) {
	return s.start, s.end - s.start
}

// Reset rewinds the scanner to the beginning of the buffer.
func (s *LineScanner) Reset() {
	s.pos, s.start, s.end, s.line = 0, 0, 0, 0
}
