// Copyright 2023 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package scandeps

import (
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func scanLines(buf []byte) []string {
	var lines []string
	s := NewLineScanner(buf)
	for s.Scan() {
		lines = append(lines, string(s.Bytes()))
	}
	return lines
}

func TestLineScanner(t *testing.T) {
	for _, tc := range []struct {
		name string
		buf  string
		want []string
	}{
		{
			name: "empty",
			buf:  "",
		},
		{
			name: "no_terminator",
			buf:  "a",
			want: []string{"a"},
		},
		{
			name: "newline_only",
			buf:  "\n",
			want: []string{""},
		},
		{
			name: "trailing_terminator",
			buf:  "a\n",
			want: []string{"a"},
		},
		{
			name: "crlf",
			buf:  "a\r\nb",
			want: []string{"a", "b"},
		},
		{
			name: "lfcr",
			buf:  "a\n\rb",
			want: []string{"a", "b"},
		},
		{
			name: "mixed",
			buf:  "a\rb\nc",
			want: []string{"a", "b", "c"},
		},
		{
			name: "cr_cr",
			buf:  "a\r\rb",
			want: []string{"a", "", "b"},
		},
		{
			name: "lf_lf",
			buf:  "a\n\nb",
			want: []string{"a", "", "b"},
		},
		{
			name: "crlf_lf",
			buf:  "a\r\n\nb",
			want: []string{"a", "", "b"},
		},
		{
			name: "crlfcr",
			buf:  "a\r\n\rb",
			want: []string{"a", "", "b"},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			got := scanLines([]byte(tc.buf))
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("scanLines(%q) diff -want +got:\n%s", tc.buf, diff)
			}
		})
	}
}

func TestLineScanner_LineNumber(t *testing.T) {
	s := NewLineScanner([]byte("a\r\nb\n\nc"))
	var got []int
	for s.Scan() {
		got = append(got, s.Line())
	}
	if diff := cmp.Diff([]int{1, 2, 3, 4}, got); diff != "" {
		t.Errorf("Line() diff -want +got:\n%s", diff)
	}

	s.Reset()
	if !s.Scan() {
		t.Fatalf("Scan() after Reset()=false; want true")
	}
	if got, want := string(s.Bytes()), "a"; got != want {
		t.Errorf("Bytes() after Reset()=%q; want %q", got, want)
	}
	if got, want := s.Line(), 1; got != want {
		t.Errorf("Line() after Reset()=%d; want %d", got, want)
	}
}

// reconstruct joins lines with terminators taken from the buffer.
// It must produce the buffer itself.
func reconstruct(buf []byte) []byte {
	var out []byte
	s := NewLineScanner(buf)
	prevEnd := 0
	for s.Scan() {
		start, n := s.Span()
		out = append(out, buf[prevEnd:start]...)
		out = append(out, s.Bytes()...)
		prevEnd = start + n
	}
	out = append(out, buf[prevEnd:]...)
	return out
}

func TestLineScanner_Reconstruct(t *testing.T) {
	const alphabet = "ab \t\r\n"
	r := rand.New(rand.NewSource(1))
	for i := 0; i < 1000; i++ {
		buf := make([]byte, r.Intn(32))
		for j := range buf {
			buf[j] = alphabet[r.Intn(len(alphabet))]
		}
		got := reconstruct(buf)
		if diff := cmp.Diff(string(buf), string(got)); diff != "" {
			t.Fatalf("reconstruct(%q) diff -want +got:\n%s", buf, diff)
		}
		s := NewLineScanner(buf)
		prevEnd := -1
		for s.Scan() {
			start, n := s.Span()
			for _, c := range buf[start : start+n] {
				if isTerm(c) {
					t.Fatalf("line %q of %q contains terminator", s.Bytes(), buf)
				}
			}
			if prevEnd >= 0 && !isTerminator(buf[prevEnd:start]) {
				t.Fatalf("%q: lines separated by %q", buf, buf[prevEnd:start])
			}
			prevEnd = start + n
		}
	}
}

func isTerm(c byte) bool {
	return c == '\r' || c == '\n'
}

func isTerminator(b []byte) bool {
	switch string(b) {
	case "\r", "\n", "\r\n", "\n\r":
		return true
	}
	return false
}
