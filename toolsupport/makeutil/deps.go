// Copyright 2023 The Chromium Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package makeutil provides utilities for make.
package makeutil

import (
	"bytes"
	"context"
	"io/fs"
	"strings"

	"go.chromium.org/infra/build/aspp/o11y/clog"
)

// Rule is a make rule without recipe.
//
//	<target> ...: <prerequisite> ...
type Rule struct {
	Targets []string
	Prereqs []string
}

// ParseDepsFile parses *.d file in fname on fsys.
func ParseDepsFile(ctx context.Context, fsys fs.FS, fname string) (Rule, error) {
	if fname == "" {
		return Rule{}, nil
	}
	b, err := fs.ReadFile(fsys, fname)
	if err != nil {
		return Rule{}, err
	}
	r := ParseRule(b)
	if clog.V(ctx, 1) {
		clog.Debugf(ctx, "deps %s => %q: %q", fname, r.Targets, r.Prereqs)
	}
	return r, nil
}

// ParseDeps parses deps and returns a list of inputs of the first rule.
func ParseDeps(b []byte) []string {
	return ParseRule(b).Prereqs
}

// ParseRule parses the first rule in b.
//
// Names are separated by spaces. '\'+space is an escaped space
// in a name, and '\'+newline is a space.
// The rule ends at newline that is not escaped.
func ParseRule(b []byte) Rule {
	i := bytes.IndexByte(b, ':')
	if i < 0 {
		return Rule{}
	}
	var r Rule
	var token string
	for s := b[:i]; len(s) > 0; {
		token, s, _ = nextToken(s)
		if token != "" {
			r.Targets = append(r.Targets, token)
		}
	}
	for s := b[i+1:]; len(s) > 0; {
		var eol bool
		token, s, eol = nextToken(s)
		if token != "" {
			r.Prereqs = append(r.Prereqs, token)
		}
		if eol {
			break
		}
	}
	return r
}

// newlineLen returns length of newline at the beginning of s, or 0.
func newlineLen(s []byte) int {
	switch {
	case bytes.HasPrefix(s, []byte("\r\n")):
		return 2
	case len(s) > 0 && s[0] == '\n':
		return 1
	}
	return 0
}

// nextToken returns the next name in s, and the rest of s.
// eol is true when it reaches end of the rule.
func nextToken(s []byte) (token string, rest []byte, eol bool) {
	for len(s) > 0 {
		if n := newlineLen(s); n > 0 {
			return "", s[n:], true
		}
		switch s[0] {
		case ' ', '\t', '\r':
			s = s[1:]
			continue
		}
		if s[0] == '\\' {
			if n := newlineLen(s[1:]); n > 0 {
				s = s[1+n:]
				continue
			}
		}
		break
	}
	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case ' ', '\t', '\r':
			if newlineLen(s[i:]) > 0 {
				// leave newline for the next call to report eol.
				return sb.String(), s[i:], false
			}
			return sb.String(), s[i+1:], false
		case '\n':
			return sb.String(), s[i:], false
		case '\\':
			if n := newlineLen(s[i+1:]); n > 0 {
				return sb.String(), s[i+1+n:], false
			}
			if i+1 < len(s) && s[i+1] == ' ' {
				sb.WriteByte(' ')
				i++
				continue
			}
			sb.WriteByte(c)
		default:
			sb.WriteByte(c)
		}
	}
	return sb.String(), nil, false
}
