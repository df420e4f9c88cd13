// Copyright 2023 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package scandeps

import (
	"bytes"
	"fmt"
	"strings"
)

// Syntax is an assembler dialect.
type Syntax int

const (
	// SyntaxTASM recognizes `include`.
	SyntaxTASM Syntax = iota
	// SyntaxSJASM recognizes `include` and `incbin`.
	SyntaxSJASM

	numSyntaxes
)

var syntaxNames = [numSyntaxes]string{
	SyntaxTASM:  "tasm",
	SyntaxSJASM: "sjasm",
}

func (s Syntax) String() string {
	if !s.valid() {
		return fmt.Sprintf("syntax(%d)", int(s))
	}
	return syntaxNames[s]
}

func (s Syntax) valid() bool {
	return s >= 0 && s < numSyntaxes
}

// Syntaxes returns names of known syntaxes.
func Syntaxes() []string {
	return syntaxNames[:]
}

// ParseSyntax returns the syntax for name.
// name is case insensitive.
func ParseSyntax(name string) (Syntax, error) {
	for i, n := range syntaxNames {
		if strings.EqualFold(n, name) {
			return Syntax(i), nil
		}
	}
	return 0, fmt.Errorf("unknown syntax %q: %w", name, ErrInvalidArgument)
}

type keyword struct {
	name string
	scan bool
}

// leadingBlank reports whether the syntax needs a blank before a keyword.
// sjasm takes a word at column 0 as a label.
var leadingBlank = [numSyntaxes]bool{
	SyntaxSJASM: true,
}

var keywords = [numSyntaxes][]keyword{
	SyntaxTASM: {
		{name: "include", scan: true},
	},
	SyntaxSJASM: {
		{name: "include", scan: true},
		{name: "incbin", scan: false},
	},
}

// Directive is a file reference directive in a line.
type Directive struct {
	// Name is a path as written between quotes.
	Name string
	// Scan is true if the referenced file is an assembler source
	// to be scanned too.
	Scan bool
}

// Directive extracts a file reference directive from line.
// It returns false if line doesn't have any directive known to the syntax.
//
// The accepted form is blanks, a keyword, one or more blanks,
// and a double-quoted path. The rest of the line is ignored.
// Leading blanks are optional for tasm, and required for sjasm.
func (s Syntax) Directive(line []byte) (Directive, bool) {
	if !s.valid() {
		return Directive{}, false
	}
	i := skipBlanks(line, 0)
	if i == 0 && leadingBlank[s] {
		return Directive{}, false
	}
	j := skipIdent(line, i)
	if j == i || j == len(line) {
		return Directive{}, false
	}
	kw, ok := lookupKeyword(keywords[s], line[i:j])
	if !ok {
		return Directive{}, false
	}
	k := skipBlanks(line, j)
	if k == j || k == len(line) || line[k] != '"' {
		return Directive{}, false
	}
	k++
	n := bytes.IndexByte(line[k:], '"')
	if n < 0 {
		return Directive{}, false
	}
	return Directive{
		Name: string(line[k : k+n]),
		Scan: kw.scan,
	}, true
}

func lookupKeyword(kws []keyword, word []byte) (keyword, bool) {
	for _, kw := range kws {
		if len(kw.name) == len(word) && strings.EqualFold(kw.name, string(word)) {
			return kw, true
		}
	}
	return keyword{}, false
}

func isBlank(c byte) bool {
	return c == ' ' || c == '\t'
}

func skipBlanks(line []byte, i int) int {
	for i < len(line) && isBlank(line[i]) {
		i++
	}
	return i
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentChar(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}

// skipIdent returns the end of identifier starting at i,
// or i if there is no identifier at i.
func skipIdent(line []byte, i int) int {
	if i >= len(line) || !isIdentStart(line[i]) {
		return i
	}
	i++
	for i < len(line) && isIdentChar(line[i]) {
		i++
	}
	return i
}
