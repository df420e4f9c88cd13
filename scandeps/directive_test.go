// Copyright 2023 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package scandeps

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSyntaxDirective(t *testing.T) {
	for _, tc := range []struct {
		name   string
		syntax Syntax
		line   string
		want   Directive
		wantOK bool
	}{
		{
			name:   "tasm_include",
			syntax: SyntaxTASM,
			line:   `include "a.inc"`,
			want:   Directive{Name: "a.inc", Scan: true},
			wantOK: true,
		},
		{
			name:   "tasm_upper",
			syntax: SyntaxTASM,
			line:   `  INCLUDE "x.asm" ; comment`,
			want:   Directive{Name: "x.asm", Scan: true},
			wantOK: true,
		},
		{
			name:   "tasm_mixed_case_tab",
			syntax: SyntaxTASM,
			line:   "\tInClUdE\t\"dir/x.asm\"",
			want:   Directive{Name: "dir/x.asm", Scan: true},
			wantOK: true,
		},
		{
			name:   "tasm_incbin",
			syntax: SyntaxTASM,
			line:   `incbin "a.bin"`,
		},
		{
			name:   "sjasm_incbin",
			syntax: SyntaxSJASM,
			line:   ` incbin "gfx.bin"`,
			want:   Directive{Name: "gfx.bin", Scan: false},
			wantOK: true,
		},
		{
			name:   "sjasm_include",
			syntax: SyntaxSJASM,
			line:   ` include "a.inc"`,
			want:   Directive{Name: "a.inc", Scan: true},
			wantOK: true,
		},
		{
			name:   "sjasm_no_leading_blank",
			syntax: SyntaxSJASM,
			line:   `incbin "gfx.bin"`,
		},
		{
			name:   "sjasm_include_label",
			syntax: SyntaxSJASM,
			line:   `include "a.inc"`,
		},
		{
			name:   "sjasm_tab",
			syntax: SyntaxSJASM,
			line:   "\tincbin \"gfx.bin\"",
			want:   Directive{Name: "gfx.bin", Scan: false},
			wantOK: true,
		},
		{
			name:   "empty_name",
			syntax: SyntaxTASM,
			line:   `include ""`,
			want:   Directive{Name: "", Scan: true},
			wantOK: true,
		},
		{
			name:   "no_blank_after_keyword",
			syntax: SyntaxTASM,
			line:   `include"a.inc"`,
		},
		{
			name:   "unterminated",
			syntax: SyntaxTASM,
			line:   `include "a.inc`,
		},
		{
			name:   "not_quoted",
			syntax: SyntaxTASM,
			line:   `include a.inc`,
		},
		{
			name:   "keyword_only",
			syntax: SyntaxTASM,
			line:   `include`,
		},
		{
			name:   "keyword_and_blanks",
			syntax: SyntaxTASM,
			line:   `include   `,
		},
		{
			name:   "longer_word",
			syntax: SyntaxTASM,
			line:   `included "a.inc"`,
		},
		{
			name:   "label",
			syntax: SyntaxTASM,
			line:   `start: include "a.inc"`,
		},
		{
			name:   "comment",
			syntax: SyntaxTASM,
			line:   `; include "a.inc"`,
		},
		{
			name:   "empty",
			syntax: SyntaxTASM,
			line:   ``,
		},
		{
			name:   "blank",
			syntax: SyntaxSJASM,
			line:   " \t ",
		},
		{
			name:   "invalid_syntax",
			syntax: Syntax(-1),
			line:   `include "a.inc"`,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := tc.syntax.Directive([]byte(tc.line))
			if ok != tc.wantOK {
				t.Errorf("%s.Directive(%q)=_, %t; want %t", tc.syntax, tc.line, ok, tc.wantOK)
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("%s.Directive(%q) diff -want +got:\n%s", tc.syntax, tc.line, diff)
			}
		})
	}
}

func TestParseSyntax(t *testing.T) {
	for _, tc := range []struct {
		name    string
		want    Syntax
		wantErr error
	}{
		{name: "tasm", want: SyntaxTASM},
		{name: "TASM", want: SyntaxTASM},
		{name: "sjasm", want: SyntaxSJASM},
		{name: "nasm", wantErr: ErrInvalidArgument},
		{name: "", wantErr: ErrInvalidArgument},
	} {
		got, err := ParseSyntax(tc.name)
		if !errors.Is(err, tc.wantErr) {
			t.Errorf("ParseSyntax(%q)=%v, %v; want err %v", tc.name, got, err, tc.wantErr)
			continue
		}
		if err == nil && got != tc.want {
			t.Errorf("ParseSyntax(%q)=%v; want %v", tc.name, got, tc.want)
		}
	}
}

func TestAsmScan(t *testing.T) {
	ctx := context.Background()
	buf := []byte(" include \"a.inc\"\r\n" +
		"; include \"commented.inc\"\r\n" +
		"\r\n" +
		"\tINCBIN \"gfx.bin\" ; graphics\r\n" +
		"ld a,1\r\n" +
		"include \"b.inc\"")

	for _, tc := range []struct {
		syntax Syntax
		want   []Include
	}{
		{
			syntax: SyntaxTASM,
			want: []Include{
				{Name: "a.inc", Line: 1, Scan: true},
				{Name: "b.inc", Line: 6, Scan: true},
			},
		},
		{
			syntax: SyntaxSJASM,
			want: []Include{
				{Name: "a.inc", Line: 1, Scan: true},
				{Name: "gfx.bin", Line: 4, Scan: false},
			},
		},
	} {
		got := AsmScan(ctx, "main.asm", buf, tc.syntax)
		if diff := cmp.Diff(tc.want, got); diff != "" {
			t.Errorf("AsmScan(ctx, %q, buf, %s) diff -want +got:\n%s", "main.asm", tc.syntax, diff)
		}
	}
}
