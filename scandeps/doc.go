// Copyright 2023 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package scandeps provides forged assembler dependency scanner.
//
// It scans assembler sources for the following forms of directives
//
//	include "foo.inc"
//	incbin "foo.bin"
//
// Keywords are case insensitive, and the text after the closing quote is
// ignored. Which keywords are recognized depends on the Syntax.
// Files included by `include` are scanned recursively, files included by
// `incbin` are recorded as dependencies but never scanned.
//
// It doesn't process conditional assembly nor macros, so every directive
// in a source is taken as a dependency.
//
// A referenced file is looked up in the directory of the referencing
// source first, then in include dirs in the order they are given.
// A file that can't be found anywhere is still recorded as a dependency
// as it would be written next to the referencing source, so that make
// notices when it appears.
package scandeps
