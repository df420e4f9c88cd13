// Copyright 2023 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package scandeps

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

var (
	// ErrInvalidPath is returned for a path that can't be canonicalized,
	// e.g. a relative path or a path that goes above the root.
	ErrInvalidPath = errors.New("invalid path")

	// ErrInvalidArgument is returned for an invalid request.
	ErrInvalidArgument = errors.New("invalid argument")
)

// Canonicalize returns the canonical form of the absolute path p.
//
// It uses the platform separator, collapses runs of separators,
// removes "." segments and resolves ".." segments lexically.
// Symlinks are not resolved. A trailing separator is kept only if
// p ends with a separator. It returns ErrInvalidPath if p is not
// absolute, or if ".." goes above the root.
func Canonicalize(p string) (string, error) {
	vol := filepath.VolumeName(p)
	return canonicalize(vol, p[len(vol):], filepath.Separator)
}

func isPathSeparator(r rune) bool {
	return r < utf8.RuneSelf && os.IsPathSeparator(uint8(r))
}

func canonicalize(vol, p string, sep byte) (string, error) {
	if p == "" || !os.IsPathSeparator(p[0]) {
		return "", fmt.Errorf("not absolute %q: %w", vol+p, ErrInvalidPath)
	}
	trailing := os.IsPathSeparator(p[len(p)-1])
	var elems []string
	for _, elem := range strings.FieldsFunc(p, isPathSeparator) {
		switch elem {
		case ".":
		case "..":
			if len(elems) == 0 {
				return "", fmt.Errorf("above root %q: %w", vol+p, ErrInvalidPath)
			}
			elems = elems[:len(elems)-1]
		default:
			elems = append(elems, elem)
		}
	}
	var sb strings.Builder
	sb.Grow(len(vol) + len(p))
	sb.WriteString(vol)
	sb.WriteByte(sep)
	for i, elem := range elems {
		if i > 0 {
			sb.WriteByte(sep)
		}
		sb.WriteString(elem)
	}
	if trailing && len(elems) > 0 {
		sb.WriteByte(sep)
	}
	return sb.String(), nil
}

// joinPath joins dir and name without cleaning,
// so that ".." in name is checked by Canonicalize.
func joinPath(dir, name string) string {
	if dir == "" {
		return name
	}
	if os.IsPathSeparator(dir[len(dir)-1]) {
		return dir + name
	}
	return dir + string(filepath.Separator) + name
}
