// Copyright 2023 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package scandeps

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"time"

	"go.chromium.org/infra/build/aspp/o11y/clog"
)

// ScanDeps is a simple assembler dependency scanner.
type ScanDeps struct {
	fs *filesystem
}

// New creates new ScanDeps for the filesystem.
func New(fsys FS) *ScanDeps {
	return &ScanDeps{
		fs: newFilesystem(fsys, defaultStatCacheSize),
	}
}

// Request is a request to scan.
type Request struct {
	// Sources are input source files, relative to execRoot or absolute.
	Sources []string

	// Dirs are include dirs, relative to execRoot or absolute.
	// If empty, execRoot is used.
	Dirs []string

	// Syntax is the assembler syntax of the sources.
	Syntax Syntax
}

// scanStats are counts of a scan.
type scanStats struct {
	Sources    int
	Scanned    int
	Directives int
	Missing    int
	Escalated  int
}

// scanner holds state of a scan.
type scanner struct {
	fs       *filesystem
	execRoot string
	syntax   Syntax

	dirs *includePaths
	srcs *sources

	// pos is the index of the source being processed.
	pos int

	stats scanStats
}

// Scan scans requested sources and returns the dependencies in
// discovery order. The sources come first, followed by files referenced
// by them, transitively. Each file appears once, identified by its
// canonical path, and is reported as the user would write it.
//
// Errors in Sources or Dirs are reported together, and nothing is scanned.
// A referenced file that can't be found is not an error.
func (s *ScanDeps) Scan(ctx context.Context, execRoot string, req Request) ([]string, error) {
	started := time.Now()
	if !req.Syntax.valid() {
		return nil, fmt.Errorf("syntax %s: %w", req.Syntax, ErrInvalidArgument)
	}
	root, err := Canonicalize(execRoot)
	if err != nil {
		return nil, fmt.Errorf("exec root %q: %w", execRoot, errors.Join(ErrInvalidArgument, err))
	}
	sc := &scanner{
		fs:       s.fs,
		execRoot: root,
		syntax:   req.Syntax,
		dirs:     newIncludePaths(),
		srcs:     newSources(),
	}
	dirs := req.Dirs
	if len(dirs) == 0 {
		dirs = []string{"."}
	}
	var errs []error
	for _, dir := range dirs {
		err := sc.addIncludeDir(ctx, dir)
		if err != nil {
			errs = append(errs, err)
		}
	}
	for _, src := range req.Sources {
		err := sc.addInput(ctx, src)
		if err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	if sc.srcs.len() == 0 {
		return nil, fmt.Errorf("no sources: %w", ErrInvalidArgument)
	}

	var deps []string
	for sc.pos = 0; sc.pos < sc.srcs.len(); sc.pos++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		src := sc.srcs.at(sc.pos)
		if src.Scan {
			err := sc.scanSource(ctx, src)
			if err != nil {
				return nil, err
			}
		}
		deps = append(deps, src.User)
	}
	sc.stats.Sources = sc.srcs.len()
	if clog.V(ctx, 1) {
		clog.Debugf(ctx, "scandeps %d sources scanned=%d directives=%d missing=%d escalated=%d in %s",
			sc.stats.Sources, sc.stats.Scanned, sc.stats.Directives, sc.stats.Missing, sc.stats.Escalated,
			time.Since(started))
	}
	return deps, nil
}

func (s *scanner) addIncludeDir(ctx context.Context, dir string) error {
	ip := IncludePath{User: dir}
	if filepath.IsAbs(dir) {
		real, err := Canonicalize(dir)
		if err != nil {
			return fmt.Errorf("include dir %q: %w", dir, err)
		}
		ip.Real = real
	} else {
		if s.dirs.hasUser(dir) {
			return nil
		}
		real, err := Canonicalize(joinPath(s.execRoot, dir))
		if err != nil {
			return fmt.Errorf("include dir %q: %w", dir, err)
		}
		ip.Real = real
		ip.Base = s.execRoot
	}
	if s.dirs.hasReal(ip.Real) {
		return nil
	}
	if !s.fs.isDir(ctx, ip.Real) {
		return fmt.Errorf("include dir %q was not found: %w", dir, fs.ErrNotExist)
	}
	s.dirs.add(ip)
	return nil
}

func (s *scanner) addInput(ctx context.Context, name string) error {
	src := &Source{
		User: name,
		Scan: true,
	}
	if filepath.IsAbs(name) {
		real, err := Canonicalize(name)
		if err != nil {
			return fmt.Errorf("input source file %q: %w", name, err)
		}
		src.Real = real
		src.Base = filepath.Dir(real)
	} else {
		if _, ok := s.srcs.findUser(name); ok {
			return nil
		}
		real, err := Canonicalize(joinPath(s.execRoot, name))
		if err != nil {
			return fmt.Errorf("input source file %q: %w", name, err)
		}
		src.Real = real
		src.Base = s.execRoot
	}
	if _, ok := s.srcs.findReal(src.Real); ok {
		return nil
	}
	if !s.fs.isFile(ctx, src.Real) {
		return fmt.Errorf("input source file %q was not found: %w", name, fs.ErrNotExist)
	}
	s.srcs.add(src)
	return nil
}

// scanSource scans src and registers files referenced by it.
func (s *scanner) scanSource(ctx context.Context, src *Source) error {
	buf, err := s.fs.readFile(ctx, src.Real)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", src.User, err)
	}
	s.stats.Scanned++
	src.Includes = AsmScan(ctx, src.User, buf, s.syntax)
	for _, inc := range src.Includes {
		s.stats.Directives++
		if inc.Name == "" {
			clog.Warningf(ctx, "%s:%d: empty file name. ignored", src.User, inc.Line)
			continue
		}
		dep, res, err := s.resolve(ctx, src, inc)
		if err != nil {
			return fmt.Errorf("%s:%d: %q: %w", src.User, inc.Line, inc.Name, err)
		}
		if res == resolvedMissing {
			s.stats.Missing++
			clog.Warningf(ctx, "%s:%d: %q was not found. assumed %s", src.User, inc.Line, inc.Name, dep.User)
		}
		if clog.V(ctx, 1) {
			clog.Debugf(ctx, "%s:%d: %q -> %s (%s)", src.User, inc.Line, inc.Name, dep.Real, res)
		}
	}
	return nil
}
