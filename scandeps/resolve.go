// Copyright 2023 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package scandeps

import (
	"context"
	"fmt"
	"path/filepath"

	"go.chromium.org/infra/build/aspp/o11y/clog"
)

// resolution is how a reference was resolved.
type resolution int

const (
	// resolvedKnown is a reference to an already registered source.
	resolvedKnown resolution = iota
	// resolvedLocal is found by an absolute path, or relative to
	// the referencing source.
	resolvedLocal
	// resolvedIncludeDir is found in an include dir.
	resolvedIncludeDir
	// resolvedMissing is not found anywhere.
	resolvedMissing
)

func (r resolution) String() string {
	switch r {
	case resolvedKnown:
		return "known"
	case resolvedLocal:
		return "local"
	case resolvedIncludeDir:
		return "include-dir"
	case resolvedMissing:
		return "missing"
	}
	return fmt.Sprintf("resolution(%d)", int(r))
}

type candidate struct {
	real string
	base string
	user string
	scan bool
}

// resolve resolves inc referenced from src, and registers it as
// a new source unless it is already known.
func (s *scanner) resolve(ctx context.Context, from *Source, inc Include) (*Source, resolution, error) {
	var c candidate
	var res resolution
	if filepath.IsAbs(inc.Name) {
		real, err := Canonicalize(inc.Name)
		if err != nil {
			return nil, 0, err
		}
		found := s.fs.isFile(ctx, real)
		c = candidate{
			real: real,
			base: filepath.Dir(real),
			user: inc.Name,
			scan: inc.Scan && found,
		}
		res = resolvedLocal
		if !found {
			res = resolvedMissing
		}
	} else {
		real, err := Canonicalize(joinPath(filepath.Dir(from.Real), inc.Name))
		if err != nil {
			return nil, 0, err
		}
		switch {
		case s.fs.isFile(ctx, real):
			c = candidate{
				real: real,
				base: from.Base,
				user: s.userPath(from, inc.Name),
				scan: inc.Scan,
			}
			res = resolvedLocal
		default:
			ip, dreal, found, err := s.searchIncludeDirs(ctx, inc.Name)
			if err != nil {
				return nil, 0, err
			}
			if found {
				c = candidate{
					real: dreal,
					base: ip.Real,
					user: inc.Name,
					scan: inc.Scan,
				}
				res = resolvedIncludeDir
				break
			}
			// Record where it would be next to the referencing source,
			// so make can notice when it appears.
			c = candidate{
				real: real,
				base: from.Base,
				user: s.userPath(from, inc.Name),
				scan: false,
			}
			res = resolvedMissing
		}
	}
	if src, ok := s.srcs.findReal(c.real); ok {
		s.escalate(ctx, src, c.scan)
		return src, resolvedKnown, nil
	}
	src := s.srcs.add(&Source{
		Real: c.real,
		Base: c.base,
		User: c.user,
		Scan: c.scan,
	})
	return src, res, nil
}

// searchIncludeDirs looks for name in include dirs in order.
func (s *scanner) searchIncludeDirs(ctx context.Context, name string) (IncludePath, string, bool, error) {
	for _, ip := range s.dirs.list {
		real, err := Canonicalize(joinPath(ip.Real, name))
		if err != nil {
			return IncludePath{}, "", false, err
		}
		if s.fs.isFile(ctx, real) {
			return ip, real, true, nil
		}
	}
	return IncludePath{}, "", false, nil
}

// userPath returns the path of name referenced from src as the user
// would write it.
func (s *scanner) userPath(from *Source, name string) string {
	dir := filepath.Dir(from.User)
	switch {
	case filepath.IsAbs(from.User):
		return filepath.Join(dir, name)
	case from.Base != s.execRoot:
		return filepath.Join(from.Base, dir, name)
	case dir == ".":
		return name
	}
	return filepath.Join(dir, name)
}

// escalate marks src as a source to be scanned if scan is true.
// A source that is already processed is not scanned again.
func (s *scanner) escalate(ctx context.Context, src *Source, scan bool) {
	if !scan || src.Scan {
		return
	}
	src.Scan = true
	s.stats.Escalated++
	if src.index <= s.pos {
		clog.Warningf(ctx, "%s was already processed as binary. not scanned for includes", src.User)
	}
}
