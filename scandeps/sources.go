// Copyright 2023 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package scandeps

// Include is a file reference found in a source.
type Include struct {
	// Name is a path as written in the directive.
	Name string
	// Line is 1-based line number of the directive.
	Line int
	// Scan is true for `include`, false for `incbin`.
	Scan bool
}

// Source is a file that appears in the dependency list.
type Source struct {
	// Real is the canonical absolute path, which identifies the source.
	Real string
	// Base is the directory that User is relative to.
	Base string
	// User is the path to report, as the user would write it.
	User string
	// Scan is true if the source is scanned for directives.
	Scan bool
	// Includes are the directives found in the source.
	Includes []Include

	// index in the sources list.
	index int
}

// sources is the ordered list of sources of a scan.
// Sources are appended in discovery order, and are never removed
// nor reordered.
type sources struct {
	list   []*Source
	byReal map[string]*Source
	byUser map[string]*Source
}

func newSources() *sources {
	return &sources{
		byReal: make(map[string]*Source),
		byUser: make(map[string]*Source),
	}
}

// add appends src to the list.
// The caller must check src.Real is not registered yet.
func (s *sources) add(src *Source) *Source {
	src.index = len(s.list)
	s.list = append(s.list, src)
	s.byReal[src.Real] = src
	if _, ok := s.byUser[src.User]; !ok {
		s.byUser[src.User] = src
	}
	return src
}

func (s *sources) findReal(real string) (*Source, bool) {
	src, ok := s.byReal[real]
	return src, ok
}

func (s *sources) findUser(user string) (*Source, bool) {
	src, ok := s.byUser[user]
	return src, ok
}

func (s *sources) len() int {
	return len(s.list)
}

func (s *sources) at(i int) *Source {
	return s.list[i]
}

// IncludePath is an include search directory.
type IncludePath struct {
	// Real is the canonical absolute path of the directory.
	Real string
	// Base is the directory that User is relative to, or empty if
	// User is absolute.
	Base string
	// User is the path as given by the user.
	User string
}

// includePaths is the ordered list of include dirs.
type includePaths struct {
	list   []IncludePath
	byReal map[string]int
	byUser map[string]int
}

func newIncludePaths() *includePaths {
	return &includePaths{
		byReal: make(map[string]int),
		byUser: make(map[string]int),
	}
}

func (p *includePaths) add(ip IncludePath) {
	p.byReal[ip.Real] = len(p.list)
	if _, ok := p.byUser[ip.User]; !ok {
		p.byUser[ip.User] = len(p.list)
	}
	p.list = append(p.list, ip)
}

func (p *includePaths) hasReal(real string) bool {
	_, ok := p.byReal[real]
	return ok
}

func (p *includePaths) hasUser(user string) bool {
	_, ok := p.byUser[user]
	return ok
}
