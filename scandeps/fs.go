// Copyright 2023 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package scandeps

import (
	"context"
	"io/fs"

	lru "github.com/hashicorp/golang-lru/v2"

	"go.chromium.org/infra/build/aspp/o11y/clog"
)

// FS is a filesystem accessed by ScanDeps.
type FS interface {
	// ReadFile reads the whole contents of the named file.
	ReadFile(ctx context.Context, name string) ([]byte, error)
	// Stat returns a FileInfo of the named file, following symlinks.
	Stat(ctx context.Context, name string) (fs.FileInfo, error)
}

type fileKind int

const (
	kindMissing fileKind = iota
	kindFile
	kindDir
	kindOther
)

// defaultStatCacheSize is the number of stat results to remember.
const defaultStatCacheSize = 4096

// filesystem is a mirror of FS to optimize for scandeps access pattern.
// The same candidate path is probed many times, for each include of
// the same name and for each include dir, so it caches stat results,
// including for missing files.
type filesystem struct {
	fs    FS
	stats *lru.Cache[string, fileKind]
}

func newFilesystem(fsys FS, size int) *filesystem {
	if size <= 0 {
		size = defaultStatCacheSize
	}
	stats, err := lru.New[string, fileKind](size)
	if err != nil {
		// lru.New fails only for non-positive size.
		panic(err)
	}
	return &filesystem{
		fs:    fsys,
		stats: stats,
	}
}

func (fsys *filesystem) kind(ctx context.Context, name string) fileKind {
	if k, ok := fsys.stats.Get(name); ok {
		return k
	}
	k := kindMissing
	fi, err := fsys.fs.Stat(ctx, name)
	switch {
	case err != nil:
		if clog.V(ctx, 1) {
			clog.Debugf(ctx, "stat %s: %v", name, err)
		}
	case fi.Mode().IsRegular():
		k = kindFile
	case fi.IsDir():
		k = kindDir
	default:
		k = kindOther
	}
	fsys.stats.Add(name, k)
	return k
}

func (fsys *filesystem) isFile(ctx context.Context, name string) bool {
	return fsys.kind(ctx, name) == kindFile
}

func (fsys *filesystem) isDir(ctx context.Context, name string) bool {
	return fsys.kind(ctx, name) == kindDir
}

func (fsys *filesystem) readFile(ctx context.Context, name string) ([]byte, error) {
	return fsys.fs.ReadFile(ctx, name)
}
