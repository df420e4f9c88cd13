// Copyright 2023 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package scandeps

import (
	"context"
	"time"

	"go.chromium.org/infra/build/aspp/o11y/clog"
)

// AsmScan scans buf for file reference directives of the syntax.
// fname is used for logging only.
func AsmScan(ctx context.Context, fname string, buf []byte, syntax Syntax) []Include {
	started := time.Now()
	var incs []Include
	s := NewLineScanner(buf)
	for s.Scan() {
		d, ok := syntax.Directive(s.Bytes())
		if !ok {
			continue
		}
		if clog.V(ctx, 1) {
			clog.Debugf(ctx, "%s:%d: directive %q scan=%t", fname, s.Line(), d.Name, d.Scan)
		}
		incs = append(incs, Include{
			Name: d.Name,
			Line: s.Line(),
			Scan: d.Scan,
		})
	}
	if dur := time.Since(started); dur > 1*time.Second {
		clog.Infof(ctx, "slow asmScan %s %s", fname, dur)
	}
	return incs
}
