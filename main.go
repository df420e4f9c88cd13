// Copyright 2023 The Chromium Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Aspp generates make dependency rules for assembler sources.
//
// It takes gcc compatible flags, so that it can be used in place of
// `gcc -E -M` for assembler sources in makefiles.
//
//	aspp -E -M -I inc -MT out.o -MF out.d main.asm
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"go.chromium.org/luci/common/system/signals"

	"go.chromium.org/infra/build/aspp/o11y/clog"
	"go.chromium.org/infra/build/aspp/osfs"
	"go.chromium.org/infra/build/aspp/scandeps"
	"go.chromium.org/infra/build/aspp/toolsupport/gccutil"
	"go.chromium.org/infra/build/aspp/toolsupport/makeutil"
	"go.chromium.org/infra/build/aspp/ui"
)

const (
	programName        = "aspp"
	programVersion     = "0.1"
	programDescription = "Simple assembler source file preprocessor."

	helpHint = "Use '-h' or '--help' to get help."
)

func main() {
	os.Exit(asppMain(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

// interruptContext returns a context canceled on interrupt.
// Call stop to release it and to stop watching interrupts.
func interruptContext(ctx context.Context) (_ context.Context, stop func()) {
	ctx, cancel := context.WithCancel(ctx)
	unhandle := signals.HandleInterrupt(cancel)
	return ctx, func() {
		unhandle()
		cancel()
	}
}

// asppMain runs aspp with args, and returns exit code.
func asppMain(ctx context.Context, args []string, stdout, stderr io.Writer) (code int) {
	ctx, stop := interruptContext(ctx)
	defer stop()

	u := ui.New(stderr)
	cfg := loadConfig(u)
	logger := log.NewWithOptions(stderr, log.Options{
		Level:           cfg.logLevel,
		Prefix:          programName,
		ReportTimestamp: !ui.IsTerminal(u),
	})
	ctx = clog.NewContext(ctx, clog.New(logger))

	// Print a stack trace when a panic occurs.
	defer func() {
		if r := recover(); r != nil {
			const size = 64 << 10
			buf := make([]byte, size)
			buf = buf[:runtime.Stack(buf, false)]
			clog.Errorf(ctx, "panic: %v\n%s", r, buf)
			code = 1
		}
	}()

	if len(args) == 0 {
		u.Errorf("No parameters. %s", helpHint)
		return 1
	}

	if clog.V(ctx, 1) {
		buildinfo, ok := debug.ReadBuildInfo()
		if ok {
			clog.Debugf(ctx, "main module: %s %s", moduleInfo(&buildinfo.Main), vcsInfo(buildinfo))
		}
	}

	fsys := osfs.New("fs")
	cwd, err := fsys.Getwd(ctx)
	if err != nil {
		u.Errorf("Failed to get current directory: %v", err)
		return 1
	}

	params, err := gccutil.ParseDepsParams(args)
	if params.Help {
		showTitle(stdout)
		for _, e := range gccutil.Errors(err) {
			u.Warningf("%v", e)
		}
		showHelp(stdout)
		return 0
	}
	errs := gccutil.Errors(err)
	syntaxName := params.Syntax
	if syntaxName == "" {
		syntaxName = cfg.syntax
	}
	syntax := scandeps.SyntaxTASM
	if syntaxName != "" {
		syntax, err = scandeps.ParseSyntax(syntaxName)
		if err != nil {
			errs = append(errs, gccutil.ArgError{Msg: fmt.Sprintf("Unknown syntax '%s'.", syntaxName)})
		}
	}
	if len(errs) > 0 {
		reportErrors(u, errs)
		return 1
	}

	ctx = clog.NewSpan(ctx, programName, uuid.NewString(), map[string]string{
		"syntax": syntax.String(),
		"input":  params.Inputs[0],
	})
	err = run(ctx, fsys, cwd, params, syntax)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			u.Errorf("Interrupted.")
			return 1
		}
		reportErrors(u, gccutil.Errors(err))
		return 1
	}
	return 0
}

// run scans sources and writes the deps file.
func run(ctx context.Context, fsys *osfs.OSFS, cwd string, params gccutil.DepsParams, syntax scandeps.Syntax) error {
	s := scandeps.New(fsys)
	deps, err := s.Scan(ctx, cwd, scandeps.Request{
		Sources: params.Inputs,
		Dirs:    params.Dirs,
		Syntax:  syntax,
	})
	if err != nil {
		return err
	}
	updated, err := makeutil.WriteDepsFile(ctx, fsys, params.Output, makeutil.Rule{
		Targets: params.Targets,
		Prereqs: deps,
	})
	if err != nil {
		return err
	}
	if clog.V(ctx, 1) {
		clog.Debugf(ctx, "%s: %d prerequisites, updated=%t. io %s", params.Output, len(deps), updated, fsys.Stats())
	}
	return nil
}

func reportErrors(u ui.UI, errs []error) {
	for _, err := range errs {
		u.Errorf("%v", err)
	}
	u.Infof("Errors: %d. Stopped.", len(errs))
}

func showTitle(w io.Writer) {
	fmt.Fprintf(w, "%s (version %s) - %s\n", programName, programVersion, programDescription)
}

func showHelp(w io.Writer) {
	fmt.Fprintf(w, `
Usage:
    %s [options] [filename ...] [options]

Options (GCC-compatible):
-h, --help      show this help and exit
-E              preprocess
-I <path>       include directory
-M[M]           output autodepend make rule
-MF <file>      autodepend output name
-MT <target>    autodepend target name (can be specified multiple times)

Other options:
--syntax <name> source syntax: %s (default: %s)

Environment variables:
%-15s default source syntax
%-15s log level: debug, info, warn, error (default: warn)
`, programName, strings.Join(scandeps.Syntaxes(), ", "), scandeps.SyntaxTASM, syntaxEnv, logLevelEnv)
}

func moduleInfo(m *debug.Module) string {
	if m == nil {
		return "<nil>"
	}
	return fmt.Sprintf("path:%s version:%s sum:%s replace:%s", m.Path, m.Version, m.Sum, moduleInfo(m.Replace))
}

func vcsInfo(buildinfo *debug.BuildInfo) string {
	m := make(map[string]string)
	for _, bs := range buildinfo.Settings {
		if strings.HasPrefix(bs.Key, "vcs.") {
			m[bs.Key] = bs.Value
		}
	}
	return fmt.Sprintf("vcs[revision=%s time=%s modified=%s]", m["vcs.revision"], m["vcs.time"], m["vcs.modified"])
}
