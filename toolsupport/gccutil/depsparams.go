// Copyright 2023 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package gccutil provides utilities of gcc compatible command lines.
package gccutil

import (
	"errors"
	"flag"
	"fmt"
	"strings"
)

// DepsParams are parameters to generate a deps file, given by
// gcc compatible command line flags.
type DepsParams struct {
	// Help is set by -h or --help.
	Help bool
	// Preprocess is set by -E.
	Preprocess bool
	// MakeRule is set by -M or -MM.
	MakeRule bool

	// Dirs are include dirs given by -I.
	Dirs []string
	// Output is the deps file given by -MF.
	Output string
	// Targets are the rule targets given by -MT.
	Targets []string
	// Inputs are input source files.
	Inputs []string
	// Syntax is the source syntax name given by --syntax.
	Syntax string
}

// ArgError is an error in command line arguments.
// It matches flag.ErrHelp by errors.Is.
type ArgError struct {
	Msg string
}

func (e ArgError) Error() string { return e.Msg }

// Is reports whether target is flag.ErrHelp.
func (e ArgError) Is(target error) bool { return target == flag.ErrHelp }

func argErrorf(format string, args ...any) error {
	return ArgError{Msg: fmt.Sprintf(format, args...)}
}

// Errors returns individual errors in err joined by errors.Join.
func Errors(err error) []error {
	if err == nil {
		return nil
	}
	if j, ok := err.(interface{ Unwrap() []error }); ok {
		return j.Unwrap()
	}
	return []error{err}
}

// options that take a value, either as the next arg or joined.
var valueOptions = []string{"-MF", "-MT", "-I"}

// ParseDepsParams parses args and returns DepsParams.
//
// Every problem in args is reported as ArgError, and all of them are
// returned joined by errors.Join. Argument numbers in messages are
// 1-based. Parsing stops at an option missing its value.
//
// When Help is set, other flags are not validated, and the returned
// error tells if other arguments were ignored.
func ParseDepsParams(args []string) (DepsParams, error) {
	var p DepsParams
	var errs []error
	set := func(opt, value string) {
		switch opt {
		case "-MF":
			p.Output = value
		case "-MT":
			p.Targets = append(p.Targets, value)
		case "-I":
			p.Dirs = append(p.Dirs, value)
		case "--syntax":
			p.Syntax = value
		}
	}
parse:
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch arg {
		case "-h", "--help":
			p.Help = true
			continue
		case "-E":
			p.Preprocess = true
			continue
		case "-M", "-MM":
			p.MakeRule = true
			continue
		case "-MF", "-MT", "-I", "--syntax":
			if i+1 >= len(args) {
				errs = append(errs, argErrorf("Missing parameter for %s (argument #%d).", arg, i+2))
				break parse
			}
			i++
			set(arg, args[i])
			continue
		}
		if v, ok := strings.CutPrefix(arg, "--syntax="); ok {
			set("--syntax", v)
			continue
		}
		if opt, v, ok := joinedOption(arg); ok {
			set(opt, v)
			continue
		}
		if strings.HasPrefix(arg, "-") {
			errs = append(errs, argErrorf("Unknown option '%s' (#%d).", arg, i+1))
			continue
		}
		if len(p.Inputs) > 0 {
			errs = append(errs, argErrorf("Don't know what to do with input file '%s' (#%d).", arg, i+1))
			continue
		}
		p.Inputs = append(p.Inputs, arg)
	}

	if p.Help {
		if len(errs) > 0 || p.Preprocess || p.MakeRule || len(p.Dirs) > 0 || p.Output != "" || len(p.Targets) > 0 || len(p.Inputs) > 0 || p.Syntax != "" {
			return p, ArgError{Msg: "Other arguments were ignored."}
		}
		return p, nil
	}
	if !p.Preprocess || !p.MakeRule {
		errs = append(errs, argErrorf("The only supported mode is when both options -E and -M are specified."))
	}
	if len(errs) > 0 {
		return p, errors.Join(errs...)
	}
	if len(p.Targets) == 0 {
		errs = append(errs, argErrorf("No target name was specified."))
	}
	if p.Output == "" {
		errs = append(errs, argErrorf("No output name was specified."))
	}
	if len(p.Inputs) == 0 {
		errs = append(errs, argErrorf("No source files were specified."))
	}
	return p, errors.Join(errs...)
}

// joinedOption returns the option and its value if arg is an option
// with joined value, e.g. -Idir or -MFout.d.
func joinedOption(arg string) (string, string, bool) {
	for _, opt := range valueOptions {
		if v, ok := strings.CutPrefix(arg, opt); ok && v != "" {
			return opt, v, true
		}
	}
	return "", "", false
}
