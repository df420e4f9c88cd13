// Copyright 2023 The Chromium Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package main

import (
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"go.chromium.org/infra/build/aspp/ui"
)

const (
	// syntaxEnv sets default source syntax. --syntax takes precedence.
	syntaxEnv = "ASPP_SYNTAX"

	// logLevelEnv sets log level.
	logLevelEnv = "ASPP_LOG_LEVEL"
)

type config struct {
	syntax   string
	logLevel log.Level
}

// loadConfig loads config from environment variables.
// Wrong values are reported and ignored.
func loadConfig(u ui.UI) config {
	cfg := config{
		syntax:   strings.TrimSpace(os.Getenv(syntaxEnv)),
		logLevel: log.WarnLevel,
	}
	if v := strings.TrimSpace(os.Getenv(logLevelEnv)); v != "" {
		level, err := log.ParseLevel(v)
		if err != nil {
			u.Warningf("wrong %s=%q: %v. ignored", logLevelEnv, v, err)
		} else {
			cfg.logLevel = level
		}
	}
	return cfg
}
