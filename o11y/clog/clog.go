// Copyright 2023 The Chromium Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package clog provides context aware logging.
// It can store trace, spandID, arbitrary labels to each context.
// The main use case is to add the scan run context to each log entry automatically.
package clog

import (
	"context"
	"fmt"
	"maps"
	"slices"

	"github.com/charmbracelet/log"
)

type contextKeyType int

var contextKey contextKeyType

// New creates a new Logger that writes entries with l.
func New(l *log.Logger) *Logger {
	return &Logger{l: l}
}

// NewContext sets the given logger to the context.
func NewContext(ctx context.Context, logger *Logger) context.Context {
	return context.WithValue(ctx, contextKey, logger)
}

// NewSpan sets a new logger.Span with the given labels to the context.
func NewSpan(ctx context.Context, trace, spanID string, labels map[string]string) context.Context {
	return NewContext(ctx, FromContext(ctx).Span(trace, spanID, labels))
}

// FromContext returns a logger in the context.
// If it's not set, it returns a logger that uses log.Default().
func FromContext(ctx context.Context) *Logger {
	logger, ok := ctx.Value(contextKey).(*Logger)
	if !ok {
		return New(log.Default())
	}
	return logger
}

// Logger holds the trace, spanID, arbitrary labels of the context.
type Logger struct {
	l *log.Logger

	trace  string
	spanID string
	labels map[string]string
}

// Span returns a sub logger for the trace span.
// Every entry of the sub logger has trace, span and labels as key values.
func (l *Logger) Span(trace, spanID string, labels map[string]string) *Logger {
	kvs := []any{"trace", trace, "span", spanID}
	for _, k := range slices.Sorted(maps.Keys(labels)) {
		kvs = append(kvs, k, labels[k])
	}
	return &Logger{
		l:      l.l.With(kvs...),
		trace:  trace,
		spanID: spanID,
		labels: labels,
	}
}

// Trace returns trace of the logger.
func (l *Logger) Trace() string { return l.trace }

// SpanID returns span id of the logger.
func (l *Logger) SpanID() string { return l.spanID }

// Label returns label value of the key.
func (l *Logger) Label(key string) string { return l.labels[key] }

// V reports whether verbose logging at the level is enabled.
// Level 0 is info, and levels above 0 are debug.
func (l *Logger) V(level int) bool {
	if level <= 0 {
		return l.l.GetLevel() <= log.InfoLevel
	}
	return l.l.GetLevel() <= log.DebugLevel
}

// Debugf logs at debug log level in the manner of fmt.Printf.
func (l *Logger) Debugf(format string, args ...any) {
	l.l.Helper()
	l.l.Debug(fmt.Sprintf(format, args...))
}

// Infof logs at info log level in the manner of fmt.Printf.
func (l *Logger) Infof(format string, args ...any) {
	l.l.Helper()
	l.l.Info(fmt.Sprintf(format, args...))
}

// Warningf logs at warning log level in the manner of fmt.Printf.
func (l *Logger) Warningf(format string, args ...any) {
	l.l.Helper()
	l.l.Warn(fmt.Sprintf(format, args...))
}

// Errorf logs at error log level in the manner of fmt.Printf.
func (l *Logger) Errorf(format string, args ...any) {
	l.l.Helper()
	l.l.Error(fmt.Sprintf(format, args...))
}

// V reports whether verbose logging at the level is enabled for the logger in the context.
func V(ctx context.Context, level int) bool {
	return FromContext(ctx).V(level)
}

// Debugf logs at debug log level in the manner of fmt.Printf.
func Debugf(ctx context.Context, format string, args ...any) {
	logger := FromContext(ctx)
	logger.l.Helper()
	logger.Debugf(format, args...)
}

// Infof logs at info log level in the manner of fmt.Printf.
func Infof(ctx context.Context, format string, args ...any) {
	logger := FromContext(ctx)
	logger.l.Helper()
	logger.Infof(format, args...)
}

// Warningf logs at warning log level in the manner of fmt.Printf.
func Warningf(ctx context.Context, format string, args ...any) {
	logger := FromContext(ctx)
	logger.l.Helper()
	logger.Warningf(format, args...)
}

// Errorf logs at error log level in the manner of fmt.Printf.
func Errorf(ctx context.Context, format string, args ...any) {
	logger := FromContext(ctx)
	logger.l.Helper()
	logger.Errorf(format, args...)
}
