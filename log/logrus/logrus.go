// Copyright (c) 2020 The WalletHub Authors. All rights reserved.
// This file is part of go-wallethub. Use of this source code is governed by a
// MIT-style license that can be found in the LICENSE file.

// Package logrus bridges logrus loggers to the go-wallethub logging
// interface.
package logrus // import "wallethub.network/go-wallethub/log/logrus"

import (
	"github.com/sirupsen/logrus"

	"wallethub.network/go-wallethub/log"
)

// Logger wraps a logrus entry so that it satisfies the framework's Logger
// interface.
type Logger struct {
	*logrus.Entry
}

var _ log.Logger = (*Logger)(nil)

// FromLogrus creates a framework logger from a logrus logger.
func FromLogrus(l *logrus.Logger) *Logger {
	return &Logger{logrus.NewEntry(l)}
}

// WithField returns a logger with the given field set.
func (l *Logger) WithField(key string, value interface{}) log.Logger {
	return &Logger{l.Entry.WithField(key, value)}
}

// WithFields returns a logger with the given fields set.
func (l *Logger) WithFields(fields log.Fields) log.Logger {
	return &Logger{l.Entry.WithFields(logrus.Fields(fields))}
}

// WithError returns a logger with the given error field set.
func (l *Logger) WithError(err error) log.Logger {
	return &Logger{l.Entry.WithError(err)}
}
