// Copyright (c) 2020 The WalletHub Authors. All rights reserved.
// This file is part of go-wallethub. Use of this source code is governed by a
// MIT-style license that can be found in the LICENSE file.

package adapter

import (
	"github.com/pkg/errors"
)

// Kind distinguishes the two classes of adapter failures.
type Kind uint8

const (
	// KindInitialization marks failures of Init and SetChainConfig.
	KindInitialization Kind = iota
	// KindLogin marks failures of Connect and connection guards.
	KindLogin
)

func (k Kind) String() string {
	switch k {
	case KindInitialization:
		return "initialization"
	case KindLogin:
		return "login"
	default:
		return "unknown"
	}
}

// Error is a typed adapter failure carrying the failure kind next to the
// human-readable message.
type Error struct {
	kind Kind
	msg  string
}

var _ error = (*Error)(nil)

// NewError creates a new adapter error of the given kind.
func NewError(kind Kind, msg string) *Error {
	return &Error{kind: kind, msg: msg}
}

// Error returns the error's message.
func (e *Error) Error() string { return e.msg }

// Kind returns the error's failure kind.
func (e *Error) Kind() Kind { return e.kind }

// IsInitializationError reports whether the error's cause is an adapter
// initialization error.
func IsInitializationError(err error) bool {
	return isKind(err, KindInitialization)
}

// IsLoginError reports whether the error's cause is an adapter login error.
func IsLoginError(err error) bool {
	return isKind(err, KindLogin)
}

func isKind(err error, kind Kind) bool {
	e, ok := errors.Cause(err).(*Error)
	return ok && e.kind == kind
}
