// Copyright (c) 2020 The WalletHub Authors. All rights reserved.
// This file is part of go-wallethub. Use of this source code is governed by a
// MIT-style license that can be found in the LICENSE file.

// Package sync contains synchronization primitives that extend the standard
// library's sync package.
package sync // import "wallethub.network/go-wallethub/pkg/sync"

import (
	"context"
	"sync"
)

// Mutex is a mutex that additionally supports non-blocking and context-aware
// locking. The zero value is an unlocked mutex. A Mutex must not be copied
// after first use.
type Mutex struct {
	locked chan struct{} // Modelled as a channel of capacity 1.
	once   sync.Once
}

func (m *Mutex) initOnce() {
	m.once.Do(func() { m.locked = make(chan struct{}, 1) })
}

// Lock blocks until the mutex is acquired.
func (m *Mutex) Lock() {
	m.initOnce()
	m.locked <- struct{}{}
}

// TryLock attempts to acquire the mutex without blocking.
// Returns whether the mutex was acquired.
func (m *Mutex) TryLock() bool {
	m.initOnce()
	select {
	case m.locked <- struct{}{}:
		return true
	default:
		return false
	}
}

// TryLockCtx attempts to acquire the mutex until the context is done.
// Returns whether the mutex was acquired. A done context can never acquire
// the mutex, not even an unlocked one.
func (m *Mutex) TryLockCtx(ctx context.Context) bool {
	m.initOnce()
	select {
	case <-ctx.Done():
		return false
	default:
	}
	select {
	case m.locked <- struct{}{}:
		return true
	case <-ctx.Done():
		return false
	}
}

// Unlock releases the mutex. Panics if the mutex was not locked.
func (m *Mutex) Unlock() {
	m.initOnce()
	select {
	case <-m.locked:
	default:
		panic("unlock of unlocked mutex")
	}
}
