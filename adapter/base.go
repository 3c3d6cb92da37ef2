// Copyright (c) 2020 The WalletHub Authors. All rights reserved.
// This file is part of go-wallethub. Use of this source code is governed by a
// MIT-style license that can be found in the LICENSE file.

package adapter

import (
	"context"
	"sync"

	"github.com/pkg/errors"

	"wallethub.network/go-wallethub/chain"
	"wallethub.network/go-wallethub/events"
	"wallethub.network/go-wallethub/log"
	pkgsync "wallethub.network/go-wallethub/pkg/sync"
)

// Base is the embeddable state holder behind adapter implementations. It
// owns the lifecycle status, the chain configuration, the captured user
// profile and the event emitter, and it enforces the guard protocol and the
// transition table. Concrete adapters embed *Base and implement the
// lifecycle operations on top of its helpers.
//
// All methods are thread-safe. The status is only ever mutated through the
// transition table: BeginConnect moves to Connecting atomically with the
// connection guard check, so of two racing Connect calls exactly one
// proceeds and the other observes the "Already pending connection"
// rejection. Init and Disconnect are serialized through Acquire/Release.
type Base struct {
	name      string
	namespace chain.Namespace
	typ       Type

	busy pkgsync.Mutex // Serializes Init and Disconnect.

	mutex  sync.RWMutex // Protects status, conf and user.
	status Status
	conf   *chain.Config
	user   UserInfo

	emitter *events.Emitter
	log     log.Logger
}

// NewBase creates the state holder for an adapter with the given identity.
// The adapter starts out NotReady.
func NewBase(name string, namespace chain.Namespace, typ Type) *Base {
	return &Base{
		name:      name,
		namespace: namespace,
		typ:       typ,
		emitter:   events.NewEmitter(),
		log:       log.WithField("adapter", name),
	}
}

// Name returns the adapter's stable unique key.
func (b *Base) Name() string { return b.name }

// Namespace returns the chain namespace family the adapter supports.
func (b *Base) Namespace() chain.Namespace { return b.namespace }

// Type tells whether the adapter is external or in-app.
func (b *Base) Type() Type { return b.typ }

// Status returns the current lifecycle status.
func (b *Base) Status() Status {
	b.mutex.RLock()
	defer b.mutex.RUnlock()
	return b.status
}

// Log returns the adapter's logger.
func (b *Base) Log() log.Logger { return b.log }

// Subscribe subscribes to the given lifecycle events; without arguments it
// subscribes to all of them.
func (b *Base) Subscribe(evs ...events.Event) *events.Receiver {
	if len(evs) == 0 {
		evs = AllEvents
	}
	return b.emitter.Subscribe(evs...)
}

// Acquire serializes a lifecycle operation. It blocks until any in-flight
// serialized operation finishes, or fails when the context is done first.
// Every successful Acquire must be paired with a Release.
func (b *Base) Acquire(ctx context.Context) error {
	if !b.busy.TryLockCtx(ctx) {
		return errors.Wrap(ctx.Err(), "waiting for in-flight lifecycle operation")
	}
	return nil
}

// Release releases the lifecycle serialization lock.
func (b *Base) Release() { b.busy.Unlock() }

// CheckConnection validates that a connection attempt may proceed from the
// current status.
func (b *Base) CheckConnection() error {
	b.mutex.RLock()
	defer b.mutex.RUnlock()
	return checkConnection(b.status)
}

// CheckInitialization validates that initialization may proceed from the
// current status.
func (b *Base) CheckInitialization() error {
	b.mutex.RLock()
	defer b.mutex.RUnlock()
	return checkInitialization(b.status)
}

// SetChainConfig merges the given partial configuration over the registry
// default for its namespace (on the first call) or over the previously
// merged configuration (on later calls) and stores the result. It fails
// with an initialization error once the adapter left the pre-initialization
// statuses, when the namespace is missing, or when the adapter does not
// support the namespace. On failure the stored configuration is unchanged.
func (b *Base) SetChainConfig(conf chain.Config) error {
	if conf.Namespace == "" {
		return NewError(KindInitialization, msgNamespaceRequired)
	}
	if b.namespace != chain.NamespaceAny && conf.Namespace != b.namespace {
		return NewError(KindInitialization,
			"adapter "+b.name+" does not support chain namespace "+string(conf.Namespace))
	}

	b.mutex.Lock()
	defer b.mutex.Unlock()

	if err := checkInitialization(b.status); err != nil {
		return err
	}

	base := chain.Config{}
	if b.conf == nil {
		def, err := chain.DefaultConfig(conf.Namespace, conf.ChainID)
		if err != nil {
			return NewError(KindInitialization, err.Error())
		}
		base = def
	} else {
		base = *b.conf
	}

	merged := base.Merge(conf)
	b.conf = &merged
	b.log.Debugf("chain config set to %s/%s", merged.Namespace, merged.ChainID)
	return nil
}

// ChainConfig returns a copy of the active chain configuration, or nil if
// none was set. Mutating the returned copy does not affect the adapter.
func (b *Base) ChainConfig() *chain.Config {
	b.mutex.RLock()
	defer b.mutex.RUnlock()
	if b.conf == nil {
		return nil
	}
	conf := *b.conf
	return &conf
}

// CurrentUser returns the user profile captured during the most recent
// successful connection. It is empty while not connected.
func (b *Base) CurrentUser() UserInfo {
	b.mutex.RLock()
	defer b.mutex.RUnlock()
	return b.user
}

// SetUserInfo stores the user profile of the active connection and
// broadcasts it as adapter data.
func (b *Base) SetUserInfo(user UserInfo) {
	b.mutex.Lock()
	b.user = user
	b.mutex.Unlock()
	b.emitter.Emit(EventAdapterData, user)
}

// transition mutates the status along the transition table. The matching
// event must be emitted by the caller after transition returns, never
// before, so observers read the new status while handling the event.
func (b *Base) transition(to Status) error {
	b.mutex.Lock()
	from := b.status
	if !from.CanTransition(to) {
		b.mutex.Unlock()
		return errors.Errorf("illegal status transition %v->%v", from, to)
	}
	b.status = to
	b.mutex.Unlock()

	b.log.Tracef("status %v->%v", from, to)
	return nil
}

// BeginConnect atomically checks the connection guard and moves the adapter
// to Connecting. A racing second BeginConnect observes Connecting and fails
// with "Already pending connection".
func (b *Base) BeginConnect() error {
	b.mutex.Lock()
	if err := checkConnection(b.status); err != nil {
		b.mutex.Unlock()
		return err
	}
	b.status = Connecting
	b.mutex.Unlock()

	b.emitter.Emit(EventConnecting, b.name)
	return nil
}

// MarkReady moves the adapter to Ready and broadcasts it.
func (b *Base) MarkReady() error {
	if err := b.transition(Ready); err != nil {
		return err
	}
	b.emitter.Emit(EventReady, b.name)
	return nil
}

// AbortConnect reverts a pending connection attempt back to Ready, making
// the adapter eligible for a retry.
func (b *Base) AbortConnect() error {
	if err := b.transition(Ready); err != nil {
		return err
	}
	b.emitter.Emit(EventReady, b.name)
	return nil
}

// MarkConnected moves the adapter to Connected and broadcasts it.
func (b *Base) MarkConnected() error {
	if err := b.transition(Connected); err != nil {
		return err
	}
	b.emitter.Emit(EventConnected, b.name)
	return nil
}

// MarkDisconnected moves the adapter to Disconnected, discards the captured
// user profile, and broadcasts the disconnect.
func (b *Base) MarkDisconnected() error {
	if err := b.transition(Disconnected); err != nil {
		return err
	}
	b.mutex.Lock()
	b.user = UserInfo{}
	b.mutex.Unlock()

	b.emitter.Emit(EventDisconnected, b.name)
	return nil
}

// MarkErrored moves the adapter to Errored and broadcasts the error. The
// adapter then needs re-initialization.
func (b *Base) MarkErrored(cause error) error {
	if err := b.transition(Errored); err != nil {
		return err
	}
	b.log.WithError(cause).Warn("adapter errored")
	b.emitter.Emit(EventErrored, cause)
	return nil
}
