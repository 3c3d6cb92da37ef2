// Copyright (c) 2020 The WalletHub Authors. All rights reserved.
// This file is part of go-wallethub. Use of this source code is governed by a
// MIT-style license that can be found in the LICENSE file.

// Package sim implements a simulated in-app wallet adapter. Its provider
// lives entirely in memory, which makes it the reference implementation for
// the adapter lifecycle and the test double used throughout go-wallethub.
package sim // import "wallethub.network/go-wallethub/backend/sim"

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"

	"wallethub.network/go-wallethub/adapter"
	"wallethub.network/go-wallethub/chain"
)

// Settings steer the simulated provider. They are applied via SetSettings.
type Settings struct {
	// Latency delays every connection attempt.
	Latency time.Duration
	// FailConnect makes connection attempts fail after the latency.
	FailConnect bool
	// User is the profile reported after a successful connection.
	User adapter.UserInfo
}

// Adapter is a simulated in-app wallet adapter.
type Adapter struct {
	*adapter.Base

	mutex    sync.Mutex // Protects settings and prov.
	settings Settings
	prov     *Provider
}

var _ adapter.Adapter = (*Adapter)(nil)

// NewAdapter creates a simulated adapter under the given name. It supports
// every chain namespace.
func NewAdapter(name string) *Adapter {
	return &Adapter{Base: adapter.NewBase(name, chain.NamespaceAny, adapter.InApp)}
}

// SetSettings applies the given settings. They must be of type sim.Settings.
func (a *Adapter) SetSettings(settings adapter.Settings) error {
	set, ok := settings.(Settings)
	if !ok {
		return errors.Errorf("settings must be of type sim.Settings, got %T", settings)
	}

	a.mutex.Lock()
	defer a.mutex.Unlock()
	a.settings = set
	return nil
}

func (a *Adapter) currentSettings() Settings {
	a.mutex.Lock()
	defer a.mutex.Unlock()
	return a.settings
}

// Init initializes the simulated adapter. There is no provider setup to
// perform, so it directly reaches Ready, or Connected with AutoConnect set.
func (a *Adapter) Init(ctx context.Context, opts adapter.InitOptions) error {
	if err := a.Acquire(ctx); err != nil {
		return err
	}
	defer a.Release()

	if err := a.CheckInitialization(); err != nil {
		return err
	}
	if err := a.MarkReady(); err != nil {
		return err
	}

	if opts.AutoConnect {
		if _, err := a.Connect(ctx, adapter.ConnectParams{}); err != nil {
			// A failed auto-connect leaves the adapter Ready for a retry.
			a.Log().WithError(err).Warn("auto-connect failed")
		}
	}
	return nil
}

// Connect establishes the simulated connection and returns its provider.
func (a *Adapter) Connect(ctx context.Context, _ adapter.ConnectParams) (adapter.Provider, error) {
	if err := a.BeginConnect(); err != nil {
		return nil, err
	}

	set := a.currentSettings()
	if set.Latency > 0 {
		select {
		case <-time.After(set.Latency):
		case <-ctx.Done():
			if aerr := a.AbortConnect(); aerr != nil {
				return nil, aerr
			}
			return nil, errors.Wrap(ctx.Err(), "connect aborted")
		}
	}

	if set.FailConnect {
		if err := a.AbortConnect(); err != nil {
			return nil, err
		}
		return nil, adapter.NewError(adapter.KindLogin, "simulated connection failure")
	}

	prov := newProvider(a)
	a.mutex.Lock()
	a.prov = prov
	a.mutex.Unlock()

	if err := a.MarkConnected(); err != nil {
		return nil, err
	}
	a.SetUserInfo(set.User)
	return prov, nil
}

// Disconnect tears down the simulated connection.
func (a *Adapter) Disconnect(ctx context.Context) error {
	if err := a.Acquire(ctx); err != nil {
		return err
	}
	defer a.Release()

	if err := a.MarkDisconnected(); err != nil {
		return err
	}

	a.mutex.Lock()
	a.prov = nil
	a.mutex.Unlock()
	return nil
}

// UserInfo returns the profile of the simulated user, empty while not
// connected.
func (a *Adapter) UserInfo(context.Context) (adapter.UserInfo, error) {
	return a.CurrentUser(), nil
}

// Provider returns the provider of the active connection, or nil.
func (a *Adapter) Provider() adapter.Provider {
	a.mutex.Lock()
	defer a.mutex.Unlock()
	if a.prov == nil {
		return nil
	}
	return a.prov
}
