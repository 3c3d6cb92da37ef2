// Copyright (c) 2020 The WalletHub Authors. All rights reserved.
// This file is part of go-wallethub. Use of this source code is governed by a
// MIT-style license that can be found in the LICENSE file.

// Package eth implements the external wallet adapter for EIP-155 networks.
// It connects to a wallet or node that exposes the Ethereum JSON-RPC surface
// under the chain configuration's RPC target.
package eth // import "wallethub.network/go-wallethub/backend/eth"

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/rpc"
	"github.com/pkg/errors"

	"wallethub.network/go-wallethub/adapter"
	"wallethub.network/go-wallethub/chain"
	pkgsync "wallethub.network/go-wallethub/pkg/sync"
)

// Settings are the eth adapter's settings.
type Settings struct {
	// DialTimeout bounds the RPC dial during Connect. Zero means no bound
	// beyond the Connect context.
	DialTimeout time.Duration
	// SkipChainIDCheck disables the verification of the provider's
	// eth_chainId against the chain configuration.
	SkipChainIDCheck bool
}

// Adapter is an external wallet adapter speaking Ethereum JSON-RPC.
type Adapter struct {
	*adapter.Base

	// dialing serializes dial and teardown of the shared RPC client with
	// context support.
	dialing pkgsync.Mutex

	mutex    sync.Mutex // Protects settings, client and prov.
	settings Settings
	client   *rpc.Client
	prov     *Provider
}

var _ adapter.Adapter = (*Adapter)(nil)

// NewAdapter creates an external EIP-155 wallet adapter under the given
// name.
func NewAdapter(name string) *Adapter {
	return &Adapter{Base: adapter.NewBase(name, chain.NamespaceEIP155, adapter.External)}
}

// SetSettings applies the given settings. They must be of type eth.Settings.
func (a *Adapter) SetSettings(settings adapter.Settings) error {
	set, ok := settings.(Settings)
	if !ok {
		return errors.Errorf("settings must be of type eth.Settings, got %T", settings)
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

// Init validates the chain configuration and readies the adapter. A missing
// configuration is filled with the eip155 registry default.
func (a *Adapter) Init(ctx context.Context, opts adapter.InitOptions) error {
	if err := a.Acquire(ctx); err != nil {
		return err
	}
	defer a.Release()

	if err := a.CheckInitialization(); err != nil {
		return err
	}

	if a.ChainConfig() == nil {
		if err := a.SetChainConfig(chain.Config{Namespace: chain.NamespaceEIP155}); err != nil {
			return err
		}
	}
	if a.ChainConfig().RPCTarget == "" {
		return adapter.NewError(adapter.KindInitialization,
			"chain config has no RPC target")
	}

	if err := a.MarkReady(); err != nil {
		return err
	}

	if opts.AutoConnect {
		if _, err := a.Connect(ctx, adapter.ConnectParams{}); err != nil {
			a.Log().WithError(err).Warn("auto-connect failed")
		}
	}
	return nil
}

// Connect dials the configured RPC target, verifies the provider's chain id
// against the chain configuration, and returns the provider handle.
func (a *Adapter) Connect(ctx context.Context, _ adapter.ConnectParams) (adapter.Provider, error) {
	if err := a.BeginConnect(); err != nil {
		return nil, err
	}

	if !a.dialing.TryLockCtx(ctx) {
		return nil, a.failConnect(nil, errors.Wrap(ctx.Err(), "waiting for in-flight dial"))
	}
	defer a.dialing.Unlock()

	set := a.currentSettings()
	conf := a.ChainConfig()

	dialCtx := ctx
	if set.DialTimeout > 0 {
		var cancel context.CancelFunc
		dialCtx, cancel = context.WithTimeout(ctx, set.DialTimeout)
		defer cancel()
	}

	client, err := rpc.DialContext(dialCtx, conf.RPCTarget)
	if err != nil {
		return nil, a.failConnect(nil, errors.WithMessage(err, "dialing wallet provider"))
	}

	if !set.SkipChainIDCheck {
		var chainID string
		if err := client.CallContext(ctx, &chainID, "eth_chainId"); err != nil {
			return nil, a.failConnect(client, errors.WithMessage(err, "requesting chain id"))
		}
		if conf.ChainID != "" && !strings.EqualFold(chainID, conf.ChainID) {
			return nil, a.failConnect(client, adapter.NewError(adapter.KindLogin,
				"provider reports chain id "+chainID+", configured is "+conf.ChainID))
		}
	}

	prov := &Provider{client: client}
	a.mutex.Lock()
	a.client = client
	a.prov = prov
	a.mutex.Unlock()

	if err := a.MarkConnected(); err != nil {
		return nil, err
	}
	return prov, nil
}

// failConnect reverts a failed connection attempt back to Ready and closes
// the client, if one was already dialed.
func (a *Adapter) failConnect(client *rpc.Client, cause error) error {
	if client != nil {
		client.Close()
	}
	if err := a.AbortConnect(); err != nil {
		return err
	}
	return cause
}

// Disconnect closes the RPC connection.
func (a *Adapter) Disconnect(ctx context.Context) error {
	if err := a.Acquire(ctx); err != nil {
		return err
	}
	defer a.Release()

	if !a.dialing.TryLockCtx(ctx) {
		return errors.Wrap(ctx.Err(), "waiting for in-flight dial")
	}
	defer a.dialing.Unlock()

	if err := a.MarkDisconnected(); err != nil {
		return err
	}

	a.mutex.Lock()
	if a.client != nil {
		a.client.Close()
	}
	a.client = nil
	a.prov = nil
	a.mutex.Unlock()
	return nil
}

// UserInfo returns an empty partial profile: external wallets do not expose
// identity data.
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
