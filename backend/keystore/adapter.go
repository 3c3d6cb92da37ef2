// Copyright (c) 2020 The WalletHub Authors. All rights reserved.
// This file is part of go-wallethub. Use of this source code is governed by a
// MIT-style license that can be found in the LICENSE file.

// Package keystore implements the in-app wallet adapter backed by an
// encrypted on-disk key store. The provider is embedded in the application:
// accounts and signatures are served locally from the key store instead of
// an external wallet.
package keystore // import "wallethub.network/go-wallethub/backend/keystore"

import (
	"context"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/accounts/keystore"
	"github.com/pkg/errors"

	"wallethub.network/go-wallethub/adapter"
	"wallethub.network/go-wallethub/chain"
)

// Settings are the keystore adapter's settings. Dir must be set before Init.
type Settings struct {
	// Dir is the key store directory.
	Dir string
	// LightKDF uses lighter scrypt parameters for key encryption. Unlocking
	// gets much faster at the cost of weaker protection; meant for tests
	// and development networks.
	LightKDF bool
}

// Adapter is an in-app wallet adapter with embedded key management.
type Adapter struct {
	*adapter.Base

	mutex    sync.Mutex // Protects all fields below.
	settings Settings
	ks       *keystore.KeyStore
	account  accounts.Account
	prov     *Provider
}

var _ adapter.Adapter = (*Adapter)(nil)

// NewAdapter creates an in-app key store adapter under the given name.
func NewAdapter(name string) *Adapter {
	return &Adapter{Base: adapter.NewBase(name, chain.NamespaceEIP155, adapter.InApp)}
}

// SetSettings applies the given settings. They must be of type
// keystore.Settings.
func (a *Adapter) SetSettings(settings adapter.Settings) error {
	set, ok := settings.(Settings)
	if !ok {
		return errors.Errorf("settings must be of type keystore.Settings, got %T", settings)
	}

	a.mutex.Lock()
	defer a.mutex.Unlock()
	a.settings = set
	return nil
}

// Init opens the key store directory and readies the adapter.
func (a *Adapter) Init(ctx context.Context, opts adapter.InitOptions) error {
	if err := a.Acquire(ctx); err != nil {
		return err
	}
	defer a.Release()

	if err := a.CheckInitialization(); err != nil {
		return err
	}

	a.mutex.Lock()
	set := a.settings
	a.mutex.Unlock()
	if set.Dir == "" {
		return adapter.NewError(adapter.KindInitialization,
			"key store directory not configured")
	}

	scryptN, scryptP := keystore.StandardScryptN, keystore.StandardScryptP
	if set.LightKDF {
		scryptN, scryptP = keystore.LightScryptN, keystore.LightScryptP
	}
	ks := keystore.NewKeyStore(set.Dir, scryptN, scryptP)

	if a.ChainConfig() == nil {
		if err := a.SetChainConfig(chain.Config{Namespace: chain.NamespaceEIP155}); err != nil {
			return err
		}
	}

	a.mutex.Lock()
	a.ks = ks
	a.mutex.Unlock()

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

// Connect unlocks an account of the key store and returns the embedded
// provider. The account is selected via ConnectParams.Account; without a
// selection the first account is used, and an empty key store creates a new
// account under the given passphrase.
func (a *Adapter) Connect(ctx context.Context, params adapter.ConnectParams) (adapter.Provider, error) {
	if err := a.BeginConnect(); err != nil {
		return nil, err
	}

	a.mutex.Lock()
	ks := a.ks
	a.mutex.Unlock()

	account, err := selectAccount(ks, params)
	if err != nil {
		return nil, a.failConnect(err)
	}
	if err := ks.Unlock(account, params.Passphrase); err != nil {
		return nil, a.failConnect(errors.WithMessage(err, "unlocking account"))
	}

	prov := newProvider(a, ks, account)
	a.mutex.Lock()
	a.account = account
	a.prov = prov
	a.mutex.Unlock()

	if err := a.MarkConnected(); err != nil {
		return nil, err
	}
	a.SetUserInfo(adapter.UserInfo{
		Verifier:   "keystore",
		VerifierID: account.Address.Hex(),
	})
	return prov, nil
}

// selectAccount resolves the account a connection request targets.
func selectAccount(ks *keystore.KeyStore, params adapter.ConnectParams) (accounts.Account, error) {
	all := ks.Accounts()
	if params.Account != "" {
		for _, acc := range all {
			if strings.EqualFold(acc.Address.Hex(), params.Account) {
				return acc, nil
			}
		}
		return accounts.Account{}, adapter.NewError(adapter.KindLogin,
			"no such account "+params.Account)
	}
	if len(all) > 0 {
		return all[0], nil
	}
	account, err := ks.NewAccount(params.Passphrase)
	return account, errors.WithMessage(err, "creating account")
}

// failConnect reverts a failed connection attempt back to Ready.
func (a *Adapter) failConnect(cause error) error {
	if err := a.AbortConnect(); err != nil {
		return err
	}
	return cause
}

// Disconnect locks the connected account again.
func (a *Adapter) Disconnect(ctx context.Context) error {
	if err := a.Acquire(ctx); err != nil {
		return err
	}
	defer a.Release()

	if err := a.MarkDisconnected(); err != nil {
		return err
	}

	// The provider and account are discarded even if locking fails, so no
	// partial connection state survives a disconnect.
	a.mutex.Lock()
	defer a.mutex.Unlock()
	err := a.ks.Lock(a.account.Address)
	a.prov = nil
	a.account = accounts.Account{}
	return errors.WithMessage(err, "locking account")
}

// UserInfo returns the profile of the unlocked account, empty while not
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
