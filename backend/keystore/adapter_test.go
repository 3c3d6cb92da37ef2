// Copyright (c) 2020 The WalletHub Authors. All rights reserved.
// This file is part of go-wallethub. Use of this source code is governed by a
// MIT-style license that can be found in the LICENSE file.

package keystore

import (
	"context"
	"io/ioutil"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wallethub.network/go-wallethub/adapter"
)

const password = "secret"

func newTestAdapter(t *testing.T) (*Adapter, func()) {
	t.Helper()
	dir, err := ioutil.TempDir("", "wallethub-keystore")
	require.NoError(t, err)

	a := NewAdapter("openlogin")
	require.NoError(t, a.SetSettings(Settings{Dir: dir, LightKDF: true}))
	return a, func() { os.RemoveAll(dir) }
}

func TestLifecycle(t *testing.T) {
	a, cleanup := newTestAdapter(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, a.Init(ctx, adapter.InitOptions{}))
	assert.Equal(t, adapter.Ready, a.Status())

	// An empty key store creates an account under the passphrase.
	prov, err := a.Connect(ctx, adapter.ConnectParams{Passphrase: password})
	require.NoError(t, err)
	assert.Equal(t, adapter.Connected, a.Status())

	user, err := a.UserInfo(ctx)
	require.NoError(t, err)
	assert.Equal(t, "keystore", user.Verifier)
	assert.NotEmpty(t, user.VerifierID)

	res, err := prov.Request(ctx, "eth_accounts")
	require.NoError(t, err)
	accounts := res.([]string)
	require.Len(t, accounts, 1)
	assert.Equal(t, user.VerifierID, accounts[0])

	sig, err := prov.Request(ctx, "personal_sign", "hello wallet")
	require.NoError(t, err)
	assert.NotEmpty(t, sig)

	require.NoError(t, a.Disconnect(ctx))
	assert.Equal(t, adapter.Disconnected, a.Status())
	assert.Nil(t, a.Provider(), "no connection state may survive a disconnect")

	// The account is locked again; signing must fail now.
	_, err = prov.Request(ctx, "personal_sign", "hello wallet")
	assert.Error(t, err)
}

// TestReconnectExistingAccount tests that a reconnect after re-init unlocks
// the previously created account instead of creating a second one.
func TestReconnectExistingAccount(t *testing.T) {
	a, cleanup := newTestAdapter(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, a.Init(ctx, adapter.InitOptions{}))
	_, err := a.Connect(ctx, adapter.ConnectParams{Passphrase: password})
	require.NoError(t, err)
	first, err := a.UserInfo(ctx)
	require.NoError(t, err)
	require.NoError(t, a.Disconnect(ctx))

	require.NoError(t, a.Init(ctx, adapter.InitOptions{}))
	_, err = a.Connect(ctx, adapter.ConnectParams{Passphrase: password})
	require.NoError(t, err)
	second, err := a.UserInfo(ctx)
	require.NoError(t, err)
	assert.Equal(t, first.VerifierID, second.VerifierID)
}

func TestConnectWrongPassphrase(t *testing.T) {
	a, cleanup := newTestAdapter(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, a.Init(ctx, adapter.InitOptions{}))
	_, err := a.Connect(ctx, adapter.ConnectParams{Passphrase: password})
	require.NoError(t, err)
	require.NoError(t, a.Disconnect(ctx))
	require.NoError(t, a.Init(ctx, adapter.InitOptions{}))

	_, err = a.Connect(ctx, adapter.ConnectParams{Passphrase: "wrong"})
	require.Error(t, err)
	assert.Equal(t, adapter.Ready, a.Status(), "a failed unlock must revert to Ready")
}

func TestConnectUnknownAccount(t *testing.T) {
	a, cleanup := newTestAdapter(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, a.Init(ctx, adapter.InitOptions{}))
	_, err := a.Connect(ctx, adapter.ConnectParams{
		Account:    "0x00000000000000000000000000000000DeaDBeef",
		Passphrase: password,
	})
	require.Error(t, err)
	assert.True(t, adapter.IsLoginError(err))
}

func TestInitWithoutDir(t *testing.T) {
	a := NewAdapter("openlogin")
	err := a.Init(context.Background(), adapter.InitOptions{})
	require.Error(t, err)
	assert.True(t, adapter.IsInitializationError(err))
}
