// Copyright (c) 2020 The WalletHub Authors. All rights reserved.
// This file is part of go-wallethub. Use of this source code is governed by a
// MIT-style license that can be found in the LICENSE file.

package client_test

import (
	"context"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wallethub.network/go-wallethub/adapter"
	"wallethub.network/go-wallethub/backend/sim"
	"wallethub.network/go-wallethub/chain"
	"wallethub.network/go-wallethub/client"
	"wallethub.network/go-wallethub/log"
	plogrus "wallethub.network/go-wallethub/log/logrus"
)

func init() {
	logger := logrus.New()
	logger.SetLevel(logrus.WarnLevel)
	log.Set(plogrus.FromLogrus(logger))
}

func newTestClient(t *testing.T) *client.Client {
	t.Helper()
	c, err := client.New(chain.Config{Namespace: chain.NamespaceEIP155})
	require.NoError(t, err)
	return c
}

func TestNew_RequiresNamespace(t *testing.T) {
	_, err := client.New(chain.Config{})
	assert.Error(t, err)

	c := newTestClient(t)
	assert.Equal(t, chain.MainnetChainID, c.ChainConfig().ChainID,
		"configuration must be completed from the registry default")
}

func TestRegisterPushesChainConfig(t *testing.T) {
	c := newTestClient(t)
	defer c.Close()

	a := sim.NewAdapter("torus")
	require.NoError(t, c.Register(a))
	conf := a.ChainConfig()
	require.NotNil(t, conf)
	assert.Equal(t, chain.NamespaceEIP155, conf.Namespace)
	assert.Equal(t, chain.MainnetChainID, conf.ChainID)

	assert.Error(t, c.Register(sim.NewAdapter("torus")), "duplicate adapter names must be rejected")
	assert.Len(t, c.Adapters(), 1)
}

func TestConnectFlow(t *testing.T) {
	c := newTestClient(t)
	defer c.Close()
	ctx := context.Background()

	torus := sim.NewAdapter("torus")
	require.NoError(t, torus.SetSettings(sim.Settings{User: adapter.UserInfo{Name: "Alice"}}))
	metamask := sim.NewAdapter("metamask")
	require.NoError(t, c.Register(torus))
	require.NoError(t, c.Register(metamask))
	require.NoError(t, c.Init(ctx))

	_, err := c.ConnectTo(ctx, "ledger", adapter.ConnectParams{})
	assert.Error(t, err, "unknown adapter names must fail")

	prov, err := c.ConnectTo(ctx, "torus", adapter.ConnectParams{})
	require.NoError(t, err)
	require.NotNil(t, prov)
	assert.Equal(t, adapter.Adapter(torus), c.Current())

	user, err := c.UserInfo(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Alice", user.Name)

	// A second adapter cannot connect while torus is connected.
	_, err = c.ConnectTo(ctx, "metamask", adapter.ConnectParams{})
	require.Error(t, err)
	assert.True(t, adapter.IsLoginError(err))
	assert.Contains(t, err.Error(), "torus")

	// Reconnecting the current adapter surfaces its own guard rejection.
	_, err = c.ConnectTo(ctx, "torus", adapter.ConnectParams{})
	require.Error(t, err)
	assert.Equal(t, "Already connected", err.Error())

	require.NoError(t, c.Disconnect(ctx))
	assert.Nil(t, c.Current())
	assert.Error(t, c.Disconnect(ctx), "disconnecting without a connection must fail")
}

// TestConnectFailureClearsCurrent tests that a failed connection does not
// leave a stale current adapter behind.
func TestConnectFailureClearsCurrent(t *testing.T) {
	c := newTestClient(t)
	defer c.Close()
	ctx := context.Background()

	a := sim.NewAdapter("torus")
	require.NoError(t, a.SetSettings(sim.Settings{FailConnect: true}))
	require.NoError(t, c.Register(a))
	require.NoError(t, c.Init(ctx))

	_, err := c.ConnectTo(ctx, "torus", adapter.ConnectParams{})
	require.Error(t, err)
	assert.Nil(t, c.Current())

	// The hub stays usable: clearing the failure lets the retry succeed.
	require.NoError(t, a.SetSettings(sim.Settings{}))
	_, err = c.ConnectTo(ctx, "torus", adapter.ConnectParams{})
	assert.NoError(t, err)
}

// TestConcurrentConnectToSameAdapter tests that a racing ConnectTo rejected
// by the adapter's pending guard does not clear the hub's current adapter
// while the winning call is still connecting.
func TestConcurrentConnectToSameAdapter(t *testing.T) {
	c := newTestClient(t)
	defer c.Close()
	ctx := context.Background()

	a := sim.NewAdapter("torus")
	require.NoError(t, a.SetSettings(sim.Settings{Latency: 200 * time.Millisecond}))
	require.NoError(t, c.Register(a))
	require.NoError(t, c.Init(ctx))

	first := make(chan error, 1)
	go func() {
		_, err := c.ConnectTo(ctx, "torus", adapter.ConnectParams{})
		first <- err
	}()
	// Wait until the first call reached Connecting.
	for a.Status() != adapter.Connecting {
		time.Sleep(time.Millisecond)
	}

	_, err := c.ConnectTo(ctx, "torus", adapter.ConnectParams{})
	require.Error(t, err)
	assert.Equal(t, "Already pending connection", err.Error())

	require.NoError(t, <-first)
	assert.Equal(t, adapter.Connected, a.Status())
	assert.Equal(t, adapter.Adapter(a), c.Current(),
		"the pending rejection must not clear the current adapter")
	require.NoError(t, c.Disconnect(ctx))
	assert.Nil(t, c.Current())
}

func TestInitReportsFailures(t *testing.T) {
	c := newTestClient(t)
	defer c.Close()

	broken := sim.NewAdapter("broken")
	working := sim.NewAdapter("working")
	require.NoError(t, c.Register(broken))
	require.NoError(t, c.Register(working))

	// Drive the broken adapter to Ready beforehand, so its Init is
	// rejected as already initialized.
	require.NoError(t, broken.Init(context.Background(), adapter.InitOptions{}))

	err := c.Init(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken")
	assert.NotContains(t, err.Error(), "working")
	assert.Equal(t, adapter.Ready, working.Status(), "other adapters must still initialize")
}

// TestEventForwarding tests that adapter events appear on the hub's
// aggregated event surface.
func TestEventForwarding(t *testing.T) {
	c := newTestClient(t)
	defer c.Close()
	ctx := context.Background()

	r := c.Subscribe(adapter.EventConnected)
	defer r.Close()

	a := sim.NewAdapter("torus")
	require.NoError(t, c.Register(a))
	require.NoError(t, c.Init(ctx))
	_, err := c.ConnectTo(ctx, "torus", adapter.ConnectParams{})
	require.NoError(t, err)

	select {
	case n := <-r.Events():
		assert.Equal(t, adapter.EventConnected, n.Event)
		assert.Equal(t, "torus", n.Payload)
	case <-time.NewTimer(time.Second).C:
		t.Error("connected event was not forwarded")
	}
}
