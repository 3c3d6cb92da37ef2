// Copyright (c) 2020 The WalletHub Authors. All rights reserved.
// This file is part of go-wallethub. Use of this source code is governed by a
// MIT-style license that can be found in the LICENSE file.

// Package client implements the wallet hub an application interacts with.
// A client holds a set of registered wallet adapters, pushes its chain
// configuration into them, drives their lifecycle, and re-broadcasts their
// events on a single aggregated event surface. At most one adapter is
// connected at a time.
package client // import "wallethub.network/go-wallethub/client"

import (
	"context"
	"strings"
	"sync"

	"github.com/pkg/errors"

	"wallethub.network/go-wallethub/adapter"
	"wallethub.network/go-wallethub/chain"
	"wallethub.network/go-wallethub/events"
	"wallethub.network/go-wallethub/log"
)

// Client is a wallet hub. Clients are thread-safe.
type Client struct {
	registry *adapter.Registry
	conf     chain.Config
	emitter  *events.Emitter
	log      log.Logger

	mutex     sync.Mutex // Protects current and receivers.
	current   adapter.Adapter
	receivers []*events.Receiver
}

// New creates a wallet hub for the given chain configuration. The
// configuration is completed from the registry default of its namespace and
// pushed into every adapter upon registration.
func New(conf chain.Config) (*Client, error) {
	if conf.Namespace == "" {
		return nil, errors.New("chain namespace required")
	}
	def, err := chain.DefaultConfig(conf.Namespace, conf.ChainID)
	if err != nil {
		return nil, err
	}

	return &Client{
		registry: adapter.NewRegistry(),
		conf:     def.Merge(conf),
		emitter:  events.NewEmitter(),
		log:      log.WithField("component", "wallet-hub"),
	}, nil
}

// ChainConfig returns a copy of the hub's chain configuration.
func (c *Client) ChainConfig() chain.Config { return c.conf }

// Register configures an adapter with the hub's chain configuration and
// enters it into the hub. The adapter's events are re-broadcast on the
// hub's event surface from then on.
func (c *Client) Register(a adapter.Adapter) error {
	if err := a.SetChainConfig(c.conf); err != nil {
		return errors.WithMessage(err, "configuring adapter "+a.Name())
	}
	if err := c.registry.Register(a); err != nil {
		return err
	}

	r := a.Subscribe()
	c.mutex.Lock()
	c.receivers = append(c.receivers, r)
	c.mutex.Unlock()
	go c.forward(a.Name(), r)

	return nil
}

// forward re-broadcasts an adapter's events until its receiver is closed.
func (c *Client) forward(name string, r *events.Receiver) {
	for n := range r.Events() {
		c.log.Tracef("forwarding %s from adapter %s", n.Event, name)
		c.emitter.Emit(n.Event, n.Payload)
	}
}

// Adapters returns all registered adapters.
func (c *Client) Adapters() []adapter.Adapter { return c.registry.All() }

// Init initializes every registered adapter. Adapters that fail to
// initialize stay registered and may be re-initialized later; their
// failures are combined into the returned error.
func (c *Client) Init(ctx context.Context) error {
	var failed []string
	for _, a := range c.registry.All() {
		if err := a.Init(ctx, adapter.InitOptions{}); err != nil {
			c.log.WithError(err).Warnf("initializing adapter %s failed", a.Name())
			failed = append(failed, a.Name())
		}
	}
	if len(failed) > 0 {
		return errors.Errorf("initializing adapters failed: %s", strings.Join(failed, ", "))
	}
	return nil
}

// ConnectTo connects the named adapter and makes it the hub's current
// adapter. Connecting while a different adapter is connected fails with a
// login error; connecting the current adapter again surfaces the adapter's
// own guard rejection.
func (c *Client) ConnectTo(ctx context.Context, name string, params adapter.ConnectParams) (adapter.Provider, error) {
	a, err := c.registry.Find(name)
	if err != nil {
		return nil, err
	}

	c.mutex.Lock()
	if c.current != nil && c.current.Name() != name {
		cur := c.current.Name()
		c.mutex.Unlock()
		return nil, adapter.NewError(adapter.KindLogin, "Already connected to adapter "+cur)
	}
	c.current = a
	c.mutex.Unlock()

	prov, err := a.Connect(ctx, params)
	if err != nil {
		// Clear current only if no other call on the same adapter is
		// still connecting or already connected; a call rejected by the
		// pending guard must not orphan the winning call's reservation.
		c.mutex.Lock()
		if c.current == a {
			switch a.Status() {
			case adapter.Connecting, adapter.Connected:
			default:
				c.current = nil
			}
		}
		c.mutex.Unlock()
		return nil, err
	}

	c.mutex.Lock()
	c.current = a
	c.mutex.Unlock()

	c.log.Debugf("connected adapter %s", name)
	return prov, nil
}

// Current returns the hub's current adapter, or nil if none is connected.
func (c *Client) Current() adapter.Adapter {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return c.current
}

// Disconnect disconnects the current adapter.
func (c *Client) Disconnect(ctx context.Context) error {
	c.mutex.Lock()
	a := c.current
	c.mutex.Unlock()
	if a == nil {
		return errors.New("no connected adapter")
	}

	if err := a.Disconnect(ctx); err != nil {
		return err
	}

	c.mutex.Lock()
	if c.current == a {
		c.current = nil
	}
	c.mutex.Unlock()
	return nil
}

// UserInfo returns the current adapter's user profile.
func (c *Client) UserInfo(ctx context.Context) (adapter.UserInfo, error) {
	c.mutex.Lock()
	a := c.current
	c.mutex.Unlock()
	if a == nil {
		return adapter.UserInfo{}, errors.New("no connected adapter")
	}
	return a.UserInfo(ctx)
}

// Subscribe subscribes to the hub's aggregated event surface; without
// arguments it subscribes to all lifecycle events.
func (c *Client) Subscribe(evs ...events.Event) *events.Receiver {
	if len(evs) == 0 {
		evs = adapter.AllEvents
	}
	return c.emitter.Subscribe(evs...)
}

// Close stops re-broadcasting adapter events. Registered adapters are not
// disconnected; that remains the caller's decision.
func (c *Client) Close() {
	c.mutex.Lock()
	receivers := c.receivers
	c.receivers = nil
	c.mutex.Unlock()

	for _, r := range receivers {
		r.Close()
	}
}
