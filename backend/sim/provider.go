// Copyright (c) 2020 The WalletHub Authors. All rights reserved.
// This file is part of go-wallethub. Use of this source code is governed by a
// MIT-style license that can be found in the LICENSE file.

package sim

import (
	"context"
	"sync"

	"github.com/pkg/errors"

	"wallethub.network/go-wallethub/adapter"
)

// simAccount is the single account the simulated provider exposes.
const simAccount = "0x0000000000000000000000000000000000001337"

// Provider is the in-memory request surface of a simulated connection. It
// records all requests so that tests can inspect them.
type Provider struct {
	adapter *Adapter

	mutex    sync.Mutex
	requests []string
}

var _ adapter.Provider = (*Provider)(nil)

func newProvider(a *Adapter) *Provider {
	return &Provider{adapter: a}
}

// Request answers a small, provider-defined method set in memory.
func (p *Provider) Request(ctx context.Context, method string, params ...interface{}) (interface{}, error) {
	select {
	case <-ctx.Done():
		return nil, errors.Wrap(ctx.Err(), "request aborted")
	default:
	}

	p.mutex.Lock()
	p.requests = append(p.requests, method)
	p.mutex.Unlock()

	switch method {
	case "ping":
		return "pong", nil
	case "eth_accounts":
		return []string{simAccount}, nil
	case "eth_chainId":
		if conf := p.adapter.ChainConfig(); conf != nil {
			return conf.ChainID, nil
		}
		return "", nil
	default:
		return nil, errors.Errorf("unsupported method %q", method)
	}
}

// Requests returns the methods requested so far, in order.
func (p *Provider) Requests() []string {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	reqs := make([]string, len(p.requests))
	copy(reqs, p.requests)
	return reqs
}
