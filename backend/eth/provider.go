// Copyright (c) 2020 The WalletHub Authors. All rights reserved.
// This file is part of go-wallethub. Use of this source code is governed by a
// MIT-style license that can be found in the LICENSE file.

package eth

import (
	"context"
	"encoding/json"

	"github.com/ethereum/go-ethereum/rpc"
	"github.com/pkg/errors"

	"wallethub.network/go-wallethub/adapter"
)

// Provider is the request surface of a connected external wallet. Requests
// are forwarded verbatim over the underlying JSON-RPC connection; results
// are returned as raw JSON.
type Provider struct {
	client *rpc.Client
}

var _ adapter.Provider = (*Provider)(nil)

// Request performs a single JSON-RPC request against the wallet provider.
func (p *Provider) Request(ctx context.Context, method string, params ...interface{}) (interface{}, error) {
	var result json.RawMessage
	if err := p.client.CallContext(ctx, &result, method, params...); err != nil {
		return nil, errors.WithMessage(err, method)
	}
	return result, nil
}
