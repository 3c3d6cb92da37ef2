// Copyright (c) 2020 The WalletHub Authors. All rights reserved.
// This file is part of go-wallethub. Use of this source code is governed by a
// MIT-style license that can be found in the LICENSE file.

package keystore

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/accounts/keystore"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"

	"wallethub.network/go-wallethub/adapter"
)

// Provider is the embedded request surface of an unlocked key store
// account. It answers account and signing requests locally.
type Provider struct {
	adapter *Adapter
	ks      *keystore.KeyStore
	account accounts.Account
}

var _ adapter.Provider = (*Provider)(nil)

func newProvider(a *Adapter, ks *keystore.KeyStore, account accounts.Account) *Provider {
	return &Provider{adapter: a, ks: ks, account: account}
}

// Request answers the embedded provider's method set. Signing requests fail
// once the account is locked again.
func (p *Provider) Request(ctx context.Context, method string, params ...interface{}) (interface{}, error) {
	select {
	case <-ctx.Done():
		return nil, errors.Wrap(ctx.Err(), "request aborted")
	default:
	}

	switch method {
	case "eth_accounts":
		return []string{p.account.Address.Hex()}, nil
	case "eth_chainId":
		if conf := p.adapter.ChainConfig(); conf != nil {
			return conf.ChainID, nil
		}
		return "", nil
	case "personal_sign", "eth_sign":
		if len(params) != 1 {
			return nil, errors.Errorf("%s expects exactly one message parameter", method)
		}
		msg, err := decodeMessage(params[0])
		if err != nil {
			return nil, err
		}
		sig, err := p.ks.SignHash(p.account, textHash(msg))
		if err != nil {
			return nil, errors.WithMessage(err, "signing message")
		}
		return hexutil.Encode(sig), nil
	default:
		return nil, errors.Errorf("unsupported method %q", method)
	}
}

// decodeMessage accepts raw bytes, a hex string, or a plain string message.
func decodeMessage(param interface{}) ([]byte, error) {
	switch m := param.(type) {
	case []byte:
		return m, nil
	case string:
		if len(m) >= 2 && m[:2] == "0x" {
			return hexutil.Decode(m)
		}
		return []byte(m), nil
	default:
		return nil, errors.Errorf("unsupported message type %T", param)
	}
}

// textHash hashes a message for signing in the Ethereum personal-message
// scheme, so that signed messages cannot double as transactions.
func textHash(msg []byte) []byte {
	prefixed := fmt.Sprintf("\x19Ethereum Signed Message:\n%d%s", len(msg), msg)
	return crypto.Keccak256([]byte(prefixed))
}
