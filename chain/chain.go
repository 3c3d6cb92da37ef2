// Copyright (c) 2020 The WalletHub Authors. All rights reserved.
// This file is part of go-wallethub. Use of this source code is governed by a
// MIT-style license that can be found in the LICENSE file.

// Package chain defines blockchain network configurations and the registry
// of default configurations that adapters merge caller overrides onto.
package chain // import "wallethub.network/go-wallethub/chain"

// Namespace is the category of blockchain network a chain configuration or
// an adapter targets.
type Namespace string

const (
	// NamespaceEIP155 covers EVM networks with EIP-155 replay protection.
	NamespaceEIP155 Namespace = "eip155"
	// NamespaceSolana covers Solana networks.
	NamespaceSolana Namespace = "solana"
	// NamespaceOther covers networks without a dedicated namespace.
	NamespaceOther Namespace = "other"
	// NamespaceAny marks adapters that work with every namespace.
	NamespaceAny Namespace = "any"
)

// Config describes a blockchain network. The zero value of a field means
// "unset"; Merge treats unset fields as not overriding.
type Config struct {
	// Namespace is the chain namespace the configuration belongs to.
	Namespace Namespace
	// ChainID is the hex-encoded chain id, e.g. "0x1" for Ethereum mainnet.
	ChainID string
	// RPCTarget is the RPC endpoint of the network.
	RPCTarget string
	// WSTarget is the optional websocket endpoint of the network.
	WSTarget string
	// DisplayName is the human-readable network name.
	DisplayName string
	// BlockExplorer is the URL of the network's block explorer.
	BlockExplorer string
	// Ticker is the symbol of the network's native currency.
	Ticker string
	// TickerName is the name of the network's native currency.
	TickerName string
	// Decimals is the number of decimals of the native currency.
	Decimals uint
}

// Merge returns the configuration with all set fields of the overlay taking
// precedence over the receiver's. Neither receiver nor overlay are modified.
func (c Config) Merge(overlay Config) Config {
	merged := c
	if overlay.Namespace != "" {
		merged.Namespace = overlay.Namespace
	}
	if overlay.ChainID != "" {
		merged.ChainID = overlay.ChainID
	}
	if overlay.RPCTarget != "" {
		merged.RPCTarget = overlay.RPCTarget
	}
	if overlay.WSTarget != "" {
		merged.WSTarget = overlay.WSTarget
	}
	if overlay.DisplayName != "" {
		merged.DisplayName = overlay.DisplayName
	}
	if overlay.BlockExplorer != "" {
		merged.BlockExplorer = overlay.BlockExplorer
	}
	if overlay.Ticker != "" {
		merged.Ticker = overlay.Ticker
	}
	if overlay.TickerName != "" {
		merged.TickerName = overlay.TickerName
	}
	if overlay.Decimals != 0 {
		merged.Decimals = overlay.Decimals
	}
	return merged
}
