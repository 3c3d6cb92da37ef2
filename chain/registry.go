// Copyright (c) 2020 The WalletHub Authors. All rights reserved.
// This file is part of go-wallethub. Use of this source code is governed by a
// MIT-style license that can be found in the LICENSE file.

package chain

import (
	"github.com/pkg/errors"
)

// Well-known chain ids.
const (
	MainnetChainID = "0x1"
	GoerliChainID  = "0x5"
	SolanaMainnet  = "0x1"
)

// defaults holds the complete default configurations per namespace, keyed by
// chain id. The empty chain id maps to the namespace's primary network.
var defaults = map[Namespace]map[string]Config{
	NamespaceEIP155: {
		MainnetChainID: {
			Namespace:     NamespaceEIP155,
			ChainID:       MainnetChainID,
			RPCTarget:     "https://rpc.ankr.com/eth",
			DisplayName:   "Ethereum Mainnet",
			BlockExplorer: "https://etherscan.io",
			Ticker:        "ETH",
			TickerName:    "Ether",
			Decimals:      18,
		},
		GoerliChainID: {
			Namespace:     NamespaceEIP155,
			ChainID:       GoerliChainID,
			RPCTarget:     "https://rpc.ankr.com/eth_goerli",
			DisplayName:   "Görli Testnet",
			BlockExplorer: "https://goerli.etherscan.io",
			Ticker:        "ETH",
			TickerName:    "Ether",
			Decimals:      18,
		},
	},
	NamespaceSolana: {
		SolanaMainnet: {
			Namespace:     NamespaceSolana,
			ChainID:       SolanaMainnet,
			RPCTarget:     "https://api.mainnet-beta.solana.com",
			DisplayName:   "Solana Mainnet",
			BlockExplorer: "https://explorer.solana.com",
			Ticker:        "SOL",
			TickerName:    "Solana",
			Decimals:      9,
		},
	},
	NamespaceOther: {
		"": {
			Namespace:   NamespaceOther,
			DisplayName: "Other",
		},
	},
}

// primary maps each namespace to the chain id used when none is requested.
var primary = map[Namespace]string{
	NamespaceEIP155: MainnetChainID,
	NamespaceSolana: SolanaMainnet,
	NamespaceOther:  "",
}

// DefaultConfig returns the complete default configuration for the given
// namespace and chain id. An empty chain id selects the namespace's primary
// network. Unknown chain ids of a known namespace yield the primary
// network's configuration with the chain id replaced, so that the result is
// always complete. Unknown namespaces are an error.
func DefaultConfig(ns Namespace, chainID string) (Config, error) {
	chains, ok := defaults[ns]
	if !ok {
		return Config{}, errors.Errorf("unknown chain namespace %q", ns)
	}

	if chainID == "" {
		chainID = primary[ns]
	}
	if conf, ok := chains[chainID]; ok {
		return conf, nil
	}

	conf := chains[primary[ns]]
	conf.ChainID = chainID
	return conf, nil
}
