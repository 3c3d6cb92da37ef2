// Copyright (c) 2020 The WalletHub Authors. All rights reserved.
// This file is part of go-wallethub. Use of this source code is governed by a
// MIT-style license that can be found in the LICENSE file.

// Package adapter defines the contract every wallet adapter implements: the
// lifecycle status machine with its connection guards, the configuration
// setters, and the event surface. Adapters connect the application to one
// wallet provider family; providers can be external wallets the user already
// runs or services embedded in the application.
package adapter // import "wallethub.network/go-wallethub/adapter"

import (
	"context"

	"wallethub.network/go-wallethub/chain"
	"wallethub.network/go-wallethub/events"
)

// Type tells whether an adapter talks to an external wallet or to a provider
// embedded in the hosting application.
type Type string

const (
	// External marks adapters for separate wallets or services the user
	// already has.
	External Type = "external"
	// InApp marks adapters whose provider is embedded in the application.
	InApp Type = "in_app"
)

// Lifecycle event names. Every status transition is broadcast under the
// matching name after the status has been mutated, so subscribers never
// observe a stale status while handling the event.
const (
	// EventReady is emitted when an adapter finished initialization.
	// Payload: the adapter name.
	EventReady = events.Event("ready")
	// EventConnecting is emitted when a connection attempt starts.
	// Payload: the adapter name.
	EventConnecting = events.Event("connecting")
	// EventConnected is emitted on a successful connection.
	// Payload: the adapter name.
	EventConnected = events.Event("connected")
	// EventDisconnected is emitted when a connection is torn down.
	// Payload: the adapter name.
	EventDisconnected = events.Event("disconnected")
	// EventErrored is emitted when an adapter fails. Payload: the error.
	EventErrored = events.Event("errored")
	// EventAdapterData is emitted when a user profile becomes available.
	// Payload: the UserInfo.
	EventAdapterData = events.Event("adapter_data")
)

// AllEvents lists every lifecycle event an adapter emits.
var AllEvents = []events.Event{
	EventReady, EventConnecting, EventConnected,
	EventDisconnected, EventErrored, EventAdapterData,
}

// UserInfo is the partial user profile captured during the most recent
// successful connection. All fields are optional; providers that expose no
// identity data leave it empty.
type UserInfo struct {
	Email        string
	Name         string
	ProfileImage string
	Verifier     string
	VerifierID   string
}

// InitOptions control adapter initialization.
type InitOptions struct {
	// AutoConnect makes Init attempt a connection right after reaching
	// Ready. A failed auto-connect leaves the adapter Ready.
	AutoConnect bool
}

// ConnectParams carry the provider-specific connection inputs. Unused fields
// are ignored by adapters that do not need them.
type ConnectParams struct {
	// Account selects the account to connect, if the provider manages
	// several. Empty selects the provider's default.
	Account string
	// Passphrase unlocks embedded key management, where applicable.
	Passphrase string
}

// Settings are implementation-defined adapter settings; each adapter
// documents the concrete type it accepts.
type Settings interface{}

// Provider is the opaque request surface of a connected wallet. Requests are
// provider-defined; EVM providers speak the Ethereum JSON-RPC method set.
type Provider interface {
	// Request performs a single request against the wallet provider.
	Request(ctx context.Context, method string, params ...interface{}) (interface{}, error)
}

// Adapter is the capability set every wallet adapter exposes.
//
// Implementations must serialize lifecycle transitions per instance: of two
// racing Connect calls, exactly one proceeds and the other observes the
// "Already pending connection" rejection. Embedding *Base provides this
// discipline together with the status storage, guards and event emission.
type Adapter interface {
	// Name returns the adapter's stable unique key.
	Name() string
	// Namespace returns the chain namespace family the adapter supports,
	// or chain.NamespaceAny.
	Namespace() chain.Namespace
	// Type tells whether the adapter is external or in-app.
	Type() Type
	// Status returns the adapter's current lifecycle status.
	Status() Status
	// Provider returns the provider handle of the active connection, or nil
	// if the adapter is not connected.
	Provider() Provider

	// Init initializes the adapter. It fails with an initialization error
	// unless the current status permits initialization (see the
	// initialization guard). With AutoConnect set, a successful Init
	// continues into Connect.
	Init(ctx context.Context, opts InitOptions) error
	// Connect establishes a connection to the wallet provider and returns
	// its provider handle. It fails with a login error unless the adapter
	// is exactly Ready.
	Connect(ctx context.Context, params ConnectParams) (Provider, error)
	// Disconnect tears down the active connection.
	Disconnect(ctx context.Context) error
	// UserInfo returns the partial profile captured during the most recent
	// successful connection. It may be empty.
	UserInfo(ctx context.Context) (UserInfo, error)

	// SetChainConfig merges the given partial configuration over the
	// registry default for its namespace and stores the result as the
	// adapter's active configuration. It is rejected when the namespace is
	// missing and in every status that also rejects Init.
	SetChainConfig(conf chain.Config) error
	// SetSettings applies implementation-defined adapter settings.
	SetSettings(settings Settings) error

	// Subscribe subscribes to the adapter's lifecycle events.
	Subscribe(evs ...events.Event) *events.Receiver
}
