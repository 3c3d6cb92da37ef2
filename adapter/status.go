// Copyright (c) 2020 The WalletHub Authors. All rights reserved.
// This file is part of go-wallethub. Use of this source code is governed by a
// MIT-style license that can be found in the LICENSE file.

package adapter

// Status is the lifecycle status of an adapter. An adapter holds exactly one
// status at any time and mutates it only through Base.transition, which
// consults the transition table below.
type Status uint8

const (
	// NotReady is the status of a freshly created adapter.
	NotReady Status = iota
	// Ready means the adapter is initialized and can connect.
	Ready
	// Connecting means a connection attempt is in flight.
	Connecting
	// Connected means the adapter holds an active provider connection.
	Connected
	// Disconnected means a previous connection was torn down.
	Disconnected
	// Errored means the adapter failed and needs re-initialization.
	Errored
)

func (s Status) String() string {
	switch s {
	case NotReady:
		return "not_ready"
	case Ready:
		return "ready"
	case Connecting:
		return "connecting"
	case Connected:
		return "connected"
	case Disconnected:
		return "disconnected"
	case Errored:
		return "errored"
	default:
		return "invalid"
	}
}

// statusTransitions is the closed set of legal status transitions. Errored
// is reachable from every status; leaving Errored or Disconnected requires
// re-initialization to Ready.
var statusTransitions = map[Status][]Status{
	NotReady:     {Ready, Errored},
	Ready:        {Connecting, Errored},
	Connecting:   {Connected, Ready, Errored},
	Connected:    {Disconnected, Errored},
	Disconnected: {Ready, Errored},
	Errored:      {Ready},
}

// CanTransition reports whether the transition from s to target is legal.
func (s Status) CanTransition(target Status) bool {
	for _, t := range statusTransitions[s] {
		if t == target {
			return true
		}
	}
	return false
}

// Guard messages. The exact wording is part of the adapter contract; callers
// match on it to distinguish rejection causes.
const (
	msgPending           = "Already pending connection"
	msgConnected         = "Already connected"
	msgNotReady          = "Wallet adapter is not ready yet"
	msgInitialized       = "Adapter is already initialized"
	msgNamespaceRequired = "ChainNamespace is required while setting chainConfig"
)

// checkConnection validates that a connection attempt may proceed from the
// given status. It is a total, pure function of the status: only Ready
// passes, pending and established connections are reported distinctly, and
// every other status counts as not ready.
func checkConnection(s Status) error {
	switch s {
	case Connecting:
		return NewError(KindLogin, msgPending)
	case Connected:
		return NewError(KindLogin, msgConnected)
	case Ready:
		return nil
	default:
		return NewError(KindLogin, msgNotReady)
	}
}

// checkInitialization validates that initialization may proceed from the
// given status. NotReady passes; so do Disconnected and Errored, which may
// re-initialize after teardown or failure.
func checkInitialization(s Status) error {
	switch s {
	case Connecting:
		return NewError(KindInitialization, msgPending)
	case Connected:
		return NewError(KindInitialization, msgConnected)
	case Ready:
		return NewError(KindInitialization, msgInitialized)
	default:
		return nil
	}
}
