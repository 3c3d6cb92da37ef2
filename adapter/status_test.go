// Copyright (c) 2020 The WalletHub Authors. All rights reserved.
// This file is part of go-wallethub. Use of this source code is governed by a
// MIT-style license that can be found in the LICENSE file.

package adapter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allStatuses = []Status{NotReady, Ready, Connecting, Connected, Disconnected, Errored}

// TestCheckConnection tests the connection guard over every status.
func TestCheckConnection(t *testing.T) {
	tests := []struct {
		status  Status
		wantMsg string // empty means the guard passes
	}{
		{NotReady, msgNotReady},
		{Ready, ""},
		{Connecting, msgPending},
		{Connected, msgConnected},
		{Disconnected, msgNotReady},
		{Errored, msgNotReady},
	}

	for _, tt := range tests {
		t.Run(tt.status.String(), func(t *testing.T) {
			err := checkConnection(tt.status)
			if tt.wantMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.wantMsg, err.Error())
			assert.True(t, IsLoginError(err), "connection guard must raise login errors")
		})
	}
}

// TestCheckInitialization tests the initialization guard over every status.
// Disconnected and Errored adapters may re-initialize.
func TestCheckInitialization(t *testing.T) {
	tests := []struct {
		status  Status
		wantMsg string
	}{
		{NotReady, ""},
		{Ready, msgInitialized},
		{Connecting, msgPending},
		{Connected, msgConnected},
		{Disconnected, ""},
		{Errored, ""},
	}

	for _, tt := range tests {
		t.Run(tt.status.String(), func(t *testing.T) {
			err := checkInitialization(tt.status)
			if tt.wantMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.wantMsg, err.Error())
			assert.True(t, IsInitializationError(err), "initialization guard must raise initialization errors")
		})
	}
}

func TestStatusTransitions(t *testing.T) {
	legal := map[Status][]Status{
		NotReady:     {Ready, Errored},
		Ready:        {Connecting, Errored},
		Connecting:   {Connected, Ready, Errored},
		Connected:    {Disconnected, Errored},
		Disconnected: {Ready, Errored},
		Errored:      {Ready},
	}

	for _, from := range allStatuses {
		for _, to := range allStatuses {
			want := false
			for _, l := range legal[from] {
				if l == to {
					want = true
				}
			}
			assert.Equalf(t, want, from.CanTransition(to), "transition %v->%v", from, to)
		}
	}
}

func TestStatusString(t *testing.T) {
	for _, s := range allStatuses {
		assert.NotEqual(t, "invalid", s.String())
	}
	assert.Equal(t, "invalid", Status(255).String())
}
