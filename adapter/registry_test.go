// Copyright (c) 2020 The WalletHub Authors. All rights reserved.
// This file is part of go-wallethub. Use of this source code is governed by a
// MIT-style license that can be found in the LICENSE file.

package adapter_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wallethub.network/go-wallethub/adapter"
	"wallethub.network/go-wallethub/backend/sim"
)

func TestRegistry(t *testing.T) {
	r := adapter.NewRegistry()

	_, err := r.Find("metamask")
	assert.Error(t, err, "empty registry must not find anything")

	a := sim.NewAdapter("metamask")
	require.NoError(t, r.Register(a))
	assert.Error(t, r.Register(sim.NewAdapter("metamask")), "duplicate names must be rejected")

	found, err := r.Find("metamask")
	require.NoError(t, err)
	assert.Equal(t, adapter.Adapter(a), found)

	require.NoError(t, r.Register(sim.NewAdapter("torus")))
	assert.Len(t, r.All(), 2)
}
