// Copyright (c) 2020 The WalletHub Authors. All rights reserved.
// This file is part of go-wallethub. Use of this source code is governed by a
// MIT-style license that can be found in the LICENSE file.

package adapter

import (
	"sync"

	"github.com/pkg/errors"
)

// Registry is a named set of adapters. It is used by the client to look up
// the adapter a connection request targets. Registries are thread-safe.
type Registry struct {
	mutex    sync.RWMutex
	adapters []Adapter
}

// NewRegistry creates an empty adapter registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// find looks up an adapter by name.
// If found, returns the adapter and its index, otherwise returns nil and -1.
func (r *Registry) find(name string) (Adapter, int) {
	for i, a := range r.adapters {
		if a.Name() == name {
			return a, i
		}
	}
	return nil, -1
}

// Find looks up an adapter by name.
func (r *Registry) Find(name string) (Adapter, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	if a, i := r.find(name); i != -1 {
		return a, nil
	}
	return nil, errors.Errorf("adapter %q not found", name)
}

// Register enters an adapter into the registry. Registering a second adapter
// under an already taken name is an error.
func (r *Registry) Register(a Adapter) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, i := r.find(a.Name()); i != -1 {
		return errors.Errorf("adapter %q already registered", a.Name())
	}
	r.adapters = append(r.adapters, a)
	return nil
}

// All returns all registered adapters.
func (r *Registry) All() []Adapter {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	all := make([]Adapter, len(r.adapters))
	copy(all, r.adapters)
	return all
}
