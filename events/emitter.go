// Copyright (c) 2020 The WalletHub Authors. All rights reserved.
// This file is part of go-wallethub. Use of this source code is governed by a
// MIT-style license that can be found in the LICENSE file.

// Package events contains the named-event publish/subscribe mechanism that
// wallet adapters broadcast their lifecycle events over.
package events // import "wallethub.network/go-wallethub/events"

import (
	"sync"
)

// Event names a category of notifications.
type Event string

// Notification is a single published event together with its payload.
type Notification struct {
	Event   Event
	Payload interface{}
}

// Emitter broadcasts named events to subscribed receivers. An adapter owns
// one emitter and publishes all its lifecycle events over it. Emitters are
// thread-safe.
//
// Per receiver, notifications are delivered in emission order. No ordering is
// guaranteed across distinct receivers.
type Emitter struct {
	mutex sync.RWMutex
	subs  map[Event][]*Receiver
}

// NewEmitter creates a new emitter without any subscriptions.
func NewEmitter() *Emitter {
	return &Emitter{subs: make(map[Event][]*Receiver)}
}

// Subscribe creates a receiver that is subscribed to the given events.
// Subscribing to no events yields a receiver that never receives anything.
func (e *Emitter) Subscribe(events ...Event) *Receiver {
	r := newReceiver(e, events)

	e.mutex.Lock()
	defer e.mutex.Unlock()
	for _, ev := range events {
		e.subs[ev] = append(e.subs[ev], r)
	}

	return r
}

// Emit publishes an event to all receivers subscribed to it. Emit blocks if
// a receiver's buffer is full until the receiver catches up or is closed.
func (e *Emitter) Emit(ev Event, payload interface{}) {
	// Copy the subscriber list so that a concurrent unsubscribe does not
	// mutate the slice being iterated.
	e.mutex.RLock()
	subs := append([]*Receiver(nil), e.subs[ev]...)
	e.mutex.RUnlock()

	n := Notification{Event: ev, Payload: payload}
	for _, r := range subs {
		r.put(n)
	}
}

// unsubscribe removes a receiver from all its event subscriptions.
func (e *Emitter) unsubscribe(r *Receiver) {
	e.mutex.Lock()
	defer e.mutex.Unlock()

	for _, ev := range r.events {
		subs := e.subs[ev]
		for i, rec := range subs {
			if rec == r {
				subs[i] = subs[len(subs)-1]
				e.subs[ev] = subs[:len(subs)-1]
				break
			}
		}
	}
}
