// Copyright (c) 2020 The WalletHub Authors. All rights reserved.
// This file is part of go-wallethub. Use of this source code is governed by a
// MIT-style license that can be found in the LICENSE file.

package events

import (
	"sync"
)

const (
	// receiverBufferSize controls how many notifications can be queued in a
	// receiver before Emit blocks.
	receiverBufferSize = 16
)

// Receiver receives the notifications of the events it is subscribed to.
// Receivers are created via Emitter.Subscribe and must be closed when no
// longer needed, otherwise they block the emitter once their buffer is full.
type Receiver struct {
	emitter *Emitter
	events  []Event

	sending   sync.Mutex // Held during put; Close waits for in-flight puts.
	notes     chan Notification
	done      chan struct{} // Closed when the receiver is closed.
	closeOnce sync.Once
}

func newReceiver(e *Emitter, events []Event) *Receiver {
	return &Receiver{
		emitter: e,
		events:  events,
		notes:   make(chan Notification, receiverBufferSize),
		done:    make(chan struct{}),
	}
}

// Events returns the channel over which the receiver's notifications are
// delivered. The channel is closed when the receiver is closed.
func (r *Receiver) Events() <-chan Notification {
	return r.notes
}

// Next drains and returns the next queued notification, if any.
// The second return value indicates whether a notification was queued.
func (r *Receiver) Next() (Notification, bool) {
	select {
	case n, ok := <-r.notes:
		return n, ok
	default:
		return Notification{}, false
	}
}

// put delivers a notification to the receiver. It blocks while the
// receiver's buffer is full. Delivery to a closed receiver is dropped.
func (r *Receiver) put(n Notification) {
	r.sending.Lock()
	defer r.sending.Unlock()

	select {
	case <-r.done:
		return
	default:
	}

	select {
	case r.notes <- n:
	case <-r.done:
	}
}

// Close unsubscribes the receiver from all events and closes its channel.
// Closing an already closed receiver has no effect.
func (r *Receiver) Close() {
	r.closeOnce.Do(func() {
		r.emitter.unsubscribe(r)
		// Abort any put that is blocked on a full buffer, then wait for
		// in-flight puts to drain before closing the channel.
		close(r.done)
		r.sending.Lock()
		defer r.sending.Unlock()
		close(r.notes)
	})
}
