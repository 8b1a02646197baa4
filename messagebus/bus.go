// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package messagebus

import (
	"github.com/bitmark-inc/supplyledger/counter"
)

// DefaultQueueSize - used when a size of zero is requested
const DefaultQueueSize = 1000

// Message - an item and the name of the component that sent it
type Message struct {
	From string
	Item interface{}
}

// Bus - a single consumer message queue
type Bus struct {
	queue   chan Message
	sent    counter.Counter
	dropped counter.Counter
}

// New - create a bus holding up to size undelivered messages
func New(size int) *Bus {
	if size <= 0 {
		size = DefaultQueueSize
	}
	return &Bus{
		queue: make(chan Message, size),
	}
}

// Send - queue an item without waiting, false if it was dropped
func (b *Bus) Send(from string, item interface{}) bool {
	select {
	case b.queue <- Message{From: from, Item: item}:
		b.sent.Increment()
		return true
	default:
		b.dropped.Increment()
		return false
	}
}

// Chan - channel to read from
func (b *Bus) Chan() <-chan Message {
	return b.queue
}

// Sent - number of messages queued
func (b *Bus) Sent() uint64 {
	return b.sent.Uint64()
}

// Dropped - number of messages discarded because the queue was full
func (b *Bus) Dropped() uint64 {
	return b.dropped.Uint64()
}
