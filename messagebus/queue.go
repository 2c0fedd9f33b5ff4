// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package messagebus

import (
	"github.com/biberhund/scashexplorer/ledger"
)

// QueueSize - default capacity of a queue
const QueueSize = 1000

// Message - an item on the bus
type Message struct {
	From  string
	Event ledger.Event
}

// Queue - buffered channel between a producer and the indexer
type Queue struct {
	queue chan Message
}

// New - create a queue, a size below one uses QueueSize
func New(size int) *Queue {
	if size < 1 {
		size = QueueSize
	}
	return &Queue{
		queue: make(chan Message, size),
	}
}

// Send - queue an event, blocks while the queue is full
func (q *Queue) Send(from string, event ledger.Event) {
	q.queue <- Message{
		From:  from,
		Event: event,
	}
}

// TrySend - queue an event, false if the queue is full
func (q *Queue) TrySend(from string, event ledger.Event) bool {
	select {
	case q.queue <- Message{From: from, Event: event}:
		return true
	default:
		return false
	}
}

// Chan - channel to read from
func (q *Queue) Chan() <-chan Message {
	return q.queue
}
