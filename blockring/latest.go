// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockring

import (
	"sync"
)

// Summary - a row of the landing page
type Summary struct {
	Id           string
	Height       int
	Time         int64
	ProofOfStake bool
	Transactions int
	Amount       int64
}

// Latest - the most recently indexed blocks, newest first
type Latest struct {
	sync.RWMutex

	maximum int
	blocks  []Summary
}

// NewLatest - keep at most maximum blocks
func NewLatest(maximum int) *Latest {
	if maximum < 1 {
		maximum = 1
	}
	return &Latest{
		maximum: maximum,
		blocks:  make([]Summary, 0, maximum),
	}
}

// Add - put a block at the front, false if it is already present
func (l *Latest) Add(s Summary) bool {
	l.Lock()
	defer l.Unlock()

	for _, b := range l.blocks {
		if s.Id == b.Id {
			return false
		}
	}

	l.blocks = append(l.blocks, Summary{})
	copy(l.blocks[1:], l.blocks)
	l.blocks[0] = s
	if len(l.blocks) > l.maximum {
		l.blocks = l.blocks[:l.maximum]
	}
	return true
}

// Blocks - copy of the list
func (l *Latest) Blocks() []Summary {
	l.RLock()
	defer l.RUnlock()

	blocks := make([]Summary, len(l.blocks))
	copy(blocks, l.blocks)
	return blocks
}

// Full - true once the maximum number of blocks is held
func (l *Latest) Full() bool {
	l.RLock()
	defer l.RUnlock()
	return len(l.blocks) >= l.maximum
}

// Resize - change the maximum, dropping the oldest blocks if needed
func (l *Latest) Resize(maximum int) {
	if maximum < 1 {
		maximum = 1
	}

	l.Lock()
	defer l.Unlock()

	l.maximum = maximum
	if len(l.blocks) > maximum {
		l.blocks = l.blocks[:maximum]
	}
}
