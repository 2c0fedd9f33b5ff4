// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"sync"
)

type located struct {
	tx     Transaction
	height int // -1 => not yet in a block
}

// Memory - an in-process ledger
type Memory struct {
	sync.RWMutex
	hashes       []string
	transactions map[string]located
}

// NewMemory - create an empty chain
func NewMemory() *Memory {
	return &Memory{
		hashes:       []string{},
		transactions: make(map[string]located),
	}
}

// AddBlock - connect a block at the given height, replacing any
// block already at that height and truncating the chain above it
func (m *Memory) AddBlock(height int, block *Block) {
	m.Lock()
	defer m.Unlock()

	if height < 0 {
		return
	}
	for height >= len(m.hashes) {
		m.hashes = append(m.hashes, "")
	}
	m.hashes = m.hashes[:height+1]
	m.hashes[height] = block.Hash

	for _, tx := range block.Transactions {
		m.transactions[tx.Hash] = located{tx: tx, height: height}
	}
}

// AddPending - record a transaction that is not in a block yet
func (m *Memory) AddPending(tx Transaction) {
	m.Lock()
	defer m.Unlock()
	if _, ok := m.transactions[tx.Hash]; ok {
		return
	}
	m.transactions[tx.Hash] = located{tx: tx, height: -1}
}

// Transaction - see Ledger
func (m *Memory) Transaction(hash string) (*Transaction, int, bool) {
	m.RLock()
	defer m.RUnlock()

	l, ok := m.transactions[hash]
	if !ok {
		return nil, 0, false
	}
	tx := l.tx
	if l.height < 0 || l.height >= len(m.hashes) {
		return &tx, 0, true
	}
	return &tx, len(m.hashes) - l.height, true
}

// BestHeight - see Ledger
func (m *Memory) BestHeight() int {
	m.RLock()
	defer m.RUnlock()
	return len(m.hashes) - 1
}

// BlockHash - see Ledger
func (m *Memory) BlockHash(height int) (string, bool) {
	m.RLock()
	defer m.RUnlock()
	if height < 0 || height >= len(m.hashes) || "" == m.hashes[height] {
		return "", false
	}
	return m.hashes[height], true
}
