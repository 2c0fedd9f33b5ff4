// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package ledger - the view of the chain that the explorer depends on
//
// The consensus engine owns the chain; the explorer only needs to
// look up a transaction with its confirmation depth, the best height
// and the block hash at a height.  Blocks arrive as Events.
package ledger

// Ledger - read-only queries against the chain
//
//go:generate mockgen -source=ledger.go -destination=mocks/ledger.go -package=mocks
type Ledger interface {
	// Transaction returns the transaction and its confirmation depth,
	// depth is zero for a transaction that is not yet in a block
	Transaction(hash string) (*Transaction, int, bool)

	// BestHeight is the height of the chain tip, -1 for an empty chain
	BestHeight() int

	BlockHash(height int) (string, bool)
}

// Input - a spent output reference
//
// Address and Value are filled in by the publisher when it can
// resolve the previous output, otherwise the indexer looks it up
type Input struct {
	PrevHash  string `json:"prev_hash"`
	PrevIndex uint32 `json:"prev_index"`
	Sequence  uint32 `json:"sequence"`
	Script    string `json:"script,omitempty"`
	Address   string `json:"address,omitempty"`
	Value     int64  `json:"value,omitempty"`
}

// Output - a payment, Value is in ledger units
type Output struct {
	Value   int64  `json:"value"`
	Address string `json:"address,omitempty"`
	Script  string `json:"script,omitempty"`
}

// Transaction - a ledger transaction
type Transaction struct {
	Hash     string   `json:"hash"`
	Version  int32    `json:"version"`
	Time     int64    `json:"time"`
	LockTime uint32   `json:"lock_time"`
	Message  string   `json:"message,omitempty"`
	Inputs   []Input  `json:"inputs"`
	Outputs  []Output `json:"outputs"`
}

// Block - a ledger block with its transactions
type Block struct {
	Hash         string        `json:"hash"`
	PrevHash     string        `json:"prev_hash"`
	MerkleRoot   string        `json:"merkle_root"`
	Version      int32         `json:"version"`
	Time         int64         `json:"time"`
	Bits         uint32        `json:"bits"`
	Nonce        uint32        `json:"nonce"`
	Size         int           `json:"size"`
	ProofOfStake bool          `json:"proof_of_stake"`
	Signature    string        `json:"signature,omitempty"`
	MerkleTree   []string      `json:"merkle_tree,omitempty"`
	Transactions []Transaction `json:"transactions"`
}

// Event - a newly connected block as published by the node
type Event struct {
	Height int    `json:"height"`
	Block  *Block `json:"block"`
}

// IsCoinBase - true for a transaction that spends nothing
func (tx Transaction) IsCoinBase() bool {
	if 1 != len(tx.Inputs) {
		return false
	}
	return isNullHash(tx.Inputs[0].PrevHash)
}

// IsCoinStake - true for a staking transaction, it has an empty first
// output
func (tx Transaction) IsCoinStake() bool {
	if 0 == len(tx.Inputs) || tx.IsCoinBase() || len(tx.Outputs) < 2 {
		return false
	}
	return 0 == tx.Outputs[0].Value && "" == tx.Outputs[0].Address
}

// HasEmptyOutput - true if any output carries no value
func (tx Transaction) HasEmptyOutput() bool {
	for _, o := range tx.Outputs {
		if 0 == o.Value {
			return true
		}
	}
	return false
}

// TotalOutput - sum of all output values
func (tx Transaction) TotalOutput() int64 {
	total := int64(0)
	for _, o := range tx.Outputs {
		total += o.Value
	}
	return total
}

// TotalOutput - sum of all output values of every transaction
func (b *Block) TotalOutput() int64 {
	total := int64(0)
	for i := range b.Transactions {
		total += b.Transactions[i].TotalOutput()
	}
	return total
}

func isNullHash(h string) bool {
	for _, c := range h {
		if '0' != c {
			return false
		}
	}
	return true
}
