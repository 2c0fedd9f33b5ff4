// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package indexer

import (
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/biberhund/scashexplorer/blockring"
	"github.com/biberhund/scashexplorer/currency"
	"github.com/biberhund/scashexplorer/fault"
	"github.com/biberhund/scashexplorer/feed"
	"github.com/biberhund/scashexplorer/ledger"
	"github.com/biberhund/scashexplorer/metrics"
	"github.com/biberhund/scashexplorer/registry"
	"github.com/biberhund/scashexplorer/templates"
)

// WriteBlock - index a block and all of its transactions
//
// storage failures are logged and indexing continues with the next
// document
func (ix *Indexer) WriteBlock(height int, block *ledger.Block) error {
	if nil == block || "" == block.Hash {
		return fault.InvalidBlock
	}

	ix.Lock()
	defer ix.Unlock()

	log := ix.log
	log.Infof("block: %s  height: %d  transactions: %d", block.Hash, height, len(block.Transactions))

	ix.Registry.MarkKnown(block.Hash, registry.Block)
	for i := range block.Transactions {
		ix.Registry.MarkKnown(block.Transactions[i].Hash, registry.Transaction)
	}

	for i := range block.Transactions {
		ix.writeTransaction(height, block, &block.Transactions[i])
	}

	_ = ix.Documents.Write(block.Hash, templates.Head("Block ID", false), templates.Block(block, height), templates.Tail())

	summary := blockring.Summary{
		Id:           block.Hash,
		Height:       height,
		Time:         block.Time,
		ProofOfStake: block.ProofOfStake,
		Transactions: len(block.Transactions),
		Amount:       block.TotalOutput(),
	}
	if ix.latest.Add(summary) {
		ix.stats.Put(blockring.Stat{
			Time:         ix.now().UnixNano() / 1000000,
			Size:         block.Size,
			ProofOfStake: block.ProofOfStake,
		})
	} else {
		log.Debugf("block: %s already listed", block.Hash)
	}

	if int64(height) > atomic.LoadInt64(&ix.height) {
		atomic.StoreInt64(&ix.height, int64(height))
		if err := ix.Counters.Put(heightKey, []byte(strconv.Itoa(height))); nil != err {
			log.Errorf("persist height: %d  error: %s", height, err)
		}
		metrics.IndexedHeight.Set(float64(height))
	}
	metrics.BlocksIndexed.Inc()

	ix.updateIndex(false)
	return nil
}

func (ix *Indexer) writeTransaction(height int, block *ledger.Block, tx *ledger.Transaction) {
	log := ix.log

	inputs := ix.resolveInputs(tx)

	// the last input that spends something from a known address pays
	source := noAddress
	for _, in := range inputs {
		if "" != in.Address && in.Value > 0 {
			source = in.Address
		}
	}

	// feed and vault records keep the text as sent, pages escape it
	raw := tx.Message
	message := templates.SafeDisplay(raw)
	txTime := tx.Time
	if 0 == txTime {
		txTime = block.Time
	}

	info := templates.TransactionInfo{
		Tx:        tx,
		Inputs:    inputs,
		BlockHash: block.Hash,
		Height:    height,
		Message:   message,
	}
	_ = ix.Documents.Write(tx.Hash, templates.Head("Transaction ID", false), templates.Transaction(info), templates.Tail())
	metrics.TransactionsIndexed.Inc()

	kind := feed.Classify(raw)

	if noAddress == source {
		for _, o := range tx.Outputs {
			if o.Value > 0 {
				if err := ix.RichList.AddSupply(currency.Coins(o.Value)); nil != err {
					log.Errorf("tx: %s  supply error: %s", tx.Hash, err)
				}
				break
			}
		}
	} else if "" != raw {
		ix.foldMessage(kind, source, block.Hash, txTime, tx, raw)
	}

	// staking transactions do not move balances between addresses
	if tx.HasEmptyOutput() {
		return
	}

	rowMessage := ""
	if feed.Public == kind {
		rowMessage = message
	}
	for _, o := range tx.Outputs {
		if o.Value <= 0 || "" == o.Address {
			continue
		}
		ix.addAddressTx(o.Address, source, o.Address, o.Value, tx.Hash, txTime, rowMessage)
		ix.addAddressTx(source, source, o.Address, -o.Value, tx.Hash, txTime, rowMessage)
	}
}

// fill in missing input addresses and values from the spent outputs
func (ix *Indexer) resolveInputs(tx *ledger.Transaction) []ledger.Input {
	inputs := make([]ledger.Input, len(tx.Inputs))
	copy(inputs, tx.Inputs)

	if tx.IsCoinBase() || nil == ix.Ledger {
		return inputs
	}

	for i := range inputs {
		in := &inputs[i]
		if "" != in.Address && 0 != in.Value {
			continue
		}
		prev, _, found := ix.Ledger.Transaction(in.PrevHash)
		if !found || nil == prev || int(in.PrevIndex) >= len(prev.Outputs) {
			ix.log.Debugf("tx: %s  unresolved input: %s:%d", tx.Hash, in.PrevHash, in.PrevIndex)
			continue
		}
		out := prev.Outputs[in.PrevIndex]
		if "" == in.Address {
			in.Address = out.Address
		}
		if 0 == in.Value {
			in.Value = out.Value
		}
	}
	return inputs
}

// put a public message into the feed or the vault, once per sender and
// block
func (ix *Indexer) foldMessage(kind feed.Kind, source string, blockId string, at int64, tx *ledger.Transaction, message string) {
	if feed.Hidden == kind || feed.Service == kind {
		return
	}
	if ix.Feed.Seen(source, blockId) || ix.Vault.Seen(source, blockId) {
		ix.log.Debugf("tx: %s  message already accepted for: %s", tx.Hash, source)
		return
	}

	to := make([]string, 0, len(tx.Outputs))
	amount := int64(0)
	for _, o := range tx.Outputs {
		if o.Value <= 0 {
			continue
		}
		amount += o.Value
		if "" != o.Address {
			to = append(to, o.Address)
		}
	}

	m := feed.Message{
		BlockId: blockId,
		Time:    at,
		From:    source,
		To:      strings.Join(to, " "),
		Amount:  currency.Format(amount),
		Text:    message,
	}

	if feed.Vault == kind {
		if _, err := ix.Vault.Publish(m); nil == err {
			metrics.MessagesAccepted.WithLabelValues("vault").Inc()
		}
		return
	}
	if _, err := ix.Feed.Accept(m); nil == err {
		metrics.MessagesAccepted.WithLabelValues("feed").Inc()
	}
}

// record one side of a payment in an address document
func (ix *Indexer) addAddressTx(address string, source string, destination string, amount int64, txId string, at int64, message string) {
	log := ix.log

	for _, a := range []string{source, destination} {
		if noAddress != a {
			ix.Registry.MarkKnown(a, registry.Address)
		}
	}

	fingerprint := txId + ":" + source + ":" + destination + ":" + strconv.FormatInt(amount, 10)
	if !ix.guard.Add(fingerprint) {
		log.Debugf("duplicate: %s", fingerprint)
		metrics.DuplicatesSuppressed.Inc()
		return
	}

	ix.Registry.MarkKnown(txId, registry.Transaction)

	if noAddress == address {
		return
	}

	_, err := ix.Documents.EnsureHead(address, templates.Head("Address "+address, false), templates.AddressHead(address, txId))
	if nil != err {
		log.Errorf("address: %s  head error: %s", address, err)
	}

	if _, err := ix.RichList.ApplyDelta(address, amount); nil != err {
		log.Errorf("address: %s  balance error: %s", address, err)
	}

	row := templates.Row{
		TxId:    txId,
		Time:    at,
		From:    source,
		To:      destination,
		Amount:  amount,
		Message: message,
	}
	if err := ix.Documents.Append(address, templates.AddressRow(row)); nil == err {
		metrics.AddressRows.Inc()
	}
}
