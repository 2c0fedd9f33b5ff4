// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package richlist - address balances ordered by size and the
// circulating supply
//
// the persisted per-address counters are the source of truth, the
// in-memory list is rebuilt from them at start up
package richlist

import (
	"sort"
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/biberhund/scashexplorer/counter"
	"github.com/biberhund/scashexplorer/currency"
	"github.com/biberhund/scashexplorer/storage"
)

// SupplyKey - counter holding the circulating supply in whole coins
const SupplyKey = "circulating_supply"

// Entry - balance of one address in ledger units
type Entry struct {
	Address string
	Balance int64
}

// Ranked - an entry of the top list
type Ranked struct {
	Rank       int
	Address    string
	Balance    int64
	Percentage float64 // of the circulating supply
}

// RichList - all addresses sorted by descending balance
type RichList struct {
	sync.RWMutex

	log      *logger.L
	balances storage.Handle
	counters storage.Handle

	entries  []Entry
	position map[string]int
	supply   int64
}

// New - create an empty list on top of the two pools
func New(balances storage.Handle, counters storage.Handle, log *logger.L) *RichList {
	return &RichList{
		log:      log,
		balances: balances,
		counters: counters,
		entries:  []Entry{},
		position: make(map[string]int),
	}
}

// ApplyDelta - add a signed amount to the balance of an address and
// return the new balance
//
// the in-memory balance only follows a persisted counter, on error it
// is unchanged and the previous balance is returned with the error
func (r *RichList) ApplyDelta(address string, delta int64) (int64, error) {
	r.Lock()
	defer r.Unlock()

	key := storage.SafeKey(address)
	balance, err := counter.Add(r.balances, key, delta)
	if nil != err {
		r.log.Errorf("address: %s  delta: %d  error: %s", address, delta, err)
		previous := int64(0)
		if i, ok := r.position[address]; ok {
			previous = r.entries[i].Balance
		}
		return previous, err
	}

	r.set(address, balance)
	return balance, nil
}

// must hold lock
func (r *RichList) set(address string, balance int64) {
	if i, ok := r.position[address]; ok {
		r.entries[i].Balance = balance
	} else {
		r.entries = append(r.entries, Entry{Address: address, Balance: balance})
	}

	r.reorder()
}

// descending balance, ties by address; must hold lock
func (r *RichList) reorder() {
	sort.Slice(r.entries, func(i, j int) bool {
		if r.entries[i].Balance != r.entries[j].Balance {
			return r.entries[i].Balance > r.entries[j].Balance
		}
		return r.entries[i].Address < r.entries[j].Address
	})
	for i, e := range r.entries {
		r.position[e.Address] = i
	}
}

// Balance - current balance of an address
func (r *RichList) Balance(address string) (int64, bool) {
	r.RLock()
	defer r.RUnlock()

	i, ok := r.position[address]
	if !ok {
		return 0, false
	}
	return r.entries[i].Balance, true
}

// Len - number of addresses
func (r *RichList) Len() int {
	r.RLock()
	defer r.RUnlock()
	return len(r.entries)
}

// Top - the n richest addresses with their share of the supply and the
// sum of their balances
func (r *RichList) Top(n int) ([]Ranked, int64) {
	r.RLock()
	defer r.RUnlock()

	if n > len(r.entries) {
		n = len(r.entries)
	}
	total := float64(r.supply) * currency.Coin

	sum := int64(0)
	ranked := make([]Ranked, 0, n)
	for i := 0; i < n; i += 1 {
		e := r.entries[i]
		p := 0.0
		if total > 0 {
			p = 100 * float64(e.Balance) / total
		}
		ranked = append(ranked, Ranked{
			Rank:       i + 1,
			Address:    e.Address,
			Balance:    e.Balance,
			Percentage: p,
		})
		sum += e.Balance
	}
	return ranked, sum
}

// AddSupply - add newly minted whole coins to the circulating supply
func (r *RichList) AddSupply(coins int64) error {
	r.Lock()
	defer r.Unlock()

	supply, err := counter.Add(r.counters, SupplyKey, coins)
	if nil != err {
		r.log.Errorf("supply: %d  error: %s", coins, err)
		return err
	}
	r.supply = supply
	return nil
}

// Supply - circulating supply in whole coins
func (r *RichList) Supply() int64 {
	r.RLock()
	defer r.RUnlock()
	return r.supply
}

// Reload - rebuild the list from the persisted counters
func (r *RichList) Reload() error {
	r.Lock()
	defer r.Unlock()

	r.log.Info("starting…")

	keys, err := r.balances.Keys()
	if nil != err {
		return err
	}

	r.entries = make([]Entry, 0, len(keys))
	r.position = make(map[string]int, len(keys))
	for _, key := range keys {
		balance, err := counter.Read(r.balances, key)
		if nil != err {
			r.log.Warnf("skip address: %s  error: %s", key, err)
			continue
		}
		r.entries = append(r.entries, Entry{Address: key, Balance: balance})
	}
	r.reorder()

	supply, err := counter.Read(r.counters, SupplyKey)
	if nil != err {
		r.log.Warnf("supply error: %s", err)
	}
	r.supply = supply

	r.log.Infof("addresses: %d  supply: %d", len(r.entries), r.supply)
	r.log.Info("finished")
	return nil
}
