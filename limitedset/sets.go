// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package limitedset - a fixed capacity set that forgets its oldest
// member when full
//
// Used as a best-effort duplicate guard: an item only counts as a
// duplicate while it is among the most recent n distinct items.
package limitedset

import (
	"container/ring"
	"sync"
)

// LimitedSet - set of at most size strings
type LimitedSet struct {
	sync.Mutex
	size int
	ring *ring.Ring
	hash map[string]*ring.Ring
}

// New - create a new limited set that holds up to 'n' items
func New(n int) *LimitedSet {
	if n < 1 {
		n = 1
	}
	return &LimitedSet{
		size: n,
		ring: ring.New(n),
		hash: make(map[string]*ring.Ring),
	}
}

// Add - insert an item
//
// returns false if the item was already present, in which case its
// age is unchanged; otherwise the oldest item may be evicted
func (ls *LimitedSet) Add(item string) bool {
	ls.Lock()
	defer ls.Unlock()
	if _, ok := ls.hash[item]; ok {
		return false
	}
	if oldItem, ok := ls.ring.Value.(string); ok {
		delete(ls.hash, oldItem)
	}
	ls.ring.Value = item
	ls.hash[item] = ls.ring
	ls.ring = ls.ring.Next()
	return true
}

// Exists - check to see if item is in the set
func (ls *LimitedSet) Exists(item string) bool {
	ls.Lock()
	defer ls.Unlock()
	_, ok := ls.hash[item]
	return ok
}

// Len - number of items currently held
func (ls *LimitedSet) Len() int {
	ls.Lock()
	defer ls.Unlock()
	return len(ls.hash)
}
