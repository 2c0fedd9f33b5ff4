// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package indexer - turns ledger blocks into documents and index
// entries
//
// the indexer is the only writer, it holds its lock for the whole of
// one block or one rebuild
package indexer

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/biberhund/scashexplorer/blockring"
	"github.com/biberhund/scashexplorer/counter"
	"github.com/biberhund/scashexplorer/document"
	"github.com/biberhund/scashexplorer/feed"
	"github.com/biberhund/scashexplorer/ledger"
	"github.com/biberhund/scashexplorer/limitedset"
	"github.com/biberhund/scashexplorer/messagebus"
	"github.com/biberhund/scashexplorer/metrics"
	"github.com/biberhund/scashexplorer/registry"
	"github.com/biberhund/scashexplorer/richlist"
	"github.com/biberhund/scashexplorer/storage"
	"github.com/biberhund/scashexplorer/vault"
)

// defaults
const (
	DefaultMaxLatestBlocks = 10
	DefaultRebuildInterval = 10 * time.Second

	duplicateGuardSize = 100
	heightKey          = "indexed_height"
	noAddress          = "no address"
)

// generated documents
const (
	IndexId    = "index"
	MessagesId = "messages"
)

// Components - the stores the indexer writes to
type Components struct {
	Ledger    ledger.Ledger
	Registry  *registry.Registry
	Documents *document.Store
	RichList  *richlist.RichList
	Feed      *feed.Feed
	Vault     *vault.Vault
	Counters  storage.Handle
	Events    *messagebus.Queue
}

// Indexer - the single writer of the index
type Indexer struct {
	sync.Mutex

	log *logger.L
	Components

	guard  *limitedset.LimitedSet
	stats  *blockring.Ring
	latest *blockring.Latest

	height int64 // atomic
	now    func() time.Time

	rebuild struct {
		sync.Mutex
		interval time.Duration
		last     time.Time
		pending  bool
	}
}

// New - create an indexer
func New(c Components, maxLatestBlocks int, rebuildInterval time.Duration, log *logger.L) *Indexer {
	if maxLatestBlocks < 1 {
		maxLatestBlocks = DefaultMaxLatestBlocks
	}
	if rebuildInterval <= 0 {
		rebuildInterval = DefaultRebuildInterval
	}
	ix := &Indexer{
		log:        log,
		Components: c,
		guard:      limitedset.New(duplicateGuardSize),
		stats:      blockring.New(),
		latest:     blockring.NewLatest(maxLatestBlocks),
		height:     -1,
		now:        time.Now,
	}
	ix.rebuild.interval = rebuildInterval
	return ix
}

// Reload - restore every in-memory index from persisted data
func (ix *Indexer) Reload(objects storage.Handle) error {
	ix.Lock()
	defer ix.Unlock()

	ix.log.Info("reloading…")

	if err := ix.Registry.Reload(objects); nil != err {
		return err
	}
	if err := ix.RichList.Reload(); nil != err {
		return err
	}
	if err := ix.Feed.Reload(); nil != err {
		return err
	}
	if err := ix.Vault.Reload(); nil != err {
		return err
	}

	h, err := counter.Read(ix.Counters, heightKey)
	if nil != err {
		ix.log.Warnf("height error: %s", err)
	} else if h > 0 {
		atomic.StoreInt64(&ix.height, h)
		metrics.IndexedHeight.Set(float64(h))
	}

	ix.log.Infof("reloaded up to height: %d", atomic.LoadInt64(&ix.height))
	return nil
}

// SetRebuildInterval - minimum time between two landing page rebuilds
func (ix *Indexer) SetRebuildInterval(interval time.Duration) {
	if interval <= 0 {
		return
	}
	ix.rebuild.Lock()
	ix.rebuild.interval = interval
	ix.rebuild.Unlock()
}

// SetMaxLatestBlocks - number of blocks on the landing page
func (ix *Indexer) SetMaxLatestBlocks(n int) {
	ix.latest.Resize(n)
}

// LatestBlocks - copy of the landing page rows
func (ix *Indexer) LatestBlocks() []blockring.Summary {
	return ix.latest.Blocks()
}

// NetworkStats - averages over the recent blocks
func (ix *Indexer) NetworkStats() blockring.Network {
	return ix.stats.Network()
}

// Height - highest indexed block, -1 before the first block
func (ix *Indexer) Height() int {
	return int(atomic.LoadInt64(&ix.height))
}
