// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package indexer

import (
	"sync/atomic"
	"time"

	"github.com/biberhund/scashexplorer/messagebus"
	"github.com/biberhund/scashexplorer/metrics"
	"github.com/biberhund/scashexplorer/templates"
)

const rebuildCheckInterval = time.Second

// UpdateIndex - rebuild the landing and message pages, at most once
// per rebuild interval unless forced
//
// a throttled request is remembered and carried out by Run once the
// interval has passed
func (ix *Indexer) UpdateIndex(force bool) bool {
	ix.Lock()
	defer ix.Unlock()
	return ix.updateIndex(force)
}

// must hold indexer lock
func (ix *Indexer) updateIndex(force bool) bool {
	now := ix.now()

	ix.rebuild.Lock()
	if !force && now.Sub(ix.rebuild.last) < ix.rebuild.interval {
		ix.rebuild.pending = true
		ix.rebuild.Unlock()
		return false
	}
	ix.rebuild.last = now
	ix.rebuild.pending = false
	ix.rebuild.Unlock()

	landing := templates.LandingInfo{
		Network:   ix.stats.Network(),
		Supply:    ix.RichList.Supply(),
		Blocks:    ix.latest.Blocks(),
		Reloading: !ix.latest.Full(),
		Height:    int(atomic.LoadInt64(&ix.height)),
		Now:       now.Unix(),
	}
	_ = ix.Documents.Write(IndexId, templates.Head("", true), templates.Landing(landing), templates.Tail())

	messages := templates.MessagesInfo{
		Messages: ix.Feed.Recent(),
		Now:      now.Unix(),
	}
	_ = ix.Documents.Write(MessagesId, templates.Head("Messages", true), templates.Messages(messages), templates.Tail())

	metrics.Rebuilds.Inc()
	ix.log.Debugf("index rebuilt at height: %d", landing.Height)
	return true
}

// rebuild if a throttled request is due
func (ix *Indexer) flushPending() {
	ix.rebuild.Lock()
	due := ix.rebuild.pending && ix.now().Sub(ix.rebuild.last) >= ix.rebuild.interval
	ix.rebuild.Unlock()

	if due {
		ix.UpdateIndex(false)
	}
}

// Run - background process that indexes queued events and performs
// throttled rebuilds
func (ix *Indexer) Run(args interface{}, shutdown <-chan struct{}) {
	log := ix.log

	log.Info("starting…")

	var events <-chan messagebus.Message
	if nil != ix.Events {
		events = ix.Events.Chan()
	}

	ticker := time.NewTicker(rebuildCheckInterval)
	defer ticker.Stop()

loop:
	for {
		select {
		case <-shutdown:
			break loop

		case item := <-events:
			if nil == item.Event.Block {
				log.Warnf("from: %s  event without block at height: %d", item.From, item.Event.Height)
				continue loop
			}
			if err := ix.WriteBlock(item.Event.Height, item.Event.Block); nil != err {
				log.Errorf("from: %s  height: %d  error: %s", item.From, item.Event.Height, err)
			}

		case <-ticker.C:
			ix.flushPending()
		}
	}

	log.Info("finished")
}
