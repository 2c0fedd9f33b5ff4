// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"fmt"
	"io/ioutil"

	"github.com/bitmark-inc/logger"
	"github.com/urfave/cli"

	"github.com/biberhund/scashexplorer/document"
	"github.com/biberhund/scashexplorer/feed"
	"github.com/biberhund/scashexplorer/indexer"
	"github.com/biberhund/scashexplorer/ledger"
	"github.com/biberhund/scashexplorer/registry"
	"github.com/biberhund/scashexplorer/richlist"
	"github.com/biberhund/scashexplorer/storage"
	"github.com/biberhund/scashexplorer/textrecord"
	"github.com/biberhund/scashexplorer/vault"
)

type renderReply struct {
	Blocks    int `json:"blocks"`
	Failed    int `json:"failed"`
	Height    int `json:"height"`
	Objects   int `json:"objects"`
	Addresses int `json:"addresses"`
	Messages  int `json:"messages"`
	Documents int `json:"documents"`
}

// index events from a file, the events also form the chain that
// inputs are resolved against
func runRender(c *cli.Context) error {
	m := c.App.Metadata["config"].(*metadata)

	fileName := c.String("file")
	if "" == fileName {
		return fmt.Errorf("event file is required")
	}
	data, err := ioutil.ReadFile(fileName)
	if nil != err {
		return err
	}
	var events []ledger.Event
	err = json.Unmarshal(data, &events)
	if nil != err {
		return err
	}

	if err := openStorage(c); nil != err {
		return err
	}
	defer storage.Finalise()

	chain := ledger.NewMemory()
	namer := textrecord.NewNamer(nil)
	reg := registry.New(logger.New("registry"))
	components := indexer.Components{
		Ledger:    chain,
		Registry:  reg,
		Documents: document.New(storage.Pool.Objects, reg, logger.New("document")),
		RichList:  richlist.New(storage.Pool.RichList, storage.Pool.Counters, logger.New("richlist")),
		Feed:      feed.New(storage.Pool.Messages, namer, logger.New("feed")),
		Vault:     vault.New(storage.Pool.Vault, namer, logger.New("vault")),
		Counters:  storage.Pool.Counters,
	}
	ix := indexer.New(components, indexer.DefaultMaxLatestBlocks, indexer.DefaultRebuildInterval, logger.New("indexer"))
	if err := ix.Reload(storage.Pool.Objects); nil != err {
		return err
	}

	reply := renderReply{}
	for _, event := range events {
		if nil == event.Block {
			reply.Failed += 1
			continue
		}
		chain.AddBlock(event.Height, event.Block)
		err := ix.WriteBlock(event.Height, event.Block)
		if nil != err {
			reply.Failed += 1
			if m.verbose {
				fmt.Fprintf(m.e, "height: %d  error: %s\n", event.Height, err)
			}
			continue
		}
		reply.Blocks += 1
	}
	ix.UpdateIndex(true)

	reply.Height = ix.Height()
	reply.Objects = reg.Count()
	reply.Addresses = components.RichList.Len()
	reply.Messages = components.Feed.Len()
	reply.Documents = components.Vault.Len()
	return printJson(m.w, reply)
}
