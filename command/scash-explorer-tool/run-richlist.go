// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/bitmark-inc/logger"
	"github.com/urfave/cli"

	"github.com/biberhund/scashexplorer/richlist"
	"github.com/biberhund/scashexplorer/storage"
)

type richListReply struct {
	Supply  int64             `json:"supply"`
	Sum     int64             `json:"sum"`
	Entries []richlist.Ranked `json:"entries"`
}

func runRichList(c *cli.Context) error {
	m := c.App.Metadata["config"].(*metadata)

	if err := openStorage(c); nil != err {
		return err
	}
	defer storage.Finalise()

	r := richlist.New(storage.Pool.RichList, storage.Pool.Counters, logger.New("richlist"))
	if err := r.Reload(); nil != err {
		return err
	}

	entries, sum := r.Top(c.Int("count"))
	return printJson(m.w, richListReply{
		Supply:  r.Supply(),
		Sum:     sum,
		Entries: entries,
	})
}
