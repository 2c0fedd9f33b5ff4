// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"sort"

	"github.com/urfave/cli"

	"github.com/biberhund/scashexplorer/storage"
)

type poolCount struct {
	Pool  string `json:"pool"`
	Count int    `json:"count"`
}

func runPools(c *cli.Context) error {
	m := c.App.Metadata["config"].(*metadata)

	if err := openStorage(c); nil != err {
		return err
	}
	defer storage.Finalise()

	counts := []poolCount{}
	for name, h := range storage.Handles() {
		keys, err := h.Keys()
		if nil != err {
			return err
		}
		counts = append(counts, poolCount{Pool: name, Count: len(keys)})
	}
	sort.Slice(counts, func(i, j int) bool {
		return counts[i].Pool < counts[j].Pool
	})

	if m.verbose {
		fmt.Fprintf(m.e, "pools: %d\n", len(counts))
	}
	return printJson(m.w, counts)
}

func runKeys(c *cli.Context) error {
	m := c.App.Metadata["config"].(*metadata)

	if err := openStorage(c); nil != err {
		return err
	}
	defer storage.Finalise()

	h, err := poolHandle(c.String("pool"))
	if nil != err {
		return err
	}
	keys, err := h.Keys()
	if nil != err {
		return err
	}
	sort.Strings(keys)

	for _, k := range keys {
		fmt.Fprintf(m.w, "%s\n", k)
	}
	return nil
}

func runGet(c *cli.Context) error {
	m := c.App.Metadata["config"].(*metadata)

	if err := openStorage(c); nil != err {
		return err
	}
	defer storage.Finalise()

	h, err := poolHandle(c.String("pool"))
	if nil != err {
		return err
	}
	data, err := h.Get(c.String("key"))
	if nil != err {
		return err
	}

	if m.verbose {
		fmt.Fprintf(m.e, "bytes: %d\n", len(data))
	}
	_, err = m.w.Write(data)
	return err
}
