// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"encoding/json"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/biberhund/scashexplorer/fixtures"
)

const testDirectory = "testing"

func events() string {
	return `[
  {"height": 0, "block": {"hash": "` + fixtures.BlockId1 + `", "time": 1500000000, "transactions": [
    {"hash": "` + fixtures.TxId1 + `", "time": 1500000000,
     "inputs": [{"prev_hash": "0000000000000000000000000000000000000000000000000000000000000000"}],
     "outputs": [{"value": 1000000000, "address": "` + fixtures.AddressA + `"}]}]}},
  {"height": 1, "block": {"hash": "` + fixtures.BlockId2 + `", "time": 1500000060, "transactions": [
    {"hash": "` + fixtures.TxId2 + `", "time": 1500000060, "message": "hello there",
     "inputs": [{"prev_hash": "` + fixtures.TxId1 + `", "prev_index": 0}],
     "outputs": [{"value": 400000000, "address": "` + fixtures.AddressB + `"},
                 {"value": 600000000, "address": "` + fixtures.AddressA + `"}]}]}},
  {"height": 2}
]`
}

func run(t *testing.T, arguments ...string) (string, error) {
	var w, e bytes.Buffer
	app := newApp(&w, &e)
	args := append([]string{"scash-explorer-tool", "--log-directory", testDirectory}, arguments...)
	err := app.Run(args)
	return w.String(), err
}

func setup(t *testing.T) string {
	_ = os.RemoveAll(testDirectory)
	_ = os.MkdirAll(testDirectory, 0700)

	fileName := filepath.Join(testDirectory, "events.json")
	err := ioutil.WriteFile(fileName, []byte(events()), 0600)
	if nil != err {
		t.Fatalf("write events error: %s", err)
	}
	return fileName
}

func TestRenderAndInspect(t *testing.T) {
	fileName := setup(t)
	defer os.RemoveAll(testDirectory)

	storageFlags := []string{"--backend", "files", "--directory", filepath.Join(testDirectory, "data")}

	out, err := run(t, append([]string{"render", "--file", fileName}, storageFlags...)...)
	assert.Nil(t, err, "render")

	var reply renderReply
	err = json.Unmarshal([]byte(out), &reply)
	assert.Nil(t, err, "render reply: %s", out)
	assert.Equal(t, 2, reply.Blocks, "wrong block count")
	assert.Equal(t, 1, reply.Failed, "wrong failure count")
	assert.Equal(t, 1, reply.Height, "wrong height")
	assert.Equal(t, 2, reply.Addresses, "wrong address count")
	assert.Equal(t, 1, reply.Messages, "wrong message count")

	out, err = run(t, append([]string{"pools"}, storageFlags...)...)
	assert.Nil(t, err, "pools")
	assert.Contains(t, out, `"pool": "blockexplorer"`, "objects pool missing")

	out, err = run(t, append([]string{"keys", "--pool", "blockexplorer"}, storageFlags...)...)
	assert.Nil(t, err, "keys")
	assert.Contains(t, out, fixtures.TxId2+"\n", "transaction document missing")
	assert.Contains(t, out, "index\n", "index missing")

	out, err = run(t, append([]string{"get", "--pool", "blockexplorer", "--key", fixtures.TxId2}, storageFlags...)...)
	assert.Nil(t, err, "get")
	assert.True(t, strings.Contains(out, "hello there"), "message missing from transaction page")

	out, err = run(t, append([]string{"richlist", "--count", "1"}, storageFlags...)...)
	assert.Nil(t, err, "richlist")

	var rich richListReply
	err = json.Unmarshal([]byte(out), &rich)
	assert.Nil(t, err, "richlist reply: %s", out)
	assert.Equal(t, 1, len(rich.Entries), "wrong entry count")
	assert.Equal(t, fixtures.AddressA, rich.Entries[0].Address, "wrong richest address")
	assert.Equal(t, int64(10), rich.Supply, "wrong supply")
}

func TestUnknownPool(t *testing.T) {
	setup(t)
	defer os.RemoveAll(testDirectory)

	_, err := run(t, "keys", "--pool", "nothing", "--backend", "files", "--directory", filepath.Join(testDirectory, "data"))
	assert.NotNil(t, err, "unknown pool accepted")

	_, err = run(t, "pools")
	assert.NotNil(t, err, "missing directory accepted")
}
