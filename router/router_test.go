// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package router_test

import (
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/biberhund/scashexplorer/document"
	"github.com/biberhund/scashexplorer/feed"
	"github.com/biberhund/scashexplorer/fixtures"
	"github.com/biberhund/scashexplorer/indexer"
	"github.com/biberhund/scashexplorer/ledger"
	"github.com/biberhund/scashexplorer/ledger/mocks"
	"github.com/biberhund/scashexplorer/markup"
	"github.com/biberhund/scashexplorer/registry"
	"github.com/biberhund/scashexplorer/richlist"
	"github.com/biberhund/scashexplorer/router"
	"github.com/biberhund/scashexplorer/storage"
	"github.com/biberhund/scashexplorer/textrecord"
	"github.com/biberhund/scashexplorer/vault"
)

func handle(t *testing.T, name string, extension string) storage.Handle {
	h, err := storage.NewFileHandle(fixtures.Directory(name), extension)
	if nil != err {
		t.Fatalf("%s handle error: %s", name, err)
	}
	return h
}

func setupRouter(t *testing.T, l ledger.Ledger) (*router.Router, router.Components) {
	log := logger.New(fixtures.LogCategory)

	objects := handle(t, "blockexplorer", ".html")
	counters := handle(t, "webdb", "")
	namer := textrecord.NewNamer(nil)
	reg := registry.New(log)

	ic := indexer.Components{
		Ledger:    l,
		Registry:  reg,
		Documents: document.New(objects, reg, log),
		RichList:  richlist.New(handle(t, "richlist", ".html"), counters, log),
		Feed:      feed.New(handle(t, "messages", ".html"), namer, log),
		Vault:     vault.New(handle(t, "vault", ".html"), namer, log),
		Counters:  counters,
	}
	ix := indexer.New(ic, 5, time.Second, log)

	rc := router.Components{
		Ledger:    l,
		Registry:  reg,
		Documents: ic.Documents,
		Indexer:   ix,
		RichList:  ic.RichList,
		Feed:      ic.Feed,
		Vault:     ic.Vault,
	}
	return router.New(rc, time.Minute, time.Minute, log), rc
}

func paymentBlock() *ledger.Block {
	return &ledger.Block{
		Hash: fixtures.BlockId1,
		Time: 1500000000,
		Transactions: []ledger.Transaction{{
			Hash:    fixtures.TxId1,
			Time:    1500000000,
			Inputs:  []ledger.Input{{PrevHash: fixtures.TxId3, Address: fixtures.AddressA, Value: 500000000}},
			Outputs: []ledger.Output{{Value: 500000000, Address: fixtures.AddressB}},
		}},
	}
}

func TestResolveAddressDocument(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	chain := ledger.NewMemory()
	r, rc := setupRouter(t, chain)

	block := paymentBlock()
	assert.Nil(t, rc.Indexer.WriteBlock(0, block), "write block")

	chain.AddBlock(0, block)
	for i := 1; i < markup.ConfirmationThreshold; i += 1 {
		chain.AddBlock(i, &ledger.Block{Hash: fixtures.BlockId2})
	}

	reply := r.Resolve("/" + fixtures.AddressB + ".html")
	assert.Equal(t, http.StatusOK, reply.Status, "wrong status")
	assert.Equal(t, router.ContentHTML, reply.ContentType, "wrong content type")
	body := string(reply.Body)
	assert.Contains(t, body, "<td>Balance confirmed</td><td>5 SCS</td>", "balance not resolved")
	assert.NotContains(t, body, "<!--dynamic:", "directive left in reply")

	search := r.Resolve("/search?q=" + fixtures.AddressB)
	assert.Equal(t, reply, search, "search is not equivalent to the document")
}

func TestResolveIndexAndFixed(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	r, rc := setupRouter(t, ledger.NewMemory())
	assert.True(t, rc.Indexer.UpdateIndex(true), "rebuild")

	for _, path := range []string{"/", "/index.html", "/.html"} {
		reply := r.Resolve(path)
		assert.Equal(t, http.StatusOK, reply.Status, "%s: wrong status", path)
		assert.Contains(t, string(reply.Body), "Latest blocks", "%s: not the index", path)
	}

	css := r.Resolve("/mystyle.css")
	assert.Equal(t, router.ContentCSS, css.ContentType, "wrong css type")
	assert.True(t, strings.Contains(string(css.Body), ".rectangle-speech-border"), "wrong css")

	_ = rc.RichList.AddSupply(12)
	supply := r.Resolve("/circulatingsupply.txt")
	assert.Equal(t, router.ContentText, supply.ContentType, "wrong supply type")
	assert.Equal(t, "12", string(supply.Body), "wrong supply")

	stats := r.Resolve("/stats.html")
	assert.Contains(t, string(stats.Body), "Indexed height", "wrong stats page")

	rich := r.Resolve("/richlist.html")
	assert.Contains(t, string(rich.Body), "Richest", "wrong rich list page")

	v := r.Resolve("/vault.html")
	assert.Contains(t, string(v.Body), "<title>Scash Vault</title>", "wrong vault page")

	favicon := r.Resolve("/favicon.ico")
	assert.Equal(t, http.StatusNotFound, favicon.Status, "favicon found")
	assert.Equal(t, 0, len(favicon.Body), "favicon body")
}

func TestResolveNotFoundAndMalformed(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	r, _ := setupRouter(t, ledger.NewMemory())

	missing := r.Resolve("/" + fixtures.TxId2 + ".html")
	assert.Equal(t, http.StatusNotFound, missing.Status, "missing document found")
	assert.Contains(t, string(missing.Body), "not found: "+fixtures.TxId2+".html", "request not echoed")
	assert.Equal(t, uint64(0), r.Malformed(), "missing counted as malformed")

	malformed := r.Resolve("/nodot")
	assert.Equal(t, http.StatusNotFound, malformed.Status, "malformed found")
	assert.Equal(t, uint64(1), r.Malformed(), "malformed not counted")

	dirty := r.Resolve("/no-dot_here")
	assert.Equal(t, http.StatusNotFound, dirty.Status, "malformed found")
	assert.Contains(t, string(dirty.Body), "not found: nodothere</h3>", "malformed request not filtered")
	assert.Equal(t, uint64(2), r.Malformed(), "malformed not counted")

	escaped := r.Resolve("/search?q=%3Cb%3E")
	assert.NotContains(t, string(escaped.Body), "<b>", "request not escaped")
}

func TestBlockIndex(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	ctl := gomock.NewController(t)
	defer ctl.Finish()

	l := mocks.NewMockLedger(ctl)
	l.EXPECT().BestHeight().Return(10).AnyTimes()
	l.EXPECT().BlockHash(3).Return(fixtures.BlockId3, true).Times(1)
	l.EXPECT().BlockHash(4).Return("", false).Times(1)

	r, _ := setupRouter(t, l)

	tests := []struct {
		path string
		body string
	}{
		{"/api/block-index/3", `{"blockHash":"` + fixtures.BlockId3 + `"}`},
		{"/api/block-index/4", `{"status":"error"}`},
		{"/api/block-index/11", `{"status":"wrong block"}`},
		{"/api/block-index/-1", `{"status":"wrong block"}`},
		{"/api/block-index/x", `{"status":"wrong block"}`},
	}
	for _, item := range tests {
		reply := r.Resolve(item.path)
		assert.Equal(t, router.ContentJSON, reply.ContentType, "%s: wrong content type", item.path)
		assert.Equal(t, item.body, string(reply.Body), "%s: wrong body", item.path)
	}
}

func TestBlockIndexWithoutLedger(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	r, _ := setupRouter(t, nil)
	reply := r.Resolve("/api/block-index/1")
	assert.Equal(t, `{"status":"error"}`, string(reply.Body), "wrong body")
}

func TestSlowDocumentServedRaw(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	ctl := gomock.NewController(t)
	defer ctl.Finish()

	l := mocks.NewMockLedger(ctl)

	r, rc := setupRouter(t, l)
	r.SetSlowRequestCutoff(time.Nanosecond)

	raw := "<p>" + markup.TxState(fixtures.TxId1) + "</p>"
	assert.Nil(t, rc.Documents.Write(fixtures.TxId1, "", raw, ""), "write")

	// only the first request reaches the ledger
	l.EXPECT().Transaction(fixtures.TxId1).Return(nil, 0, false).Times(1)

	first := r.Resolve("/" + fixtures.TxId1 + ".html")
	assert.Contains(t, string(first.Body), "not found or not yet confirmed", "first request not resolved")

	second := r.Resolve("/" + fixtures.TxId1 + ".html")
	assert.Equal(t, raw, string(second.Body), "second request resolved")
}

func TestFastRawReplyResolvesAgain(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	ctl := gomock.NewController(t)
	defer ctl.Finish()

	l := mocks.NewMockLedger(ctl)

	r, rc := setupRouter(t, l)
	r.SetSlowRequestCutoff(time.Nanosecond)

	raw := "<p>" + markup.TxState(fixtures.TxId1) + "</p>"
	assert.Nil(t, rc.Documents.Write(fixtures.TxId1, "", raw, ""), "write")

	l.EXPECT().Transaction(fixtures.TxId1).Return(nil, 0, false).Times(2)

	first := r.Resolve("/" + fixtures.TxId1 + ".html")
	assert.Contains(t, string(first.Body), "not found or not yet confirmed", "first request not resolved")

	second := r.Resolve("/" + fixtures.TxId1 + ".html")
	assert.Equal(t, raw, string(second.Body), "second request resolved")

	// the raw reply was fast enough for the relaxed cutoff
	r.SetSlowRequestCutoff(time.Hour)

	third := r.Resolve("/" + fixtures.TxId1 + ".html")
	assert.Contains(t, string(third.Body), "not found or not yet confirmed", "document stuck raw")
}

func TestEmptySearchNotFound(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	r, _ := setupRouter(t, ledger.NewMemory())

	for _, path := range []string{"/search?q=", "/search?q=%20%20"} {
		reply := r.Resolve(path)
		assert.Equal(t, http.StatusNotFound, reply.Status, "empty search found: %s", path)
		assert.Contains(t, string(reply.Body), "not found: <i>empty</i>", "empty search not reported: %s", path)
	}
	assert.Equal(t, uint64(0), r.Malformed(), "empty search counted as malformed")
}

func TestDocumentSearch(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	r, rc := setupRouter(t, ledger.NewMemory())

	_, err := rc.Vault.Publish(feed.Message{
		BlockId: fixtures.BlockId1,
		Time:    1500000000,
		From:    fixtures.AddressA,
		Text:    "%VAULT\nNAME: annual report\nAUTHOR: Alice\nHASH: 0123456789abcdef",
	})
	assert.Nil(t, err, "publish")

	reply := r.Resolve("/doc?q=annual%20rep")
	assert.Equal(t, http.StatusOK, reply.Status, "wrong status")
	body := string(reply.Body)
	assert.Contains(t, body, "Name: annual report", "document not found")
	assert.Contains(t, body, "First publisher!", "missing provenance")
	assert.Contains(t, body, "<title>Scash Vault - Search annual rep</title>", "wrong title")
}
