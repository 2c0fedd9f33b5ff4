// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package indexer_test

import (
	"strings"
	"testing"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/stretchr/testify/assert"

	"github.com/biberhund/scashexplorer/background"
	"github.com/biberhund/scashexplorer/currency"
	"github.com/biberhund/scashexplorer/document"
	"github.com/biberhund/scashexplorer/feed"
	"github.com/biberhund/scashexplorer/fixtures"
	"github.com/biberhund/scashexplorer/indexer"
	"github.com/biberhund/scashexplorer/ledger"
	"github.com/biberhund/scashexplorer/markup"
	"github.com/biberhund/scashexplorer/messagebus"
	"github.com/biberhund/scashexplorer/registry"
	"github.com/biberhund/scashexplorer/richlist"
	"github.com/biberhund/scashexplorer/storage"
	"github.com/biberhund/scashexplorer/textrecord"
	"github.com/biberhund/scashexplorer/vault"
)

const nullHash = "0000000000000000000000000000000000000000000000000000000000000000"

type testIndex struct {
	*indexer.Indexer
	components indexer.Components
	objects    storage.Handle
	chain      *ledger.Memory
}

func handle(t *testing.T, name string, extension string) storage.Handle {
	h, err := storage.NewFileHandle(fixtures.Directory(name), extension)
	if nil != err {
		t.Fatalf("%s handle error: %s", name, err)
	}
	return h
}

func setupIndex(t *testing.T) *testIndex {
	log := logger.New(fixtures.LogCategory)

	objects := handle(t, "blockexplorer", ".html")
	counters := handle(t, "webdb", "")
	namer := textrecord.NewNamer(nil)
	chain := ledger.NewMemory()
	reg := registry.New(log)

	c := indexer.Components{
		Ledger:    chain,
		Registry:  reg,
		Documents: document.New(objects, reg, log),
		RichList:  richlist.New(handle(t, "richlist", ".html"), counters, log),
		Feed:      feed.New(handle(t, "messages", ".html"), namer, log),
		Vault:     vault.New(handle(t, "vault", ".html"), namer, log),
		Counters:  counters,
		Events:    messagebus.New(10),
	}
	return &testIndex{
		Indexer:    indexer.New(c, 3, time.Minute, log),
		components: c,
		objects:    objects,
		chain:      chain,
	}
}

func payment(hash string, from string, to string, units int64, message string) ledger.Transaction {
	return ledger.Transaction{
		Hash:    hash,
		Time:    1500000000,
		Message: message,
		Inputs:  []ledger.Input{{PrevHash: fixtures.TxId3, Address: from, Value: units}},
		Outputs: []ledger.Output{{Value: units, Address: to}},
	}
}

func readDocument(t *testing.T, ix *testIndex, id string) string {
	data, ok := ix.components.Documents.Read(id)
	if !ok {
		t.Fatalf("missing document: %s", id)
	}
	return string(data)
}

func TestWriteBlockPayment(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	ix := setupIndex(t)

	block := &ledger.Block{
		Hash:         fixtures.BlockId1,
		Time:         1500000000,
		Transactions: []ledger.Transaction{payment(fixtures.TxId1, fixtures.AddressA, fixtures.AddressB, 500000000, "")},
	}
	err := ix.WriteBlock(0, block)
	assert.Nil(t, err, "write block")

	balance, ok := ix.components.RichList.Balance(fixtures.AddressB)
	assert.True(t, ok, "receiver not listed")
	assert.Equal(t, int64(500000000), balance, "wrong receiver balance")
	balance, _ = ix.components.RichList.Balance(fixtures.AddressA)
	assert.Equal(t, int64(-500000000), balance, "wrong sender balance")

	b := readDocument(t, ix, fixtures.AddressB)
	assert.Contains(t, b, markup.AmountPlus(500000000), "missing credit")
	assert.Contains(t, b, markup.BalanceConfirmed(fixtures.AddressB), "missing confirmed balance directive")
	assert.Contains(t, b, `<a href="`+fixtures.TxId1+`.html">`, "transaction not linked")

	a := readDocument(t, ix, fixtures.AddressA)
	assert.Contains(t, a, markup.AmountMinus(500000000), "missing debit")

	for id, class := range map[string]registry.Class{
		fixtures.AddressA: registry.Address,
		fixtures.AddressB: registry.Address,
		fixtures.TxId1:    registry.Transaction,
		fixtures.BlockId1: registry.Block,
	} {
		actual, ok := ix.components.Registry.Classify(id)
		assert.True(t, ok, "%s not registered", id)
		assert.Equal(t, class, actual, "%s wrong class", id)
	}

	_ = readDocument(t, ix, fixtures.TxId1)
	_ = readDocument(t, ix, fixtures.BlockId1)
	assert.Equal(t, 0, ix.Height(), "wrong height")

	// six confirmations settle the balance
	ix.chain.AddBlock(0, block)
	for i := 1; i < markup.ConfirmationThreshold; i += 1 {
		ix.chain.AddBlock(i, &ledger.Block{Hash: fixtures.BlockId2})
	}
	r := markup.NewResolver(ix.chain, logger.New(fixtures.LogCategory))
	resolved := string(r.Resolve([]byte(b)))
	assert.Contains(t, resolved, "<td>Balance confirmed</td><td>5 SCS</td>", "wrong confirmed balance")
	assert.Contains(t, resolved, "6 confirmations", "wrong state")
}

func TestWriteBlockDuplicate(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	ix := setupIndex(t)

	block := &ledger.Block{
		Hash:         fixtures.BlockId1,
		Transactions: []ledger.Transaction{payment(fixtures.TxId1, fixtures.AddressA, fixtures.AddressB, 100, "")},
	}
	assert.Nil(t, ix.WriteBlock(0, block), "first write")
	assert.Nil(t, ix.WriteBlock(0, block), "second write")

	balance, _ := ix.components.RichList.Balance(fixtures.AddressB)
	assert.Equal(t, int64(100), balance, "duplicate changed balance")

	b := readDocument(t, ix, fixtures.AddressB)
	assert.Equal(t, 1, strings.Count(b, "amountplus"), "duplicate row appended")
	assert.Equal(t, 1, len(ix.LatestBlocks()), "duplicate block listed")
}

func TestWriteBlockInvalid(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	ix := setupIndex(t)
	assert.NotNil(t, ix.WriteBlock(0, nil), "nil block accepted")
	assert.NotNil(t, ix.WriteBlock(0, &ledger.Block{}), "block without hash accepted")
}

func TestCoinBaseSupply(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	ix := setupIndex(t)

	coinbase := ledger.Transaction{
		Hash:    fixtures.TxId2,
		Inputs:  []ledger.Input{{PrevHash: nullHash}},
		Outputs: []ledger.Output{{Value: 750000000, Address: fixtures.AddressC}},
	}
	block := &ledger.Block{Hash: fixtures.BlockId2, Transactions: []ledger.Transaction{coinbase}}
	assert.Nil(t, ix.WriteBlock(1, block), "write")

	assert.Equal(t, int64(7), ix.components.RichList.Supply(), "wrong supply")
	balance, _ := ix.components.RichList.Balance(fixtures.AddressC)
	assert.Equal(t, int64(750000000), balance, "miner not credited")
}

func TestStakingSkipsBalances(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	ix := setupIndex(t)

	stake := ledger.Transaction{
		Hash:    fixtures.TxId1,
		Inputs:  []ledger.Input{{PrevHash: fixtures.TxId3, Address: fixtures.AddressA, Value: 500}},
		Outputs: []ledger.Output{{}, {Value: 600, Address: fixtures.AddressA}},
	}
	assert.Nil(t, ix.WriteBlock(0, &ledger.Block{Hash: fixtures.BlockId1, Transactions: []ledger.Transaction{stake}}), "write")

	_, ok := ix.components.RichList.Balance(fixtures.AddressA)
	assert.False(t, ok, "staking moved a balance")
	assert.Equal(t, int64(0), ix.components.RichList.Supply(), "staking added supply")
}

func TestInputsResolvedFromLedger(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	ix := setupIndex(t)

	ix.chain.AddPending(ledger.Transaction{
		Hash:    fixtures.TxId3,
		Outputs: []ledger.Output{{Value: 9, Address: fixtures.AddressD}},
	})

	tx := ledger.Transaction{
		Hash:    fixtures.TxId1,
		Inputs:  []ledger.Input{{PrevHash: fixtures.TxId3, PrevIndex: 0}},
		Outputs: []ledger.Output{{Value: 9, Address: fixtures.AddressB}},
	}
	assert.Nil(t, ix.WriteBlock(0, &ledger.Block{Hash: fixtures.BlockId1, Transactions: []ledger.Transaction{tx}}), "write")

	balance, _ := ix.components.RichList.Balance(fixtures.AddressD)
	assert.Equal(t, int64(-9), balance, "source not resolved")
	assert.Equal(t, int64(0), ix.components.RichList.Supply(), "resolved payment counted as supply")
}

func TestMessages(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	ix := setupIndex(t)

	block := &ledger.Block{
		Hash: fixtures.BlockId1,
		Transactions: []ledger.Transaction{
			payment(fixtures.TxId1, fixtures.AddressA, fixtures.AddressB, 500000000, "hello <world>"),
			payment(fixtures.TxId2, fixtures.AddressA, fixtures.AddressC, 100, "again"),
			payment(fixtures.TxId3, fixtures.AddressB, fixtures.AddressC, 100, "%HIDE secret"),
		},
	}
	assert.Nil(t, ix.WriteBlock(0, block), "write")

	recent := ix.components.Feed.Recent()
	assert.Equal(t, 1, len(recent), "wrong message count")
	assert.Equal(t, "hello <world>", recent[0].Text, "feed record not kept as sent")
	assert.Equal(t, fixtures.AddressA, recent[0].From, "wrong sender")
	assert.Equal(t, fixtures.AddressB, recent[0].To, "wrong receiver")
	assert.Equal(t, "5 SCS", recent[0].Amount, "wrong amount")

	c := readDocument(t, ix, fixtures.AddressC)
	assert.NotContains(t, c, "secret", "hidden message shown")

	vaultBlock := &ledger.Block{
		Hash:         fixtures.BlockId2,
		Transactions: []ledger.Transaction{payment(fixtures.TxId2, fixtures.AddressD, fixtures.AddressA, 1, "%VAULT\nNAME: paper\nHASH: abcdef")},
	}
	assert.Nil(t, ix.WriteBlock(1, vaultBlock), "write vault block")
	assert.Equal(t, 1, ix.components.Vault.Len(), "document not published")
	assert.Equal(t, 1, ix.components.Feed.Len(), "vault message in feed")

	ix.UpdateIndex(true)
	page := readDocument(t, ix, indexer.MessagesId)
	assert.Contains(t, page, "hello &lt;world&gt;", "message not escaped on the page")
	assert.NotContains(t, page, "hello <world>", "raw message on the page")
}

func TestVaultKeepsTextAsSent(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	ix := setupIndex(t)

	block := &ledger.Block{
		Hash:         fixtures.BlockId1,
		Transactions: []ledger.Transaction{payment(fixtures.TxId1, fixtures.AddressA, fixtures.AddressB, 1, "%VAULT\nNAME: Terms & Conditions\nAUTHOR: O'Brien & Sons\nHASH: abcdef")},
	}
	assert.Nil(t, ix.WriteBlock(0, block), "write")

	documents, _ := ix.components.Vault.List(1)
	assert.Equal(t, 1, len(documents), "document not published")
	assert.Equal(t, "O'Brien & Sons", documents[0].Author, "author stored escaped")

	result := ix.components.Vault.Find("O'Brien")
	assert.True(t, result.ByAuthor, "author with apostrophe not found")
	assert.Equal(t, 1, len(result.Matches), "wrong match count")

	result = ix.components.Vault.Find("Terms & C")
	assert.True(t, result.ByName, "name with ampersand not found")
}

func TestUpdateIndexThrottle(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	ix := setupIndex(t)

	now := time.Unix(1500000000, 0)
	ix.SetClock(func() time.Time { return now })

	assert.True(t, ix.UpdateIndex(true), "forced rebuild skipped")
	assert.False(t, ix.UpdateIndex(false), "rebuild not throttled")

	now = now.Add(2 * time.Minute)
	assert.True(t, ix.UpdateIndex(false), "rebuild after interval skipped")

	index := readDocument(t, ix, indexer.IndexId)
	assert.Contains(t, index, "Latest blocks", "wrong index page")
	assert.Contains(t, index, "being rebuilt", "missing reload notice")
	messages := readDocument(t, ix, indexer.MessagesId)
	assert.Contains(t, messages, "<title>Scash Block Explorer - Messages</title>", "wrong messages page")
}

func TestReload(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	ix := setupIndex(t)
	block := &ledger.Block{
		Hash:         fixtures.BlockId1,
		Transactions: []ledger.Transaction{payment(fixtures.TxId1, fixtures.AddressA, fixtures.AddressB, 100, "reloaded")},
	}
	assert.Nil(t, ix.WriteBlock(4, block), "write")

	again := setupIndex(t)
	assert.Equal(t, -1, again.Height(), "height before reload")
	assert.Nil(t, again.Reload(again.objects), "reload")

	assert.Equal(t, 4, again.Height(), "height not restored")
	class, ok := again.components.Registry.Classify(fixtures.AddressB)
	assert.True(t, ok, "address not restored")
	assert.Equal(t, registry.Address, class, "wrong restored class")
	balance, _ := again.components.RichList.Balance(fixtures.AddressB)
	assert.Equal(t, int64(100), balance, "balance not restored")
	assert.Equal(t, 1, again.components.Feed.Len(), "feed not restored")
}

func TestRunIndexesEvents(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	ix := setupIndex(t)

	block := &ledger.Block{
		Hash:         fixtures.BlockId3,
		Transactions: []ledger.Transaction{payment(fixtures.TxId1, fixtures.AddressA, fixtures.AddressB, 1*currency.Coin, "")},
	}
	ix.components.Events.Send("test", ledger.Event{Height: 9})
	ix.components.Events.Send("test", ledger.Event{Height: 10, Block: block})

	processes := background.Start(background.Processes{ix}, nil)
	defer processes.Stop()

	deadline := time.Now().Add(5 * time.Second)
	for ix.Height() != 10 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	assert.Equal(t, 10, ix.Height(), "event not indexed")
}
