// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package vault_test

import (
	"testing"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/stretchr/testify/assert"

	"github.com/biberhund/scashexplorer/feed"
	"github.com/biberhund/scashexplorer/fixtures"
	"github.com/biberhund/scashexplorer/storage"
	"github.com/biberhund/scashexplorer/textrecord"
	"github.com/biberhund/scashexplorer/vault"
)

const (
	hashOne = "a1b2c3d4e5f60718293a4b5c6d7e8f90a1b2c3d4e5f60718293a4b5c6d7e8f90"
	hashTwo = "ffeeddccbbaa99887766554433221100ffeeddccbbaa99887766554433221100"
)

func setupVault(t *testing.T) (*vault.Vault, storage.Handle) {
	h, err := storage.NewFileHandle(fixtures.Directory("vault"), ".html")
	if nil != err {
		t.Fatalf("handle error: %s", err)
	}
	clock := func() time.Time { return time.Unix(1500000000, 0) }
	return vault.New(h, textrecord.NewNamer(clock), logger.New(fixtures.LogCategory)), h
}

func publication(from string, at int64, text string) feed.Message {
	return feed.Message{
		BlockId: fixtures.BlockId1,
		Time:    at,
		From:    from,
		To:      fixtures.AddressD,
		Amount:  "0.001 SCS",
		Text:    text,
	}
}

func TestPublish(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	v, _ := setupVault(t)

	text := "%VAULT\n\nNAME: whitepaper.pdf\nVERSION: 1.0\nAUTHOR: Alice\nHASH: a1b2c3d4e5f60718293a4b5c6d7e8f90 a1b2c3d4e5f60718293a4b5c6d7e8f90\nCOMMENT: first draft"
	d, err := v.Publish(publication(fixtures.AddressA, 100, text))
	assert.Nil(t, err, "publish")
	assert.Equal(t, "whitepaper.pdf", d.DocName, "wrong name")
	assert.Equal(t, "1.0", d.Version, "wrong version")
	assert.Equal(t, "Alice", d.Author, "wrong author")
	assert.Equal(t, hashOne, d.Hash, "spaces not removed from hash")
	assert.Equal(t, "first draft", d.Comment, "wrong comment")
	assert.Equal(t, "NAME: whitepaper.pdf", d.Body[:len("NAME: whitepaper.pdf")], "prefix not removed")

	assert.True(t, v.Seen(fixtures.AddressA, fixtures.BlockId1), "not seen")

	list, total := v.List(10)
	assert.Equal(t, 1, total, "wrong total")
	assert.Equal(t, d, list[0], "wrong listed document")
}

func TestReload(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	v, _ := setupVault(t)
	_, _ = v.Publish(publication(fixtures.AddressA, 100, "%VAULT\nNAME: one\nHASH: "+hashOne))
	_, _ = v.Publish(publication(fixtures.AddressB, 200, "%VAULT\nNAME: two\nHASH: "+hashTwo))

	expected, _ := v.List(-1)

	reloaded, _ := setupVault(t)
	err := reloaded.Reload()
	assert.Nil(t, err, "reload")

	actual, total := reloaded.List(-1)
	assert.Equal(t, 2, total, "wrong total")
	assert.Equal(t, expected, actual, "wrong reload")
	assert.Equal(t, "two", actual[0].DocName, "wrong order")
}

func TestFindShortQuery(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	v, _ := setupVault(t)
	_, _ = v.Publish(publication(fixtures.AddressA, 100, "%VAULT\nNAME: abcd\nHASH: "+hashOne))

	result := v.Find("abcd")
	assert.Equal(t, 0, len(result.Matches), "short query matched")
}

func TestFindByHashFlagsCopy(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	v, _ := setupVault(t)
	_, _ = v.Publish(publication(fixtures.AddressA, 100, "%VAULT\nNAME: report.doc\nAUTHOR: Alice\nHASH: "+hashOne))
	_, _ = v.Publish(publication(fixtures.AddressB, 200, "%VAULT\nNAME: my-report.doc\nAUTHOR: Mallory\nHASH: "+hashOne))

	result := v.Find(hashOne[:10])
	assert.True(t, result.ByHash, "not matched by hash")
	assert.False(t, result.SameHashDifferentNames, "hash search warned about names")
	assert.Equal(t, 2, len(result.Matches), "wrong match count")

	first := result.Matches[0]
	assert.Equal(t, "Alice", first.Author, "wrong original")
	assert.True(t, first.Notes.Has(vault.FirstPublisher), "original not flagged")

	second := result.Matches[1]
	assert.Equal(t, "Mallory", second.Author, "wrong copy")
	assert.True(t, second.Notes.Has(vault.DifferentAuthor), "copy author not flagged")
	assert.True(t, second.Notes.Has(vault.SameHashDifferentIdentity), "copy identity not flagged")
	assert.False(t, second.Notes.Has(vault.DifferentContent), "same hash flagged as different")
}

func TestFindByNamePullsInSameHash(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	v, _ := setupVault(t)
	_, _ = v.Publish(publication(fixtures.AddressA, 100, "%VAULT\nNAME: contract.txt\nAUTHOR: Alice\nHASH: "+hashOne))
	_, _ = v.Publish(publication(fixtures.AddressB, 200, "%VAULT\nNAME: renamed.txt\nAUTHOR: Bob\nHASH: "+hashOne))
	_, _ = v.Publish(publication(fixtures.AddressC, 300, "%VAULT\nNAME: contract.txt\nAUTHOR: Carol\nHASH: "+hashTwo))

	result := v.Find("CONTRACT")
	assert.True(t, result.ByName, "not matched by name")
	assert.False(t, result.ByAuthor, "matched by author")
	assert.Equal(t, 3, len(result.Matches), "same hash not pulled in")

	assert.Equal(t, "Alice", result.Matches[0].Author, "wrong first")
	assert.Equal(t, "Bob", result.Matches[1].Author, "wrong second")
	assert.Equal(t, "Carol", result.Matches[2].Author, "wrong third")
	assert.False(t, result.SameHashDifferentNames, "earliest publication has the searched name")
	assert.True(t, result.Matches[2].Notes.Has(vault.DifferentContent), "different hash not flagged")
}

func TestFindByAuthor(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	v, _ := setupVault(t)
	_, _ = v.Publish(publication(fixtures.AddressA, 100, "%VAULT\nNAME: one\nAUTHOR: Alice Smith\nHASH: "+hashOne))
	_, _ = v.Publish(publication(fixtures.AddressA, 200, "%VAULT\nNAME: two\nAUTHOR: Alice Smith\nHASH: "+hashTwo))

	result := v.Find("alice")
	assert.True(t, result.ByAuthor, "not matched by author")
	assert.Equal(t, 2, len(result.Matches), "wrong count")
	assert.False(t, result.Matches[0].Notes.Has(vault.FirstPublisher), "author search flags first publisher")
	assert.True(t, result.Matches[1].Notes.Has(vault.DifferentContent), "other document not flagged")
	assert.False(t, result.Matches[1].Notes.Has(vault.DifferentAuthor), "same author flagged")
}

func TestFindWarnsWhenFirstPublishedUnderOtherName(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	v, _ := setupVault(t)
	_, _ = v.Publish(publication(fixtures.AddressA, 100, "%VAULT\nNAME: original.txt\nAUTHOR: Alice\nHASH: "+hashOne))
	_, _ = v.Publish(publication(fixtures.AddressB, 200, "%VAULT\nNAME: contract-copy.txt\nAUTHOR: Bob\nHASH: "+hashOne))

	result := v.Find("contract")
	assert.Equal(t, 2, len(result.Matches), "same hash not pulled in")
	assert.Equal(t, "original.txt", result.Matches[0].DocName, "wrong first")
	assert.True(t, result.SameHashDifferentNames, "renamed copy not reported")
}

func TestFindNoWarningWhenFirstNameMatches(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	v, _ := setupVault(t)
	_, _ = v.Publish(publication(fixtures.AddressA, 100, "%VAULT\nNAME: Contract\nAUTHOR: Alice\nHASH: "+hashOne))
	_, _ = v.Publish(publication(fixtures.AddressB, 200, "%VAULT\nNAME: ContractCopy\nAUTHOR: Bob\nHASH: "+hashOne))

	result := v.Find("contract")
	assert.Equal(t, 2, len(result.Matches), "wrong count")
	assert.Equal(t, "Contract", result.Matches[0].DocName, "wrong first")
	assert.False(t, result.SameHashDifferentNames, "warned although the first name matches")
}
