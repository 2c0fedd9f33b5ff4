// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package vault - documents published through payment messages
//
// A vault message starts with "%VAULT" and carries NAME, VERSION,
// AUTHOR, HASH and COMMENT fields.  Nothing is ever removed, the
// earliest publication of a hash establishes provenance.
package vault

import (
	"strings"
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/biberhund/scashexplorer/feed"
	"github.com/biberhund/scashexplorer/storage"
	"github.com/biberhund/scashexplorer/textrecord"
)

// Document - one publication
type Document struct {
	Name    string // record name
	BlockId string
	Time    int64
	From    string
	To      string
	Amount  string

	Hash    string
	DocName string
	Version string
	Author  string
	Comment string
	Body    string // message text without the vault prefix
}

// Vault - all publications, newest first
type Vault struct {
	sync.RWMutex

	log       *logger.L
	handle    storage.Handle
	namer     *textrecord.Namer
	documents []Document
}

// New - create an empty vault persisting to handle
func New(handle storage.Handle, namer *textrecord.Namer, log *logger.L) *Vault {
	return &Vault{
		log:       log,
		handle:    handle,
		namer:     namer,
		documents: []Document{},
	}
}

// Seen - true if the sender already published in this block
func (v *Vault) Seen(from string, blockId string) bool {
	v.RLock()
	defer v.RUnlock()

	for _, d := range v.documents {
		if from == d.From && blockId == d.BlockId {
			return true
		}
	}
	return false
}

// Publish - persist a vault message as a new document
func (v *Vault) Publish(message feed.Message) (Document, error) {
	body := strings.TrimPrefix(message.Text, feed.VaultPrefix)
	body = strings.TrimLeft(body, "\r\n")

	d := Document{
		Name:    v.namer.Next(),
		BlockId: message.BlockId,
		Time:    message.Time,
		From:    message.From,
		To:      message.To,
		Amount:  message.Amount,
		Body:    body,
	}
	d.parseBody()

	err := v.handle.Put(d.Name, []byte(Encode(d)))
	if nil != err {
		v.log.Errorf("persist document: %s  error: %s", d.Name, err)
		return d, err
	}

	v.Lock()
	v.documents = append(v.documents, Document{})
	copy(v.documents[1:], v.documents)
	v.documents[0] = d
	v.Unlock()

	v.log.Infof("published: %q  hash: %s  record: %s", d.DocName, d.Hash, d.Name)
	return d, nil
}

func (d *Document) parseBody() {
	fields := textrecord.Parse(d.Body)
	d.Hash = strings.Replace(fields.Value("hash"), " ", "", -1)
	d.DocName = fields.Value("name")
	d.Version = fields.Value("version")
	d.Author = fields.Value("author")
	d.Comment = fields.Value("comment")
}

// List - up to n documents newest first and the total count
func (v *Vault) List(n int) ([]Document, int) {
	v.RLock()
	defer v.RUnlock()

	total := len(v.documents)
	if n > total || n < 0 {
		n = total
	}
	documents := make([]Document, n)
	copy(documents, v.documents[:n])
	return documents, total
}

// Len - number of documents
func (v *Vault) Len() int {
	v.RLock()
	defer v.RUnlock()
	return len(v.documents)
}

// Reload - restore every document from the persisted records
func (v *Vault) Reload() error {
	names, err := v.handle.Keys()
	if nil != err {
		return err
	}
	textrecord.SortNames(names)

	documents := make([]Document, 0, len(names))
	for i := len(names) - 1; i >= 0; i -= 1 {
		data, err := v.handle.Get(names[i])
		if nil != err {
			v.log.Warnf("skip document: %s  error: %s", names[i], err)
			continue
		}
		d := Decode(string(data))
		d.Name = names[i]
		documents = append(documents, d)
	}

	v.Lock()
	v.documents = documents
	v.Unlock()

	v.log.Infof("reloaded: %d documents", len(documents))
	return nil
}

// Encode - the persisted record, payment fields then the verbatim body
func Encode(d Document) string {
	fields := textrecord.Fields{
		{Key: "block", Value: d.BlockId},
		{Key: "date", Value: formatInt(d.Time)},
		{Key: "from", Value: d.From},
		{Key: "to", Value: d.To},
		{Key: "amount", Value: d.Amount},
		{Key: textrecord.RemainingText, Value: d.Body},
	}
	return textrecord.Encode(fields)
}

// Decode - rebuild a document from its record
func Decode(record string) Document {
	fields := textrecord.Parse(record)
	d := Document{
		BlockId: fields.Value("block"),
		Time:    parseInt(fields.Value("date")),
		From:    fields.Value("from"),
		To:      fields.Value("to"),
		Amount:  fields.Value("amount"),
	}

	// the body follows the fifth header line
	rest := record
	for i := 0; i < 5; i += 1 {
		n := strings.Index(rest, "\n")
		if n < 0 {
			rest = ""
			break
		}
		rest = rest[n+1:]
	}
	d.Body = rest
	d.parseBody()
	return d
}
