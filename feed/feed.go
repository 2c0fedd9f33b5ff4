// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package feed - the most recent public messages attached to payments
package feed

import (
	"strconv"
	"strings"
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/biberhund/scashexplorer/storage"
	"github.com/biberhund/scashexplorer/textrecord"
)

// Capacity - number of messages kept in memory
const Capacity = 30

// message prefixes
const (
	HidePrefix    = "%HIDE"
	ServicePrefix = "%SERVICE"
	VaultPrefix   = "%VAULT"
)

// Kind - destination of a message
type Kind int

// message kinds
const (
	Public Kind = iota
	Hidden
	Service
	Vault
)

// Classify - decide where a message belongs from its prefix
func Classify(text string) Kind {
	switch {
	case strings.HasPrefix(text, HidePrefix):
		return Hidden
	case strings.HasPrefix(text, ServicePrefix):
		return Service
	case strings.HasPrefix(text, VaultPrefix):
		return Vault
	default:
		return Public
	}
}

// Message - a message with the payment that carried it
type Message struct {
	Name    string // record name, set when persisted
	BlockId string
	Time    int64
	From    string
	To      string
	Amount  string
	Text    string
}

// Feed - newest first list of accepted messages
type Feed struct {
	sync.RWMutex

	log      *logger.L
	handle   storage.Handle
	namer    *textrecord.Namer
	messages []Message
}

// New - create an empty feed persisting to handle
func New(handle storage.Handle, namer *textrecord.Namer, log *logger.L) *Feed {
	return &Feed{
		log:      log,
		handle:   handle,
		namer:    namer,
		messages: make([]Message, 0, Capacity),
	}
}

// Seen - true if a message from the sender in this block was already
// accepted
func (f *Feed) Seen(from string, blockId string) bool {
	f.RLock()
	defer f.RUnlock()

	for _, m := range f.messages {
		if from == m.From && blockId == m.BlockId {
			return true
		}
	}
	return false
}

// Accept - persist a message and put it at the front of the feed
func (f *Feed) Accept(message Message) (Message, error) {
	message.Name = f.namer.Next()

	err := f.handle.Put(message.Name, []byte(Encode(message)))
	if nil != err {
		f.log.Errorf("persist message: %s  error: %s", message.Name, err)
		return message, err
	}

	f.Lock()
	f.insert(message)
	f.Unlock()

	return message, nil
}

// must hold lock
func (f *Feed) insert(message Message) {
	f.messages = append(f.messages, Message{})
	copy(f.messages[1:], f.messages)
	f.messages[0] = message
	if len(f.messages) > Capacity {
		f.messages = f.messages[:Capacity]
	}
}

// Recent - copy of the feed, newest first
func (f *Feed) Recent() []Message {
	f.RLock()
	defer f.RUnlock()

	messages := make([]Message, len(f.messages))
	copy(messages, f.messages)
	return messages
}

// Len - number of messages in memory
func (f *Feed) Len() int {
	f.RLock()
	defer f.RUnlock()
	return len(f.messages)
}

// Reload - restore the newest messages from the persisted records
func (f *Feed) Reload() error {
	names, err := f.handle.Keys()
	if nil != err {
		return err
	}
	textrecord.SortNames(names)

	if len(names) > Capacity {
		names = names[len(names)-Capacity:]
	}

	f.Lock()
	defer f.Unlock()

	f.messages = f.messages[:0]
	for _, name := range names {
		data, err := f.handle.Get(name)
		if nil != err {
			f.log.Warnf("skip message: %s  error: %s", name, err)
			continue
		}
		m := Decode(string(data))
		m.Name = name
		f.insert(m)
	}
	f.log.Infof("reloaded: %d messages", len(f.messages))
	return nil
}

const messageHeader = "MESSAGE: "

// Encode - the persisted record of a message, the text comes last and
// is kept verbatim
func Encode(m Message) string {
	fields := textrecord.Fields{
		{Key: "block", Value: m.BlockId},
		{Key: "date", Value: strconv.FormatInt(m.Time, 10)},
		{Key: "from", Value: m.From},
		{Key: "to", Value: m.To},
		{Key: "amount", Value: m.Amount},
		{Key: textrecord.RemainingText, Value: messageHeader + m.Text},
	}
	return textrecord.Encode(fields)
}

// Decode - rebuild a message from its record
func Decode(record string) Message {
	fields := textrecord.Parse(record)
	t, _ := strconv.ParseInt(fields.Value("date"), 10, 64)
	m := Message{
		BlockId: fields.Value("block"),
		Time:    t,
		From:    fields.Value("from"),
		To:      fields.Value("to"),
		Amount:  fields.Value("amount"),
	}
	if i := strings.Index(record, "\n"+messageHeader); i >= 0 {
		m.Text = record[i+1+len(messageHeader):]
	} else {
		m.Text = fields.Value("message")
	}
	return m
}
