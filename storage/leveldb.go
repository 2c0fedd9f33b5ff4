// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"sync"

	"github.com/syndtr/goleveldb/leveldb"
	ldb_util "github.com/syndtr/goleveldb/leveldb/util"

	"github.com/biberhund/scashexplorer/fault"
)

type levelHandle struct {
	sync.Mutex // serialises read-modify-write
	prefix     byte
	limit      []byte
	database   *leveldb.DB
}

// prepend the prefix onto the key
func (p *levelHandle) prefixKey(key string) []byte {
	prefixedKey := make([]byte, 1, len(key)+1)
	prefixedKey[0] = p.prefix
	return append(prefixedKey, key...)
}

func (p *levelHandle) db() (*leveldb.DB, error) {
	poolData.RLock()
	defer poolData.RUnlock()
	if nil == p.database || nil == poolData.database {
		return nil, fault.NotInitialised
	}
	return p.database, nil
}

func (p *levelHandle) Get(key string) ([]byte, error) {
	if err := validateKey(key); nil != err {
		return nil, err
	}
	db, err := p.db()
	if nil != err {
		return nil, err
	}
	value, err := db.Get(p.prefixKey(key), nil)
	if leveldb.ErrNotFound == err {
		return nil, fault.KeyNotFound
	}
	return value, err
}

func (p *levelHandle) Has(key string) bool {
	if nil != validateKey(key) {
		return false
	}
	db, err := p.db()
	if nil != err {
		return false
	}
	found, err := db.Has(p.prefixKey(key), nil)
	return nil == err && found
}

func (p *levelHandle) Put(key string, value []byte) error {
	if err := validateKey(key); nil != err {
		return err
	}
	db, err := p.db()
	if nil != err {
		return err
	}
	return db.Put(p.prefixKey(key), value, nil)
}

func (p *levelHandle) Create(key string, value []byte) (bool, error) {
	if err := validateKey(key); nil != err {
		return false, err
	}
	db, err := p.db()
	if nil != err {
		return false, err
	}

	p.Lock()
	defer p.Unlock()

	k := p.prefixKey(key)
	found, err := db.Has(k, nil)
	if nil != err || found {
		return false, err
	}
	return true, db.Put(k, value, nil)
}

func (p *levelHandle) Append(key string, value []byte) error {
	if err := validateKey(key); nil != err {
		return err
	}
	db, err := p.db()
	if nil != err {
		return err
	}

	p.Lock()
	defer p.Unlock()

	k := p.prefixKey(key)
	old, err := db.Get(k, nil)
	if nil != err && leveldb.ErrNotFound != err {
		return err
	}
	buffer := make([]byte, 0, len(old)+len(value))
	buffer = append(buffer, old...)
	buffer = append(buffer, value...)
	return db.Put(k, buffer, nil)
}

func (p *levelHandle) Keys() ([]string, error) {
	db, err := p.db()
	if nil != err {
		return nil, err
	}

	iter := db.NewIterator(&ldb_util.Range{
		Start: []byte{p.prefix}, // included in the range
		Limit: p.limit,          // excluded from the range
	}, nil)

	keys := []string{}
	for iter.Next() {
		// slice is only valid until the next call to Next
		key := iter.Key()
		keys = append(keys, string(key[1:]))
	}
	iter.Release()
	return keys, iter.Error()
}
