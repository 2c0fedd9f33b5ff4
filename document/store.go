// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package document - one persisted HTML document per block,
// transaction or address
//
// a document is written as a head once and then only grows by
// appended fragments; block, transaction and generated pages are
// replaced as a whole
package document

import (
	"hash/fnv"
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/biberhund/scashexplorer/fault"
	"github.com/biberhund/scashexplorer/registry"
	"github.com/biberhund/scashexplorer/storage"
)

const stripes = 64

// Store - documents on top of a storage pool
type Store struct {
	log      *logger.L
	handle   storage.Handle
	registry *registry.Registry

	locks [stripes]sync.Mutex
}

// New - create a store, fragments are linkified with reg
func New(handle storage.Handle, reg *registry.Registry, log *logger.L) *Store {
	return &Store{
		log:      log,
		handle:   handle,
		registry: reg,
	}
}

func (s *Store) lock(id string) *sync.Mutex {
	h := fnv.New32a()
	h.Write([]byte(id))
	return &s.locks[h.Sum32()%stripes]
}

// EnsureHead - write chrome followed by the linkified content if the
// document does not exist yet, true if it was created by this call
func (s *Store) EnsureHead(id string, chrome string, content string) (bool, error) {
	key := storage.SafeKey(id)

	l := s.lock(key)
	l.Lock()
	defer l.Unlock()

	if s.handle.Has(key) {
		return false, nil
	}
	created, err := s.handle.Create(key, []byte(chrome+s.registry.Linkify(content)))
	if nil != err {
		s.log.Errorf("create: %s  error: %s", key, err)
		return false, err
	}
	return created, nil
}

// Append - add a linkified fragment to the end of a document
func (s *Store) Append(id string, fragment string) error {
	key := storage.SafeKey(id)

	l := s.lock(key)
	l.Lock()
	defer l.Unlock()

	err := s.handle.Append(key, []byte(s.registry.Linkify(fragment)))
	if nil != err {
		s.log.Errorf("append: %s  error: %s", key, err)
	}
	return err
}

// Write - replace a whole document, only the body is linkified
func (s *Store) Write(id string, head string, body string, tail string) error {
	key := storage.SafeKey(id)

	l := s.lock(key)
	l.Lock()
	defer l.Unlock()

	err := s.handle.Put(key, []byte(head+s.registry.Linkify(body)+tail))
	if nil != err {
		s.log.Errorf("write: %s  error: %s", key, err)
	}
	return err
}

// Read - the current document, false if there is none
func (s *Store) Read(id string) ([]byte, bool) {
	key := storage.SafeKey(id)
	if "" == key {
		return nil, false
	}

	l := s.lock(key)
	l.Lock()
	defer l.Unlock()

	data, err := s.handle.Get(key)
	if nil != err {
		if !fault.IsErrNotFound(err) {
			s.log.Warnf("read: %s  error: %s", key, err)
		}
		return nil, false
	}
	return data, true
}
