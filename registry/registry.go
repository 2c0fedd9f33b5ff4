// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package registry - the set of entity identifiers the explorer has
// a document for, together with their classification
package registry

import (
	"strings"
	"sync"

	"github.com/bitmark-inc/logger"
	"github.com/mr-tron/base58"

	"github.com/biberhund/scashexplorer/storage"
)

// Class - what kind of entity an identifier refers to
type Class int

// entity classes
const (
	Unclassified Class = iota
	Transaction
	Block
	Address
)

// identifier lengths
const (
	HashLength    = 64
	AddressLength = 34
)

func (c Class) String() string {
	switch c {
	case Transaction:
		return "transaction"
	case Block:
		return "block"
	case Address:
		return "address"
	default:
		return "unclassified"
	}
}

// Registry - the known identifiers
type Registry struct {
	sync.RWMutex
	log *logger.L
	ids map[string]Class
}

// New - create an empty registry
func New(log *logger.L) *Registry {
	return &Registry{
		log: log,
		ids: make(map[string]Class),
	}
}

// Classify - class of an identifier and whether it is known at all
func (r *Registry) Classify(id string) (Class, bool) {
	r.RLock()
	defer r.RUnlock()
	c, ok := r.ids[id]
	return c, ok
}

// MarkKnown - register an identifier
//
// classification only moves upward: an unclassified entry can gain a
// class, a classified entry keeps its first class
func (r *Registry) MarkKnown(id string, class Class) {
	if "" == id {
		return
	}
	r.Lock()
	defer r.Unlock()

	current, ok := r.ids[id]
	switch {
	case !ok:
		r.ids[id] = class
	case Unclassified == current && Unclassified != class:
		r.ids[id] = class
	case Unclassified != class && current != class:
		r.log.Debugf("keep class: %s for: %s  ignore: %s", current, id, class)
	}
}

// Count - number of registered identifiers
func (r *Registry) Count() int {
	r.RLock()
	defer r.RUnlock()
	return len(r.ids)
}

// Reload - register every key of the document pool
//
// address sized keys that decode as base58 are restored as addresses,
// everything else as unclassified
func (r *Registry) Reload(handle storage.Handle) error {
	keys, err := handle.Keys()
	if nil != err {
		return err
	}
	for _, key := range keys {
		class := Unclassified
		if isAddress(key) {
			class = Address
		}
		r.MarkKnown(key, class)
	}
	r.log.Infof("reloaded: %d identifiers", len(keys))
	return nil
}

// Linkify - turn registered identifiers in a fragment into links
//
// an identifier is an alphanumeric run of hash or address length that
// is not directly followed by '.', so existing "ID.html" references are
// left alone
func (r *Registry) Linkify(fragment string) string {
	var b strings.Builder
	b.Grow(len(fragment))

	r.RLock()
	defer r.RUnlock()

	n := len(fragment)
	for i := 0; i < n; {
		if !isAlphaNumeric(fragment[i]) {
			b.WriteByte(fragment[i])
			i += 1
			continue
		}
		j := i
		for j < n && isAlphaNumeric(fragment[j]) {
			j += 1
		}
		token := fragment[i:j]
		followedByDot := j < n && '.' == fragment[j]

		if (HashLength == len(token) || AddressLength == len(token)) && !followedByDot {
			if _, ok := r.ids[token]; ok {
				b.WriteString(`<a href="`)
				b.WriteString(token)
				b.WriteString(`.html">`)
				b.WriteString(token)
				b.WriteString(`</a>`)
				i = j
				continue
			}
		}
		b.WriteString(token)
		i = j
	}
	return b.String()
}

func isAddress(id string) bool {
	if AddressLength != len(id) {
		return false
	}
	_, err := base58.Decode(id)
	return nil == err
}

func isAlphaNumeric(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || ('0' <= c && c <= '9')
}
