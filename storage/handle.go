// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"strings"

	"github.com/biberhund/scashexplorer/fault"
)

// Handle - access to a single pool
type Handle interface {
	// Get returns fault.KeyNotFound if there is no blob for key
	Get(key string) ([]byte, error)
	Has(key string) bool

	// Put replaces the whole blob
	Put(key string, value []byte) error

	// Create only writes if the key is absent, returns true if it wrote
	Create(key string, value []byte) (bool, error)

	// Append creates the blob if it is absent
	Append(key string, value []byte) error

	// Keys lists every key in ascending order
	Keys() ([]string, error)
}

// SafeKey - map a name to the key alphabet [A-Za-z0-9_]
func SafeKey(name string) string {
	b := []byte(name)
	for i, c := range b {
		if !isAlphaNumeric(c) {
			b[i] = '_'
		}
	}
	return string(b)
}

// check a key is usable as a file name
//
// record names contain '-' so it is accepted in addition to the
// SafeKey alphabet
func validateKey(key string) error {
	if "" == key {
		return fault.EmptyKey
	}
	if strings.IndexFunc(key, func(r rune) bool {
		return r > 0x7f || !(isAlphaNumeric(byte(r)) || '_' == r || '-' == r)
	}) >= 0 {
		return fault.MalformedRequest
	}
	return nil
}

func isAlphaNumeric(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || ('0' <= c && c <= '9')
}
