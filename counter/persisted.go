// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package counter

import (
	"strconv"
	"strings"

	"github.com/biberhund/scashexplorer/fault"
	"github.com/biberhund/scashexplorer/storage"
)

// Read - the signed integer counter stored under key
//
// a missing counter is zero, a corrupt one is zero and reported as
// fault.CounterRecordCorrupt
func Read(handle storage.Handle, key string) (int64, error) {
	data, err := handle.Get(key)
	if fault.IsErrNotFound(err) {
		return 0, nil
	}
	if nil != err {
		return 0, err
	}
	return decode(data)
}

// Add - add delta to the counter stored under key and return the new value
//
// a zero delta does not write; a corrupt stored value is left for
// inspection and the error returned
func Add(handle storage.Handle, key string, delta int64) (int64, error) {
	value, err := Read(handle, key)
	if nil != err {
		return 0, err
	}
	if 0 == delta {
		return value, nil
	}
	value += delta
	err = handle.Put(key, []byte(strconv.FormatInt(value, 10)))
	if nil != err {
		return 0, err
	}
	return value, nil
}

// Decode - parse a counter blob, used when replaying a whole pool
func Decode(data []byte) (int64, error) {
	return decode(data)
}

func decode(data []byte) (int64, error) {
	s := strings.TrimSpace(string(data))
	if "" == s {
		return 0, nil
	}
	value, err := strconv.ParseInt(s, 10, 64)
	if nil != err {
		return 0, fault.CounterRecordCorrupt
	}
	return value, nil
}
