// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package counter - in-memory event counters and signed integer
// counters persisted in a storage pool
package counter

import (
	"sync/atomic"
)

// Counter - an in-memory event count that is safe for concurrent use
type Counter uint64

// Increment - count one event, returns the new total
func (c *Counter) Increment() uint64 {
	return atomic.AddUint64((*uint64)(c), 1)
}

// Uint64 - current total
func (c *Counter) Uint64() uint64 {
	return atomic.LoadUint64((*uint64)(c))
}
