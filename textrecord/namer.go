// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package textrecord

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync/atomic"
	"time"
)

// Namer - produces unique record names of the form "<unix-seconds>-<sequence>"
type Namer struct {
	sequence uint64
	now      func() time.Time
}

// NewNamer - create a namer, a nil clock means time.Now
func NewNamer(now func() time.Time) *Namer {
	if nil == now {
		now = time.Now
	}
	return &Namer{now: now}
}

// Next - a new record name, the sequence part is strictly increasing
func (n *Namer) Next() string {
	s := atomic.AddUint64(&n.sequence, 1)
	return fmt.Sprintf("%d-%d", n.now().Unix(), s)
}

// SortNames - order record names oldest first
//
// names that do not follow the namer format sort before all others
// in plain string order
func SortNames(names []string) {
	sort.SliceStable(names, func(i, j int) bool {
		return Less(names[i], names[j])
	})
}

// Less - true if record name a was issued before b
func Less(a string, b string) bool {
	ta, sa, oka := splitName(a)
	tb, sb, okb := splitName(b)
	switch {
	case oka && okb:
		if ta != tb {
			return ta < tb
		}
		return sa < sb
	case oka != okb:
		return !oka
	default:
		return a < b
	}
}

func splitName(name string) (int64, uint64, bool) {
	parts := strings.SplitN(name, "-", 2)
	if 2 != len(parts) {
		return 0, 0, false
	}
	t, err := strconv.ParseInt(parts[0], 10, 64)
	if nil != err {
		return 0, 0, false
	}
	s, err := strconv.ParseUint(parts[1], 10, 64)
	if nil != err {
		return 0, 0, false
	}
	return t, s, true
}
