// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package blockring - arrival statistics of the most recent blocks
package blockring

import (
	"sync"
)

// internal constants
const (
	Size = 100 // size of ring buffer

	// MaximumBlockSize - serialized block size limit of the chain
	MaximumBlockSize = 1000000

	minimumSamples  = 3
	transactionSpan = 4 // blocks a payment needs to be considered final
)

// Stat - one received block
type Stat struct {
	Time         int64 // arrival, milliseconds since the epoch
	Size         int
	ProofOfStake bool
}

// Ring - fixed size buffer of block statistics
type Ring struct {
	sync.RWMutex

	ring      [Size]Stat
	ringIndex int
	count     int
}

// New - an empty ring
func New() *Ring {
	return &Ring{}
}

// Put - record a block, overwriting the oldest once full
func (r *Ring) Put(stat Stat) {
	r.Lock()
	defer r.Unlock()

	i := r.ringIndex
	r.ring[i] = stat
	i = i + 1
	if i >= len(r.ring) {
		i = 0
	}
	r.ringIndex = i

	if r.count < Size {
		r.count += 1
	}
}

// Len - number of recorded blocks
func (r *Ring) Len() int {
	r.RLock()
	defer r.RUnlock()
	return r.count
}

// Newest - copy of the statistics, newest first
func (r *Ring) Newest() []Stat {
	r.RLock()
	defer r.RUnlock()

	stats := make([]Stat, 0, r.count)
	j := r.ringIndex
	for n := 0; n < r.count; n += 1 {
		j -= 1
		if j < 0 {
			j = len(r.ring) - 1
		}
		stats = append(stats, r.ring[j])
	}
	return stats
}

// Network - averages over the ring
type Network struct {
	Valid            bool
	ConfirmationTime float64 // seconds between blocks
	TransactionTime  float64 // seconds until a payment is final
	PoSRatio         float64 // percent
	Utilisation      float64 // percent of maximum block size
}

// Network - compute the averages, Valid is false until enough blocks
// were seen
func (r *Ring) Network() Network {
	stats := r.Newest()
	n := len(stats)
	if n < minimumSamples {
		return Network{}
	}

	pos := 0
	size := 0
	for _, s := range stats {
		if s.ProofOfStake {
			pos += 1
		}
		size += s.Size
	}

	gaps := int64(0)
	gapCount := 0
	for i := 1; i < n; i += 1 {
		d := stats[i-1].Time - stats[i].Time
		if d > 0 {
			gaps += d
			gapCount += 1
		}
	}

	spans := int64(0)
	spanCount := 0
	for i := transactionSpan; i < n; i += 1 {
		spans += stats[i-transactionSpan].Time - stats[i].Time
		spanCount += 1
	}

	network := Network{
		Valid:       true,
		PoSRatio:    100 * float64(pos) / float64(n),
		Utilisation: 100 * float64(size) / float64(n) / MaximumBlockSize,
	}
	if gapCount > 0 {
		network.ConfirmationTime = float64(gaps) / float64(gapCount) / 1000
	}
	if spanCount > 0 {
		network.TransactionTime = float64(spans) / float64(spanCount) / 1000
	}
	return network
}
