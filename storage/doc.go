// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package storage - maintain the on-disk key to blob pools
//
// Each pool is a flat namespace of keys; a key holds one blob that
// can be replaced, created exactly once or appended to.
//
// Two back ends are provided:
//
//   files   - one directory per pool, one file per key
//   leveldb - a single database, one prefix byte per pool
//
// The set of pools is declared by the struct tags of the exported
// Pool variable and all of its fields are set by Initialise.
//
// Pools:
//
//   name            prefix  contents
//   blockexplorer   E       per-entity documents (block, tx, address, generated pages)
//   richlist        R       address balance counters in ledger units
//   messages        M       accepted message records
//   vault           V       published document records
//   webdb           C       global counters (circulating supply)
//
// Counters are stored as a decimal integer in text form.
package storage
