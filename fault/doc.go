// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package fault - error instances
//
// Provides a single instance of errors to allow easy comparison
// without having to resort to partial string matches.
//
// The classes map onto the explorer failure taxonomy:
//
//   NotFoundError - absent document, transaction or block
//   InvalidError  - malformed request or bad configuration
//   ProcessError  - transient storage or ledger failure
//   RecordError   - protocol violation inside stored markup or events
//   ExistsError   - exactly-once operations repeated
package fault
