// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package textrecord

import (
	"strings"
)

// Encode - produce the "KEY: value" form of a set of fields
//
// a RemainingText field is written verbatim and without a trailing
// newline, so it must be the last field
func Encode(fields Fields) string {
	var b strings.Builder
	for _, f := range fields {
		if RemainingText == f.Key {
			b.WriteString(f.Value)
			continue
		}
		b.WriteString(strings.ToUpper(f.Key))
		b.WriteString(": ")
		b.WriteString(f.Value)
		b.WriteByte('\n')
	}
	return b.String()
}
