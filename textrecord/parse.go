// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package textrecord

import (
	"strings"
)

// RemainingText - key given to trailing text that has no recognised header
const RemainingText = "remainingText"

// Field - one parsed "KEY: value" line
type Field struct {
	Key   string
	Value string
}

// Fields - ordered result of a parse
type Fields []Field

// recognised headers, the lower case form is the field key
var headers = []string{
	"BLOCK",
	"DATE",
	"FROM",
	"TO",
	"AMOUNT",
	"MESSAGE",
	"HASH",
	"NAME",
	"VERSION",
	"AUTHOR",
	"COMMENT",
}

// Parse - split a record into fields
//
// a newline only terminates a segment once the segment contains a
// colon, so text without a colon is joined onto the following line
func Parse(text string) Fields {
	result := Fields{}

	var segment strings.Builder
	hasColon := false

	for i := 0; i < len(text); i += 1 {
		c := text[i]
		if !hasColon || '\n' != c {
			segment.WriteByte(c)
			if ':' == c {
				hasColon = true
			}
			continue
		}
		if key, value, ok := split(segment.String()); ok {
			result = append(result, Field{Key: key, Value: value})
		}
		segment.Reset()
		hasColon = false
	}

	if segment.Len() > 0 {
		s := segment.String()
		if key, value, ok := split(s); ok {
			result = append(result, Field{Key: key, Value: value})
		} else {
			result = append(result, Field{Key: RemainingText, Value: s})
		}
	}

	return result
}

// Get - value of the first field with the given key
func (f Fields) Get(key string) (string, bool) {
	for _, field := range f {
		if key == field.Key {
			return field.Value, true
		}
	}
	return "", false
}

// Value - value of the first field with the given key or empty string
func (f Fields) Value(key string) string {
	v, _ := f.Get(key)
	return v
}

func split(s string) (string, string, bool) {
	for _, h := range headers {
		prefix := h + ": "
		if strings.HasPrefix(s, prefix) {
			return strings.ToLower(h), s[len(prefix):], true
		}
	}
	return "", "", false
}
