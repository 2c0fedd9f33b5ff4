// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package templates

import (
	"html"
	"strconv"
	"strings"
	"time"
)

// TimeLayout - how block and message times are shown
const TimeLayout = "2006-01-02 15:04:05 UTC"

// external link limits
const (
	minimumLinkLength = 10
	maximumLinkLength = 80
)

// SafeDisplay - escape untrusted text for inclusion in a page
func SafeDisplay(s string) string {
	return html.EscapeString(s)
}

// AllowExtLinks - turn http and https URLs in already escaped text into
// links
//
// a URL is a token delimited by space, newline or angle brackets made
// only of letters, digits and the characters "/:.?%_-="
func AllowExtLinks(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	start := 0
	for i := 0; i <= len(s); i += 1 {
		if i < len(s) && !isLinkDelimiter(s[i]) {
			continue
		}
		token := s[start:i]
		if isExternalLink(token) {
			b.WriteString(`<a style='color: red' href="`)
			b.WriteString(token)
			b.WriteString(`">`)
			b.WriteString(token)
			b.WriteString(`</a>`)
		} else {
			b.WriteString(token)
		}
		if i < len(s) {
			b.WriteByte(s[i])
		}
		start = i + 1
	}
	return b.String()
}

func isLinkDelimiter(c byte) bool {
	return ' ' == c || '\n' == c || '<' == c || '>' == c
}

func isExternalLink(token string) bool {
	if len(token) < minimumLinkLength || len(token) > maximumLinkLength {
		return false
	}
	if !strings.HasPrefix(token, "http://") && !strings.HasPrefix(token, "https://") {
		return false
	}
	for i := 0; i < len(token); i += 1 {
		c := token[i]
		switch {
		case 'a' <= c && c <= 'z':
		case 'A' <= c && c <= 'Z':
		case '0' <= c && c <= '9':
		case strings.IndexByte("/:.?%_-=", c) >= 0:
		default:
			return false
		}
	}
	return true
}

// MaxLength - shorten s to n bytes, marking the cut with "..."
func MaxLength(s string, n int) string {
	if n < 3 || len(s) <= n-3 {
		return s
	}
	return s[:n-3] + "..."
}

// TrimMessage - limit a message shown in an address row
func TrimMessage(s string) string {
	const limit = 140
	if len(s) <= limit {
		return s
	}
	return s[:limit-3] + "...[TRIMMED]"
}

// TwoLines - show a long hash as two halves so it wraps in a table
func TwoLines(hash string) string {
	const (
		limit = 128
		half  = 64
	)
	if len(hash) > limit {
		hash = hash[:limit]
	}
	if len(hash) <= half {
		return hash
	}
	return hash[:half] + " " + hash[half:]
}

// DocSearchURL - the longest prefix of s usable as a vault search query
func DocSearchURL(s string) string {
	for i := 0; i < len(s); i += 1 {
		c := s[i]
		switch {
		case 'a' <= c && c <= 'z':
		case 'A' <= c && c <= 'Z':
		case '0' <= c && c <= '9':
		case '_' == c || '-' == c || '.' == c:
		default:
			return s[:i]
		}
	}
	return s
}

// TimeString - unix seconds in the page time format
func TimeString(seconds int64) string {
	return time.Unix(seconds, 0).UTC().Format(TimeLayout)
}

// Age - how long ago a unix time was, relative to now
func Age(seconds int64, now int64) string {
	d := now - seconds
	switch {
	case d <= 0:
		return "now"
	case d < 60:
		return strconv.FormatInt(d, 10) + "s"
	case d < 3600:
		return strconv.FormatInt(d/60, 10) + "m"
	default:
		return strconv.FormatInt(d/3600, 10) + "h"
	}
}
