// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package templates_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/biberhund/scashexplorer/templates"
)

func TestAllowExtLinks(t *testing.T) {
	tests := []struct {
		in  string
		out string
	}{
		{
			in:  "see https://example.com/x?a=1 now",
			out: `see <a style='color: red' href="https://example.com/x?a=1">https://example.com/x?a=1</a> now`,
		},
		{
			in:  "http://a.b",
			out: `<a style='color: red' href="http://a.b">http://a.b</a>`,
		},
		{
			in:  "too short http://a",
			out: "too short http://a",
		},
		{
			in:  "quoted https://example.com/&quot;x",
			out: "quoted https://example.com/&quot;x",
		},
		{
			in:  "ftp://example.com/file",
			out: "ftp://example.com/file",
		},
		{
			in:  "line\nhttps://example.org\n",
			out: "line\n<a style='color: red' href=\"https://example.org\">https://example.org</a>\n",
		},
	}
	for i, item := range tests {
		assert.Equal(t, item.out, templates.AllowExtLinks(item.in), "%d: wrong links", i)
	}

	long := "https://example.com/" + strings.Repeat("a", 80)
	assert.Equal(t, long, templates.AllowExtLinks(long), "overlong link converted")
}

func TestMaxLength(t *testing.T) {
	assert.Equal(t, "short", templates.MaxLength("short", 46), "short changed")
	assert.Equal(t, "abcdefg...", templates.MaxLength("abcdefghijklmnop", 10), "wrong cut")
}

func TestTrimMessage(t *testing.T) {
	m := strings.Repeat("x", 141)
	trimmed := templates.TrimMessage(m)
	assert.Equal(t, strings.Repeat("x", 137)+"...[TRIMMED]", trimmed, "wrong trim")
	assert.Equal(t, "hello", templates.TrimMessage("hello"), "short message trimmed")
}

func TestTwoLines(t *testing.T) {
	h := strings.Repeat("a", 64) + strings.Repeat("b", 80)
	assert.Equal(t, strings.Repeat("a", 64)+" "+strings.Repeat("b", 64), templates.TwoLines(h), "wrong split")
	assert.Equal(t, "abc", templates.TwoLines("abc"), "short hash split")
}

func TestDocSearchURL(t *testing.T) {
	assert.Equal(t, "report_v1.0-final", templates.DocSearchURL("report_v1.0-final"), "clean changed")
	assert.Equal(t, "report", templates.DocSearchURL("report&lt;script"), "unsafe tail kept")
	assert.Equal(t, "", templates.DocSearchURL(" leading"), "leading space kept")
}

func TestTimeAndAge(t *testing.T) {
	assert.Equal(t, "2017-07-14 02:40:00 UTC", templates.TimeString(1500000000), "wrong time")

	now := int64(1500000000)
	assert.Equal(t, "now", templates.Age(now, now), "wrong now")
	assert.Equal(t, "42s", templates.Age(now-42, now), "wrong seconds")
	assert.Equal(t, "5m", templates.Age(now-300, now), "wrong minutes")
	assert.Equal(t, "2h", templates.Age(now-7300, now), "wrong hours")
}

func TestSafeDisplay(t *testing.T) {
	assert.Equal(t, "&lt;b&gt;&amp;&#34;", templates.SafeDisplay(`<b>&"`), "wrong escape")
}
