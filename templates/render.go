// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package templates

import (
	"strconv"
	"strings"
	"text/template"

	"github.com/biberhund/scashexplorer/currency"
	"github.com/biberhund/scashexplorer/markup"
)

var functions = template.FuncMap{
	"safe":             SafeDisplay,
	"links":            AllowExtLinks,
	"maxlen":           MaxLength,
	"trim":             TrimMessage,
	"twolines":         TwoLines,
	"docurl":           DocSearchURL,
	"time":             TimeString,
	"age":              Age,
	"amount":           currency.Format,
	"signed":           signedAmount,
	"directive":        markup.Amount,
	"txstate":          markup.TxState,
	"balance":          markup.Balance,
	"balanceconfirmed": markup.BalanceConfirmed,
	"check":            check,
	"row":              rowClass,
	"percent":          percent,
	"seconds":          seconds,
	"notes":            notes,
}

// all page fragments, directives are HTML comments so text/template
// is used to keep them intact
var pages = template.Must(
	template.New("pages").
		Funcs(functions).
		Parse(headTemplate + entityTemplates + reportTemplates),
)

func render(name string, data interface{}) string {
	var b strings.Builder
	err := pages.ExecuteTemplate(&b, name, data)
	if nil != err {
		b.WriteString("<!-- ")
		b.WriteString(SafeDisplay(err.Error()))
		b.WriteString(" -->")
	}
	return b.String()
}

func signedAmount(units int64) string {
	switch {
	case units < 0:
		return "<font color=darkred>" + currency.Format(units) + "</font>"
	case units > 0:
		return "<font color=darkgreen>+" + currency.Format(units) + "</font>"
	default:
		return "-"
	}
}

func check(b bool) string {
	if b {
		return "&#10004;"
	}
	return ""
}

func rowClass(i int) string {
	if 1 == i%2 {
		return ` class="even"`
	}
	return ""
}

func percent(f float64) string {
	return strconv.FormatFloat(f, 'f', 2, 64)
}

func seconds(f float64) string {
	return strconv.FormatFloat(f, 'f', 1, 64)
}
