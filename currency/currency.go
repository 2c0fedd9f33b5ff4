// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package currency - conversion between ledger units and display units
package currency

import (
	"strconv"
	"strings"
)

// Symbol - display unit name
const Symbol = "SCS"

// Coin - ledger units per display unit
const Coin = 100000000

const decimalPlaces = 8

// Format - exact decimal display of a ledger amount, e.g. "5 SCS" or "-0.25 SCS"
func Format(units int64) string {
	return Decimal(units) + " " + Symbol
}

// Decimal - exact decimal form of a ledger amount without trailing zeros
func Decimal(units int64) string {
	negative := units < 0
	u := uint64(units)
	if negative {
		u = uint64(-units)
	}

	whole := strconv.FormatUint(u/Coin, 10)
	fraction := strconv.FormatUint(u%Coin, 10)

	s := whole
	if "0" != fraction {
		fraction = strings.Repeat("0", decimalPlaces-len(fraction)) + fraction
		s += "." + strings.TrimRight(fraction, "0")
	}
	if negative {
		s = "-" + s
	}
	return s
}

// Coins - whole display units, truncated towards zero
func Coins(units int64) int64 {
	return units / Coin
}

// Parse - convert a decimal string to ledger units
//
// i.e. "0.00000001" will convert to 1
//
// Note: Invalid characters are simply ignored and the conversion
//       stops after 8 decimal places have been processed.
//       Extra decimal points will also be ignored.
func Parse(s string) int64 {

	units := int64(0)
	point := false
	negative := false
	decimals := 0

get_digits:
	for i, b := range []byte(s) {
		switch {
		case b >= '0' && b <= '9':
			units *= 10
			units += int64(b - '0')
			if point {
				decimals += 1
				if decimals >= decimalPlaces {
					break get_digits
				}
			}
		case '.' == b:
			point = true
		case '-' == b && 0 == i:
			negative = true
		}
	}
	for decimals < decimalPlaces {
		units *= 10
		decimals += 1
	}
	if negative {
		return -units
	}
	return units
}
