// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package markup

import (
	"strconv"
)

// a directive is an HTML comment so an unresolved document still
// renders in a browser
const (
	openMarker  = "<!--dynamic:"
	closeMarker = "-->"
)

// directive kinds
const (
	kindAmountPlus       = "amountplus:"
	kindAmountMinus      = "amountminus:"
	kindBalance          = "balance:0x"
	kindBalanceConfirmed = "balanceconfirmed:0x"
	kindTxState          = "txstate:0x"
)

// AmountPlus - credit of units to the surrounding address document
func AmountPlus(units int64) string {
	return openMarker + kindAmountPlus + strconv.FormatInt(units, 10) + closeMarker
}

// AmountMinus - debit of units, given as a positive magnitude
func AmountMinus(units int64) string {
	return openMarker + kindAmountMinus + strconv.FormatInt(units, 10) + closeMarker
}

// Amount - the credit or debit directive for a signed delta, empty for zero
func Amount(delta int64) string {
	switch {
	case delta > 0:
		return AmountPlus(delta)
	case delta < 0:
		return AmountMinus(-delta)
	default:
		return ""
	}
}

// Balance - placeholder for the running balance of an address
func Balance(address string) string {
	return openMarker + kindBalance + address + closeMarker
}

// BalanceConfirmed - placeholder for the confirmed balance of an address
func BalanceConfirmed(address string) string {
	return openMarker + kindBalanceConfirmed + address + closeMarker
}

// TxState - confirmation status of a transaction
func TxState(hash string) string {
	return openMarker + kindTxState + hash + closeMarker
}
