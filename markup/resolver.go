// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package markup

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/bitmark-inc/logger"

	"github.com/biberhund/scashexplorer/currency"
	"github.com/biberhund/scashexplorer/fault"
	"github.com/biberhund/scashexplorer/ledger"
)

// ConfirmationThreshold - depth at which a transaction counts as confirmed
const ConfirmationThreshold = 6

// substituted after the scan once the totals are known
const (
	balancePlaceholder          = "<!--%%BALANCE%-->"
	balanceConfirmedPlaceholder = "<!--%%BALANCEC%-->"
)

const notFoundText = "not found or not yet confirmed"

// Resolver - evaluates dynamic directives against the ledger
type Resolver struct {
	log    *logger.L
	ledger ledger.Ledger
}

// NewResolver - a nil ledger reports every transaction as not found
func NewResolver(l ledger.Ledger, log *logger.L) *Resolver {
	return &Resolver{
		log:    log,
		ledger: l,
	}
}

type state int

const (
	stateScanText state = iota
	stateScanDirective
	stateDispatch
	stateTruncated
	stateSubstitute
	stateDone
)

// per-document scan state
type resolution struct {
	input     []byte
	pos       int
	out       bytes.Buffer
	directive string

	unconfirmed int64
	confirmed   int64
	pending     int64 // armed by an amount, consumed by the next txstate
	hasBalance  bool
}

// Resolve - return document with every directive replaced by its
// current value
//
// an unterminated directive ends the scan and the remainder of the
// document is dropped
func (r *Resolver) Resolve(document []byte) []byte {
	open := []byte(openMarker)
	close := []byte(closeMarker)

	res := &resolution{
		input: document,
	}
	res.out.Grow(len(document))

	st := stateScanText
	for stateDone != st {
		switch st {

		case stateScanText:
			i := bytes.Index(res.input[res.pos:], open)
			if i < 0 {
				res.out.Write(res.input[res.pos:])
				st = stateSubstitute
				break
			}
			res.out.Write(res.input[res.pos : res.pos+i])
			res.pos += i + len(open)
			st = stateScanDirective

		case stateScanDirective:
			j := bytes.Index(res.input[res.pos:], close)
			if j < 0 {
				st = stateTruncated
				break
			}
			res.directive = string(res.input[res.pos : res.pos+j])
			res.pos += j + len(close)
			st = stateDispatch

		case stateDispatch:
			r.dispatch(res)
			st = stateScanText

		case stateTruncated:
			r.log.Warnf("%s at offset: %d", fault.UnterminatedDirective, res.pos)
			st = stateSubstitute

		case stateSubstitute:
			r.substitute(res)
			st = stateDone
		}
	}
	return res.out.Bytes()
}

func (r *Resolver) dispatch(res *resolution) {
	d := res.directive
	switch {

	case strings.HasPrefix(d, kindAmountPlus):
		if n, ok := r.amount(d[len(kindAmountPlus):]); ok {
			res.unconfirmed += n
			res.pending = n
		}

	case strings.HasPrefix(d, kindAmountMinus):
		if n, ok := r.amount(d[len(kindAmountMinus):]); ok {
			res.unconfirmed -= n
			res.pending = -n
		}

	case strings.HasPrefix(d, kindBalanceConfirmed):
		res.out.WriteString(balanceConfirmedPlaceholder)
		res.hasBalance = true

	case strings.HasPrefix(d, kindBalance):
		res.out.WriteString(balancePlaceholder)
		res.hasBalance = true

	case strings.HasPrefix(d, kindTxState):
		r.txState(res, d[len(kindTxState):])

	default:
		r.log.Debugf("ignore unknown directive: %q", d)
	}
}

func (r *Resolver) amount(s string) (int64, bool) {
	n, err := strconv.ParseInt(s, 10, 64)
	if nil != err {
		r.log.Warnf("invalid amount: %q  error: %s", s, err)
		return 0, false
	}
	return n, true
}

func (r *Resolver) txState(res *resolution, hash string) {
	pending := res.pending
	res.pending = 0

	found := false
	depth := 0
	if nil != r.ledger {
		_, depth, found = r.ledger.Transaction(hash)
	}

	if !found {
		res.out.WriteString(`<font color=red>` + notFoundText + `</font>`)
		return
	}

	text := strconv.Itoa(depth) + " confirmations"
	if depth < ConfirmationThreshold {
		res.out.WriteString(`<font color=gray>` + text + `</font>`)
		return
	}
	res.confirmed += pending
	res.out.WriteString(`<font color=green>` + text + `</font>`)
}

// negative totals leave the placeholder in place, it is an HTML
// comment so nothing is displayed
func (r *Resolver) substitute(res *resolution) {
	if !res.hasBalance {
		return
	}
	s := res.out.String()
	if res.unconfirmed >= 0 {
		s = strings.Replace(s, balancePlaceholder, currency.Format(res.unconfirmed), -1)
	}
	if res.confirmed >= 0 {
		s = strings.Replace(s, balanceConfirmedPlaceholder, currency.Format(res.confirmed), -1)
	}
	res.out.Reset()
	res.out.WriteString(s)
}
