// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package templates

import (
	"github.com/biberhund/scashexplorer/ledger"
)

// Row - one payment in an address document
type Row struct {
	TxId    string
	Time    int64
	From    string
	To      string
	Amount  int64 // signed, from the address point of view
	Message string
}

// TransactionInfo - a transaction with its resolved inputs
type TransactionInfo struct {
	Tx        *ledger.Transaction
	Inputs    []ledger.Input
	BlockHash string
	Height    int
	Message   string // escaped
}

type addressHead struct {
	Address string
	TxId    string
}

type blockInfo struct {
	Block      *ledger.Block
	Height     int
	FirstTx    string
	MerkleTree []string
}

// AddressHead - summary of an address and the header of its
// payment table, txId is the transaction that first mentioned it
func AddressHead(address string, txId string) string {
	return render("address-head", addressHead{
		Address: address,
		TxId:    txId,
	})
}

// AddressRow - a payment row, balances are left to the resolver
func AddressRow(r Row) string {
	return render("address-row", r)
}

// Transaction - body of a transaction document
func Transaction(t TransactionInfo) string {
	if nil == t.Inputs {
		t.Inputs = t.Tx.Inputs
	}
	return render("transaction", t)
}

// Block - body of a block document
func Block(block *ledger.Block, height int) string {
	b := blockInfo{
		Block:      block,
		Height:     height,
		MerkleTree: make([]string, len(block.MerkleTree)),
	}
	if len(block.Transactions) > 0 {
		b.FirstTx = block.Transactions[0].Hash
	}
	n := len(block.MerkleTree)
	for i, h := range block.MerkleTree {
		b.MerkleTree[n-1-i] = h
	}
	return render("block", b)
}

const entityTemplates = `
{{define "address-head"}}<h3 align=center><a href='{{.TxId}}.html'>&lt;&lt;&lt;</a>&nbsp;Details for address {{.Address}}</h3>
<table><tr><th>Param</th><th>Value</th></tr>
<tr><td>Balance</td><td>{{balance .Address}}</td></tr>
<tr class="even"><td>Balance confirmed</td><td>{{balanceconfirmed .Address}}</td></tr>
</table>
<p><h3 align=center>Transactions:</h3>
<table><tr><th>TX id</th><th>Date</th><th>From</th><th>To</th><th>Amount</th><th>State</th><th>Message</th></tr>
{{end}}

{{define "address-row"}}<tr><td>{{.TxId}} </td><td>{{time .Time}} </td><td>{{.From}}</td><td>{{.To}}</td><td>{{signed .Amount}} {{directive .Amount}}</td><td>{{txstate .TxId}}</td><td>{{if .Message}}<font color=darkblue>{{trim .Message}}</font>{{end}}</td></tr>
{{end}}

{{define "transaction"}}<h3 align=center><a href='{{.BlockHash}}.html'>&lt;&lt;&lt;</a>&nbsp;Details for transaction {{.Tx.Hash}}</h3>
<table><tr><th>Param</th><th>Value</th></tr>
<tr><td>Status</td><td>{{txstate .Tx.Hash}}</td></tr>
<tr class="even"><td>Included in block</td><td>{{.BlockHash}}</td></tr>
<tr><td>Block height</td><td>{{.Height}}</td></tr>
<tr class="even"><td>Version</td><td>{{.Tx.Version}}</td></tr>
<tr><td>Time</td><td>{{time .Tx.Time}}</td></tr>
<tr class="even"><td>LockTime</td><td>{{.Tx.LockTime}}</td></tr>
<tr><td>Inputs count</td><td>{{len .Inputs}}</td></tr>
<tr class="even"><td>Outputs count</td><td>{{len .Tx.Outputs}}</td></tr>
<tr><td>Value</td><td>{{amount .Tx.TotalOutput}}</td></tr>
<tr class="even"><td>CoinBase</td><td>{{check .Tx.IsCoinBase}}</td></tr>
<tr><td>CoinStake</td><td>{{check .Tx.IsCoinStake}}</td></tr>
</table>
{{if .Message}}<p><h3 align=center>Message:</h3>
<div class="rectangle-speech-border"><div class="msg-body"><font color=darkblue>{{links .Message}}</font></div></div>
{{end}}<p><h3 align=center>Inputs:</h3>
<table><tr><th>Amount</th><th>Previous output</th><th>scriptSig</th><th>nSequence</th><th>Source address</th></tr>
{{range $i, $in := .Inputs}}<tr{{row $i}}><td>{{if $in.Value}}{{amount $in.Value}}{{end}}</td><td>{{$in.PrevHash}}:{{$in.PrevIndex}}</td><td>{{safe $in.Script}}</td><td>{{$in.Sequence}}</td><td>{{$in.Address}}</td></tr>
{{end}}</table>
<p><h3 align=center>Outputs:</h3>
<table><tr><th>Amount</th><th>scriptPubKey</th><th>Destination address</th></tr>
{{range $i, $out := .Tx.Outputs}}<tr{{row $i}}><td>{{amount $out.Value}}</td><td>{{safe $out.Script}}</td><td>{{$out.Address}}</td></tr>
{{end}}</table>
{{end}}

{{define "block"}}<h3 align=center><a href='index.html'>&lt;&lt;&lt;</a>&nbsp;Details for block {{.Block.Hash}}</h3>
<table><tr><th>Param</th><th>Value</th></tr>
<tr><td>Status</td><td>{{if .FirstTx}}{{txstate .FirstTx}}{{else}}{{.Block.Hash}}{{end}}</td></tr>
<tr class="even"><td>Height</td><td>{{.Height}}</td></tr>
<tr><td>Version</td><td>{{.Block.Version}}</td></tr>
<tr class="even"><td>Previous block</td><td>{{.Block.PrevHash}}</td></tr>
<tr><td>Merkle root</td><td>{{.Block.MerkleRoot}}</td></tr>
<tr class="even"><td>Time</td><td>{{time .Block.Time}}</td></tr>
<tr><td>nBits</td><td>{{.Block.Bits}}</td></tr>
<tr class="even"><td>Nonce</td><td>{{.Block.Nonce}}</td></tr>
<tr><td>Transactions</td><td>{{len .Block.Transactions}}</td></tr>
<tr class="even"><td>Proof of stake</td><td>{{check .Block.ProofOfStake}}</td></tr>
<tr><td>Block signature</td><td>{{safe .Block.Signature}}</td></tr>
</table>
<p><h3 align=center>Transactions:</h3>
<table><tr><th>TX id</th><th>Version</th><th>Time</th><th>LockTime</th><th>Inputs</th><th>Outputs</th><th>CoinBase</th><th>CoinStake</th><th>Amount</th></tr>
{{range $i, $tx := .Block.Transactions}}<tr{{row $i}}><td>{{$tx.Hash}}</td><td>{{$tx.Version}}</td><td>{{time $tx.Time}}</td><td>{{$tx.LockTime}}</td><td>{{len $tx.Inputs}}</td><td>{{len $tx.Outputs}}</td><td>{{check $tx.IsCoinBase}}</td><td>{{check $tx.IsCoinStake}}</td><td>{{amount $tx.TotalOutput}}</td></tr>
{{end}}</table>
{{if .MerkleTree}}<p><h3 align=center>Merkle tree:</h3>
<table><tr><th>Hash</th></tr>
{{range $i, $h := .MerkleTree}}<tr{{row $i}}><td>{{$h}}</td></tr>
{{end}}</table>
{{end}}{{end}}
`
