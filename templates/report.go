// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package templates

import (
	"github.com/biberhund/scashexplorer/blockring"
	"github.com/biberhund/scashexplorer/feed"
	"github.com/biberhund/scashexplorer/richlist"
	"github.com/biberhund/scashexplorer/vault"
)

// LandingInfo - the index page
type LandingInfo struct {
	Network   blockring.Network
	Supply    int64 // whole coins
	Blocks    []blockring.Summary
	Reloading bool
	Height    int
	Now       int64
}

// MessagesInfo - the message feed page
type MessagesInfo struct {
	Messages []feed.Message
	Now      int64
}

// RichListInfo - the rich list page
type RichListInfo struct {
	Limit   int
	Entries []richlist.Ranked
	Sum     int64 // ledger units held by the listed addresses
	Supply  int64 // whole coins
	Share   float64
}

// VaultInfo - the newest vault documents
type VaultInfo struct {
	Documents []vault.Document
	Total     int
}

// StatsInfo - index and network statistics
type StatsInfo struct {
	Height    int
	Objects   int
	Addresses int
	Messages  int
	Documents int
	Supply    int64
	Network   blockring.Network
	Now       int64
}

// Landing - body of the index page
func Landing(l LandingInfo) string {
	return render("landing", l)
}

// Messages - body of the message feed page
func Messages(m MessagesInfo) string {
	return render("messages", m)
}

// RichList - body of the rich list page
func RichList(r RichListInfo) string {
	return render("richlist", r)
}

// Vault - body of the vault page
func Vault(v VaultInfo) string {
	return render("vault", v)
}

// Search - body of the vault search page
func Search(r vault.Result) string {
	return render("search", r)
}

// Stats - body of the statistics page
func Stats(s StatsInfo) string {
	return render("stats", s)
}

// NotFound - complete page for a request that matched nothing, the
// request is escaped
func NotFound(request string) string {
	return Head("Not found: "+request, false) + render("notfound", request) + Tail()
}

// notes shown under a vault search match
func notes(n vault.Note, byAuthor bool) []string {
	s := []string{}
	if n.Has(vault.FirstPublisher) {
		s = append(s, "First publisher!", "This is the original author")
	}
	if n.Has(vault.DifferentAuthor) {
		s = append(s, "This is not the original author")
	}
	if n.Has(vault.DifferentContent) {
		if byAuthor {
			s = append(s, "This is another document")
		} else {
			s = append(s, "This is not the same document!")
		}
	}
	if n.Has(vault.SameHashDifferentIdentity) {
		s = append(s, "Same document published under a different name or author")
	}
	return s
}

const reportTemplates = `
{{define "landing"}}{{if .Network.Valid}}<div class="panel-row">
<div class="panel"><div class="panel-value">{{seconds .Network.ConfirmationTime}} s</div><div class="panel-label">Confirmation time</div></div>
<div class="panel"><div class="panel-value">{{seconds .Network.TransactionTime}} s</div><div class="panel-label">Full TX time</div></div>
<div class="panel"><div class="panel-value">{{percent .Network.PoSRatio}} %</div><div class="panel-label">PoS/PoW ratio</div></div>
<div class="panel"><div class="panel-value">{{percent .Network.Utilisation}} %</div><div class="panel-label">Network utilization</div></div>
<div class="panel"><div class="panel-value"><a href='circulatingsupply.txt'>{{.Supply}}</a></div><div class="panel-label">Circulating supply</div></div>
</div>
{{end}}<p align=center><a href='messages.html'>Messages</a> | <a href='vault.html'>Vault</a> | <a href='richlist.html'>Rich list</a> | <a href='stats.html'>Statistics</a></p>
<h3 align=center>Latest blocks</h3>
<table><tr><th>Block hash</th><th>PoS</th><th>Height</th><th>Time</th><th>TXs</th><th>Amount</th><th>Age</th></tr>
{{range $i, $b := .Blocks}}<tr{{row $i}}><td>{{$b.Id}}</td><td>{{check $b.ProofOfStake}}</td><td>{{$b.Height}}</td><td>{{time $b.Time}}</td><td>{{$b.Transactions}}</td><td>{{amount $b.Amount}}</td><td>{{age $b.Time $.Now}}</td></tr>
{{end}}</table>
{{if .Reloading}}<p align=center class="notice">The index is being rebuilt, more blocks will be listed shortly.</p>
{{end}}<p align=center>Updated at {{time .Now}} up to block {{.Height}}</p>
{{end}}

{{define "messages"}}<h3 align=center><a href='index.html'>&lt;&lt;&lt;</a>&nbsp;Messages</h3>
<p align=center>Messages are attached to payments by their senders. Nobody checks them, do not trust links or offers found here.</p>
{{range .Messages}}<div class="rectangle-speech-border"><div class="msg-header">Date sent: {{time .Time}}<br>From: {{safe .From}}<br>To: {{safe .To}}<br>Amount: {{.Amount}}</div>
<div class="msg-body">{{links (safe .Text)}}</div></div>
{{end}}<p align=center>Updated at {{time .Now}}</p>
{{end}}

{{define "richlist"}}<h3 align=center><a href='index.html'>&lt;&lt;&lt;</a>&nbsp;Top {{.Limit}} Richest SpeedCash Addresses</h3>
{{if .Supply}}<table><tr><th>Rank</th><th>Address</th><th>Coins amount</th><th>Percentage</th></tr>
{{range $i, $e := .Entries}}<tr{{row $i}}><td>{{$e.Rank}}</td><td>{{$e.Address}}</td><td>{{amount $e.Balance}}</td><td>{{percent $e.Percentage}}%</td></tr>
{{end}}</table>
<p align=center>Top {{.Limit}} addresses have in common {{amount .Sum}}, which is {{percent .Share}}% of total circulating supply of {{.Supply}} SCS.</p>
{{else}}<p align=center>The circulating supply is not known yet.</p>
{{end}}{{end}}

{{define "vault"}}<h3 align=center><a href='index.html'>&lt;&lt;&lt;</a>&nbsp;Document vault</h3>
<p align=center>There are {{.Total}} documents published (displayed last {{len .Documents}}).</p>
<table><tr><th>Document hash</th><th>Name</th><th>Version</th><th>Author</th><th>Time</th></tr>
{{range $i, $d := .Documents}}<tr{{row $i}}><td><a href="doc?q={{docurl $d.Hash}}">{{safe (twolines $d.Hash)}}</a></td><td>{{safe (maxlen $d.DocName 46)}}</td><td>{{safe $d.Version}}</td><td>{{safe $d.Author}}</td><td>{{time $d.Time}}</td></tr>
{{end}}</table>
{{end}}

{{define "search"}}<h3 align=center><a href='vault.html'>&lt;&lt;&lt;</a>&nbsp;Documents matching {{safe .Query}}</h3>
{{if .Matches}}<p align=center class="notice">{{if .ByHash}}You searched by document hash, this is the right choice to check a document.{{else if .SameHashDifferentNames}}Be very careful: this document was named differently on first publish.{{else}}Be careful: anyone can publish under any name or author, search by document hash to check a document.{{end}}</p>
{{range $m := .Matches}}<div class="rectangle-speech-border"><div class="msg-header">Published: {{time $m.Time}} in block {{$m.BlockId}} by {{safe $m.From}}</div>
<div class="msg-body">Name: {{safe $m.DocName}}<br>Version: {{safe $m.Version}}<br>Author: {{safe $m.Author}}<br>Hash: {{safe $m.Hash}}<br>Comment: {{links (safe $m.Comment)}}</div>
{{range notes $m.Notes $.ByAuthor}}<div class="notice">{{.}}</div>
{{end}}</div>
{{end}}{{else}}<p align=center>No documents found for {{safe .Query}}</p>
{{end}}{{end}}

{{define "stats"}}<h3 align=center><a href='index.html'>&lt;&lt;&lt;</a>&nbsp;Statistics</h3>
<table><tr><th>Param</th><th>Value</th></tr>
<tr><td>Indexed height</td><td>{{.Height}}</td></tr>
<tr class="even"><td>Known objects</td><td>{{.Objects}}</td></tr>
<tr><td>Addresses with balance</td><td>{{.Addresses}}</td></tr>
<tr class="even"><td>Recent messages</td><td>{{.Messages}}</td></tr>
<tr><td>Vault documents</td><td>{{.Documents}}</td></tr>
<tr class="even"><td>Circulating supply</td><td>{{.Supply}} SCS</td></tr>
{{if .Network.Valid}}<tr><td>Confirmation time</td><td>{{seconds .Network.ConfirmationTime}} s</td></tr>
<tr class="even"><td>Full TX time</td><td>{{seconds .Network.TransactionTime}} s</td></tr>
<tr><td>PoS/PoW ratio</td><td>{{percent .Network.PoSRatio}} %</td></tr>
<tr class="even"><td>Network utilization</td><td>{{percent .Network.Utilisation}} %</td></tr>
{{end}}</table>
<p align=center>Updated at {{time .Now}}</p>
{{end}}

{{define "notfound"}}<h3 align=center>Sorry, the requested information is not found: {{if .}}{{safe .}}{{else}}<i>empty</i>{{end}}</h3>
<p align=center>Return to the <a href='index.html'>index</a></p>
{{end}}
`
