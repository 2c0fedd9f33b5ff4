// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package router

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/biberhund/scashexplorer/currency"
	"github.com/biberhund/scashexplorer/templates"
)

// endpoints that are generated on request
const (
	styleEndpoint    = "mystyle"
	supplyEndpoint   = "circulatingsupply"
	statsEndpoint    = "stats"
	richListEndpoint = "richlist"
	vaultEndpoint    = "vault"
	faviconEndpoint  = "favicon"
)

func (r *Router) fixed(name string) (Reply, bool) {
	switch name {
	case styleEndpoint:
		return Reply{
			Status:      http.StatusOK,
			ContentType: ContentCSS,
			Body:        []byte(templates.StyleSheet),
		}, true

	case supplyEndpoint:
		return Reply{
			Status:      http.StatusOK,
			ContentType: ContentText,
			Body:        []byte(strconv.FormatInt(r.RichList.Supply(), 10)),
		}, true

	case statsEndpoint:
		return r.stats(), true

	case richListEndpoint:
		return r.richList(), true

	case vaultEndpoint:
		return r.vaultList(), true

	case faviconEndpoint:
		return Reply{
			Status:      http.StatusNotFound,
			ContentType: ContentEmpty,
		}, true
	}
	return Reply{}, false
}

func (r *Router) stats() Reply {
	info := templates.StatsInfo{
		Height:    r.Indexer.Height(),
		Objects:   r.Registry.Count(),
		Addresses: r.RichList.Len(),
		Messages:  r.Feed.Len(),
		Documents: r.Vault.Len(),
		Supply:    r.RichList.Supply(),
		Network:   r.Indexer.NetworkStats(),
		Now:       time.Now().Unix(),
	}
	return html([]byte(templates.Head("Statistics", false) + templates.Stats(info) + templates.Tail()))
}

func (r *Router) richList() Reply {
	entries, sum := r.RichList.Top(richListSize)
	supply := r.RichList.Supply()

	share := 0.0
	if supply > 0 {
		share = 100 * float64(sum) / (float64(supply) * currency.Coin)
	}

	info := templates.RichListInfo{
		Limit:   richListSize,
		Entries: entries,
		Sum:     sum,
		Supply:  supply,
		Share:   share,
	}
	body := r.Registry.Linkify(templates.RichList(info))
	return html([]byte(templates.Head("Rich list", false) + body + templates.Tail()))
}

func (r *Router) vaultList() Reply {
	documents, total := r.Vault.List(vaultListSize)
	info := templates.VaultInfo{
		Documents: documents,
		Total:     total,
	}
	return html([]byte(templates.VaultHead("") + templates.Vault(info) + templates.Tail()))
}

func (r *Router) documentSearch(query string) Reply {
	if q, err := url.QueryUnescape(query); nil == err {
		query = q
	}

	result := r.Vault.Find(query)
	body := r.Registry.Linkify(templates.Search(result))
	return html([]byte(templates.VaultHead("Search "+query) + body + templates.Tail()))
}

type blockIndexReply struct {
	BlockHash string `json:"blockHash,omitempty"`
	Status    string `json:"status,omitempty"`
}

// block hash at a height as JSON
func (r *Router) blockIndex(parameter string) Reply {
	reply := blockIndexReply{}

	height, err := strconv.Atoi(parameter)
	switch {
	case nil == r.Ledger:
		reply.Status = "error"
	case nil != err || height < 0 || height > r.Ledger.BestHeight():
		reply.Status = "wrong block"
	default:
		hash, ok := r.Ledger.BlockHash(height)
		if ok {
			reply.BlockHash = hash
		} else {
			reply.Status = "error"
		}
	}

	body, err := json.Marshal(reply)
	if nil != err {
		r.log.Errorf("block index json error: %s", err)
		body = []byte(`{"status":"error"}`)
	}
	return Reply{
		Status:      http.StatusOK,
		ContentType: ContentJSON,
		Body:        body,
	}
}
