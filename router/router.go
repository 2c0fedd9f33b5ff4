// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package router - maps a request path to a reply
//
// entity documents are resolved against the ledger on every request,
// unless resolving the same document was recently too slow, then the
// stored document is returned as it is
package router

import (
	"net/http"
	"net/url"
	"strings"
	"sync/atomic"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/patrickmn/go-cache"

	"github.com/biberhund/scashexplorer/counter"
	"github.com/biberhund/scashexplorer/document"
	"github.com/biberhund/scashexplorer/feed"
	"github.com/biberhund/scashexplorer/indexer"
	"github.com/biberhund/scashexplorer/ledger"
	"github.com/biberhund/scashexplorer/markup"
	"github.com/biberhund/scashexplorer/metrics"
	"github.com/biberhund/scashexplorer/registry"
	"github.com/biberhund/scashexplorer/richlist"
	"github.com/biberhund/scashexplorer/storage"
	"github.com/biberhund/scashexplorer/templates"
	"github.com/biberhund/scashexplorer/vault"
)

// content types
const (
	ContentHTML  = "text/html; charset=utf-8"
	ContentCSS   = "text/css; charset=utf-8"
	ContentText  = "text/plain; charset=utf-8"
	ContentJSON  = "application/json"
	ContentEmpty = ""
)

// defaults
const (
	DefaultSlowRequestCutoff = 2 * time.Second
	DefaultLatencyExpiry     = 10 * time.Minute

	richListSize   = 50
	vaultListSize  = 100
	blockIndexPath = "api/block-index/"
	docSearchPath  = "doc?q="
	searchPath     = "search?q="
)

// Reply - the response to one request
type Reply struct {
	Status      int
	ContentType string
	Body        []byte
}

// Components - everything a reply can be built from
type Components struct {
	Ledger    ledger.Ledger
	Registry  *registry.Registry
	Documents *document.Store
	Indexer   *indexer.Indexer
	RichList  *richlist.RichList
	Feed      *feed.Feed
	Vault     *vault.Vault
}

// Router - resolves request paths
type Router struct {
	log *logger.L
	Components

	resolver  *markup.Resolver
	latency   *cache.Cache
	cutoff    int64 // atomic, nanoseconds
	malformed counter.Counter
}

// New - create a router
func New(c Components, cutoff time.Duration, expiry time.Duration, log *logger.L) *Router {
	if cutoff <= 0 {
		cutoff = DefaultSlowRequestCutoff
	}
	if expiry <= 0 {
		expiry = DefaultLatencyExpiry
	}
	return &Router{
		log:        log,
		Components: c,
		resolver:   markup.NewResolver(c.Ledger, log),
		latency:    cache.New(expiry, 2*expiry),
		cutoff:     int64(cutoff),
	}
}

// SetSlowRequestCutoff - latency above which a document is served raw
func (r *Router) SetSlowRequestCutoff(cutoff time.Duration) {
	if cutoff > 0 {
		atomic.StoreInt64(&r.cutoff, int64(cutoff))
	}
}

// Malformed - number of malformed requests seen
func (r *Router) Malformed() uint64 {
	return r.malformed.Uint64()
}

// Resolve - produce the reply for a request path
func (r *Router) Resolve(path string) Reply {
	request := path
	if i := strings.Index(request, "/"); i >= 0 {
		request = request[i+1:]
	}

	if strings.HasPrefix(request, blockIndexPath) {
		metrics.Requests.WithLabelValues(metrics.KindAPI).Inc()
		return r.blockIndex(request[len(blockIndexPath):])
	}

	if strings.HasPrefix(request, docSearchPath) {
		metrics.Requests.WithLabelValues(metrics.KindSearch).Inc()
		return r.documentSearch(request[len(docSearchPath):])
	}

	search := false
	if strings.HasPrefix(request, searchPath) {
		q := request[len(searchPath):]
		if u, err := url.QueryUnescape(q); nil == err {
			q = u
		}
		q = strings.TrimSpace(q)
		if "" == q {
			metrics.Requests.WithLabelValues(metrics.KindNotFound).Inc()
			return notFound("")
		}
		request = q + ".html"
		search = true
	}

	filtered := filterPath(request)
	base := filtered
	if i := strings.LastIndex(base, "/"); i >= 0 {
		base = base[i+1:]
	}

	dot := strings.Index(base, ".")
	name := base
	if dot >= 0 {
		name = base[:dot]
	}

	if reply, ok := r.fixed(name); ok {
		metrics.Requests.WithLabelValues(metrics.KindReport).Inc()
		return reply
	}

	switch {
	case "" == base:
		name = indexer.IndexId
	case dot < 0 && !search:
		r.malformed.Increment()
		metrics.Requests.WithLabelValues(metrics.KindMalformed).Inc()
		r.log.Debugf("malformed request: %q", path)
		return notFound(filtered)
	case "" == name:
		name = indexer.IndexId
	}

	return r.entity(storage.SafeKey(name), request)
}

// keep only characters that can appear in an entity path
func filterPath(s string) string {
	b := make([]byte, 0, len(s))
	for i := 0; i < len(s); i += 1 {
		c := s[i]
		switch {
		case 'a' <= c && c <= 'z':
		case 'A' <= c && c <= 'Z':
		case '0' <= c && c <= '9':
		case '?' == c || '.' == c || '/' == c:
		default:
			continue
		}
		b = append(b, c)
	}
	return string(b)
}

func (r *Router) entity(id string, request string) Reply {
	start := time.Now()
	data, ok := r.Documents.Read(id)
	if !ok {
		metrics.Requests.WithLabelValues(metrics.KindNotFound).Inc()
		return notFound(request)
	}

	cutoff := time.Duration(atomic.LoadInt64(&r.cutoff))

	last, tracked := r.latency.Get(id)
	if tracked && last.(time.Duration) > cutoff {
		metrics.Requests.WithLabelValues(metrics.KindRaw).Inc()
		r.log.Debugf("raw: %s  last latency: %s", id, last)

		// a fast raw reply lets the next request resolve again
		r.latency.Set(id, time.Since(start), cache.DefaultExpiration)
		return html(data)
	}

	resolved := r.resolver.Resolve(data)
	elapsed := time.Since(start)

	metrics.ResolveLatency.Observe(elapsed.Seconds())
	metrics.Requests.WithLabelValues(metrics.KindDocument).Inc()

	if tracked || elapsed > cutoff {
		r.latency.Set(id, elapsed, cache.DefaultExpiration)
		if elapsed > cutoff {
			r.log.Warnf("slow: %s  latency: %s", id, elapsed)
		}
	}
	return html(resolved)
}

func html(body []byte) Reply {
	return Reply{
		Status:      http.StatusOK,
		ContentType: ContentHTML,
		Body:        body,
	}
}

func notFound(request string) Reply {
	return Reply{
		Status:      http.StatusNotFound,
		ContentType: ContentHTML,
		Body:        []byte(templates.NotFound(request)),
	}
}
