// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package metrics - Prometheus instruments of the explorer
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "scash_explorer"

// request kinds
const (
	KindDocument  = "document"
	KindRaw       = "raw"
	KindReport    = "report"
	KindAPI       = "api"
	KindSearch    = "search"
	KindNotFound  = "not_found"
	KindMalformed = "malformed"
)

// indexing
var (
	BlocksIndexed = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "blocks_indexed_total",
		Help:      "Blocks written to the index",
	})

	TransactionsIndexed = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "transactions_indexed_total",
		Help:      "Transaction documents written",
	})

	DuplicatesSuppressed = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "duplicates_suppressed_total",
		Help:      "Address rows skipped as already indexed",
	})

	AddressRows = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "address_rows_total",
		Help:      "Payment rows appended to address documents",
	})

	MessagesAccepted = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "messages_accepted_total",
		Help:      "Messages accepted by destination",
	}, []string{"destination"})

	Rebuilds = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "index_rebuilds_total",
		Help:      "Landing page rebuilds",
	})

	IndexedHeight = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "indexed_height",
		Help:      "Highest block height written to the index",
	})
)

// serving
var (
	Requests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "requests_total",
		Help:      "Requests by kind",
	}, []string{"kind"})

	ResolveLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "resolve_latency_seconds",
		Help:      "Time to resolve a document",
		Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
	})

	Connections = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "http_connections",
		Help:      "Open HTTP connections",
	})

	EventsReceived = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "events_received_total",
		Help:      "Ledger events received from the node",
	})
)
