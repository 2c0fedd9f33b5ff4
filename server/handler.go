// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package server

import (
	"net"
	"net/http"
	"time"

	"github.com/bitmark-inc/logger"
	"golang.org/x/time/rate"

	"github.com/biberhund/scashexplorer/fault"
	"github.com/biberhund/scashexplorer/router"
)

// longest a request will wait for the rate limiter
const maximumDelay = 2 * time.Second

// Resolver - produces the reply for a request path
type Resolver interface {
	Resolve(path string) router.Reply
}

// Handler - serves explorer pages
type Handler struct {
	log      *logger.L
	access   *logger.L
	resolver Resolver
	limiter  *rate.Limiter
}

// NewHandler - a rate limited handler, a zero limit disables limiting
func NewHandler(resolver Resolver, limit float64, burst int, log *logger.L, access *logger.L) *Handler {
	h := &Handler{
		log:      log,
		access:   access,
		resolver: resolver,
	}
	if limit > 0 {
		if burst < 1 {
			burst = 1
		}
		h.limiter = rate.NewLimiter(rate.Limit(limit), burst)
	}
	return h
}

// ServeHTTP - GET or HEAD only
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	if http.MethodGet != r.Method && http.MethodHead != r.Method {
		w.Header().Set("Allow", "GET, HEAD")
		http.Error(w, fault.MalformedRequest.Error(), http.StatusMethodNotAllowed)
		h.logAccess(r, http.StatusMethodNotAllowed, 0, start)
		return
	}

	if err := h.limit(); nil != err {
		http.Error(w, err.Error(), http.StatusTooManyRequests)
		h.logAccess(r, http.StatusTooManyRequests, 0, start)
		return
	}

	defer func() {
		if e := recover(); nil != e {
			fault.Criticalf("resolve: %q  panic: %v", r.URL.RequestURI(), e)
			http.Error(w, fault.ResolverFailed.Error(), http.StatusInternalServerError)
			h.logAccess(r, http.StatusInternalServerError, 0, start)
		}
	}()

	reply := h.resolver.Resolve(r.URL.RequestURI())

	if "" != reply.ContentType {
		w.Header().Set("Content-Type", reply.ContentType)
	}
	w.WriteHeader(reply.Status)

	n := 0
	if http.MethodHead != r.Method && len(reply.Body) > 0 {
		var err error
		n, err = w.Write(reply.Body)
		if nil != err {
			h.log.Debugf("write to: %s  error: %s", r.RemoteAddr, err)
		}
	}
	h.logAccess(r, reply.Status, n, start)
}

// wait for a token, refuse if the wait would be too long
func (h *Handler) limit() error {
	if nil == h.limiter {
		return nil
	}
	reservation := h.limiter.Reserve()
	if !reservation.OK() {
		return fault.RateLimiting
	}
	delay := reservation.Delay()
	if delay > maximumDelay {
		reservation.Cancel()
		return fault.RateLimiting
	}
	time.Sleep(delay)
	return nil
}

func (h *Handler) logAccess(r *http.Request, status int, size int, start time.Time) {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if nil != err {
		host = r.RemoteAddr
	}
	h.access.Infof("%s %q %s %d %d %s", host, r.URL.RequestURI(), r.Method, status, size, time.Since(start))
}
