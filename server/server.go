// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package server - HTTP listeners for the explorer pages and metrics
package server

import (
	"context"
	"crypto/tls"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/net/netutil"

	"github.com/biberhund/scashexplorer/fault"
	"github.com/biberhund/scashexplorer/metrics"
)

const (
	minConnectionCount = 1
	readWriteTimeout   = 10 * time.Second
	shutdownTimeout    = 5 * time.Second
	metricsPath        = "/metrics"
)

// Configuration - listener settings from the configuration file
type Configuration struct {
	MaximumConnections int      `gluamapper:"maximum_connections" json:"maximum_connections"`
	Listen             []string `gluamapper:"listen" json:"listen"`
	Certificate        string   `gluamapper:"certificate" json:"certificate"`
	PrivateKey         string   `gluamapper:"private_key" json:"private_key"`
	RequestsPerSecond  float64  `gluamapper:"requests_per_second" json:"requests_per_second"`
	Burst              int      `gluamapper:"burst" json:"burst"`
	Metrics            []string `gluamapper:"metrics" json:"metrics"`
}

// Server - a set of HTTP listeners sharing one handler
type Server struct {
	sync.Mutex
	log       *logger.L
	listen    []string
	limit     int
	tlsConfig *tls.Config
	handler   http.Handler

	servers   []*http.Server
	listeners []net.Listener
}

// New - validate the configuration and build the request mux
//
// a nil tlsConfig serves plain HTTP
func New(c Configuration, handler http.Handler, tlsConfig *tls.Config, log *logger.L) (*Server, error) {
	if 0 == len(c.Listen) {
		log.Errorf("no listen addresses")
		return nil, fault.MissingParameters
	}
	if c.MaximumConnections < minConnectionCount {
		log.Errorf("invalid maximum connection limit: %d", c.MaximumConnections)
		return nil, fault.ConnectionLimitIsTooSmall
	}

	allow := make([]*net.IPNet, 0, len(c.Metrics))
	for _, ip := range c.Metrics {
		_, cidr, err := net.ParseCIDR(strings.TrimSpace(ip))
		if nil != err {
			log.Errorf("metrics allow: %q  error: %s", ip, err)
			return nil, err
		}
		allow = append(allow, cidr)
	}

	mux := http.NewServeMux()
	if len(allow) > 0 {
		mux.Handle(metricsPath, restrict(allow, promhttp.Handler()))
	}
	mux.Handle("/", handler)

	return &Server{
		log:       log,
		listen:    c.Listen,
		limit:     c.MaximumConnections,
		tlsConfig: tlsConfig,
		handler:   mux,
	}, nil
}

// Start - bind every listen address and serve in the background
func (s *Server) Start() error {
	s.Lock()
	defer s.Unlock()

	for _, listen := range s.listen {
		if strings.HasPrefix(listen, "*:") {
			// change "*:PORT" to "[::]:PORT" for tcp4 and tcp6
			listen = "[::]" + listen[1:]
		}

		ln, err := net.Listen("tcp", listen)
		if nil != err {
			s.log.Errorf("listen: %q  error: %s", listen, err)
			s.close()
			return err
		}
		ln = netutil.LimitListener(ln, s.limit)
		if nil != s.tlsConfig {
			ln = tls.NewListener(ln, s.tlsConfig)
		}

		server := &http.Server{
			Handler:        s.handler,
			ReadTimeout:    readWriteTimeout,
			WriteTimeout:   readWriteTimeout,
			MaxHeaderBytes: 1 << 20,
			ConnState:      connectionState,
		}

		s.servers = append(s.servers, server)
		s.listeners = append(s.listeners, ln)
		s.log.Infof("serving: %s  TLS: %t", ln.Addr(), nil != s.tlsConfig)

		go func(server *http.Server, ln net.Listener) {
			err := server.Serve(ln)
			if nil != err && http.ErrServerClosed != err {
				s.log.Errorf("serve: %s  error: %s", ln.Addr(), err)
			}
		}(server, ln)
	}
	return nil
}

// Addresses - bound addresses, useful when a port of zero was requested
func (s *Server) Addresses() []string {
	s.Lock()
	defer s.Unlock()

	a := make([]string, len(s.listeners))
	for i, ln := range s.listeners {
		a[i] = ln.Addr().String()
	}
	return a
}

// Stop - shut down all listeners, waiting a short time for requests in progress
func (s *Server) Stop() {
	s.Lock()
	defer s.Unlock()
	s.close()
}

// must hold lock
func (s *Server) close() {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	for _, server := range s.servers {
		err := server.Shutdown(ctx)
		if nil != err {
			s.log.Warnf("shutdown error: %s", err)
		}
	}
	for _, ln := range s.listeners {
		_ = ln.Close()
	}
	s.servers = nil
	s.listeners = nil
}

// Run - background process wrapper around Start and Stop
func (s *Server) Run(args interface{}, shutdown <-chan struct{}) {
	s.log.Info("starting…")
	err := s.Start()
	if nil != err {
		s.log.Criticalf("start error: %s", err)
		<-shutdown
		return
	}
	<-shutdown
	s.Stop()
	s.log.Info("finished")
}

func connectionState(_ net.Conn, state http.ConnState) {
	switch state {
	case http.StateNew:
		metrics.Connections.Inc()
	case http.StateHijacked, http.StateClosed:
		metrics.Connections.Dec()
	}
}

// only allow listed networks
func restrict(allow []*net.IPNet, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		host, _, err := net.SplitHostPort(r.RemoteAddr)
		if nil == err {
			ip := net.ParseIP(host)
			for _, cidr := range allow {
				if nil != ip && cidr.Contains(ip) {
					next.ServeHTTP(w, r)
					return
				}
			}
		}
		http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
	})
}
