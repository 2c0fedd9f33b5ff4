// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package rpcclient - ledger queries sent to the node over JSON RPC
package rpcclient

import (
	"crypto/tls"
	"net"
	"net/rpc"
	"net/rpc/jsonrpc"
	"sync"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/biberhund/scashexplorer/fault"
	"github.com/biberhund/scashexplorer/ledger"
)

const (
	dialTimeout = 5 * time.Second
	callTimeout = 10 * time.Second
)

// Configuration - ledger section of the configuration file
type Configuration struct {
	Connect string `gluamapper:"connect" json:"connect"`
	UseTLS  bool   `gluamapper:"use_tls" json:"use_tls"`
}

// TransactionArguments - request for Ledger.Transaction
type TransactionArguments struct {
	Hash string `json:"hash"`
}

// TransactionReply - result of Ledger.Transaction
type TransactionReply struct {
	Found         bool                `json:"found"`
	Confirmations int                 `json:"confirmations"`
	Transaction   *ledger.Transaction `json:"transaction"`
}

// BestHeightArguments - request for Ledger.BestHeight
type BestHeightArguments struct{}

// BestHeightReply - result of Ledger.BestHeight
type BestHeightReply struct {
	Height int `json:"height"`
}

// BlockHashArguments - request for Ledger.BlockHash
type BlockHashArguments struct {
	Height int `json:"height"`
}

// BlockHashReply - result of Ledger.BlockHash
type BlockHashReply struct {
	Found bool   `json:"found"`
	Hash  string `json:"hash"`
}

// Client - a ledger.Ledger backed by a node connection
//
// calls are never retried; a failed or timed out call drops the
// connection so the next call redials, and the failure is reported
// as not found
//
// the lock only covers the connection, calls run concurrently
type Client struct {
	sync.Mutex
	log           *logger.L
	configuration Configuration
	timeout       time.Duration
	client        *rpc.Client
}

// check interface is satisfied
var _ ledger.Ledger = (*Client)(nil)

// New - create a client, the connection is made on first use
func New(configuration Configuration, log *logger.L) (*Client, error) {
	if "" == configuration.Connect {
		return nil, fault.MissingParameters
	}
	return &Client{
		log:           log,
		configuration: configuration,
		timeout:       callTimeout,
	}, nil
}

// Close - shutdown the node connection
func (c *Client) Close() {
	c.Lock()
	defer c.Unlock()
	c.disconnect()
}

// Transaction - see ledger.Ledger
func (c *Client) Transaction(hash string) (*ledger.Transaction, int, bool) {
	var reply TransactionReply
	if err := c.call("Ledger.Transaction", &TransactionArguments{Hash: hash}, &reply); nil != err {
		return nil, 0, false
	}
	if !reply.Found || nil == reply.Transaction {
		return nil, 0, false
	}
	return reply.Transaction, reply.Confirmations, true
}

// BestHeight - see ledger.Ledger
func (c *Client) BestHeight() int {
	var reply BestHeightReply
	if err := c.call("Ledger.BestHeight", &BestHeightArguments{}, &reply); nil != err {
		return -1
	}
	return reply.Height
}

// BlockHash - see ledger.Ledger
func (c *Client) BlockHash(height int) (string, bool) {
	var reply BlockHashReply
	if err := c.call("Ledger.BlockHash", &BlockHashArguments{Height: height}, &reply); nil != err {
		return "", false
	}
	return reply.Hash, reply.Found
}

func (c *Client) call(method string, args interface{}, reply interface{}) error {
	client, err := c.current()
	if nil != err {
		return err
	}

	call := client.Go(method, args, reply, make(chan *rpc.Call, 1))

	timer := time.NewTimer(c.timeout)
	defer timer.Stop()

	select {
	case <-call.Done:
		err = call.Error
	case <-timer.C:
		err = fault.LedgerTimeout
	}

	if nil != err {
		c.log.Errorf("%s error: %s", method, err)
		c.drop(client)
	}
	return err
}

// the live connection, dialled if necessary
func (c *Client) current() (*rpc.Client, error) {
	c.Lock()
	defer c.Unlock()

	if nil == c.client {
		if err := c.connect(); nil != err {
			c.log.Warnf("connect to: %q  error: %s", c.configuration.Connect, err)
			return nil, fault.LedgerUnavailable
		}
	}
	return c.client, nil
}

// close client unless another caller already replaced it
func (c *Client) drop(client *rpc.Client) {
	c.Lock()
	defer c.Unlock()

	if client == c.client {
		c.disconnect()
	}
}

func (c *Client) connect() error {
	var conn net.Conn
	var err error
	if c.configuration.UseTLS {
		dialer := &net.Dialer{Timeout: dialTimeout}
		conn, err = tls.DialWithDialer(dialer, "tcp", c.configuration.Connect, &tls.Config{
			InsecureSkipVerify: true,
		})
	} else {
		conn, err = net.DialTimeout("tcp", c.configuration.Connect, dialTimeout)
	}
	if nil != err {
		return err
	}
	c.log.Infof("connected to: %s", conn.RemoteAddr())
	c.client = jsonrpc.NewClient(conn)
	return nil
}

// pending calls finish with rpc.ErrShutdown
func (c *Client) disconnect() {
	if nil != c.client {
		c.client.Close() // also closes conn
	}
	c.client = nil
}
