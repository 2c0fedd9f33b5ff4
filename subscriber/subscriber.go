// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package subscriber - receive block events from the node
//
// the node publishes each connected block as a JSON encoded
// ledger.Event, optionally preceded by a topic frame
package subscriber

import (
	"encoding/json"
	"time"

	"github.com/bitmark-inc/logger"
	zmq "github.com/pebbe/zmq4"

	"github.com/biberhund/scashexplorer/fault"
	"github.com/biberhund/scashexplorer/ledger"
	"github.com/biberhund/scashexplorer/messagebus"
	"github.com/biberhund/scashexplorer/metrics"
	"github.com/biberhund/scashexplorer/zmqutil"
)

const pollTimeout = time.Second

// Configuration - where to subscribe and the CURVE keys to do it with
type Configuration struct {
	Connect    string `gluamapper:"connect" json:"connect"`
	IPv6       bool   `gluamapper:"ipv6" json:"ipv6"`
	Topic      string `gluamapper:"topic" json:"topic"`
	ServerKey  string `gluamapper:"server_public_key" json:"server_public_key"`
	PublicKey  string `gluamapper:"public_key" json:"public_key"`
	PrivateKey string `gluamapper:"private_key" json:"private_key"`
}

// Subscriber - forwards node events to a queue
type Subscriber struct {
	log    *logger.L
	name   string
	socket *zmq.Socket
	poller *zmqutil.Poller
	queue  *messagebus.Queue
}

// New - connect to the node publisher
func New(name string, c Configuration, queue *messagebus.Queue, log *logger.L) (*Subscriber, error) {
	log.Info("starting…")

	serverKey, err := zmqutil.ReadPublicKeyFile(c.ServerKey)
	if nil != err {
		log.Errorf("read server key: %q  error: %s", c.ServerKey, err)
		return nil, err
	}
	publicKey, err := zmqutil.ReadPublicKeyFile(c.PublicKey)
	if nil != err {
		log.Errorf("read public key: %q  error: %s", c.PublicKey, err)
		return nil, err
	}
	privateKey, err := zmqutil.ReadPrivateKeyFile(c.PrivateKey)
	if nil != err {
		log.Errorf("read private key: %q  error: %s", c.PrivateKey, err)
		return nil, err
	}

	err = zmqutil.StartAuthentication()
	if nil != err {
		return nil, err
	}

	socket, err := zmqutil.NewSubscriber(c.Connect, c.IPv6, serverKey, publicKey, privateKey, c.Topic)
	if nil != err {
		log.Errorf("connect to: %q  error: %s", c.Connect, err)
		return nil, err
	}
	log.Infof("connect to: %q", c.Connect)

	poller := zmqutil.NewPoller()
	poller.Add(socket, zmq.POLLIN)

	return &Subscriber{
		log:    log,
		name:   name,
		socket: socket,
		poller: poller,
		queue:  queue,
	}, nil
}

// Run - background process receiving until shutdown
func (s *Subscriber) Run(args interface{}, shutdown <-chan struct{}) {
	defer func() {
		s.poller.Remove(s.socket)
		s.socket.Close()
	}()

loop:
	for {
		select {
		case <-shutdown:
			break loop
		default:
		}

		polled, err := s.poller.Poll(pollTimeout)
		if nil != err {
			s.log.Errorf("poll error: %s", err)
			continue loop
		}
		for range polled {
			frames, err := s.socket.RecvMessageBytes(0)
			if nil != err {
				s.log.Errorf("receive error: %s", err)
				continue
			}
			_ = s.process(frames)
		}
	}
	s.log.Info("finished")
}

// decode the last frame and queue it
func (s *Subscriber) process(frames [][]byte) error {
	if 0 == len(frames) {
		return fault.UnknownEventFormat
	}
	data := frames[len(frames)-1]

	var event ledger.Event
	err := json.Unmarshal(data, &event)
	if nil != err || nil == event.Block || event.Height < 0 {
		s.log.Warnf("discard event: %q", data)
		return fault.UnknownEventFormat
	}

	metrics.EventsReceived.Inc()
	s.log.Debugf("received height: %d  block: %s", event.Height, event.Block.Hash)
	if !s.queue.TrySend(s.name, event) {
		s.log.Errorf("queue full, dropped height: %d  block: %s", event.Height, event.Block.Hash)
		return fault.EventQueueFull
	}
	return nil
}
