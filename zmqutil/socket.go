// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package zmqutil

import (
	zmq "github.com/pebbe/zmq4"
)

// keep-alive settings for long lived subscriptions
const (
	keepAliveCount    = 5
	keepAliveIdle     = 60
	keepAliveInterval = 60
)

// NewSubscriber - a CURVE secured SUB socket connected to a publisher
//
// an empty prefix subscribes to everything
func NewSubscriber(connect string, v6 bool, serverPublicKey []byte, publicKey []byte, privateKey []byte, prefix string) (*zmq.Socket, error) {
	socket, err := zmq.NewSocket(zmq.SUB)
	if nil != err {
		return nil, err
	}

	// client side of CURVE
	err = socket.SetCurveServer(0)
	if nil == err {
		err = socket.SetCurvePublickey(string(publicKey))
	}
	if nil == err {
		err = socket.SetCurveSecretkey(string(privateKey))
	}
	if nil == err {
		err = socket.SetCurveServerkey(string(serverPublicKey))
	}
	if nil != err {
		socket.Close()
		return nil, err
	}

	socket.SetIdentity(string(publicKey))
	socket.SetIpv6(v6)
	socket.SetLinger(0)

	socket.SetTcpKeepalive(1)
	socket.SetTcpKeepaliveCnt(keepAliveCount)
	socket.SetTcpKeepaliveIdle(keepAliveIdle)
	socket.SetTcpKeepaliveIntvl(keepAliveInterval)

	err = socket.SetSubscribe(prefix)
	if nil == err {
		err = socket.Connect(connect)
	}
	if nil != err {
		socket.Close()
		return nil, err
	}
	return socket, nil
}
