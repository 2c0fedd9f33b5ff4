// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package server

import (
	"crypto/tls"
	"io/ioutil"

	"github.com/bitmark-inc/logger"
	"golang.org/x/crypto/sha3"
)

// Certificate - load a PEM certificate and key, returning the TLS
// configuration and the certificate fingerprint
func Certificate(log *logger.L, certificateFile string, keyFile string) (*tls.Config, [32]byte, error) {
	var fin [32]byte

	certificate, err := ioutil.ReadFile(certificateFile)
	if nil != err {
		log.Errorf("read certificate: %q  error: %s", certificateFile, err)
		return nil, fin, err
	}
	key, err := ioutil.ReadFile(keyFile)
	if nil != err {
		log.Errorf("read key: %q  error: %s", keyFile, err)
		return nil, fin, err
	}

	keyPair, err := tls.X509KeyPair(certificate, key)
	if nil != err {
		log.Errorf("failed to load keypair: %v", err)
		return nil, fin, err
	}

	tlsConfiguration := &tls.Config{
		Certificates: []tls.Certificate{keyPair},
		NextProtos:   []string{"http/1.1"},
	}

	return tlsConfiguration, Fingerprint(keyPair.Certificate[0]), nil
}

// Fingerprint - SHA3-256 of a DER certificate
//
// openssl x509 -outform DER -in scash-explorer.crt | sha3sum -a 256
func Fingerprint(certificate []byte) [32]byte {
	return sha3.Sum256(certificate)
}
