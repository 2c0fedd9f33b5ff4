// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package fixtures - shared set-up for package tests
package fixtures

import (
	"fmt"
	"os"

	"github.com/bitmark-inc/logger"
)

const (
	dir         = "testing"
	LogCategory = "testing"
)

// sample identifiers
const (
	AddressA = "SMASi45ub7Qe4ZE36UT5G6cU4ud8Fhhe4d"
	AddressB = "SeS4F3cw9KTAb8dLcukC7edhDQ7cn5d4gE"
	AddressC = "SYkbUrMWeWQLGsCmrG6dLaYyNoVKf58ZTB"
	AddressD = "SqNAYT3j5qcdsyuMNmPfYetW5v6JXmj54o"

	TxId1    = "9e9cb0eb53f16947ccf25ec84d8dbc74254770f58904dba41ecccc3fc1626e53"
	TxId2    = "a13043b026c48bbf33feff9243a8f506b40928b5b7a767c76fb008f86bebb273"
	TxId3    = "7f6a6f0fb23c6f5da2cec255404e4fb440034d6608697a8d41bed440e50454f3"
	BlockId1 = "1af3176813e02ea68ef786e4d3cea27d26934b484e73cf575dcad6ba2b0aee0c"
	BlockId2 = "a923732881584d8c4fa2815d2802827283e0ad84173581569969e58b081006f7"
	BlockId3 = "e3dfc967a64cb14028d512c9791e558e08baa7196b50ac2f86702824c1c09972"
)

// SetupTestLogger - start logging to a scratch directory
func SetupTestLogger() {
	removeFiles()
	_ = os.Mkdir(dir, 0700)

	logging := logger.Configuration{
		Directory: dir,
		File:      fmt.Sprintf("%s.log", LogCategory),
		Size:      1048576,
		Count:     10,
		Console:   false,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	}

	// start logging
	_ = logger.Initialise(logging)
}

// TeardownTestLogger - stop logging and remove the scratch directory
func TeardownTestLogger() {
	logger.Finalise()
	removeFiles()
}

// Directory - scratch directory for test data, created on demand
func Directory(name string) string {
	d := dir + "/" + name
	_ = os.MkdirAll(d, 0700)
	return d
}

func removeFiles() {
	err := os.RemoveAll(dir)
	if nil != err {
		fmt.Println("remove dir with error: ", err)
	}
}
