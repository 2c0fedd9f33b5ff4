// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage_test

import (
	"os"
	"testing"

	"github.com/biberhund/scashexplorer/storage"
)

// test database directory
const (
	databaseDirectory = "test.storage"
)

var backends = []string{
	storage.BackendFiles,
	storage.BackendLevelDB,
}

// remove all files created by test
func removeFiles() {
	os.RemoveAll(databaseDirectory)
}

// configure for testing
func setup(t *testing.T, backend string) {
	removeFiles()
	err := storage.Initialise(storage.Configuration{
		Backend:   backend,
		Directory: databaseDirectory,
	})
	if nil != err {
		t.Fatalf("storage initialise %s error: %s", backend, err)
	}
}

// post test cleanup
func teardown(t *testing.T) {
	storage.Finalise()
	removeFiles()
}
