// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"encoding/binary"
	"fmt"
	"path/filepath"
	"reflect"
	"sync"

	"github.com/syndtr/goleveldb/leveldb"
	ldb_opt "github.com/syndtr/goleveldb/leveldb/opt"

	"github.com/biberhund/scashexplorer/fault"
)

// back end names
const (
	BackendFiles   = "files"
	BackendLevelDB = "leveldb"
)

// Configuration - storage section of the configuration file
type Configuration struct {
	Backend   string `gluamapper:"backend" json:"backend"`
	Directory string `gluamapper:"directory" json:"directory"`
}

// exported storage pools
//
// note all must be exported (i.e. initial capital) or initialisation will panic
type pools struct {
	Objects  Handle `pool:"blockexplorer" prefix:"E" extension:".html"`
	RichList Handle `pool:"richlist" prefix:"R" extension:".html"`
	Messages Handle `pool:"messages" prefix:"M" extension:".html"`
	Vault    Handle `pool:"vault" prefix:"V" extension:".html"`
	Counters Handle `pool:"webdb" prefix:"C" extension:""`
}

// Pool - the set of exported pools
var Pool pools

// for database version
var versionKey = []byte{0x00, 'V', 'E', 'R', 'S', 'I', 'O', 'N'}

const (
	currentDBVersion = 0x100
	databaseName     = "explorer.leveldb"
)

// holds the database handle
var poolData struct {
	sync.RWMutex
	initialised bool
	database    *leveldb.DB
}

// Initialise - open up the pools
//
// this must be called before any pool is accessed
func Initialise(configuration Configuration) error {
	poolData.Lock()
	defer poolData.Unlock()

	if poolData.initialised {
		return fault.AlreadyInitialised
	}

	ok := false
	defer func() {
		if !ok {
			dbClose()
		}
	}()

	switch configuration.Backend {
	case BackendFiles:
	case BackendLevelDB:
		db, err := openDatabase(filepath.Join(configuration.Directory, databaseName))
		if nil != err {
			return err
		}
		poolData.database = db
	default:
		return fault.InvalidBackend
	}

	// this will be a struct type
	poolType := reflect.TypeOf(Pool)

	// get write access by using pointer + Elem()
	poolValue := reflect.ValueOf(&Pool).Elem()

	// scan each field
	for i := 0; i < poolType.NumField(); i += 1 {

		fieldInfo := poolType.Field(i)

		name := fieldInfo.Tag.Get("pool")
		if "" == name {
			return fmt.Errorf("pool: %v has no name", fieldInfo.Name)
		}

		var h Handle
		switch configuration.Backend {
		case BackendFiles:
			var err error
			h, err = NewFileHandle(filepath.Join(configuration.Directory, name), fieldInfo.Tag.Get("extension"))
			if nil != err {
				return err
			}

		case BackendLevelDB:
			prefixTag := fieldInfo.Tag.Get("prefix")
			if 1 != len(prefixTag) {
				return fmt.Errorf("pool: %v has invalid prefix: %q", fieldInfo.Name, prefixTag)
			}
			prefix := prefixTag[0]
			limit := []byte(nil)
			if prefix < 255 {
				limit = []byte{prefix + 1}
			}
			h = &levelHandle{
				prefix:   prefix,
				limit:    limit,
				database: poolData.database,
			}
		}

		poolValue.Field(i).Set(reflect.ValueOf(h))
	}

	poolData.initialised = true
	ok = true // prevent db close
	return nil
}

// Handles - every initialised pool by its pool name
func Handles() map[string]Handle {
	poolData.RLock()
	defer poolData.RUnlock()

	handles := make(map[string]Handle)
	if !poolData.initialised {
		return handles
	}

	poolType := reflect.TypeOf(Pool)
	poolValue := reflect.ValueOf(Pool)
	for i := 0; i < poolType.NumField(); i += 1 {
		h, ok := poolValue.Field(i).Interface().(Handle)
		if ok && nil != h {
			handles[poolType.Field(i).Tag.Get("pool")] = h
		}
	}
	return handles
}

// Finalise - close the database connection
func Finalise() {
	poolData.Lock()
	dbClose()
	poolData.initialised = false
	Pool = pools{}
	poolData.Unlock()
}

func dbClose() {
	if nil != poolData.database {
		poolData.database.Close()
		poolData.database = nil
	}
}

func openDatabase(name string) (*leveldb.DB, error) {
	opt := &ldb_opt.Options{
		ErrorIfExist:   false,
		ErrorIfMissing: false,
	}

	db, err := leveldb.OpenFile(name, opt)
	if nil != err {
		return nil, err
	}

	versionValue, err := db.Get(versionKey, nil)
	if leveldb.ErrNotFound == err {
		currentVersion := make([]byte, 4)
		binary.BigEndian.PutUint32(currentVersion, currentDBVersion)
		if err := db.Put(versionKey, currentVersion, nil); nil != err {
			db.Close()
			return nil, err
		}
		return db, nil
	} else if nil != err {
		db.Close()
		return nil, err
	}

	if 4 != len(versionValue) {
		db.Close()
		return nil, fmt.Errorf("incompatible database version length: expected: %d  actual: %d", 4, len(versionValue))
	}

	version := binary.BigEndian.Uint32(versionValue)
	if version > currentDBVersion {
		db.Close()
		return nil, fmt.Errorf("database version: %d > current version: %d", version, currentDBVersion)
	}
	return db, nil
}
