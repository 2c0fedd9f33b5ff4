// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/biberhund/scashexplorer/fault"
)

type fileHandle struct {
	sync.Mutex // serialises create and append
	directory  string
	extension  string
}

// NewFileHandle - a pool stored as one file per key in directory
func NewFileHandle(directory string, extension string) (Handle, error) {
	if err := os.MkdirAll(directory, 0700); nil != err {
		return nil, err
	}
	return &fileHandle{
		directory: directory,
		extension: extension,
	}, nil
}

func (f *fileHandle) fileName(key string) string {
	return filepath.Join(f.directory, key+f.extension)
}

func (f *fileHandle) Get(key string) ([]byte, error) {
	if err := validateKey(key); nil != err {
		return nil, err
	}
	data, err := ioutil.ReadFile(f.fileName(key))
	if os.IsNotExist(err) {
		return nil, fault.KeyNotFound
	}
	return data, err
}

func (f *fileHandle) Has(key string) bool {
	if nil != validateKey(key) {
		return false
	}
	_, err := os.Stat(f.fileName(key))
	return nil == err
}

// write to a temporary file then rename over the old blob so readers
// never see a partial replacement
func (f *fileHandle) Put(key string, value []byte) error {
	if err := validateKey(key); nil != err {
		return err
	}

	tmp, err := ioutil.TempFile(f.directory, ".put-")
	if nil != err {
		return err
	}
	tmpName := tmp.Name()

	_, err = tmp.Write(value)
	if closeErr := tmp.Close(); nil == err {
		err = closeErr
	}
	if nil == err {
		err = os.Rename(tmpName, f.fileName(key))
	}
	if nil != err {
		os.Remove(tmpName)
	}
	return err
}

func (f *fileHandle) Create(key string, value []byte) (bool, error) {
	if err := validateKey(key); nil != err {
		return false, err
	}

	f.Lock()
	defer f.Unlock()

	fh, err := os.OpenFile(f.fileName(key), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0600)
	if os.IsExist(err) {
		return false, nil
	}
	if nil != err {
		return false, err
	}
	_, err = fh.Write(value)
	if closeErr := fh.Close(); nil == err {
		err = closeErr
	}
	return nil == err, err
}

func (f *fileHandle) Append(key string, value []byte) error {
	if err := validateKey(key); nil != err {
		return err
	}

	f.Lock()
	defer f.Unlock()

	fh, err := os.OpenFile(f.fileName(key), os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0600)
	if nil != err {
		return err
	}
	_, err = fh.Write(value)
	if closeErr := fh.Close(); nil == err {
		err = closeErr
	}
	return err
}

func (f *fileHandle) Keys() ([]string, error) {
	entries, err := ioutil.ReadDir(f.directory)
	if nil != err {
		return nil, err
	}

	keys := make([]string, 0, len(entries))
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || strings.HasPrefix(name, ".") || !strings.HasSuffix(name, f.extension) {
			continue
		}
		key := strings.TrimSuffix(name, f.extension)
		if nil != validateKey(key) {
			continue
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys, nil
}
