// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/urfave/cli"

	"github.com/biberhund/scashexplorer/fault"
	"github.com/biberhund/scashexplorer/storage"
)

// open the storage named by the command flags
func openStorage(c *cli.Context) error {
	directory := c.String("directory")
	if "" == directory {
		return fmt.Errorf("storage directory is required")
	}
	return storage.Initialise(storage.Configuration{
		Backend:   c.String("backend"),
		Directory: directory,
	})
}

func poolHandle(name string) (storage.Handle, error) {
	h, ok := storage.Handles()[name]
	if !ok {
		return nil, fault.InvalidPoolTag
	}
	return h, nil
}

func printJson(w io.Writer, message interface{}) error {
	b, err := json.MarshalIndent(message, "", "  ")
	if nil != err {
		return err
	}
	_, err = fmt.Fprintf(w, "%s\n", b)
	return err
}
