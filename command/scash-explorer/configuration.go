// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/biberhund/scashexplorer/configuration"
	"github.com/biberhund/scashexplorer/indexer"
	"github.com/biberhund/scashexplorer/ledger/rpcclient"
	"github.com/biberhund/scashexplorer/router"
	"github.com/biberhund/scashexplorer/server"
	"github.com/biberhund/scashexplorer/storage"
	"github.com/biberhund/scashexplorer/subscriber"
	"github.com/biberhund/scashexplorer/util"
)

// basic defaults (directories and files are relative to the "DataDirectory" from Configuration file)
const (
	defaultDataDirectory = "" // this will error; use "." for the same directory as the config file

	defaultStorageDirectory = "data"

	defaultLogDirectory = "log"
	defaultLogFile      = "scash-explorer.log"
	defaultLogCount     = 10          //  number of log files retained
	defaultLogSize      = 1024 * 1024 // rotate when <logfile> exceeds this size

	defaultHTTPConnections = 100
)

// ExplorerType - tunables that can change while running
//
// intervals are in seconds, the cutoff in milliseconds
type ExplorerType struct {
	RebuildInterval   int `gluamapper:"rebuild_interval" json:"rebuild_interval"`
	SlowRequestCutoff int `gluamapper:"slow_request_cutoff" json:"slow_request_cutoff"`
	LatencyExpiry     int `gluamapper:"latency_expiry" json:"latency_expiry"`
	MaxLatestBlocks   int `gluamapper:"max_latest_blocks" json:"max_latest_blocks"`
}

func (e ExplorerType) rebuildInterval() time.Duration {
	return time.Duration(e.RebuildInterval) * time.Second
}

func (e ExplorerType) slowRequestCutoff() time.Duration {
	return time.Duration(e.SlowRequestCutoff) * time.Millisecond
}

func (e ExplorerType) latencyExpiry() time.Duration {
	return time.Duration(e.LatencyExpiry) * time.Second
}

// Configuration - the whole configuration file
type Configuration struct {
	DataDirectory string                   `gluamapper:"data_directory" json:"data_directory"`
	PidFile       string                   `gluamapper:"pidfile" json:"pidfile"`
	Storage       storage.Configuration    `gluamapper:"storage" json:"storage"`
	HTTP          server.Configuration     `gluamapper:"http" json:"http"`
	Ledger        rpcclient.Configuration  `gluamapper:"ledger" json:"ledger"`
	Subscribe     subscriber.Configuration `gluamapper:"subscribe" json:"subscribe"`
	Explorer      ExplorerType             `gluamapper:"explorer" json:"explorer"`
	Logging       logger.Configuration     `gluamapper:"logging" json:"logging"`
}

// will read decode and verify the configuration
func getConfiguration(configurationFileName string) (*Configuration, error) {

	configurationFileName, err := filepath.Abs(filepath.Clean(configurationFileName))
	if nil != err {
		return nil, err
	}

	// absolute path to the main directory
	dataDirectory, _ := filepath.Split(configurationFileName)

	options := &Configuration{
		DataDirectory: defaultDataDirectory,
		PidFile:       "", // no PidFile by default

		Storage: storage.Configuration{
			Backend:   storage.BackendLevelDB,
			Directory: defaultStorageDirectory,
		},

		HTTP: server.Configuration{
			MaximumConnections: defaultHTTPConnections,
		},

		Explorer: ExplorerType{
			RebuildInterval:   int(indexer.DefaultRebuildInterval / time.Second),
			SlowRequestCutoff: int(router.DefaultSlowRequestCutoff / time.Millisecond),
			LatencyExpiry:     int(router.DefaultLatencyExpiry / time.Second),
			MaxLatestBlocks:   indexer.DefaultMaxLatestBlocks,
		},

		Logging: logger.Configuration{
			Directory: defaultLogDirectory,
			File:      defaultLogFile,
			Size:      defaultLogSize,
			Count:     defaultLogCount,
			Levels: map[string]string{
				logger.DefaultTag: "critical",
			},
		},
	}

	if err := configuration.ParseConfigurationFile(configurationFileName, options); nil != err {
		return nil, err
	}

	// ensure absolute data directory
	switch options.DataDirectory {
	case "", "~":
		return nil, fmt.Errorf("Path: %q is not a valid directory", options.DataDirectory)
	case ".":
		options.DataDirectory = dataDirectory // same directory as the configuration file
	default:
		options.DataDirectory = filepath.Clean(options.DataDirectory)
	}

	// this directory must exist - i.e. must be created prior to running
	if fileInfo, err := os.Stat(options.DataDirectory); nil != err {
		return nil, err
	} else if !fileInfo.IsDir() {
		return nil, fmt.Errorf("Path: %q is not a directory", options.DataDirectory)
	}

	// force all relevant items to be absolute paths
	// if not, assign them to the data directory
	mustBeAbsolute := []*string{
		&options.Storage.Directory,
		&options.Logging.Directory,
	}
	for _, f := range mustBeAbsolute {
		*f = util.EnsureAbsolute(options.DataDirectory, *f)
	}

	// optional absolute paths i.e. blank or an absolute path
	optionalAbsolute := []*string{
		&options.PidFile,
		&options.HTTP.Certificate,
		&options.HTTP.PrivateKey,
		&options.Subscribe.ServerKey,
		&options.Subscribe.PublicKey,
		&options.Subscribe.PrivateKey,
	}
	for _, f := range optionalAbsolute {
		if "" != *f {
			*f = util.EnsureAbsolute(options.DataDirectory, *f)
		}
	}

	// log file must be a plain name
	switch filepath.Dir(options.Logging.File) {
	case "", ".":
	default:
		return nil, fmt.Errorf("Files: %q is not plain name", options.Logging.File)
	}

	// create directories if they do not already exist
	for _, d := range []string{
		options.Storage.Directory,
		options.Logging.Directory,
	} {
		if err := os.MkdirAll(d, 0700); nil != err {
			return nil, err
		}
	}

	// done
	return options, nil
}
