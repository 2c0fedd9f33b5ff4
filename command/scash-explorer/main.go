// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"crypto/tls"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bitmark-inc/exitwithstatus"
	"github.com/bitmark-inc/getoptions"
	"github.com/bitmark-inc/logger"

	"github.com/biberhund/scashexplorer/background"
	"github.com/biberhund/scashexplorer/document"
	"github.com/biberhund/scashexplorer/fault"
	"github.com/biberhund/scashexplorer/feed"
	"github.com/biberhund/scashexplorer/indexer"
	"github.com/biberhund/scashexplorer/ledger"
	"github.com/biberhund/scashexplorer/ledger/rpcclient"
	"github.com/biberhund/scashexplorer/messagebus"
	"github.com/biberhund/scashexplorer/registry"
	"github.com/biberhund/scashexplorer/richlist"
	"github.com/biberhund/scashexplorer/router"
	"github.com/biberhund/scashexplorer/server"
	"github.com/biberhund/scashexplorer/storage"
	"github.com/biberhund/scashexplorer/subscriber"
	"github.com/biberhund/scashexplorer/textrecord"
	"github.com/biberhund/scashexplorer/vault"
)

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

// main program
func main() {
	// ensure exit handler is first
	defer exitwithstatus.Handler()

	flags := []getoptions.Option{
		{Long: "help", HasArg: getoptions.NO_ARGUMENT, Short: 'h'},
		{Long: "verbose", HasArg: getoptions.NO_ARGUMENT, Short: 'v'},
		{Long: "quiet", HasArg: getoptions.NO_ARGUMENT, Short: 'q'},
		{Long: "version", HasArg: getoptions.NO_ARGUMENT, Short: 'V'},
		{Long: "config-file", HasArg: getoptions.REQUIRED_ARGUMENT, Short: 'c'},
	}

	program, options, arguments, err := getoptions.GetOS(flags)
	if nil != err {
		exitwithstatus.Message("%s: getoptions error: %s", program, err)
	}

	if len(options["version"]) > 0 {
		processSetupCommand(program, []string{"version"})
		return
	}

	if len(options["help"]) > 0 {
		processSetupCommand(program, []string{"help"})
		return
	}

	// these commands do not require the configuration and
	// process data needed for initial setup
	if len(arguments) > 0 && processSetupCommand(program, arguments) {
		return
	}

	if 1 != len(options["config-file"]) {
		exitwithstatus.Message("%s: only one config-file option is required, %d were detected", program, len(options["config-file"]))
	}

	// read options and parse the configuration file
	configurationFile := options["config-file"][0]
	theConfiguration, err := getConfiguration(configurationFile)
	if nil != err {
		exitwithstatus.Message("%s: failed to read configuration from: %q  error: %s", program, configurationFile, err)
	}

	// these commands require the configuration and
	// perform enquiries on the configuration
	if len(arguments) > 0 && processConfigCommand(arguments, theConfiguration) {
		return
	}

	// start logging
	if err = logger.Initialise(theConfiguration.Logging); nil != err {
		exitwithstatus.Message("%s: logger setup failed with error: %s", program, err)
	}
	defer logger.Finalise()

	// last chance logging for unrecoverable conditions
	if err = fault.Initialise(); nil != err {
		exitwithstatus.Message("%s: fault setup failed with error: %s", program, err)
	}
	defer fault.Finalise()

	// create a logger channel for the main program
	log := logger.New("main")
	defer log.Info("finished")
	log.Info("starting…")
	log.Infof("version: %s", version)
	log.Debugf("theConfiguration: %v", theConfiguration)

	// optional PID file
	// use if not running under a supervisor program like daemon(8)
	if "" != theConfiguration.PidFile {
		lockFile, err := os.OpenFile(theConfiguration.PidFile, os.O_WRONLY|os.O_EXCL|os.O_CREATE, os.ModeExclusive|0600)
		if nil != err {
			if os.IsExist(err) {
				exitwithstatus.Message("%s: another instance is already running", program)
			}
			exitwithstatus.Message("%s: PID file: %q creation failed, error: %s", program, theConfiguration.PidFile, err)
		}
		fmt.Fprintf(lockFile, "%d\n", os.Getpid())
		lockFile.Close()
		defer os.Remove(theConfiguration.PidFile)
	}

	// start the data storage
	log.Infof("initialise storage: %s  in: %q", theConfiguration.Storage.Backend, theConfiguration.Storage.Directory)
	err = storage.Initialise(theConfiguration.Storage)
	if nil != err {
		log.Criticalf("storage initialise error: %s", err)
		exitwithstatus.Message("storage initialise error: %s", err)
	}
	defer storage.Finalise()

	// optional node connection for confirmations and block lookup
	var chain ledger.Ledger
	if "" != theConfiguration.Ledger.Connect {
		client, err := rpcclient.New(theConfiguration.Ledger, logger.New("ledger"))
		if nil != err {
			log.Criticalf("ledger initialise error: %s", err)
			exitwithstatus.Message("ledger initialise error: %s", err)
		}
		defer client.Close()
		chain = client
	} else {
		log.Warn("no ledger: confirmations will show as not found")
	}

	namer := textrecord.NewNamer(nil)
	reg := registry.New(logger.New("registry"))
	events := messagebus.New(messagebus.QueueSize)

	components := indexer.Components{
		Ledger:    chain,
		Registry:  reg,
		Documents: document.New(storage.Pool.Objects, reg, logger.New("document")),
		RichList:  richlist.New(storage.Pool.RichList, storage.Pool.Counters, logger.New("richlist")),
		Feed:      feed.New(storage.Pool.Messages, namer, logger.New("feed")),
		Vault:     vault.New(storage.Pool.Vault, namer, logger.New("vault")),
		Counters:  storage.Pool.Counters,
		Events:    events,
	}

	explorer := theConfiguration.Explorer
	ix := indexer.New(components, explorer.MaxLatestBlocks, explorer.rebuildInterval(), logger.New("indexer"))

	log.Info("reload indexes")
	err = ix.Reload(storage.Pool.Objects)
	if nil != err {
		log.Criticalf("reload error: %s", err)
		exitwithstatus.Message("reload error: %s", err)
	}
	ix.UpdateIndex(true)

	r := router.New(router.Components{
		Ledger:    chain,
		Registry:  reg,
		Documents: components.Documents,
		Indexer:   ix,
		RichList:  components.RichList,
		Feed:      components.Feed,
		Vault:     components.Vault,
	}, explorer.slowRequestCutoff(), explorer.latencyExpiry(), logger.New("router"))

	// optional TLS
	var tlsConfig *tls.Config
	if "" != theConfiguration.HTTP.Certificate && "" != theConfiguration.HTTP.PrivateKey {
		var fingerprint [32]byte
		tlsConfig, fingerprint, err = server.Certificate(log, theConfiguration.HTTP.Certificate, theConfiguration.HTTP.PrivateKey)
		if nil != err {
			exitwithstatus.Message("certificate error: %s", err)
		}
		log.Infof("SHA3-256 fingerprint: %x", fingerprint)
	}

	httpLog := logger.New("http")
	handler := server.NewHandler(r, theConfiguration.HTTP.RequestsPerSecond, theConfiguration.HTTP.Burst, httpLog, logger.New("access"))
	srv, err := server.New(theConfiguration.HTTP, handler, tlsConfig, httpLog)
	if nil != err {
		log.Criticalf("http initialise error: %s", err)
		exitwithstatus.Message("http initialise error: %s", err)
	}

	processes := background.Processes{ix, srv}

	if "" != theConfiguration.Subscribe.Connect {
		sub, err := subscriber.New("node", theConfiguration.Subscribe, events, logger.New("subscriber"))
		if nil != err {
			log.Criticalf("subscriber initialise error: %s", err)
			exitwithstatus.Message("subscriber initialise error: %s", err)
		}
		processes = append(processes, sub)
	} else {
		log.Warn("no subscription: only stored documents will be served")
	}

	apply := func(e ExplorerType) {
		ix.SetRebuildInterval(e.rebuildInterval())
		ix.SetMaxLatestBlocks(e.MaxLatestBlocks)
		r.SetSlowRequestCutoff(e.slowRequestCutoff())
	}
	watcher, err := newConfigWatcher(configurationFile, apply, logger.New("config-watcher"))
	if nil != err {
		log.Warnf("configuration will not be reloaded: %s", err)
	} else {
		processes = append(processes, watcher)
	}

	bg := background.Start(processes, nil)
	defer bg.Stop()

	// wait for CTRL-C before shutting down to allow manual testing
	if 0 == len(options["quiet"]) {
		fmt.Printf("\n\nWaiting for CTRL-C (SIGINT) or 'kill <pid>' (SIGTERM)…")
	}

	// turn Signals into channel messages
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	sig := <-ch
	log.Infof("received signal: %v", sig)
	if 0 == len(options["quiet"]) {
		fmt.Printf("\nreceived signal: %v\n", sig)
		fmt.Printf("\nshutting down…\n")
	}

	log.Info("shutting down…")
}
