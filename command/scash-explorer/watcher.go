// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"path/filepath"

	"github.com/bitmark-inc/logger"
	"github.com/fsnotify/fsnotify"
)

// applies the tunables of a freshly read configuration
type applyFunc func(ExplorerType)

// watches the configuration file and re-applies the explorer section
type configWatcher struct {
	log      *logger.L
	fileName string
	watcher  *fsnotify.Watcher
	apply    applyFunc
}

func newConfigWatcher(fileName string, apply applyFunc, log *logger.L) (*configWatcher, error) {
	filePath, err := filepath.Abs(filepath.Clean(fileName))
	if nil != err {
		return nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if nil != err {
		log.Errorf("new watcher error: %s", err)
		return nil, err
	}

	err = watcher.Add(filePath)
	if nil != err {
		log.Errorf("watch: %s  error: %s", filePath, err)
		_ = watcher.Close()
		return nil, err
	}

	return &configWatcher{
		log:      log,
		fileName: filePath,
		watcher:  watcher,
		apply:    apply,
	}, nil
}

// Run - background process, stops on shutdown or when the file is removed
func (w *configWatcher) Run(args interface{}, shutdown <-chan struct{}) {
	log := w.log
	defer w.watcher.Close()

	log.Info("starting…")

loop:
	for {
		select {
		case <-shutdown:
			break loop

		case event, ok := <-w.watcher.Events:
			if !ok {
				break loop
			}
			log.Debugf("file event: %v", event)

			if filepath.Base(event.Name) != filepath.Base(w.fileName) {
				continue loop
			}
			if fileRemoved(event) {
				log.Errorf("file: %s removed, stop watching", w.fileName)
				break loop
			}
			if fileChanged(event) {
				w.reload()
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				break loop
			}
			log.Errorf("watcher error: %s", err)
		}
	}

	log.Info("finished")
}

func (w *configWatcher) reload() {
	c, err := getConfiguration(w.fileName)
	if nil != err {
		w.log.Errorf("failed to read configuration from: %s  error: %s", w.fileName, err)
		return
	}
	w.log.Infof("apply explorer: %+v", c.Explorer)
	w.apply(c.Explorer)
}

func fileRemoved(event fsnotify.Event) bool {
	return "" == event.Name || event.Op&fsnotify.Remove == fsnotify.Remove
}

func fileChanged(event fsnotify.Event) bool {
	return event.Op&fsnotify.Write == fsnotify.Write ||
		event.Op&fsnotify.Chmod == fsnotify.Chmod
}
