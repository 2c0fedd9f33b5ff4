// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

import (
	"fmt"
	"runtime"

	"github.com/bitmark-inc/logger"
)

// last chance logger channel
var log *logger.L

// Initialise - setup a log channel for unrecoverable conditions
func Initialise() error {
	if nil != log {
		return AlreadyInitialised
	}
	log = logger.New("fault")
	if nil == log {
		return InvalidLoggerChannel
	}
	return nil
}

// Finalise - flush any pending output
func Finalise() {
	if nil != log {
		log.Flush()
		log = nil
	}
}

// Criticalf - log a formatted string prefixed with the caller position
func Criticalf(format string, arguments ...interface{}) {
	if _, file, line, ok := runtime.Caller(1); ok {
		a := append([]interface{}{file, line}, arguments...)
		emit("(%q:%d) "+format, a...)
		return
	}
	emit(format, arguments...)
}

func emit(format string, arguments ...interface{}) {
	if nil == log {
		fmt.Printf("*** "+format+"\n", arguments...)
		return
	}
	log.Criticalf(format, arguments...)
	log.Flush()
}
