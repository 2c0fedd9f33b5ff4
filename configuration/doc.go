// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package configuration - parse a Lua configuration file
//
// The file is an ordinary Lua chunk whose final statement returns a
// table.  The base libraries are open, so a file can read key files
// with io.open or pick up settings from os.getenv.  The global table
// "arg" holds the file name at index zero.
package configuration
