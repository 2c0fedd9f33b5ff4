// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"encoding/json"
	"encoding/pem"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"time"

	"github.com/bitmark-inc/certgen"
	"github.com/bitmark-inc/exitwithstatus"

	"github.com/biberhund/scashexplorer/fault"
	"github.com/biberhund/scashexplorer/server"
	"github.com/biberhund/scashexplorer/util"
	"github.com/biberhund/scashexplorer/zmqutil"
)

const (
	httpCertificateFilename = "http.crt"
	httpPrivateKeyFilename  = "http.key"

	subscribePublicKeyFilename  = "subscribe.public"
	subscribePrivateKeyFilename = "subscribe.private"

	certificateLifetime = 10 * 365 * 24 * time.Hour
)

// setup command handler
//
// commands that run to create key and certificate files these
// commands cannot access any internal database or states or the
// configuration file
func processSetupCommand(program string, arguments []string) bool {

	command := "help"
	if len(arguments) > 0 {
		command = arguments[0]
		arguments = arguments[1:]
	}

	switch command {
	case "gen-http-cert", "http":
		certificateFilename := getFilenameWithDirectory(arguments, httpCertificateFilename)
		privateKeyFilename := getFilenameWithDirectory(arguments, httpPrivateKeyFilename)

		addresses := []string{}
		if len(arguments) >= 2 {
			for _, a := range arguments[1:] {
				if "" != a {
					addresses = append(addresses, a)
				}
			}
		}

		fingerprint, err := makeSelfSignedCertificate("http", certificateFilename, privateKeyFilename, 0 != len(addresses), addresses)
		if nil != err {
			fmt.Printf("generate HTTP key: %q and certificate: %q error: %s\n", privateKeyFilename, certificateFilename, err)
			exitwithstatus.Exit(1)
		}
		fmt.Printf("generated HTTP key: %q and certificate: %q\n", privateKeyFilename, certificateFilename)
		fmt.Printf("SHA3-256 fingerprint: %x\n", fingerprint)

	case "gen-subscribe-key", "subscribe":
		publicKeyFilename := getFilenameWithDirectory(arguments, subscribePublicKeyFilename)
		privateKeyFilename := getFilenameWithDirectory(arguments, subscribePrivateKeyFilename)
		err := zmqutil.MakeKeyPair(publicKeyFilename, privateKeyFilename)
		if nil != err {
			fmt.Printf("generate private key: %q and public key: %q error: %s\n", privateKeyFilename, publicKeyFilename, err)
			exitwithstatus.Exit(1)
		}
		fmt.Printf("generated private key: %q and public key: %q\n", privateKeyFilename, publicKeyFilename)

	case "start", "run":
		return false // continue processing

	case "config-test", "cfg":
		return false // defer processing until configuration is read

	case "version", "v":
		fmt.Printf("%s\n", version)

	default:
		switch command {
		case "help", "h", "?":
		case "", " ":
			fmt.Printf("error: missing command\n")
		default:
			fmt.Printf("error: no such command: %q\n", command)
		}
		fmt.Printf("usage: %s [--help] [--verbose] [--quiet] --config-file=FILE [[command|help] arguments...]\n", program)

		fmt.Printf("supported commands:\n\n")
		fmt.Printf("  help                        (h)         - display this message\n\n")
		fmt.Printf("  version                     (v)         - display version sting\n\n")

		fmt.Printf("  gen-http-cert [DIR] [IPs...] (http)     - create private key in:  %q\n", "DIR/"+httpPrivateKeyFilename)
		fmt.Printf("                                            and the certificate in: %q\n", "DIR/"+httpCertificateFilename)
		fmt.Printf("\n")

		fmt.Printf("  gen-subscribe-key [DIR]     (subscribe) - create private key in: %q\n", "DIR/"+subscribePrivateKeyFilename)
		fmt.Printf("                                            and the public key in: %q\n", "DIR/"+subscribePublicKeyFilename)
		fmt.Printf("\n")

		fmt.Printf("  start                       (run)       - just run the program, same as no arguments\n")
		fmt.Printf("\n")

		fmt.Printf("  config-test                 (cfg)       - just check the configuration file\n")
		fmt.Printf("\n")

		exitwithstatus.Exit(1)
	}

	// indicate processing complete and preform normal exit from main
	return true
}

// configuration file enquiry commands
// have configuration file read and decoded, but nothing else
func processConfigCommand(arguments []string, options *Configuration) bool {

	command := "help"
	if len(arguments) > 0 {
		command = arguments[0]
	}

	switch command {
	case "config-test", "cfg":
		b, err := json.Marshal(options)
		if nil != err {
			exitwithstatus.Message("error: %s", err)
		}
		var out bytes.Buffer
		_ = json.Indent(&out, b, "", "  ")
		_, _ = out.WriteTo(os.Stdout)
		_, _ = os.Stdout.WriteString("\n")

	default:
		return false
	}

	return true
}

// first argument is the directory, default is the current directory
func getFilenameWithDirectory(arguments []string, name string) string {
	directory := "."
	if len(arguments) > 0 && "" != arguments[0] {
		directory = arguments[0]
	}
	return filepath.Join(directory, name)
}

// create a self-signed certificate, returning its fingerprint
func makeSelfSignedCertificate(name string, certificateFileName string, privateKeyFileName string, override bool, extraHosts []string) ([32]byte, error) {
	var fingerprint [32]byte

	if util.EnsureFileExists(certificateFileName) {
		return fingerprint, fault.CertificateFileAlreadyExists
	}

	if util.EnsureFileExists(privateKeyFileName) {
		return fingerprint, fault.KeyFileAlreadyExists
	}

	org := "scash-explorer self signed cert for: " + name
	validUntil := time.Now().Add(certificateLifetime)
	cert, key, err := certgen.NewTLSCertPair(org, validUntil, override, extraHosts)
	if nil != err {
		return fingerprint, err
	}

	if err = ioutil.WriteFile(certificateFileName, cert, 0666); nil != err {
		return fingerprint, err
	}

	if err = ioutil.WriteFile(privateKeyFileName, key, 0600); nil != err {
		_ = os.Remove(certificateFileName)
		return fingerprint, err
	}

	if block, _ := pem.Decode(cert); nil != block {
		fingerprint = server.Fingerprint(block.Bytes)
	}
	return fingerprint, nil
}
