// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/bitmark-inc/logger"
	"github.com/urfave/cli"
)

type metadata struct {
	verbose bool
	e       io.Writer
	w       io.Writer
}

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

func main() {
	app := newApp(os.Stdout, os.Stderr)
	err := app.Run(os.Args)
	if nil != err {
		fmt.Fprintf(app.ErrWriter, "terminated with error: %s\n", err)
		os.Exit(1)
	}
}

func newApp(w io.Writer, e io.Writer) *cli.App {
	app := cli.NewApp()
	app.Name = "scash-explorer-tool"
	app.Usage = "inspect and render explorer storage offline"
	app.Version = version
	app.HideVersion = true

	app.Writer = w
	app.ErrWriter = e

	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "verbose, v",
			Usage: " verbose result",
		},
		cli.StringFlag{
			Name:  "log-directory, l",
			Value: os.TempDir(),
			Usage: " write the log file to `DIR`",
		},
	}

	storageFlags := []cli.Flag{
		cli.StringFlag{
			Name:  "backend, b",
			Value: "leveldb",
			Usage: " storage `BACKEND` [leveldb|files]",
		},
		cli.StringFlag{
			Name:  "directory, d",
			Value: "",
			Usage: "*storage `DIR`",
		},
	}

	app.Commands = []cli.Command{
		{
			Name:      "pools",
			Usage:     "list the storage pools with their key counts",
			ArgsUsage: "\n   (* = required)",
			Flags:     storageFlags,
			Action:    runPools,
		},
		{
			Name:      "keys",
			Usage:     "list the keys of one pool",
			ArgsUsage: "\n   (* = required)",
			Flags: append([]cli.Flag{
				cli.StringFlag{
					Name:  "pool, p",
					Value: "",
					Usage: "*pool `NAME`",
				},
			}, storageFlags...),
			Action: runKeys,
		},
		{
			Name:      "get",
			Usage:     "print one stored record",
			ArgsUsage: "\n   (* = required)",
			Flags: append([]cli.Flag{
				cli.StringFlag{
					Name:  "pool, p",
					Value: "",
					Usage: "*pool `NAME`",
				},
				cli.StringFlag{
					Name:  "key, k",
					Value: "",
					Usage: "*record `KEY`",
				},
			}, storageFlags...),
			Action: runGet,
		},
		{
			Name:      "richlist",
			Usage:     "print the richest addresses as JSON",
			ArgsUsage: "\n   (* = required)",
			Flags: append([]cli.Flag{
				cli.IntFlag{
					Name:  "count, n",
					Value: 10,
					Usage: " number of addresses `COUNT`",
				},
			}, storageFlags...),
			Action: runRichList,
		},
		{
			Name:      "render",
			Usage:     "index a JSON file of block events into storage",
			ArgsUsage: "\n   (* = required)",
			Flags: append([]cli.Flag{
				cli.StringFlag{
					Name:  "file, f",
					Value: "",
					Usage: "*JSON array of block events `FILE`",
				},
			}, storageFlags...),
			Action: runRender,
		},
	}

	app.Before = func(c *cli.Context) error {
		level := "critical"
		if c.GlobalBool("verbose") {
			level = "info"
		}
		err := logger.Initialise(logger.Configuration{
			Directory: c.GlobalString("log-directory"),
			File:      app.Name + ".log",
			Size:      1048576,
			Count:     2,
			Levels: map[string]string{
				logger.DefaultTag: level,
			},
		})
		if nil != err {
			return err
		}

		c.App.Metadata = map[string]interface{}{
			"config": &metadata{
				verbose: c.GlobalBool("verbose"),
				e:       app.ErrWriter,
				w:       app.Writer,
			},
		}
		return nil
	}

	app.After = func(c *cli.Context) error {
		logger.Finalise()
		return nil
	}

	return app
}
