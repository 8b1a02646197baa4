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

	"github.com/bitmark-inc/supplyledger/configuration"
	"github.com/bitmark-inc/supplyledger/ledger"
	"github.com/bitmark-inc/supplyledger/partition"
	"github.com/bitmark-inc/supplyledger/storage"
)

type metadata struct {
	config  *configuration.Configuration
	db      *storage.Database
	ledger  *ledger.Ledger
	logging bool
	verbose bool
	e       io.Writer
	w       io.Writer
}

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

func main() {
	app := newApp(os.Stdout, os.Stderr, true)
	err := app.Run(os.Args)
	if nil != err {
		fmt.Fprintf(app.ErrWriter, "terminated with error: %s\n", err)
		os.Exit(1)
	}
}

// separate from main so the commands can be driven by tests
// with logging already started
func newApp(w io.Writer, e io.Writer, startLogging bool) *cli.App {

	partitionFlag := cli.StringFlag{
		Name:  "partition, p",
		Value: "",
		Usage: "*partition `NAME`",
	}
	assetFlag := cli.StringFlag{
		Name:  "id",
		Value: "",
		Usage: "*asset `ID` as 64 hex digits or a short name",
	}
	locationFlag := cli.StringFlag{
		Name:  "location, l",
		Value: "",
		Usage: " current `LOCATION`",
	}
	hashFlag := cli.StringSliceFlag{
		Name:  "hash, H",
		Usage: " data `HASH`, may be repeated",
	}
	externalFlag := cli.StringSliceFlag{
		Name:  "external, x",
		Usage: " external `ID`, may be repeated",
	}
	pageFlags := []cli.Flag{
		partitionFlag,
		cli.Uint64Flag{
			Name:  "page",
			Value: 0,
			Usage: " zero based page `NUMBER`",
		},
		cli.IntFlag{
			Name:  "page-size, s",
			Value: 20,
			Usage: " ids per page `COUNT`",
		},
	}

	app := cli.NewApp()
	app.Name = "ledger-cli"
	app.Usage = "operate directly on a local asset ledger database"
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
			Name:  "config-file, c",
			Value: "ledger.conf",
			Usage: " configuration `FILE`",
		},
		cli.StringFlag{
			Name:  "identity, i",
			Value: "",
			Usage: " principal `NAME` performing the operation",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:      "create",
			Usage:     "register a new asset owned by the identity",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				partitionFlag,
				assetFlag,
				cli.Uint64Flag{
					Name:  "amount, a",
					Value: 0,
					Usage: " quantity `NUMBER`",
				},
				locationFlag,
				hashFlag,
				externalFlag,
			},
			Action: runCreate,
		},
		{
			Name:      "update",
			Usage:     "change location, data hashes and optionally amount",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				partitionFlag,
				assetFlag,
				cli.Uint64Flag{
					Name:  "amount, a",
					Value: 0,
					Usage: " new quantity `NUMBER`, 0 to keep",
				},
				locationFlag,
				hashFlag,
			},
			Action: runUpdate,
		},
		{
			Name:      "transfer",
			Usage:     "pass an asset to another partition member",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				partitionFlag,
				assetFlag,
				cli.StringFlag{
					Name:  "receiver, r",
					Value: "",
					Usage: "*principal `NAME` to receive the asset",
				},
				externalFlag,
			},
			Action: runTransfer,
		},
		{
			Name:      "transform",
			Usage:     "consume an asset producing a derived one",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				partitionFlag,
				assetFlag,
				cli.StringFlag{
					Name:  "tag, t",
					Value: "",
					Usage: "*transformation `TAG`",
				},
				cli.Uint64Flag{
					Name:  "amount, a",
					Value: 0,
					Usage: " derived quantity `NUMBER`, 0 to inherit",
				},
				locationFlag,
			},
			Action: runTransform,
		},
		{
			Name:      "split",
			Usage:     "divide an asset into parts",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				partitionFlag,
				assetFlag,
				cli.StringSliceFlag{
					Name:  "amount, a",
					Usage: "*part quantity `NUMBER`, one per part",
				},
				locationFlag,
				hashFlag,
			},
			Action: runSplit,
		},
		{
			Name:      "group",
			Usage:     "combine assets into a new group asset",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				partitionFlag,
				assetFlag,
				cli.StringSliceFlag{
					Name:  "member, m",
					Usage: "*member asset `ID`, one per member",
				},
				locationFlag,
				hashFlag,
			},
			Action: runGroup,
		},
		{
			Name:      "ungroup",
			Usage:     "dissolve a group returning its members",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				partitionFlag,
				assetFlag,
				locationFlag,
				cli.StringFlag{
					Name:  "hash, H",
					Value: "",
					Usage: " data `HASH` for every member",
				},
			},
			Action: runUngroup,
		},
		{
			Name:      "inactivate",
			Usage:     "retire an asset",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				partitionFlag,
				assetFlag,
				locationFlag,
				cli.StringFlag{
					Name:  "hash, H",
					Value: "",
					Usage: " final data `HASH`",
				},
			},
			Action: runInactivate,
		},
		{
			Name:      "get",
			Usage:     "display an asset",
			ArgsUsage: "\n   (* = required)",
			Flags:     []cli.Flag{partitionFlag, assetFlag},
			Action:    runGet,
		},
		{
			Name:      "list-owner",
			Usage:     "list asset ids held by an owner",
			ArgsUsage: "\n   (* = required)",
			Flags: append([]cli.Flag{
				cli.StringFlag{
					Name:  "owner, o",
					Value: "",
					Usage: " owner `NAME`, default is the identity",
				},
			}, pageFlags...),
			Action: runListOwner,
		},
		{
			Name:      "list-status",
			Usage:     "list asset ids with a status",
			ArgsUsage: "\n   (* = required)",
			Flags: append([]cli.Flag{
				cli.StringFlag{
					Name:  "status",
					Value: "active",
					Usage: " `STATUS` [active|inactive]",
				},
			}, pageFlags...),
			Action: runListStatus,
		},
		{
			Name:      "history",
			Usage:     "display the operations applied to an asset",
			ArgsUsage: "\n   (* = required)",
			Flags:     []cli.Flag{partitionFlag, assetFlag},
			Action:    runHistory,
		},
		{
			Name:      "chain",
			Usage:     "display the transformation chain ending at an asset",
			ArgsUsage: "\n   (* = required)",
			Flags:     []cli.Flag{partitionFlag, assetFlag},
			Action:    runChain,
		},
		{
			Name:   "version",
			Usage:  "display ledger-cli version",
			Action: runVersion,
		},
	}

	app.Before = func(c *cli.Context) error {

		e := c.App.ErrWriter
		w := c.App.Writer
		verbose := c.GlobalBool("verbose")

		// to suppress reading config file if certain commands
		switch c.Args().First() {
		case "", "help", "h", "version":
			return nil
		}

		file := c.GlobalString("config-file")
		if verbose {
			fmt.Fprintf(e, "reading config file: %s\n", file)
		}

		config, err := configuration.GetConfiguration(file)
		if nil != err {
			return err
		}

		if startLogging {
			if err := logger.Initialise(config.LoggerConfiguration()); nil != err {
				return err
			}
		}

		db, err := storage.Open(config.Database.Name, storage.ReadWrite)
		if nil != err {
			if startLogging {
				logger.Finalise()
			}
			return err
		}

		members := partition.NewStatic(config.Partitions)

		c.App.Metadata["config"] = &metadata{
			config:  config,
			db:      db,
			ledger:  ledger.New(db, members, nil),
			logging: startLogging,
			verbose: verbose,
			e:       e,
			w:       w,
		}

		return nil
	}

	app.After = func(c *cli.Context) error {
		m, ok := c.App.Metadata["config"].(*metadata)
		if !ok {
			return nil
		}
		delete(c.App.Metadata, "config")

		err := m.db.Close()
		if m.logging {
			logger.Finalise()
		}
		return err
	}

	return app
}
