// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bitmark-inc/exitwithstatus"
	"github.com/bitmark-inc/getoptions"
	"github.com/bitmark-inc/logger"
	"github.com/gin-gonic/gin"

	"github.com/bitmark-inc/supplyledger/api"
	"github.com/bitmark-inc/supplyledger/audit"
	"github.com/bitmark-inc/supplyledger/background"
	"github.com/bitmark-inc/supplyledger/configuration"
	"github.com/bitmark-inc/supplyledger/ledger"
	"github.com/bitmark-inc/supplyledger/messagebus"
	"github.com/bitmark-inc/supplyledger/partition"
	"github.com/bitmark-inc/supplyledger/storage"
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
		{Long: "version", HasArg: getoptions.NO_ARGUMENT, Short: 'V'},
		{Long: "config-file", HasArg: getoptions.REQUIRED_ARGUMENT, Short: 'c'},
	}

	program, options, _, err := getoptions.GetOS(flags)
	if nil != err {
		exitwithstatus.Message("%s: getoptions error: %s", program, err)
	}

	if len(options["version"]) > 0 {
		exitwithstatus.Message("%s: version: %s", program, version)
	}

	if len(options["help"]) > 0 {
		exitwithstatus.Message("usage: %s [--help] [--verbose] [--version] --config-file=FILE", program)
	}

	if 1 != len(options["config-file"]) {
		exitwithstatus.Message("%s: only one config-file option is required, %d were detected", program, len(options["config-file"]))
	}

	// read options and parse the configuration file
	configurationFile := options["config-file"][0]
	theConfiguration, err := configuration.GetConfiguration(configurationFile)
	if nil != err {
		exitwithstatus.Message("%s: failed to read configuration from: %q  error: %s", program, configurationFile, err)
	}

	if len(options["verbose"]) > 0 {
		fmt.Printf("configuration: %+v\n", theConfiguration)
	}

	// start logging
	if err = logger.Initialise(theConfiguration.LoggerConfiguration()); nil != err {
		exitwithstatus.Message("%s: logger setup failed with error: %s", program, err)
	}
	defer logger.Finalise()

	// create a logger channel for the main program
	log := logger.New("main")
	defer log.Info("finished")
	log.Info("starting…")
	log.Infof("version: %s", version)
	log.Debugf("theConfiguration: %v", theConfiguration)

	// ------------------
	// start of real main
	// ------------------

	log.Infof("database: %q", theConfiguration.Database.Name)
	db, err := storage.Open(theConfiguration.Database.Name, storage.ReadWrite)
	if nil != err {
		log.Criticalf("storage initialise error: %s", err)
		exitwithstatus.Message("storage initialise error: %s", err)
	}
	defer db.Close()

	log.Infof("audit journal: %q", theConfiguration.AuditJournal)
	journal, err := audit.OpenJournal(theConfiguration.AuditJournal)
	if nil != err {
		log.Criticalf("audit journal error: %s", err)
		exitwithstatus.Message("audit journal error: %s", err)
	}
	defer journal.Close()

	var membership partition.Membership = partition.NewStatic(theConfiguration.Partitions)
	if ttl := theConfiguration.MembershipTTL(); ttl > 0 {
		membership = partition.NewCached(membership, ttl)
	}

	bus := messagebus.New(theConfiguration.NotificationQueue)
	theLedger := ledger.New(db, membership, bus)

	gin.SetMode(gin.ReleaseMode)
	server := newHTTPServer(theConfiguration.Listen, api.New(theLedger, theConfiguration.RequestLimiter()).Handler())

	// the auditor outlives the server so that notifications from
	// the final requests are still journalled
	auditors := background.Start(background.Processes{audit.New(bus, journal)}, nil)
	servers := background.Start(background.Processes{server}, nil)

	// wait for termination signal
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	sig := <-ch
	log.Infof("received signal: %v", sig)

	log.Info("shutting down…")
	servers.Stop()
	auditors.Stop()

	for name, value := range theLedger.Statistics() {
		log.Infof("statistics: %s: %d", name, value)
	}
	log.Infof("statistics: notifications sent: %d  dropped: %d", bus.Sent(), bus.Dropped())
}
