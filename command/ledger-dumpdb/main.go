// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/bitmark-inc/exitwithstatus"
	"github.com/bitmark-inc/getoptions"
	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/supplyledger/asset"
	"github.com/bitmark-inc/supplyledger/storage"
)

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

// colours
const (
	keyColour1 = "\033[1;36m"
	keyColour2 = "\033[1;31m"
	valColour1 = "\033[1;33m"
	valColour2 = "\033[1;34m"
	endColour  = "\033[0m"
)

type colours struct {
	k1, k2, v1, v2, end string
}

// main program
func main() {
	// ensure exit handler is first
	defer exitwithstatus.Handler()

	flags := []getoptions.Option{
		{Long: "help", HasArg: getoptions.NO_ARGUMENT, Short: 'h'},
		{Long: "verbose", HasArg: getoptions.NO_ARGUMENT, Short: 'v'},
		{Long: "version", HasArg: getoptions.NO_ARGUMENT, Short: 'V'},
		{Long: "list", HasArg: getoptions.NO_ARGUMENT, Short: 'l'},
		{Long: "early", HasArg: getoptions.NO_ARGUMENT, Short: 'e'},
		{Long: "colour", HasArg: getoptions.NO_ARGUMENT, Short: 'g'},
		{Long: "ascii", HasArg: getoptions.NO_ARGUMENT, Short: 'a'},
		{Long: "decode", HasArg: getoptions.NO_ARGUMENT, Short: 'd'},
		{Long: "file", HasArg: getoptions.REQUIRED_ARGUMENT, Short: 'f'},
		{Long: "count", HasArg: getoptions.REQUIRED_ARGUMENT, Short: 'c'},
	}

	program, options, arguments, err := getoptions.GetOS(flags)
	if nil != err {
		exitwithstatus.Message("%s: getoptions error: %s", program, err)
	}

	if len(options["version"]) > 0 {
		exitwithstatus.Message("%s: version: %s", program, version)
	}

	if len(options["help"]) > 0 || 1 != len(options["file"]) || (0 == len(arguments) && 0 == len(options["list"])) {
		exitwithstatus.Message("usage: %s [--help] [--verbose] [--list] [--count=N] [--decode] --file=FILE tag [key-prefix]", program)
	}

	verbose := len(options["verbose"]) > 0

	count := 10
	if len(options["count"]) > 0 {
		count, err = strconv.Atoi(options["count"][0])
		if nil != err {
			exitwithstatus.Message("%s: convert count error: %s", program, err)
		}
		if count < 1 {
			exitwithstatus.Message("%s: invalid count: %d", program, count)
		}
	}

	logging := logger.Configuration{
		Directory: ".",
		File:      "ledger-dumpdb.log",
		Size:      1048576,
		Count:     10,
		Console:   true,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	}

	// start logging
	if err = logger.Initialise(logging); nil != err {
		exitwithstatus.Message("%s: logger setup failed with error: %s", program, err)
	}
	defer logger.Finalise()

	filename := options["file"][0]
	db, err := storage.Open(filename, storage.ReadOnly)
	if nil != err {
		exitwithstatus.Message("%s: storage setup failed with error: %s", program, err)
	}
	defer db.Close()

	if len(options["list"]) > 0 {
		// print all available tags
		fmt.Printf(" tags:\n")
		for _, p := range db.Pools() {
			fmt.Printf("       %c → %s\n", p.Prefix(), p.Name())
		}
		return
	}

	tag := arguments[0]
	pool := findPool(db, tag)
	if nil == pool {
		exitwithstatus.Message("%s: no pool corresponding to: %q", program, tag)
	}

	prefix := []byte(nil)
	if len(arguments) > 1 {
		prefix, err = hex.DecodeString(arguments[1])
		if nil != err {
			exitwithstatus.Message("%s: convert prefix error: %s", program, err)
		}
	}

	if verbose {
		fmt.Printf("read pool: %s from file: %q  prefix: %x\n", pool.Name(), filename, prefix)
	}

	snap, err := db.Snapshot()
	if nil != err {
		exitwithstatus.Message("%s: snapshot error: %s", program, err)
	}
	defer snap.Release()

	data, err := snap.NewFetchCursor(pool, prefix).Fetch(count)
	if nil != err {
		exitwithstatus.Message("%s: error on Fetch: %s", program, err)
	}

	c := colours{}
	if len(options["colour"]) > 0 {
		c = colours{k1: keyColour1, k2: keyColour2, v1: valColour1, v2: valColour2, end: endColour}
	}

	decode := len(options["decode"]) > 0 && db.Pool.Assets == pool
	printElements(os.Stdout, data, c, len(options["ascii"]) > 0, decode)
}

// a pool is selected by its prefix letter or its name
func findPool(db *storage.Database, tag string) *storage.PoolHandle {
	for _, p := range db.Pools() {
		if tag == string(p.Prefix()) || tag == p.Name() {
			return p
		}
	}
	return nil
}

func printElements(w io.Writer, data []storage.Element, c colours, ascii bool, decode bool) {
	for i, e := range data {
		fmt.Fprintf(w, "%d: %sKey: %s%x%s\n", i, c.k1, c.k2, e.Key, c.end)
		switch {
		case decode:
			fmt.Fprintf(w, "%d: %sVal: %s%s%s\n", i, c.v1, c.v2, decodeAsset(e.Value), c.end)
		case ascii:
			hexDump(w, fmt.Sprintf("%d: %sVal: %s", i, c.v1, c.v2), c.end, e.Value)
		default:
			fmt.Fprintf(w, "%d: %sVal: %s%x%s\n", i, c.v1, c.v2, e.Value, c.end)
		}
	}
}

// JSON of a packed asset or the error text
func decodeAsset(value []byte) string {
	a, err := asset.Packed(value).Unpack()
	if nil != err {
		return fmt.Sprintf("*** %s: %x", err, value)
	}
	b, err := json.Marshal(a)
	if nil != err {
		return fmt.Sprintf("*** %s", err)
	}
	return string(b)
}

// dump hex data with an ascii column
func hexDump(w io.Writer, prefix string, suffix string, data []byte) {
	address := 0
	const bytesPerLine = 32
	for i := 0; i < len(data); i += bytesPerLine {
		line := &bytes.Buffer{}
		fmt.Fprintf(line, "%s%04x  ", prefix, address)
		address += bytesPerLine
		for j := 0; j < bytesPerLine; j += 1 {
			if bytesPerLine/2 == j {
				line.WriteByte(' ')
			}
			if i+j < len(data) {
				fmt.Fprintf(line, "%02x ", data[i+j])
			} else {
				line.WriteString("   ")
			}
		}
		line.WriteString(" |")
	ascii_loop:
		for j := 0; j < bytesPerLine; j += 1 {
			if i+j >= len(data) {
				break ascii_loop
			}
			c := data[i+j]
			if c < 32 || c >= 127 {
				c = '.'
			}
			line.WriteByte(c)
		}
		fmt.Fprintf(line, "|%s\n", suffix)
		w.Write(line.Bytes())
	}
}
