// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/supplyledger/asset"
	"github.com/bitmark-inc/supplyledger/fault"
	"github.com/bitmark-inc/supplyledger/fixtures"
)

const testConfiguration = `
return {
    data_directory = ".",
    partitions = {
        farm = { "alice", "bob" },
    },
}
`

func TestMain(m *testing.M) {
	fixtures.SetupTestLogger()
	rc := m.Run()
	fixtures.TeardownTestLogger()
	os.Exit(rc)
}

type runner struct {
	t    *testing.T
	file string
}

func newRunner(t *testing.T) (*runner, func()) {
	dir, err := ioutil.TempDir("", "ledger-cli")
	require.NoError(t, err)
	file := filepath.Join(dir, "ledger.conf")
	require.NoError(t, ioutil.WriteFile(file, []byte(testConfiguration), 0600))
	return &runner{t: t, file: file}, func() { os.RemoveAll(dir) }
}

// run one command as identity and decode its JSON output into result
func (r *runner) run(identity string, result interface{}, args ...string) error {
	w := &bytes.Buffer{}
	e := &bytes.Buffer{}
	app := newApp(w, e, false)
	err := app.Run(append([]string{"ledger-cli", "-c", r.file, "-i", identity}, args...))
	if nil == err && nil != result {
		require.NoError(r.t, json.Unmarshal(w.Bytes(), result), "output: %s", w.String())
	}
	return err
}

func TestCommands(t *testing.T) {
	r, done := newRunner(t)
	defer done()

	var created idResponse
	require.NoError(t, r.run("alice", &created, "create", "-p", "farm", "--id", "sack", "-a", "100", "-l", "barn", "-H", "h1", "-x", "e1"))
	sack, err := asset.NewIdentifier("sack")
	require.NoError(t, err)
	assert.Equal(t, sack, created.Id, "name based id")

	var a asset.Asset
	require.NoError(t, r.run("", &a, "get", "-p", "farm", "--id", sack.String()))
	assert.Equal(t, uint64(100), a.Amount, "amount")
	assert.Equal(t, []string{"e1"}, a.ExternalIds, "external ids")

	require.NoError(t, r.run("alice", nil, "transfer", "-p", "farm", "--id", "sack", "-r", "bob"))

	var parts idsResponse
	require.NoError(t, r.run("bob", &parts, "split", "-p", "farm", "--id", "sack", "-a", "60", "-a", "40", "-l", "dock", "-H", "p1", "-H", "p2"))
	require.Len(t, parts.Ids, 2, "parts")

	var derived idResponse
	require.NoError(t, r.run("bob", &derived, "transform", "-p", "farm", "--id", parts.Ids[0].String(), "-t", "ROAST"))

	var chain idsResponse
	require.NoError(t, r.run("", &chain, "chain", "-p", "farm", "--id", derived.Id.String()))
	assert.Equal(t, []asset.Identifier{sack, parts.Ids[0], derived.Id}, chain.Ids, "chain")

	require.NoError(t, r.run("bob", nil, "group", "-p", "farm", "--id", "pallet", "-m", derived.Id.String(), "-m", parts.Ids[1].String(), "-l", "dock", "-H", "manifest"))
	require.NoError(t, r.run("bob", nil, "ungroup", "-p", "farm", "--id", "pallet"))
	require.NoError(t, r.run("bob", nil, "inactivate", "-p", "farm", "--id", derived.Id.String()))
	require.NoError(t, r.run("bob", nil, "update", "-p", "farm", "--id", parts.Ids[1].String(), "-l", "shop", "-H", "sold"))

	var owned struct {
		Ids []asset.Identifier `json:"ids"`
	}
	require.NoError(t, r.run("bob", &owned, "list-owner", "-p", "farm"))
	assert.Len(t, owned.Ids, 5, "bob: sack, two parts, derived, pallet")

	var active struct {
		Ids []asset.Identifier `json:"ids"`
	}
	require.NoError(t, r.run("", &active, "list-status", "-p", "farm", "--status", "active"))
	assert.Equal(t, []asset.Identifier{parts.Ids[1]}, active.Ids, "only the updated part is active")

	var history []struct {
		Operation string `json:"operation"`
	}
	require.NoError(t, r.run("", &history, "history", "-p", "farm", "--id", "sack"))
	require.Len(t, history, 3)
	assert.Equal(t, "Split", history[2].Operation)
}

func TestCommandErrors(t *testing.T) {
	r, done := newRunner(t)
	defer done()

	err := r.run("", nil, "create", "-p", "farm", "--id", "x", "-l", "l", "-H", "h")
	assert.Equal(t, ErrMissingIdentity, err, "no identity")

	err = r.run("alice", nil, "transfer", "-p", "farm", "--id", "x")
	assert.True(t, errors.Is(err, ErrRequiredFlag), "no receiver: %v", err)

	err = r.run("alice", nil, "split", "-p", "farm", "--id", "x", "-a", "ten")
	assert.True(t, errors.Is(err, ErrInvalidAmount), "bad amount: %v", err)

	err = r.run("alice", nil, "get", "-p", "farm", "--id", "x")
	assert.True(t, errors.Is(err, fault.ErrAssetNotFound), "missing asset: %v", err)

	err = r.run("alice", nil, "list-status", "-p", "farm", "--status", "lost")
	assert.True(t, errors.Is(err, fault.ErrInvalidStatus), "bad status: %v", err)
}

func TestParseId(t *testing.T) {
	named, err := parseId("sack")
	require.NoError(t, err)
	expected, _ := asset.NewIdentifier("sack")
	assert.Equal(t, expected, named, "short name")

	hexed, err := parseId(named.String())
	require.NoError(t, err)
	assert.Equal(t, named, hexed, "hex form")

	_, err = parseId("")
	assert.Equal(t, fault.ErrEmptyIdentifier, err)
}

func TestParseAmounts(t *testing.T) {
	amounts, err := parseAmounts([]string{"1", "18446744073709551615"})
	require.NoError(t, err)
	assert.Equal(t, []uint64{1, 18446744073709551615}, amounts)

	_, err = parseAmounts([]string{"-1"})
	assert.True(t, errors.Is(err, ErrInvalidAmount))
}
