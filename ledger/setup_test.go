// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger_test

import (
	"encoding/hex"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/supplyledger/account"
	"github.com/bitmark-inc/supplyledger/asset"
	"github.com/bitmark-inc/supplyledger/fixtures"
	"github.com/bitmark-inc/supplyledger/ledger"
	"github.com/bitmark-inc/supplyledger/messagebus"
	"github.com/bitmark-inc/supplyledger/partition"
	"github.com/bitmark-inc/supplyledger/storage"
)

const (
	p1 = "farm"
	p2 = "roaster"
)

var (
	alice = named("alice")
	bob   = named("bob")
	carol = named("carol")
)

func TestMain(m *testing.M) {
	fixtures.SetupTestLogger()
	rc := m.Run()
	fixtures.TeardownTestLogger()
	os.Exit(rc)
}

type harness struct {
	db     *storage.Database
	ledger *ledger.Ledger
	bus    *messagebus.Bus
}

func setup(t require.TestingT) *harness {
	return setupWithBus(t, messagebus.New(10000))
}

func setupWithBus(t require.TestingT, bus *messagebus.Bus) *harness {
	db, err := storage.OpenMemory()
	require.Nil(t, err, "OpenMemory")

	members := partition.NewStatic(map[string][]string{
		p1: {"alice", "bob", "carol"},
		p2: {"alice", "bob"},
	})
	return &harness{
		db:     db,
		ledger: ledger.New(db, members, bus),
		bus:    bus,
	}
}

func (h *harness) close() {
	h.db.Close()
}

func named(name string) account.Context {
	c, err := account.NewNamed(name)
	if nil != err {
		panic(err)
	}
	return c
}

func makeId(name string) asset.Identifier {
	id, err := asset.NewIdentifier(name)
	if nil != err {
		panic(err)
	}
	return id
}

// create an asset with defaults for everything except amount
func (h *harness) create(t require.TestingT, caller account.Context, partition string, name string, amount uint64) asset.Identifier {
	id := makeId(name)
	err := h.ledger.Create(caller, partition, id, amount, "warehouse", []string{"hash-" + name}, []string{"ext-" + name})
	require.Nil(t, err, "create: %s", name)
	return id
}

func (h *harness) get(t require.TestingT, partition string, id asset.Identifier) *asset.Asset {
	a, err := h.ledger.Get(partition, id)
	require.Nil(t, err, "get: %s", id)
	return a
}

func (h *harness) operations(t require.TestingT, partition string, id asset.Identifier) []asset.Operation {
	entries, err := h.ledger.History(partition, id)
	require.Nil(t, err, "history: %s", id)
	ops := make([]asset.Operation, len(entries))
	for i, e := range entries {
		ops[i] = e.Operation
	}
	return ops
}

// every id listed under an owner, all pages
func (h *harness) owned(t require.TestingT, partition string, owner account.Principal) []asset.Identifier {
	ids := []asset.Identifier{}
	for page := uint64(0); ; page += 1 {
		p, err := h.ledger.ListByOwner(partition, owner, page, 7)
		require.Nil(t, err, "ListByOwner")
		ids = append(ids, p.Ids...)
		if !p.HasNextPage {
			return ids
		}
	}
}

// every id listed under a status, all pages
func (h *harness) withStatus(t require.TestingT, partition string, status asset.Status) []asset.Identifier {
	ids := []asset.Identifier{}
	for page := uint64(0); ; page += 1 {
		p, err := h.ledger.ListByStatus(partition, status, page, 7)
		require.Nil(t, err, "ListByStatus")
		ids = append(ids, p.Ids...)
		if !p.HasNextPage {
			return ids
		}
	}
}

// dump - the entire database contents, for before/after comparison
func (h *harness) dump(t require.TestingT) map[string]string {
	snap, err := h.db.Snapshot()
	require.Nil(t, err, "Snapshot")
	defer snap.Release()

	result := make(map[string]string)
	for _, pool := range h.db.Pools() {
		err := snap.NewFetchCursor(pool, nil).Map(func(key []byte, value []byte) error {
			result[pool.Name()+":"+hex.EncodeToString(key)] = hex.EncodeToString(value)
			return nil
		})
		require.Nil(t, err, "Map: %s", pool.Name())
	}
	return result
}

// drain - every notification currently queued
func (h *harness) drain() []ledger.Notification {
	list := []ledger.Notification{}
	for {
		select {
		case m := <-h.bus.Chan():
			list = append(list, m.Item.(ledger.Notification))
		default:
			return list
		}
	}
}
