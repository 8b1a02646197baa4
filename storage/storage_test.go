// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/supplyledger/fault"
	"github.com/bitmark-inc/supplyledger/fixtures"
	"github.com/bitmark-inc/supplyledger/storage"
)

func TestMain(m *testing.M) {
	fixtures.SetupTestLogger()
	rc := m.Run()
	fixtures.TeardownTestLogger()
	os.Exit(rc)
}

func setup(t *testing.T) *storage.Database {
	db, err := storage.OpenMemory()
	require.Nil(t, err, "OpenMemory")
	return db
}

func TestTransactionVisibility(t *testing.T) {
	db := setup(t)
	defer db.Close()

	p := db.Pool.TestData
	trx := db.NewTransaction()

	require.Nil(t, trx.Begin(), "Begin")
	trx.Put(p, []byte("key-one"), []byte("data-one"))
	trx.PutN(p, []byte("count"), 42)

	// pending writes visible inside the transaction only
	assert.Equal(t, []byte("data-one"), trx.Get(p, []byte("key-one")), "pending put not visible")
	n, ok := trx.GetN(p, []byte("count"))
	assert.True(t, ok, "pending count not found")
	assert.Equal(t, uint64(42), n, "wrong pending count")

	snap, err := db.Snapshot()
	require.Nil(t, err, "Snapshot")
	assert.False(t, snap.Has(p, []byte("key-one")), "uncommitted data visible")
	snap.Release()

	require.Nil(t, trx.Commit(), "Commit")
	assert.False(t, trx.InUse(), "still in use after commit")

	snap, err = db.Snapshot()
	require.Nil(t, err, "Snapshot")
	defer snap.Release()
	assert.Equal(t, []byte("data-one"), snap.Get(p, []byte("key-one")), "committed data not visible")
	n, ok = snap.GetN(p, []byte("count"))
	assert.True(t, ok && 42 == n, "wrong committed count: %d", n)
}

func TestTransactionAbortAndDelete(t *testing.T) {
	db := setup(t)
	defer db.Close()

	p := db.Pool.TestData
	trx := db.NewTransaction()

	require.Nil(t, trx.Begin())
	trx.Put(p, []byte("keep"), []byte("v1"))
	require.Nil(t, trx.Commit())

	require.Nil(t, trx.Begin())
	trx.Delete(p, []byte("keep"))
	assert.False(t, trx.Has(p, []byte("keep")), "pending delete still visible")
	trx.Put(p, []byte("discard"), []byte("v2"))
	assert.Equal(t, 2, trx.Pending(), "wrong pending count")
	trx.Abort()

	snap, err := db.Snapshot()
	require.Nil(t, err)
	defer snap.Release()
	assert.True(t, snap.Has(p, []byte("keep")), "aborted delete applied")
	assert.False(t, snap.Has(p, []byte("discard")), "aborted put applied")

	// the overlay is cleared by abort
	require.Nil(t, trx.Begin())
	assert.True(t, trx.Has(p, []byte("keep")), "stale delete in overlay")
	trx.Abort()
}

func TestNestedBegin(t *testing.T) {
	db := setup(t)
	defer db.Close()

	trx := db.NewTransaction()
	require.Nil(t, trx.Begin())
	assert.Equal(t, fault.ErrTransactionInUse, trx.Begin(), "nested begin allowed")
	trx.Abort()
	assert.Nil(t, trx.Begin(), "begin after abort")
	assert.Nil(t, trx.Commit())
	assert.Equal(t, fault.ErrTransactionNotInUse, trx.Commit(), "commit without begin")
}

func TestCursor(t *testing.T) {
	db := setup(t)
	defer db.Close()

	p := db.Pool.TestData
	trx := db.NewTransaction()
	require.Nil(t, trx.Begin())
	for _, k := range []string{"a-1", "a-2", "a-3", "b-1", "b-2"} {
		trx.Put(p, []byte(k), []byte("v"+k))
	}
	// another pool must not leak into the range
	trx.Put(db.Pool.Assets, []byte("a-9"), []byte("x"))
	require.Nil(t, trx.Commit())

	snap, err := db.Snapshot()
	require.Nil(t, err)
	defer snap.Release()

	cursor := snap.NewFetchCursor(p, []byte("a-"))
	first, err := cursor.Fetch(2)
	require.Nil(t, err)
	second, err := cursor.Fetch(2)
	require.Nil(t, err)

	require.Equal(t, 2, len(first), "first page")
	require.Equal(t, 1, len(second), "second page")
	assert.Equal(t, "a-1", string(first[0].Key))
	assert.Equal(t, "a-2", string(first[1].Key))
	assert.Equal(t, "a-3", string(second[0].Key))
	assert.Equal(t, "va-3", string(second[0].Value))

	keys := []string{}
	err = snap.NewFetchCursor(p, nil).Map(func(key []byte, value []byte) error {
		keys = append(keys, string(key))
		return nil
	})
	require.Nil(t, err)
	assert.Equal(t, []string{"a-1", "a-2", "a-3", "b-1", "b-2"}, keys, "wrong map order")

	_, err = cursor.Fetch(0)
	assert.Equal(t, fault.ErrInvalidCount, err)
}

func TestReopen(t *testing.T) {
	dir, err := os.MkdirTemp("", "ledger-storage")
	require.Nil(t, err)
	defer os.RemoveAll(dir)
	name := filepath.Join(dir, "test.leveldb")

	db, err := storage.Open(name, storage.ReadWrite)
	require.Nil(t, err, "Open")
	trx := db.NewTransaction()
	require.Nil(t, trx.Begin())
	trx.Put(db.Pool.TestData, []byte("persist"), []byte("yes"))
	require.Nil(t, trx.Commit())
	require.Nil(t, db.Close())

	db, err = storage.Open(name, storage.ReadOnly)
	require.Nil(t, err, "reopen")
	defer db.Close()
	snap, err := db.Snapshot()
	require.Nil(t, err)
	defer snap.Release()
	assert.Equal(t, "yes", string(snap.Get(db.Pool.TestData, []byte("persist"))), "data lost")

	names := []string{}
	for _, p := range db.Pools() {
		names = append(names, p.Name())
	}
	assert.Contains(t, names, "Assets")
	assert.Contains(t, names, "StatusPosition")
}

func TestPartitionKey(t *testing.T) {
	// "ab" ⧺ "c" and "a" ⧺ "bc" must not collide
	k1 := storage.PartitionKey("ab", []byte("c"))
	k2 := storage.PartitionKey("a", []byte("bc"))
	assert.NotEqual(t, k1, k2, "partition keys collide")
}
