// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package provenance_test

import (
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/supplyledger/asset"
	"github.com/bitmark-inc/supplyledger/fault"
	"github.com/bitmark-inc/supplyledger/fixtures"
	"github.com/bitmark-inc/supplyledger/provenance"
	"github.com/bitmark-inc/supplyledger/storage"
	"github.com/bitmark-inc/supplyledger/validation"
)

func TestMain(m *testing.M) {
	fixtures.SetupTestLogger()
	rc := m.Run()
	fixtures.TeardownTestLogger()
	os.Exit(rc)
}

func makeId(name string) asset.Identifier {
	id, err := asset.NewIdentifier(name)
	if nil != err {
		panic(err)
	}
	return id
}

func TestHistory(t *testing.T) {
	db, err := storage.OpenMemory()
	require.Nil(t, err, "OpenMemory")
	defer db.Close()

	h := provenance.NewHistory(db)
	id := makeId("coffee")
	other := makeId("tea")
	t0 := time.Date(2020, 3, 4, 5, 6, 7, 8, time.UTC)

	ops := []asset.Operation{asset.Create, asset.Update, asset.Transfer, asset.Inactivate}

	for i, op := range ops {
		trx := db.NewTransaction()
		require.Nil(t, trx.Begin(), "Begin")
		h.Append(trx, "p1", id, op, t0.Add(time.Duration(i)*time.Second))
		require.Nil(t, trx.Commit(), "Commit")
	}

	// an aborted append leaves no trace
	trx := db.NewTransaction()
	require.Nil(t, trx.Begin(), "Begin")
	h.Append(trx, "p1", id, asset.Split, t0)
	trx.Abort()

	snap, err := db.Snapshot()
	require.Nil(t, err, "Snapshot")
	defer snap.Release()

	assert.Equal(t, uint64(len(ops)), h.Count(snap, "p1", id), "count")
	entries, err := h.List(snap, "p1", id)
	require.Nil(t, err, "List")
	require.Len(t, entries, len(ops), "entries")
	for i, e := range entries {
		assert.Equal(t, ops[i], e.Operation, "%d: operation", i)
		assert.True(t, t0.Add(time.Duration(i)*time.Second).Equal(e.Timestamp), "%d: timestamp", i)
	}

	entries, err = h.List(snap, "p1", other)
	require.Nil(t, err, "List other")
	assert.Empty(t, entries, "no history")

	entries, err = h.List(snap, "p2", id)
	require.Nil(t, err, "List other partition")
	assert.Empty(t, entries, "partition separation")
}

func TestHistoryCorrupt(t *testing.T) {
	db, err := storage.OpenMemory()
	require.Nil(t, err, "OpenMemory")
	defer db.Close()

	h := provenance.NewHistory(db)
	id := makeId("coffee")

	trx := db.NewTransaction()
	require.Nil(t, trx.Begin(), "Begin")
	h.Append(trx, "p1", id, asset.Create, time.Now())
	// overwrite the entry with an invalid operation
	trx.Put(db.Pool.History, storage.PartitionKey("p1", id[:], storage.CountBytes(0)), []byte{0x7f, 0x01})
	require.Nil(t, trx.Commit(), "Commit")

	snap, err := db.Snapshot()
	require.Nil(t, err, "Snapshot")
	defer snap.Release()

	_, err = h.List(snap, "p1", id)
	assert.True(t, errors.Is(err, fault.ErrNotHistoryPack), "error: %v", err)
}

// build a linear chain of n assets, each the parent of the next
func buildChain(n int) (map[asset.Identifier]*asset.Asset, []asset.Identifier) {
	store := map[asset.Identifier]*asset.Asset{}
	ids := make([]asset.Identifier, n)
	parent := asset.Identifier{}
	for i := 0; i < n; i += 1 {
		id := makeId(fmt.Sprintf("stage-%d", i))
		store[id] = &asset.Asset{Id: id, ParentAssetId: parent}
		ids[i] = id
		parent = id
	}
	return store, ids
}

func lookupIn(store map[asset.Identifier]*asset.Asset) provenance.Lookup {
	return func(id asset.Identifier) (*asset.Asset, error) {
		a, ok := store[id]
		if !ok {
			return nil, fault.ErrAssetNotFound
		}
		return a, nil
	}
}

func TestChain(t *testing.T) {
	store, ids := buildChain(4)
	lookup := lookupIn(store)

	chain, err := provenance.Chain(lookup, ids[3])
	require.Nil(t, err, "Chain")
	assert.Equal(t, ids, chain, "oldest first")

	chain, err = provenance.Chain(lookup, ids[0])
	require.Nil(t, err, "Chain root")
	assert.Equal(t, ids[:1], chain, "root alone")

	depth, err := provenance.Depth(lookup, ids[2])
	require.Nil(t, err, "Depth")
	assert.Equal(t, 2, depth, "depth")

	_, err = provenance.Chain(lookup, makeId("missing"))
	assert.True(t, errors.Is(err, fault.ErrAssetNotFound), "missing: %v", err)

	// a dangling parent
	delete(store, ids[1])
	_, err = provenance.Chain(lookup, ids[3])
	assert.True(t, errors.Is(err, fault.ErrAssetNotFound), "dangling: %v", err)
}

func TestChainBounded(t *testing.T) {
	store, ids := buildChain(validation.MaximumTransformationDepth + 1)
	chain, err := provenance.Chain(lookupIn(store), ids[len(ids)-1])
	require.Nil(t, err, "at the limit")
	assert.Len(t, chain, validation.MaximumTransformationDepth+1, "length")

	store, ids = buildChain(validation.MaximumTransformationDepth + 2)
	_, err = provenance.Chain(lookupIn(store), ids[len(ids)-1])
	assert.True(t, errors.Is(err, fault.ErrTruncatedChain), "beyond the limit: %v", err)

	// a cycle can only come from corruption, and must still terminate
	a := makeId("a")
	b := makeId("b")
	cycle := map[asset.Identifier]*asset.Asset{
		a: {Id: a, ParentAssetId: b},
		b: {Id: b, ParentAssetId: a},
	}
	_, err = provenance.Chain(lookupIn(cycle), a)
	assert.True(t, errors.Is(err, fault.ErrTruncatedChain), "cycle: %v", err)
}
