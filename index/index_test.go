// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package index_test

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/bitmark-inc/supplyledger/account"
	"github.com/bitmark-inc/supplyledger/asset"
	"github.com/bitmark-inc/supplyledger/fault"
	"github.com/bitmark-inc/supplyledger/fixtures"
	"github.com/bitmark-inc/supplyledger/index"
	"github.com/bitmark-inc/supplyledger/storage"
)

const testPartition = "p1"

func TestMain(m *testing.M) {
	fixtures.SetupTestLogger()
	rc := m.Run()
	fixtures.TeardownTestLogger()
	os.Exit(rc)
}

func makeIds(n int) []asset.Identifier {
	ids := make([]asset.Identifier, n)
	for i := range ids {
		id, err := asset.NewIdentifier(fmt.Sprintf("item-%03d", i))
		if nil != err {
			panic(err)
		}
		ids[i] = id
	}
	return ids
}

// run f inside a committed transaction
func apply(t require.TestingT, db *storage.Database, f func(trx *storage.Transaction)) {
	trx := db.NewTransaction()
	require.Nil(t, trx.Begin(), "Begin")
	f(trx)
	require.Nil(t, trx.Commit(), "Commit")
}

// every id under key, by walking all pages
func listAll(t require.TestingT, db *storage.Database, x *index.Index, key []byte) []asset.Identifier {
	snap, err := db.Snapshot()
	require.Nil(t, err, "Snapshot")
	defer snap.Release()

	all := []asset.Identifier{}
	for page := uint64(0); ; page += 1 {
		p, err := x.List(snap, testPartition, key, page, 3)
		require.Nil(t, err, "List")
		all = append(all, p.Ids...)
		if !p.HasNextPage {
			break
		}
	}
	return all
}

func sorted(ids []asset.Identifier) []string {
	s := make([]string, len(ids))
	for i, id := range ids {
		s[i] = id.String()
	}
	sort.Strings(s)
	return s
}

func TestInsertRemove(t *testing.T) {
	db, err := storage.OpenMemory()
	require.Nil(t, err, "OpenMemory")
	defer db.Close()

	x := index.NewOwnerIndex(db)
	key := index.OwnerKey(account.Principal("alice"))
	ids := makeIds(5)

	apply(t, db, func(trx *storage.Transaction) {
		for _, id := range ids {
			x.Insert(trx, testPartition, key, id)
		}
	})

	snap, err := db.Snapshot()
	require.Nil(t, err, "Snapshot")
	assert.Equal(t, uint64(5), x.Count(snap, testPartition, key), "count")
	p, err := x.List(snap, testPartition, key, 0, 10)
	require.Nil(t, err, "List")
	assert.Equal(t, ids, p.Ids, "insertion order before removal")
	assert.False(t, p.HasNextPage, "single page")
	snap.Release()

	// removing from the middle moves the last id into the hole
	apply(t, db, func(trx *storage.Transaction) {
		x.Remove(trx, testPartition, key, ids[1])
	})

	snap, err = db.Snapshot()
	require.Nil(t, err, "Snapshot")
	p, err = x.List(snap, testPartition, key, 0, 10)
	require.Nil(t, err, "List")
	assert.Equal(t, []asset.Identifier{ids[0], ids[4], ids[2], ids[3]}, p.Ids, "swap and pop")
	assert.False(t, x.Contains(snap, testPartition, key, ids[1]), "removed")
	assert.True(t, x.Contains(snap, testPartition, key, ids[4]), "moved")
	snap.Release()

	// then remove the last and drain
	apply(t, db, func(trx *storage.Transaction) {
		x.Remove(trx, testPartition, key, ids[3])
		x.Remove(trx, testPartition, key, ids[0])
		x.Remove(trx, testPartition, key, ids[4])
		x.Remove(trx, testPartition, key, ids[2])
	})
	snap, err = db.Snapshot()
	require.Nil(t, err, "Snapshot")
	defer snap.Release()
	assert.Equal(t, uint64(0), x.Count(snap, testPartition, key), "drained")
	p, err = x.List(snap, testPartition, key, 0, 10)
	require.Nil(t, err, "List")
	assert.Empty(t, p.Ids, "no ids")
}

func TestCorruptionPanics(t *testing.T) {
	db, err := storage.OpenMemory()
	require.Nil(t, err, "OpenMemory")
	defer db.Close()

	x := index.NewStatusIndex(db)
	key := index.StatusKey(asset.Active)
	ids := makeIds(1)

	trx := db.NewTransaction()
	require.Nil(t, trx.Begin(), "Begin")
	defer trx.Abort()

	assert.Panics(t, func() { x.Remove(trx, testPartition, key, ids[0]) }, "remove missing")
	x.Insert(trx, testPartition, key, ids[0])
	assert.Panics(t, func() { x.Insert(trx, testPartition, key, ids[0]) }, "insert duplicate")
}

func TestMove(t *testing.T) {
	db, err := storage.OpenMemory()
	require.Nil(t, err, "OpenMemory")
	defer db.Close()

	x := index.NewStatusIndex(db)
	active := index.StatusKey(asset.Active)
	inactive := index.StatusKey(asset.Inactive)
	ids := makeIds(3)

	apply(t, db, func(trx *storage.Transaction) {
		for _, id := range ids {
			x.Insert(trx, testPartition, active, id)
		}
		x.Move(trx, testPartition, active, inactive, ids[0])
	})

	assert.Equal(t, sorted(ids[1:]), sorted(listAll(t, db, x, active)), "active")
	assert.Equal(t, []asset.Identifier{ids[0]}, listAll(t, db, x, inactive), "inactive")
}

func TestPartitionsAreSeparate(t *testing.T) {
	db, err := storage.OpenMemory()
	require.Nil(t, err, "OpenMemory")
	defer db.Close()

	x := index.NewOwnerIndex(db)
	key := index.OwnerKey(account.Principal("alice"))
	ids := makeIds(2)

	apply(t, db, func(trx *storage.Transaction) {
		x.Insert(trx, testPartition, key, ids[0])
		x.Insert(trx, "p2", key, ids[1])
	})

	snap, err := db.Snapshot()
	require.Nil(t, err, "Snapshot")
	defer snap.Release()

	assert.Equal(t, uint64(1), x.Count(snap, testPartition, key), "p1")
	assert.Equal(t, uint64(1), x.Count(snap, "p2", key), "p2")
	assert.False(t, x.Contains(snap, testPartition, key, ids[1]), "p1 does not see p2")
}

func TestPagination(t *testing.T) {
	db, err := storage.OpenMemory()
	require.Nil(t, err, "OpenMemory")
	defer db.Close()

	x := index.NewOwnerIndex(db)
	key := index.OwnerKey(account.Principal("bob"))
	ids := makeIds(25)

	apply(t, db, func(trx *storage.Transaction) {
		for _, id := range ids {
			x.Insert(trx, testPartition, key, id)
		}
	})

	snap, err := db.Snapshot()
	require.Nil(t, err, "Snapshot")
	defer snap.Release()

	tests := []struct {
		page     uint64
		pageSize int
		ids      []asset.Identifier
		hasNext  bool
	}{
		{0, 10, ids[0:10], true},
		{1, 10, ids[10:20], true},
		{2, 10, ids[20:25], false},
		{3, 10, []asset.Identifier{}, false},
		{0, 25, ids, false},
		{0, 100, ids, false},
		{24, 1, ids[24:25], false},
		{1000, 100, []asset.Identifier{}, false},
	}

	for i, item := range tests {
		p, err := x.List(snap, testPartition, key, item.page, item.pageSize)
		require.Nil(t, err, "%d: List", i)
		assert.Equal(t, item.ids, p.Ids, "%d: ids", i)
		assert.Equal(t, item.hasNext, p.HasNextPage, "%d: has next", i)
		assert.Equal(t, uint64(25), p.Total, "%d: total", i)
	}

	for _, size := range []int{0, -1, 101} {
		_, err := x.List(snap, testPartition, key, 0, size)
		assert.True(t, errors.Is(err, fault.ErrPageSizeOutOfBounds), "size: %d  error: %v", size, err)
	}
}

// any sequence of inserts and removes leaves the listing equal to the set
// of ids inserted and not removed, with every position accounted for
func TestIndexIntegrityProperty(t *testing.T) {
	pool := makeIds(12)
	owners := []account.Principal{"alice", "bob", "carol"}

	rapid.Check(t, func(rt *rapid.T) {
		db, err := storage.OpenMemory()
		require.Nil(rt, err, "OpenMemory")
		defer db.Close()

		x := index.NewOwnerIndex(db)
		model := map[asset.Identifier]account.Principal{}

		steps := rapid.IntRange(1, 40).Draw(rt, "steps")
		for s := 0; s < steps; s += 1 {
			id := pool[rapid.IntRange(0, len(pool)-1).Draw(rt, "id")]
			to := owners[rapid.IntRange(0, len(owners)-1).Draw(rt, "owner")]

			apply(rt, db, func(trx *storage.Transaction) {
				from, present := model[id]
				switch {
				case !present:
					x.Insert(trx, testPartition, index.OwnerKey(to), id)
					model[id] = to
				case from == to:
					x.Remove(trx, testPartition, index.OwnerKey(from), id)
					delete(model, id)
				default:
					x.Move(trx, testPartition, index.OwnerKey(from), index.OwnerKey(to), id)
					model[id] = to
				}
			})
		}

		for _, owner := range owners {
			expected := []asset.Identifier{}
			for id, o := range model {
				if o == owner {
					expected = append(expected, id)
				}
			}
			actual := listAll(rt, db, x, index.OwnerKey(owner))
			assert.Equal(rt, sorted(expected), sorted(actual), "owner: %s", owner)
		}
	})
}
