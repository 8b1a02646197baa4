// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"github.com/syndtr/goleveldb/leveldb"

	"github.com/bitmark-inc/logger"
	"github.com/bitmark-inc/supplyledger/fault"
)

// Snapshot - a consistent read only view of committed data
type Snapshot struct {
	snap *leveldb.Snapshot
}

// Snapshot - capture the current committed state, must be Released
func (d *Database) Snapshot() (*Snapshot, error) {
	if nil == d.db {
		return nil, fault.ErrDatabaseIsNotSet
	}
	snap, err := d.db.GetSnapshot()
	if nil != err {
		return nil, err
	}
	return &Snapshot{snap: snap}, nil
}

// Release - free the snapshot
func (s *Snapshot) Release() {
	s.snap.Release()
}

// Get - read a value, nil if not found
//
// this returns the actual element - copy the result if it must be preserved
func (s *Snapshot) Get(pool *PoolHandle, key []byte) []byte {
	value, err := s.snap.Get(pool.prefixKey(key), nil)
	if leveldb.ErrNotFound == err {
		return nil
	}
	logger.PanicIfError("snapshot.Get", err)
	return value
}

// GetN - read a record and decode first 8 bytes as big endian uint64
func (s *Snapshot) GetN(pool *PoolHandle, key []byte) (uint64, bool) {
	return decodeN(pool, key, s.Get(pool, key))
}

// Has - check if a key exists
func (s *Snapshot) Has(pool *PoolHandle, key []byte) bool {
	value, err := s.snap.Has(pool.prefixKey(key), nil)
	logger.PanicIfError("snapshot.Has", err)
	return value
}

// NewFetchCursor - initialise a cursor over the keys of a pool starting with keyPrefix
func (s *Snapshot) NewFetchCursor(pool *PoolHandle, keyPrefix []byte) *FetchCursor {
	return &FetchCursor{
		source:   s.snap,
		pool:     pool,
		maxRange: *pool.keyRange(keyPrefix),
	}
}
