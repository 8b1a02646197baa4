// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"encoding/binary"
	"sync"

	"github.com/syndtr/goleveldb/leveldb"

	"github.com/bitmark-inc/logger"
	"github.com/bitmark-inc/supplyledger/fault"
)

// Reader - read access shared by transactions and snapshots
type Reader interface {
	Get(*PoolHandle, []byte) []byte
	GetN(*PoolHandle, []byte) (uint64, bool)
	Has(*PoolHandle, []byte) bool
}

// Transaction - a batch of writes applied atomically on Commit
//
// reads through the transaction see its own pending writes;
// a transaction is reusable but only one Begin may be active
type Transaction struct {
	sync.Mutex
	inUse    bool
	database *Database
	batch    *leveldb.Batch
	cache    *dbCache
}

// NewTransaction - create a transaction on this database
func (d *Database) NewTransaction() *Transaction {
	return &Transaction{
		database: d,
		batch:    new(leveldb.Batch),
		cache:    newCache(),
	}
}

// Begin - start a batch, fails if a batch is already in progress
func (t *Transaction) Begin() error {
	t.Lock()
	defer t.Unlock()

	if t.inUse {
		return fault.ErrTransactionInUse
	}
	if nil == t.database.db {
		return fault.ErrDatabaseIsNotSet
	}

	t.inUse = true
	return nil
}

// InUse - true between Begin and Commit/Abort
func (t *Transaction) InUse() bool {
	t.Lock()
	defer t.Unlock()
	return t.inUse
}

// Put - store a key/value bytes pair
func (t *Transaction) Put(pool *PoolHandle, key []byte, value []byte) {
	pk := pool.prefixKey(key)
	t.cache.Set(dbPut, string(pk), value)
	t.batch.Put(pk, value)
}

// PutN - store a key with an 8 byte big endian value
func (t *Transaction) PutN(pool *PoolHandle, key []byte, value uint64) {
	t.Put(pool, key, CountBytes(value))
}

// Delete - remove a key
func (t *Transaction) Delete(pool *PoolHandle, key []byte) {
	pk := pool.prefixKey(key)
	t.cache.Set(dbDelete, string(pk), nil)
	t.batch.Delete(pk)
}

// Get - read a value, nil if not found
func (t *Transaction) Get(pool *PoolHandle, key []byte) []byte {
	pk := pool.prefixKey(key)
	if value, found := t.cache.Get(string(pk)); found {
		return value
	}
	value, err := t.database.db.Get(pk, nil)
	if leveldb.ErrNotFound == err {
		return nil
	}
	logger.PanicIfError("transaction.Get", err)
	return value
}

// GetN - read a record and decode first 8 bytes as big endian uint64
//
// second parameter is false if record was not found
// panics if not 8 (or more) bytes in the record
func (t *Transaction) GetN(pool *PoolHandle, key []byte) (uint64, bool) {
	return decodeN(pool, key, t.Get(pool, key))
}

// Has - check if a key exists
func (t *Transaction) Has(pool *PoolHandle, key []byte) bool {
	return nil != t.Get(pool, key)
}

// Pending - number of distinct keys written in this batch
func (t *Transaction) Pending() int {
	return t.cache.Count()
}

// Commit - write the batch atomically and end the transaction
func (t *Transaction) Commit() error {
	t.Lock()
	defer t.Unlock()

	if !t.inUse {
		return fault.ErrTransactionNotInUse
	}

	err := t.database.db.Write(t.batch, nil)
	t.reset()
	return err
}

// Abort - discard the batch and end the transaction
func (t *Transaction) Abort() {
	t.Lock()
	defer t.Unlock()
	t.reset()
}

func (t *Transaction) reset() {
	t.batch.Reset()
	t.cache.Clear()
	t.inUse = false
}

func decodeN(pool *PoolHandle, key []byte, buffer []byte) (uint64, bool) {
	if nil == buffer {
		return 0, false
	}
	if len(buffer) < 8 {
		logger.Panicf("pool: %s GetN truncated record for: %x: %x", pool.name, key, buffer)
	}
	return binary.BigEndian.Uint64(buffer[:8]), true
}
