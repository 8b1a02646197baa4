// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package index

import (
	"encoding/binary"

	"github.com/bitmark-inc/logger"
	"github.com/bitmark-inc/supplyledger/account"
	"github.com/bitmark-inc/supplyledger/asset"
	"github.com/bitmark-inc/supplyledger/storage"
	"github.com/bitmark-inc/supplyledger/util"
	"github.com/bitmark-inc/supplyledger/validation"
)

// from storage/doc.go:
//
//   count    ⧺ partition ⧺ key          - number of ids under key
//   list     ⧺ partition ⧺ key ⧺ count  - id at that position
//   position ⧺ partition ⧺ key ⧺ id     - position of id, for removal
//
// removal moves the last id into the hole, so list order is not
// insertion order once anything has been removed

const countByteSize = 8

// Index - a per-partition mapping from a key to an unordered set of asset ids
type Index struct {
	name     string
	count    *storage.PoolHandle
	list     *storage.PoolHandle
	position *storage.PoolHandle
}

// Page - one page of a listing
type Page struct {
	Ids         []asset.Identifier `json:"ids"`
	Total       uint64             `json:"total,string"`
	HasNextPage bool               `json:"hasNextPage"`
}

// NewOwnerIndex - index of asset ids by current owner
func NewOwnerIndex(db *storage.Database) *Index {
	return &Index{
		name:     "owner",
		count:    db.Pool.OwnerCount,
		list:     db.Pool.OwnerList,
		position: db.Pool.OwnerPosition,
	}
}

// NewStatusIndex - index of asset ids by status
func NewStatusIndex(db *storage.Database) *Index {
	return &Index{
		name:     "status",
		count:    db.Pool.StatusCount,
		list:     db.Pool.StatusList,
		position: db.Pool.StatusPosition,
	}
}

// OwnerKey - index key for a principal
func OwnerKey(owner account.Principal) []byte {
	return util.AppendString(nil, owner.String())
}

// StatusKey - index key for a status
func StatusKey(status asset.Status) []byte {
	return []byte{byte(status)}
}

// Insert - append id under key
//
// must be called inside the partition's transaction
func (x *Index) Insert(trx *storage.Transaction, partition string, key []byte, id asset.Identifier) {
	pKey := storage.PartitionKey(partition, key, id[:])
	if trx.Has(x.position, pKey) {
		logger.Criticalf("index.%s: insert duplicate: partition: %q  key: %x  id: %s", x.name, partition, key, id)
		logger.Panicf("index.%s: database corrupt", x.name)
	}

	nKey := storage.PartitionKey(partition, key)
	count, _ := trx.GetN(x.count, nKey)

	trx.Put(x.list, storage.PartitionKey(partition, key, storage.CountBytes(count)), id[:])
	trx.PutN(x.position, pKey, count)
	trx.PutN(x.count, nKey, count+1)
}

// Remove - delete id from under key by swapping with the last entry
//
// must be called inside the partition's transaction
func (x *Index) Remove(trx *storage.Transaction, partition string, key []byte, id asset.Identifier) {
	pKey := storage.PartitionKey(partition, key, id[:])
	position, found := trx.GetN(x.position, pKey)
	if !found {
		logger.Criticalf("index.%s: remove missing: partition: %q  key: %x  id: %s", x.name, partition, key, id)
		logger.Panicf("index.%s: database corrupt", x.name)
	}

	nKey := storage.PartitionKey(partition, key)
	count, _ := trx.GetN(x.count, nKey)
	if 0 == count || position >= count {
		logger.Criticalf("index.%s: position: %d  count: %d  id: %s", x.name, position, count, id)
		logger.Panicf("index.%s: database corrupt", x.name)
	}
	last := count - 1

	lastListKey := storage.PartitionKey(partition, key, storage.CountBytes(last))
	if position != last {
		lastId := trx.Get(x.list, lastListKey)
		if asset.IdentifierLength != len(lastId) {
			logger.Panicf("index.%s: database corrupt at position: %d", x.name, last)
		}
		moved := make([]byte, len(lastId))
		copy(moved, lastId)

		trx.Put(x.list, storage.PartitionKey(partition, key, storage.CountBytes(position)), moved)
		trx.PutN(x.position, storage.PartitionKey(partition, key, moved), position)
	}
	trx.Delete(x.list, lastListKey)
	trx.Delete(x.position, pKey)

	if 0 == last {
		trx.Delete(x.count, nKey)
	} else {
		trx.PutN(x.count, nKey, last)
	}
}

// Move - remove id from one key and insert it under another
func (x *Index) Move(trx *storage.Transaction, partition string, from []byte, to []byte, id asset.Identifier) {
	x.Remove(trx, partition, from, id)
	x.Insert(trx, partition, to, id)
}

// Count - number of ids under key
func (x *Index) Count(r storage.Reader, partition string, key []byte) uint64 {
	count, _ := r.GetN(x.count, storage.PartitionKey(partition, key))
	return count
}

// Contains - check id is present under key
func (x *Index) Contains(r storage.Reader, partition string, key []byte, id asset.Identifier) bool {
	return r.Has(x.position, storage.PartitionKey(partition, key, id[:]))
}

// List - fetch one page of ids under key, pages are numbered from zero
func (x *Index) List(r storage.Reader, partition string, key []byte, page uint64, pageSize int) (*Page, error) {
	err := validation.PageSize(pageSize)
	if nil != err {
		return nil, err
	}

	total := x.Count(r, partition, key)
	result := &Page{
		Ids:   []asset.Identifier{},
		Total: total,
	}

	size := uint64(pageSize)
	if page >= (total+size-1)/size {
		return result, nil
	}

	start := page * size
	end := start + size
	if end > total {
		end = total
	}

	positionBytes := make([]byte, countByteSize)
	for p := start; p < end; p += 1 {
		binary.BigEndian.PutUint64(positionBytes, p)
		value := r.Get(x.list, storage.PartitionKey(partition, key, positionBytes))
		var id asset.Identifier
		if err := asset.IdentifierFromBytes(&id, value); nil != err {
			logger.Criticalf("index.%s: partition: %q  key: %x  position: %d  error: %s", x.name, partition, key, p, err)
			logger.Panicf("index.%s: database corrupt", x.name)
		}
		result.Ids = append(result.Ids, id)
	}
	result.HasNextPage = end < total

	return result, nil
}
