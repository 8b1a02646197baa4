// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"encoding/binary"

	ldb_util "github.com/syndtr/goleveldb/leveldb/util"

	"github.com/bitmark-inc/supplyledger/util"
)

// PoolHandle - identifies one pool of the database
type PoolHandle struct {
	name   string
	prefix byte
	limit  []byte
}

// Element - a binary data item
type Element struct {
	Key   []byte
	Value []byte
}

// Name - field name of the pool
func (p *PoolHandle) Name() string {
	return p.name
}

// Prefix - the key prefix byte
func (p *PoolHandle) Prefix() byte {
	return p.prefix
}

// prepend the prefix onto the key
func (p *PoolHandle) prefixKey(key []byte) []byte {
	prefixedKey := make([]byte, 1, len(key)+1)
	prefixedKey[0] = p.prefix
	return append(prefixedKey, key...)
}

// the range of all keys in this pool starting with keyPrefix
func (p *PoolHandle) keyRange(keyPrefix []byte) *ldb_util.Range {
	if 0 == len(keyPrefix) {
		return &ldb_util.Range{
			Start: []byte{p.prefix}, // Start of key range, included in the range
			Limit: p.limit,          // Limit of key range, excluded from the range
		}
	}
	return ldb_util.BytesPrefix(p.prefixKey(keyPrefix))
}

// PartitionKey - build a key scoped to a partition
//
// the partition is length prefixed so that no partition name
// can be a prefix of another partition's keys
func PartitionKey(partition string, parts ...[]byte) []byte {
	key := util.AppendString(nil, partition)
	for _, p := range parts {
		key = append(key, p...)
	}
	return key
}

// CountBytes - encode a count as 8 byte big endian
func CountBytes(n uint64) []byte {
	buffer := make([]byte, 8)
	binary.BigEndian.PutUint64(buffer, n)
	return buffer
}
