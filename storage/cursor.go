// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"github.com/syndtr/goleveldb/leveldb/iterator"
	ldb_opt "github.com/syndtr/goleveldb/leveldb/opt"
	ldb_util "github.com/syndtr/goleveldb/leveldb/util"

	"github.com/bitmark-inc/supplyledger/fault"
)

// anything that can iterate, i.e. a database or a snapshot
type iterable interface {
	NewIterator(*ldb_util.Range, *ldb_opt.ReadOptions) iterator.Iterator
}

// FetchCursor - cursor structure
type FetchCursor struct {
	source   iterable
	pool     *PoolHandle
	maxRange ldb_util.Range
}

// Fetch - return up to count elements from the cursor position and advance it
func (cursor *FetchCursor) Fetch(count int) ([]Element, error) {
	if nil == cursor {
		return nil, fault.ErrInvalidCursor
	}
	if count <= 0 {
		return nil, fault.ErrInvalidCount
	}

	iter := cursor.source.NewIterator(&cursor.maxRange, nil)

	results := make([]Element, 0, count)
iterating:
	for iter.Next() {
		results = append(results, cursor.element(iter))
		if len(results) >= count {
			break iterating
		}
	}
	iter.Release()
	err := iter.Error()

	if n := len(results); n > 0 {
		// next possible key after the last one returned
		lastKey := cursor.pool.prefixKey(results[n-1].Key)
		cursor.maxRange.Start = append(lastKey, 0x00)
	}
	return results, err
}

// Map - run a function on all elements in the range
func (cursor *FetchCursor) Map(f func(key []byte, value []byte) error) error {
	if nil == cursor {
		return fault.ErrInvalidCursor
	}

	iter := cursor.source.NewIterator(&cursor.maxRange, nil)

	var err error
iterating:
	for iter.Next() {
		e := cursor.element(iter)
		err = f(e.Key, e.Value)
		if nil != err {
			break iterating
		}
	}
	iter.Release()
	if nil == err {
		err = iter.Error()
	}
	return err
}

func (cursor *FetchCursor) element(iter iterator.Iterator) Element {
	// contents of the returned slice must not be modified, and are
	// only valid until the next call to Next
	key := iter.Key()
	value := iter.Value()

	dataKey := make([]byte, len(key)-1) // strip the prefix
	copy(dataKey, key[1:])              // ...

	dataValue := make([]byte, len(value))
	copy(dataValue, value)

	return Element{
		Key:   dataKey,
		Value: dataValue,
	}
}
