// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package provenance

import (
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/bitmark-inc/supplyledger/asset"
	"github.com/bitmark-inc/supplyledger/fault"
	"github.com/bitmark-inc/supplyledger/storage"
	"github.com/bitmark-inc/supplyledger/util"
)

// Entry - one operation applied to an asset
type Entry struct {
	Operation asset.Operation `json:"operation"`
	Timestamp time.Time       `json:"timestamp"`
}

// History - the per-asset operation log
type History struct {
	count   *storage.PoolHandle
	entries *storage.PoolHandle
}

// NewHistory - history log stored in db
func NewHistory(db *storage.Database) *History {
	return &History{
		count:   db.Pool.HistoryCount,
		entries: db.Pool.History,
	}
}

// Append - add an entry to the end of an asset's history
func (h *History) Append(trx *storage.Transaction, partition string, id asset.Identifier, op asset.Operation, timestamp time.Time) {
	nKey := storage.PartitionKey(partition, id[:])
	n, _ := trx.GetN(h.count, nKey)

	trx.Put(h.entries, storage.PartitionKey(partition, id[:], storage.CountBytes(n)), packEntry(op, timestamp))
	trx.PutN(h.count, nKey, n+1)
}

// Count - number of entries for an asset
func (h *History) Count(r storage.Reader, partition string, id asset.Identifier) uint64 {
	n, _ := r.GetN(h.count, storage.PartitionKey(partition, id[:]))
	return n
}

// List - the complete history of an asset, oldest first
func (h *History) List(r storage.Reader, partition string, id asset.Identifier) ([]Entry, error) {
	n := h.Count(r, partition, id)
	entries := make([]Entry, 0, n)
	for i := uint64(0); i < n; i += 1 {
		packed := r.Get(h.entries, storage.PartitionKey(partition, id[:], storage.CountBytes(i)))
		if nil == packed {
			logger.Criticalf("history: partition: %q  id: %s  missing entry: %d of %d", partition, id, i, n)
			return nil, fault.Detail(fault.ErrNotHistoryPack, "id: %s  entry: %d missing", id, i)
		}
		e, err := unpackEntry(packed)
		if nil != err {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// Varint64(operation) ⧺ Varint64(unix nanoseconds)
func packEntry(op asset.Operation, timestamp time.Time) []byte {
	buffer := util.ToVarint64(uint64(op))
	return util.AppendUint64(buffer, uint64(timestamp.UnixNano()))
}

func unpackEntry(packed []byte) (Entry, error) {
	u := util.NewUnpacker(packed)
	op := asset.Operation(u.Uint64())
	ts := u.Uint64()
	if !u.Ok() || 0 != u.Remaining() || !op.Valid() {
		return Entry{}, fault.Detail(fault.ErrNotHistoryPack, "record: %x", packed)
	}
	return Entry{
		Operation: op,
		Timestamp: time.Unix(0, int64(ts)).UTC(),
	}, nil
}
