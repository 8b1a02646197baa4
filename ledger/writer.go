// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/supplyledger/account"
	"github.com/bitmark-inc/supplyledger/asset"
	"github.com/bitmark-inc/supplyledger/fault"
	"github.com/bitmark-inc/supplyledger/index"
	"github.com/bitmark-inc/supplyledger/provenance"
	"github.com/bitmark-inc/supplyledger/storage"
	"github.com/bitmark-inc/supplyledger/validation"
)

// writer - the view of one partition during one operation
//
// all reads see the operation's own pending writes
type writer struct {
	ledger        *Ledger
	trx           *storage.Transaction
	partition     string
	timestamp     time.Time
	notifications []Notification
}

// load - fetch an asset, NotFound if absent
func (w *writer) load(id asset.Identifier) (*asset.Asset, error) {
	return loadAsset(w.trx, w.ledger.db, w.partition, id)
}

func (w *writer) exists(id asset.Identifier) bool {
	return w.trx.Has(w.ledger.db.Pool.Assets, storage.PartitionKey(w.partition, id[:]))
}

// lookup - for walking lineage inside the operation
func (w *writer) lookup() provenance.Lookup {
	return func(id asset.Identifier) (*asset.Asset, error) {
		return w.load(id)
	}
}

// put - store the asset record, stamping the update time
func (w *writer) put(a *asset.Asset) {
	a.LastUpdated = w.timestamp
	packed, err := a.Pack()
	if nil != err {
		// only reachable through a programming error in this package
		logger.Panicf("ledger: pack asset: %s  error: %s", a.Id, err)
	}
	w.trx.Put(w.ledger.db.Pool.Assets, storage.PartitionKey(w.partition, a.Id[:]), packed)
}

// insert - store a new asset and add it to both indices
func (w *writer) insert(a *asset.Asset) {
	a.CreatedAt = w.timestamp
	w.put(a)
	w.ledger.owners.Insert(w.trx, w.partition, index.OwnerKey(a.Owner), a.Id)
	w.ledger.statuses.Insert(w.trx, w.partition, index.StatusKey(a.Status), a.Id)
}

// setStatus - change status keeping the status index in step
func (w *writer) setStatus(a *asset.Asset, status asset.Status) {
	if status == a.Status {
		return
	}
	w.ledger.statuses.Move(w.trx, w.partition, index.StatusKey(a.Status), index.StatusKey(status), a.Id)
	a.Status = status
}

// setOwner - change owner keeping the owner index in step
func (w *writer) setOwner(a *asset.Asset, owner account.Principal) {
	if owner == a.Owner {
		return
	}
	w.ledger.owners.Move(w.trx, w.partition, index.OwnerKey(a.Owner), index.OwnerKey(owner), a.Id)
	a.Owner = owner
}

// record - append to an asset's history and set its last operation
func (w *writer) record(a *asset.Asset, op asset.Operation) {
	a.LastOperation = op
	w.ledger.history.Append(w.trx, w.partition, a.Id, op, w.timestamp)
}

// notify - queue a notification for after commit
func (w *writer) notify(kind Kind, ids ...asset.Identifier) {
	w.notifications = append(w.notifications, Notification{
		Kind:      kind,
		Partition: w.partition,
		Ids:       ids,
		Timestamp: w.timestamp,
	})
}

// nextSalt - the partition's creation counter, advanced on every read
func (w *writer) nextSalt() uint64 {
	key := storage.PartitionKey(w.partition)
	n, _ := w.trx.GetN(w.ledger.db.Pool.CreationCounter, key)
	w.trx.PutN(w.ledger.db.Pool.CreationCounter, key, n+1)
	return n
}

// derive - find an unused identifier, trying a fresh salt on collision
func (w *writer) derive(source asset.Identifier, f func(salt uint64) asset.Identifier) (asset.Identifier, error) {
	for i := 0; i < validation.MaximumDerivationAttempts; i += 1 {
		id := f(w.nextSalt())
		if !w.exists(id) {
			return id, nil
		}
		w.ledger.log.Warnf("partition: %q  source: %s  derived id collision: %s", w.partition, source, id)
	}
	return asset.Identifier{}, fault.Detail(fault.ErrAssetAlreadyExists, "source: %s  derivation attempts: %d", source, validation.MaximumDerivationAttempts)
}
