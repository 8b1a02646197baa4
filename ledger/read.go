// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"github.com/bitmark-inc/supplyledger/account"
	"github.com/bitmark-inc/supplyledger/asset"
	"github.com/bitmark-inc/supplyledger/index"
	"github.com/bitmark-inc/supplyledger/provenance"
	"github.com/bitmark-inc/supplyledger/storage"
	"github.com/bitmark-inc/supplyledger/validation"
)

// run f against a consistent view of committed data
func (l *Ledger) read(partition string, f func(snap *storage.Snapshot) error) error {
	if err := validation.Partition(partition); nil != err {
		return err
	}
	snap, err := l.db.Snapshot()
	if nil != err {
		return err
	}
	defer snap.Release()
	return f(snap)
}

// Get - fetch a single asset
func (l *Ledger) Get(partition string, id asset.Identifier) (*asset.Asset, error) {
	var result *asset.Asset
	err := l.read(partition, func(snap *storage.Snapshot) error {
		a, err := loadAsset(snap, l.db, partition, id)
		result = a
		return err
	})
	if nil != err {
		return nil, err
	}
	return result, nil
}

// IsActive - check an asset's status
func (l *Ledger) IsActive(partition string, id asset.Identifier) (bool, error) {
	a, err := l.Get(partition, id)
	if nil != err {
		return false, err
	}
	return a.IsActive(), nil
}

// ListByOwner - one page of the ids owned by a principal
//
// order is not meaningful and changes as assets leave the list
func (l *Ledger) ListByOwner(partition string, owner account.Principal, page uint64, pageSize int) (*index.Page, error) {
	var result *index.Page
	err := l.read(partition, func(snap *storage.Snapshot) error {
		p, err := l.owners.List(snap, partition, index.OwnerKey(owner), page, pageSize)
		result = p
		return err
	})
	if nil != err {
		return nil, err
	}
	return result, nil
}

// ListByStatus - one page of the ids with a status
func (l *Ledger) ListByStatus(partition string, status asset.Status, page uint64, pageSize int) (*index.Page, error) {
	var result *index.Page
	err := l.read(partition, func(snap *storage.Snapshot) error {
		p, err := l.statuses.List(snap, partition, index.StatusKey(status), page, pageSize)
		result = p
		return err
	})
	if nil != err {
		return nil, err
	}
	return result, nil
}

// History - every operation applied to an asset, oldest first
func (l *Ledger) History(partition string, id asset.Identifier) ([]provenance.Entry, error) {
	var result []provenance.Entry
	err := l.read(partition, func(snap *storage.Snapshot) error {
		if _, err := loadAsset(snap, l.db, partition, id); nil != err {
			return err
		}
		entries, err := l.history.List(snap, partition, id)
		result = entries
		return err
	})
	if nil != err {
		return nil, err
	}
	return result, nil
}

// TransformationChain - ids from the root asset down to id, oldest first
func (l *Ledger) TransformationChain(partition string, id asset.Identifier) ([]asset.Identifier, error) {
	var result []asset.Identifier
	err := l.read(partition, func(snap *storage.Snapshot) error {
		chain, err := provenance.Chain(func(id asset.Identifier) (*asset.Asset, error) {
			return loadAsset(snap, l.db, partition, id)
		}, id)
		result = chain
		return err
	})
	if nil != err {
		return nil, err
	}
	return result, nil
}
