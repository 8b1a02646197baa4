// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/supplyledger/asset"
	"github.com/bitmark-inc/supplyledger/fault"
	"github.com/bitmark-inc/supplyledger/storage"
)

// loadAsset - read and decode an asset record
func loadAsset(r storage.Reader, db *storage.Database, partition string, id asset.Identifier) (*asset.Asset, error) {
	packed := r.Get(db.Pool.Assets, storage.PartitionKey(partition, id[:]))
	if nil == packed {
		return nil, fault.Detail(fault.ErrAssetNotFound, "partition: %q  id: %s", partition, id)
	}
	a, err := asset.Packed(packed).Unpack()
	if nil != err {
		logger.Criticalf("ledger: partition: %q  id: %s  corrupt record: %s", partition, id, err)
		return nil, err
	}
	return a, nil
}
