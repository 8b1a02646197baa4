// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package provenance

import (
	"github.com/bitmark-inc/supplyledger/asset"
	"github.com/bitmark-inc/supplyledger/fault"
	"github.com/bitmark-inc/supplyledger/validation"
)

// Lookup - fetch an asset record by id
type Lookup func(id asset.Identifier) (*asset.Asset, error)

// Chain - the ids from the original asset down to id, oldest first
//
// the walk never takes more steps than the maximum transformation depth
func Chain(lookup Lookup, id asset.Identifier) ([]asset.Identifier, error) {
	current, err := lookup(id)
	if nil != err {
		return nil, err
	}

	// built newest first, reversed at the end
	chain := []asset.Identifier{current.Id}
	for !current.ParentAssetId.IsZero() {
		if len(chain) > validation.MaximumTransformationDepth {
			return nil, fault.Detail(fault.ErrTruncatedChain, "id: %s  depth > %d", id, validation.MaximumTransformationDepth)
		}
		parent := current.ParentAssetId
		current, err = lookup(parent)
		if nil != err {
			return nil, fault.Detail(err, "parent: %s", parent)
		}
		chain = append(chain, current.Id)
	}

	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain, nil
}

// Depth - number of ancestors of id
func Depth(lookup Lookup, id asset.Identifier) (int, error) {
	chain, err := Chain(lookup, id)
	if nil != err {
		return 0, err
	}
	return len(chain) - 1, nil
}
