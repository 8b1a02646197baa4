// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package validation

import (
	"github.com/bitmark-inc/supplyledger/account"
	"github.com/bitmark-inc/supplyledger/asset"
	"github.com/bitmark-inc/supplyledger/fault"
)

// Partition - partition name must be present
func Partition(partition string) error {
	if "" == partition {
		return fault.ErrEmptyPartition
	}
	return nil
}

// Principal - principal must be present
func Principal(p account.Principal) error {
	if "" == p {
		return fault.ErrEmptyPrincipal
	}
	return nil
}

// Identifier - the zero identifier is reserved for "none"
func Identifier(id asset.Identifier) error {
	if id.IsZero() {
		return fault.ErrEmptyIdentifier
	}
	return nil
}

// Location - location must be present
func Location(location string) error {
	if "" == location {
		return fault.ErrEmptyLocation
	}
	return nil
}

// TransformationTag - tag must be present
func TransformationTag(tag string) error {
	if "" == tag {
		return fault.ErrEmptyTransformationTag
	}
	return nil
}

// DataHashes - between the minimum and maximum count, none empty
func DataHashes(hashes []string) error {
	if len(hashes) < MinimumDataHashes || len(hashes) > MaximumDataHashes {
		return fault.Detail(fault.ErrDataHashCountOutOfBounds, "count: %d  bounds: %d..%d", len(hashes), MinimumDataHashes, MaximumDataHashes)
	}
	for i, h := range hashes {
		if "" == h {
			return fault.Detail(fault.ErrEmptyDataHash, "index: %d", i)
		}
	}
	return nil
}

// ExternalIds - at most the maximum count, none empty
func ExternalIds(ids []string) error {
	if len(ids) > MaximumExternalIds {
		return fault.Detail(fault.ErrExternalIdCountOutOfBounds, "count: %d  maximum: %d", len(ids), MaximumExternalIds)
	}
	for i, e := range ids {
		if "" == e {
			return fault.Detail(fault.ErrEmptyExternalId, "index: %d", i)
		}
	}
	return nil
}

// PageSize - page size must be positive and not above the maximum
func PageSize(pageSize int) error {
	if pageSize < 1 || pageSize > MaximumPageSize {
		return fault.Detail(fault.ErrPageSizeOutOfBounds, "page size: %d  maximum: %d", pageSize, MaximumPageSize)
	}
	return nil
}

// Split - shape of split arguments; one data hash per part
func Split(amounts []uint64, location string, dataHashes []string) error {
	if len(amounts) != len(dataHashes) {
		return fault.Detail(fault.ErrArrayLengthMismatch, "amounts: %d  data hashes: %d", len(amounts), len(dataHashes))
	}
	if len(amounts) < MinimumSplitParts || len(amounts) > MaximumSplitParts {
		return fault.Detail(fault.ErrSplitCountOutOfBounds, "parts: %d  bounds: %d..%d", len(amounts), MinimumSplitParts, MaximumSplitParts)
	}
	for i, amount := range amounts {
		if amount < MinimumSplitAmount {
			return fault.Detail(fault.ErrSplitAmountBelowMinimum, "index: %d  amount: %d  minimum: %d", i, amount, MinimumSplitAmount)
		}
	}
	for i, h := range dataHashes {
		if "" == h {
			return fault.Detail(fault.ErrEmptyDataHash, "index: %d", i)
		}
	}
	return Location(location)
}

// Group - shape of group arguments
func Group(groupId asset.Identifier, members []asset.Identifier, location string, dataHashes []string) error {
	if err := Identifier(groupId); nil != err {
		return err
	}
	if len(members) < MinimumGroupSize || len(members) > MaximumGroupSize {
		return fault.Detail(fault.ErrGroupSizeOutOfBounds, "members: %d  bounds: %d..%d", len(members), MinimumGroupSize, MaximumGroupSize)
	}
	for i, m := range members {
		if m.IsZero() {
			return fault.Detail(fault.ErrEmptyIdentifier, "member index: %d", i)
		}
		if m == groupId {
			return fault.Detail(fault.ErrSelfReference, "member index: %d  id: %s", i, m)
		}
	}
	if err := Unique(members); nil != err {
		return err
	}
	if err := Location(location); nil != err {
		return err
	}
	return DataHashes(dataHashes)
}

// Unique - pairwise duplicate detection, bounded input size
func Unique(ids []asset.Identifier) error {
	if len(ids) > MaximumDuplicateCheckInput {
		return fault.Detail(fault.ErrInputTooLargeForDuplicateCheck, "count: %d  maximum: %d", len(ids), MaximumDuplicateCheckInput)
	}
	for i := 0; i < len(ids); i += 1 {
		for j := i + 1; j < len(ids); j += 1 {
			if ids[i] == ids[j] {
				return fault.Detail(fault.ErrDuplicateInInput, "indices: %d, %d  id: %s", i, j, ids[i])
			}
		}
	}
	return nil
}
