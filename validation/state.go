// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package validation

import (
	"math/bits"

	"github.com/bitmark-inc/supplyledger/account"
	"github.com/bitmark-inc/supplyledger/asset"
	"github.com/bitmark-inc/supplyledger/fault"
)

// Owned - caller must be the current owner
func Owned(a *asset.Asset, caller account.Principal) error {
	if a.Owner != caller {
		return fault.Detail(fault.ErrNotOwner, "id: %s  owner: %q  caller: %q", a.Id, a.Owner, caller)
	}
	return nil
}

// Active - asset must be active
func Active(a *asset.Asset) error {
	if !a.IsActive() {
		return fault.Detail(fault.ErrAssetNotActive, "id: %s  status: %s", a.Id, a.Status)
	}
	return nil
}

// ActiveOwned - the common precondition of most operations
func ActiveOwned(a *asset.Asset, caller account.Principal) error {
	if err := Owned(a, caller); nil != err {
		return err
	}
	return Active(a)
}

// Conservation - parts must sum exactly to the whole
func Conservation(amounts []uint64, whole uint64) error {
	sum, err := Sum(amounts)
	if nil != err {
		return err
	}
	if sum != whole {
		return fault.Detail(fault.ErrAmountConservationViolated, "sum: %d  expected: %d", sum, whole)
	}
	return nil
}

// Sum - total of amounts, failing on overflow
func Sum(amounts []uint64) (uint64, error) {
	sum := uint64(0)
	for i, amount := range amounts {
		var carry uint64
		sum, carry = bits.Add64(sum, amount, 0)
		if 0 != carry {
			return 0, fault.Detail(fault.ErrAmountOverflow, "at index: %d", i)
		}
	}
	return sum, nil
}

// GroupMembers - every member active and owned by caller, returns the total amount
func GroupMembers(members []*asset.Asset, caller account.Principal) (uint64, error) {
	amounts := make([]uint64, 0, len(members))
	for _, m := range members {
		if err := Active(m); nil != err {
			return 0, err
		}
		if m.Owner != caller {
			return 0, fault.Detail(fault.ErrMixedOwnership, "member: %s  owner: %q  caller: %q", m.Id, m.Owner, caller)
		}
		amounts = append(amounts, m.Amount)
	}
	return Sum(amounts)
}

// Depth - a derived asset at this depth must not exceed the chain limit
func Depth(depth int) error {
	if depth > MaximumTransformationDepth {
		return fault.Detail(fault.ErrChainTooDeep, "depth: %d  maximum: %d", depth, MaximumTransformationDepth)
	}
	return nil
}
