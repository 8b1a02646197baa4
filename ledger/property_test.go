// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/bitmark-inc/supplyledger/account"
	"github.com/bitmark-inc/supplyledger/asset"
)

var principals = []account.Context{alice, bob, carol}

// random operation sequences: every rejection leaves the database
// byte-identical, split and group conserve amounts, and both indices
// agree exactly with the stored assets at the end
func TestOperationsProperty(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		h := setup(rt)
		defer h.close()

		known := []asset.Identifier{}
		pick := func() asset.Identifier {
			if 0 == len(known) {
				return makeId("none")
			}
			return known[rapid.IntRange(0, len(known)-1).Draw(rt, "pick")]
		}

		steps := rapid.IntRange(1, 30).Draw(rt, "steps")
		for s := 0; s < steps; s += 1 {
			caller := rapid.SampledFrom(principals).Draw(rt, "caller")
			before := h.dump(rt)

			var err error
			switch rapid.IntRange(0, 7).Draw(rt, "operation") {
			case 0:
				id := makeId(fmt.Sprintf("asset-%d", s))
				amount := rapid.Uint64Range(0, 1000).Draw(rt, "amount")
				err = h.ledger.Create(caller, p1, id, amount, "Farm", []string{"h"}, nil)
				if nil == err {
					known = append(known, id)
				}

			case 1:
				amount := rapid.Uint64Range(0, 1000).Draw(rt, "amount")
				err = h.ledger.Update(caller, p1, pick(), amount, "Dock", []string{"u"})

			case 2:
				to := rapid.SampledFrom(principals).Draw(rt, "to")
				err = h.ledger.Transfer(caller, p1, pick(), to.Principal(), nil)

			case 3:
				var derived asset.Identifier
				derived, err = h.ledger.Transform(caller, p1, pick(), "T", 0, "")
				if nil == err {
					known = append(known, derived)
				}

			case 4:
				source := pick()
				n := rapid.IntRange(2, 4).Draw(rt, "parts")
				amounts := make([]uint64, n)
				hashes := make([]string, n)
				original, getErr := h.ledger.Get(p1, source)
				conserve := rapid.Bool().Draw(rt, "conserve")
				for i := range amounts {
					hashes[i] = fmt.Sprintf("s%d", i)
					amounts[i] = rapid.Uint64Range(1, 500).Draw(rt, "part")
				}
				if conserve && nil == getErr && original.Amount >= uint64(n) {
					for i := 0; i < n-1; i += 1 {
						amounts[i] = 1
					}
					amounts[n-1] = original.Amount - uint64(n-1)
				}

				var children []asset.Identifier
				children, err = h.ledger.Split(caller, p1, source, amounts, "Dock", hashes)
				if nil == err {
					total := uint64(0)
					for _, c := range children {
						total += h.get(rt, p1, c).Amount
					}
					assert.Equal(rt, original.Amount, total, "split conservation")
					known = append(known, children...)
				}

			case 5:
				members := []asset.Identifier{pick(), pick()}
				sum := uint64(0)
				for _, m := range members {
					if a, getErr := h.ledger.Get(p1, m); nil == getErr {
						sum += a.Amount
					}
				}
				groupId := makeId(fmt.Sprintf("group-%d", s))
				err = h.ledger.Group(caller, p1, groupId, members, "Pallet", []string{"g"})
				if nil == err {
					assert.Equal(rt, sum, h.get(rt, p1, groupId).Amount, "group conservation")
					known = append(known, groupId)
				}

			case 6:
				err = h.ledger.Ungroup(caller, p1, pick(), "", "")

			case 7:
				err = h.ledger.Inactivate(caller, p1, pick(), "", "")
			}

			if nil != err {
				assert.Equal(rt, before, h.dump(rt), "step: %d  rejected operation changed state: %s", s, err)
			}
		}

		checkIndices(rt, h, known)
	})
}

// every asset appears exactly once in each index, under its current values
func checkIndices(t require.TestingT, h *harness, known []asset.Identifier) {
	byOwner := map[asset.Identifier]account.Principal{}
	for _, p := range principals {
		for _, id := range h.owned(t, p1, p.Principal()) {
			_, duplicate := byOwner[id]
			assert.False(t, duplicate, "owner index duplicate: %s", id)
			byOwner[id] = p.Principal()
		}
	}

	byStatus := map[asset.Identifier]asset.Status{}
	for _, status := range []asset.Status{asset.Active, asset.Inactive} {
		for _, id := range h.withStatus(t, p1, status) {
			_, duplicate := byStatus[id]
			assert.False(t, duplicate, "status index duplicate: %s", id)
			byStatus[id] = status
		}
	}

	assert.Len(t, byOwner, len(known), "owner index size")
	assert.Len(t, byStatus, len(known), "status index size")

	for _, id := range known {
		a := h.get(t, p1, id)
		assert.Equal(t, a.Owner, byOwner[id], "owner of: %s", id)
		assert.Equal(t, a.Status, byStatus[id], "status of: %s", id)
	}
}
