// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"github.com/bitmark-inc/supplyledger/account"
	"github.com/bitmark-inc/supplyledger/asset"
	"github.com/bitmark-inc/supplyledger/fault"
	"github.com/bitmark-inc/supplyledger/provenance"
	"github.com/bitmark-inc/supplyledger/validation"
)

// common argument checks for every mutation
func principalOf(caller account.Context, partition string) (account.Principal, error) {
	if err := validation.Partition(partition); nil != err {
		return "", err
	}
	if nil == caller {
		return "", fault.ErrEmptyPrincipal
	}
	p := caller.Principal()
	if err := validation.Principal(p); nil != err {
		return "", err
	}
	return p, nil
}

// overrides for ungroup and inactivate, empty values leave the asset alone
func applyOverrides(a *asset.Asset, location string, dataHash string) {
	if "" != location {
		a.Location = location
	}
	if "" != dataHash {
		a.DataHashes = []string{dataHash}
	}
}

// Create - register a new asset owned by the caller
func (l *Ledger) Create(caller account.Context, partition string, id asset.Identifier, amount uint64, location string, dataHashes []string, externalIds []string) error {
	owner, err := principalOf(caller, partition)
	if nil != err {
		return err
	}
	if err := validation.Identifier(id); nil != err {
		return err
	}
	if err := validation.Location(location); nil != err {
		return err
	}
	if err := validation.DataHashes(dataHashes); nil != err {
		return err
	}
	if err := validation.ExternalIds(externalIds); nil != err {
		return err
	}

	return l.mutate(partition, "create", func(w *writer) error {
		if w.exists(id) {
			return fault.Detail(fault.ErrAssetAlreadyExists, "partition: %q  id: %s", partition, id)
		}

		a := &asset.Asset{
			Id:          id,
			Owner:       owner,
			OriginOwner: owner,
			Amount:      amount,
			Location:    location,
			DataHashes:  append([]string(nil), dataHashes...),
			ExternalIds: append([]string(nil), externalIds...),
			Status:      asset.Active,
		}
		w.record(a, asset.Create)
		w.insert(a)

		w.notify(Created, id)
		return nil
	})
}

// Update - change location, data hashes and optionally amount
//
// an amount of zero leaves the amount unchanged
func (l *Ledger) Update(caller account.Context, partition string, id asset.Identifier, amount uint64, location string, dataHashes []string) error {
	principal, err := principalOf(caller, partition)
	if nil != err {
		return err
	}
	if err := validation.Location(location); nil != err {
		return err
	}
	if err := validation.DataHashes(dataHashes); nil != err {
		return err
	}

	return l.mutate(partition, "update", func(w *writer) error {
		a, err := w.load(id)
		if nil != err {
			return err
		}
		if err := validation.ActiveOwned(a, principal); nil != err {
			return err
		}

		a.Location = location
		if 0 != amount {
			a.Amount = amount
		}
		a.DataHashes = append([]string(nil), dataHashes...)
		w.record(a, asset.Update)
		w.put(a)

		w.notify(Updated, id)
		return nil
	})
}

// Transfer - pass an asset to another member of the partition
//
// the external ids are replaced by those given
func (l *Ledger) Transfer(caller account.Context, partition string, id asset.Identifier, newOwner account.Principal, externalIds []string) error {
	principal, err := principalOf(caller, partition)
	if nil != err {
		return err
	}
	if err := validation.Principal(newOwner); nil != err {
		return err
	}
	if err := validation.ExternalIds(externalIds); nil != err {
		return err
	}

	// asked before any lock is taken
	if !l.membership.IsMember(partition, newOwner) {
		return fault.Detail(fault.ErrNotMember, "partition: %q  principal: %q", partition, newOwner)
	}

	return l.mutate(partition, "transfer", func(w *writer) error {
		a, err := w.load(id)
		if nil != err {
			return err
		}
		if err := validation.ActiveOwned(a, principal); nil != err {
			return err
		}
		if newOwner == a.Owner {
			return fault.Detail(fault.ErrTransferToSameOwner, "id: %s  owner: %q", id, newOwner)
		}

		w.setOwner(a, newOwner)
		a.ExternalIds = append([]string(nil), externalIds...)
		w.record(a, asset.Transfer)
		w.put(a)

		w.notify(Transferred, id)
		return nil
	})
}

// Transform - consume an asset producing a derived one
//
// zero amount or empty location are inherited from the original;
// returns the derived asset's id
func (l *Ledger) Transform(caller account.Context, partition string, id asset.Identifier, tag string, newAmount uint64, newLocation string) (asset.Identifier, error) {
	principal, err := principalOf(caller, partition)
	if nil != err {
		return asset.Identifier{}, err
	}
	if err := validation.TransformationTag(tag); nil != err {
		return asset.Identifier{}, err
	}

	derivedId := asset.Identifier{}
	err = l.mutate(partition, "transform", func(w *writer) error {
		original, err := w.load(id)
		if nil != err {
			return err
		}
		if err := validation.ActiveOwned(original, principal); nil != err {
			return err
		}
		depth, err := provenance.Depth(w.lookup(), id)
		if nil != err {
			return err
		}
		if err := validation.Depth(depth + 1); nil != err {
			return err
		}

		newId, err := w.derive(id, func(salt uint64) asset.Identifier {
			return asset.TransformIdentifier(partition, id, tag, salt)
		})
		if nil != err {
			return err
		}

		derived := &asset.Asset{
			Id:                newId,
			Owner:             original.Owner,
			OriginOwner:       principal,
			Amount:            original.Amount,
			Location:          original.Location,
			DataHashes:        append([]string(nil), original.DataHashes...),
			ExternalIds:       append([]string(nil), original.ExternalIds...),
			Status:            asset.Active,
			ParentAssetId:     original.Id,
			TransformationTag: tag,
			GroupedBy:         original.GroupedBy,
		}
		if 0 != newAmount {
			derived.Amount = newAmount
		}
		if "" != newLocation {
			derived.Location = newLocation
		}
		w.record(derived, asset.Transform)
		w.insert(derived)

		w.setStatus(original, asset.Inactive)
		original.ChildAssets = append(original.ChildAssets, newId)
		w.record(original, asset.Transform)
		w.put(original)

		w.notify(Transformed, id, newId)
		w.notify(Lineage, id, newId)
		w.notifications = append(w.notifications, Notification{
			Kind:      Depth,
			Partition: partition,
			Ids:       []asset.Identifier{newId},
			Depth:     depth + 1,
			Timestamp: w.timestamp,
		})

		derivedId = newId
		return nil
	})
	if nil != err {
		return asset.Identifier{}, err
	}
	return derivedId, nil
}

// Split - divide an asset into parts whose amounts sum to the whole
//
// returns the ids of the parts in argument order
func (l *Ledger) Split(caller account.Context, partition string, id asset.Identifier, amounts []uint64, location string, dataHashes []string) ([]asset.Identifier, error) {
	principal, err := principalOf(caller, partition)
	if nil != err {
		return nil, err
	}
	if err := validation.Split(amounts, location, dataHashes); nil != err {
		return nil, err
	}

	var children []asset.Identifier
	err = l.mutate(partition, "split", func(w *writer) error {
		original, err := w.load(id)
		if nil != err {
			return err
		}
		if err := validation.ActiveOwned(original, principal); nil != err {
			return err
		}
		if err := validation.Conservation(amounts, original.Amount); nil != err {
			return err
		}
		// parts are one link further down the lineage
		depth, err := provenance.Depth(w.lookup(), id)
		if nil != err {
			return err
		}
		if err := validation.Depth(depth + 1); nil != err {
			return err
		}

		ids := make([]asset.Identifier, 0, len(amounts))
		for i, amount := range amounts {
			childId, err := w.derive(id, func(salt uint64) asset.Identifier {
				return asset.SplitIdentifier(partition, id, i, salt)
			})
			if nil != err {
				return err
			}
			child := &asset.Asset{
				Id:            childId,
				Owner:         original.Owner,
				OriginOwner:   principal,
				Amount:        amount,
				Location:      location,
				DataHashes:    []string{dataHashes[i]},
				Status:        asset.Active,
				ParentAssetId: original.Id,
			}
			w.record(child, asset.Split)
			w.insert(child)
			ids = append(ids, childId)
		}

		w.setStatus(original, asset.Inactive)
		original.ChildAssets = append(original.ChildAssets, ids...)
		w.record(original, asset.Split)
		w.put(original)

		affected := append([]asset.Identifier{id}, ids...)
		w.notify(Split, affected...)
		w.notify(Lineage, affected...)

		children = ids
		return nil
	})
	if nil != err {
		return nil, err
	}
	return children, nil
}

// Group - combine the caller's active assets into a new group asset
func (l *Ledger) Group(caller account.Context, partition string, groupId asset.Identifier, memberIds []asset.Identifier, location string, dataHashes []string) error {
	principal, err := principalOf(caller, partition)
	if nil != err {
		return err
	}
	if err := validation.Group(groupId, memberIds, location, dataHashes); nil != err {
		return err
	}

	return l.mutate(partition, "group", func(w *writer) error {
		if w.exists(groupId) {
			return fault.Detail(fault.ErrAssetAlreadyExists, "partition: %q  group: %s", partition, groupId)
		}

		members := make([]*asset.Asset, 0, len(memberIds))
		for _, memberId := range memberIds {
			m, err := w.load(memberId)
			if nil != err {
				return err
			}
			members = append(members, m)
		}
		total, err := validation.GroupMembers(members, principal)
		if nil != err {
			return err
		}

		for _, m := range members {
			w.setStatus(m, asset.Inactive)
			m.GroupedBy = groupId
			w.record(m, asset.Group)
			w.put(m)
		}

		g := &asset.Asset{
			Id:            groupId,
			Owner:         principal,
			OriginOwner:   principal,
			Amount:        total,
			Location:      location,
			DataHashes:    append([]string(nil), dataHashes...),
			Status:        asset.Active,
			GroupedAssets: append([]asset.Identifier(nil), memberIds...),
		}
		w.record(g, asset.Group)
		w.insert(g)

		affected := append([]asset.Identifier{groupId}, memberIds...)
		w.notify(Grouped, affected...)
		w.notify(Composition, affected...)
		w.notify(Relationship, affected...)
		return nil
	})
}

// Ungroup - dissolve a group returning its members to active
//
// members become owned by the group's owner; non-empty location or
// data hash overwrite those of every member
func (l *Ledger) Ungroup(caller account.Context, partition string, groupId asset.Identifier, location string, dataHash string) error {
	principal, err := principalOf(caller, partition)
	if nil != err {
		return err
	}
	if err := validation.Identifier(groupId); nil != err {
		return err
	}

	return l.mutate(partition, "ungroup", func(w *writer) error {
		g, err := w.load(groupId)
		if nil != err {
			return err
		}
		if err := validation.Owned(g, principal); nil != err {
			return err
		}
		if asset.Ungroup == g.LastOperation {
			return fault.Detail(fault.ErrAlreadyUngrouped, "group: %s", groupId)
		}
		if err := validation.Active(g); nil != err {
			return err
		}
		if 0 == len(g.GroupedAssets) {
			return fault.Detail(fault.ErrNotGrouped, "id: %s  has no members", groupId)
		}

		// every member must be present before any is touched
		members := make([]*asset.Asset, 0, len(g.GroupedAssets))
		for _, memberId := range g.GroupedAssets {
			m, err := w.load(memberId)
			if fault.IsErrNotFound(err) {
				return fault.Detail(fault.ErrMemberMissing, "group: %s  member: %s", groupId, memberId)
			}
			if nil != err {
				return err
			}
			if m.GroupedBy != groupId {
				return fault.Detail(fault.ErrNotGrouped, "member: %s  grouped by: %s  expected: %s", memberId, m.GroupedBy, groupId)
			}
			members = append(members, m)
		}

		for _, m := range members {
			w.setOwner(m, g.Owner)
			w.setStatus(m, asset.Active)
			m.GroupedBy = asset.Identifier{}
			applyOverrides(m, location, dataHash)
			w.record(m, asset.Ungroup)
			w.put(m)
		}

		w.setStatus(g, asset.Inactive)
		w.record(g, asset.Ungroup)
		w.put(g)

		affected := append([]asset.Identifier{groupId}, g.GroupedAssets...)
		w.notify(Ungrouped, affected...)
		w.notify(Relationship, affected...)
		return nil
	})
}

// Inactivate - retire an asset permanently
//
// non-empty location or data hash are recorded as its final values
func (l *Ledger) Inactivate(caller account.Context, partition string, id asset.Identifier, location string, dataHash string) error {
	principal, err := principalOf(caller, partition)
	if nil != err {
		return err
	}

	return l.mutate(partition, "inactivate", func(w *writer) error {
		a, err := w.load(id)
		if nil != err {
			return err
		}
		if err := validation.Owned(a, principal); nil != err {
			return err
		}
		if !a.IsActive() {
			return fault.Detail(fault.ErrAssetAlreadyInactive, "id: %s", id)
		}

		applyOverrides(a, location, dataHash)
		w.setStatus(a, asset.Inactive)
		w.record(a, asset.Inactivate)
		w.put(a)

		w.notify(Inactivated, id)
		return nil
	})
}
