// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package asset

import (
	"time"

	"github.com/bitmark-inc/supplyledger/account"
	"github.com/bitmark-inc/supplyledger/fault"
	"github.com/bitmark-inc/supplyledger/util"
)

// version of the packed record
const packVersion = 1

// Asset - the ledger record of a traceable item
type Asset struct {
	Id                Identifier        `json:"id"`
	Owner             account.Principal `json:"owner"`
	OriginOwner       account.Principal `json:"originOwner"`
	Amount            uint64            `json:"amount,string"`
	Location          string            `json:"location"`
	DataHashes        []string          `json:"dataHashes"`
	ExternalIds       []string          `json:"externalIds"`
	Status            Status            `json:"status"`
	LastOperation     Operation         `json:"lastOperation"`
	CreatedAt         time.Time         `json:"createdAt"`
	LastUpdated       time.Time         `json:"lastUpdated"`
	ParentAssetId     Identifier        `json:"parentAssetId"`
	TransformationTag string            `json:"transformationTag"`
	ChildAssets       []Identifier      `json:"childAssets"`
	GroupedAssets     []Identifier      `json:"groupedAssets"`
	GroupedBy         Identifier        `json:"groupedBy"`
}

// Packed - binary form of an asset record
type Packed []byte

// IsActive - convenience status check
func (a *Asset) IsActive() bool {
	return Active == a.Status
}

// Clone - deep copy so callers may modify the result freely
func (a *Asset) Clone() *Asset {
	c := *a
	c.DataHashes = append([]string(nil), a.DataHashes...)
	c.ExternalIds = append([]string(nil), a.ExternalIds...)
	c.ChildAssets = append([]Identifier(nil), a.ChildAssets...)
	c.GroupedAssets = append([]Identifier(nil), a.GroupedAssets...)
	return &c
}

// Pack - convert an asset to its stored form
//
// Varint64(version) followed by the fields in struct order, strings
// and identifiers prefixed by Varint64(length), lists prefixed by
// Varint64(count)
func (a *Asset) Pack() (Packed, error) {
	if !a.Status.Valid() {
		return nil, fault.Detail(fault.ErrInvalidStatus, "status: %d", a.Status)
	}
	if !a.LastOperation.Valid() {
		return nil, fault.Detail(fault.ErrInvalidOperation, "operation: %d", a.LastOperation)
	}

	buffer := util.ToVarint64(packVersion)
	buffer = util.AppendBytes(buffer, a.Id[:])
	buffer = util.AppendString(buffer, a.Owner.String())
	buffer = util.AppendString(buffer, a.OriginOwner.String())
	buffer = util.AppendUint64(buffer, a.Amount)
	buffer = util.AppendString(buffer, a.Location)
	buffer = appendStrings(buffer, a.DataHashes)
	buffer = appendStrings(buffer, a.ExternalIds)
	buffer = util.AppendUint64(buffer, uint64(a.Status))
	buffer = util.AppendUint64(buffer, uint64(a.LastOperation))
	buffer = util.AppendUint64(buffer, uint64(a.CreatedAt.UnixNano()))
	buffer = util.AppendUint64(buffer, uint64(a.LastUpdated.UnixNano()))
	buffer = util.AppendBytes(buffer, a.ParentAssetId[:])
	buffer = util.AppendString(buffer, a.TransformationTag)
	buffer = appendIdentifiers(buffer, a.ChildAssets)
	buffer = appendIdentifiers(buffer, a.GroupedAssets)
	buffer = util.AppendBytes(buffer, a.GroupedBy[:])

	return buffer, nil
}

// Unpack - convert a stored record back to an asset
func (packed Packed) Unpack() (*Asset, error) {
	u := util.NewUnpacker(packed)

	if version := u.Uint64(); packVersion != version {
		return nil, fault.Detail(fault.ErrNotAssetPack, "version: %d", version)
	}

	a := &Asset{}
	err := IdentifierFromBytes(&a.Id, u.Bytes())
	if nil != err {
		return nil, fault.Detail(fault.ErrNotAssetPack, "id: %s", err)
	}
	a.Owner = account.Principal(u.String())
	a.OriginOwner = account.Principal(u.String())
	a.Amount = u.Uint64()
	a.Location = u.String()
	a.DataHashes = unpackStrings(u)
	a.ExternalIds = unpackStrings(u)
	a.Status = Status(u.Uint64())
	a.LastOperation = Operation(u.Uint64())
	a.CreatedAt = time.Unix(0, int64(u.Uint64())).UTC()
	a.LastUpdated = time.Unix(0, int64(u.Uint64())).UTC()
	err = IdentifierFromBytes(&a.ParentAssetId, u.Bytes())
	if nil != err {
		return nil, fault.Detail(fault.ErrNotAssetPack, "parent: %s", err)
	}
	a.TransformationTag = u.String()
	a.ChildAssets, err = unpackIdentifiers(u)
	if nil != err {
		return nil, err
	}
	a.GroupedAssets, err = unpackIdentifiers(u)
	if nil != err {
		return nil, err
	}
	err = IdentifierFromBytes(&a.GroupedBy, u.Bytes())
	if nil != err {
		return nil, fault.Detail(fault.ErrNotAssetPack, "grouped by: %s", err)
	}

	if !u.Ok() || 0 != u.Remaining() {
		return nil, fault.ErrNotAssetPack
	}
	if !a.Status.Valid() || !a.LastOperation.Valid() {
		return nil, fault.Detail(fault.ErrNotAssetPack, "status: %d  operation: %d", a.Status, a.LastOperation)
	}
	return a, nil
}

func appendStrings(buffer []byte, list []string) []byte {
	buffer = util.AppendUint64(buffer, uint64(len(list)))
	for _, s := range list {
		buffer = util.AppendString(buffer, s)
	}
	return buffer
}

func appendIdentifiers(buffer []byte, list []Identifier) []byte {
	buffer = util.AppendUint64(buffer, uint64(len(list)))
	for _, id := range list {
		buffer = util.AppendBytes(buffer, id[:])
	}
	return buffer
}

func unpackStrings(u *util.Unpacker) []string {
	count := u.Uint64()
	if !u.Ok() || 0 == count || count > uint64(u.Remaining()) {
		return nil
	}
	list := make([]string, 0, count)
	for i := uint64(0); i < count; i += 1 {
		list = append(list, u.String())
	}
	return list
}

func unpackIdentifiers(u *util.Unpacker) ([]Identifier, error) {
	count := u.Uint64()
	if !u.Ok() || count > uint64(u.Remaining()) {
		return nil, fault.ErrNotAssetPack
	}
	if 0 == count {
		return nil, nil
	}
	list := make([]Identifier, count)
	for i := range list {
		err := IdentifierFromBytes(&list[i], u.Bytes())
		if nil != err {
			return nil, fault.Detail(fault.ErrNotAssetPack, "list item %d: %s", i, err)
		}
	}
	return list, nil
}
