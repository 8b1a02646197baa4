// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package asset - the asset record held by the ledger
//
// An asset is a traceable physical item inside a partition. The
// record carries its current owner and status, the tag of the last
// operation applied and its lineage pointers: the parent it was
// transformed or split from, the children derived from it, the
// members of a group and the group a member currently belongs to.
//
// Records are stored as a versioned, varint length prefixed pack.
package asset
