// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package provenance - where an asset came from and what happened to it
//
// The history log holds one (operation, timestamp) entry per affected
// asset per operation, in the order applied; it is only ever appended.
// The transformation chain follows parent pointers back to the
// original asset.
package provenance
