// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package storage - maintain the on-disk ledger store
//
// This maintains a LevelDB database split into a series of pools.
// Each pool is defined by a prefix byte that is obtained from the
// prefix tag in the struct defining the available pools.
//
// Notes:
// 1. each separate pool has a single byte prefix (to spread the keys in LevelDB)
// 2. ⧺            = concatenation of byte data
// 3. partition    = Varint64(length) ⧺ partition name
// 4. id           = 32 byte asset identifier
// 5. count        = big endian uint64 (8 bytes)
// 6. owner        = Varint64(length) ⧺ principal
// 7. status       = one byte status code
//
// Assets:
//
//   A ⧺ partition ⧺ id                 - asset record
//                                        data: packed asset
//   C ⧺ partition                      - next creation counter, salt for derived ids
//                                        data: count
//
// Owner index:
//
//   N ⧺ partition ⧺ owner              - number of ids in the owner's list
//                                        data: count
//   L ⧺ partition ⧺ owner ⧺ count      - owner's list of ids
//                                        data: id
//   D ⧺ partition ⧺ owner ⧺ id         - position of id in owner's list
//                                        data: count
//
// Status index:
//
//   M ⧺ partition ⧺ status             - number of ids with the status
//                                        data: count
//   S ⧺ partition ⧺ status ⧺ count     - list of ids with the status
//                                        data: id
//   P ⧺ partition ⧺ status ⧺ id        - position of id in status list
//                                        data: count
//
// History:
//
//   G ⧺ partition ⧺ id                 - number of history entries
//                                        data: count
//   H ⧺ partition ⧺ id ⧺ count         - history entry
//                                        data: Varint64(operation) ⧺ Varint64(unix nanoseconds)
//
// Testing:
//   Z ⧺ key                            - testing data
package storage
