// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package ledger - the asset lifecycle registry
//
// every mutating operation follows the same path:
//
//   1. shape checks on the arguments (no locks, no storage)
//   2. calls to external collaborators such as partition membership
//   3. take the partition lock and begin the partition's batch
//   4. state checks against the batch view, then all writes
//   5. commit (or abort on any error) and release the lock
//   6. publish notifications
//
// so a rejected operation leaves no trace in the store, the indices or
// the history, and nothing outside the ledger runs while a partition
// lock is held.
//
// reads take a storage snapshot and never block writers.
package ledger
