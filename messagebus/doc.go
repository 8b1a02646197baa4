// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package messagebus - a bounded queue carrying notifications from the
// ledger to its consumers
//
// senders are never blocked: when the queue is full the message is
// discarded and counted
package messagebus
