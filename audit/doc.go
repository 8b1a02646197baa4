// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package audit - consume ledger notifications from the message bus
//
// every message is logged and, when a journal is configured, appended
// to a bolt database under a monotonically increasing sequence number
// so that downstream systems can replay the notifications in order.
package audit
