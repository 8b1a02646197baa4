// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package validation - precondition checks for ledger operations
//
// Shape checks look only at the arguments and run first; state checks
// look at asset records already loaded by the caller. None of them
// modify anything and each failure is a distinct fault error
// annotated with the offending values.
package validation
