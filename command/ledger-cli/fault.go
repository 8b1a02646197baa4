// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/bitmark-inc/supplyledger/fault"
)

// command line errors - keep in alphabetic order
var (
	ErrInvalidAmount   = fault.InvalidError("invalid amount")
	ErrMissingIdentity = fault.InvalidError("identity is required")
	ErrRequiredFlag    = fault.InvalidError("required flag is missing")
)
