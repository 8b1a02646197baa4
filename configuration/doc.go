// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package configuration - read the ledger configuration file
//
// files ending in .hcl are parsed as HCL, anything else is executed as
// Lua and must return a table.  In Lua most of the base library is
// available, such as os.getenv to pick up environment supplied items.
package configuration
