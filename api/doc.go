// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package api - JSON over HTTP access to a ledger
//
// mutating requests must identify the caller, either by an ed25519
// signature over the request body:
//
//   X-Public-Key: <hex public key>
//   X-Signature:  <hex signature>
//
// or, behind an authenticating proxy, by a plain principal name:
//
//   X-Principal: <name>
//
// read requests are not authenticated.
package api
