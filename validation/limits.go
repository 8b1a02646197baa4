// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package validation

// bounds on operation arguments
const (
	MinimumSplitParts  = 2
	MaximumSplitParts  = 100
	MinimumSplitAmount = 1

	MinimumGroupSize = 2
	MaximumGroupSize = 100

	MinimumDataHashes = 1
	MaximumDataHashes = 20

	MaximumExternalIds = 20

	MaximumTransformationDepth = 64

	// pairwise duplicate detection is quadratic
	MaximumDuplicateCheckInput = 100

	MaximumPageSize = 100

	// attempts to find an unused derived identifier
	MaximumDerivationAttempts = 8
)
