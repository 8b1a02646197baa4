// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package fault - error instances
//
// Provides a single instance of each ledger error to allow easy
// comparison without having to resort to partial string matches.
// Errors may be annotated with the offending values using Detail;
// the annotated error still matches its instance with errors.Is.
package fault
