// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package asset

import (
	"encoding/binary"

	"golang.org/x/crypto/sha3"

	"github.com/bitmark-inc/supplyledger/util"
)

// domain separation for derived identifiers
const (
	transformDomain = "transform"
	splitDomain     = "split"
)

// TransformIdentifier - identifier of the asset produced by a transformation
//
// SHA3-256(domain ⧺ partition ⧺ source ⧺ tag ⧺ salt), each variable
// field prefixed by its Varint64 length, salt as big endian uint64
func TransformIdentifier(partition string, source Identifier, tag string, salt uint64) Identifier {
	buffer := util.AppendString(nil, transformDomain)
	buffer = util.AppendString(buffer, partition)
	buffer = append(buffer, source[:]...)
	buffer = util.AppendString(buffer, tag)
	return derive(buffer, salt)
}

// SplitIdentifier - identifier of the index'th part produced by a split
func SplitIdentifier(partition string, source Identifier, index int, salt uint64) Identifier {
	buffer := util.AppendString(nil, splitDomain)
	buffer = util.AppendString(buffer, partition)
	buffer = append(buffer, source[:]...)
	buffer = util.AppendUint64(buffer, uint64(index))
	return derive(buffer, salt)
}

func derive(buffer []byte, salt uint64) Identifier {
	saltBytes := make([]byte, 8)
	binary.BigEndian.PutUint64(saltBytes, salt)
	return Identifier(sha3.Sum256(append(buffer, saltBytes...)))
}
