// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package asset

import (
	"encoding/hex"

	"golang.org/x/crypto/sha3"

	"github.com/bitmark-inc/supplyledger/fault"
)

// limits
const (
	IdentifierLength = 32
)

// Identifier - opaque fixed size asset identifier, unique within a partition
//
// the zero value means "no asset" in lineage fields
type Identifier [IdentifierLength]byte

// NewIdentifier - create an identifier from a caller supplied name
//
// names that fit are stored left aligned and zero padded,
// longer names are reduced with SHA3-256
func NewIdentifier(name string) (Identifier, error) {
	var id Identifier
	if "" == name {
		return id, fault.ErrEmptyIdentifier
	}
	if len(name) > IdentifierLength {
		return Identifier(sha3.Sum256([]byte(name))), nil
	}
	copy(id[:], name)
	return id, nil
}

// IdentifierFromBytes - convert and validate a binary byte slice to an identifier
func IdentifierFromBytes(id *Identifier, buffer []byte) error {
	if IdentifierLength != len(buffer) {
		return fault.Detail(fault.ErrInvalidIdentifier, "length: %d", len(buffer))
	}
	copy(id[:], buffer)
	return nil
}

// IsZero - true if this is the "no asset" value
func (id Identifier) IsZero() bool {
	return Identifier{} == id
}

// String - hex text for use by the fmt package (for %s)
func (id Identifier) String() string {
	return hex.EncodeToString(id[:])
}

// GoString - for use by the fmt package (for %#v)
func (id Identifier) GoString() string {
	return "<asset:" + hex.EncodeToString(id[:]) + ">"
}

// MarshalText - convert identifier to hex text
func (id Identifier) MarshalText() ([]byte, error) {
	buffer := make([]byte, hex.EncodedLen(len(id)))
	hex.Encode(buffer, id[:])
	return buffer, nil
}

// UnmarshalText - convert hex text into an identifier
func (id *Identifier) UnmarshalText(s []byte) error {
	if len(id) != hex.DecodedLen(len(s)) {
		return fault.Detail(fault.ErrInvalidIdentifier, "text: %q", s)
	}
	byteCount, err := hex.Decode(id[:], s)
	if nil != err {
		return fault.Detail(fault.ErrInvalidIdentifier, "text: %q  error: %s", s, err)
	}
	if IdentifierLength != byteCount {
		return fault.Detail(fault.ErrInvalidIdentifier, "text: %q", s)
	}
	return nil
}

// ParseIdentifier - accept either 64 hex digits or a plain name
func ParseIdentifier(s string) (Identifier, error) {
	var id Identifier
	if hex.EncodedLen(IdentifierLength) == len(s) {
		if err := id.UnmarshalText([]byte(s)); nil == err {
			return id, nil
		}
	}
	return NewIdentifier(s)
}
