// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package account

import (
	"encoding/hex"

	"golang.org/x/crypto/ed25519"

	"github.com/bitmark-inc/supplyledger/fault"
)

// Principal - an authenticated party that can own assets
type Principal string

// String - the principal as text
func (p Principal) String() string {
	return string(p)
}

// Bytes - the principal as raw bytes, for use in storage keys
func (p Principal) Bytes() []byte {
	return []byte(p)
}

// Context - the identity of the caller of a ledger operation
//
// the ledger never authenticates, it only compares principals;
// each implementation vouches for its principal by construction
type Context interface {
	Principal() Principal
}

// Named - a principal already authenticated elsewhere,
// e.g. by an API token or session layer
type Named Principal

// Principal - the named principal
func (n Named) Principal() Principal {
	return Principal(n)
}

// NewNamed - create a context for a named principal
func NewNamed(name string) (Context, error) {
	if "" == name {
		return nil, fault.ErrEmptyPrincipal
	}
	return Named(name), nil
}

// Signer - a principal identified by an ed25519 public key that has
// proven possession of the private key
type Signer struct {
	publicKey ed25519.PublicKey
}

// NewSigner - verify a signature over message and return the signer context
func NewSigner(publicKey []byte, message []byte, signature []byte) (Context, error) {
	if ed25519.PublicKeySize != len(publicKey) {
		return nil, fault.Detail(fault.ErrInvalidSignature, "public key length: %d", len(publicKey))
	}
	if !ed25519.Verify(publicKey, message, signature) {
		return nil, fault.ErrInvalidSignature
	}
	s := &Signer{
		publicKey: make(ed25519.PublicKey, ed25519.PublicKeySize),
	}
	copy(s.publicKey, publicKey)
	return s, nil
}

// Principal - the hex encoded public key
func (s *Signer) Principal() Principal {
	return Principal(hex.EncodeToString(s.publicKey))
}
