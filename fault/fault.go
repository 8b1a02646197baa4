// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

import (
	"errors"
	"fmt"
)

// GenericError - error base
type GenericError string

// to allow for different classes of errors
type ExistsError GenericError
type InvalidError GenericError
type LengthError GenericError
type NotFoundError GenericError
type ProcessError GenericError
type RecordError GenericError

// common errors - keep in alphabetic order
var (
	ErrAlreadyInitialised             = ExistsError("already initialised")
	ErrAlreadyUngrouped               = InvalidError("group has already been ungrouped")
	ErrAmountConservationViolated     = InvalidError("amount conservation violated")
	ErrAmountOverflow                 = InvalidError("amount overflow")
	ErrArrayLengthMismatch            = InvalidError("array length mismatch")
	ErrAssetAlreadyExists             = ExistsError("asset already exists")
	ErrAssetAlreadyInactive           = InvalidError("asset is already inactive")
	ErrAssetNotActive                 = InvalidError("asset is not active")
	ErrAssetNotFound                  = NotFoundError("asset not found")
	ErrChainTooDeep                   = InvalidError("transformation chain too deep")
	ErrDataHashCountOutOfBounds       = LengthError("data hash count out of bounds")
	ErrDatabaseIsNotSet               = ProcessError("database is not set")
	ErrDuplicateInInput               = InvalidError("duplicate in input")
	ErrEmptyDataHash                  = InvalidError("empty data hash")
	ErrEmptyExternalId                = InvalidError("empty external id")
	ErrEmptyIdentifier                = InvalidError("empty identifier")
	ErrEmptyLocation                  = InvalidError("empty location")
	ErrEmptyPartition                 = InvalidError("empty partition")
	ErrEmptyPrincipal                 = InvalidError("empty principal")
	ErrEmptyTransformationTag         = InvalidError("empty transformation tag")
	ErrExternalIdCountOutOfBounds     = LengthError("external id count out of bounds")
	ErrGroupSizeOutOfBounds           = LengthError("group size out of bounds")
	ErrInputTooLargeForDuplicateCheck = LengthError("input too large for duplicate check")
	ErrInvalidCount                   = InvalidError("invalid count")
	ErrInvalidCursor                  = InvalidError("invalid cursor")
	ErrInvalidIdentifier              = InvalidError("invalid identifier")
	ErrInvalidOperation               = InvalidError("invalid operation")
	ErrInvalidPath                    = InvalidError("invalid path")
	ErrInvalidSignature               = InvalidError("invalid signature")
	ErrInvalidStatus                  = InvalidError("invalid status")
	ErrInvalidStructPointer           = InvalidError("invalid struct pointer")
	ErrMemberMissing                  = NotFoundError("group member missing")
	ErrMixedOwnership                 = InvalidError("mixed ownership")
	ErrNotAssetPack                   = RecordError("not an asset pack")
	ErrNotAuditRecord                 = RecordError("not an audit record")
	ErrNotGrouped                     = InvalidError("asset is not grouped")
	ErrNotHistoryPack                 = RecordError("not a history pack")
	ErrNotMember                      = InvalidError("principal is not a partition member")
	ErrNotOwner                       = InvalidError("caller is not the owner")
	ErrPageSizeOutOfBounds            = LengthError("page size out of bounds")
	ErrRateLimiting                   = ProcessError("rate limiting")
	ErrSelfReference                  = InvalidError("self reference")
	ErrSplitAmountBelowMinimum        = InvalidError("split amount below minimum")
	ErrSplitCountOutOfBounds          = LengthError("split count out of bounds")
	ErrTransactionInUse               = ProcessError("transaction already in use")
	ErrTransactionNotInUse            = ProcessError("transaction is not in use")
	ErrTransferToSameOwner            = InvalidError("transfer to same owner")
	ErrTruncatedChain                 = RecordError("transformation chain exceeds maximum depth")
)

// the error interface base method
func (e GenericError) Error() string { return string(e) }

// the error interface methods
func (e ExistsError) Error() string   { return string(e) }
func (e InvalidError) Error() string  { return string(e) }
func (e LengthError) Error() string   { return string(e) }
func (e NotFoundError) Error() string { return string(e) }
func (e ProcessError) Error() string  { return string(e) }
func (e RecordError) Error() string   { return string(e) }

// DetailError - a class error annotated with the offending values
type DetailError struct {
	Err    error
	Detail string
}

func (e *DetailError) Error() string { return e.Err.Error() + ": " + e.Detail }

// Unwrap - expose the underlying class error to errors.Is/errors.As
func (e *DetailError) Unwrap() error { return e.Err }

// Detail - annotate an error with a formatted description of the values that caused it
func Detail(err error, format string, arguments ...interface{}) error {
	return &DetailError{
		Err:    err,
		Detail: fmt.Sprintf(format, arguments...),
	}
}

// determine the class of an error
func IsErrExists(e error) bool   { var x ExistsError; return errors.As(e, &x) }
func IsErrInvalid(e error) bool  { var x InvalidError; return errors.As(e, &x) }
func IsErrLength(e error) bool   { var x LengthError; return errors.As(e, &x) }
func IsErrNotFound(e error) bool { var x NotFoundError; return errors.As(e, &x) }
func IsErrProcess(e error) bool  { var x ProcessError; return errors.As(e, &x) }
func IsErrRecord(e error) bool   { var x RecordError; return errors.As(e, &x) }
