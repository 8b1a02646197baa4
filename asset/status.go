// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package asset

import (
	"github.com/bitmark-inc/supplyledger/fault"
)

// Status - whether an asset can still be operated on
type Status byte

// possible status values
const (
	Active Status = iota
	Inactive
	statusLimit
)

// Valid - check status is a known value
func (s Status) Valid() bool {
	return s < statusLimit
}

// String - status name
func (s Status) String() string {
	switch s {
	case Active:
		return "Active"
	case Inactive:
		return "Inactive"
	default:
		return "*unknown*"
	}
}

// MarshalText - status to text
func (s Status) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fault.Detail(fault.ErrInvalidStatus, "status: %d", s)
	}
	return []byte(s.String()), nil
}

// UnmarshalText - text to status
func (s *Status) UnmarshalText(text []byte) error {
	switch string(text) {
	case "Active", "active":
		*s = Active
	case "Inactive", "inactive":
		*s = Inactive
	default:
		return fault.Detail(fault.ErrInvalidStatus, "text: %q", text)
	}
	return nil
}

// Operation - tag of a lifecycle operation
type Operation byte

// operation tags, values are stored so only append to this list
const (
	Create Operation = iota
	Update
	Transfer
	TransferIn
	Split
	Group
	Ungroup
	Transform
	Inactivate
	operationLimit
)

var operationNames = [...]string{
	Create:     "Create",
	Update:     "Update",
	Transfer:   "Transfer",
	TransferIn: "TransferIn",
	Split:      "Split",
	Group:      "Group",
	Ungroup:    "Ungroup",
	Transform:  "Transform",
	Inactivate: "Inactivate",
}

// Valid - check operation is a known value
func (op Operation) Valid() bool {
	return op < operationLimit
}

// String - operation name
func (op Operation) String() string {
	if !op.Valid() {
		return "*unknown*"
	}
	return operationNames[op]
}

// MarshalText - operation to text
func (op Operation) MarshalText() ([]byte, error) {
	if !op.Valid() {
		return nil, fault.Detail(fault.ErrInvalidOperation, "operation: %d", op)
	}
	return []byte(operationNames[op]), nil
}

// UnmarshalText - text to operation
func (op *Operation) UnmarshalText(text []byte) error {
	for i, name := range operationNames {
		if name == string(text) {
			*op = Operation(i)
			return nil
		}
	}
	return fault.Detail(fault.ErrInvalidOperation, "text: %q", text)
}
