// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"fmt"
	"time"

	"github.com/bitmark-inc/supplyledger/asset"
	"github.com/bitmark-inc/supplyledger/fault"
)

// Kind - what a notification reports
type Kind uint8

// notification kinds
const (
	Created      Kind = iota // Ids: [asset]
	Updated                  // Ids: [asset]
	Transferred              // Ids: [asset]
	Transformed              // Ids: [original, derived]
	Split                    // Ids: [original, children...]
	Grouped                  // Ids: [group, members...]
	Ungrouped                // Ids: [group, members...]
	Inactivated              // Ids: [asset]
	Lineage                  // Ids: [parent, children...]
	Relationship             // Ids: [group, members...]
	Composition              // Ids: [group, members...]
	Depth                    // Ids: [derived]  Depth: chain length below the root
)

var kindNames = []string{
	Created:      "Created",
	Updated:      "Updated",
	Transferred:  "Transferred",
	Transformed:  "Transformed",
	Split:        "Split",
	Grouped:      "Grouped",
	Ungrouped:    "Ungrouped",
	Inactivated:  "Inactivated",
	Lineage:      "Lineage",
	Relationship: "Relationship",
	Composition:  "Composition",
	Depth:        "Depth",
}

// String - name of the kind
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// MarshalText - kind as its name
func (k Kind) MarshalText() ([]byte, error) {
	if int(k) >= len(kindNames) {
		return nil, fault.Detail(fault.ErrInvalidOperation, "notification kind: %d", k)
	}
	return []byte(kindNames[k]), nil
}

// UnmarshalText - kind from its name
func (k *Kind) UnmarshalText(text []byte) error {
	for i, name := range kindNames {
		if name == string(text) {
			*k = Kind(i)
			return nil
		}
	}
	return fault.Detail(fault.ErrInvalidOperation, "notification kind: %q", text)
}

// Notification - one committed state change for audit consumers
type Notification struct {
	Kind      Kind               `json:"kind"`
	Partition string             `json:"partition"`
	Ids       []asset.Identifier `json:"ids"`
	Depth     int                `json:"depth,omitempty"`
	Timestamp time.Time          `json:"timestamp"`
}

// String - summary for log files
func (n Notification) String() string {
	if Depth == n.Kind {
		return fmt.Sprintf("%s partition: %q  ids: %v  depth: %d", n.Kind, n.Partition, n.Ids, n.Depth)
	}
	return fmt.Sprintf("%s partition: %q  ids: %v", n.Kind, n.Partition, n.Ids)
}
