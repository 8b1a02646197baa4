// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package partition - who may hold assets in which partition
//
// partitions themselves are administered elsewhere, the ledger only
// asks whether a principal is a member
package partition

import (
	"github.com/bitmark-inc/supplyledger/account"
)

//go:generate mockgen -destination=../mocks/membership.go -package=mocks github.com/bitmark-inc/supplyledger/partition Membership

// Membership - the partition membership oracle
type Membership interface {
	IsMember(partition string, principal account.Principal) bool
}

// Static - membership fixed at construction
type Static struct {
	members map[string]map[account.Principal]struct{}
}

// NewStatic - membership from a partition → principals map
func NewStatic(partitions map[string][]string) *Static {
	s := &Static{
		members: make(map[string]map[account.Principal]struct{}, len(partitions)),
	}
	for partition, names := range partitions {
		set := make(map[account.Principal]struct{}, len(names))
		for _, name := range names {
			set[account.Principal(name)] = struct{}{}
		}
		s.members[partition] = set
	}
	return s
}

// IsMember - check principal belongs to partition
func (s *Static) IsMember(partition string, principal account.Principal) bool {
	set, ok := s.members[partition]
	if !ok {
		return false
	}
	_, ok = set[principal]
	return ok
}

// Partitions - number of configured partitions
func (s *Static) Partitions() int {
	return len(s.members)
}
