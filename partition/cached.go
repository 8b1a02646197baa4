// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package partition

import (
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/patrickmn/go-cache"

	"github.com/bitmark-inc/supplyledger/account"
)

// Cached - remembers answers from a slower membership source
//
// both positive and negative answers are kept until they expire
type Cached struct {
	log    *logger.L
	source Membership
	cache  *cache.Cache
}

// NewCached - wrap source, answers are kept for ttl
func NewCached(source Membership, ttl time.Duration) *Cached {
	return &Cached{
		log:    logger.New("partition"),
		source: source,
		cache:  cache.New(ttl, 2*ttl),
	}
}

// IsMember - answer from cache, asking the source on a miss
func (c *Cached) IsMember(partition string, principal account.Principal) bool {
	key := partition + "\x00" + principal.String()
	if value, found := c.cache.Get(key); found {
		return value.(bool)
	}

	member := c.source.IsMember(partition, principal)
	c.log.Debugf("partition: %q  principal: %q  member: %t", partition, principal, member)
	c.cache.SetDefault(key, member)
	return member
}

// Flush - forget all answers
func (c *Cached) Flush() {
	c.cache.Flush()
}
