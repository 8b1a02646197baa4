// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/supplyledger/fault"
)

// limit - refuse the request when the bucket is empty
func (s *Server) limit(limiter *rate.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !limiter.Allow() {
			s.limited.Increment()
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": fault.ErrRateLimiting.Error()})
			return
		}
		c.Next()
	}
}
