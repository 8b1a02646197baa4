// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bitmark-inc/supplyledger/fault"
)

// HTTP status for a ledger error
func statusOf(err error) int {
	switch {
	case errors.Is(err, fault.ErrNotOwner), errors.Is(err, fault.ErrNotMember):
		return http.StatusForbidden
	case errors.Is(err, fault.ErrRateLimiting):
		return http.StatusTooManyRequests
	case errors.Is(err, fault.ErrInvalidSignature):
		return http.StatusUnauthorized
	case fault.IsErrNotFound(err):
		return http.StatusNotFound
	case fault.IsErrExists(err):
		return http.StatusConflict
	case fault.IsErrInvalid(err), fault.IsErrLength(err):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) fail(c *gin.Context, err error) {
	status := statusOf(err)
	if http.StatusInternalServerError == status {
		s.log.Errorf("%s %s  error: %s", c.Request.Method, c.Request.URL.Path, err)
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}
