// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/bitmark-inc/supplyledger/account"
	"github.com/bitmark-inc/supplyledger/asset"
	"github.com/bitmark-inc/supplyledger/fault"
)

// used when a listing gives no pageSize
const defaultPageSize = 20

type createRequest struct {
	Id          asset.Identifier `json:"id"`
	Amount      uint64           `json:"amount"`
	Location    string           `json:"location"`
	DataHashes  []string         `json:"dataHashes"`
	ExternalIds []string         `json:"externalIds"`
}

type updateRequest struct {
	Amount     uint64   `json:"amount"`
	Location   string   `json:"location"`
	DataHashes []string `json:"dataHashes"`
}

type transferRequest struct {
	NewOwner    account.Principal `json:"newOwner"`
	ExternalIds []string          `json:"externalIds"`
}

type transformRequest struct {
	Tag      string `json:"tag"`
	Amount   uint64 `json:"amount"`
	Location string `json:"location"`
}

type splitRequest struct {
	Amounts    []uint64 `json:"amounts"`
	Location   string   `json:"location"`
	DataHashes []string `json:"dataHashes"`
}

type groupRequest struct {
	Id         asset.Identifier   `json:"id"`
	Members    []asset.Identifier `json:"members"`
	Location   string             `json:"location"`
	DataHashes []string           `json:"dataHashes"`
}

// shared by inactivate and ungroup
type overrideRequest struct {
	Location string `json:"location"`
	DataHash string `json:"dataHash"`
}

func identifier(c *gin.Context) (asset.Identifier, bool) {
	id, err := asset.ParseIdentifier(c.Param("id"))
	if nil != err {
		badRequest(c, err)
		return id, false
	}
	return id, true
}

func paging(c *gin.Context) (uint64, int, bool) {
	page, err := strconv.ParseUint(c.DefaultQuery("page", "0"), 10, 64)
	if nil != err {
		badRequest(c, fault.Detail(fault.ErrInvalidCount, "page: %q", c.Query("page")))
		return 0, 0, false
	}
	pageSize, err := strconv.Atoi(c.DefaultQuery("pageSize", strconv.Itoa(defaultPageSize)))
	if nil != err {
		badRequest(c, fault.Detail(fault.ErrInvalidCount, "pageSize: %q", c.Query("pageSize")))
		return 0, 0, false
	}
	return page, pageSize, true
}

func (s *Server) createAsset() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req createRequest
		if err := c.ShouldBindJSON(&req); nil != err {
			badRequest(c, err)
			return
		}
		err := s.ledger.Create(caller(c), c.Param("partition"), req.Id, req.Amount, req.Location, req.DataHashes, req.ExternalIds)
		if nil != err {
			s.fail(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"id": req.Id})
	}
}

func (s *Server) updateAsset() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := identifier(c)
		if !ok {
			return
		}
		var req updateRequest
		if err := c.ShouldBindJSON(&req); nil != err {
			badRequest(c, err)
			return
		}
		err := s.ledger.Update(caller(c), c.Param("partition"), id, req.Amount, req.Location, req.DataHashes)
		if nil != err {
			s.fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": id})
	}
}

func (s *Server) transferAsset() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := identifier(c)
		if !ok {
			return
		}
		var req transferRequest
		if err := c.ShouldBindJSON(&req); nil != err {
			badRequest(c, err)
			return
		}
		err := s.ledger.Transfer(caller(c), c.Param("partition"), id, req.NewOwner, req.ExternalIds)
		if nil != err {
			s.fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": id, "owner": req.NewOwner})
	}
}

func (s *Server) transformAsset() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := identifier(c)
		if !ok {
			return
		}
		var req transformRequest
		if err := c.ShouldBindJSON(&req); nil != err {
			badRequest(c, err)
			return
		}
		derived, err := s.ledger.Transform(caller(c), c.Param("partition"), id, req.Tag, req.Amount, req.Location)
		if nil != err {
			s.fail(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"id": derived})
	}
}

func (s *Server) splitAsset() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := identifier(c)
		if !ok {
			return
		}
		var req splitRequest
		if err := c.ShouldBindJSON(&req); nil != err {
			badRequest(c, err)
			return
		}
		children, err := s.ledger.Split(caller(c), c.Param("partition"), id, req.Amounts, req.Location, req.DataHashes)
		if nil != err {
			s.fail(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"ids": children})
	}
}

func (s *Server) inactivateAsset() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := identifier(c)
		if !ok {
			return
		}
		var req overrideRequest
		if err := c.ShouldBindJSON(&req); nil != err {
			badRequest(c, err)
			return
		}
		err := s.ledger.Inactivate(caller(c), c.Param("partition"), id, req.Location, req.DataHash)
		if nil != err {
			s.fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": id})
	}
}

func (s *Server) groupAssets() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req groupRequest
		if err := c.ShouldBindJSON(&req); nil != err {
			badRequest(c, err)
			return
		}
		err := s.ledger.Group(caller(c), c.Param("partition"), req.Id, req.Members, req.Location, req.DataHashes)
		if nil != err {
			s.fail(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"id": req.Id})
	}
}

func (s *Server) ungroupAssets() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := identifier(c)
		if !ok {
			return
		}
		var req overrideRequest
		if err := c.ShouldBindJSON(&req); nil != err {
			badRequest(c, err)
			return
		}
		err := s.ledger.Ungroup(caller(c), c.Param("partition"), id, req.Location, req.DataHash)
		if nil != err {
			s.fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": id})
	}
}

func (s *Server) getAsset() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := identifier(c)
		if !ok {
			return
		}
		a, err := s.ledger.Get(c.Param("partition"), id)
		if nil != err {
			s.fail(c, err)
			return
		}
		c.JSON(http.StatusOK, a)
	}
}

func (s *Server) isActive() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := identifier(c)
		if !ok {
			return
		}
		active, err := s.ledger.IsActive(c.Param("partition"), id)
		if nil != err {
			s.fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": id, "active": active})
	}
}

func (s *Server) history() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := identifier(c)
		if !ok {
			return
		}
		entries, err := s.ledger.History(c.Param("partition"), id)
		if nil != err {
			s.fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": id, "history": entries})
	}
}

func (s *Server) chain() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := identifier(c)
		if !ok {
			return
		}
		ids, err := s.ledger.TransformationChain(c.Param("partition"), id)
		if nil != err {
			s.fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": id, "chain": ids})
	}
}

func (s *Server) listByOwner() gin.HandlerFunc {
	return func(c *gin.Context) {
		page, pageSize, ok := paging(c)
		if !ok {
			return
		}
		result, err := s.ledger.ListByOwner(c.Param("partition"), account.Principal(c.Param("owner")), page, pageSize)
		if nil != err {
			s.fail(c, err)
			return
		}
		c.JSON(http.StatusOK, result)
	}
}

func (s *Server) listByStatus() gin.HandlerFunc {
	return func(c *gin.Context) {
		var status asset.Status
		if err := status.UnmarshalText([]byte(c.Param("status"))); nil != err {
			badRequest(c, err)
			return
		}
		page, pageSize, ok := paging(c)
		if !ok {
			return
		}
		result, err := s.ledger.ListByStatus(c.Param("partition"), status, page, pageSize)
		if nil != err {
			s.fail(c, err)
			return
		}
		c.JSON(http.StatusOK, result)
	}
}
