// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package api

import (
	"net/http"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/supplyledger/counter"
	"github.com/bitmark-inc/supplyledger/ledger"
)

// Server - HTTP front end for a ledger
type Server struct {
	log      *logger.L
	ledger   *ledger.Ledger
	engine   *gin.Engine
	requests counter.Counter
	limited  counter.Counter
}

// New - create a server and register its routes
//
// every request takes a token from limiter
func New(l *ledger.Ledger, limiter *rate.Limiter) *Server {
	s := &Server{
		log:    logger.New("api"),
		ledger: l,
		engine: gin.New(),
	}

	s.engine.Use(gin.Recovery(), s.logRequests(), s.limit(limiter))

	v1 := s.engine.Group("/v1")
	v1.GET("/statistics", s.statistics())

	p := v1.Group("/partitions/:partition")

	p.GET("/assets/:id", s.getAsset())
	p.GET("/assets/:id/active", s.isActive())
	p.GET("/assets/:id/history", s.history())
	p.GET("/assets/:id/chain", s.chain())
	p.GET("/owners/:owner", s.listByOwner())
	p.GET("/status/:status", s.listByStatus())

	w := p.Group("", identify())
	w.POST("/assets", s.createAsset())
	w.PUT("/assets/:id", s.updateAsset())
	w.POST("/assets/:id/transfer", s.transferAsset())
	w.POST("/assets/:id/transform", s.transformAsset())
	w.POST("/assets/:id/split", s.splitAsset())
	w.POST("/assets/:id/inactivate", s.inactivateAsset())
	w.POST("/groups", s.groupAssets())
	w.POST("/groups/:id/ungroup", s.ungroupAssets())

	return s
}

// Handler - the request handler for an http.Server
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Requests - number of requests served
func (s *Server) Requests() uint64 {
	return s.requests.Uint64()
}

// Limited - number of requests refused by the rate limiter
func (s *Server) Limited() uint64 {
	return s.limited.Uint64()
}

func (s *Server) logRequests() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.requests.Increment()
		s.log.Infof("%s %s  status: %d  duration: %s", c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start))
	}
}

func (s *Server) statistics() gin.HandlerFunc {
	return func(c *gin.Context) {
		stats := s.ledger.Statistics()
		stats["requests"] = s.requests.Uint64()
		stats["limited"] = s.limited.Uint64()
		c.JSON(http.StatusOK, stats)
	}
}
