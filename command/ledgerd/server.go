// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"net/http"
	"time"

	"github.com/bitmark-inc/logger"
)

// time allowed for in-flight requests to complete
const shutdownTimeout = 10 * time.Second

// http listener as a background process
type httpServer struct {
	log    *logger.L
	server *http.Server
}

func newHTTPServer(listen string, handler http.Handler) *httpServer {
	return &httpServer{
		log: logger.New("http"),
		server: &http.Server{
			Addr:         listen,
			Handler:      handler,
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
	}
}

func (h *httpServer) Run(args interface{}, shutdown <-chan struct{}) {
	h.log.Infof("listening on: %s", h.server.Addr)

	go func() {
		err := h.server.ListenAndServe()
		if nil != err && http.ErrServerClosed != err {
			h.log.Criticalf("listen error: %s", err)
		}
	}()

	<-shutdown

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := h.server.Shutdown(ctx); nil != err {
		h.log.Errorf("shutdown error: %s", err)
	}
	h.log.Info("stopped")
}
