// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package api

import (
	"bytes"
	"encoding/hex"
	"io/ioutil"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bitmark-inc/supplyledger/account"
	"github.com/bitmark-inc/supplyledger/fault"
)

// request headers carrying the caller identity
const (
	HeaderPrincipal = "X-Principal"
	HeaderPublicKey = "X-Public-Key"
	HeaderSignature = "X-Signature"
)

const callerKey = "caller"

// bodies above this are refused before signature checking
const maximumBodySize = 1 << 20

// attach the caller's account.Context to the request or reject it
func identify() gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, err := callerOf(c)
		if nil != err {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		c.Set(callerKey, caller)
		c.Next()
	}
}

func callerOf(c *gin.Context) (account.Context, error) {
	publicKey := c.GetHeader(HeaderPublicKey)
	if "" == publicKey {
		return account.NewNamed(c.GetHeader(HeaderPrincipal))
	}

	key, err := hex.DecodeString(publicKey)
	if nil != err {
		return nil, fault.Detail(fault.ErrInvalidSignature, "public key: %s", err)
	}
	signature, err := hex.DecodeString(c.GetHeader(HeaderSignature))
	if nil != err {
		return nil, fault.Detail(fault.ErrInvalidSignature, "signature: %s", err)
	}

	body, err := ioutil.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maximumBodySize))
	if nil != err {
		return nil, fault.Detail(fault.ErrInvalidSignature, "body: %s", err)
	}
	c.Request.Body = ioutil.NopCloser(bytes.NewReader(body))

	return account.NewSigner(key, body, signature)
}

func caller(c *gin.Context) account.Context {
	return c.MustGet(callerKey).(account.Context)
}
