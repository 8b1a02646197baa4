// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/supplyledger/account"
	"github.com/bitmark-inc/supplyledger/asset"
	"github.com/bitmark-inc/supplyledger/fault"
)

func printJson(handle io.Writer, message interface{}) error {

	b, err := json.MarshalIndent(message, "", "  ")
	if nil != err {
		return err
	}

	fmt.Fprintf(handle, "%s\n", b)
	return nil
}

// an identifier is either its hex form or a short name
func parseId(s string) (asset.Identifier, error) {
	if "" == s {
		return asset.Identifier{}, fault.ErrEmptyIdentifier
	}
	if 2*asset.IdentifierLength == len(s) {
		if id, err := asset.ParseIdentifier(s); nil == err {
			return id, nil
		}
	}
	return asset.NewIdentifier(s)
}

func parseIds(list []string) ([]asset.Identifier, error) {
	ids := make([]asset.Identifier, 0, len(list))
	for _, s := range list {
		id, err := parseId(s)
		if nil != err {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func parseAmounts(list []string) ([]uint64, error) {
	amounts := make([]uint64, 0, len(list))
	for _, s := range list {
		n, err := strconv.ParseUint(s, 10, 64)
		if nil != err {
			return nil, fault.Detail(ErrInvalidAmount, "%q", s)
		}
		amounts = append(amounts, n)
	}
	return amounts, nil
}

// value of a flag that must be present
func required(c *cli.Context, name string) (string, error) {
	s := c.String(name)
	if "" == s {
		return "", fault.Detail(ErrRequiredFlag, "--%s", name)
	}
	return s, nil
}

// the asset named by --id
func idFlag(c *cli.Context) (asset.Identifier, error) {
	s, err := required(c, "id")
	if nil != err {
		return asset.Identifier{}, err
	}
	return parseId(s)
}

// the caller given by the global --identity
func identity(c *cli.Context) (account.Context, error) {
	name := c.GlobalString("identity")
	if "" == name {
		return nil, ErrMissingIdentity
	}
	return account.NewNamed(name)
}
