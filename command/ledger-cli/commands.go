// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/supplyledger/account"
	"github.com/bitmark-inc/supplyledger/asset"
)

type idResponse struct {
	Id asset.Identifier `json:"id"`
}

type idsResponse struct {
	Ids []asset.Identifier `json:"ids"`
}

func runCreate(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	caller, err := identity(c)
	if nil != err {
		return err
	}
	id, err := idFlag(c)
	if nil != err {
		return err
	}

	if m.verbose {
		fmt.Fprintf(m.e, "create: %s  amount: %d\n", id, c.Uint64("amount"))
	}

	err = m.ledger.Create(caller, c.String("partition"), id, c.Uint64("amount"), c.String("location"), c.StringSlice("hash"), c.StringSlice("external"))
	if nil != err {
		return err
	}
	return printJson(m.w, idResponse{Id: id})
}

func runUpdate(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	caller, err := identity(c)
	if nil != err {
		return err
	}
	id, err := idFlag(c)
	if nil != err {
		return err
	}

	err = m.ledger.Update(caller, c.String("partition"), id, c.Uint64("amount"), c.String("location"), c.StringSlice("hash"))
	if nil != err {
		return err
	}
	return printJson(m.w, idResponse{Id: id})
}

func runTransfer(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	caller, err := identity(c)
	if nil != err {
		return err
	}
	id, err := idFlag(c)
	if nil != err {
		return err
	}
	receiver, err := required(c, "receiver")
	if nil != err {
		return err
	}

	if m.verbose {
		fmt.Fprintf(m.e, "id: %s\n", id)
		fmt.Fprintf(m.e, "receiver: %s\n", receiver)
		fmt.Fprintf(m.e, "sender: %s\n", caller.Principal())
	}

	err = m.ledger.Transfer(caller, c.String("partition"), id, account.Principal(receiver), c.StringSlice("external"))
	if nil != err {
		return err
	}
	return printJson(m.w, idResponse{Id: id})
}

func runTransform(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	caller, err := identity(c)
	if nil != err {
		return err
	}
	id, err := idFlag(c)
	if nil != err {
		return err
	}

	derived, err := m.ledger.Transform(caller, c.String("partition"), id, c.String("tag"), c.Uint64("amount"), c.String("location"))
	if nil != err {
		return err
	}
	return printJson(m.w, idResponse{Id: derived})
}

func runSplit(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	caller, err := identity(c)
	if nil != err {
		return err
	}
	id, err := idFlag(c)
	if nil != err {
		return err
	}
	amounts, err := parseAmounts(c.StringSlice("amount"))
	if nil != err {
		return err
	}

	children, err := m.ledger.Split(caller, c.String("partition"), id, amounts, c.String("location"), c.StringSlice("hash"))
	if nil != err {
		return err
	}
	return printJson(m.w, idsResponse{Ids: children})
}

func runGroup(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	caller, err := identity(c)
	if nil != err {
		return err
	}
	id, err := idFlag(c)
	if nil != err {
		return err
	}
	members, err := parseIds(c.StringSlice("member"))
	if nil != err {
		return err
	}

	err = m.ledger.Group(caller, c.String("partition"), id, members, c.String("location"), c.StringSlice("hash"))
	if nil != err {
		return err
	}
	return printJson(m.w, idResponse{Id: id})
}

func runUngroup(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	caller, err := identity(c)
	if nil != err {
		return err
	}
	id, err := idFlag(c)
	if nil != err {
		return err
	}

	err = m.ledger.Ungroup(caller, c.String("partition"), id, c.String("location"), c.String("hash"))
	if nil != err {
		return err
	}
	return printJson(m.w, idResponse{Id: id})
}

func runInactivate(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	caller, err := identity(c)
	if nil != err {
		return err
	}
	id, err := idFlag(c)
	if nil != err {
		return err
	}

	err = m.ledger.Inactivate(caller, c.String("partition"), id, c.String("location"), c.String("hash"))
	if nil != err {
		return err
	}
	return printJson(m.w, idResponse{Id: id})
}

func runGet(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	id, err := idFlag(c)
	if nil != err {
		return err
	}

	a, err := m.ledger.Get(c.String("partition"), id)
	if nil != err {
		return err
	}
	return printJson(m.w, a)
}

func runListOwner(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	owner := c.String("owner")
	if "" == owner {
		caller, err := identity(c)
		if nil != err {
			return err
		}
		owner = caller.Principal().String()
	}

	page, err := m.ledger.ListByOwner(c.String("partition"), account.Principal(owner), c.Uint64("page"), c.Int("page-size"))
	if nil != err {
		return err
	}
	return printJson(m.w, page)
}

func runListStatus(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	var status asset.Status
	if err := status.UnmarshalText([]byte(c.String("status"))); nil != err {
		return err
	}

	page, err := m.ledger.ListByStatus(c.String("partition"), status, c.Uint64("page"), c.Int("page-size"))
	if nil != err {
		return err
	}
	return printJson(m.w, page)
}

func runHistory(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	id, err := idFlag(c)
	if nil != err {
		return err
	}

	entries, err := m.ledger.History(c.String("partition"), id)
	if nil != err {
		return err
	}
	return printJson(m.w, entries)
}

func runChain(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	id, err := idFlag(c)
	if nil != err {
		return err
	}

	chain, err := m.ledger.TransformationChain(c.String("partition"), id)
	if nil != err {
		return err
	}
	return printJson(m.w, idsResponse{Ids: chain})
}

func runVersion(c *cli.Context) error {
	fmt.Fprintf(c.App.Writer, "%s\n", version)
	return nil
}
