// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package audit

import (
	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/supplyledger/counter"
	"github.com/bitmark-inc/supplyledger/messagebus"
)

// Auditor - background process draining the message bus
type Auditor struct {
	log       *logger.L
	bus       *messagebus.Bus
	journal   *Journal
	processed counter.Counter
	failed    counter.Counter
}

// New - create an auditor, journal may be nil to only log
func New(bus *messagebus.Bus, journal *Journal) *Auditor {
	return &Auditor{
		log:     logger.New("audit"),
		bus:     bus,
		journal: journal,
	}
}

// Run - background process loop
//
// messages still queued at shutdown are processed before returning
func (a *Auditor) Run(args interface{}, shutdown <-chan struct{}) {
	a.log.Info("starting…")

loop:
	for {
		select {
		case <-shutdown:
			break loop
		case m := <-a.bus.Chan():
			a.process(m)
		}
	}

	for {
		select {
		case m := <-a.bus.Chan():
			a.process(m)
		default:
			a.log.Infof("stopped  processed: %d  failed: %d", a.processed.Uint64(), a.failed.Uint64())
			return
		}
	}
}

func (a *Auditor) process(m messagebus.Message) {
	a.log.Infof("from: %s  %v", m.From, m.Item)

	if nil != a.journal {
		sequence, err := a.journal.Append(m)
		if nil != err {
			a.failed.Increment()
			a.log.Errorf("journal append error: %s", err)
			return
		}
		a.log.Debugf("journal sequence: %d", sequence)
	}
	a.processed.Increment()
}

// Processed - number of messages handled
func (a *Auditor) Processed() uint64 {
	return a.processed.Uint64()
}

// Failed - number of messages that could not be journalled
func (a *Auditor) Failed() uint64 {
	return a.failed.Uint64()
}
