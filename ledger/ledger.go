// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"sync"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/supplyledger/counter"
	"github.com/bitmark-inc/supplyledger/index"
	"github.com/bitmark-inc/supplyledger/messagebus"
	"github.com/bitmark-inc/supplyledger/partition"
	"github.com/bitmark-inc/supplyledger/provenance"
	"github.com/bitmark-inc/supplyledger/storage"
)

// name used as the sender on the message bus
const busSender = "ledger"

// Ledger - asset registry over a single database
type Ledger struct {
	log        *logger.L
	db         *storage.Database
	owners     *index.Index
	statuses   *index.Index
	history    *provenance.History
	membership partition.Membership
	bus        *messagebus.Bus
	now        func() time.Time

	sync.Mutex // protects partitions and their users counts
	partitions map[string]*partitionState

	committed counter.Counter
	rejected  counter.Counter
	dropped   counter.Counter
}

// one writer at a time per partition
//
// kept only while some operation holds or waits for it
type partitionState struct {
	sync.Mutex
	trx   *storage.Transaction
	users int
}

// New - create a ledger
//
// bus may be nil, in which case notifications are discarded
func New(db *storage.Database, membership partition.Membership, bus *messagebus.Bus) *Ledger {
	return &Ledger{
		log:        logger.New("ledger"),
		db:         db,
		owners:     index.NewOwnerIndex(db),
		statuses:   index.NewStatusIndex(db),
		history:    provenance.NewHistory(db),
		membership: membership,
		bus:        bus,
		now: func() time.Time {
			return time.Now().UTC()
		},
		partitions: make(map[string]*partitionState),
	}
}

// Statistics - operation counts since the ledger was created
func (l *Ledger) Statistics() map[string]uint64 {
	return counter.Set{
		"committed": &l.committed,
		"rejected":  &l.rejected,
		"dropped":   &l.dropped,
	}.Snapshot()
}

// acquire - fetch or create the state for a partition and register a user
func (l *Ledger) acquire(name string) *partitionState {
	l.Lock()
	defer l.Unlock()

	ps, ok := l.partitions[name]
	if !ok {
		ps = &partitionState{
			trx: l.db.NewTransaction(),
		}
		l.partitions[name] = ps
	}
	ps.users += 1
	return ps
}

// release - drop a user, forgetting the state when none remain
func (l *Ledger) release(name string, ps *partitionState) {
	l.Lock()
	defer l.Unlock()

	ps.users -= 1
	if 0 == ps.users {
		delete(l.partitions, name)
	}
}

// ActivePartitions - number of partitions with operations in progress
func (l *Ledger) ActivePartitions() int {
	l.Lock()
	defer l.Unlock()
	return len(l.partitions)
}

// mutate - run f as one atomic operation on a partition
//
// f sees the partition through a writer; if f fails every write it
// made is discarded
func (l *Ledger) mutate(partition string, operation string, f func(w *writer) error) error {
	notifications, err := l.apply(partition, f)
	if nil != err {
		l.rejected.Increment()
		l.log.Warnf("%s: partition: %q  rejected: %s", operation, partition, err)
		return err
	}
	l.committed.Increment()
	l.log.Infof("%s: partition: %q  committed", operation, partition)

	l.publish(notifications)
	return nil
}

func (l *Ledger) apply(partition string, f func(w *writer) error) ([]Notification, error) {
	ps := l.acquire(partition)
	ps.Lock()
	defer func() {
		// only still in use if f panicked
		if ps.trx.InUse() {
			ps.trx.Abort()
		}
		ps.Unlock()
		l.release(partition, ps)
	}()

	err := ps.trx.Begin()
	if nil != err {
		return nil, err
	}

	w := &writer{
		ledger:    l,
		trx:       ps.trx,
		partition: partition,
		timestamp: l.now(),
	}
	err = f(w)
	if nil != err {
		ps.trx.Abort()
		return nil, err
	}

	err = ps.trx.Commit()
	if nil != err {
		l.log.Criticalf("partition: %q  commit error: %s", partition, err)
		return nil, err
	}
	return w.notifications, nil
}

// publish - hand notifications to the bus without waiting
func (l *Ledger) publish(notifications []Notification) {
	if nil == l.bus {
		return
	}
	for _, n := range notifications {
		if !l.bus.Send(busSender, n) {
			l.dropped.Increment()
			l.log.Warnf("notification dropped: %s", n)
		}
	}
}
