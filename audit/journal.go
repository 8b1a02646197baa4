// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package audit

import (
	"encoding/binary"
	"encoding/json"
	"time"

	"github.com/boltdb/bolt"

	"github.com/bitmark-inc/supplyledger/fault"
	"github.com/bitmark-inc/supplyledger/messagebus"
)

// MaximumReadCount - largest number of records returned by one Read
const MaximumReadCount = 100

var notificationBucket = []byte("notifications")

// Record - one journalled message
type Record struct {
	Sequence uint64          `json:"sequence,string"`
	From     string          `json:"from"`
	Item     json.RawMessage `json:"item"`
}

// Journal - append only store of bus messages
type Journal struct {
	db *bolt.DB
}

// OpenJournal - open or create a journal file
func OpenJournal(fileName string) (*Journal, error) {
	db, err := bolt.Open(fileName, 0600, &bolt.Options{Timeout: 5 * time.Second})
	if nil != err {
		return nil, err
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(notificationBucket)
		return err
	})
	if nil != err {
		db.Close()
		return nil, err
	}

	return &Journal{db: db}, nil
}

// Close - close the journal file
func (j *Journal) Close() error {
	return j.db.Close()
}

// Append - store a message, returning its sequence number
func (j *Journal) Append(m messagebus.Message) (uint64, error) {
	item, err := json.Marshal(m.Item)
	if nil != err {
		return 0, err
	}

	var sequence uint64
	err = j.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(notificationBucket)
		n, err := b.NextSequence()
		if nil != err {
			return err
		}
		value, err := json.Marshal(Record{
			Sequence: n,
			From:     m.From,
			Item:     item,
		})
		if nil != err {
			return err
		}
		sequence = n
		return b.Put(sequenceKey(n), value)
	})
	if nil != err {
		return 0, err
	}
	return sequence, nil
}

// Count - number of records in the journal
func (j *Journal) Count() (int, error) {
	n := 0
	err := j.db.View(func(tx *bolt.Tx) error {
		n = tx.Bucket(notificationBucket).Stats().KeyN
		return nil
	})
	return n, err
}

// Read - up to count records starting at sequence start
//
// sequence numbers begin at one
func (j *Journal) Read(start uint64, count int) ([]Record, error) {
	if count <= 0 || count > MaximumReadCount {
		return nil, fault.Detail(fault.ErrInvalidCount, "count: %d", count)
	}

	records := make([]Record, 0, count)
	err := j.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket(notificationBucket).Cursor()
		for k, v := c.Seek(sequenceKey(start)); nil != k && len(records) < count; k, v = c.Next() {
			var r Record
			if err := json.Unmarshal(v, &r); nil != err {
				return fault.Detail(fault.ErrNotAuditRecord, "sequence: %d  error: %s", binary.BigEndian.Uint64(k), err)
			}
			records = append(records, r)
		}
		return nil
	})
	if nil != err {
		return nil, err
	}
	return records, nil
}

// big endian so cursor order is sequence order
func sequenceKey(sequence uint64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, sequence)
	return key
}
