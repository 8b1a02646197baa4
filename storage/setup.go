// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"encoding/binary"
	"fmt"
	"reflect"

	"github.com/syndtr/goleveldb/leveldb"
	ldb_opt "github.com/syndtr/goleveldb/leveldb/opt"
	ldb_storage "github.com/syndtr/goleveldb/leveldb/storage"

	"github.com/bitmark-inc/logger"
)

// exported storage pools
//
// note all must be exported (i.e. initial capital) or initialisation will panic
type pools struct {
	Assets          *PoolHandle `prefix:"A"`
	CreationCounter *PoolHandle `prefix:"C"`
	OwnerCount      *PoolHandle `prefix:"N"`
	OwnerList       *PoolHandle `prefix:"L"`
	OwnerPosition   *PoolHandle `prefix:"D"`
	StatusCount     *PoolHandle `prefix:"M"`
	StatusList      *PoolHandle `prefix:"S"`
	StatusPosition  *PoolHandle `prefix:"P"`
	HistoryCount    *PoolHandle `prefix:"G"`
	History         *PoolHandle `prefix:"H"`
	TestData        *PoolHandle `prefix:"Z"`
}

// for database version
var versionKey = []byte{0x00, 'V', 'E', 'R', 'S', 'I', 'O', 'N'}

const (
	currentDBVersion = 0x100
)

// Database - handle for an open ledger store
type Database struct {
	log      *logger.L
	db       *leveldb.DB
	readOnly bool

	// Pool - the set of pools in this database
	Pool pools
}

// pool access modes
const (
	ReadOnly  = true
	ReadWrite = false
)

// Open - open up the database at the given path
func Open(name string, readOnly bool) (*Database, error) {
	opt := &ldb_opt.Options{
		ErrorIfExist:   false,
		ErrorIfMissing: readOnly,
		ReadOnly:       readOnly,
	}

	db, err := leveldb.OpenFile(name, opt)
	if nil != err {
		return nil, err
	}
	return setup(db, name, readOnly)
}

// OpenMemory - open an empty database held in memory
func OpenMemory() (*Database, error) {
	db, err := leveldb.Open(ldb_storage.NewMemStorage(), nil)
	if nil != err {
		return nil, err
	}
	return setup(db, "memory", ReadWrite)
}

func setup(db *leveldb.DB, name string, readOnly bool) (*Database, error) {
	d := &Database{
		log:      logger.New("storage"),
		db:       db,
		readOnly: readOnly,
	}

	ok := false
	defer func() {
		if !ok {
			db.Close()
		}
	}()

	version, err := getVersion(db)
	if nil != err {
		return nil, err
	}

	// ensure no database downgrade
	if version > currentDBVersion {
		d.log.Criticalf("database version: %d > current version: %d", version, currentDBVersion)
		return nil, fmt.Errorf("database version: %d > current version: %d", version, currentDBVersion)
	}

	if 0 == version && !readOnly {
		// database was empty so tag as current version
		err = putVersion(db, currentDBVersion)
		if nil != err {
			return nil, err
		}
	} else if version != currentDBVersion {
		d.log.Criticalf("database version: %d  current: %d", version, currentDBVersion)
		return nil, fmt.Errorf("database version: %d  current: %d", version, currentDBVersion)
	}

	// this will be a struct type
	poolType := reflect.TypeOf(d.Pool)

	// get write access by using pointer + Elem()
	poolValue := reflect.ValueOf(&d.Pool).Elem()

	// scan each field
	for i := 0; i < poolType.NumField(); i += 1 {

		fieldInfo := poolType.Field(i)

		prefixTag := fieldInfo.Tag.Get("prefix")
		if 1 != len(prefixTag) {
			return nil, fmt.Errorf("pool: %v has invalid prefix: %q", fieldInfo, prefixTag)
		}

		prefix := prefixTag[0]
		limit := []byte(nil)
		if prefix < 255 {
			limit = []byte{prefix + 1}
		}

		p := &PoolHandle{
			name:   fieldInfo.Name,
			prefix: prefix,
			limit:  limit,
		}
		poolValue.Field(i).Set(reflect.ValueOf(p))
	}

	d.log.Infof("opened: %q  version: %d  read only: %v", name, currentDBVersion, readOnly)

	ok = true // prevent db close
	return d, nil
}

// Close - close the database
func (d *Database) Close() error {
	if nil == d.db {
		return nil
	}
	err := d.db.Close()
	d.db = nil
	return err
}

// Pools - list of all pools, in declaration order
func (d *Database) Pools() []*PoolHandle {
	poolValue := reflect.ValueOf(d.Pool)
	handles := make([]*PoolHandle, 0, poolValue.NumField())
	for i := 0; i < poolValue.NumField(); i += 1 {
		handles = append(handles, poolValue.Field(i).Interface().(*PoolHandle))
	}
	return handles
}

// return version number, zero for an empty database
func getVersion(db *leveldb.DB) (int, error) {
	versionValue, err := db.Get(versionKey, nil)
	if leveldb.ErrNotFound == err {
		return 0, nil
	} else if nil != err {
		return 0, err
	}

	if 4 != len(versionValue) {
		return 0, fmt.Errorf("incompatible database version length: expected: %d  actual: %d", 4, len(versionValue))
	}

	return int(binary.BigEndian.Uint32(versionValue)), nil
}

func putVersion(db *leveldb.DB, version int) error {
	currentVersion := make([]byte, 4)
	binary.BigEndian.PutUint32(currentVersion, uint32(version))

	return db.Put(versionKey, currentVersion, nil)
}
