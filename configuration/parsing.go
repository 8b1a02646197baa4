// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package configuration

import (
	"path/filepath"
	"time"

	"github.com/bitmark-inc/logger"
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/supplyledger/fault"
	"github.com/bitmark-inc/supplyledger/util"
)

// basic defaults (directories and files are relative to the "DataDirectory" from Configuration file)
const (
	defaultDataDirectory = "" // this will error; use "." for the same directory as the config file

	defaultLevelDBDirectory = "data"
	defaultLedgerDatabase   = "ledger.leveldb"
	defaultAuditJournal     = "audit.bolt"

	defaultListen = "127.0.0.1:2150"

	defaultRateLimitRequests = 200 // per second
	defaultRateLimitBurst    = 100

	defaultLogDirectory = "log"
	defaultLogFile      = "ledger.log"
	defaultLogCount     = 10          //  number of log files retained
	defaultLogSize      = 1024 * 1024 // rotate when <logfile> exceeds this size

	defaultMembershipCache   = 60 // seconds
	defaultNotificationQueue = 1000
)

// LoglevelMap - to hold log levels
type LoglevelMap map[string]string

// a fresh map each time since decoding merges into it
func defaultLogLevels() LoglevelMap {
	return LoglevelMap{
		"main":            "info",
		logger.DefaultTag: "critical",
	}
}

// LoggerType - log file settings
type LoggerType struct {
	Directory string      `gluamapper:"directory" hcl:"directory" json:"directory"`
	File      string      `gluamapper:"file" hcl:"file" json:"file"`
	Size      int         `gluamapper:"size" hcl:"size" json:"size"`
	Count     int         `gluamapper:"count" hcl:"count" json:"count"`
	Console   bool        `gluamapper:"console" hcl:"console" json:"console"`
	Levels    LoglevelMap `gluamapper:"levels" hcl:"levels" json:"levels"`
}

// DatabaseType - where the ledger database lives
type DatabaseType struct {
	Directory string `gluamapper:"directory" hcl:"directory" json:"directory"`
	Name      string `gluamapper:"name" hcl:"name" json:"name"`
}

// RateLimitType - API request throttling shared by all callers
type RateLimitType struct {
	Requests int `gluamapper:"requests" hcl:"requests" json:"requests"`
	Burst    int `gluamapper:"burst" hcl:"burst" json:"burst"`
}

// Configuration - settings shared by the ledger programs
type Configuration struct {
	DataDirectory     string              `gluamapper:"data_directory" hcl:"data_directory" json:"data_directory"`
	Database          DatabaseType        `gluamapper:"database" hcl:"database" json:"database"`
	AuditJournal      string              `gluamapper:"audit_journal" hcl:"audit_journal" json:"audit_journal"`
	Listen            string              `gluamapper:"listen" hcl:"listen" json:"listen"`
	RateLimit         RateLimitType       `gluamapper:"rate_limit" hcl:"rate_limit" json:"rate_limit"`
	Partitions        map[string][]string `gluamapper:"partitions" hcl:"partitions" json:"partitions"`
	MembershipCache   int                 `gluamapper:"membership_cache" hcl:"membership_cache" json:"membership_cache"`
	NotificationQueue int                 `gluamapper:"notification_queue" hcl:"notification_queue" json:"notification_queue"`
	Logging           LoggerType          `gluamapper:"logging" hcl:"logging" json:"logging"`
}

// GetConfiguration - read, decode and verify the configuration
func GetConfiguration(configurationFileName string) (*Configuration, error) {

	configurationFileName, err := filepath.Abs(filepath.Clean(configurationFileName))
	if nil != err {
		return nil, err
	}

	// absolute path to the main directory
	dataDirectory, _ := filepath.Split(configurationFileName)

	options := &Configuration{

		DataDirectory: defaultDataDirectory,

		Database: DatabaseType{
			Directory: defaultLevelDBDirectory,
			Name:      defaultLedgerDatabase,
		},
		AuditJournal: defaultAuditJournal,
		Listen:       defaultListen,
		RateLimit: RateLimitType{
			Requests: defaultRateLimitRequests,
			Burst:    defaultRateLimitBurst,
		},

		MembershipCache:   defaultMembershipCache,
		NotificationQueue: defaultNotificationQueue,

		Logging: LoggerType{
			Directory: defaultLogDirectory,
			File:      defaultLogFile,
			Size:      defaultLogSize,
			Count:     defaultLogCount,
			Levels:    defaultLogLevels(),
		},
	}

	if err := ParseConfigurationFile(configurationFileName, options); err != nil {
		return nil, err
	}

	// ensure absolute data directory
	if "" == options.DataDirectory || "~" == options.DataDirectory {
		return nil, fault.Detail(fault.ErrInvalidPath, "path: %q is not a valid directory", options.DataDirectory)
	} else if "." == options.DataDirectory {
		options.DataDirectory = dataDirectory // same directory as the configuration file
	} else {
		options.DataDirectory = util.EnsureAbsolute(dataDirectory, options.DataDirectory)
	}

	// this directory must exist - i.e. must be created prior to running
	if !util.IsDirectory(options.DataDirectory) {
		return nil, fault.Detail(fault.ErrInvalidPath, "path: %q is not a directory", options.DataDirectory)
	}

	if options.MembershipCache < 0 {
		return nil, fault.Detail(fault.ErrInvalidCount, "membership_cache: %d", options.MembershipCache)
	}
	if options.RateLimit.Requests <= 0 || options.RateLimit.Burst <= 0 {
		return nil, fault.Detail(fault.ErrInvalidCount, "rate_limit: requests: %d  burst: %d", options.RateLimit.Requests, options.RateLimit.Burst)
	}
	if options.NotificationQueue <= 0 {
		return nil, fault.Detail(fault.ErrInvalidCount, "notification_queue: %d", options.NotificationQueue)
	}
	for name, members := range options.Partitions {
		if "" == name {
			return nil, fault.ErrEmptyPartition
		}
		for _, m := range members {
			if "" == m {
				return nil, fault.Detail(fault.ErrEmptyPrincipal, "partition: %q", name)
			}
		}
	}

	// make directories absolute and create them if they do not already exist
	for _, d := range []*string{&options.Database.Directory, &options.Logging.Directory} {
		*d = util.EnsureAbsolute(options.DataDirectory, *d)
		if err := util.EnsureDirectory(*d); nil != err {
			return nil, err
		}
	}

	// fail if any of these are not simple file names i.e. must not contain path separator
	// then add the correct directory prefix, file item is first and corresponding directory is second
	mustNotBePaths := [][2]*string{
		{&options.Database.Name, &options.Database.Directory},
		{&options.AuditJournal, &options.Database.Directory},
		{&options.Logging.File, &options.Logging.Directory},
	}
	for _, f := range mustNotBePaths {
		p, err := util.PlainFile(*f[1], *f[0])
		if nil != err {
			return nil, err
		}
		*f[0] = p
	}

	// done
	return options, nil
}

// LoggerConfiguration - settings in the form the logger expects
func (c *Configuration) LoggerConfiguration() logger.Configuration {
	return logger.Configuration{
		Directory: c.Logging.Directory,
		File:      filepath.Base(c.Logging.File),
		Size:      c.Logging.Size,
		Count:     c.Logging.Count,
		Console:   c.Logging.Console,
		Levels:    c.Logging.Levels,
	}
}

// RequestLimiter - token bucket for the API, refilled at the configured rate
func (c *Configuration) RequestLimiter() *rate.Limiter {
	return rate.NewLimiter(rate.Limit(c.RateLimit.Requests), c.RateLimit.Burst)
}

// MembershipTTL - how long membership answers are cached, zero disables caching
func (c *Configuration) MembershipTTL() time.Duration {
	return time.Duration(c.MembershipCache) * time.Second
}
