// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package configuration

import (
	"path/filepath"
	"reflect"
	"strings"

	"github.com/bitmark-inc/supplyledger/fault"
)

// ParseConfigurationFile - decode a configuration file into the
// structure pointed to by config, choosing the format from the file
// extension
func ParseConfigurationFile(fileName string, config interface{}) error {
	// since interface{} is untyped, have to verify type compatibility at run-time
	rv := reflect.ValueOf(config)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return fault.ErrInvalidStructPointer
	}
	if rv.Elem().Kind() != reflect.Struct {
		return fault.ErrInvalidStructPointer
	}

	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".hcl":
		return parseHCLFile(fileName, config)
	default:
		return parseLuaFile(fileName, config)
	}
}
