// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util

import (
	"os"
	"path/filepath"

	"github.com/bitmark-inc/supplyledger/fault"
)

// EnsureAbsolute - ensure the path is absolute
// if not, prepend the directory to make absolute path
func EnsureAbsolute(directory string, filePath string) string {
	if !filepath.IsAbs(filePath) {
		filePath = filepath.Join(directory, filePath)
	}
	return filepath.Clean(filePath)
}

// PlainFile - place a plain file name inside directory
//
// the name must not contain any directory component
func PlainFile(directory string, name string) (string, error) {
	if "" == name {
		return "", fault.Detail(fault.ErrInvalidPath, "empty file name")
	}
	switch filepath.Dir(name) {
	case "", ".":
		return EnsureAbsolute(directory, name), nil
	default:
		return "", fault.Detail(fault.ErrInvalidPath, "file: %q is not plain name", name)
	}
}

// EnsureDirectory - create a directory and its parents if they do not already exist
func EnsureDirectory(directory string) error {
	return os.MkdirAll(directory, 0700)
}

// IsDirectory - true if the path exists and is a directory
func IsDirectory(name string) bool {
	fileInfo, err := os.Stat(name)
	return nil == err && fileInfo.IsDir()
}
