// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package ini

import (
	"errors"
	"fmt"
	"io/fs"
)

// Errors returned by this package. Use errors.Is to test for them, since they
// are usually wrapped with more context.
var (
	// ErrSectionNotFound is returned when a requested section does not exist.
	ErrSectionNotFound = errors.New("section not found")
	// ErrKeyNotFound is returned when a requested key does not exist in its
	// section.
	ErrKeyNotFound = errors.New("key not found")
	// ErrFileNotFound is returned when reading a file that does not exist.
	// Errors wrapping it also match fs.ErrNotExist.
	ErrFileNotFound = errors.New("file not found")
	// ErrFileExists is returned when writing over an existing file without
	// permission to overwrite. Errors wrapping it also match fs.ErrExist.
	ErrFileExists = errors.New("file already exists")
	// ErrMalformedInput is returned when a line cannot be parsed.
	ErrMalformedInput = errors.New("malformed input")
	// ErrInvalidArgument is returned when an empty file name, section name or
	// key is passed where an identifier is required.
	ErrInvalidArgument = errors.New("invalid argument")
)

// A ConversionError is returned by Get when a value cannot be looked up or
// cannot be converted to the requested type.
//
// For compatibility with earlier versions of this package, a ConversionError
// matches ErrSectionNotFound regardless of its cause. Unwrap returns the
// actual cause.
type ConversionError struct {
	Section string
	Key     string
	Value   string // raw value, empty if the lookup failed
	Type    string // name of the requested type
	Err     error
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("ini: get [%s] %s as %s: %v", e.Section, e.Key, e.Type, e.Err)
}

func (e *ConversionError) Unwrap() error { return e.Err }

// Is reports whether target is ErrSectionNotFound.
func (e *ConversionError) Is(target error) bool { return target == ErrSectionNotFound }

// pathError annotates a file system error with one of this package's
// sentinels while keeping the original error reachable for errors.Is and
// errors.As.
func pathError(op, path string, kind, err error) error {
	return fmt.Errorf("ini: %s %s: %w: %w", op, path, kind, err)
}

func isNotExist(err error) bool { return errors.Is(err, fs.ErrNotExist) }

func isExist(err error) bool { return errors.Is(err, fs.ErrExist) }
