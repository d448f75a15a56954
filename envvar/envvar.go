// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

// Package envvar provides functions to read environment variables for
// configuration.
package envvar

import (
	"os"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Get returns the value of the given environment variable. If it is empty or
// unset, it returns the default value.
func Get(key string, defaultValue string) string {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue
	}
	return v
}

// Bool returns the value of a boolean environment variable. If it is unset or
// not one of the strings 1, t, T, TRUE, true, or True, then it returns false.
func Bool(key string) bool {
	v := os.Getenv(key)
	if v == "" {
		return false
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false
	}
	return b
}

// Rune returns the single character held by the given environment variable.
// If it is unset, empty, or longer than one character after trimming
// whitespace, it returns the default value.
func Rune(key string, defaultValue rune) rune {
	v := strings.TrimSpace(os.Getenv(key))
	if utf8.RuneCountInString(v) != 1 {
		return defaultValue
	}
	r, _ := utf8.DecodeRuneInString(v)
	return r
}

// List returns the comma-separated values of the given environment variable
// with surrounding whitespace removed and empty elements dropped. If the
// variable is empty or unset, it returns the default value.
func List(key string, defaultValue []string) []string {
	var list []string
	for _, elem := range strings.Split(os.Getenv(key), ",") {
		if elem = strings.TrimSpace(elem); elem != "" {
			list = append(list, elem)
		}
	}
	if len(list) == 0 {
		return defaultValue
	}
	return list
}
