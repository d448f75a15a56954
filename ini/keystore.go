// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package ini

import (
	"fmt"
	"iter"
	"strings"
)

// A KeyStore is an ordered mapping of keys to values. Keys are normalized on
// every operation; values are trimmed when stored. The zero value is an empty
// store.
//
// A KeyStore is not safe for concurrent use if any goroutine modifies it.
type KeyStore struct {
	keys   []string // insertion order
	values map[string]string
}

// Get returns the value for the given key. It returns an error wrapping
// ErrKeyNotFound if the key is not present.
func (ks *KeyStore) Get(key string) (string, error) {
	v, ok := ks.Lookup(key)
	if !ok {
		return "", fmt.Errorf("ini: key %q: %w", normalize(key), ErrKeyNotFound)
	}
	return v, nil
}

// Lookup returns the value for the given key and whether it was present.
func (ks *KeyStore) Lookup(key string) (_ string, ok bool) {
	if ks == nil {
		return "", false
	}
	v, ok := ks.values[normalize(key)]
	return v, ok
}

// Set stores the trimmed value under the given key, replacing any existing
// value. A new key is appended after all existing keys. Set panics if the key
// is empty after normalization.
func (ks *KeyStore) Set(key, value string) {
	k := normalize(key)
	if k == "" {
		panic("ini: KeyStore.Set empty key")
	}
	if ks.values == nil {
		ks.values = make(map[string]string)
	}
	if _, exists := ks.values[k]; !exists {
		ks.keys = append(ks.keys, k)
	}
	ks.values[k] = strings.TrimSpace(value)
}

// Contains reports whether the key is present.
func (ks *KeyStore) Contains(key string) bool {
	_, ok := ks.Lookup(key)
	return ok
}

// Remove deletes the key and reports whether it was present.
func (ks *KeyStore) Remove(key string) bool {
	if ks == nil {
		return false
	}
	k := normalize(key)
	if _, ok := ks.values[k]; !ok {
		return false
	}
	delete(ks.values, k)
	for i, kk := range ks.keys {
		if kk == k {
			copy(ks.keys[i:], ks.keys[i+1:])
			ks.keys[len(ks.keys)-1] = ""
			ks.keys = ks.keys[:len(ks.keys)-1]
			break
		}
	}
	return true
}

// Keys returns a copy of the normalized keys in insertion order.
func (ks *KeyStore) Keys() []string {
	if ks == nil || len(ks.keys) == 0 {
		return nil
	}
	return append([]string(nil), ks.keys...)
}

// Values returns a copy of the values in key insertion order.
func (ks *KeyStore) Values() []string {
	if ks == nil || len(ks.keys) == 0 {
		return nil
	}
	values := make([]string, 0, len(ks.keys))
	for _, k := range ks.keys {
		values = append(values, ks.values[k])
	}
	return values
}

// Len returns the number of keys.
func (ks *KeyStore) Len() int {
	if ks == nil {
		return 0
	}
	return len(ks.keys)
}

// All returns an iterator over the key/value pairs in insertion order.
// Modifying the store during iteration has unspecified results.
func (ks *KeyStore) All() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		if ks == nil {
			return
		}
		for _, k := range ks.keys {
			if !yield(k, ks.values[k]) {
				return
			}
		}
	}
}

// A Section is a named KeyStore. Sections are created by parsing or by
// Document.AddSection.
type Section struct {
	name string
	KeyStore
}

// Name returns the normalized name of the section.
func (s *Section) Name() string {
	if s == nil {
		return ""
	}
	return s.name
}

// Get returns the value for the given key. It returns an error wrapping
// ErrKeyNotFound if the key is not present.
func (s *Section) Get(key string) (string, error) {
	if s == nil {
		return "", fmt.Errorf("ini: key %q: %w", normalize(key), ErrKeyNotFound)
	}
	v, ok := s.KeyStore.Lookup(key)
	if !ok {
		return "", fmt.Errorf("ini: section %q: key %q: %w", s.name, normalize(key), ErrKeyNotFound)
	}
	return v, nil
}
