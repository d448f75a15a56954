// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package ini

import (
	"errors"
	"fmt"
)

// DocumentSet is a list of documents to obtain configuration from in
// descending order of precedence. Nil elements are treated as empty
// documents.
type DocumentSet []*Document

// ParseFiles parses the files at the given paths and returns a DocumentSet.
// If the returned error is nil, the returned set's length will be the same as
// the number of arguments. ParseFiles will stop on the first error, but
// ignores missing file errors, instead filling the corresponding element of
// the set with a nil *Document. If a file fails to parse, the partially
// populated document is the last element of the returned set and its
// ErrorLog describes the failure.
func ParseFiles(syntax *Syntax, paths ...string) (DocumentSet, error) {
	dset := make(DocumentSet, 0, len(paths))
	for _, p := range paths {
		d, err := ParseFile(p, syntax)
		if errors.Is(err, ErrFileNotFound) {
			dset = append(dset, nil)
			continue
		}
		if err != nil {
			return append(dset, d), fmt.Errorf("parse ini files: %w", err)
		}
		dset = append(dset, d)
	}
	return dset, nil
}

// Lookup returns the value of the key from the first document whose section
// has it.
func (dset DocumentSet) Lookup(section, key string) (_ string, ok bool) {
	for _, d := range dset {
		if s := d.lookup(section); s != nil {
			if v, ok := s.Lookup(key); ok {
				return v, true
			}
		}
	}
	return "", false
}

// Get returns the value of the key from the first document whose section has
// it. If no document has the section, the error wraps ErrSectionNotFound;
// if some do but none has the key, it wraps ErrKeyNotFound.
func (dset DocumentSet) Get(section, key string) (string, error) {
	if v, ok := dset.Lookup(section, key); ok {
		return v, nil
	}
	for _, d := range dset {
		if d.HasSection(section) {
			return "", fmt.Errorf("ini: section %q: key %q: %w", normalize(section), normalize(key), ErrKeyNotFound)
		}
	}
	return "", fmt.Errorf("ini: section %q: %w", normalize(section), ErrSectionNotFound)
}

// SectionNames returns the names of sections in any document, in order of
// first appearance starting from the highest precedence document.
func (dset DocumentSet) SectionNames() []string {
	var names []string
	seen := make(map[string]struct{})
	for _, d := range dset {
		for _, name := range d.SectionNames() {
			if _, dup := seen[name]; dup {
				continue
			}
			seen[name] = struct{}{}
			names = append(names, name)
		}
	}
	return names
}

// Section returns a merged copy of the named section, where each key takes
// its value from the highest precedence document that has it. The error
// wraps ErrSectionNotFound if no document has the section.
func (dset DocumentSet) Section(name string) (*Section, error) {
	var merged *Section
	for i := len(dset) - 1; i >= 0; i-- {
		s := dset[i].lookup(name)
		if s == nil {
			continue
		}
		if merged == nil {
			merged = &Section{name: s.name}
		}
		for k, v := range s.All() {
			merged.Set(k, v)
		}
	}
	if merged == nil {
		return nil, fmt.Errorf("ini: section %q: %w", normalize(name), ErrSectionNotFound)
	}
	return merged, nil
}
