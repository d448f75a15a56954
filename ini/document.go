// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package ini

import (
	"fmt"
	"iter"
)

// A Document is an ordered collection of sections. The zero value is an empty
// document using DefaultSyntax.
//
// A Document may be read by multiple concurrent goroutines, but must not be
// modified concurrently with any other access.
type Document struct {
	syntax   *Syntax
	sections []*Section // declaration order
	index    map[string]*Section
	errorLog []string
}

// New returns an empty document that parses and renders with the given
// syntax. The syntax is copied, so later changes to it have no effect on the
// document. A nil syntax is treated as DefaultSyntax().
func New(syntax *Syntax) *Document {
	return &Document{syntax: syntax.clone()}
}

// Syntax returns a copy of the document's syntax.
func (d *Document) Syntax() *Syntax {
	if d == nil {
		return DefaultSyntax()
	}
	return d.syntax.clone()
}

// defaultSyntax is used by zero-value documents. It must not be modified.
var defaultSyntax = DefaultSyntax()

func (d *Document) syn() *Syntax {
	if d == nil || d.syntax == nil {
		return defaultSyntax
	}
	return d.syntax
}

// ErrorLog returns the messages recorded by the most recent read. The log is
// cleared at the start of every read.
func (d *Document) ErrorLog() []string {
	if d == nil || len(d.errorLog) == 0 {
		return nil
	}
	return append([]string(nil), d.errorLog...)
}

// Section returns the section with the given name. It returns an error
// wrapping ErrSectionNotFound if there is no such section.
func (d *Document) Section(name string) (*Section, error) {
	s := d.lookup(name)
	if s == nil {
		return nil, fmt.Errorf("ini: section %q: %w", normalize(name), ErrSectionNotFound)
	}
	return s, nil
}

func (d *Document) lookup(name string) *Section {
	if d == nil {
		return nil
	}
	return d.index[normalize(name)]
}

// HasSection reports whether the document has a section with the given name.
func (d *Document) HasSection(name string) bool {
	return d.lookup(name) != nil
}

// Get returns the value of a key in a section. The error wraps
// ErrSectionNotFound or ErrKeyNotFound if either is missing.
func (d *Document) Get(section, key string) (string, error) {
	s, err := d.Section(section)
	if err != nil {
		return "", err
	}
	return s.Get(key)
}

// AddSection returns the section with the given name, creating an empty one
// at the end of the document if it does not exist. It returns an error
// wrapping ErrInvalidArgument if the name is empty after normalization.
func (d *Document) AddSection(name string) (*Section, error) {
	n := normalize(name)
	if n == "" {
		return nil, fmt.Errorf("ini: add section: empty name: %w", ErrInvalidArgument)
	}
	if s := d.index[n]; s != nil {
		return s, nil
	}
	s := &Section{name: n}
	d.put(s)
	return s, nil
}

// put stores s under its name. A section with the same name is replaced in
// place.
func (d *Document) put(s *Section) {
	if d.index == nil {
		d.index = make(map[string]*Section)
	}
	if old := d.index[s.name]; old != nil {
		for i := range d.sections {
			if d.sections[i] == old {
				d.sections[i] = s
				break
			}
		}
	} else {
		d.sections = append(d.sections, s)
	}
	d.index[s.name] = s
}

// RemoveSection deletes the section with the given name and reports whether
// it was present.
func (d *Document) RemoveSection(name string) bool {
	if d == nil {
		return false
	}
	n := normalize(name)
	s := d.index[n]
	if s == nil {
		return false
	}
	delete(d.index, n)
	for i := range d.sections {
		if d.sections[i] == s {
			copy(d.sections[i:], d.sections[i+1:])
			// Zero out truncated element for garbage collection.
			d.sections[len(d.sections)-1] = nil
			d.sections = d.sections[:len(d.sections)-1]
			break
		}
	}
	return true
}

// SetKey stores a value in a section. If the section does not exist, SetKey
// creates it when the document's syntax allows dynamic sections and otherwise
// returns an error wrapping ErrSectionNotFound. Missing keys are always
// created. Empty section names or keys are reported as ErrInvalidArgument.
func (d *Document) SetKey(section, key, value string) error {
	s, err := d.sectionForSet(section, key, ErrSectionNotFound)
	if err != nil {
		return err
	}
	s.Set(key, value)
	return nil
}

// sectionForSet resolves the target section of a write, returning notFound
// wrapped if the section is missing and cannot be created.
func (d *Document) sectionForSet(section, key string, notFound error) (*Section, error) {
	if normalize(section) == "" {
		return nil, fmt.Errorf("ini: set: empty section name: %w", ErrInvalidArgument)
	}
	if normalize(key) == "" {
		return nil, fmt.Errorf("ini: set [%s]: empty key: %w", normalize(section), ErrInvalidArgument)
	}
	if s := d.lookup(section); s != nil {
		return s, nil
	}
	if !d.syn().AllowDynamicSections {
		return nil, fmt.Errorf("ini: set [%s] %s: %w", normalize(section), normalize(key), notFound)
	}
	return d.AddSection(section)
}

// Len returns the number of sections.
func (d *Document) Len() int {
	if d == nil {
		return 0
	}
	return len(d.sections)
}

// Sections returns the document's sections in order. The slice is a copy,
// but the sections are shared with the document.
func (d *Document) Sections() []*Section {
	if d == nil || len(d.sections) == 0 {
		return nil
	}
	return append([]*Section(nil), d.sections...)
}

// SectionNames returns the normalized section names in order.
func (d *Document) SectionNames() []string {
	if d == nil || len(d.sections) == 0 {
		return nil
	}
	names := make([]string, 0, len(d.sections))
	for _, s := range d.sections {
		names = append(names, s.name)
	}
	return names
}

// All returns an iterator over the document's sections in order.
// Adding or removing sections during iteration has unspecified results.
func (d *Document) All() iter.Seq[*Section] {
	return func(yield func(*Section) bool) {
		if d == nil {
			return
		}
		for _, s := range d.sections {
			if !yield(s) {
				return
			}
		}
	}
}

// reset discards all sections and the error log, keeping the syntax.
func (d *Document) reset() {
	d.sections = nil
	d.index = nil
	d.errorLog = nil
}
