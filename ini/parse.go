// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package ini

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"math"
	"os"
	"strings"
	"unicode/utf8"
)

// ParseLines parses the lines of an INI file. A nil syntax is treated as
// DefaultSyntax().
//
// If the returned error is non-nil, the returned document is partially
// populated and its ErrorLog describes the failure. See the Syntax section in
// the package documentation for the format recognized by ParseLines.
func ParseLines(lines []string, syntax *Syntax) (*Document, error) {
	d := New(syntax)
	err := d.ReadLines(lines)
	return d, err
}

// Parse reads r until EOF and parses the result as an INI file.
// It has the same semantics as ParseLines.
func Parse(r io.Reader, syntax *Syntax) (*Document, error) {
	d := New(syntax)
	err := d.Read(r)
	return d, err
}

// ParseFile parses the INI file at the given path. It has the same semantics
// as ParseLines. If the file does not exist, ParseFile returns an error
// wrapping ErrFileNotFound.
func ParseFile(path string, syntax *Syntax) (*Document, error) {
	d := New(syntax)
	err := d.ReadFile(path)
	return d, err
}

// ReadLines replaces the document's sections with those parsed from lines,
// using the document's syntax. The error log is cleared first. Parsing stops
// at the first malformed line; the error is appended to the error log and
// returned wrapping ErrMalformedInput.
func (d *Document) ReadLines(lines []string) error {
	if err := d.readLines(lines); err != nil {
		return fmt.Errorf("ini: %w", err)
	}
	return nil
}

// Read replaces the document's sections with those parsed from r.
// Errors reading from r are recorded in the error log like parse errors.
// Lines may be of any length.
func (d *Document) Read(r io.Reader) error {
	if err := d.read(r); err != nil {
		return fmt.Errorf("ini: %w", err)
	}
	return nil
}

// ReadFile replaces the document's sections with those parsed from the file
// at the given path. If the file cannot be opened, the document's sections are
// left unchanged; a missing file is reported as ErrFileNotFound.
func (d *Document) ReadFile(path string) error {
	d.errorLog = nil
	if path == "" {
		return fmt.Errorf("ini: read: empty file name: %w", ErrInvalidArgument)
	}
	f, err := os.Open(path)
	if isNotExist(err) {
		return pathError("read", path, ErrFileNotFound, err)
	}
	if err != nil {
		return fmt.Errorf("ini: read %s: %w", path, err)
	}
	defer f.Close() // Close errors irrelevant for a read-only file.
	if err := d.read(f); err != nil {
		return fmt.Errorf("ini: read %s: %w", path, err)
	}
	return nil
}

// UnmarshalText parses the INI data with the document's syntax, replacing
// any sections in d.
func (d *Document) UnmarshalText(data []byte) error {
	return d.Read(bytes.NewReader(data))
}

func (d *Document) read(r io.Reader) error {
	var lines []string
	s := bufio.NewScanner(r)
	s.Buffer(nil, math.MaxInt)
	for s.Scan() {
		lines = append(lines, s.Text())
	}
	if err := s.Err(); err != nil {
		d.reset()
		return d.fail(fmt.Errorf("line %d: %w", len(lines)+1, err))
	}
	return d.readLines(lines)
}

func (d *Document) readLines(lines []string) error {
	d.reset()
	p := &parser{syntax: d.syn(), doc: d}
	for i, line := range lines {
		if i == 0 {
			line = strings.TrimPrefix(line, "\ufeff") // byte order mark
		}
		if err := p.parseLine(i+1, line); err != nil {
			return d.fail(err)
		}
	}
	p.commit()
	return nil
}

func (d *Document) fail(err error) error {
	d.errorLog = append(d.errorLog, err.Error())
	return err
}

func malformed(lineno int, msg string) error {
	return fmt.Errorf("line %d: %w: %s", lineno, ErrMalformedInput, msg)
}

// parser holds the state of a single read.
type parser struct {
	syntax *Syntax
	doc    *Document
	curr   *Section // open section, nil before the first header
}

func (p *parser) parseLine(lineno int, line string) error {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}
	first, size := utf8.DecodeRuneInString(line)
	if p.syntax.isComment(first) {
		return nil
	}
	if first == p.syntax.SectionStart {
		p.commit()
		name := line[size:]
		if i := strings.LastIndex(name, string(p.syntax.SectionEnd)); i >= 0 {
			name = name[:i]
		}
		name = normalize(name)
		if name == "" {
			return malformed(lineno, "section name missing")
		}
		p.curr = &Section{name: name}
		return nil
	}
	if p.curr == nil {
		// Properties outside any section are dropped.
		return nil
	}
	key, value := line, line
	sep := string(p.syntax.ValueSeparator)
	if i := strings.Index(line, sep); i >= 0 {
		key, value = line[:i], line[i+len(sep):]
	}
	if normalize(key) == "" {
		return malformed(lineno, "key missing")
	}
	p.curr.Set(key, value)
	return nil
}

// commit adds the open section to the document, replacing any earlier
// section with the same name.
func (p *parser) commit() {
	if p.curr == nil {
		return
	}
	p.doc.put(p.curr)
	p.curr = nil
}
