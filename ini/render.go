// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package ini

import (
	"fmt"
	"io"
	"os"
	"time"
	"unicode/utf8"
)

// now is replaced in tests.
var now = time.Now

// BannerTimeFormat is the time layout used in the header comment written by
// WriteTo and WriteFile.
const BannerTimeFormat = "2006-01-02 15:04"

// MarshalText renders the document in INI format using its syntax. Each
// section is written as a header followed by its properties, one per line,
// and a blank line. Comments from a parsed file are not preserved.
func (d *Document) MarshalText() ([]byte, error) {
	if d == nil {
		return nil, nil
	}
	return d.appendText(nil), nil
}

// String returns the rendered document. It is the same as MarshalText.
func (d *Document) String() string {
	if d == nil {
		return ""
	}
	return string(d.appendText(nil))
}

func (d *Document) appendText(buf []byte) []byte {
	syntax := d.syn()
	for _, s := range d.sections {
		buf = utf8.AppendRune(buf, syntax.SectionStart)
		buf = append(buf, s.name...)
		buf = utf8.AppendRune(buf, syntax.SectionEnd)
		buf = append(buf, '\n')
		for k, v := range s.All() {
			buf = append(buf, k...)
			buf = append(buf, ' ')
			buf = utf8.AppendRune(buf, syntax.ValueSeparator)
			buf = append(buf, ' ')
			buf = append(buf, v...)
			buf = append(buf, '\n')
		}
		buf = append(buf, '\n')
	}
	return buf
}

func appendBanner(buf []byte, t time.Time) []byte {
	buf = append(buf, "#\n# AutoGenerated on "...)
	buf = t.AppendFormat(buf, BannerTimeFormat)
	buf = append(buf, "\n#\n"...)
	return buf
}

// WriteTo writes a generated header comment followed by the rendered document
// to w.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	buf := appendBanner(nil, now())
	if d != nil {
		buf = d.appendText(buf)
	}
	n, err := w.Write(buf)
	return int64(n), err
}

// WriteFile writes the document to the file at the given path in the same
// format as WriteTo. If the file exists and overwrite is false, WriteFile
// returns an error wrapping ErrFileExists and leaves the file untouched.
// Otherwise the file is created or truncated.
func (d *Document) WriteFile(path string, overwrite bool) (err error) {
	if path == "" {
		return fmt.Errorf("ini: write: empty file name: %w", ErrInvalidArgument)
	}
	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if !overwrite {
		flags = os.O_WRONLY | os.O_CREATE | os.O_EXCL
	}
	f, err := os.OpenFile(path, flags, 0o666)
	if isExist(err) {
		return pathError("write", path, ErrFileExists, err)
	}
	if err != nil {
		return fmt.Errorf("ini: write %s: %w", path, err)
	}
	defer func() {
		if closeErr := f.Close(); err == nil && closeErr != nil {
			err = fmt.Errorf("ini: write %s: %w", path, closeErr)
		}
	}()
	if _, err := d.WriteTo(f); err != nil {
		return fmt.Errorf("ini: write %s: %w", path, err)
	}
	return nil
}
