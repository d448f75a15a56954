// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

/*
Package ini provides a parser and serializer for INI-style configuration text.
See https://en.wikipedia.org/wiki/INI_file.

This package is designed for load-query-modify-write scenarios: text is parsed
into a Document of named Sections, each holding an ordered set of key/value
pairs. A Document can be mutated in memory and rendered back to text or
written to a file with a generated header comment.

Syntax

An INI file is Unicode text encoded in UTF-8, one entry per line. Lines end in
"\n" or "\r\n". Every line is trimmed of surrounding whitespace, then:

	- empty lines are skipped;
	- lines starting with a comment token ('#' or ';' by default) are skipped;
	- lines starting with the section start token ('[' by default) open a new
	  section;
	- any other line is a property of the most recently opened section.

A section header consists of the start token, the section name and an optional
end token (']' by default):

	[section]
	key1 = value1
	key2 = value2

The name is the text between the start token and the last end token on the
line. If the line has no end token, the name is the rest of the line. A header
with an empty name is an error.

A property is split at the first value separator ('=' by default). The text to
the left is the key, the text to the right is the value. A line without a
separator is a flag: its key and value are both the whole line.

	[features]
	color = auto
	experimental

Properties encountered before any section header are discarded. Inline
comments, quoting, multi-line values and nested sections are not supported.

The tokens can be changed with a Syntax:

	syntax := ini.DefaultSyntax()
	syntax.SectionStart = '{'
	syntax.SectionEnd = '}'
	syntax.ValueSeparator = ':'
	doc, err := ini.Parse(r, syntax)

Normalization

Section names and keys are identifiers: they are trimmed of surrounding
whitespace and case-folded before being stored or looked up, so "Database",
" database " and "DATABASE" name the same section. Values are trimmed when
they are stored and returned unaltered.

Repeated names

If a section name is declared more than once, the last declaration wins: its
properties replace those of the earlier declaration and the section keeps the
position of its first declaration. If a key is repeated within a section, the
last value wins.

Output

Rendering emits every section in order as a header followed by its properties
written as "key = value", with a blank line after each section. Comments and
original spacing are not preserved. Keys containing the value separator or
values containing line breaks do not survive a round trip; avoiding them is
the caller's responsibility.
*/
package ini
