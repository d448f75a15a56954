// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package ini

import (
	"strings"

	"golang.org/x/text/cases"
)

// Syntax describes the lexical tokens of an INI file. Nil *Syntax arguments
// are treated as DefaultSyntax().
//
// The tokens must be distinct from each other and from characters used in
// section names and keys. Syntax does not validate this: a conflicting set of
// tokens produces unspecified results.
type Syntax struct {
	// CommentTokens are the characters that start a comment line.
	CommentTokens []rune

	// ValueSeparator separates a key from its value.
	ValueSeparator rune

	// SectionStart and SectionEnd delimit a section header.
	SectionStart rune
	SectionEnd   rune

	// AllowDynamicSections permits Document.SetKey and Set to create missing
	// sections instead of failing.
	AllowDynamicSections bool
}

// DefaultSyntax returns a new Syntax with '#' and ';' comments, '=' as the
// value separator and sections enclosed in square brackets.
func DefaultSyntax() *Syntax {
	return &Syntax{
		CommentTokens:  []rune{'#', ';'},
		ValueSeparator: '=',
		SectionStart:   '[',
		SectionEnd:     ']',
	}
}

// clone returns a deep copy of syntax, or the default syntax if syntax is nil.
func (syntax *Syntax) clone() *Syntax {
	if syntax == nil {
		return DefaultSyntax()
	}
	s := *syntax
	s.CommentTokens = append([]rune(nil), syntax.CommentTokens...)
	return &s
}

func (syntax *Syntax) isComment(c rune) bool {
	for _, tok := range syntax.CommentTokens {
		if c == tok {
			return true
		}
	}
	return false
}

// normalize converts a section name or key into its lookup form.
func normalize(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	// Casers hold state, so one is created per call.
	return cases.Fold().String(name)
}
