// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/spf13/cobra"
	"github.com/yourbase/iniconf/envvar"
	"github.com/yourbase/iniconf/ini"
	"zombiezen.com/go/log"
)

// app holds the options shared by every subcommand.
type app struct {
	files        []string
	comment      string
	separator    string
	sectionStart string
	sectionEnd   string
	dynamic      bool
	verbose      bool
	noColor      bool

	// logOutput receives log messages. If nil, the default logger is left
	// alone and messages go wherever the command's Context sends them.
	logOutput io.Writer
}

func newRootCmd(a *app) *cobra.Command {
	c := &cobra.Command{
		Use:   "initool",
		Short: "Inspect and edit INI files",
		Long: `
initool reads INI files and prints, queries, edits or converts them.

Files named with --file are consulted in order: when reading, a key is taken
from the first file that has it. Commands that modify a file only ever write
the first one.
`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if a.logOutput != nil {
				level := log.Info
				if a.verbose {
					level = log.Debug
				}
				log.SetDefault(&log.LevelFilter{
					Min:    level,
					Output: &textLogger{w: a.logOutput},
				})
			}
		},
	}

	flags := c.PersistentFlags()
	flags.StringArrayVarP(&a.files, "file", "f", envvar.List("INITOOL_FILE", nil), "INI `path` to read (repeatable, highest precedence first)")
	flags.StringVar(&a.comment, "comment", envvar.Get("INITOOL_COMMENT", "#;"), "characters that start a comment line")
	flags.StringVar(&a.separator, "separator", string(envvar.Rune("INITOOL_SEPARATOR", '=')), "character between a key and its value")
	flags.StringVar(&a.sectionStart, "section-start", string(envvar.Rune("INITOOL_SECTION_START", '[')), "character that opens a section header")
	flags.StringVar(&a.sectionEnd, "section-end", string(envvar.Rune("INITOOL_SECTION_END", ']')), "character that closes a section header")
	flags.BoolVar(&a.dynamic, "dynamic", false, "create missing sections when setting keys")
	flags.BoolVarP(&a.verbose, "verbose", "v", envvar.Bool("INITOOL_VERBOSE"), "log debugging information")
	flags.BoolVar(&a.noColor, "no-color", false, "disable colored output")

	c.AddCommand(
		newDumpCmd(a),
		newGetCmd(a),
		newSetCmd(a),
		newDeleteCmd(a),
		newSectionsCmd(a),
		newExportCmd(a),
		newVersionCmd(),
	)
	return c
}

// syntax builds the ini.Syntax described by the flags.
func (a *app) syntax() (*ini.Syntax, error) {
	syntax := ini.DefaultSyntax()
	syntax.AllowDynamicSections = a.dynamic
	syntax.CommentTokens = []rune(a.comment)
	if len(syntax.CommentTokens) == 0 {
		return nil, errors.New("--comment: must have at least one character")
	}
	for _, tok := range []struct {
		flag  string
		value string
		dst   *rune
	}{
		{"--separator", a.separator, &syntax.ValueSeparator},
		{"--section-start", a.sectionStart, &syntax.SectionStart},
		{"--section-end", a.sectionEnd, &syntax.SectionEnd},
	} {
		if utf8.RuneCountInString(tok.value) != 1 {
			return nil, fmt.Errorf("%s: %q is not a single character", tok.flag, tok.value)
		}
		*tok.dst, _ = utf8.DecodeRuneInString(tok.value)
	}
	return syntax, nil
}

// load parses every file named on the command line.
// Missing files are skipped.
func (a *app) load(ctx context.Context) (ini.DocumentSet, error) {
	if len(a.files) == 0 {
		return nil, errors.New("no files given (use --file or INITOOL_FILE)")
	}
	syntax, err := a.syntax()
	if err != nil {
		return nil, err
	}
	dset, err := ini.ParseFiles(syntax, a.files...)
	if err != nil {
		if n := len(dset); n > 0 {
			for _, msg := range dset[n-1].ErrorLog() {
				log.Errorf(ctx, "%s: %s", a.files[n-1], msg)
			}
		}
		return nil, err
	}
	for i, d := range dset {
		if d == nil {
			log.Warnf(ctx, "Skipping %s: file not found", a.files[i])
			continue
		}
		log.Debugf(ctx, "Loaded %s (%d sections)", a.files[i], d.Len())
	}
	return dset, nil
}

// loadTarget parses the first file named on the command line for
// modification. A missing file yields an empty document.
func (a *app) loadTarget(ctx context.Context) (string, *ini.Document, error) {
	if len(a.files) == 0 {
		return "", nil, errors.New("no files given (use --file or INITOOL_FILE)")
	}
	syntax, err := a.syntax()
	if err != nil {
		return "", nil, err
	}
	path := a.files[0]
	d, err := ini.ParseFile(path, syntax)
	if errors.Is(err, ini.ErrFileNotFound) {
		log.Infof(ctx, "%s does not exist; starting from an empty file", path)
		return path, ini.New(syntax), nil
	}
	if err != nil {
		for _, msg := range d.ErrorLog() {
			log.Errorf(ctx, "%s: %s", path, msg)
		}
		return "", nil, err
	}
	log.Debugf(ctx, "Loaded %s (%d sections)", path, d.Len())
	return path, d, nil
}

// save writes d to path, or to output if it is not empty.
func (a *app) save(ctx context.Context, d *ini.Document, path, output string, force bool) error {
	overwrite := true
	if output != "" {
		path, overwrite = output, force
	}
	if err := d.WriteFile(path, overwrite); err != nil {
		if errors.Is(err, ini.ErrFileExists) {
			return fmt.Errorf("%w (use --force to replace it)", err)
		}
		return err
	}
	log.Debugf(ctx, "Wrote %s", path)
	return nil
}
