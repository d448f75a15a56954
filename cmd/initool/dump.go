// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/yourbase/iniconf/ini"
)

func newDumpCmd(a *app) *cobra.Command {
	var banner bool
	c := &cobra.Command{
		Use:     "dump [flags]",
		Example: "$ initool dump -f local.ini -f /etc/app.ini",
		Short:   "Print the merged contents of the files",
		Long: `
The dump command prints every section of every file, merged so that each key
shows the value that a lookup would return. Section headers are colored when
writing to a terminal.

With --banner, the first file is printed exactly as initool would save it,
including the generated header comment.
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if banner {
				_, d, err := a.loadTarget(cmd.Context())
				if err != nil {
					return err
				}
				_, err = d.WriteTo(cmd.OutOrStdout())
				return err
			}
			dset, err := a.load(cmd.Context())
			if err != nil {
				return err
			}
			syntax, err := a.syntax()
			if err != nil {
				return err
			}
			return dump(cmd.OutOrStdout(), dset, syntax, a.noColor)
		},
	}
	c.Flags().BoolVar(&banner, "banner", false, "print the first file in saved form")
	return c
}

func dump(w io.Writer, dset ini.DocumentSet, syntax *ini.Syntax, noColor bool) error {
	header := color.New(color.FgHiBlue, color.Bold)
	key := color.New(color.FgHiRed)
	if noColor {
		header.DisableColor()
		key.DisableColor()
	}
	for i, name := range dset.SectionNames() {
		s, err := dset.Section(name)
		if err != nil {
			return err
		}
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if _, err := header.Fprintf(w, "%c%s%c\n", syntax.SectionStart, s.Name(), syntax.SectionEnd); err != nil {
			return err
		}
		for k, v := range s.All() {
			if _, err := key.Fprint(w, k); err != nil {
				return err
			}
			if _, err := fmt.Fprintf(w, " %c %s\n", syntax.ValueSeparator, v); err != nil {
				return err
			}
		}
	}
	return nil
}
