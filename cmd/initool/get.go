// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "get [flags] section [key]",
		Example: "$ initool get -f app.ini database host",
		Short:   "Print a value or a whole section",
		Long: `
The get command prints the value of a key, taken from the first file whose
section has the key. Without a key, it prints the section's merged keys.
Section names and keys are matched without regard to case.
`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			dset, err := a.load(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(args) == 2 {
				v, err := dset.Get(args[0], args[1])
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(out, v)
				return err
			}
			s, err := dset.Section(args[0])
			if err != nil {
				return err
			}
			syntax, err := a.syntax()
			if err != nil {
				return err
			}
			for k, v := range s.All() {
				if _, err := fmt.Fprintf(out, "%s %c %s\n", k, syntax.ValueSeparator, v); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
