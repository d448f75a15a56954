// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/yourbase/iniconf/ini"
	"zombiezen.com/go/log"
)

func newDeleteCmd(a *app) *cobra.Command {
	var (
		output string
		force  bool
	)
	c := &cobra.Command{
		Use:     "delete [flags] section [key]",
		Aliases: []string{"rm"},
		Example: "$ initool delete -f app.ini cache ttl",
		Short:   "Remove a key or a section from the first file",
		Args:    cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			path, d, err := a.loadTarget(ctx)
			if err != nil {
				return err
			}
			if err := remove(d, args); err != nil {
				return err
			}
			log.Debugf(ctx, "Removed %q from %s", args, path)
			return a.save(ctx, d, path, output, force)
		},
	}
	c.Flags().StringVarP(&output, "output", "o", "", "write the result to `path` instead of the first file")
	c.Flags().BoolVar(&force, "force", false, "replace the --output file if it exists")
	return c
}

func remove(d *ini.Document, args []string) error {
	if len(args) == 1 {
		if !d.RemoveSection(args[0]) {
			return fmt.Errorf("section %q: %w", args[0], ini.ErrSectionNotFound)
		}
		return nil
	}
	s, err := d.Section(args[0])
	if err != nil {
		return err
	}
	if !s.Remove(args[1]) {
		return fmt.Errorf("section %q: key %q: %w", args[0], args[1], ini.ErrKeyNotFound)
	}
	return nil
}
