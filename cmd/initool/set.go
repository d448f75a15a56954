// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/yourbase/iniconf/ini"
	"zombiezen.com/go/log"
)

func newSetCmd(a *app) *cobra.Command {
	var (
		output string
		force  bool
		typ    string
	)
	c := &cobra.Command{
		Use:     "set [flags] section key value",
		Example: "$ initool set -f app.ini --type int server port 8080",
		Short:   "Set a value in the first file",
		Long: `
The set command stores a value in the first file named with --file and saves
it in place, or to the path given with --output. The section must already
exist unless --dynamic is given.

With --type, the value is checked and normalized before it is stored. Types
are bool, int, float, duration, time (RFC 3339) and string.
`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			path, d, err := a.loadTarget(ctx)
			if err != nil {
				return err
			}
			stored, err := setTyped(d, typ, args[0], args[1], args[2])
			if err != nil {
				return err
			}
			log.Debugf(ctx, "Set [%s] %s to %q", args[0], args[1], stored)
			return a.save(ctx, d, path, output, force)
		},
	}
	c.Flags().StringVarP(&output, "output", "o", "", "write the result to `path` instead of the first file")
	c.Flags().BoolVar(&force, "force", false, "replace the --output file if it exists")
	c.Flags().StringVarP(&typ, "type", "t", "", "check the value against a `type`")
	return c
}

// setTyped parses raw as the named type and stores it in d.
// It returns the text that was stored.
func setTyped(d *ini.Document, typ, section, key, raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	switch typ {
	case "", "string":
		v, err := ini.Set(d, section, key, raw)
		return v, err
	case "bool":
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return "", fmt.Errorf("value %q: %w", raw, err)
		}
		v, err := ini.Set(d, section, key, b)
		return ini.FormatValue(v), err
	case "int":
		i, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return "", fmt.Errorf("value %q: %w", raw, err)
		}
		v, err := ini.Set(d, section, key, i)
		return ini.FormatValue(v), err
	case "float":
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return "", fmt.Errorf("value %q: %w", raw, err)
		}
		v, err := ini.Set(d, section, key, f)
		return ini.FormatValue(v), err
	case "duration":
		dur, err := time.ParseDuration(raw)
		if err != nil {
			return "", fmt.Errorf("value %q: %w", raw, err)
		}
		v, err := ini.Set(d, section, key, dur)
		return ini.FormatValue(v), err
	case "time":
		t, err := time.Parse(time.RFC3339Nano, raw)
		if err != nil {
			return "", fmt.Errorf("value %q: %w", raw, err)
		}
		v, err := ini.Set(d, section, key, t)
		return ini.FormatValue(v), err
	default:
		return "", fmt.Errorf("unknown type %q", typ)
	}
}
