// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"fmt"
	"io"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"
	"github.com/yourbase/iniconf/ini"
	"gopkg.in/yaml.v3"
)

func newExportCmd(a *app) *cobra.Command {
	var format string
	c := &cobra.Command{
		Use:     "export [flags]",
		Example: "$ initool export -f app.ini --format toml > app.toml",
		Short:   "Convert the merged files to YAML or TOML",
		Long: `
The export command prints the merged sections as a two-level mapping of
section names to keys and values. All values are strings.

YAML output keeps the order of sections and keys. TOML output sorts them.
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dset, err := a.load(cmd.Context())
			if err != nil {
				return err
			}
			switch format {
			case "yaml", "yml":
				return exportYAML(cmd.OutOrStdout(), dset)
			case "toml":
				return exportTOML(cmd.OutOrStdout(), dset)
			default:
				return fmt.Errorf("unknown format %q (want yaml or toml)", format)
			}
		},
	}
	c.Flags().StringVar(&format, "format", "yaml", "output `format`: yaml or toml")
	return c
}

func exportYAML(w io.Writer, dset ini.DocumentSet) error {
	root := &yaml.Node{Kind: yaml.MappingNode}
	for _, name := range dset.SectionNames() {
		s, err := dset.Section(name)
		if err != nil {
			return err
		}
		m := &yaml.Node{Kind: yaml.MappingNode}
		for k, v := range s.All() {
			m.Content = append(m.Content, stringNode(k), stringNode(v))
		}
		root.Content = append(root.Content, stringNode(name), m)
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{root}}); err != nil {
		return fmt.Errorf("export yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("export yaml: %w", err)
	}
	return nil
}

func stringNode(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
}

func exportTOML(w io.Writer, dset ini.DocumentSet) error {
	tables := make(map[string]map[string]string)
	for _, name := range dset.SectionNames() {
		s, err := dset.Section(name)
		if err != nil {
			return err
		}
		table := make(map[string]string, s.Len())
		for k, v := range s.All() {
			table[k] = v
		}
		tables[name] = table
	}
	if err := toml.NewEncoder(w).Encode(tables); err != nil {
		return fmt.Errorf("export toml: %w", err)
	}
	return nil
}
