// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

// initool inspects and edits INI files.
package main

import (
	"context"
	"fmt"
	"os"
)

func main() {
	a := &app{logOutput: os.Stderr}
	if err := newRootCmd(a).ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "initool: %v\n", err)
		os.Exit(1)
	}
}
