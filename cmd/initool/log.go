// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"context"
	"fmt"
	"io"
	"sync"

	"zombiezen.com/go/log"
)

// textLogger writes one line per entry, prefixed with the program name.
type textLogger struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *textLogger) Log(ctx context.Context, entry log.Entry) {
	var prefix string
	switch {
	case entry.Level >= log.Error:
		prefix = "error: "
	case entry.Level >= log.Warn:
		prefix = "warning: "
	case entry.Level < log.Info:
		prefix = "debug: "
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.w, "initool: %s%s\n", prefix, entry.Msg)
}

func (l *textLogger) LogEnabled(entry log.Entry) bool {
	return true
}
