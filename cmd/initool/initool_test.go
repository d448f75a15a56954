// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/BurntSushi/toml"
	"github.com/google/go-cmp/cmp"
	"github.com/yourbase/iniconf/ini"
	"gopkg.in/yaml.v3"
	"zombiezen.com/go/log"
	"zombiezen.com/go/log/testlog"
)

func TestMain(m *testing.M) {
	testlog.Main(nil)
	os.Exit(m.Run())
}

// runTool runs initool with the given arguments and returns its output.
func runTool(t *testing.T, args ...string) (string, error) {
	t.Helper()
	ctx := testlog.WithTB(context.Background(), t)
	c := newRootCmd(new(app))
	out := new(bytes.Buffer)
	c.SetOut(out)
	c.SetErr(out)
	c.SetArgs(args)
	err := c.ExecuteContext(ctx)
	return out.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o666); err != nil {
		t.Fatal(err)
	}
	return path
}

func readDoc(t *testing.T, path string) *ini.Document {
	t.Helper()
	d, err := ini.ParseFile(path, nil)
	if err != nil {
		t.Fatal(err)
	}
	return d
}

// layeredFiles returns a local file that overrides a global one.
func layeredFiles(t *testing.T) (local, global string) {
	t.Helper()
	dir := t.TempDir()
	local = writeFile(t, dir, "local.ini", "[Server]\nPort = 8080\n")
	global = writeFile(t, dir, "global.ini", "[server]\nport = 80\nhost = example.com\n[client]\nretries = 3\n")
	return local, global
}

func TestGet(t *testing.T) {
	local, global := layeredFiles(t)
	missing := filepath.Join(filepath.Dir(local), "missing.ini")
	tests := []struct {
		name    string
		args    []string
		want    string
		wantErr error
	}{
		{
			name: "Override",
			args: []string{"get", "server", "port"},
			want: "8080\n",
		},
		{
			name: "Fallback",
			args: []string{"get", "SERVER", "Host"},
			want: "example.com\n",
		},
		{
			name: "Section",
			args: []string{"get", "server"},
			want: "port = 8080\nhost = example.com\n",
		},
		{
			name:    "MissingKey",
			args:    []string{"get", "client", "timeout"},
			wantErr: ini.ErrKeyNotFound,
		},
		{
			name:    "MissingSection",
			args:    []string{"get", "proxy", "host"},
			wantErr: ini.ErrSectionNotFound,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			args := append(test.args, "-f", local, "-f", missing, "-f", global)
			got, err := runTool(t, args...)
			if test.wantErr != nil {
				if !errors.Is(err, test.wantErr) {
					t.Errorf("initool %q error = %v; want %v", args, err, test.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("initool %q: %v", args, err)
			}
			if got != test.want {
				t.Errorf("initool %q output = %q; want %q", args, got, test.want)
			}
		})
	}
}

func TestSections(t *testing.T) {
	local, global := layeredFiles(t)
	got, err := runTool(t, "sections", "-f", local, "-f", global)
	if err != nil {
		t.Fatal(err)
	}
	if want := "server\nclient\n"; got != want {
		t.Errorf("output = %q; want %q", got, want)
	}
}

func TestDump(t *testing.T) {
	local, global := layeredFiles(t)
	got, err := runTool(t, "dump", "--no-color", "-f", local, "-f", global)
	if err != nil {
		t.Fatal(err)
	}
	const want = "[server]\nport = 8080\nhost = example.com\n\n[client]\nretries = 3\n"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("output (-want +got):\n%s", diff)
	}
}

func TestDumpBanner(t *testing.T) {
	local, global := layeredFiles(t)
	got, err := runTool(t, "dump", "--banner", "-f", local, "-f", global)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(got, "#\n# AutoGenerated on ") {
		t.Errorf("output = %q; want banner first", got)
	}
	if !strings.HasSuffix(got, "#\n[server]\nport = 8080\n\n") {
		t.Errorf("output = %q; want only the first file after the banner", got)
	}
}

// failingWriter fails only its nth write.
type failingWriter struct {
	n      int
	writes int
}

func (w *failingWriter) Write(p []byte) (int, error) {
	w.writes++
	if w.writes == w.n {
		return 0, errors.New("write failed")
	}
	return len(p), nil
}

func TestDumpWriteError(t *testing.T) {
	d, err := ini.ParseLines([]string{"[a]", "k = v"}, nil)
	if err != nil {
		t.Fatal(err)
	}
	// Writes are the header, the key, then the rest of the property line.
	for n := 1; n <= 3; n++ {
		err := dump(&failingWriter{n: n}, ini.DocumentSet{d}, ini.DefaultSyntax(), true)
		if err == nil {
			t.Errorf("dump with write %d failing did not return an error", n)
		}
	}
}

func TestSyntaxFlags(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "braces.ini", "% comment\n{Main}\nname: value = with equals\n")
	args := []string{
		"-f", path,
		"--comment", "%",
		"--separator", ":",
		"--section-start", "{",
		"--section-end", "}",
	}
	got, err := runTool(t, append([]string{"get", "main", "name"}, args...)...)
	if err != nil {
		t.Fatal(err)
	}
	if want := "value = with equals\n"; got != want {
		t.Errorf("get output = %q; want %q", got, want)
	}
	got, err = runTool(t, append([]string{"dump", "--no-color"}, args...)...)
	if err != nil {
		t.Fatal(err)
	}
	if want := "{main}\nname : value = with equals\n"; got != want {
		t.Errorf("dump output = %q; want %q", got, want)
	}
}

func TestBadSyntaxFlags(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "a.ini", "[a]\n")
	for _, args := range [][]string{
		{"--separator", "=="},
		{"--section-start", ""},
		{"--comment", ""},
	} {
		args = append([]string{"sections", "-f", path}, args...)
		if _, err := runTool(t, args...); err == nil {
			t.Errorf("initool %q did not return an error", args)
		}
	}
}

func TestNoFiles(t *testing.T) {
	t.Setenv("INITOOL_FILE", "")
	if _, err := runTool(t, "sections"); err == nil {
		t.Error("sections without files did not return an error")
	}
}

func TestEnvironment(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.ini", "(first)\nkey -> from a\n")
	b := writeFile(t, dir, "b.ini", "(first)\nkey -> from b\nother -> from b\n")
	t.Setenv("INITOOL_FILE", a+","+b)
	t.Setenv("INITOOL_SEPARATOR", "-")
	t.Setenv("INITOOL_SECTION_START", "(")
	t.Setenv("INITOOL_SECTION_END", ")")
	for _, test := range []struct {
		key  string
		want string
	}{
		{"key", "> from a\n"},
		{"other", "> from b\n"},
	} {
		got, err := runTool(t, "get", "first", test.key)
		if err != nil {
			t.Fatal(err)
		}
		if got != test.want {
			t.Errorf("get first %s = %q; want %q", test.key, got, test.want)
		}
	}
}

func TestMalformedFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "bad.ini", "[ok]\nx = 1\n[]\n")
	_, err := runTool(t, "sections", "-f", path)
	if !errors.Is(err, ini.ErrMalformedInput) {
		t.Errorf("error = %v; want %v", err, ini.ErrMalformedInput)
	}
	_, err = runTool(t, "set", "-f", path, "ok", "x", "2")
	if !errors.Is(err, ini.ErrMalformedInput) {
		t.Errorf("set error = %v; want %v", err, ini.ErrMalformedInput)
	}
}

func TestMalformedFileLogged(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "good.ini", "[ok]\nx = 1\n")
	bad := writeFile(t, dir, "bad.ini", "[ok]\nx = 1\n[]\n")
	for _, cmdName := range []string{"sections", "get", "dump", "export"} {
		t.Run(cmdName, func(t *testing.T) {
			// Log to a buffer instead of the test log, then restore it.
			t.Cleanup(func() { testlog.Main(nil) })
			logs := new(bytes.Buffer)
			c := newRootCmd(&app{logOutput: logs})
			c.SetOut(new(bytes.Buffer))
			args := []string{cmdName, "-f", good, "-f", bad}
			if cmdName == "get" {
				args = append(args, "ok", "x")
			}
			c.SetArgs(args)
			if err := c.ExecuteContext(context.Background()); !errors.Is(err, ini.ErrMalformedInput) {
				t.Errorf("initool %q error = %v; want %v", args, err, ini.ErrMalformedInput)
			}
			want := "initool: error: " + bad + ": line 3: malformed input: section name missing\n"
			if got := logs.String(); got != want {
				t.Errorf("initool %q logged %q; want %q", args, got, want)
			}
		})
	}
}

func TestSet(t *testing.T) {
	t.Run("InPlace", func(t *testing.T) {
		path := writeFile(t, t.TempDir(), "app.ini", "; settings\n[Server]\nPort = 80\n")
		if _, err := runTool(t, "set", "-f", path, "server", "port", " 8080 "); err != nil {
			t.Fatal(err)
		}
		if got, err := readDoc(t, path).Get("server", "port"); err != nil || got != "8080" {
			t.Errorf("port = %q, %v; want \"8080\", <nil>", got, err)
		}
	})
	t.Run("MissingSection", func(t *testing.T) {
		path := writeFile(t, t.TempDir(), "app.ini", "[server]\n")
		_, err := runTool(t, "set", "-f", path, "client", "retries", "3")
		if !errors.Is(err, ini.ErrKeyNotFound) {
			t.Errorf("error = %v; want %v", err, ini.ErrKeyNotFound)
		}
		if readDoc(t, path).HasSection("client") {
			t.Error("file was modified")
		}
	})
	t.Run("Dynamic", func(t *testing.T) {
		path := writeFile(t, t.TempDir(), "app.ini", "[server]\n")
		if _, err := runTool(t, "set", "--dynamic", "-f", path, "client", "retries", "3"); err != nil {
			t.Fatal(err)
		}
		if got, err := readDoc(t, path).Get("client", "retries"); err != nil || got != "3" {
			t.Errorf("retries = %q, %v; want \"3\", <nil>", got, err)
		}
	})
	t.Run("NewFile", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "new.ini")
		if _, err := runTool(t, "set", "--dynamic", "-f", path, "main", "name", "value"); err != nil {
			t.Fatal(err)
		}
		if got, err := readDoc(t, path).Get("main", "name"); err != nil || got != "value" {
			t.Errorf("name = %q, %v; want \"value\", <nil>", got, err)
		}
	})
	t.Run("Output", func(t *testing.T) {
		dir := t.TempDir()
		path := writeFile(t, dir, "app.ini", "[server]\nport = 80\n")
		output := writeFile(t, dir, "out.ini", "")
		_, err := runTool(t, "set", "-f", path, "-o", output, "server", "port", "8080")
		if !errors.Is(err, ini.ErrFileExists) {
			t.Errorf("error = %v; want %v", err, ini.ErrFileExists)
		}
		if _, err := runTool(t, "set", "-f", path, "-o", output, "--force", "server", "port", "8080"); err != nil {
			t.Fatal(err)
		}
		if got, _ := readDoc(t, output).Get("server", "port"); got != "8080" {
			t.Errorf("output port = %q; want \"8080\"", got)
		}
		if got, _ := readDoc(t, path).Get("server", "port"); got != "80" {
			t.Errorf("source port = %q; want \"80\"", got)
		}
	})
}

func TestSetTyped(t *testing.T) {
	tests := []struct {
		typ     string
		value   string
		want    string
		wantErr error
	}{
		{typ: "", value: "anything", want: "anything"},
		{typ: "bool", value: "T", want: "true"},
		{typ: "bool", value: "maybe", wantErr: strconv.ErrSyntax},
		{typ: "int", value: "0042", want: "42"},
		{typ: "int", value: "4.2", wantErr: strconv.ErrSyntax},
		{typ: "float", value: "1e3", want: "1000"},
		{typ: "duration", value: "90s", want: "1m30s"},
		{typ: "time", value: "2020-06-01T12:00:00Z", want: "2020-06-01T12:00:00Z"},
	}
	for _, test := range tests {
		path := writeFile(t, t.TempDir(), "app.ini", "[s]\n")
		_, err := runTool(t, "set", "-f", path, "--type", test.typ, "s", "k", test.value)
		if test.wantErr != nil {
			if !errors.Is(err, test.wantErr) {
				t.Errorf("set --type=%q %q error = %v; want %v", test.typ, test.value, err, test.wantErr)
			}
			continue
		}
		if err != nil {
			t.Errorf("set --type=%q %q: %v", test.typ, test.value, err)
			continue
		}
		if got, _ := readDoc(t, path).Get("s", "k"); got != test.want {
			t.Errorf("set --type=%q %q stored %q; want %q", test.typ, test.value, got, test.want)
		}
	}

	path := writeFile(t, t.TempDir(), "app.ini", "[s]\n")
	if _, err := runTool(t, "set", "-f", path, "--type", "complex", "s", "k", "1i"); err == nil {
		t.Error("set with an unknown type did not return an error")
	}
}

func TestDelete(t *testing.T) {
	const content = "[a]\nx = 1\ny = 2\n[b]\nz = 3\n"
	tests := []struct {
		name    string
		args    []string
		want    map[string]map[string]string
		wantErr error
	}{
		{
			name: "Key",
			args: []string{"delete", "A", "X"},
			want: map[string]map[string]string{"a": {"y": "2"}, "b": {"z": "3"}},
		},
		{
			name: "Section",
			args: []string{"rm", "b"},
			want: map[string]map[string]string{"a": {"x": "1", "y": "2"}},
		},
		{
			name:    "MissingKey",
			args:    []string{"delete", "a", "w"},
			wantErr: ini.ErrKeyNotFound,
		},
		{
			name:    "MissingSection",
			args:    []string{"delete", "c"},
			wantErr: ini.ErrSectionNotFound,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			path := writeFile(t, t.TempDir(), "app.ini", content)
			_, err := runTool(t, append(test.args, "-f", path)...)
			if test.wantErr != nil {
				if !errors.Is(err, test.wantErr) {
					t.Errorf("error = %v; want %v", err, test.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			got := make(map[string]map[string]string)
			for s := range readDoc(t, path).All() {
				got[s.Name()] = make(map[string]string)
				for k, v := range s.All() {
					got[s.Name()][k] = v
				}
			}
			if diff := cmp.Diff(test.want, got); diff != "" {
				t.Errorf("file (-want +got):\n%s", diff)
			}
		})
	}
}

func TestExport(t *testing.T) {
	local, global := layeredFiles(t)
	want := map[string]map[string]string{
		"server": {"port": "8080", "host": "example.com"},
		"client": {"retries": "3"},
	}

	t.Run("YAML", func(t *testing.T) {
		out, err := runTool(t, "export", "-f", local, "-f", global)
		if err != nil {
			t.Fatal(err)
		}
		var got map[string]map[string]string
		if err := yaml.Unmarshal([]byte(out), &got); err != nil {
			t.Fatalf("output %q: %v", out, err)
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("export (-want +got):\n%s", diff)
		}
		if strings.Index(out, "server:") > strings.Index(out, "client:") {
			t.Errorf("output = %q; want sections in file order", out)
		}
		if strings.Index(out, "port:") > strings.Index(out, "host:") {
			t.Errorf("output = %q; want keys in file order", out)
		}
	})

	t.Run("TOML", func(t *testing.T) {
		out, err := runTool(t, "export", "--format", "toml", "-f", local, "-f", global)
		if err != nil {
			t.Fatal(err)
		}
		var got map[string]map[string]string
		if _, err := toml.Decode(out, &got); err != nil {
			t.Fatalf("output %q: %v", out, err)
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("export (-want +got):\n%s", diff)
		}
	})

	t.Run("UnknownFormat", func(t *testing.T) {
		if _, err := runTool(t, "export", "--format", "xml", "-f", local); err == nil {
			t.Error("export --format xml did not return an error")
		}
	})
}

func TestVersion(t *testing.T) {
	got, err := runTool(t, "version")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(got, "initool ") {
		t.Errorf("output = %q; want \"initool \" prefix", got)
	}
}

func TestTextLogger(t *testing.T) {
	buf := new(bytes.Buffer)
	l := &textLogger{w: buf}
	ctx := context.Background()
	for _, e := range []log.Entry{
		{Level: log.Debug, Msg: "loaded"},
		{Level: log.Info, Msg: "created"},
		{Level: log.Warn, Msg: "skipped"},
		{Level: log.Error, Msg: "failed"},
	} {
		l.Log(ctx, e)
	}
	const want = "initool: debug: loaded\n" +
		"initool: created\n" +
		"initool: warning: skipped\n" +
		"initool: error: failed\n"
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("log output (-want +got):\n%s", diff)
	}
}
