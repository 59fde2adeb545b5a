// Package cmd provides tests for CLI command handlers.
package cmd

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// sandbox isolates config lookup and returns the data file path the CLI will use.
func sandbox(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	for _, key := range []string{
		"CATHY_DATA_FILE", "CATHY_UI", "CATHY_REJECT_DUPLICATE_EVENTS",
		"CATHY_LOG_LEVEL", "CATHY_LOG_FORMAT", "CATHY_LOG_TIMESTAMPS",
		"CATHY_LOG_CALLER", "CATHY_LOG_FILE",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
	chdir(t, t.TempDir())
	return filepath.Join(t.TempDir(), "tasks.txt")
}

type result struct {
	out, err string
}

func runCLI(t *testing.T, stdin string, args ...string) (result, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	err := run(context.Background(), args, streams{in: strings.NewReader(stdin), out: &out, err: &errOut})
	return result{out: out.String(), err: errOut.String()}, err
}

func TestRun(t *testing.T) {
	t.Run("shows help with -help flag", func(t *testing.T) {
		sandbox(t)
		res, err := runCLI(t, "", "-help")
		if err != nil {
			t.Errorf("expected no error with -help, got %v", err)
		}
		if !strings.Contains(res.out, "Usage:") {
			t.Errorf("usage not printed: %q", res.out)
		}
	})

	t.Run("shows help with help command", func(t *testing.T) {
		sandbox(t)
		if _, err := runCLI(t, "", "help"); err != nil {
			t.Errorf("expected no error with help command, got %v", err)
		}
	})

	t.Run("shows version with -v flag", func(t *testing.T) {
		sandbox(t)
		res, err := runCLI(t, "", "-v")
		if err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(res.out, "cathy version "+Version) {
			t.Errorf("version output: %q", res.out)
		}
	})

	t.Run("version command", func(t *testing.T) {
		sandbox(t)
		res, _ := runCLI(t, "", "version")
		if !strings.HasPrefix(res.out, "cathy version") {
			t.Errorf("version output: %q", res.out)
		}
	})

	t.Run("unknown command returns error", func(t *testing.T) {
		data := sandbox(t)
		_, err := runCLI(t, "", "-data", data, "unknown-command")
		if err == nil || !strings.Contains(err.Error(), "unknown command") {
			t.Errorf("expected 'unknown command' error, got %v", err)
		}
	})

	t.Run("bad flag value fails config validation", func(t *testing.T) {
		sandbox(t)
		_, err := runCLI(t, "", "-log-format", "xml", "version")
		if err == nil || !strings.Contains(err.Error(), "log_format") {
			t.Errorf("expected log_format error, got %v", err)
		}
	})
}

func TestReplDefault(t *testing.T) {
	data := sandbox(t)
	res, err := runCLI(t, "todo read book\ndeadline pay /by 2025-09-10\nlist\nbye\n", "-data", data)
	if err != nil {
		t.Fatalf("repl: %v", err)
	}
	for _, want := range []string{"I'm Cathy", "1. [T][ ] read book", "2. [D][ ] pay (by: Sep 10 2025, 11:59PM)", "Bye."} {
		if !strings.Contains(res.out, want) {
			t.Errorf("output missing %q", want)
		}
	}

	raw, err := os.ReadFile(data)
	if err != nil {
		t.Fatalf("task file not written: %v", err)
	}
	want := "T | 0 | read book\nD | 0 | pay | 2025-09-10T23:59\n"
	if string(raw) != want {
		t.Errorf("task file:\n%s\nwant:\n%s", raw, want)
	}
}

func TestExec(t *testing.T) {
	data := sandbox(t)

	if _, err := runCLI(t, "", "-data", data, "exec", "todo", "buy", "milk"); err != nil {
		t.Fatalf("exec todo: %v", err)
	}
	res, err := runCLI(t, "", "-data", data, "exec", "find MILK")
	if err != nil {
		t.Fatalf("exec find: %v", err)
	}
	if !strings.Contains(res.out, "1. [T][ ] buy milk") {
		t.Errorf("find output: %q", res.out)
	}

	res, err = runCLI(t, "", "-data", data, "exec", "mark", "5")
	if !errors.Is(err, ErrCommandFailed) {
		t.Errorf("err = %v, want ErrCommandFailed", err)
	}
	if !strings.HasPrefix(res.out, "<ERROR>\n") {
		t.Errorf("error reply: %q", res.out)
	}

	if _, err := runCLI(t, "", "-data", data, "exec"); err == nil {
		t.Error("exec without a line succeeded")
	}
}

func TestExecRejectDuplicateEvents(t *testing.T) {
	data := sandbox(t)
	event := "event standup /from 2025-09-01 0900 /to 2025-09-01 0915"
	if _, err := runCLI(t, "", "-data", data, "exec", event); err != nil {
		t.Fatal(err)
	}
	if _, err := runCLI(t, "", "-data", data, "exec", event); err != nil {
		t.Fatalf("duplicate rejected without the flag: %v", err)
	}
	if _, err := runCLI(t, "", "-data", data, "-reject-duplicate-events", "exec", event); !errors.Is(err, ErrCommandFailed) {
		t.Errorf("duplicate accepted with the flag: %v", err)
	}
}

func TestDoctor(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		data := sandbox(t)
		res, err := runCLI(t, "", "-data", data, "doctor")
		if err != nil {
			t.Fatalf("doctor: %v", err)
		}
		if !strings.Contains(res.out, "Not found") {
			t.Errorf("output: %q", res.out)
		}
	})

	t.Run("corrupted records", func(t *testing.T) {
		data := sandbox(t)
		content := "T | 1 | fine\nX | 0 | unknown tag\nD | 0 | no date\n"
		if err := os.WriteFile(data, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
		res, err := runCLI(t, "", "-data", data, "doctor")
		if err == nil {
			t.Fatal("doctor passed a corrupted file")
		}
		for _, want := range []string{"1 tasks", "line 2", "line 3", "2 corrupted records"} {
			if !strings.Contains(res.out, want) {
				t.Errorf("output missing %q:\n%s", want, res.out)
			}
		}
	})
}

func TestCorruptedLinesAreLoggedNotShown(t *testing.T) {
	data := sandbox(t)
	if err := os.WriteFile(data, []byte("T | 0 | ok\ngarbage\n"), 0644); err != nil {
		t.Fatal(err)
	}
	res, err := runCLI(t, "", "-data", data, "exec", "list")
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(res.out, "garbage") {
		t.Errorf("corrupted line shown to the user: %q", res.out)
	}
	if !strings.Contains(res.err, "skipping corrupted record") {
		t.Errorf("stderr log: %q", res.err)
	}
}

func TestConfigCommand(t *testing.T) {
	data := sandbox(t)

	res, err := runCLI(t, "", "-data", data, "-ui", "tui", "config")
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	for _, want := range []string{`ui = "tui"`, "# sources", "flag", "default"} {
		if !strings.Contains(res.out, want) {
			t.Errorf("output missing %q:\n%s", want, res.out)
		}
	}

	res, err = runCLI(t, "", "config", "-example")
	if err != nil || !strings.Contains(res.out, "reject_duplicate_events = false") {
		t.Errorf("example: err=%v out=%q", err, res.out)
	}

	res, err = runCLI(t, "", "config", "-schema")
	if err != nil || !strings.Contains(res.out, `"additionalProperties": false`) {
		t.Errorf("schema: err=%v out=%q", err, res.out)
	}

	if _, err := runCLI(t, "", "config", "extra"); err == nil {
		t.Error("config accepted a stray argument")
	}
}

func TestLogFile(t *testing.T) {
	data := sandbox(t)
	logPath := filepath.Join(t.TempDir(), "logs", "cathy.log")
	if err := os.WriteFile(data, []byte("bad line\n"), 0644); err != nil {
		t.Fatal(err)
	}

	res, err := runCLI(t, "", "-data", data, "-log-file", logPath, "-log-format", "json", "exec", "list")
	if err != nil {
		t.Fatal(err)
	}
	if res.err != "" {
		t.Errorf("logs went to stderr: %q", res.err)
	}
	raw, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("log file: %v", err)
	}
	if !strings.Contains(string(raw), `"msg":"skipping corrupted record"`) {
		t.Errorf("log file content: %s", raw)
	}
}

// chdir mirrors testing.T.Chdir (Go 1.24+) for older toolchains: it changes
// the working directory and PWD for the rest of the test and restores both
// on cleanup.
func chdir(t *testing.T, dir string) {
	t.Helper()
	oldwd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(oldwd, dir)
	}
	t.Setenv("PWD", dir)
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(oldwd); err != nil {
			panic("testing: Chdir: " + err.Error())
		}
	})
}
