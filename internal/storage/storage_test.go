package storage

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/nibzard/cathy-go/internal/datetime"
	"github.com/nibzard/cathy-go/internal/task"
)

func sampleList(t *testing.T) *task.List {
	t.Helper()
	todo, err := task.NewToDo("todo one")
	if err != nil {
		t.Fatal(err)
	}
	todo.MarkDone()
	deadline, err := task.NewDeadline("submit assignment", "2025/09/10")
	if err != nil {
		t.Fatal(err)
	}
	event, err := task.NewEvent("meeting | prep", "2025-09-01 1400", "2025-09-01 15:30")
	if err != nil {
		t.Fatal(err)
	}
	return task.NewList(todo, deadline, event)
}

func TestEncode(t *testing.T) {
	list := sampleList(t)
	want := []string{
		"T | 1 | todo one",
		"D | 0 | submit assignment | 2025-09-10T23:59",
		"E | 0 | meeting | prep | 2025-09-01T14:00 | 2025-09-01T15:30",
	}
	for i, tk := range list.All() {
		if got := Encode(tk); got != want[i] {
			t.Errorf("Encode(%d) = %q, want %q", i, got, want[i])
		}
	}
}

func TestSaveThenLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "tasks.txt")
	s := New(path, nil)
	out := sampleList(t)
	pipeEnd, err := task.NewDeadline("pay a |", "2025-09-10")
	if err != nil {
		t.Fatal(err)
	}
	pipeEvent, err := task.NewEvent("sync | |", "2025-09-01", "2025-09-02 1000")
	if err != nil {
		t.Fatal(err)
	}
	pipeToDo, err := task.NewToDo("| both ends |")
	if err != nil {
		t.Fatal(err)
	}
	out.Add(pipeEnd)
	out.Add(pipeEvent)
	out.Add(pipeToDo)

	if err := s.Save(out); err != nil {
		t.Fatalf("Save: %v", err)
	}
	in, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if in.Len() != out.Len() {
		t.Fatalf("Len = %d, want %d", in.Len(), out.Len())
	}
	for i, want := range out.All() {
		got, _ := in.Get(i)
		if got.Kind() != want.Kind() {
			t.Errorf("[%d] Kind = %v, want %v", i, got.Kind(), want.Kind())
		}
		if got.Description() != want.Description() {
			t.Errorf("[%d] Description = %q, want %q", i, got.Description(), want.Description())
		}
		if got.Done() != want.Done() {
			t.Errorf("[%d] Done = %v, want %v", i, got.Done(), want.Done())
		}
		if !got.By().Equal(want.By()) || !got.From().Equal(want.From()) || !got.To().Equal(want.To()) {
			t.Errorf("[%d] instants changed: got %v, want %v", i, got, want)
		}
	}
}

func TestLoadMissingFileReturnsEmptyList(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "does-not-exist.txt"), nil)
	list, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if list.Len() != 0 {
		t.Errorf("Len = %d, want 0", list.Len())
	}
}

func TestLoadEmptyFileReturnsEmptyList(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.txt")
	if err := os.WriteFile(path, nil, 0644); err != nil {
		t.Fatal(err)
	}
	list, err := New(path, nil).Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if list.Len() != 0 {
		t.Errorf("Len = %d, want 0", list.Len())
	}
}

func TestLoadSkipsCorruptedLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.txt")
	content := strings.Join([]string{
		"T | 0 | good one",
		"garbage",
		"D | 0 | no date",
		"D | 0 | bad date | someday",
		"E | 1 | backwards | 2025-09-10T00:00 | 2025-09-01T00:00",
		"X | 0 | unknown tag",
		"T | 2 | bad flag",
		"T | 0 |   ",
		"",
		"E | 1 | good event | 2025-09-01T00:00 | 2025-09-03T23:59\r",
	}, "\n")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.WarnLevel, Formatter: log.LogfmtFormatter})
	list, err := New(path, logger).Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if list.Len() != 2 {
		t.Fatalf("Len = %d, want 2", list.Len())
	}
	second, _ := list.Get(1)
	if second.Description() != "good event" || !second.Done() {
		t.Errorf("second task = %v", second)
	}
	if got := strings.Count(buf.String(), "skipping corrupted record"); got != 7 {
		t.Errorf("logged %d skips, want 7:\n%s", got, buf.String())
	}
}

func TestLoadSkipsOversizedRecord(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.txt")
	huge := strings.Repeat("x", 2*MaxRecordBytes)
	content := "T | 0 | keep one\n" + huge + "\nT | 1 | keep two\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.WarnLevel})
	s := New(path, logger)
	list, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if list.Len() != 2 {
		t.Fatalf("Len = %d, want 2", list.Len())
	}
	second, _ := list.Get(1)
	if second.Description() != "keep two" || !second.Done() {
		t.Errorf("second task = %v", second)
	}
	if !strings.Contains(buf.String(), "skipping corrupted record") {
		t.Errorf("oversized record not logged: %.200s", buf.String())
	}
	if buf.Len() > 4096 {
		t.Errorf("log carries the whole record: %d bytes", buf.Len())
	}

	report, err := s.Check()
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if report.Loaded != 2 || len(report.Skipped) != 1 {
		t.Fatalf("report = loaded %d, skipped %d", report.Loaded, len(report.Skipped))
	}
	if skip := report.Skipped[0]; skip.Line != 2 || !errors.Is(skip.Err, ErrRecordTooLong) {
		t.Errorf("skipped = line %d, err %v", skip.Line, skip.Err)
	}
}

type brokenReader struct {
	data string
	read bool
}

func (r *brokenReader) Read(p []byte) (int, error) {
	if r.read {
		return 0, errors.New("device gone")
	}
	r.read = true
	return copy(p, r.data), nil
}

func TestScanKeepsRecordsBeforeReadError(t *testing.T) {
	list, _, err := Scan(&brokenReader{data: "T | 0 | first\nT | 0 | second\n"})
	if err == nil {
		t.Fatal("Scan: want read error")
	}
	if list.Len() != 2 {
		t.Errorf("Len = %d, want 2", list.Len())
	}
}

func TestOneGoodOneBadLoadsExactlyOne(t *testing.T) {
	list, skipped, err := Scan(strings.NewReader("T | 0 | fine\nD | 0 | broken\n"))
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if list.Len() != 1 {
		t.Errorf("Len = %d, want 1", list.Len())
	}
	if len(skipped) != 1 || skipped[0].Line != 2 {
		t.Errorf("skipped = %+v, want line 2", skipped)
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name  string
		line  string
		field string
	}{
		{"too few fields", "T | 0", ""},
		{"unknown tag", "Q | 0 | x", "type"},
		{"bad status", "T | yes | x", "status"},
		{"deadline missing by", "D | 0 | x", ""},
		{"event missing to", "E | 0 | x | 2025-09-01T00:00", ""},
		{"deadline bad by", "D | 0 | x | tomorrow", "deadline"},
		{"trailing text after by", "D | 0 | x | | 2025-09-10T23:59 |", "deadline"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.line)
			var re *RecordError
			if !errors.As(err, &re) {
				t.Fatalf("err = %v, want *RecordError", err)
			}
			if re.Field != tt.field {
				t.Errorf("Field = %q, want %q", re.Field, tt.field)
			}
		})
	}
}

func TestDecodeAcceptsHumanTimestamps(t *testing.T) {
	got, err := Decode("D | 0 | legacy | 2025/09/10 1800")
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if want := time.Date(2025, 9, 10, 18, 0, 0, 0, time.UTC); !got.By().Equal(want) {
		t.Errorf("By = %v, want %v", got.By(), want)
	}
}

func TestSaveOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.txt")
	s := New(path, nil)

	if err := s.Save(sampleList(t)); err != nil {
		t.Fatal(err)
	}
	one, _ := task.NewToDo("only")
	if err := s.Save(task.NewList(one)); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "T | 0 | only\n" {
		t.Errorf("file = %q", data)
	}

	entries, _ := os.ReadDir(filepath.Dir(path))
	if len(entries) != 1 {
		t.Errorf("directory has %d entries, want only the task file", len(entries))
	}
}

func TestSaveFailureIsReported(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	if err := os.WriteFile(blocker, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	s := New(filepath.Join(blocker, "tasks.txt"), nil)
	if err := s.Save(task.NewList()); err == nil {
		t.Error("Save under a regular file succeeded, want error")
	}
}

func TestCheck(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.txt")
	s := New(path, nil)

	report, err := s.Check()
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if report.Exists || !report.OK() {
		t.Errorf("missing file report = %+v", report)
	}

	good := Encode(mustDeadline(t))
	if err := os.WriteFile(path, []byte(good+"\nnonsense\n"), 0644); err != nil {
		t.Fatal(err)
	}
	report, err = s.Check()
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if !report.Exists || report.Loaded != 1 || report.OK() {
		t.Errorf("report = %+v", report)
	}
	if report.Skipped[0].Line != 2 || report.Skipped[0].Text != "nonsense" {
		t.Errorf("skipped = %+v", report.Skipped)
	}
}

func mustDeadline(t *testing.T) task.Task {
	t.Helper()
	d, err := task.NewDeadlineAt("file taxes", time.Date(2025, 4, 15, 17, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatal(err)
	}
	if got := datetime.Machine(d.By()); got != "2025-04-15T17:00" {
		t.Fatalf("Machine = %q", got)
	}
	return d
}
