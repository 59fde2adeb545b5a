package storage

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/nibzard/cathy-go/internal/datetime"
	"github.com/nibzard/cathy-go/internal/task"
	"github.com/nibzard/cathy-go/internal/utils"
)

// Separator joins the fields of a record.
const Separator = " | "

// RecordError describes why a record could not be decoded.
type RecordError struct {
	Field string
	Err   error
}

func (e *RecordError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Err)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *RecordError) Unwrap() error {
	return e.Err
}

// LineError is a record skipped while scanning.
type LineError struct {
	Line int // 1-based line number
	Text string
	Err  error
}

func (e LineError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

// Encode renders t as one record, without a trailing newline.
func Encode(t task.Task) string {
	status := "0"
	if t.Done() {
		status = "1"
	}
	fields := []string{t.Kind().Tag(), status, t.Description()}

	switch t.Kind() {
	case task.KindToDo:
	case task.KindDeadline:
		fields = append(fields, datetime.Machine(t.By()))
	case task.KindEvent:
		fields = append(fields, datetime.Machine(t.From()), datetime.Machine(t.To()))
	}
	return strings.Join(fields, Separator)
}

// Decode rebuilds a task from one record. Timestamps are taken from the right, so
// a description may itself contain the separator.
func Decode(line string) (task.Task, error) {
	fields := strings.SplitN(line, Separator, 3)
	if len(fields) < 3 {
		return task.Task{}, &RecordError{Err: fmt.Errorf("expected at least 3 fields, got %d", len(fields))}
	}

	kind, err := task.KindFromTag(strings.TrimSpace(fields[0]))
	if err != nil {
		return task.Task{}, &RecordError{Field: "type", Err: err}
	}

	var done bool
	switch strings.TrimSpace(fields[1]) {
	case "0":
	case "1":
		done = true
	default:
		return task.Task{}, &RecordError{Field: "status", Err: fmt.Errorf("invalid flag %q, must be 0 or 1", fields[1])}
	}

	rest := fields[2]
	var t task.Task
	switch kind {
	case task.KindToDo:
		t, err = task.NewToDo(rest)
	case task.KindDeadline:
		desc, by, ok := cutLast(rest)
		if !ok {
			return task.Task{}, fieldCountError(kind, 4, 3)
		}
		t, err = task.NewDeadline(desc, by)
	case task.KindEvent:
		head, to, ok := cutLast(rest)
		if !ok {
			return task.Task{}, fieldCountError(kind, 5, 3)
		}
		desc, from, ok := cutLast(head)
		if !ok {
			return task.Task{}, fieldCountError(kind, 5, 4)
		}
		t, err = task.NewEvent(desc, from, to)
	}
	if err != nil {
		return task.Task{}, &RecordError{Field: kind.String(), Err: err}
	}

	if done {
		t.MarkDone()
	}
	return t, nil
}

// cutLast splits s around the last separator.
func cutLast(s string) (before, after string, ok bool) {
	i := strings.LastIndex(s, Separator)
	if i < 0 {
		return s, "", false
	}
	return s[:i], s[i+len(Separator):], true
}

func fieldCountError(kind task.Kind, want, got int) error {
	return &RecordError{Err: fmt.Errorf("%s record needs %d fields, got %d", kind, want, got)}
}

// Write encodes every task in order, one record per line.
func Write(w io.Writer, list *task.List) error {
	bw := bufio.NewWriter(w)
	for _, t := range list.All() {
		if _, err := bw.WriteString(Encode(t) + "\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// MaxRecordBytes caps the length of one record. Longer lines are skipped.
const MaxRecordBytes = 1 << 20

// ErrRecordTooLong marks a line longer than MaxRecordBytes.
var ErrRecordTooLong = errors.New("record too long")

// Scan decodes records from r. A record that fails to decode is collected as a
// LineError and scanning continues with the next line. Blank lines are ignored.
// The returned error is only set when r itself fails; the list then holds every
// record decoded before the failure.
func Scan(r io.Reader) (*task.List, []LineError, error) {
	list := task.NewList()
	var skipped []LineError

	lr := utils.NewLineReader(r, MaxRecordBytes)
	for {
		line, tooLong, err := lr.Next()
		if errors.Is(err, io.EOF) {
			return list, skipped, nil
		}
		if err != nil {
			return list, skipped, fmt.Errorf("read records: %w", err)
		}
		if tooLong {
			skipped = append(skipped, LineError{Line: lr.Line(), Text: clip(line), Err: ErrRecordTooLong})
			continue
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		t, err := Decode(line)
		if err != nil {
			skipped = append(skipped, LineError{Line: lr.Line(), Text: line, Err: err})
			continue
		}
		list.Add(t)
	}
}

// clip shortens an oversized line for logs and reports.
func clip(line string) string {
	const keep = 64
	if len(line) <= keep {
		return line
	}
	return line[:keep] + "..."
}
