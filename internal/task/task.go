package task

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/nibzard/cathy-go/internal/datetime"
)

// Kind identifies the task variant.
type Kind int

const (
	KindToDo Kind = iota
	KindDeadline
	KindEvent
)

// Tag returns the single-letter tag used in rendering and persistence.
func (k Kind) Tag() string {
	switch k {
	case KindToDo:
		return "T"
	case KindDeadline:
		return "D"
	case KindEvent:
		return "E"
	default:
		return "?"
	}
}

func (k Kind) String() string {
	switch k {
	case KindToDo:
		return "todo"
	case KindDeadline:
		return "deadline"
	case KindEvent:
		return "event"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// KindFromTag is the inverse of Kind.Tag.
func KindFromTag(tag string) (Kind, error) {
	switch tag {
	case "T":
		return KindToDo, nil
	case "D":
		return KindDeadline, nil
	case "E":
		return KindEvent, nil
	default:
		return 0, fmt.Errorf("unknown task type %q", tag)
	}
}

var (
	// ErrBlankDescription is returned when a description is empty after trimming.
	ErrBlankDescription = errors.New("description is blank")
	// ErrTimeBackwards is returned when an event ends before it starts.
	ErrTimeBackwards = errors.New("Wow. You think time flows backwards? Cute.\n" +
		"The /from date has to come *before* the /to date.\n" +
		"Try again when you figure out how calendars work.")
)

// Task is a single tracked unit of work.
type Task struct {
	kind        Kind
	description string
	done        bool
	by          time.Time
	from        time.Time
	to          time.Time
}

func cleanDescription(desc string) (string, error) {
	d := strings.TrimSpace(desc)
	if d == "" {
		return "", ErrBlankDescription
	}
	return d, nil
}

// NewToDo creates a ToDo.
func NewToDo(desc string) (Task, error) {
	d, err := cleanDescription(desc)
	if err != nil {
		return Task{}, err
	}
	return Task{kind: KindToDo, description: d}, nil
}

// NewDeadline creates a Deadline from a raw due string.
func NewDeadline(desc, rawBy string) (Task, error) {
	d, err := cleanDescription(desc)
	if err != nil {
		return Task{}, err
	}
	by, err := datetime.Parse(rawBy, datetime.RoleDeadline)
	if err != nil {
		return Task{}, err
	}
	return Task{kind: KindDeadline, description: d, by: by}, nil
}

// NewDeadlineAt creates a Deadline from an already parsed instant.
func NewDeadlineAt(desc string, by time.Time) (Task, error) {
	d, err := cleanDescription(desc)
	if err != nil {
		return Task{}, err
	}
	return Task{kind: KindDeadline, description: d, by: by}, nil
}

// NewEvent creates an Event from raw start and end strings.
func NewEvent(desc, rawFrom, rawTo string) (Task, error) {
	if _, err := cleanDescription(desc); err != nil {
		return Task{}, err
	}
	from, err := datetime.Parse(rawFrom, datetime.RoleStart)
	if err != nil {
		return Task{}, err
	}
	to, err := datetime.Parse(rawTo, datetime.RoleEnd)
	if err != nil {
		return Task{}, err
	}
	return NewEventBetween(desc, from, to)
}

// NewEventBetween creates an Event from parsed instants.
func NewEventBetween(desc string, from, to time.Time) (Task, error) {
	d, err := cleanDescription(desc)
	if err != nil {
		return Task{}, err
	}
	if from.After(to) {
		return Task{}, ErrTimeBackwards
	}
	return Task{kind: KindEvent, description: d, from: from, to: to}, nil
}

// Kind returns the task variant.
func (t Task) Kind() Kind { return t.kind }

// Description returns the trimmed description.
func (t Task) Description() string { return t.description }

// Done reports whether the task is marked complete.
func (t Task) Done() bool { return t.done }

// By returns the due instant. Zero unless Kind is KindDeadline.
func (t Task) By() time.Time { return t.by }

// From returns the event start. Zero unless Kind is KindEvent.
func (t Task) From() time.Time { return t.from }

// To returns the event end. Zero unless Kind is KindEvent.
func (t Task) To() time.Time { return t.to }

// MarkDone sets the completion flag.
func (t *Task) MarkDone() { t.done = true }

// MarkUndone clears the completion flag.
func (t *Task) MarkUndone() { t.done = false }

// StatusIcon is "X" for done tasks and a single space otherwise.
func (t Task) StatusIcon() string {
	if t.done {
		return "X"
	}
	return " "
}

// Span returns the event range as (earliest, latest) regardless of stored order.
func (t Task) Span() (time.Time, time.Time) {
	if t.to.Before(t.from) {
		return t.to, t.from
	}
	return t.from, t.to
}

// OccursOn reports whether the task falls on the given calendar day.
func (t Task) OccursOn(date time.Time) bool {
	switch t.kind {
	case KindToDo:
		return false
	case KindDeadline:
		return datetime.SameDay(t.by, date)
	case KindEvent:
		lo, hi := t.Span()
		day := datetime.Date(date)
		return !day.Before(datetime.Date(lo)) && !day.After(datetime.Date(hi))
	default:
		return false
	}
}

// String renders the task for display.
func (t Task) String() string {
	base := fmt.Sprintf("[%s][%s] %s", t.kind.Tag(), t.StatusIcon(), t.description)
	switch t.kind {
	case KindToDo:
		return base
	case KindDeadline:
		return fmt.Sprintf("%s (by: %s)", base, datetime.Format(t.by))
	case KindEvent:
		return fmt.Sprintf("%s (from: %s to: %s)", base, datetime.Format(t.from), datetime.Format(t.to))
	default:
		return base
	}
}
