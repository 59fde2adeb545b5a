package command

import (
	"errors"
	"strings"
	"time"

	"github.com/nibzard/cathy-go/internal/task"
)

// AddToDo appends a ToDo.
type AddToDo struct {
	stays
	Description string
}

func (c *AddToDo) Execute(tasks *task.List, env *Env) (string, error) {
	t, err := task.NewToDo(c.Description)
	if err != nil {
		return "", blankDescription(task.KindToDo)
	}
	return add(tasks, env, t), nil
}

// AddDeadline appends a Deadline. When At is non-zero it is used instead of By.
type AddDeadline struct {
	stays
	Description string
	By          string
	At          time.Time
}

func (c *AddDeadline) Execute(tasks *task.List, env *Env) (string, error) {
	if strings.TrimSpace(c.Description) == "" {
		return "", blankDescription(task.KindDeadline)
	}

	var (
		t   task.Task
		err error
	)
	switch {
	case !c.At.IsZero():
		t, err = task.NewDeadlineAt(c.Description, c.At)
	case strings.TrimSpace(c.By) == "":
		return "", validation(msgMissingBy)
	default:
		t, err = task.NewDeadline(c.Description, c.By)
	}
	if err != nil {
		return "", classify(err, task.KindDeadline)
	}
	return add(tasks, env, t), nil
}

// AddEvent appends an Event. Non-zero FromAt/ToAt take precedence over From/To.
type AddEvent struct {
	stays
	Description string
	From        string
	To          string
	FromAt      time.Time
	ToAt        time.Time
}

func (c *AddEvent) Execute(tasks *task.List, env *Env) (string, error) {
	if strings.TrimSpace(c.Description) == "" {
		return "", blankDescription(task.KindEvent)
	}

	var (
		t   task.Task
		err error
	)
	switch {
	case !c.FromAt.IsZero() && !c.ToAt.IsZero():
		t, err = task.NewEventBetween(c.Description, c.FromAt, c.ToAt)
	case strings.TrimSpace(c.From) == "" || strings.TrimSpace(c.To) == "":
		return "", validation(msgMissingSpan)
	default:
		t, err = task.NewEvent(c.Description, c.From, c.To)
	}
	if err != nil {
		return "", classify(err, task.KindEvent)
	}

	if env != nil && env.RejectDuplicateEvents && hasEvent(tasks, t.Description()) {
		return "", validationf("'%s' is already on your list. Once is plenty.", t.Description())
	}
	return add(tasks, env, t), nil
}

func hasEvent(tasks *task.List, desc string) bool {
	for _, t := range tasks.All() {
		if t.Kind() == task.KindEvent && strings.EqualFold(t.Description(), desc) {
			return true
		}
	}
	return false
}

func add(tasks *task.List, env *Env, t task.Task) string {
	tasks.Add(t)
	env.persist(tasks)
	return addedReply(t, tasks.Len())
}

// classify maps a task construction failure onto a command error.
func classify(err error, kind task.Kind) error {
	if errors.Is(err, task.ErrBlankDescription) {
		return blankDescription(kind)
	}
	if KindOf(err) == KindDateTime {
		return dateTime(err)
	}
	return &Error{Kind: KindValidation, Err: err}
}
