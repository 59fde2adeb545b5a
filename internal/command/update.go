package command

import (
	"github.com/nibzard/cathy-go/internal/task"
)

// Mark flags the task at a 1-based Index as done.
type Mark struct {
	stays
	Index int
}

func (c *Mark) Execute(tasks *task.List, env *Env) (string, error) {
	t, err := tasks.Get(c.Index - 1)
	if err != nil {
		return "", validationf("Trying to mark task %d as done? Cute.\n"+
			"You can't just mark imaginary tasks to feel accomplished.", c.Index)
	}
	if t.Done() {
		return "", validation(msgAlreadyDone)
	}
	t.MarkDone()
	if err := tasks.Set(c.Index-1, t); err != nil {
		return "", &Error{Kind: KindValidation, Err: err}
	}
	env.persist(tasks)
	return markedReply(t), nil
}

// Unmark clears the done flag of the task at a 1-based Index.
type Unmark struct {
	stays
	Index int
}

func (c *Unmark) Execute(tasks *task.List, env *Env) (string, error) {
	t, err := tasks.Get(c.Index - 1)
	if err != nil {
		return "", validation("Ah, clever. But no, that task is imaginary.")
	}
	if !t.Done() {
		return "", validationf("Task %d is already unmarked.\n"+
			"Stop trying to double negative your way through life.", c.Index)
	}
	t.MarkUndone()
	if err := tasks.Set(c.Index-1, t); err != nil {
		return "", &Error{Kind: KindValidation, Err: err}
	}
	env.persist(tasks)
	return unmarkedReply(t), nil
}

// Delete removes the task at a 1-based Index.
type Delete struct {
	stays
	Index int
}

func (c *Delete) Execute(tasks *task.List, env *Env) (string, error) {
	removed, err := tasks.RemoveAt(c.Index - 1)
	if err != nil {
		return "", validation(msgNoSuchTask)
	}
	env.persist(tasks)
	return deletedReply(removed, tasks.Len()), nil
}
