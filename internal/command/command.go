// Package command implements one type per user intent.
//
// Commands are built by the parser with tokenized arguments and validate them when
// executed. Mutating commands persist the whole list through Env.Store afterwards;
// a failed save is logged and does not undo the in-memory change.
package command

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/nibzard/cathy-go/internal/task"
)

// Command is a parsed user intent.
type Command interface {
	// Execute runs the command against tasks and returns the reply text.
	Execute(tasks *task.List, env *Env) (string, error)
	// IsExit reports whether the session should end after this command.
	IsExit() bool
}

// Saver persists a task list.
type Saver interface {
	Save(*task.List) error
}

// Env carries the collaborators a command may use.
type Env struct {
	// Store receives the list after every mutation. Nil disables persistence.
	Store Saver
	// Logger records persistence failures. Nil discards them.
	Logger *log.Logger
	// Now is the clock used to resolve "today". Nil means time.Now.
	Now func() time.Time
	// RejectDuplicateEvents refuses an event whose description matches an
	// existing event.
	RejectDuplicateEvents bool
}

func (e *Env) now() time.Time {
	if e == nil || e.Now == nil {
		return time.Now()
	}
	return e.Now()
}

func (e *Env) logger() *log.Logger {
	if e == nil || e.Logger == nil {
		return log.NewWithOptions(io.Discard, log.Options{Level: log.FatalLevel})
	}
	return e.Logger
}

// persist saves tasks. Failures are logged, never returned.
func (e *Env) persist(tasks *task.List) {
	if e == nil || e.Store == nil {
		return
	}
	if err := e.Store.Save(tasks); err != nil {
		e.logger().Error("saving tasks failed", "kind", KindPersistence, "err", err)
	}
}

// stays is embedded by every command that does not end the session.
type stays struct{}

func (stays) IsExit() bool { return false }
