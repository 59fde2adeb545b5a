// Package loop holds a task session: the list, its store, and the
// read-parse-execute cycle that drives it.
package loop

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/nibzard/cathy-go/internal/command"
	"github.com/nibzard/cathy-go/internal/logging"
	"github.com/nibzard/cathy-go/internal/parser"
	"github.com/nibzard/cathy-go/internal/task"
	"github.com/nibzard/cathy-go/internal/utils"
)

// ErrorMarker prefixes every error reply.
const ErrorMarker = "<ERROR>"

// MaxLineBytes caps one input line. Longer lines are rejected without ending the
// session.
const MaxLineBytes = 64 * 1024

// Store loads and saves the task list.
type Store interface {
	Load() (*task.List, error)
	Save(*task.List) error
}

// Options configures a Loop.
type Options struct {
	// Store backs the session. Nil keeps the list in memory only.
	Store Store
	// Logger defaults to a discarding logger.
	Logger *log.Logger
	// Now defaults to time.Now.
	Now func() time.Time
	// RejectDuplicateEvents is passed through to the commands.
	RejectDuplicateEvents bool
}

// Loop manages one session. It is not safe for concurrent use.
type Loop struct {
	tasks  *task.List
	env    *command.Env
	logger *log.Logger
	done   bool
}

// New creates a loop and loads the task list from opts.Store. When the store
// cannot be read the session keeps whatever was decoded, and saving is refused
// so the unread records are not overwritten.
func New(opts Options) *Loop {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}

	tasks := task.NewList()
	env := &command.Env{
		Logger:                logger,
		Now:                   opts.Now,
		RejectDuplicateEvents: opts.RejectDuplicateEvents,
	}
	if opts.Store != nil {
		env.Store = opts.Store
		loaded, err := opts.Store.Load()
		if err != nil {
			logger.Error("loading tasks failed, changes will not be saved", "kind", command.KindPersistence, "err", err)
			env.Store = unsaved{cause: err}
		}
		if loaded != nil {
			tasks = loaded
		}
	}

	return &Loop{tasks: tasks, env: env, logger: logger}
}

// unsaved replaces a store that failed to load.
type unsaved struct{ cause error }

func (u unsaved) Save(*task.List) error {
	return fmt.Errorf("task file was not fully loaded, refusing to overwrite it: %w", u.cause)
}

// Tasks returns a snapshot of the current list.
func (l *Loop) Tasks() []task.Task {
	return l.tasks.All()
}

// Done reports whether an exit command has run.
func (l *Loop) Done() bool {
	return l.done
}

// Reply is the outcome of one input line.
type Reply struct {
	Text string
	Err  error
	Exit bool
}

// String renders the reply for display. Errors get the ErrorMarker line.
func (r Reply) String() string {
	if r.Err != nil {
		return ErrorMarker + "\n" + r.Err.Error()
	}
	return r.Text
}

// Respond parses and executes one line.
func (l *Loop) Respond(line string) Reply {
	cmd, err := parser.Parse(line)
	if err != nil {
		l.logger.Debug("rejected input", "kind", command.KindOf(err), "line", line)
		return Reply{Err: err}
	}

	text, err := cmd.Execute(l.tasks, l.env)
	if err != nil {
		l.logger.Debug("command failed", "kind", command.KindOf(err), "command", fmt.Sprintf("%T", cmd), "err", err)
		return Reply{Err: err}
	}
	if cmd.IsExit() {
		l.done = true
	}
	return Reply{Text: text, Exit: cmd.IsExit()}
}

// Run reads commands from in, one per line, and writes each reply to out. It
// starts with the welcome banner and returns after an exit command, at the end
// of input, or when ctx is cancelled.
func (l *Loop) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	if err := writeBlock(out, command.Logo+"\n"+command.Welcome()); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	type input struct {
		text    string
		tooLong bool
	}
	lines := make(chan input)
	scanErr := make(chan error, 1)
	go func() {
		defer close(lines)
		lr := utils.NewLineReader(in, MaxLineBytes)
		for {
			text, tooLong, err := lr.Next()
			if err != nil {
				if errors.Is(err, io.EOF) {
					err = nil
				}
				scanErr <- err
				return
			}
			select {
			case lines <- input{text: text, tooLong: tooLong}:
			case <-ctx.Done():
				scanErr <- ctx.Err()
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case line, ok := <-lines:
			if !ok {
				if err := <-scanErr; err != nil {
					return fmt.Errorf("read input: %w", err)
				}
				l.logger.Debug("input closed")
				return nil
			}
			var reply Reply
			if line.tooLong {
				l.logger.Debug("rejected input", "kind", command.KindSyntax, "limit", MaxLineBytes)
				reply = Reply{Err: command.Syntaxf("That line is longer than %d bytes. Keep it short, darling.", MaxLineBytes)}
			} else {
				reply = l.Respond(line.text)
			}
			if err := writeBlock(out, reply.String()); err != nil {
				return err
			}
			if reply.Exit {
				return nil
			}
		}
	}
}

func writeBlock(out io.Writer, text string) error {
	if _, err := fmt.Fprintln(out, text); err != nil {
		return fmt.Errorf("write reply: %w", err)
	}
	if _, err := fmt.Fprintln(out); err != nil {
		return fmt.Errorf("write reply: %w", err)
	}
	return nil
}
