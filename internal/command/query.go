package command

import (
	"strings"

	"github.com/nibzard/cathy-go/internal/datetime"
	"github.com/nibzard/cathy-go/internal/task"
)

// List renders every task.
type List struct{ stays }

func (c *List) Execute(tasks *task.List, _ *Env) (string, error) {
	if tasks.IsEmpty() {
		return msgEmptyList, nil
	}
	return numbered("Your tasks, in all their glory.\nDon't pretend you didn't forget some:", tasks.All()), nil
}

// Find lists tasks whose description contains a keyword, ignoring case.
type Find struct {
	stays
	keyword string
}

// NewFind returns a Find for keyword. A blank keyword is a syntax error.
func NewFind(keyword string) (*Find, error) {
	k := strings.TrimSpace(keyword)
	if k == "" {
		return nil, Syntax("Pro tip: 'find' only works if you give me something to find.")
	}
	return &Find{keyword: strings.ToLower(k)}, nil
}

// Keyword returns the lower-cased search term.
func (c *Find) Keyword() string {
	return c.keyword
}

// Filter returns the matching tasks in list order.
func (c *Find) Filter(tasks *task.List) []task.Task {
	var matches []task.Task
	for _, t := range tasks.All() {
		if strings.Contains(strings.ToLower(t.Description()), c.keyword) {
			matches = append(matches, t)
		}
	}
	return matches
}

func (c *Find) Execute(tasks *task.List, _ *Env) (string, error) {
	matches := c.Filter(tasks)
	if len(matches) == 0 {
		return msgNoMatches, nil
	}
	return numbered("Here's what I painfully dug up for you:", matches), nil
}

// On lists deadlines and events that fall on a date.
type On struct {
	stays
	Date string
}

func (c *On) Execute(tasks *task.List, _ *Env) (string, error) {
	if strings.TrimSpace(c.Date) == "" {
		return "", validation(msgMissingOn)
	}
	day, err := datetime.ParseDate(c.Date)
	if err != nil {
		return "", &Error{Kind: KindDateTime, Msg: msgBadOnDate, Err: err}
	}

	var lines []string
	for _, t := range tasks.All() {
		if t.OccursOn(day) {
			lines = append(lines, t.String())
		}
	}
	if len(lines) == 0 {
		return msgNothingOn, nil
	}
	return "Tasks happening on " + datetime.FormatDate(day) + ":\n  " + strings.Join(lines, "\n  "), nil
}

// Help returns the command reference.
type Help struct{ stays }

func (c *Help) Execute(*task.List, *Env) (string, error) {
	return HelpText(), nil
}

// Exit ends the session.
type Exit struct{}

func (c *Exit) Execute(*task.List, *Env) (string, error) {
	return Farewell, nil
}

func (c *Exit) IsExit() bool { return true }
