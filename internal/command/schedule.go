package command

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/nibzard/cathy-go/internal/datetime"
	"github.com/nibzard/cathy-go/internal/task"
)

// Schedule shows one day's agenda: events by start time, then deadlines by due
// time. ToDos have no date and are left out.
type Schedule struct {
	stays
	Date  time.Time
	Today bool // resolve Date from the environment clock at execution
}

func (c *Schedule) Execute(tasks *task.List, env *Env) (string, error) {
	day := datetime.Date(c.Date)
	if c.Today {
		day = datetime.Today(env.now())
	}

	var agenda []task.Task
	for _, t := range tasks.All() {
		if t.OccursOn(day) {
			agenda = append(agenda, t)
		}
	}
	slices.SortStableFunc(agenda, compareAgenda)

	if len(agenda) == 0 {
		return fmt.Sprintf("Nothing on %s. Must be nice to be free for once.", datetime.FormatDate(day)), nil
	}

	var b strings.Builder
	b.WriteString("Schedule for " + datetime.FormatDate(day) + ":")
	for _, t := range agenda {
		b.WriteString("\n  " + agendaLine(t, day))
	}
	return b.String(), nil
}

func agendaRank(k task.Kind) int {
	switch k {
	case task.KindEvent:
		return 0
	case task.KindDeadline:
		return 1
	default:
		return 2
	}
}

func compareAgenda(a, b task.Task) int {
	if ra, rb := agendaRank(a.Kind()), agendaRank(b.Kind()); ra != rb {
		return ra - rb
	}
	switch a.Kind() {
	case task.KindEvent:
		af, _ := a.Span()
		bf, _ := b.Span()
		return af.Compare(bf)
	case task.KindDeadline:
		return a.By().Compare(b.By())
	default:
		return strings.Compare(strings.ToLower(a.Description()), strings.ToLower(b.Description()))
	}
}

// agendaLine renders t as seen on day. Multi-day events show only the part of the
// window that falls on day.
func agendaLine(t task.Task, day time.Time) string {
	prefix := "[" + t.Kind().Tag() + "] " + t.Description()
	switch t.Kind() {
	case task.KindEvent:
		from, to := t.Span()
		if datetime.SameDay(from, to) {
			return fmt.Sprintf("%s (%s-%s)", prefix, datetime.Clock(from), datetime.Clock(to))
		}
		switch {
		case datetime.SameDay(day, from):
			return fmt.Sprintf("%s (from %s - 23:59)", prefix, datetime.Clock(from))
		case datetime.SameDay(day, to):
			return fmt.Sprintf("%s (00:00 - %s)", prefix, datetime.Clock(to))
		default:
			return prefix + " (all day segment)"
		}
	case task.KindDeadline:
		return fmt.Sprintf("%s (by %s)", prefix, datetime.Clock(t.By()))
	default:
		return prefix
	}
}
