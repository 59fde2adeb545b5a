// Package datetime normalizes user-supplied date/time strings into canonical instants.
package datetime

import (
	"fmt"
	"strings"
	"time"
)

// Role selects the default time of day applied to date-only input.
type Role int

const (
	// RoleStart is the start of a range; date-only input becomes 00:00.
	RoleStart Role = iota
	// RoleEnd is the end of a range; date-only input becomes 23:59.
	RoleEnd
	// RoleDeadline is a due time; date-only input becomes 23:59.
	RoleDeadline
)

func (r Role) String() string {
	switch r {
	case RoleStart:
		return "start"
	case RoleEnd:
		return "end"
	case RoleDeadline:
		return "deadline"
	default:
		return fmt.Sprintf("Role(%d)", int(r))
	}
}

// defaultClock returns the hour and minute used when only a date is given.
func (r Role) defaultClock() (int, int) {
	if r == RoleStart {
		return 0, 0
	}
	return 23, 59
}

// Layouts, in the order they are attempted.
const (
	MachineLayout        = "2006-01-02T15:04"
	machineSecondsLayout = "2006-01-02T15:04:05"
	machineNanosLayout   = "2006-01-02T15:04:05.999999999"
	compactLayout        = "2006-01-02 1504"
	colonLayout          = "2006-01-02 15:04"
	DateLayout           = "2006-01-02"
	DisplayLayout        = "Jan 02 2006, 3:04PM"
	ClockLayout          = "15:04"
)

var (
	machineLayouts  = []string{machineNanosLayout, machineSecondsLayout, MachineLayout}
	dateTimeLayouts = []string{compactLayout, colonLayout}
)

// AcceptedFormats lists the user-facing input shapes.
const AcceptedFormats = "yyyy-MM-dd HHmm, yyyy-MM-dd HH:mm, or just yyyy-MM-dd"

// ParseError reports input that matched none of the accepted layouts.
type ParseError struct {
	Raw  string
	Role Role
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("Nope. '%s' is not a valid date/time.\nTry %s.", e.Raw, AcceptedFormats)
}

// Parse converts raw into a canonical instant. The first layout that matches wins:
// machine form, then date+time after normalizing '/' to '-', then date-only with the
// role's default time of day.
func Parse(raw string, role Role) (time.Time, error) {
	s := strings.TrimSpace(raw)

	if t, ok := tryLayouts(s, machineLayouts); ok {
		return t, nil
	}

	s = strings.ReplaceAll(s, "/", "-")
	if t, ok := tryLayouts(s, machineLayouts); ok {
		return t, nil
	}
	if t, ok := tryLayouts(s, dateTimeLayouts); ok {
		return t, nil
	}

	if d, err := time.ParseInLocation(DateLayout, s, time.UTC); err == nil {
		h, m := role.defaultClock()
		return d.Add(time.Duration(h)*time.Hour + time.Duration(m)*time.Minute), nil
	}

	return time.Time{}, &ParseError{Raw: raw, Role: role}
}

// ParseDate parses a query date. Date-only input is preferred; a full date/time is
// accepted too and truncated to its date.
func ParseDate(raw string) (time.Time, error) {
	s := strings.ReplaceAll(strings.TrimSpace(raw), "/", "-")
	if d, err := time.ParseInLocation(DateLayout, s, time.UTC); err == nil {
		return d, nil
	}
	t, err := Parse(raw, RoleStart)
	if err != nil {
		return time.Time{}, err
	}
	return Date(t), nil
}

func tryLayouts(s string, layouts []string) (time.Time, bool) {
	for _, layout := range layouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Date returns midnight of t's day.
func Date(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// SameDay reports whether a and b fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// Today returns the wall-clock date of now, read in now's own location.
func Today(now time.Time) time.Time {
	y, m, d := now.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Format renders t for display. Never parsed back.
func Format(t time.Time) string {
	return t.Format(DisplayLayout)
}

// Clock renders the 24h time of day.
func Clock(t time.Time) string {
	return t.Format(ClockLayout)
}

// Machine renders t in the persisted form accepted by Parse.
func Machine(t time.Time) string {
	if t.Nanosecond() != 0 {
		return t.Format(machineNanosLayout)
	}
	if t.Second() != 0 {
		return t.Format(machineSecondsLayout)
	}
	return t.Format(MachineLayout)
}

// FormatDate renders a date as yyyy-MM-dd.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}
