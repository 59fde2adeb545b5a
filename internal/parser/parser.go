// Package parser turns a line of user input into a command.
//
// The first whitespace-separated word selects the command, ignoring case. The rest
// of the line is its argument text. Parsing only checks the shape of a line;
// descriptions and dates are handed to the command raw and validated when it runs.
package parser

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/nibzard/cathy-go/internal/command"
	"github.com/nibzard/cathy-go/internal/datetime"
)

const (
	msgEmpty    = "My brain can't read your mind. Type something."
	msgUnknown  = "Hmm... fascinating gibberish.\nTry again, or type \"help\" to see what I actually understand."
	msgNeedBy   = "Need '/by'. Try: deadline <desc> /by <date or date time>"
	msgNeedSpan = "Use: event <desc> /from <date [time]> /to <date [time]>"
	msgIndex    = "Sweetie, numbers only. This isn't a spelling bee.\nUse format: [command] [number]"
	msgNeedSch  = "'sch' needs a date, not empty air.\nTry: sch YYYY-MM-DD or sch today"
)

// Keywords lists the recognised command words.
var Keywords = []string{
	"todo", "deadline", "event", "list", "mark", "unmark", "delete",
	"find", "on", "sch", "help", "bye",
}

// Parse returns the command for line. Malformed lines yield a *command.Error of
// kind command.KindSyntax, except an unreadable sch date which is a datetime error.
func Parse(line string) (command.Command, error) {
	keyword, args := split(line)
	if keyword == "" {
		return nil, command.Syntax(msgEmpty)
	}

	switch keyword {
	case "bye":
		return &command.Exit{}, nil
	case "list":
		return &command.List{}, nil
	case "help":
		return &command.Help{}, nil
	case "todo":
		return &command.AddToDo{Description: args}, nil
	case "deadline":
		return parseDeadline(args)
	case "event":
		return parseEvent(args)
	case "mark":
		n, err := parseIndex(args)
		if err != nil {
			return nil, err
		}
		return &command.Mark{Index: n}, nil
	case "unmark":
		n, err := parseIndex(args)
		if err != nil {
			return nil, err
		}
		return &command.Unmark{Index: n}, nil
	case "delete":
		n, err := parseIndex(args)
		if err != nil {
			return nil, err
		}
		return &command.Delete{Index: n}, nil
	case "find":
		f, err := command.NewFind(args)
		if err != nil {
			return nil, err
		}
		return f, nil
	case "on":
		return &command.On{Date: args}, nil
	case "sch":
		return parseSchedule(args)
	default:
		return nil, command.Syntax(msgUnknown)
	}
}

// split separates the lower-cased keyword from the trimmed argument text.
func split(line string) (string, string) {
	line = strings.TrimSpace(line)
	i := strings.IndexFunc(line, unicode.IsSpace)
	if i < 0 {
		return strings.ToLower(line), ""
	}
	return strings.ToLower(line[:i]), strings.TrimSpace(line[i:])
}

func parseDeadline(args string) (command.Command, error) {
	i := strings.Index(args, "/by")
	if i < 0 {
		return nil, command.Syntax(msgNeedBy)
	}
	return &command.AddDeadline{
		Description: strings.TrimSpace(args[:i]),
		By:          strings.TrimSpace(args[i+len("/by"):]),
	}, nil
}

func parseEvent(args string) (command.Command, error) {
	from := strings.Index(args, "/from")
	if from < 0 {
		return nil, command.Syntax(msgNeedSpan)
	}
	rest := args[from+len("/from"):]
	to := strings.Index(rest, "/to")
	if to < 0 {
		return nil, command.Syntax(msgNeedSpan)
	}
	return &command.AddEvent{
		Description: strings.TrimSpace(args[:from]),
		From:        strings.TrimSpace(rest[:to]),
		To:          strings.TrimSpace(rest[to+len("/to"):]),
	}, nil
}

func parseIndex(args string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(args))
	if err != nil {
		return 0, command.Syntax(msgIndex)
	}
	return n, nil
}

func parseSchedule(args string) (command.Command, error) {
	if args == "" {
		return nil, command.Syntax(msgNeedSch)
	}
	if strings.EqualFold(args, "today") {
		return &command.Schedule{Today: true}, nil
	}
	day, err := datetime.ParseDate(args)
	if err != nil {
		return nil, &command.Error{Kind: command.KindDateTime, Err: err}
	}
	return &command.Schedule{Date: day}, nil
}
