package command

import (
	"fmt"
	"strings"

	"github.com/nibzard/cathy-go/internal/task"
)

// Logo is shown above the welcome message.
const Logo = "  ____      _   _          \n" +
	" / ___|__ _| |_| |__  _   _ \n" +
	"| |   / _` | __| '_ \\| | | |\n" +
	"| |__| (_| | |_| | | | |_| |\n" +
	" \\____\\__,_|\\__|_| |_|\\__, |\n" +
	"                       __| |\n" +
	"                       |___/\n"

const commandReference = "Here's some quick commands:\n" +
	"- todo <task>\n" +
	"- deadline <task> /by <date> <time>\n" +
	"- event <task> /from <date> <time> /to <date> <time>\n" +
	"- list : to see your tasks\n" +
	"- mark / unmark / delete <number> : to update tasks\n" +
	"- find <keyword> / on <date> : to search\n" +
	"- sch <date> | sch today : to see schedule on specific date\n" +
	"- bye : to leave me in peace\n\n" +
	"Type 'help' to see this list of commands again.\n\n" +
	"Note: <date> <time> is in the form of YYYY-MM-DD HH:MM.\n" +
	"Try not to mess it up.\n\n"

// Welcome is the greeting shown when a session starts.
func Welcome() string {
	return "Oh look, someone showed up.\n" +
		"I'm Cathy, your underappreciated task assistant.\n\n" +
		commandReference +
		"Even I can't help the clueless sometimes."
}

// HelpText is the reply to the help command.
func HelpText() string {
	return "Ugh... you again?\n" +
		"Fine, I'll repeat it. Pay attention this time.\n\n" +
		"I'm Cathy, your underappreciated task assistant.\n\n" +
		commandReference +
		"And yes, I'll never repeat this again... so maybe try reading this carefully."
}

// Farewell is the reply to the exit command.
const Farewell = "Bye. Hope to see you again soon!"

const (
	msgEmptyList   = "Wow... nothing. Your life must be thrilling."
	msgNoMatches   = "No matching tasks. Guess your memory is as bad as your typing."
	msgNothingOn   = "Nothing on that day. Must be nice to be free for once."
	msgBlankToDo   = "Excuse you! Trying to add a todo with no description?\nUse: todo <desc> and try not to waste my time."
	msgBlankDue    = "Wow. That's not even close to a proper deadline format.\nUse: deadline <desc> /by <date> and try not to waste my time."
	msgBlankEvent  = "'event'... and then silence. Inspiring.\nTry: event <desc> /from <start> /to <end>. Give me *something* to work with."
	msgMissingBy   = "Seriously? That deadline format is a mess.\nTry again like you actually read the instructions: deadline <desc> /by <date>"
	msgMissingSpan = "Invalid event format. Did you even try?\nUse: event <desc> /from <start> /to <end>. It's not that hard."
	msgMissingOn   = "Use: on yyyy-MM-dd"
	msgBadOnDate   = "That date makes no sense. Use yyyy-MM-dd. Try again."
	msgAlreadyDone = "Darling, that task's already done. No need to be an overachiever."
	msgNoSuchTask  = "Nice try, but that task doesn't even exist."
)

func blankDescription(kind task.Kind) *Error {
	switch kind {
	case task.KindToDo:
		return validation(msgBlankToDo)
	case task.KindDeadline:
		return validation(msgBlankDue)
	case task.KindEvent:
		return validation(msgBlankEvent)
	default:
		return validation("Hmm... fascinating gibberish.")
	}
}

func addedReply(t task.Task, count int) string {
	return "Fine, I've added to the list:\n" +
		"  " + t.String() +
		fmt.Sprintf("\nYou've got %d tasks now. Try not to lose track this time.", count)
}

func deletedReply(t task.Task, count int) string {
	return "Noted. I've removed this task:\n" +
		"   " + t.String() +
		"\nOne less thing for you to forget." +
		fmt.Sprintf("\nYou've got %d tasks now.", count)
}

func markedReply(t task.Task) string {
	return "Marked as done. Go ahead, feel proud for once:\n   " + t.String()
}

func unmarkedReply(t task.Task) string {
	return "Fine, it lives to torment you another day:\n   " + t.String()
}

// numbered renders tasks as a 1-based list under header.
func numbered(header string, tasks []task.Task) string {
	var b strings.Builder
	b.WriteString(header)
	for i, t := range tasks {
		fmt.Fprintf(&b, "\n%d. %s", i+1, t)
	}
	return b.String()
}
