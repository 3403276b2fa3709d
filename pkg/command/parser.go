package command

import (
	"strings"

	"hollowbot/pkg/chat"
)

// DefaultPrefix is the command marker the bot ships with.
const DefaultPrefix = "#"

// Command is one parsed command: a lowercase verb, the untouched argument
// remainder, and the message it came from. Handlers own any further
// tokenization of Args.
type Command struct {
	Verb string
	Args string
	Msg  chat.Message
}

// Parse classifies message text as a command.
//
// Text that does not start with the prefix is ordinary chat and yields no
// command. Verb existence is not validated here: unknown verbs simply match
// no route downstream, so stray prefixed noise from other bots never draws a
// reply.
func Parse(msg chat.Message, prefix string) (Command, bool) {
	if prefix == "" {
		prefix = DefaultPrefix
	}

	body := strings.TrimSpace(msg.Text)
	if !strings.HasPrefix(body, prefix) {
		return Command{}, false
	}

	verb := body
	args := ""
	if boundary := strings.IndexFunc(body, isSpace); boundary >= 0 {
		verb = body[:boundary]
		args = strings.TrimSpace(body[boundary:])
	}

	verb = strings.ToLower(strings.TrimPrefix(verb, prefix))
	if verb == "" {
		return Command{}, false
	}

	return Command{Verb: verb, Args: args, Msg: msg}, true
}

func isSpace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\r':
		return true
	default:
		return false
	}
}
