package compute

import (
	"errors"
	"strings"
)

const HelpText = `
Available commands:

  Identifier commands:
    next [count] - Generate one id, or count ids separated by spaces.
    decode <id> - Show the creation time and node identity packed into an id.
    name <file> - Generate an id and the object name to store the file under.

  Node commands:
    info - Display the node identity and id scheme.
    stat - Display generator statistics.

  Session commands:
    login <username> <password> - Authenticate the connection.
    help - Display this help message.
`

var (
	// ErrInvalidCommand - indicates an invalid command or incorrect arguments.
	ErrInvalidCommand = errors.New("invalid command")

	// ErrInvalidSyntax - is returned when a query has invalid syntax.
	ErrInvalidSyntax = errors.New("invalid syntax")
)

// CommandType - represents the type of a user command.
type CommandType string

const (
	CommandUNKNOWN CommandType = "unknown"

	// Identifier commands
	CommandNEXT   CommandType = "next"
	CommandDECODE CommandType = "decode"
	CommandNAME   CommandType = "name"

	// Node commands
	CommandINFO CommandType = "info"
	CommandSTAT CommandType = "stat"

	// Session commands
	CommandAUTH CommandType = "login"
	CommandHELP CommandType = "help"
)

// arity - accepted number of arguments per command.
var arity = map[CommandType]struct{ min, max int }{
	CommandNEXT:   {0, 1},
	CommandDECODE: {1, 1},
	CommandNAME:   {1, 1},
	CommandINFO:   {0, 0},
	CommandSTAT:   {0, 0},
	CommandAUTH:   {2, 2},
	CommandHELP:   {0, 0},
}

// String - convert CommandType into string.
func (cmd CommandType) String() string {
	return string(cmd)
}

// Make - creates a line containing a command with an arbitrary number of arguments.
func (cmd CommandType) Make(args ...string) string {
	if len(args) == 0 {
		return cmd.String()
	}

	return cmd.String() + " " + strings.Join(args, " ")
}

// Command - represents a user command with a type and its arguments.
type Command struct {
	Type CommandType // The type of the command.
	Args []string    // The positional arguments of the command.
}
