package compute

import (
	"fmt"
	"strings"

	"github.com/neekrasov/idgen/pkg/logger"
	"go.uber.org/zap"
)

// Parser - parses queries into commands.
type Parser struct{}

// NewParser - creates and returns a new instance of Parser.
func NewParser() *Parser {
	return &Parser{}
}

// Parse - converts the query string into a Command or returns an error for invalid syntax.
func (p *Parser) Parse(query string) (*Command, error) {
	tokens := strings.Fields(query)
	if len(tokens) == 0 {
		return nil, fmt.Errorf("%w: query cannot be empty", ErrInvalidSyntax)
	}

	logger.Debug("parsed tokens", zap.Int("count", len(tokens)), zap.String("command", tokens[0]))

	commandType := CommandType(tokens[0])
	args := tokens[1:]

	bounds, ok := arity[commandType]
	if !ok {
		return nil, fmt.Errorf("%w: unrecognized command '%s'", ErrInvalidCommand, tokens[0])
	}

	if len(args) < bounds.min || len(args) > bounds.max {
		return nil, fmt.Errorf("%w: %s", ErrInvalidCommand, arityMessage(commandType, bounds.min, bounds.max))
	}

	return &Command{Type: commandType, Args: args}, nil
}

func arityMessage(cmd CommandType, min, max int) string {
	switch {
	case min == max && min == 0:
		return fmt.Sprintf("%s command takes no arguments", cmd)
	case min == max:
		return fmt.Sprintf("%s command requires exactly %d arguments", cmd, min)
	default:
		return fmt.Sprintf("%s command takes from %d to %d arguments", cmd, min, max)
	}
}
