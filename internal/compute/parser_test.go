package compute

import (
	"fmt"
	"testing"

	"github.com/neekrasov/idgen/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_TableDriven(t *testing.T) {
	t.Parallel()
	logger.MockLogger()

	tests := []struct {
		name        string
		query       string
		expectedCmd *Command
		expectedErr error
	}{
		{
			name:        "Next without count",
			query:       "next",
			expectedCmd: &Command{Type: CommandNEXT, Args: []string{}},
		},
		{
			name:        "Next with count and extra spaces",
			query:       "  next   25 ",
			expectedCmd: &Command{Type: CommandNEXT, Args: []string{"25"}},
		},
		{
			name:        "Decode",
			query:       CommandDECODE.Make("4198489227591680"),
			expectedCmd: &Command{Type: CommandDECODE, Args: []string{"4198489227591680"}},
		},
		{
			name:        "Login",
			query:       "login root secret",
			expectedCmd: &Command{Type: CommandAUTH, Args: []string{"root", "secret"}},
		},
		{
			name:        "Next with too many args",
			query:       "next 1 2",
			expectedErr: fmt.Errorf("%w: next command takes from 0 to 1 arguments", ErrInvalidCommand),
		},
		{
			name:        "Decode without id",
			query:       "decode",
			expectedErr: fmt.Errorf("%w: decode command requires exactly 1 arguments", ErrInvalidCommand),
		},
		{
			name:        "Stat with args",
			query:       "stat now",
			expectedErr: fmt.Errorf("%w: stat command takes no arguments", ErrInvalidCommand),
		},
		{
			name:        "Empty Query",
			query:       "",
			expectedErr: fmt.Errorf("%w: query cannot be empty", ErrInvalidSyntax),
		},
		{
			name:        "Invalid Query (whitespace)",
			query:       "   ",
			expectedErr: fmt.Errorf("%w: query cannot be empty", ErrInvalidSyntax),
		},
		{
			name:        "Invalid Query (unknown command)",
			query:       "NEXT 1",
			expectedErr: fmt.Errorf("%w: unrecognized command 'NEXT'", ErrInvalidCommand),
		},
	}

	parser := NewParser()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, err := parser.Parse(tt.query)

			if tt.expectedErr != nil {
				require.Error(t, err)
				assert.Equal(t, tt.expectedErr.Error(), err.Error())
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expectedCmd.Type, cmd.Type)
			assert.Equal(t, tt.expectedCmd.Args, cmd.Args)
		})
	}
}

func TestCommandType_Make(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "next", CommandNEXT.Make())
	assert.Equal(t, "next 10", CommandNEXT.Make("10"))
	assert.Equal(t, "login user pass", CommandAUTH.Make("user", "pass"))
}
