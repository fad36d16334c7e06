package node

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/neekrasov/idgen/internal/compute"
	"github.com/neekrasov/idgen/internal/service"
	"github.com/neekrasov/idgen/pkg/ctxutil"
	"github.com/neekrasov/idgen/pkg/logger"
	"github.com/neekrasov/idgen/pkg/snowflake"
	"go.uber.org/zap"
)

const timeLayout = "2006-01-02T15:04:05.000Z07:00"

// IDService - operations the node exposes over the wire.
type IDService interface {
	Next(ctx context.Context) (snowflake.ID, error)
	NextBatch(ctx context.Context, n int) ([]snowflake.ID, error)
	ObjectName(ctx context.Context, fileName string) (service.FileMapping, error)
	Decode(id snowflake.ID) snowflake.Parts
	Identity() service.Identity
	Stats() service.Stats
}

// Parser - turns raw queries into commands.
type Parser interface {
	Parse(query string) (*compute.Command, error)
}

// Node - executes text queries against the id service.
type Node struct {
	parser      Parser
	service     IDService
	credentials *Credentials
}

// New - creates a Node. Nil credentials disable authentication.
func New(parser Parser, svc IDService, credentials *Credentials) *Node {
	return &Node{
		parser:      parser,
		service:     svc,
		credentials: credentials,
	}
}

// AuthRequired reports whether connections must log in before querying.
func (n *Node) AuthRequired() bool {
	return n.credentials != nil
}

// Login - authenticates a connection with a 'login <username> <password>' query.
func (n *Node) Login(ctx context.Context, query string) error {
	cmd, err := n.parser.Parse(query)
	if err != nil {
		return err
	}

	if cmd.Type != compute.CommandAUTH {
		return ErrAuthRequired
	}

	return n.login(ctx, cmd.Args)
}

func (n *Node) login(ctx context.Context, args []string) error {
	if n.credentials == nil {
		return nil
	}

	if err := n.credentials.verify(args[0], args[1]); err != nil {
		logger.Debug("login failed",
			zap.String("session", ctxutil.ExtractSessionID(ctx)),
			zap.String("username", args[0]))
		return err
	}

	return nil
}

// HandleQuery - executes a query and returns a '[ok]' or '[error]' prefixed response.
func (n *Node) HandleQuery(ctx context.Context, query string) string {
	result, err := n.handle(ctx, query)
	if err != nil {
		fields := []zap.Field{
			zap.String("session", ctxutil.ExtractSessionID(ctx)),
			zap.String("remote_addr", ctxutil.ExtractRemoteAddr(ctx)),
			zap.Error(err),
		}

		switch {
		case errors.Is(err, snowflake.ErrClockRegression), errors.Is(err, snowflake.ErrClockOutOfRange):
			logger.Warn("id generation rejected", fields...)
		case errors.Is(err, service.ErrTimeout):
			logger.Warn("id generation timed out", fields...)
		default:
			logger.Debug("query failed", fields...)
		}

		return WrapError(err)
	}

	return WrapOK(result)
}

func (n *Node) handle(ctx context.Context, query string) (string, error) {
	cmd, err := n.parser.Parse(query)
	if err != nil {
		return "", err
	}

	switch cmd.Type {
	case compute.CommandNEXT:
		return n.next(ctx, cmd.Args)
	case compute.CommandDECODE:
		return n.decode(cmd.Args[0])
	case compute.CommandNAME:
		mapping, err := n.service.ObjectName(ctx, cmd.Args[0])
		if err != nil {
			return "", err
		}
		return mapping.Object + " " + mapping.ID.String(), nil
	case compute.CommandINFO:
		return n.info(), nil
	case compute.CommandSTAT:
		return n.stat(), nil
	case compute.CommandAUTH:
		if err := n.login(ctx, cmd.Args); err != nil {
			return "", err
		}
		return "authentication successful", nil
	case compute.CommandHELP:
		return compute.HelpText, nil
	}

	return "", fmt.Errorf("%w: unrecognized command '%s'", compute.ErrInvalidCommand, cmd.Type)
}

func (n *Node) next(ctx context.Context, args []string) (string, error) {
	if len(args) == 0 {
		id, err := n.service.Next(ctx)
		if err != nil {
			return "", err
		}
		return id.String(), nil
	}

	count, err := strconv.Atoi(args[0])
	if err != nil {
		return "", fmt.Errorf("%w: count '%s' is not a number", compute.ErrInvalidCommand, args[0])
	}

	ids, err := n.service.NextBatch(ctx, count)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	for i, id := range ids {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(id.String())
	}

	return sb.String(), nil
}

func (n *Node) decode(arg string) (string, error) {
	id, err := snowflake.ParseID(arg)
	if err != nil {
		return "", err
	}

	parts := n.service.Decode(id)
	return fmt.Sprintf("timestamp=%s datacenter=%d machine=%d sequence=%d",
		parts.Time.Format(timeLayout), parts.DatacenterID, parts.MachineID, parts.Sequence), nil
}

func (n *Node) info() string {
	identity := n.service.Identity()
	return fmt.Sprintf("datacenter=%d machine=%d epoch=%s layout=%d/%d/%d/%d",
		identity.DatacenterID, identity.MachineID,
		time.UnixMilli(identity.Epoch).UTC().Format(timeLayout),
		snowflake.TimestampBits, snowflake.DatacenterIDBits, snowflake.MachineIDBits, snowflake.SequenceBits)
}

func (n *Node) stat() string {
	stats := n.service.Stats()
	return fmt.Sprintf("generated=%d sequence_exhausted=%d clock_regressions=%d timeouts=%d",
		stats.Generated, stats.SequenceExhausted, stats.ClockRegressions, stats.Timeouts)
}
