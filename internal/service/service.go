package service

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/neekrasov/idgen/pkg/snowflake"
	pkgsync "github.com/neekrasov/idgen/pkg/sync"
)

const (
	objectNamePrefix    = "raw-data_"
	objectNameExtension = ".json"

	defaultMaxBatchSize = 100
)

var (
	// ErrTimeout - the caller deadline expired before the generator returned.
	ErrTimeout = errors.New("id generation timed out")

	// ErrInvalidBatchSize - requested batch size is outside [1, max batch size].
	ErrInvalidBatchSize = errors.New("invalid batch size")

	// ErrEmptyFileName - object name requested for an empty file name.
	ErrEmptyFileName = errors.New("empty file name")
)

// IDGenerator - the node-local source of ids.
type IDGenerator interface {
	Generate() (snowflake.ID, error)
	Stats() snowflake.Stats
	DatacenterID() int64
	MachineID() int64
}

// FileMapping - pairs an uploaded file name with the object name minted for it.
type FileMapping struct {
	Original string       `json:"original"`
	Object   string       `json:"object"`
	ID       snowflake.ID `json:"id"`
}

// Identity - node identity and scheme constants.
type Identity struct {
	DatacenterID int64 `json:"datacenter_id"`
	MachineID    int64 `json:"machine_id"`
	Epoch        int64 `json:"epoch"`
}

// Stats - generator counters plus the calls abandoned on timeout.
type Stats struct {
	snowflake.Stats
	Timeouts uint64 `json:"timeouts"`
}

// Option - functional option for Service.
type Option func(*Service)

// WithTimeout bounds every generation call. Zero disables the bound.
func WithTimeout(timeout time.Duration) Option {
	return func(s *Service) {
		s.timeout = timeout
	}
}

// WithMaxBatchSize limits the number of ids returned by NextBatch.
func WithMaxBatchSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.maxBatchSize = size
		}
	}
}

// Service - caller-facing wrapper around a single generator.
type Service struct {
	gen          IDGenerator
	timeout      time.Duration
	maxBatchSize int

	timeouts atomic.Uint64
}

type generateResult struct {
	id  snowflake.ID
	err error
}

// New - creates a Service over gen.
func New(gen IDGenerator, opts ...Option) *Service {
	s := &Service{
		gen:          gen,
		maxBatchSize: defaultMaxBatchSize,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Next returns one id. If ctx is done or the configured timeout expires
// before the generator answers, Next returns ErrTimeout; the generator call
// itself is not interrupted and its id is discarded.
func (s *Service) Next(ctx context.Context) (snowflake.ID, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	if ctx.Done() == nil {
		return s.gen.Generate()
	}

	if err := ctx.Err(); err != nil {
		s.timeouts.Add(1)
		return 0, fmt.Errorf("%w: %w", ErrTimeout, err)
	}

	future := pkgsync.NewFuture[generateResult]()
	go func() {
		id, err := s.gen.Generate()
		future.Set(generateResult{id: id, err: err})
	}()

	res, err := future.GetContext(ctx)
	if err != nil {
		s.timeouts.Add(1)
		return 0, fmt.Errorf("%w: %w", ErrTimeout, err)
	}

	return res.id, res.err
}

// NextBatch returns n ids in generation order.
func (s *Service) NextBatch(ctx context.Context, n int) ([]snowflake.ID, error) {
	if n < 1 || n > s.maxBatchSize {
		return nil, fmt.Errorf("%w: %d not in [1, %d]", ErrInvalidBatchSize, n, s.maxBatchSize)
	}

	ids := make([]snowflake.ID, 0, n)
	for i := 0; i < n; i++ {
		id, err := s.Next(ctx)
		if err != nil {
			return nil, fmt.Errorf("generate id %d of %d: %w", i+1, n, err)
		}
		ids = append(ids, id)
	}

	return ids, nil
}

// ObjectName mints an id for the file and derives the object name stored under it.
func (s *Service) ObjectName(ctx context.Context, fileName string) (FileMapping, error) {
	if fileName == "" {
		return FileMapping{}, ErrEmptyFileName
	}

	id, err := s.Next(ctx)
	if err != nil {
		return FileMapping{}, err
	}

	return FileMapping{
		Original: fileName,
		Object:   ObjectName(id),
		ID:       id,
	}, nil
}

// ObjectName - object name for a raw data record with the given id.
func ObjectName(id snowflake.ID) string {
	return objectNamePrefix + id.String() + objectNameExtension
}

// Decode splits an id into its fields.
func (s *Service) Decode(id snowflake.ID) snowflake.Parts {
	return id.Decompose()
}

func (s *Service) Identity() Identity {
	return Identity{
		DatacenterID: s.gen.DatacenterID(),
		MachineID:    s.gen.MachineID(),
		Epoch:        snowflake.Epoch,
	}
}

func (s *Service) MaxBatchSize() int {
	return s.maxBatchSize
}

func (s *Service) Stats() Stats {
	return Stats{
		Stats:    s.gen.Stats(),
		Timeouts: s.timeouts.Load(),
	}
}
