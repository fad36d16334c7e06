package snowflake

import (
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
)

const (
	// Epoch - reference instant of the scheme, 2025-03-10T12:58:17Z in Unix milliseconds.
	Epoch int64 = 1741611497000

	SequenceBits     = 12
	MachineIDBits    = 5
	DatacenterIDBits = 5
	TimestampBits    = 64 - DatacenterIDBits - MachineIDBits - SequenceBits

	MachineIDShift    = SequenceBits
	DatacenterIDShift = SequenceBits + MachineIDBits
	TimestampShift    = SequenceBits + MachineIDBits + DatacenterIDBits

	SequenceMask    int64 = 1<<SequenceBits - 1
	MaxMachineID    int64 = 1<<MachineIDBits - 1
	MaxDatacenterID int64 = 1<<DatacenterIDBits - 1
	MaxTimestamp    int64 = 1<<TimestampBits - 1
)

// Option configures a Generator.
type Option func(*Generator)

// WithClock replaces the system clock.
func WithClock(clock Clock) Option {
	return func(g *Generator) {
		if clock != nil {
			g.clock = clock
		}
	}
}

// Stats - counters describing the generator activity since construction.
type Stats struct {
	Generated         uint64 `json:"generated"`          // IDs returned to callers.
	SequenceExhausted uint64 `json:"sequence_exhausted"` // Waits for the next millisecond.
	ClockRegressions  uint64 `json:"clock_regressions"`  // Calls rejected with ClockRegressionError.
}

// Generator issues unique, strictly increasing IDs for one node identity.
// It is safe for concurrent use.
type Generator struct {
	clock        Clock
	datacenterID int64
	machineID    int64

	mu                sync.Mutex
	previousTimestamp int64 // -1 until the first ID is issued.
	sequence          int64

	generated   atomic.Uint64
	exhausted   atomic.Uint64
	regressions atomic.Uint64
}

// New creates a generator for the node identity. Both ids must lie in [0, 31].
func New(datacenterID, machineID int64, opts ...Option) (*Generator, error) {
	if datacenterID < 0 || datacenterID > MaxDatacenterID {
		return nil, &ConfigError{Field: FieldDatacenterID, Value: datacenterID, Max: MaxDatacenterID}
	}

	if machineID < 0 || machineID > MaxMachineID {
		return nil, &ConfigError{Field: FieldMachineID, Value: machineID, Max: MaxMachineID}
	}

	g := &Generator{
		clock:             SystemClock,
		datacenterID:      datacenterID,
		machineID:         machineID,
		previousTimestamp: -1,
	}

	for _, opt := range opts {
		opt(g)
	}

	return g, nil
}

// Generate returns the next ID.
//
// A clock reading earlier than the last issued ID fails with a
// *ClockRegressionError and leaves the generator untouched, so a later call
// succeeds once the clock has recovered. When all 4096 sequence values of a
// millisecond are used, Generate spins until the clock advances; the wait has
// no deadline of its own.
func (g *Generator) Generate() (ID, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	timestamp, err := g.timestamp()
	if err != nil {
		return 0, err
	}

	if timestamp < g.previousTimestamp {
		g.regressions.Add(1)
		return 0, &ClockRegressionError{Previous: g.previousTimestamp, Current: timestamp}
	}

	var sequence int64
	if timestamp == g.previousTimestamp {
		sequence = (g.sequence + 1) & SequenceMask
		if sequence == 0 {
			g.exhausted.Add(1)
			if timestamp, err = g.waitAfter(g.previousTimestamp); err != nil {
				return 0, err
			}
		}
	}

	g.previousTimestamp = timestamp
	g.sequence = sequence
	g.generated.Add(1)

	return Compose(timestamp, g.datacenterID, g.machineID, sequence), nil
}

// waitAfter spins until the clock reads a millisecond later than last.
func (g *Generator) waitAfter(last int64) (int64, error) {
	for {
		runtime.Gosched()

		timestamp, err := g.timestamp()
		if err != nil {
			return 0, err
		}

		if timestamp > last {
			return timestamp, nil
		}
	}
}

func (g *Generator) timestamp() (int64, error) {
	now := g.clock.NowMilli()
	timestamp := now - Epoch
	if timestamp < 0 || timestamp > MaxTimestamp {
		return 0, fmt.Errorf("%w: %d ms", ErrClockOutOfRange, now)
	}

	return timestamp, nil
}

func (g *Generator) DatacenterID() int64 {
	return g.datacenterID
}

func (g *Generator) MachineID() int64 {
	return g.machineID
}

// Stats returns a snapshot of the generator counters.
func (g *Generator) Stats() Stats {
	return Stats{
		Generated:         g.generated.Load(),
		SequenceExhausted: g.exhausted.Load(),
		ClockRegressions:  g.regressions.Load(),
	}
}
