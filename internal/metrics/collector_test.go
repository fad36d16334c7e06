package metrics_test

import (
	"context"
	"strings"
	"testing"

	"github.com/neekrasov/idgen/internal/metrics"
	"github.com/neekrasov/idgen/internal/service"
	"github.com/neekrasov/idgen/pkg/snowflake"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSource struct {
	stats    service.Stats
	identity service.Identity
}

func (s stubSource) Stats() service.Stats       { return s.stats }
func (s stubSource) Identity() service.Identity { return s.identity }

func newStubSource() stubSource {
	return stubSource{
		stats: service.Stats{
			Stats: snowflake.Stats{
				Generated:         42,
				SequenceExhausted: 3,
				ClockRegressions:  1,
			},
			Timeouts: 2,
		},
		identity: service.Identity{DatacenterID: 4, MachineID: 9, Epoch: snowflake.Epoch},
	}
}

func TestCollector(t *testing.T) {
	t.Parallel()

	collector := metrics.NewCollector(newStubSource())

	expected := `
# HELP idgen_clock_regressions_total Calls rejected because the clock moved backwards
# TYPE idgen_clock_regressions_total counter
idgen_clock_regressions_total 1
# HELP idgen_ids_generated_total IDs issued since start
# TYPE idgen_ids_generated_total counter
idgen_ids_generated_total 42
# HELP idgen_node_info Node identity gauge=1
# TYPE idgen_node_info gauge
idgen_node_info{datacenter="4",machine="9"} 1
# HELP idgen_sequence_exhausted_total Waits for the next millisecond after the sequence wrapped
# TYPE idgen_sequence_exhausted_total counter
idgen_sequence_exhausted_total 3
# HELP idgen_timeouts_total Calls abandoned on deadline
# TYPE idgen_timeouts_total counter
idgen_timeouts_total 2
`
	require.NoError(t, testutil.CollectAndCompare(collector, strings.NewReader(expected)))
	assert.Equal(t, 5, testutil.CollectAndCount(collector))
}

func TestCollector_Lint(t *testing.T) {
	t.Parallel()

	problems, err := testutil.CollectAndLint(metrics.NewCollector(newStubSource()))
	require.NoError(t, err)
	assert.Empty(t, problems)
}

func TestCollector_ReadsLiveService(t *testing.T) {
	t.Parallel()

	gen, err := snowflake.New(1, 2)
	require.NoError(t, err)
	svc := service.New(gen)

	collector := metrics.NewCollector(svc)
	_, err = svc.NextBatch(context.Background(), 5)
	require.NoError(t, err)

	expected := `
# HELP idgen_ids_generated_total IDs issued since start
# TYPE idgen_ids_generated_total counter
idgen_ids_generated_total 5
`
	require.NoError(t, testutil.CollectAndCompare(collector, strings.NewReader(expected), "idgen_ids_generated_total"))
}
