// Copyright The OpenTelemetry Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package accumulator

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/telemetryhq/metricsdk/aggregator"
	"github.com/telemetryhq/metricsdk/aggregator/aggregation"
	"github.com/telemetryhq/metricsdk/aggregator/lastvalue"
	"github.com/telemetryhq/metricsdk/aggregator/sum"
	"github.com/telemetryhq/metricsdk/data"
	"github.com/telemetryhq/metricsdk/number"
	"github.com/telemetryhq/metricsdk/sdkinstrument"
	"go.opentelemetry.io/otel/attribute"
)

var (
	gaugeDesc = sdkinstrument.NewDescriptor(
		"cpu.frequency", sdkinstrument.SyncGauge, number.Int64Kind, "", "Hz")
	counterDesc = sdkinstrument.NewDescriptor(
		"requests", sdkinstrument.SyncCounter, number.Int64Kind, "", "")
)

func lastValueFactory() aggregator.Aggregator {
	return lastvalue.NewInt64(aggregator.Config{})
}

func sumFactory() aggregator.Aggregator {
	return sum.NewMonotonicInt64(aggregator.Config{})
}

func ctxAt(ns int64) context.Context {
	return aggregator.ContextWithTimestamp(context.Background(), time.Unix(0, ns))
}

func requireLastValue(t *testing.T, p data.Point, ns, value int64) {
	t.Helper()
	lv, ok := p.Aggregation.(aggregation.LastValue)
	require.True(t, ok)
	num, ts, err := lv.LastValue()
	require.NoError(t, err)
	require.Equal(t, value, number.ToInt64(num))
	require.True(t, ts.Equal(time.Unix(0, ns)))
}

func TestAccumulatorCycle(t *testing.T) {
	acc := New(gaugeDesc, attribute.NewSet(), lastValueFactory)

	require.NoError(t, acc.Update(ctxAt(100), number.FromInt64(3)))
	require.NoError(t, acc.Update(ctxAt(200), number.FromInt64(7)))

	var points []data.Point
	require.NoError(t, acc.Collect(&points))
	require.Len(t, points, 1)
	requireLastValue(t, points[0], 200, 7)

	// A cycle without updates re-reports the cumulative last value.
	points = nil
	require.NoError(t, acc.Collect(&points))
	require.Len(t, points, 1)
	requireLastValue(t, points[0], 200, 7)

	// An older-timestamped measurement recorded in a later cycle
	// does not displace the newer point already in the output
	// cell: the fold keeps the most recent timestamp.
	require.NoError(t, acc.Update(ctxAt(50), number.FromInt64(9)))
	points = nil
	require.NoError(t, acc.Collect(&points))
	require.Len(t, points, 1)
	requireLastValue(t, points[0], 200, 7)
}

func TestAccumulatorEmpty(t *testing.T) {
	acc := New(gaugeDesc, attribute.NewSet(), lastValueFactory)

	var points []data.Point
	require.NoError(t, acc.Collect(&points))
	require.Empty(t, points)
}

func TestAccumulatorDropsInvalid(t *testing.T) {
	acc := New(counterDesc, attribute.NewSet(), sumFactory)

	require.NoError(t, acc.Update(context.Background(), number.FromInt64(5)))
	// Negative input for a monotonic instrument is dropped,
	// not an operation failure.
	require.NoError(t, acc.Update(context.Background(), number.FromInt64(-5)))

	var points []data.Point
	require.NoError(t, acc.Collect(&points))
	require.Len(t, points, 1)

	s, ok := points[0].Aggregation.(aggregation.Sum)
	require.True(t, ok)
	require.Equal(t, int64(5), number.ToInt64(s.Sum()))
}

func TestAccumulatorConcurrent(t *testing.T) {
	const workers = 4
	const ops = 1e4

	acc := New(gaugeDesc, attribute.NewSet(), lastValueFactory)

	var wg sync.WaitGroup
	wg.Add(workers)

	for i := 0; i < workers; i++ {
		go func(i int) {
			defer wg.Done()
			for j := 0; j < ops/workers; j++ {
				_ = acc.Update(ctxAt(int64(i+1)), number.FromInt64(int64(i+1)))
			}
		}(i)
	}

	// Collect concurrently with the updates; every observed point
	// must pair a value with its own timestamp.
	for k := 0; k < 100; k++ {
		var points []data.Point
		require.NoError(t, acc.Collect(&points))
		for _, p := range points {
			lv := p.Aggregation.(aggregation.LastValue)
			num, ts, err := lv.LastValue()
			require.NoError(t, err)
			require.True(t, ts.Equal(time.Unix(0, number.ToInt64(num))),
				"value and timestamp from different updates")
		}
	}

	wg.Wait()
}

func TestSetStreams(t *testing.T) {
	set := NewSet(gaugeDesc, sdkinstrument.Performance{}, lastValueFactory)

	require.NoError(t, set.Update(ctxAt(100), number.FromInt64(1), attribute.String("host", "a")))
	require.NoError(t, set.Update(ctxAt(200), number.FromInt64(2), attribute.String("host", "b")))
	require.NoError(t, set.Update(ctxAt(300), number.FromInt64(3), attribute.String("host", "a")))

	var output []data.Instrument
	require.NoError(t, set.Collect(data.Sequence{}, &output))
	require.Len(t, output, 1)
	require.Equal(t, gaugeDesc, output[0].Descriptor)
	require.Len(t, output[0].Points, 2)
	require.Equal(t, 2, set.Size())

	byHost := map[attribute.Distinct]data.Point{}
	for _, p := range output[0].Points {
		byHost[p.Attributes.Equivalent()] = p
	}
	hostA := attribute.NewSet(attribute.String("host", "a"))
	hostB := attribute.NewSet(attribute.String("host", "b"))
	requireLastValue(t, byHost[hostA.Equivalent()], 300, 3)
	requireLastValue(t, byHost[hostB.Equivalent()], 200, 2)
}

func TestSetInactiveRelease(t *testing.T) {
	set := NewSet(gaugeDesc, sdkinstrument.Performance{
		InactiveCollectionPeriods: 1,
	}, lastValueFactory)

	require.NoError(t, set.Update(ctxAt(100), number.FromInt64(1), attribute.String("host", "a")))

	var output []data.Instrument
	require.NoError(t, set.Collect(data.Sequence{}, &output))
	require.Equal(t, 1, set.Size())

	// No updates since the last collection: the stream is
	// checkpointed one final time and released.
	output = nil
	require.NoError(t, set.Collect(data.Sequence{}, &output))
	require.Len(t, output[0].Points, 1)
	require.Equal(t, 0, set.Size())
}

func TestSetCardinalityOverflow(t *testing.T) {
	set := NewSet(gaugeDesc, sdkinstrument.Performance{
		AggregatorCardinalityLimit: 1,
	}, lastValueFactory)

	require.NoError(t, set.Update(ctxAt(100), number.FromInt64(1), attribute.String("host", "a")))
	require.NoError(t, set.Update(ctxAt(200), number.FromInt64(2), attribute.String("host", "b")))
	require.NoError(t, set.Update(ctxAt(300), number.FromInt64(3), attribute.String("host", "c")))

	// Streams beyond the limit fold into the single overflow
	// stream.
	require.Equal(t, 2, set.Size())

	var output []data.Instrument
	require.NoError(t, set.Collect(data.Sequence{}, &output))
	require.Len(t, output[0].Points, 2)

	overflowSet := attribute.NewSet(OverflowAttributes...)
	overflowKey := overflowSet.Equivalent()
	var found bool
	for _, p := range output[0].Points {
		if p.Attributes.Equivalent() == overflowKey {
			found = true
			requireLastValue(t, p, 300, 3)
		}
	}
	require.True(t, found, "missing overflow stream")
}

func TestSetCumulativeSums(t *testing.T) {
	set := NewSet(counterDesc, sdkinstrument.Performance{}, sumFactory)

	ctx := context.Background()
	require.NoError(t, set.Update(ctx, number.FromInt64(5)))

	var output []data.Instrument
	require.NoError(t, set.Collect(data.Sequence{}, &output))

	require.NoError(t, set.Update(ctx, number.FromInt64(7)))
	output = nil
	require.NoError(t, set.Collect(data.Sequence{}, &output))

	require.Len(t, output[0].Points, 1)
	s := output[0].Points[0].Aggregation.(aggregation.Sum)
	require.Equal(t, int64(12), number.ToInt64(s.Sum()))
}
