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

// Package test contains tests that apply to multiple aggregator
// packages.
package test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/telemetryhq/metricsdk/aggregator"
	"github.com/telemetryhq/metricsdk/aggregator/aggregation"
	"github.com/telemetryhq/metricsdk/number"
	"github.com/telemetryhq/metricsdk/sdkinstrument"
)

// ReadValue extracts the current value of any supported aggregation,
// reporting whether the aggregation holds data.
func ReadValue(agg aggregation.Aggregation) (number.Number, bool) {
	switch a := agg.(type) {
	case aggregation.LastValue:
		num, _, err := a.LastValue()
		if err != nil {
			return 0, false
		}
		return num, true
	case aggregation.HasASum:
		return a.Sum(), true
	}
	return 0, false
}

// GenericAggregatorTest checks the contract shared by every
// aggregator kind: a stable Kind identity, and kind-checked two-cell
// operations that reject an incompatible peer without modifying
// either side.
func GenericAggregatorTest(
	t *testing.T,
	desc sdkinstrument.Descriptor,
	factory func() aggregator.Aggregator,
	incompatible func() aggregator.Aggregator,
) {
	ctx := aggregator.ContextWithTimestamp(context.Background(), time.Unix(10, 0))

	t.Run("kind_identity", func(t *testing.T) {
		a := factory()
		b := factory()

		require.NotEqual(t, aggregation.UndefinedKind, a.Aggregation().Kind())
		require.Equal(t, a.Aggregation().Kind(), b.Aggregation().Kind())
		require.NotEqual(t, a.Aggregation().Kind(), incompatible().Aggregation().Kind())
	})

	t.Run("inconsistent_merge", func(t *testing.T) {
		a := factory()
		peer := incompatible()

		require.NoError(t, a.Update(ctx, number.FromInt64(17), desc))
		require.NoError(t, peer.Update(ctx, number.FromInt64(23), desc))

		before, haveBefore := ReadValue(a.Aggregation())
		peerBefore, _ := ReadValue(peer.Aggregation())

		err := a.Merge(peer, desc)
		require.Error(t, err)
		require.ErrorIs(t, err, aggregator.ErrInconsistentAggregator)

		after, haveAfter := ReadValue(a.Aggregation())
		peerAfter, _ := ReadValue(peer.Aggregation())

		require.Equal(t, haveBefore, haveAfter)
		require.Equal(t, before, after)
		require.Equal(t, peerBefore, peerAfter)
	})

	t.Run("inconsistent_move", func(t *testing.T) {
		a := factory()
		peer := incompatible()

		require.NoError(t, a.Update(ctx, number.FromInt64(17), desc))

		before, _ := ReadValue(a.Aggregation())

		err := a.SynchronizedMove(peer, desc)
		require.Error(t, err)
		require.ErrorIs(t, err, aggregator.ErrInconsistentAggregator)

		after, _ := ReadValue(a.Aggregation())
		require.Equal(t, before, after)
	})

	t.Run("self_operations", func(t *testing.T) {
		a := factory()
		require.NoError(t, a.Update(ctx, number.FromInt64(17), desc))

		before, _ := ReadValue(a.Aggregation())

		require.NoError(t, a.Merge(a, desc))
		require.NoError(t, a.SynchronizedMove(a, desc))

		after, _ := ReadValue(a.Aggregation())
		require.Equal(t, before, after)
	})
}
