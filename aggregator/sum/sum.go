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

package sum // import "github.com/telemetryhq/metricsdk/aggregator/sum"

import (
	"context"

	"github.com/telemetryhq/metricsdk/aggregator"
	"github.com/telemetryhq/metricsdk/aggregator/aggregation"
	"github.com/telemetryhq/metricsdk/number"
	"github.com/telemetryhq/metricsdk/sdkinstrument"
)

// Sums carry no timestamps and need no mutex: the single value field
// is maintained with atomic traits operations.

type (
	// Properties distinguishes monotonic from non-monotonic sums.
	Properties interface {
		kind() aggregation.Kind
	}

	Monotonic    struct{}
	NonMonotonic struct{}

	// State is a sum aggregation cell.
	State[N number.Any, Traits number.Traits[N], Props Properties] struct {
		value N
	}

	MonotonicInt64      = State[int64, number.Int64Traits, Monotonic]
	NonMonotonicInt64   = State[int64, number.Int64Traits, NonMonotonic]
	MonotonicFloat64    = State[float64, number.Float64Traits, Monotonic]
	NonMonotonicFloat64 = State[float64, number.Float64Traits, NonMonotonic]
)

func (Monotonic) kind() aggregation.Kind {
	return aggregation.MonotonicSumKind
}

func (NonMonotonic) kind() aggregation.Kind {
	return aggregation.NonMonotonicSumKind
}

var (
	_ aggregator.Aggregator = &MonotonicInt64{}
	_ aggregator.Aggregator = &NonMonotonicInt64{}
	_ aggregator.Aggregator = &MonotonicFloat64{}
	_ aggregator.Aggregator = &NonMonotonicFloat64{}

	_ aggregation.Sum = &MonotonicInt64{}
	_ aggregation.Sum = &NonMonotonicInt64{}
	_ aggregation.Sum = &MonotonicFloat64{}
	_ aggregation.Sum = &NonMonotonicFloat64{}
)

// New returns a zero sum cell.
func New[N number.Any, Traits number.Traits[N], Props Properties](cfg aggregator.Config) *State[N, Traits, Props] {
	_ = cfg.Validate()
	return &State[N, Traits, Props]{}
}

func NewMonotonicInt64(cfg aggregator.Config) *MonotonicInt64 {
	return New[int64, number.Int64Traits, Monotonic](cfg)
}

func NewNonMonotonicInt64(cfg aggregator.Config) *NonMonotonicInt64 {
	return New[int64, number.Int64Traits, NonMonotonic](cfg)
}

func NewMonotonicFloat64(cfg aggregator.Config) *MonotonicFloat64 {
	return New[float64, number.Float64Traits, Monotonic](cfg)
}

func NewNonMonotonicFloat64(cfg aggregator.Config) *NonMonotonicFloat64 {
	return New[float64, number.Float64Traits, NonMonotonic](cfg)
}

// Aggregation implements aggregator.Aggregator.
func (s *State[N, Traits, Props]) Aggregation() aggregation.Aggregation {
	return s
}

// Kind returns the sum aggregation identity.
func (s *State[N, Traits, Props]) Kind() aggregation.Kind {
	var props Props
	return props.kind()
}

// Sum returns the current sum.
func (s *State[N, Traits, Props]) Sum() number.Number {
	var traits Traits
	return traits.ToNumber(traits.GetAtomic(&s.value))
}

// IsMonotonic indicates whether the sum accepts only non-negative
// increments.
func (s *State[N, Traits, Props]) IsMonotonic() bool {
	var props Props
	return props.kind() == aggregation.MonotonicSumKind
}

// Update adds one measurement to the sum.  Input screening (negative
// values for monotonic sums) belongs to the caller via
// aggregator.RangeTest.
func (s *State[N, Traits, Props]) Update(_ context.Context, num number.Number, _ sdkinstrument.Descriptor) error {
	var traits Traits
	traits.AddAtomic(&s.value, traits.FromNumber(num))
	return nil
}

// Merge adds source's sum into this cell.  Unlike last-value merges,
// sums are commutative and the source keeps its state.
func (s *State[N, Traits, Props]) Merge(source aggregator.Aggregator, _ sdkinstrument.Descriptor) error {
	var traits Traits
	o, ok := toState[N, Traits, Props](source)
	if !ok {
		return aggregator.NewInconsistentAggregatorError(s, source)
	}
	if s == o {
		return nil
	}
	traits.AddAtomic(&s.value, traits.GetAtomic(&o.value))
	return nil
}

// SynchronizedMove atomically takes this cell's sum, resets it to
// zero, and stores the taken value in dest.
func (s *State[N, Traits, Props]) SynchronizedMove(dest aggregator.Aggregator, _ sdkinstrument.Descriptor) error {
	var traits Traits
	o, ok := toState[N, Traits, Props](dest)
	if !ok {
		return aggregator.NewInconsistentAggregatorError(s, dest)
	}
	if s == o {
		return nil
	}
	traits.SetAtomic(&o.value, traits.SwapAtomic(&s.value, 0))
	return nil
}

func toState[N number.Any, Traits number.Traits[N], Props Properties](a aggregator.Aggregator) (*State[N, Traits, Props], bool) {
	var props Props
	if a.Aggregation().Kind() != props.kind() {
		return nil, false
	}
	o, ok := a.(*State[N, Traits, Props])
	return o, ok
}
