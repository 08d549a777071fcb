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

package lastvalue // import "github.com/telemetryhq/metricsdk/aggregator/lastvalue"

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/telemetryhq/metricsdk/aggregator"
	"github.com/telemetryhq/metricsdk/aggregator/aggregation"
	"github.com/telemetryhq/metricsdk/number"
	"github.com/telemetryhq/metricsdk/sdkinstrument"
)

// Note: this aggregator is designed to be shared between measurement
// producers and a periodic collector running concurrently.  Each cell
// holds at most one point behind its own mutex; value and timestamp
// are only ever written together, so no reader can observe a torn
// point.  Two-cell operations (Merge, SynchronizedMove) hold both
// locks, acquired in increasing cell-id order.

type (
	// State is a last-value aggregation cell: empty, or holding
	// one (value, timestamp) point.
	State[N number.Any, Traits number.Traits[N]] struct {
		clock aggregator.Clock

		// id fixes this cell's position in the global lock
		// order.  See lockOrdered.
		id uint64

		// lock guards point.
		lock  sync.Mutex
		point datapoint[N]
	}

	// datapoint is the slot content.  It is replaced wholesale,
	// never mutated field-by-field.
	datapoint[N number.Any] struct {
		defined   bool
		value     N
		timestamp time.Time
	}

	Int64   = State[int64, number.Int64Traits]
	Float64 = State[float64, number.Float64Traits]
)

// idVar allocates cell ids.  The ids establish a total order over
// cells so that concurrent symmetric merges (A into B, B into A)
// cannot deadlock.
var idVar uint64

var (
	_ aggregator.Aggregator = &Int64{}
	_ aggregator.Aggregator = &Float64{}

	_ aggregation.LastValue = &Int64{}
	_ aggregation.LastValue = &Float64{}
)

// New returns an empty last-value cell using the configured clock.
func New[N number.Any, Traits number.Traits[N]](cfg aggregator.Config) *State[N, Traits] {
	cfg = cfg.Validate()
	return &State[N, Traits]{
		clock: cfg.Clock,
		id:    atomic.AddUint64(&idVar, 1),
	}
}

func NewInt64(cfg aggregator.Config) *Int64 {
	return New[int64, number.Int64Traits](cfg)
}

func NewFloat64(cfg aggregator.Config) *Float64 {
	return New[float64, number.Float64Traits](cfg)
}

// Aggregation implements aggregator.Aggregator.
func (s *State[N, Traits]) Aggregation() aggregation.Aggregation {
	return s
}

// Kind returns the last-value aggregation identity.
func (s *State[N, Traits]) Kind() aggregation.Kind {
	return aggregation.LastValueKind
}

// LastValue returns the current point.  It does not clear the cell.
func (s *State[N, Traits]) LastValue() (number.Number, time.Time, error) {
	var traits Traits

	s.lock.Lock()
	defer s.lock.Unlock()

	if !s.point.defined {
		return 0, time.Time{}, aggregator.ErrNoDataCollected
	}
	return traits.ToNumber(s.point.value), s.point.timestamp, nil
}

// Update unconditionally replaces the cell's point.  There is no
// ordering guarantee between concurrent updates beyond lock
// acquisition order; the last to acquire the lock wins.
func (s *State[N, Traits]) Update(ctx context.Context, num number.Number, _ sdkinstrument.Descriptor) error {
	var traits Traits

	now, ok := aggregator.TimestampFromContext(ctx)
	if !ok {
		now = s.clock()
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	s.point = datapoint[N]{
		defined:   true,
		value:     traits.FromNumber(num),
		timestamp: now,
	}
	return nil
}

// Merge folds source into this cell: the most recent point wins.
// When source holds the strictly newer point, ownership of the point
// moves and source becomes empty.  On equal timestamps this cell's
// existing point is kept and source is left unchanged.
func (s *State[N, Traits]) Merge(source aggregator.Aggregator, _ sdkinstrument.Descriptor) error {
	o, ok := toState[N, Traits](source)
	if !ok {
		return aggregator.NewInconsistentAggregatorError(s, source)
	}
	if s == o {
		return nil
	}

	unlock := lockOrdered(s, o)
	defer unlock()

	if o.point.defined && (!s.point.defined || o.point.timestamp.After(s.point.timestamp)) {
		s.point, o.point = o.point, datapoint[N]{}
	}
	return nil
}

// SynchronizedMove moves this cell's point, if any, into dest and
// leaves this cell empty.  When this cell is empty, dest is left
// unchanged.
func (s *State[N, Traits]) SynchronizedMove(dest aggregator.Aggregator, _ sdkinstrument.Descriptor) error {
	o, ok := toState[N, Traits](dest)
	if !ok {
		return aggregator.NewInconsistentAggregatorError(s, dest)
	}
	if s == o {
		return nil
	}

	unlock := lockOrdered(s, o)
	defer unlock()

	if s.point.defined {
		o.point, s.point = s.point, datapoint[N]{}
	}
	return nil
}

// toState validates the peer's aggregation Kind before asserting the
// concrete storage type.  A last-value cell of the other number kind
// passes the Kind check but fails the assertion, which is equally a
// caller wiring bug.
func toState[N number.Any, Traits number.Traits[N]](a aggregator.Aggregator) (*State[N, Traits], bool) {
	if a.Aggregation().Kind() != aggregation.LastValueKind {
		return nil, false
	}
	o, ok := a.(*State[N, Traits])
	return o, ok
}

// lockOrdered acquires both cells' locks in increasing id order and
// returns the release function.  The fixed order is a correctness
// requirement: without it, two goroutines merging the same pair of
// cells in opposite directions can deadlock.
func lockOrdered[N number.Any, Traits number.Traits[N]](a, b *State[N, Traits]) func() {
	if b.id < a.id {
		a, b = b, a
	}
	a.lock.Lock()
	b.lock.Lock()
	return func() {
		b.lock.Unlock()
		a.lock.Unlock()
	}
}
