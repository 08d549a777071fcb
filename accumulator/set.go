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

package accumulator // import "github.com/telemetryhq/metricsdk/accumulator"

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/telemetryhq/metricsdk/data"
	"github.com/telemetryhq/metricsdk/internal/doevery"
	"github.com/telemetryhq/metricsdk/number"
	"github.com/telemetryhq/metricsdk/sdkinstrument"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/multierr"
)

// ErrCardinalityOverflow is reported when an instrument exceeds its
// stream cardinality limit; further attribute sets fold into the
// overflow stream.
var ErrCardinalityOverflow = errors.New("aggregator cardinality limit reached")

// OverflowAttributes is the attribute set used for streams folded
// together after an instrument passes its cardinality limit.
var OverflowAttributes = []attribute.KeyValue{
	attribute.Bool("otel.metric.overflow", true),
}

// Set is an attribute-keyed collection of one instrument's streams.
// It implements data.Collector.
type Set struct {
	desc    sdkinstrument.Descriptor
	perf    sdkinstrument.Performance
	factory Factory

	// lock guards streams and overflow.
	lock     sync.Mutex
	streams  map[attribute.Distinct]*streamEntry
	overflow *Accumulator
}

type streamEntry struct {
	acc *Accumulator

	// collected is the stream's updateCount observed at the last
	// collection; inactive counts collection cycles without new
	// updates.
	collected uint64
	inactive  uint32
}

var _ data.Collector = &Set{}

// NewSet returns an empty stream set for one instrument.
func NewSet(desc sdkinstrument.Descriptor, perf sdkinstrument.Performance, factory Factory) *Set {
	return &Set{
		desc:    desc,
		perf:    perf.Validate(),
		factory: factory,
		streams: map[attribute.Distinct]*streamEntry{},
	}
}

// Update records one measurement into the stream identified by attrs,
// creating it on first use.
func (s *Set) Update(ctx context.Context, num number.Number, attrs ...attribute.KeyValue) error {
	return s.findOrCreate(attribute.NewSet(attrs...)).Update(ctx, num)
}

func (s *Set) findOrCreate(aset attribute.Set) *Accumulator {
	s.lock.Lock()
	defer s.lock.Unlock()

	if entry, ok := s.streams[aset.Equivalent()]; ok {
		return entry.acc
	}

	if uint32(len(s.streams)) >= s.perf.AggregatorCardinalityLimit {
		doevery.TimePeriod(30*time.Second, func() {
			otel.Handle(fmt.Errorf("%s: %w", s.desc.Name, ErrCardinalityOverflow))
		})
		if s.overflow == nil {
			s.overflow = New(s.desc, attribute.NewSet(OverflowAttributes...), s.factory)
		}
		return s.overflow
	}

	acc := New(s.desc, aset, s.factory)
	s.streams[aset.Equivalent()] = &streamEntry{acc: acc}
	return acc
}

// Collect checkpoints every stream and appends one data.Instrument to
// output.  Streams that received no updates for the configured number
// of collection cycles are released after a final checkpoint.  Errors
// from individual streams do not stop the collection; they are
// combined and returned for the pipeline to report.
func (s *Set) Collect(_ data.Sequence, output *[]data.Instrument) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	inst := data.Instrument{Descriptor: s.desc}

	var err error
	for key, entry := range s.streams {
		count := atomic.LoadUint64(&entry.acc.updateCount)
		if count == entry.collected {
			entry.inactive++
			if entry.inactive >= s.perf.InactiveCollectionPeriods {
				err = multierr.Append(err, entry.acc.Collect(&inst.Points))
				delete(s.streams, key)
				continue
			}
		} else {
			entry.collected = count
			entry.inactive = 0
		}
		err = multierr.Append(err, entry.acc.Collect(&inst.Points))
	}

	if s.overflow != nil {
		err = multierr.Append(err, s.overflow.Collect(&inst.Points))
	}

	*output = append(*output, inst)
	return err
}

// Size returns the number of streams held in memory.
func (s *Set) Size() int {
	s.lock.Lock()
	defer s.lock.Unlock()

	size := len(s.streams)
	if s.overflow != nil {
		size++
	}
	return size
}
