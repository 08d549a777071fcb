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

// Package accumulator drives aggregation cells through collection
// cycles.  Each stream owns three cells: the live cell written by
// producers, a snapshot cell used to checkpoint the live cell, and an
// output cell that accumulates snapshots until it is read for export.
package accumulator // import "github.com/telemetryhq/metricsdk/accumulator"

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/telemetryhq/metricsdk/aggregator"
	"github.com/telemetryhq/metricsdk/aggregator/aggregation"
	"github.com/telemetryhq/metricsdk/data"
	"github.com/telemetryhq/metricsdk/number"
	"github.com/telemetryhq/metricsdk/sdkinstrument"
	"go.opentelemetry.io/otel/attribute"
)

// Factory constructs one aggregation cell.  All cells of a stream,
// and all streams of a Set, come from the same Factory, which is what
// keeps two-cell operations kind-consistent.
type Factory func() aggregator.Aggregator

// Accumulator carries one stream of measurements through collection
// cycles.
type Accumulator struct {
	desc  sdkinstrument.Descriptor
	attrs attribute.Set

	// updateCount is advanced by Update.  The Set reads it to
	// recognize streams that stopped receiving data.
	updateCount uint64

	// collectLock prevents two collectors from checkpointing the
	// same stream at the same moment.
	collectLock sync.Mutex
	current     aggregator.Aggregator
	snapshot    aggregator.Aggregator
	output      aggregator.Aggregator
}

// New returns an Accumulator for one stream.
func New(desc sdkinstrument.Descriptor, attrs attribute.Set, factory Factory) *Accumulator {
	return &Accumulator{
		desc:     desc,
		attrs:    attrs,
		current:  factory(),
		snapshot: factory(),
		output:   factory(),
	}
}

// Attributes identify the stream.
func (a *Accumulator) Attributes() attribute.Set {
	return a.attrs
}

// Update records one measurement into the live cell.  Out-of-range
// inputs (NaN, Inf, negative values for monotonic instruments) are
// dropped and reported through the OTel error handler.
func (a *Accumulator) Update(ctx context.Context, num number.Number) error {
	if !aggregator.RangeTest(num, a.desc) {
		return nil
	}
	atomic.AddUint64(&a.updateCount, 1)
	return a.current.Update(ctx, num, a.desc)
}

// SnapshotAndProcess checkpoints the live cell into the snapshot cell
// and folds the snapshot into the output cell.  Producers may keep
// updating the live cell concurrently; the two-cell operations
// serialize against those updates.
func (a *Accumulator) SnapshotAndProcess() error {
	a.collectLock.Lock()
	defer a.collectLock.Unlock()

	if err := a.current.SynchronizedMove(a.snapshot, a.desc); err != nil {
		return err
	}
	return a.output.Merge(a.snapshot, a.desc)
}

// Collect checkpoints the stream and appends its output cell to
// points.  Streams whose last-value cell has collected no data are
// skipped, matching the expectation that an instrument without
// measurements produces no point.
func (a *Accumulator) Collect(points *[]data.Point) error {
	if err := a.SnapshotAndProcess(); err != nil {
		return err
	}

	agg := a.output.Aggregation()
	if lv, ok := agg.(aggregation.LastValue); ok {
		if _, _, err := lv.LastValue(); errors.Is(err, aggregator.ErrNoDataCollected) {
			return nil
		}
	}

	*points = append(*points, data.Point{
		Attributes:  a.attrs,
		Aggregation: agg,
	})
	return nil
}
