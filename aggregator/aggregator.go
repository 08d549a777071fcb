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

package aggregator // import "github.com/telemetryhq/metricsdk/aggregator"

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/telemetryhq/metricsdk/aggregator/aggregation"
	"github.com/telemetryhq/metricsdk/internal/doevery"
	"github.com/telemetryhq/metricsdk/number"
	"github.com/telemetryhq/metricsdk/sdkinstrument"
	"go.opentelemetry.io/otel"
)

// Sentinel errors for the Aggregator interface.
var (
	// ErrNoDataCollected is returned by a read of an aggregator
	// that has received no measurements in the current interval.
	// This is an expected condition, not a pipeline failure.
	ErrNoDataCollected = errors.New("no data collected by this aggregator")

	// ErrInconsistentAggregator is returned by two-aggregator
	// operations given a peer of a different aggregation kind.
	// Neither side is modified when this is returned.
	ErrInconsistentAggregator = errors.New("inconsistent aggregator types")

	ErrNegativeInput = errors.New("negative value is out of range for this instrument")
	ErrNaNInput      = errors.New("NaN value is an invalid input")
	ErrInfInput      = errors.New("±Inf value is an invalid input")
)

// NewInconsistentAggregatorError formats an error describing a pair of
// incompatible aggregators.  Match it with
// errors.Is(err, ErrInconsistentAggregator).
func NewInconsistentAggregatorError(expected, got Aggregator) error {
	return fmt.Errorf("%w: %v (%T) and %v (%T)",
		ErrInconsistentAggregator,
		expected.Aggregation().Kind(), expected,
		got.Aggregation().Kind(), got,
	)
}

// Aggregator is the synchronized contract between measurement
// producers and the collection pipeline.  Implementations hold their
// state behind a pointer and are shared freely; every method is safe
// for concurrent use with every other method on the same or on two
// distinct aggregators.
type Aggregator interface {
	// Aggregation returns the data access interface of this
	// aggregator, including its Kind identity.
	Aggregation() aggregation.Aggregation

	// Update records one measurement.  The timestamp is taken
	// from the context override when present, otherwise from the
	// aggregator's clock.
	Update(ctx context.Context, num number.Number, desc sdkinstrument.Descriptor) error

	// Merge folds source's state into this aggregator according
	// to the aggregation's merge policy and resets whatever state
	// the policy transfers.  Both aggregators must have the same
	// concrete kind; otherwise ErrInconsistentAggregator is
	// returned and neither side is modified.
	Merge(source Aggregator, desc sdkinstrument.Descriptor) error

	// SynchronizedMove moves this aggregator's state into dest,
	// leaving this aggregator empty.  It is the checkpoint
	// operation performed at the start of each collection cycle.
	// The same kind-compatibility rule as Merge applies.
	SynchronizedMove(dest Aggregator, desc sdkinstrument.Descriptor) error
}

// Clock supplies the current time for measurements whose context does
// not carry an explicit timestamp.  The SDK performs no time
// arithmetic; it records what the Clock returns.
type Clock func() time.Time

// Config supports the configuration of aggregators in a single struct.
type Config struct {
	// Clock is the time source; nil selects time.Now.
	Clock Clock
}

// Valid returns true for valid configurations.
func (c Config) Valid() bool {
	return true
}

// Validate returns a Config with zero values replaced by defaults.
func (c Config) Validate() Config {
	if c.Clock == nil {
		c.Clock = time.Now
	}
	return c
}

// RangeTest is a common routine for testing for valid input values.
// This rejects NaN and Inf values.  This rejects negative values when
// the instrument kind is monotonic.  Rejections are reported through
// the OTel error handler, rate limited per call site, and the
// measurement is dropped by the caller.
func RangeTest(num number.Number, desc sdkinstrument.Descriptor) bool {
	if desc.NumberKind == number.Float64Kind {
		var traits number.Float64Traits
		value := traits.FromNumber(num)

		if traits.IsInf(value) {
			doevery.TimePeriod(30*time.Second, func() {
				otel.Handle(fmt.Errorf("%s: %w", desc.Name, ErrInfInput))
			})
			return false
		}

		if traits.IsNaN(value) {
			doevery.TimePeriod(30*time.Second, func() {
				otel.Handle(fmt.Errorf("%s: %w", desc.Name, ErrNaNInput))
			})
			return false
		}
	}

	if desc.Kind.Monotonic() && negative(num, desc.NumberKind) {
		doevery.TimePeriod(30*time.Second, func() {
			otel.Handle(fmt.Errorf("%s: %w", desc.Name, ErrNegativeInput))
		})
		return false
	}
	return true
}

func negative(num number.Number, kind number.Kind) bool {
	if kind == number.Float64Kind {
		return number.ToFloat64(num) < 0
	}
	return number.ToInt64(num) < 0
}
