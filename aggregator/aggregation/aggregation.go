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

// Package aggregation describes the kinds of aggregation and the ways
// to access state from an Aggregation.  The Kind tag is the closed set
// of aggregation identities; compatibility between two aggregators is
// decided by comparing Kinds, never by inspecting runtime types.
package aggregation // import "github.com/telemetryhq/metricsdk/aggregator/aggregation"

import (
	"strconv"
	"time"

	"github.com/telemetryhq/metricsdk/number"
)

type (
	// Aggregation is an interface returned by an Aggregator
	// containing an interval of metric data.
	Aggregation interface {
		// Kind is the aggregation identity used to route
		// collected data and to validate compatibility before
		// two aggregators are combined.
		Kind() Kind
	}

	// LastValue returns the most recently recorded value and the
	// time at which it was recorded.
	LastValue interface {
		Aggregation

		// LastValue returns ErrNoDataCollected when no value
		// has been recorded in the current interval.
		LastValue() (number.Number, time.Time, error)
	}

	// HasASum is satisfied by sum-like aggregations.
	HasASum interface {
		Sum() number.Number
	}

	// Sum returns an aggregated sum.
	Sum interface {
		Aggregation
		HasASum
		IsMonotonic() bool
	}
)

// Kind identifies one aggregation behavior.
type Kind int

const (
	// UndefinedKind is the zero value, never a valid aggregation.
	UndefinedKind Kind = iota

	// DropKind means the data is discarded.
	DropKind

	// LastValueKind retains only the most recently recorded
	// measurement and its timestamp.
	LastValueKind

	// MonotonicSumKind sums non-negative increments.
	MonotonicSumKind

	// NonMonotonicSumKind sums increments of either sign.
	NonMonotonicSumKind
)

// String returns the Kind constant name.
func (k Kind) String() string {
	switch k {
	case UndefinedKind:
		return "UndefinedKind"
	case DropKind:
		return "DropKind"
	case LastValueKind:
		return "LastValueKind"
	case MonotonicSumKind:
		return "MonotonicSumKind"
	case NonMonotonicSumKind:
		return "NonMonotonicSumKind"
	default:
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
}
