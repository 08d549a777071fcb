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

// Package data carries the output of a collection cycle between the
// aggregation pipeline and an exporter.  Encoding and transport are
// out of scope for this module.
package data // import "github.com/telemetryhq/metricsdk/data"

import (
	"time"

	"github.com/telemetryhq/metricsdk/aggregator/aggregation"
	"github.com/telemetryhq/metricsdk/sdkinstrument"
	"go.opentelemetry.io/otel/attribute"
)

// Sequence provides the three relevant timestamps used by the SDK
// during collection.
type Sequence struct {
	// Start is the time when the pipeline was initialized.
	Start time.Time
	// Last is the time when the previous collection happened.  If
	// there was no previous collection, this matches Start.
	Last time.Time
	// Now is the moment the current collection began.  This value
	// becomes the subsequent Last.
	Now time.Time
}

// Point is one attribute-distinct stream's collected state.  The
// Aggregation gives read access to the data and carries the Kind tag
// an exporter uses to select its encoding.
type Point struct {
	// Attributes identify the stream.
	Attributes attribute.Set

	// Aggregation is the collected state.  For last-value data it
	// carries its own timestamp; Sequence timestamps apply
	// otherwise.
	Aggregation aggregation.Aggregation
}

// Instrument is one instrument's collected data.
type Instrument struct {
	// Descriptor identifies the instrument.
	Descriptor sdkinstrument.Descriptor

	// Points, one per attribute-distinct stream.
	Points []Point
}

// Collector produces a single Instrument of data per collection cycle.
type Collector interface {
	// Collect gathers data points from processed accumulator
	// snapshots into output.
	Collect(sequence Sequence, output *[]Instrument) error

	// Size returns the number of streams held in memory.  Size is
	// meant to be called following Collect.
	Size() int
}
