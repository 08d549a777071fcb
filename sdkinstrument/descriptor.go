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

// Package sdkinstrument carries instrument metadata and performance
// settings between the API surface and the aggregation pipeline.
package sdkinstrument // import "github.com/telemetryhq/metricsdk/sdkinstrument"

import (
	"github.com/telemetryhq/metricsdk/number"
)

// Kind distinguishes the API entry point used to create the
// instrument.
type Kind int8

const (
	// SyncCounter is a synchronous, monotonic instrument.
	SyncCounter Kind = iota

	// SyncUpDownCounter is a synchronous, non-monotonic instrument.
	SyncUpDownCounter

	// SyncHistogram is a synchronous instrument recording a
	// distribution of values.
	SyncHistogram

	// SyncGauge is a synchronous instrument recording the most
	// recent value.
	SyncGauge

	// AsyncCounter is an asynchronous, monotonic instrument.
	AsyncCounter

	// AsyncUpDownCounter is an asynchronous, non-monotonic instrument.
	AsyncUpDownCounter

	// AsyncGauge is an asynchronous instrument recording the most
	// recent value.
	AsyncGauge
)

// Synchronous indicates whether the instrument is called by the
// application directly, as opposed to inside a callback.
func (k Kind) Synchronous() bool {
	switch k {
	case SyncCounter, SyncUpDownCounter, SyncHistogram, SyncGauge:
		return true
	}
	return false
}

// Monotonic indicates whether the instrument accepts only
// non-negative increments.
func (k Kind) Monotonic() bool {
	switch k {
	case SyncCounter, AsyncCounter:
		return true
	}
	return false
}

// Descriptor identifies an instrument to the aggregation pipeline.
// The pipeline treats it as opaque metadata; it is established at
// instrument creation and never modified.
type Descriptor struct {
	// Name is the instrument name.
	Name string

	// Kind is the API entry point used to create the instrument.
	Kind Kind

	// NumberKind determines how measurement Numbers are interpreted.
	NumberKind number.Kind

	// Description is documentation supplied at creation, possibly empty.
	Description string

	// Unit is the unit of measure, possibly empty.
	Unit string
}

// NewDescriptor returns a Descriptor.
func NewDescriptor(name string, kind Kind, nk number.Kind, description, unit string) Descriptor {
	return Descriptor{
		Name:        name,
		Kind:        kind,
		NumberKind:  nk,
		Description: description,
		Unit:        unit,
	}
}
