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

// package aggregator defines the interface used between the SDK and
// various kinds of aggregation.
//
// Concrete aggregators (see the lastvalue and sum sub-packages) use
// Go-1.18 generics internally, with a `State[N, Traits]` storage type
// parameterized by the number kind.  The pipeline handles them through
// the type-erased Aggregator interface defined here; compatibility
// between two aggregators is decided by comparing their closed
// aggregation.Kind tags before any concrete state is touched.
//
// Every operation returns an explicit error.  Expected conditions
// (ErrNoDataCollected) and wiring bugs (ErrInconsistentAggregator) are
// both surfaced to the caller; nothing is logged and swallowed inside
// this layer.
package aggregator // import "github.com/telemetryhq/metricsdk/aggregator"
