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

package sdkinstrument

import (
	"context"

	"github.com/sethvargo/go-envconfig"
)

// DefaultInactiveCollectionPeriods is how many collection periods to
// delay before removing inactive streams from memory.
const DefaultInactiveCollectionPeriods = 10

// DefaultAggregatorCardinalityLimit is a hard limit on the number of
// attribute-distinct streams kept per instrument.
const DefaultAggregatorCardinalityLimit = 2000

// Performance configures features that allow the user to control
// performance.
type Performance struct {
	// InactiveCollectionPeriods is the number of allowed
	// collection periods having no updates before a stream is
	// removed from memory.
	InactiveCollectionPeriods uint32 `env:"METRICSDK_INACTIVE_COLLECTION_PERIODS"`

	// AggregatorCardinalityLimit is the point at which the
	// overflow breaker begins folding new streams into the
	// overflow stream to avoid memory buildup.
	AggregatorCardinalityLimit uint32 `env:"METRICSDK_AGGREGATOR_CARDINALITY_LIMIT"`
}

// Validate returns a Performance object with 0 values replaced by
// defaults.
func (p Performance) Validate() Performance {
	// InactiveCollectionPeriods 0 is a valid setting but can lead
	// to poor performance, so it takes the default.  Configure 1
	// for the same effect as 0.
	if p.InactiveCollectionPeriods == 0 {
		p.InactiveCollectionPeriods = DefaultInactiveCollectionPeriods
	}
	if p.AggregatorCardinalityLimit == 0 {
		p.AggregatorCardinalityLimit = DefaultAggregatorCardinalityLimit
	}
	return p
}

// PerformanceFromEnv reads Performance settings from the environment,
// applying defaults for unset values.
func PerformanceFromEnv(ctx context.Context) (Performance, error) {
	var p Performance
	err := envconfig.Process(ctx, &p)
	return p.Validate(), err
}
