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
	"time"
)

type timestampKey struct{}

// ContextWithTimestamp returns a context carrying an explicit
// measurement timestamp.  Aggregators record it in place of their
// clock reading, which supports callers that carry their own timing
// context.
func ContextWithTimestamp(ctx context.Context, t time.Time) context.Context {
	return context.WithValue(ctx, timestampKey{}, t)
}

// TimestampFromContext returns the explicit measurement timestamp, if
// any, carried by the context.
func TimestampFromContext(ctx context.Context) (time.Time, bool) {
	t, ok := ctx.Value(timestampKey{}).(time.Time)
	return t, ok
}
