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

package doevery

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRateLimited(t *testing.T) {
	end := time.Now().Add(2 * time.Second)
	var invocations int
	for time.Now().Before(end) {
		TimePeriod(time.Second, func() {
			invocations++
		})
		time.Sleep(100 * time.Millisecond)
	}
	// Without TimePeriod this loop runs ~20 times; with it,
	// roughly 2.  Allow slop.
	require.Less(t, invocations, 5)
	require.Greater(t, invocations, 0)
}

func TestZeroDuration(t *testing.T) {
	var invocations int
	for i := 0; i < 3; i++ {
		TimePeriod(0, func() {
			invocations++
		})
		time.Sleep(time.Millisecond)
	}
	require.Greater(t, invocations, 0)
}

func TestConcurrentSameSite(t *testing.T) {
	var wg sync.WaitGroup
	var invocations int64

	end := time.Now().Add(2 * time.Second)

	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for time.Now().Before(end) {
				TimePeriod(time.Second, func() {
					atomic.AddInt64(&invocations, 1)
				})
				time.Sleep(100 * time.Millisecond)
			}
		}()
	}
	wg.Wait()
	// The limit is global for the call site, not per goroutine.
	require.Less(t, invocations, int64(5))
}

func TestIndependentSites(t *testing.T) {
	var first, second int

	for i := 0; i < 3; i++ {
		TimePeriod(time.Minute, func() { first++ })
		TimePeriod(time.Minute, func() { second++ })
	}

	// Distinct call sites rate-limit independently.
	require.Equal(t, 1, first)
	require.Equal(t, 1, second)
}
