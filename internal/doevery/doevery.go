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

// package doevery provides primitives for per-call-site rate-limiting.
package doevery

import (
	"fmt"
	"runtime"
	"sync"
	"time"
)

var (
	// mu protects lastInvocation.
	mu sync.Mutex

	// lastInvocation maintains the last time the function passed
	// at each call site was invoked.
	lastInvocation = make(map[callSite]time.Time)
)

// callSite identifies a unique line of source code.  The program
// counter is not used because the PC differs when the same line is
// inlined in multiple places.
type callSite struct {
	file string
	line int
}

// TimePeriod rate-limits each call site of this function by the
// duration specified as the first argument.  This is useful for
// reporting conditions that recur at high frequency, such as invalid
// measurements, where one report per period is enough.
//
// Each unique call site is rate-limited independently; each invocation
// at the same call site should pass the same duration.  The limit is
// global for the file/line, not per goroutine.
//
// TimePeriod is safe for concurrent use.
func TimePeriod(dur time.Duration, f func()) {
	if dur < 0 {
		panic(fmt.Sprintf("negative duration unsupported: %v", dur))
	}

	// Skip 0 is this function; skip 1 is the caller.
	_, file, line, ok := runtime.Caller(1)
	if !ok {
		// Unknown caller: fail open.
		f()
		return
	}

	key := callSite{file: file, line: line}

	invoke := func() bool {
		mu.Lock()
		defer mu.Unlock()

		prev, ok := lastInvocation[key]
		due := !ok || time.Since(prev) > dur
		if due {
			lastInvocation[key] = time.Now()
		}
		return due
	}()

	if invoke {
		f()
	}
}
