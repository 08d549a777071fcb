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

package number

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInt64Roundtrip(t *testing.T) {
	for _, x := range []int64{0, 1, -1, math.MaxInt64, math.MinInt64} {
		require.Equal(t, x, ToInt64(FromInt64(x)))
	}
}

func TestFloat64Roundtrip(t *testing.T) {
	for _, x := range []float64{0, 0.5, -0.5, math.MaxFloat64, math.SmallestNonzeroFloat64} {
		require.Equal(t, x, ToFloat64(FromFloat64(x)))
	}
	require.True(t, math.IsNaN(ToFloat64(FromFloat64(math.NaN()))))
}

func TestEmit(t *testing.T) {
	require.Equal(t, "-17", FromInt64(-17).Emit(Int64Kind))
	require.Equal(t, "0.5", FromFloat64(0.5).Emit(Float64Kind))
}

func TestTraitsAtomic(t *testing.T) {
	var i Int64Traits
	var f Float64Traits

	var iv int64
	i.SetAtomic(&iv, 10)
	i.AddAtomic(&iv, 7)
	require.Equal(t, int64(17), i.GetAtomic(&iv))
	require.Equal(t, int64(17), i.SwapAtomic(&iv, 3))
	require.Equal(t, int64(3), iv)

	var fv float64
	f.SetAtomic(&fv, 0.25)
	f.AddAtomic(&fv, 0.25)
	require.Equal(t, 0.5, f.GetAtomic(&fv))
	require.Equal(t, 0.5, f.SwapAtomic(&fv, 1.5))
	require.Equal(t, 1.5, fv)
}

func TestTraitsKind(t *testing.T) {
	require.Equal(t, Int64Kind, Int64Traits{}.Kind())
	require.Equal(t, Float64Kind, Float64Traits{}.Kind())
	require.Equal(t, "Int64Kind", Int64Kind.String())
	require.Equal(t, "Float64Kind", Float64Kind.String())
}
