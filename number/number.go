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

// Package number provides the opaque 64-bit value representation used
// throughout this SDK.  Aggregators store and move Numbers; they do
// not perform arithmetic across number kinds.  The Kind recorded in an
// instrument's Descriptor determines how a Number is interpreted.
package number // import "github.com/telemetryhq/metricsdk/number"

import (
	"math"
	"strconv"
)

// Kind describes the machine representation of a Number.
type Kind int8

const (
	// Int64Kind means the Number is an int64.
	Int64Kind Kind = iota

	// Float64Kind means the Number is a float64.
	Float64Kind
)

// Any is the type constraint for number types supported by this SDK.
type Any interface {
	int64 | float64
}

// Number is a 64-bit value that carries either an int64 or the bits
// of a float64.  The zero Number is the zero value of both kinds.
type Number uint64

// FromInt64 constructs an int64-kind Number.
func FromInt64(x int64) Number {
	return Number(x)
}

// FromFloat64 constructs a float64-kind Number.
func FromFloat64(x float64) Number {
	return Number(math.Float64bits(x))
}

// ToInt64 interprets an int64-kind Number.
func ToInt64(n Number) int64 {
	return int64(n)
}

// ToFloat64 interprets a float64-kind Number.
func ToFloat64(n Number) float64 {
	return math.Float64frombits(uint64(n))
}

// Emit renders the Number as a string according to its Kind, for use
// in diagnostics.
func (n Number) Emit(kind Kind) string {
	switch kind {
	case Float64Kind:
		return strconv.FormatFloat(ToFloat64(n), 'g', -1, 64)
	default:
		return strconv.FormatInt(ToInt64(n), 10)
	}
}

// String returns the Kind constant name.
func (k Kind) String() string {
	switch k {
	case Int64Kind:
		return "Int64Kind"
	case Float64Kind:
		return "Float64Kind"
	default:
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
}
