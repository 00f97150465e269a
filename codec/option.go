/*
 * Cadence - The resource-oriented smart contract programming language
 *
 * Copyright Flow Foundation
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *   http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package codec

import (
	"encoding/json"
	"fmt"
)

// Option is a value which may be absent.
// The zero value is the absent value.
type Option[T any] struct {
	value   T
	present bool
}

func Some[T any](value T) Option[T] {
	return Option[T]{
		value:   value,
		present: true,
	}
}

func None[T any]() Option[T] {
	return Option[T]{}
}

// OptionOf returns the absent value for a nil pointer,
// and the pointed-to value otherwise.
func OptionOf[T any](value *T) Option[T] {
	if value == nil {
		return None[T]()
	}
	return Some(*value)
}

func (o Option[T]) Get() (T, bool) {
	return o.value, o.present
}

func (o Option[T]) IsNone() bool {
	return !o.present
}

func (o Option[T]) IsSome() bool {
	return o.present
}

// OrElse returns the value if present, and the given default otherwise.
func (o Option[T]) OrElse(defaultValue T) T {
	if !o.present {
		return defaultValue
	}
	return o.value
}

func (o Option[T]) String() string {
	if !o.present {
		return "nil"
	}
	return fmt.Sprint(o.value)
}

func (o Option[T]) MarshalJSON() ([]byte, error) {
	if !o.present {
		return []byte("null"), nil
	}
	return json.Marshal(o.value)
}

// anyOption is implemented by every Option instantiation.
type anyOption interface {
	IsNone() bool
	anyValue() any
}

var _ anyOption = Option[any]{}

func (o Option[T]) anyValue() any {
	return o.value
}
