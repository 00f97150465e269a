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
	"fmt"
	"io"
	"strings"
)

type pathElement interface {
	Append(w io.Writer)
}

type indexPathElement int

var _ pathElement = indexPathElement(0)

func (e indexPathElement) Append(w io.Writer) {
	_, _ = fmt.Fprintf(w, "[%d]", int(e))
}

type propertyPathElement string

var _ pathElement = propertyPathElement("")

func (e propertyPathElement) Append(w io.Writer) {
	_, _ = fmt.Fprintf(w, ".%s", e)
}

type keyPathElement string

var _ pathElement = keyPathElement("")

func (e keyPathElement) Append(w io.Writer) {
	_, _ = fmt.Fprintf(w, "[%q]", string(e))
}

// ValuePath locates a value inside a wire value, e.g. `.value[2].fields[0].value`.
// The empty path denotes the root.
//
// Paths are immutable: Property, Index and Key return new paths.
type ValuePath []pathElement

func (p ValuePath) with(element pathElement) ValuePath {
	// full slice expression forces a copy, so siblings never share a backing array
	return append(p[:len(p):len(p)], element)
}

func (p ValuePath) Property(name string) ValuePath {
	return p.with(propertyPathElement(name))
}

func (p ValuePath) Index(index int) ValuePath {
	return p.with(indexPathElement(index))
}

// Key is used for dictionary entries on the encoding side,
// where entries are identified by their native key.
func (p ValuePath) Key(key any) ValuePath {
	return p.with(keyPathElement(fmt.Sprint(key)))
}

func (p ValuePath) Concat(other ValuePath) ValuePath {
	if len(other) == 0 {
		return p
	}
	result := make(ValuePath, 0, len(p)+len(other))
	result = append(result, p...)
	return append(result, other...)
}

func (p ValuePath) String() string {
	var builder strings.Builder
	for _, element := range p {
		element.Append(&builder)
	}
	return builder.String()
}

// payloadPath is the location of the payload of the value at p.
func (p ValuePath) payloadPath() ValuePath {
	return p.Property("value")
}
