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

package wire

// Value is a JSON-Cadence value: a tag and a payload.
//
// The payload depends on the tag:
//
//   - Void: nil
//   - Bool: bool
//   - String, Address, integers, fixed-point numbers: string
//   - Optional: nil, or the inner Value
//   - Array: []Value
//   - Dictionary: []KeyValuePair
//   - Struct, Resource, Event, Contract, Enum: Composite
//   - Path: Path
type Value struct {
	Type  Tag
	Value any
}

type KeyValuePair struct {
	Key   Value
	Value Value
}

type Composite struct {
	ID     string
	Fields []Field
}

type Field struct {
	Name  string
	Value Value
}

type Path struct {
	Domain     string
	Identifier string
}

func NewVoid() Value {
	return Value{Type: TagVoid}
}

func NewBool(b bool) Value {
	return Value{Type: TagBool, Value: b}
}

func NewString(s string) Value {
	return Value{Type: TagString, Value: s}
}

// NewText returns a value with a string payload, e.g. an address or a number.
func NewText(tag Tag, s string) Value {
	return Value{Type: tag, Value: s}
}

// NewOptional returns an Optional wrapping the given value,
// or an empty Optional if value is nil.
func NewOptional(value *Value) Value {
	if value == nil {
		return Value{Type: TagOptional}
	}
	return Value{Type: TagOptional, Value: *value}
}

func NewArray(values ...Value) Value {
	if values == nil {
		values = []Value{}
	}
	return Value{Type: TagArray, Value: values}
}

func NewDictionary(pairs ...KeyValuePair) Value {
	if pairs == nil {
		pairs = []KeyValuePair{}
	}
	return Value{Type: TagDictionary, Value: pairs}
}

func NewComposite(tag Tag, id string, fields ...Field) Value {
	if fields == nil {
		fields = []Field{}
	}
	return Value{
		Type: tag,
		Value: Composite{
			ID:     id,
			Fields: fields,
		},
	}
}

func NewPath(domain string, identifier string) Value {
	return Value{
		Type: TagPath,
		Value: Path{
			Domain:     domain,
			Identifier: identifier,
		},
	}
}
