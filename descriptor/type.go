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

package descriptor

import (
	"fmt"
	"strings"
)

// Type is a parsed type expression.
type Type interface {
	isType()
	fmt.Stringer
	// StartOffset is the offset of the type in the expression.
	StartOffset() int
}

// NominalType refers to a leaf codec, e.g. `UInt64`, or to a declared composite,
// by alias or by identifier.
type NominalType struct {
	Identifier string
	Offset     int
}

var _ Type = &NominalType{}

func (*NominalType) isType() {}

func (t *NominalType) StartOffset() int {
	return t.Offset
}

func (t *NominalType) String() string {
	return t.Identifier
}

// OptionalType is `T?`.
type OptionalType struct {
	Type Type
}

var _ Type = &OptionalType{}

func (*OptionalType) isType() {}

func (t *OptionalType) StartOffset() int {
	return t.Type.StartOffset()
}

func (t *OptionalType) String() string {
	return t.Type.String() + "?"
}

// ArrayType is `[T]`.
type ArrayType struct {
	Type   Type
	Offset int
}

var _ Type = &ArrayType{}

func (*ArrayType) isType() {}

func (t *ArrayType) StartOffset() int {
	return t.Offset
}

func (t *ArrayType) String() string {
	return "[" + t.Type.String() + "]"
}

// DictionaryType is `{K: V}`.
type DictionaryType struct {
	KeyType   Type
	ValueType Type
	Offset    int
}

var _ Type = &DictionaryType{}

func (*DictionaryType) isType() {}

func (t *DictionaryType) StartOffset() int {
	return t.Offset
}

func (t *DictionaryType) String() string {
	return fmt.Sprintf("{%s: %s}", t.KeyType, t.ValueType)
}

// TupleType is `(T1, T2, ...)`.
type TupleType struct {
	Types  []Type
	Offset int
}

var _ Type = &TupleType{}

func (*TupleType) isType() {}

func (t *TupleType) StartOffset() int {
	return t.Offset
}

func (t *TupleType) String() string {
	var builder strings.Builder
	builder.WriteByte('(')
	for i, elementType := range t.Types {
		if i > 0 {
			builder.WriteString(", ")
		}
		builder.WriteString(elementType.String())
	}
	builder.WriteByte(')')
	return builder.String()
}
