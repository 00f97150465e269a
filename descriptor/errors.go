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

	"github.com/onflow/cadence-codec/errors"
)

// SyntaxError is reported for malformed type expressions.
type SyntaxError struct {
	Offset  int
	Message string
}

var _ errors.UserError = &SyntaxError{}

func (*SyntaxError) IsUserError() {}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at offset %d: %s", e.Offset, e.Message)
}

// UnknownTypeError is reported when a type expression refers to a type
// which is neither a leaf type nor a declared composite.
type UnknownTypeError struct {
	Identifier string
	Offset     int
}

var _ errors.UserError = &UnknownTypeError{}

func (*UnknownTypeError) IsUserError() {}

func (e *UnknownTypeError) Error() string {
	return fmt.Sprintf("unknown type `%s` at offset %d", e.Identifier, e.Offset)
}
