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
	goerrors "errors"
	"fmt"
	"sort"

	"github.com/texttheater/golang-levenshtein/levenshtein"

	"github.com/onflow/cadence-codec/errors"
	"github.com/onflow/cadence-codec/wire"
)

// SchemaError is implemented by every error reporting that a value
// does not conform to a codec's schema.
type SchemaError interface {
	errors.UserError
	Location() ValuePath
	atPath(prefix ValuePath) error
}

func withLocation(message string, path ValuePath) string {
	if len(path) == 0 {
		return message
	}
	return fmt.Sprintf("%s (at %s)", message, path)
}

// atPath prefixes the location of a schema error with the given path.
// Other errors are returned unchanged.
func atPath(err error, prefix ValuePath) error {
	if len(prefix) == 0 {
		return err
	}
	if schemaErr, ok := err.(SchemaError); ok {
		return schemaErr.atPath(prefix)
	}
	return err
}

// SchemaMismatchError

// SchemaMismatchError is reported when the tag, the payload shape,
// or the identifier of a value does not match what a codec expects.
type SchemaMismatchError struct {
	Path     ValuePath
	Expected string
	Actual   string
}

var _ SchemaError = SchemaMismatchError{}

func NewSchemaMismatchError(path ValuePath, expected string, actual string) SchemaMismatchError {
	return SchemaMismatchError{
		Path:     path,
		Expected: expected,
		Actual:   actual,
	}
}

func (SchemaMismatchError) IsUserError() {}

func (e SchemaMismatchError) Location() ValuePath {
	return e.Path
}

func (e SchemaMismatchError) atPath(prefix ValuePath) error {
	e.Path = prefix.Concat(e.Path)
	return e
}

func (e SchemaMismatchError) Error() string {
	return withLocation(
		fmt.Sprintf("schema mismatch: expected %s, got %s", e.Expected, e.Actual),
		e.Path,
	)
}

// UnknownFieldError

// UnknownFieldError is reported when a composite value has a field
// which is not declared by the composite codec.
type UnknownFieldError struct {
	Path       ValuePath
	Identifier string
	Name       string
	Suggestion string
}

var _ SchemaError = UnknownFieldError{}

func (UnknownFieldError) IsUserError() {}

func (e UnknownFieldError) Location() ValuePath {
	return e.Path
}

func (e UnknownFieldError) atPath(prefix ValuePath) error {
	e.Path = prefix.Concat(e.Path)
	return e
}

func (e UnknownFieldError) Error() string {
	message := fmt.Sprintf("unknown field `%s` in `%s`", e.Name, e.Identifier)
	if e.Suggestion != "" {
		message += fmt.Sprintf(". did you mean `%s`?", e.Suggestion)
	}
	return withLocation(message, e.Path)
}

// MissingFieldError

// MissingFieldError is reported when a field declared by a composite codec
// is absent from a composite value.
type MissingFieldError struct {
	Path       ValuePath
	Identifier string
	Name       string
}

var _ SchemaError = MissingFieldError{}

func (MissingFieldError) IsUserError() {}

func (e MissingFieldError) Location() ValuePath {
	return e.Path
}

func (e MissingFieldError) atPath(prefix ValuePath) error {
	e.Path = prefix.Concat(e.Path)
	return e
}

func (e MissingFieldError) Error() string {
	return withLocation(
		fmt.Sprintf("missing field `%s` in `%s`", e.Name, e.Identifier),
		e.Path,
	)
}

// MalformedNumericLiteralError

// MalformedNumericLiteralError is reported when an integer or fixed-point literal
// is not well-formed for its type.
type MalformedNumericLiteralError struct {
	Path    ValuePath
	Type    wire.Tag
	Literal string
}

var _ SchemaError = MalformedNumericLiteralError{}

func (MalformedNumericLiteralError) IsUserError() {}

func (e MalformedNumericLiteralError) Location() ValuePath {
	return e.Path
}

func (e MalformedNumericLiteralError) atPath(prefix ValuePath) error {
	e.Path = prefix.Concat(e.Path)
	return e
}

func (e MalformedNumericLiteralError) Error() string {
	return withLocation(
		fmt.Sprintf("malformed %s literal: %q", e.Type, e.Literal),
		e.Path,
	)
}

// IsSchemaMismatch returns true if the error chain contains a schema mismatch,
// i.e. a SchemaMismatchError, an UnknownFieldError, or a MissingFieldError.
func IsSchemaMismatch(err error) bool {
	var mismatchErr SchemaMismatchError
	var unknownFieldErr UnknownFieldError
	var missingFieldErr MissingFieldError

	return goerrors.As(err, &mismatchErr) ||
		goerrors.As(err, &unknownFieldErr) ||
		goerrors.As(err, &missingFieldErr)
}

// IsMalformedNumericLiteral returns true if the error chain contains a MalformedNumericLiteralError.
func IsMalformedNumericLiteral(err error) bool {
	var literalErr MalformedNumericLiteralError
	return goerrors.As(err, &literalErr)
}

// closestFieldName returns the declared field name closest to the given name,
// or the empty string if no name is a plausible typo.
func closestFieldName(name string, declaredNames []string) (closestName string) {
	sortedNames := make([]string, len(declaredNames))
	copy(sortedNames, declaredNames)
	sort.Strings(sortedNames)

	nameRunes := []rune(name)

	closestDistance := len(name)

	for _, declaredName := range sortedNames {
		distance := levenshtein.DistanceForStrings(
			nameRunes,
			[]rune(declaredName),
			levenshtein.DefaultOptions,
		)

		// Don't update the closest name if the distance is greater than one already found,
		// or if the edits required would involve a complete replacement of the name
		if distance < closestDistance && distance < len(declaredName) {
			closestName = declaredName
			closestDistance = distance
		}
	}

	return
}

func describeValue(value wire.Value) string {
	if value.Type == "" {
		return "value without type"
	}
	return fmt.Sprintf("`%s` value", value.Type)
}

func describePayload(payload any) string {
	switch payload.(type) {
	case nil:
		return "no payload"
	case bool:
		return "bool payload"
	case string:
		return "string payload"
	case wire.Value:
		return "value payload"
	case []wire.Value:
		return "array payload"
	case []wire.KeyValuePair:
		return "key-value pair payload"
	case wire.Composite:
		return "composite payload"
	case wire.Path:
		return "path payload"
	}
	return fmt.Sprintf("%T payload", payload)
}
