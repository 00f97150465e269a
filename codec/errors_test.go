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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onflow/cadence-codec/errors"
)

func TestValuePath(t *testing.T) {

	t.Parallel()

	root := ValuePath{}
	assert.Equal(t, "", root.String())

	fields := root.payloadPath().Property("fields")
	first := fields.Index(0)
	second := fields.Index(1)

	assert.Equal(t, ".value.fields[0]", first.String())
	assert.Equal(t, ".value.fields[1]", second.String())

	assert.Equal(t, `.value["a\"b"].key`, root.payloadPath().Key(`a"b`).Property("key").String())

	assert.Equal(t,
		".value[2].value.fields[0]",
		root.payloadPath().Index(2).Concat(first).String(),
	)
}

func TestAtPath(t *testing.T) {

	t.Parallel()

	err := NewSchemaMismatchError(ValuePath{}.payloadPath(), "`Bool` value", "`Int` value")

	prefixed := atPath(err, ValuePath{}.payloadPath().Index(3))
	assert.EqualError(t, prefixed, "schema mismatch: expected `Bool` value, got `Int` value (at .value[3].value)")

	// the original error is unchanged
	assert.EqualError(t, err, "schema mismatch: expected `Bool` value, got `Int` value (at .value)")

	other := fmt.Errorf("other")
	assert.Same(t, other, atPath(other, ValuePath{}.payloadPath()))
}

func TestErrorClassification(t *testing.T) {

	t.Parallel()

	mismatch := NewSchemaMismatchError(nil, "a", "b")
	unknown := UnknownFieldError{Identifier: "Foo", Name: "x"}
	missing := MissingFieldError{Identifier: "Foo", Name: "y"}
	literal := MalformedNumericLiteralError{Type: "Int", Literal: "z"}

	for _, err := range []error{mismatch, unknown, missing} {
		assert.True(t, IsSchemaMismatch(err), err.Error())
		assert.True(t, IsSchemaMismatch(fmt.Errorf("wrapped: %w", err)), err.Error())
		assert.False(t, IsMalformedNumericLiteral(err), err.Error())
		assert.True(t, errors.IsUserError(err), err.Error())
	}

	assert.True(t, IsMalformedNumericLiteral(literal))
	assert.True(t, IsMalformedNumericLiteral(fmt.Errorf("wrapped: %w", literal)))
	assert.False(t, IsSchemaMismatch(literal))
	assert.True(t, errors.IsUserError(literal))

	assert.False(t, IsSchemaMismatch(nil))
	assert.False(t, IsSchemaMismatch(errors.NewDefaultUserError("x")))

	assert.EqualError(t, unknown, "unknown field `x` in `Foo`")
	assert.EqualError(t, missing, "missing field `y` in `Foo`")
	assert.EqualError(t, literal, `malformed Int literal: "z"`)
}

func TestClosestFieldName(t *testing.T) {

	t.Parallel()

	declared := []string{"balance", "owner", "uuid"}

	tests := map[string]string{
		"balanse": "balance",
		"ownr":    "owner",
		"uid":     "uuid",
		"xyz":     "",
		"":        "",
	}

	for name, expected := range tests {
		assert.Equal(t, expected, closestFieldName(name, declared), name)
	}

	require.Equal(t, "", closestFieldName("a", nil))
}
