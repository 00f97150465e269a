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
	"regexp"
	"strings"

	"github.com/onflow/cadence-codec/wire"
)

// Void encodes nothing. Any input is ignored.
var Void Codec[struct{}, any] = New[struct{}, any](
	wire.TagVoid,
	func(_ EncodeContext, _ any) (wire.Value, error) {
		return wire.NewVoid(), nil
	},
	SchemaFunc(func(path ValuePath, value wire.Value) error {
		err := expectTag(path, value, wire.TagVoid)
		if err != nil {
			return err
		}
		if value.Value != nil {
			return NewSchemaMismatchError(path.payloadPath(), "no payload", describePayload(value.Value))
		}
		return nil
	}),
	func(_ wire.Value) (struct{}, error) {
		return struct{}{}, nil
	},
)

var Bool Codec[bool, bool] = New[bool, bool](
	wire.TagBool,
	func(_ EncodeContext, value bool) (wire.Value, error) {
		return wire.NewBool(value), nil
	},
	payloadSchema[bool](wire.TagBool, nil),
	decodePayload[bool],
)

var String Codec[string, string] = New[string, string](
	wire.TagString,
	func(_ EncodeContext, value string) (wire.Value, error) {
		return wire.NewString(value), nil
	},
	payloadSchema[string](wire.TagString, nil),
	decodePayload[string],
)

const addressPrefix = "0x"

var addressPattern = regexp.MustCompile(`^(0x)?[a-fA-F0-9]*$`)

// Address encodes hex addresses. Encoding always adds the `0x` prefix,
// decoding accepts addresses with or without it and always strips it.
var Address Codec[string, string] = New[string, string](
	wire.TagAddress,
	encodeAddress,
	payloadSchema[string](wire.TagAddress, checkAddress),
	func(value wire.Value) (string, error) {
		return strings.TrimPrefix(value.Value.(string), addressPrefix), nil
	},
)

func encodeAddress(_ EncodeContext, value string) (wire.Value, error) {
	if !strings.HasPrefix(value, addressPrefix) {
		value = addressPrefix + value
	}

	err := checkAddress(ValuePath{}.payloadPath(), value)
	if err != nil {
		return wire.Value{}, err
	}

	return wire.NewText(wire.TagAddress, value), nil
}

func checkAddress(path ValuePath, address string) error {
	if !addressPattern.MatchString(address) {
		return NewSchemaMismatchError(path, "hex address", quote(address))
	}
	return nil
}

func quote(s string) string {
	const maxLength = 64
	if len(s) > maxLength {
		s = s[:maxLength] + "..."
	}
	return "`" + s + "`"
}
