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
	"math"
	"math/big"
	"regexp"
	"strconv"
)

// IntLike is any native representation of an integer accepted by the integer codecs:
// a base-10 string, a json.Number, a Go integer, an integral float,
// a *big.Int or big.Int, or a []byte holding a big-endian unsigned magnitude.
type IntLike = any

var (
	signedIntegerPattern   = regexp.MustCompile(`^-?[0-9]+$`)
	unsignedIntegerPattern = regexp.MustCompile(`^[0-9]+$`)
)

// IntLikeAsBigInt converts an IntLike to an arbitrary-precision integer.
func IntLikeAsBigInt(value IntLike) (*big.Int, error) {
	switch v := value.(type) {
	case string:
		return parseDecimal(v)

	case json.Number:
		return parseDecimal(string(v))

	case int:
		return big.NewInt(int64(v)), nil
	case int8:
		return big.NewInt(int64(v)), nil
	case int16:
		return big.NewInt(int64(v)), nil
	case int32:
		return big.NewInt(int64(v)), nil
	case int64:
		return big.NewInt(v), nil

	case uint:
		return new(big.Int).SetUint64(uint64(v)), nil
	case uint8:
		return new(big.Int).SetUint64(uint64(v)), nil
	case uint16:
		return new(big.Int).SetUint64(uint64(v)), nil
	case uint32:
		return new(big.Int).SetUint64(uint64(v)), nil
	case uint64:
		return new(big.Int).SetUint64(v), nil

	case float32:
		return floatAsBigInt(float64(v))
	case float64:
		return floatAsBigInt(v)

	case *big.Int:
		if v == nil {
			return nil, NewSchemaMismatchError(nil, "integer", "nil *big.Int")
		}
		return new(big.Int).Set(v), nil

	case big.Int:
		return new(big.Int).Set(&v), nil

	case []byte:
		return new(big.Int).SetBytes(v), nil
	}

	return nil, NewSchemaMismatchError(nil, "integer", fmt.Sprintf("%T", value))
}

// IntLikeAsString converts an IntLike to its canonical base-10 representation.
func IntLikeAsString(value IntLike) (string, error) {
	bigInt, err := IntLikeAsBigInt(value)
	if err != nil {
		return "", err
	}
	return bigInt.String(), nil
}

// IntLikeAsBytes converts a non-negative IntLike to its big-endian unsigned magnitude.
func IntLikeAsBytes(value IntLike) ([]byte, error) {
	bigInt, err := IntLikeAsBigInt(value)
	if err != nil {
		return nil, err
	}
	if bigInt.Sign() < 0 {
		return nil, NewSchemaMismatchError(nil, "non-negative integer", bigInt.String())
	}
	return bigInt.Bytes(), nil
}

func parseDecimal(literal string) (*big.Int, error) {
	if !signedIntegerPattern.MatchString(literal) {
		return nil, MalformedNumericLiteralError{
			Type:    "integer",
			Literal: literal,
		}
	}

	bigInt, ok := new(big.Int).SetString(literal, 10)
	if !ok {
		return nil, MalformedNumericLiteralError{
			Type:    "integer",
			Literal: literal,
		}
	}
	return bigInt, nil
}

func floatAsBigInt(f float64) (*big.Int, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return nil, NewSchemaMismatchError(
			nil,
			"integer",
			"non-integral number "+strconv.FormatFloat(f, 'g', -1, 64),
		)
	}
	bigInt, _ := big.NewFloat(f).Int(nil)
	return bigInt, nil
}
