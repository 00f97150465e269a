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

type parser struct {
	tokens  []token
	current token
	pos     int
}

type typeNullDenotationFunc func(p *parser, token token) Type

var typeNullDenotations = map[tokenType]typeNullDenotationFunc{}

func setTypeNullDenotation(tokenType tokenType, nullDenotation typeNullDenotationFunc) {
	current := typeNullDenotations[tokenType]
	if current != nil {
		panic(errors.NewUnexpectedError(
			"type null denotation for token %s already exists",
			tokenType,
		))
	}
	typeNullDenotations[tokenType] = nullDenotation
}

func init() {
	setTypeNullDenotation(tokenIdentifier, func(_ *parser, token token) Type {
		return &NominalType{
			Identifier: token.Value,
			Offset:     token.Offset,
		}
	})

	setTypeNullDenotation(tokenBracketOpen, func(p *parser, token token) Type {
		elementType := parseType(p)
		p.mustOne(tokenBracketClose)
		return &ArrayType{
			Type:   elementType,
			Offset: token.Offset,
		}
	})

	setTypeNullDenotation(tokenBraceOpen, func(p *parser, token token) Type {
		keyType := parseType(p)
		p.mustOne(tokenColon)
		valueType := parseType(p)
		p.mustOne(tokenBraceClose)
		return &DictionaryType{
			KeyType:   keyType,
			ValueType: valueType,
			Offset:    token.Offset,
		}
	})

	setTypeNullDenotation(tokenParenOpen, func(p *parser, token token) Type {
		var elementTypes []Type

		for !p.current.Is(tokenParenClose) {
			elementTypes = append(elementTypes, parseType(p))

			if !p.current.Is(tokenComma) {
				break
			}
			p.next()
		}
		p.mustOne(tokenParenClose)

		return &TupleType{
			Types:  elementTypes,
			Offset: token.Offset,
		}
	})
}

// ParseType parses a type expression, e.g. `{String: [UInt64?]}`.
func ParseType(input string) (result Type, err error) {
	tokens, err := lex(input)
	if err != nil {
		return nil, err
	}

	p := &parser{
		tokens: tokens,
		pos:    -1,
	}

	defer func() {
		if r := recover(); r != nil {
			syntaxErr, ok := r.(*SyntaxError)
			if !ok {
				panic(r)
			}
			result = nil
			err = syntaxErr
		}
	}()

	p.next()

	result = parseType(p)

	if !p.current.Is(tokenEOF) {
		p.unexpected("end of input")
	}

	return result, nil
}

func (p *parser) next() {
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
	p.current = p.tokens[p.pos]
}

func (p *parser) unexpected(expected string) {
	panic(&SyntaxError{
		Offset:  p.current.Offset,
		Message: fmt.Sprintf("expected %s, got %s", expected, p.current),
	})
}

func (p *parser) mustOne(tokenType tokenType) token {
	t := p.current
	if !t.Is(tokenType) {
		p.unexpected(tokenType.String())
	}
	p.next()
	return t
}

// parseType parses a primary type followed by any number of `?` suffixes.
func parseType(p *parser) Type {
	t := p.current

	nullDenotation, ok := typeNullDenotations[t.Type]
	if !ok {
		p.unexpected("type")
	}
	p.next()

	result := nullDenotation(p, t)

	for p.current.Is(tokenQuestionMark) {
		p.next()
		result = &OptionalType{
			Type: result,
		}
	}

	return result
}
