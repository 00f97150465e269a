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
	"unicode"
	"unicode/utf8"

	"github.com/onflow/cadence-codec/errors"
)

type tokenType uint8

const (
	tokenEOF tokenType = iota
	tokenIdentifier
	tokenQuestionMark
	tokenBracketOpen
	tokenBracketClose
	tokenBraceOpen
	tokenBraceClose
	tokenParenOpen
	tokenParenClose
	tokenComma
	tokenColon
	// NOTE: not an actual token, must be last item
	tokenMax
)

func init() {
	// ensure all tokens have their string format
	for t := tokenType(0); t < tokenMax; t++ {
		_ = t.String()
	}
}

func (t tokenType) String() string {
	switch t {
	case tokenEOF:
		return "end of input"
	case tokenIdentifier:
		return "identifier"
	case tokenQuestionMark:
		return "`?`"
	case tokenBracketOpen:
		return "`[`"
	case tokenBracketClose:
		return "`]`"
	case tokenBraceOpen:
		return "`{`"
	case tokenBraceClose:
		return "`}`"
	case tokenParenOpen:
		return "`(`"
	case tokenParenClose:
		return "`)`"
	case tokenComma:
		return "`,`"
	case tokenColon:
		return "`:`"
	}

	panic(errors.NewUnreachableError())
}

type token struct {
	Type   tokenType
	Value  string
	Offset int
}

func (t token) Is(ty tokenType) bool {
	return t.Type == ty
}

func (t token) String() string {
	if t.Type == tokenIdentifier {
		return "identifier `" + t.Value + "`"
	}
	return t.Type.String()
}

var punctuation = map[rune]tokenType{
	'?': tokenQuestionMark,
	'[': tokenBracketOpen,
	']': tokenBracketClose,
	'{': tokenBraceOpen,
	'}': tokenBraceClose,
	'(': tokenParenOpen,
	')': tokenParenClose,
	',': tokenComma,
	':': tokenColon,
}

// isIdentifierRune reports whether r may occur in an identifier.
// Dots are included, so qualified identifiers like `A.0000000000000001.Token.Vault`
// are a single token.
func isIdentifierRune(r rune) bool {
	return r == '_' || r == '.' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// lex splits a type expression into tokens.
// The result always ends with an EOF token.
func lex(input string) ([]token, error) {
	var tokens []token

	offset := 0
	for offset < len(input) {
		r, width := utf8.DecodeRuneInString(input[offset:])

		switch {
		case unicode.IsSpace(r):
			offset += width

		case isIdentifierRune(r):
			start := offset
			for offset < len(input) {
				r, width = utf8.DecodeRuneInString(input[offset:])
				if !isIdentifierRune(r) {
					break
				}
				offset += width
			}
			tokens = append(tokens, token{
				Type:   tokenIdentifier,
				Value:  input[start:offset],
				Offset: start,
			})

		default:
			ty, ok := punctuation[r]
			if !ok {
				return nil, &SyntaxError{
					Offset:  offset,
					Message: "unexpected character " + quoteRune(r),
				}
			}
			tokens = append(tokens, token{
				Type:   ty,
				Offset: offset,
			})
			offset += width
		}
	}

	return append(tokens, token{
		Type:   tokenEOF,
		Offset: len(input),
	}), nil
}

func quoteRune(r rune) string {
	return "`" + string(r) + "`"
}
