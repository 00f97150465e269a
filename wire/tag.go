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

// Tag is the value of the `type` property of a JSON-Cadence value.
type Tag string

const (
	TagVoid       Tag = "Void"
	TagBool       Tag = "Bool"
	TagString     Tag = "String"
	TagAddress    Tag = "Address"
	TagInt        Tag = "Int"
	TagInt8       Tag = "Int8"
	TagInt16      Tag = "Int16"
	TagInt32      Tag = "Int32"
	TagInt64      Tag = "Int64"
	TagInt128     Tag = "Int128"
	TagInt256     Tag = "Int256"
	TagUInt       Tag = "UInt"
	TagUInt8      Tag = "UInt8"
	TagUInt16     Tag = "UInt16"
	TagUInt32     Tag = "UInt32"
	TagUInt64     Tag = "UInt64"
	TagUInt128    Tag = "UInt128"
	TagUInt256    Tag = "UInt256"
	TagFix64      Tag = "Fix64"
	TagUFix64     Tag = "UFix64"
	TagOptional   Tag = "Optional"
	TagArray      Tag = "Array"
	TagDictionary Tag = "Dictionary"
	TagStruct     Tag = "Struct"
	TagResource   Tag = "Resource"
	TagEvent      Tag = "Event"
	TagContract   Tag = "Contract"
	TagEnum       Tag = "Enum"
	TagPath       Tag = "Path"
)

// AllTags lists every tag in the JSON-Cadence subset understood by this module.
var AllTags = []Tag{
	TagVoid,
	TagBool,
	TagString,
	TagAddress,
	TagInt,
	TagInt8,
	TagInt16,
	TagInt32,
	TagInt64,
	TagInt128,
	TagInt256,
	TagUInt,
	TagUInt8,
	TagUInt16,
	TagUInt32,
	TagUInt64,
	TagUInt128,
	TagUInt256,
	TagFix64,
	TagUFix64,
	TagOptional,
	TagArray,
	TagDictionary,
	TagStruct,
	TagResource,
	TagEvent,
	TagContract,
	TagEnum,
	TagPath,
}

type payloadKind uint8

const (
	payloadKindUnknown payloadKind = iota
	payloadKindNone
	payloadKindBool
	payloadKindString
	payloadKindOptional
	payloadKindArray
	payloadKindDictionary
	payloadKindComposite
	payloadKindPath
)

var payloadKinds = map[Tag]payloadKind{}

func init() {
	for _, tag := range AllTags {
		payloadKinds[tag] = tag.payloadKind()
	}
}

func (t Tag) payloadKind() payloadKind {
	switch t {
	case TagVoid:
		return payloadKindNone
	case TagBool:
		return payloadKindBool
	case TagString,
		TagAddress,
		TagInt, TagInt8, TagInt16, TagInt32, TagInt64, TagInt128, TagInt256,
		TagUInt, TagUInt8, TagUInt16, TagUInt32, TagUInt64, TagUInt128, TagUInt256,
		TagFix64, TagUFix64:
		return payloadKindString
	case TagOptional:
		return payloadKindOptional
	case TagArray:
		return payloadKindArray
	case TagDictionary:
		return payloadKindDictionary
	case TagStruct, TagResource, TagEvent, TagContract, TagEnum:
		return payloadKindComposite
	case TagPath:
		return payloadKindPath
	}
	return payloadKindUnknown
}

// IsKnown returns true if the tag is part of the supported JSON-Cadence subset.
func (t Tag) IsKnown() bool {
	_, ok := payloadKinds[t]
	return ok
}

// IsComposite returns true for the nominal record kinds
// (Struct, Resource, Event, Contract, Enum).
func (t Tag) IsComposite() bool {
	return t.payloadKind() == payloadKindComposite
}

func (t Tag) String() string {
	return string(t)
}
