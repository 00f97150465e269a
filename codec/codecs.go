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
	"sort"
)

var leafCodecs = map[string]AnyCodec{
	"Void":        Void,
	"Bool":        Bool,
	"String":      String,
	"Address":     Address,
	"Int":         Int,
	"Int8":        Int8,
	"Int16":       Int16,
	"Int32":       Int32,
	"Int64":       Int64,
	"Int128":      Int128,
	"Int256":      Int256,
	"UInt":        UInt,
	"UInt8":       UInt8,
	"UInt16":      UInt16,
	"UInt32":      UInt32,
	"UInt64":      UInt64,
	"UInt128":     UInt128,
	"UInt256":     UInt256,
	"Fix64":       Fix64,
	"UFix64":      UFix64,
	"Path":        Path,
	"StoragePath": StoragePath,
	"PrivatePath": PrivatePath,
	"PublicPath":  PublicPath,
}

// LeafByName returns the leaf codec with the given name,
// e.g. `UInt64` or `StoragePath`.
func LeafByName(name string) (AnyCodec, bool) {
	c, ok := leafCodecs[name]
	return c, ok
}

// LeafNames returns the names of all leaf codecs, sorted.
func LeafNames() []string {
	names := make([]string, 0, len(leafCodecs))
	for name := range leafCodecs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
