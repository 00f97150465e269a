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

package orderedmap

// OrderedMap is a map which remembers the order in which keys were first inserted.
type OrderedMap[K comparable, V any] struct {
	indices map[K]int
	pairs   []Pair[K, V]
}

// Pair is an entry in an OrderedMap
type Pair[K any, V any] struct {
	Key   K
	Value V
}

// New returns a new OrderedMap of the given size
func New[T OrderedMap[K, V], K comparable, V any](size int) *T {
	return &T{
		indices: make(map[K]int, size),
		pairs:   make([]Pair[K, V], 0, size),
	}
}

func (om *OrderedMap[K, V]) ensureInitialized() {
	if om.indices != nil {
		return
	}
	om.indices = make(map[K]int)
}

// Get returns the value associated with the given key.
// The second return value indicates if the key is present in the map.
func (om *OrderedMap[K, V]) Get(key K) (result V, present bool) {
	if om == nil || om.indices == nil {
		return
	}

	var index int
	if index, present = om.indices[key]; present {
		return om.pairs[index].Value, present
	}
	return
}

// Contains returns true if the key is present in the map
// and false otherwise.
func (om *OrderedMap[K, V]) Contains(key K) (present bool) {
	if om == nil || om.indices == nil {
		return
	}

	_, present = om.indices[key]
	return
}

// Set sets the key-value pair, and returns what `Get` would have returned
// on that key prior to the call to `Set`.
// Updating an existing key keeps its original position.
func (om *OrderedMap[K, V]) Set(key K, value V) (oldValue V, present bool) {
	om.ensureInitialized()

	var index int
	if index, present = om.indices[key]; present {
		oldValue = om.pairs[index].Value
		om.pairs[index].Value = value
		return
	}

	om.indices[key] = len(om.pairs)
	om.pairs = append(om.pairs, Pair[K, V]{
		Key:   key,
		Value: value,
	})

	return
}

// Len returns the length of the ordered map.
func (om *OrderedMap[K, V]) Len() int {
	if om == nil {
		return 0
	}
	return len(om.pairs)
}

// Keys returns the keys in insertion order.
func (om *OrderedMap[K, V]) Keys() []K {
	if om == nil {
		return nil
	}

	keys := make([]K, len(om.pairs))
	for i, pair := range om.pairs {
		keys[i] = pair.Key
	}
	return keys
}

// Foreach iterates over the entries of the map in the insertion order, and invokes
// the provided function for each key-value pair.
func (om *OrderedMap[K, V]) Foreach(f func(key K, value V)) {
	if om == nil {
		return
	}

	for _, pair := range om.pairs {
		f(pair.Key, pair.Value)
	}
}

// ForeachWithError iterates over the entries of the map in the insertion order,
// and invokes the provided function for each key-value pair.
// If the passed function returns an error, iteration breaks and the error is returned.
func (om *OrderedMap[K, V]) ForeachWithError(f func(key K, value V) error) error {
	if om == nil {
		return nil
	}

	for _, pair := range om.pairs {
		err := f(pair.Key, pair.Value)
		if err != nil {
			return err
		}
	}
	return nil
}
