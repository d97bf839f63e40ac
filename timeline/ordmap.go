package timeline

import (
	"sort"
)

/* Map is an ordered key→value table with floor/ceiling lookups. Every stage
 * of the conversion pipeline keys the piece through one of these, whatever
 * the position type of the moment (tick, measure-relative time, Count). */
type Map[K, V any] struct {
	cmp  func(K, K) int
	keys []K
	vals []V
}

func MkMap[K, V any](cmp func(K, K) int) *Map[K, V] {
	return &Map[K, V]{cmp: cmp}
}

/* index of the first key >= k */
func (m *Map[K, V]) search(k K) int {
	return sort.Search(len(m.keys), func(i int) bool {
		return m.cmp(m.keys[i], k) >= 0
	})
}

func (m *Map[K, V]) Put(k K, v V) {
	i := m.search(k)
	if i < len(m.keys) && m.cmp(m.keys[i], k) == 0 {
		m.vals[i] = v
		return
	}
	var key K
	var val V
	m.keys = append(m.keys, key)
	m.vals = append(m.vals, val)
	copy(m.keys[i+1:], m.keys[i:])
	copy(m.vals[i+1:], m.vals[i:])
	m.keys[i] = k
	m.vals[i] = v
}

func (m *Map[K, V]) Get(k K) (V, bool) {
	i := m.search(k)
	if i < len(m.keys) && m.cmp(m.keys[i], k) == 0 {
		return m.vals[i], true
	}
	var zero V
	return zero, false
}

func (m *Map[K, V]) Len() int {
	return len(m.keys)
}

/* Floor returns the entry with the greatest key <= k. */
func (m *Map[K, V]) Floor(k K) (K, V, bool) {
	i := m.search(k)
	if i < len(m.keys) && m.cmp(m.keys[i], k) == 0 {
		return m.keys[i], m.vals[i], true
	}
	if i == 0 {
		var key K
		var val V
		return key, val, false
	}
	return m.keys[i-1], m.vals[i-1], true
}

/* Ceiling returns the entry with the least key >= k. */
func (m *Map[K, V]) Ceiling(k K) (K, V, bool) {
	i := m.search(k)
	if i == len(m.keys) {
		var key K
		var val V
		return key, val, false
	}
	return m.keys[i], m.vals[i], true
}

func (m *Map[K, V]) First() (K, V, bool) {
	if len(m.keys) == 0 {
		var key K
		var val V
		return key, val, false
	}
	return m.keys[0], m.vals[0], true
}

func (m *Map[K, V]) Last() (K, V, bool) {
	if len(m.keys) == 0 {
		var key K
		var val V
		return key, val, false
	}
	return m.keys[len(m.keys)-1], m.vals[len(m.keys)-1], true
}

/* Each visits entries in key order. */
func (m *Map[K, V]) Each(f func(K, V)) {
	for i := range m.keys {
		f(m.keys[i], m.vals[i])
	}
}

/* Clear releases the table; stages call it once the next keying is built. */
func (m *Map[K, V]) Clear() {
	m.keys, m.vals = nil, nil
}
