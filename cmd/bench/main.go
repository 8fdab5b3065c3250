// Command bench compares this package's Table against a stdlib map and
// three other open-addressed hash map implementations from the example
// pack, all driven through a common Map[K,V] interface.
//
// Grounded on nikgalushko-swisstable-bench's main.go, generalized from a
// fixed int/int workload to reuse the same four comparison maps plus this
// repository's own Table.
package main

import (
	"flag"
	"fmt"

	cocroach "github.com/cockroachdb/swiss"
	crn4 "github.com/crn4/swiss"
	dolthub "github.com/dolthub/swiss"

	"github.com/adb-collections/swiss"
)

func main() {
	var (
		seed, size uint64
		mapType    string
	)
	flag.Uint64Var(&seed, "seed", 1234, "seed value for random generator")
	flag.Uint64Var(&size, "dataset-size", 1_000_000, "number of elements in the dataset")
	flag.StringVar(&mapType, "map-type", "std", "std/swiss/cocroach/crn4/dolthub")
	flag.Parse()

	build := func() Map[int, int] { return NewSimpleMap[int, int]() }
	switch mapType {
	case "swiss":
		build = func() Map[int, int] { return NewSwissMap[int, int]() }
	case "cocroach":
		build = func() Map[int, int] { return NewCocroachMap[int, int]() }
	case "crn4":
		build = func() Map[int, int] { return NewCRN4Map[int, int]() }
	case "dolthub":
		build = func() Map[int, int] { return NewDolthubMap[int, int]() }
	}
	b := New[int, int](size, seed, build)

	fmt.Printf("Running Map Benchmarks (map-type=%s)\n", mapType)

	b.Run()
}

// Map is the common surface every compared implementation is driven
// through, matching nikgalushko-swisstable-bench's Map[K,V] interface.
type Map[K comparable, V any] interface {
	Get(K) (V, bool)
	Set(K, V)
	Delete(K)
}

type SimpleMap[K comparable, V any] struct {
	data map[K]V
}

func NewSimpleMap[K comparable, V any]() *SimpleMap[K, V] {
	return &SimpleMap[K, V]{data: make(map[K]V)}
}

func (m *SimpleMap[K, V]) Get(key K) (V, bool) { v, ok := m.data[key]; return v, ok }
func (m *SimpleMap[K, V]) Set(key K, value V)  { m.data[key] = value }
func (m *SimpleMap[K, V]) Delete(key K)        { delete(m.data, key) }

// Swiss adapts this repository's Table to the Map interface. Set uses
// At rather than Insert so repeated keys overwrite in place instead of
// accumulating as distinct multi-valued entries, matching what a plain map
// workload expects. At inserts (key, zero value) on first access and hands
// back a pointer to the stored slot either way, so Set is a plain write
// through that pointer — Replace would no-op on a key not already present.
type Swiss[K comparable, V comparable] struct {
	data *swiss.Table[K, V]
}

func NewSwissMap[K comparable, V comparable]() *Swiss[K, V] {
	return &Swiss[K, V]{data: swiss.New[K, V](swiss.MemHash[K])}
}

func (m *Swiss[K, V]) Get(key K) (V, bool) { return m.data.Get(key) }
func (m *Swiss[K, V]) Set(key K, value V)  { *m.data.At(key) = value }
func (m *Swiss[K, V]) Delete(key K)        { m.data.Remove(key) }

type Cocroach[K comparable, V any] struct {
	data *cocroach.Map[K, V]
}

func NewCocroachMap[K comparable, V any]() *Cocroach[K, V] {
	return &Cocroach[K, V]{data: cocroach.New[K, V](0)}
}

func (m *Cocroach[K, V]) Get(key K) (V, bool) { return m.data.Get(key) }
func (m *Cocroach[K, V]) Set(key K, value V)  { m.data.Put(key, value) }
func (m *Cocroach[K, V]) Delete(key K)        { m.data.Delete(key) }

type CRN4[K comparable, V any] struct {
	data *crn4.Map[K, V]
}

func NewCRN4Map[K comparable, V any]() *CRN4[K, V] {
	return &CRN4[K, V]{data: crn4.New[K, V](0)}
}

func (m *CRN4[K, V]) Get(key K) (V, bool) { return m.data.Get(key) }
func (m *CRN4[K, V]) Set(key K, value V)  { m.data.Put(key, value) }
func (m *CRN4[K, V]) Delete(key K)        { m.data.Delete(key) }

type Dolthub[K comparable, V any] struct {
	data *dolthub.Map[K, V]
}

func NewDolthubMap[K comparable, V any]() *Dolthub[K, V] {
	return &Dolthub[K, V]{data: dolthub.NewMap[K, V](0)}
}

func (m *Dolthub[K, V]) Get(key K) (V, bool) { return m.data.Get(key) }
func (m *Dolthub[K, V]) Set(key K, value V)  { m.data.Put(key, value) }
func (m *Dolthub[K, V]) Delete(key K)        { m.data.Delete(key) }
