package swiss

// pair is a stored key/value slot in the primary data region.
type pair[K comparable, V any] struct {
	key   K
	value V
}

// data is the storage adapter (C3): raw pair storage plus a parallel meta
// byte per slot, with no knowledge of Empty/Deleted/mirror policy. That
// policy lives entirely in Table (C4); data only ever does what it is told.
//
// Grounded on original_source/src/Data.h's adb::Data<Key,Value>, which
// exposes exactly this operation set to adb::Hash.
type data[K comparable, V any] struct {
	entries []pair[K, V]
	meta    []byte
}

// newData allocates dataSize pair slots and metaSize meta bytes, all
// initialized to metaInit.
func newData[K comparable, V any](dataSize, metaSize int64, metaInit byte) *data[K, V] {
	d := &data[K, V]{
		entries: make([]pair[K, V], dataSize),
		meta:    make([]byte, metaSize),
	}
	for i := range d.meta {
		d.meta[i] = metaInit
	}
	return d
}

func (d *data[K, V]) dataSize() int64 {
	return int64(len(d.entries))
}

func (d *data[K, V]) metaSize() int64 {
	return int64(len(d.meta))
}

func (d *data[K, V]) key(i int64) K {
	return d.entries[i].key
}

func (d *data[K, V]) value(i int64) V {
	return d.entries[i].value
}

func (d *data[K, V]) setData(i int64, k K, v V) {
	d.entries[i] = pair[K, V]{key: k, value: v}
}

func (d *data[K, V]) setValue(i int64, v V) {
	d.entries[i].value = v
}

// metaWindow returns a read-only view of at least n meta bytes starting at
// i. The engine calls this with n=groupSize for group reads and n=1 for
// single-byte inspection.
func (d *data[K, V]) metaWindow(i, n int64) []byte {
	return d.meta[i : i+n]
}

func (d *data[K, V]) setMetaValue(i int64, b byte) {
	d.meta[i] = b
}

func (d *data[K, V]) setMetaData(i int64, bs []byte) {
	copy(d.meta[i:], bs)
}

// resize grows or shrinks both arrays, preserving existing content up to
// the smaller of the old and new lengths. New meta slots are initialized
// to metaInit; new pair slots are zero-valued.
func (d *data[K, V]) resize(dataSize, metaSize int64, metaInit byte) {
	entries := make([]pair[K, V], dataSize)
	copy(entries, d.entries)
	d.entries = entries

	oldMetaSize := int64(len(d.meta))
	meta := make([]byte, metaSize)
	copy(meta, d.meta)
	for i := oldMetaSize; i < metaSize; i++ {
		meta[i] = metaInit
	}
	d.meta = meta
}
