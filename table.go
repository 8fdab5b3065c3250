package swiss

// groupSize is the width of both the SIMD match window and the mirror tail,
// fixed at 16 to match a single SSE register and the control layout the
// original implementation assumes throughout.
const groupSize = 16

// Meta byte values. A meta byte's high bit distinguishes Valid (clear) from
// Empty/Deleted (set); Empty and Deleted are further told apart by the low
// seven bits, which for Valid slots instead carry the H2 fingerprint.
const (
	metaEmpty   byte = 0b1000_0000
	metaDeleted byte = 0b1111_1110
	metaFinMask byte = 0b0111_1111
)

// debug gates assertions for a state the invariants below should make
// impossible: a group window shorter than groupSize. Left false in the
// default build, same as the teacher's own debug flag.
const debug = false

// KV is one key/value pair, used by From to seed a Table in one call.
type KV[K comparable, V comparable] struct {
	Key   K
	Value V
}

// Table is an open-addressed, group-probed, multi-valued associative
// container (C4 in the component design): groups of groupSize slots probed
// via a byte-wide meta array, matched groupSize-at-a-time, with a mirror
// copy of the first group appended past the end so a group read straddling
// the wraparound point never has to branch.
//
// Grounded on original_source/include/Hash.h (adb::Hash) for control flow,
// generalized from the teacher's concrete Key/Value Map to Go generics.
//
// K is compared with Go's native equality (comparable). V is also
// comparable: find(k,v)/count(k,v)/replace(k,old,new) need value equality,
// and comparable is the natural equality spec 6 asks for.
type Table[K comparable, V comparable] struct {
	d        *data[K, V]
	count    int64
	hashFunc HashFunc[K]
}

// New returns an empty Table with the minimum capacity (one group), using
// hashFunc for all key hashing.
func New[K comparable, V comparable](hashFunc HashFunc[K]) *Table[K, V] {
	return &Table[K, V]{
		d:        newData[K, V](groupSize, groupSize+groupSize, metaEmpty),
		hashFunc: hashFunc,
	}
}

// From builds a Table from pairs in order, preserving duplicate keys as
// distinct entries — mirroring the original's initializer-list constructor,
// which is just a loop over insert.
func From[K comparable, V comparable](hashFunc HashFunc[K], pairs ...KV[K, V]) *Table[K, V] {
	t := New[K, V](hashFunc)
	for _, p := range pairs {
		t.Insert(p.Key, p.Value)
	}
	return t
}

// Len reports the number of live entries, counting duplicate keys once per
// occurrence.
func (t *Table[K, V]) Len() int64 { return t.count }

// IsEmpty reports whether the table holds no entries.
func (t *Table[K, V]) IsEmpty() bool { return t.count == 0 }

// Cap reports the current number of primary slots (always a power of two,
// never below groupSize). Exposed for tests and diagnostics; not part of
// the container's logical state.
func (t *Table[K, V]) Cap() int64 { return t.d.dataSize() }

func (t *Table[K, V]) maxCount() int64 { return t.Cap() * 15 / 16 }
func (t *Table[K, V]) minCount() int64 { return t.Cap() * 7 / 16 }

func h1(hash uint64, size int64) int64 { return int64(hash % uint64(size)) }
func h2(hash uint64) byte              { return byte(hash) & metaFinMask }

func (t *Table[K, V]) dataIndex(index int64) int64 {
	c := t.Cap()
	if index >= c {
		index -= c
	}
	return index
}

func (t *Table[K, V]) nextGroupIndex(index int64) int64 {
	return t.dataIndex(index + groupSize)
}

func nextIndex(index, size int64) int64 {
	index++
	if index >= size {
		index = 0
	}
	return index
}

func (t *Table[K, V]) isEmpty(index int64) bool {
	return t.d.metaWindow(index, 1)[0] == metaEmpty
}

func (t *Table[K, V]) isDeleted(index int64) bool {
	return t.d.metaWindow(index, 1)[0] == metaDeleted
}

func (t *Table[K, V]) isFree(index int64) bool {
	return t.isEmpty(index) || t.isDeleted(index)
}

// isValid reports whether index holds a live entry: high bit clear, per the
// spec's explicit clarification of the predicate (the source's own
// expression of this check is sign-ambiguous on a signed char).
func (t *Table[K, V]) isValid(index int64) bool {
	return t.d.metaWindow(index, 1)[0]&0x80 == 0
}

func (t *Table[K, V]) isGroupFull(index int64) bool {
	window := t.d.metaWindow(index, groupSize)
	mask, ok := matchByte(metaEmpty, window)
	if debug && !ok {
		panic("short group window")
	}
	return mask == 0
}

// setMetaValue writes the meta byte at index, keeping the mirror tail (a
// copy of the first group, appended past Cap()) in sync whenever index
// falls within that first group.
func (t *Table[K, V]) setMetaValue(index int64, value byte) {
	t.d.setMetaValue(index, value)
	if index < groupSize {
		t.d.setMetaValue(t.Cap()+index, value)
	}
}

func (t *Table[K, V]) takeMetaValue(index int64) byte {
	value := t.d.metaWindow(index, 1)[0]
	t.setMetaValue(index, metaEmpty)
	return value
}

func (t *Table[K, V]) insertData(index int64, k K, v V, metaValue byte) int64 {
	t.setMetaValue(index, metaValue)
	t.d.setData(index, k, v)
	return index
}

// findEmpty walks groups starting at index, one groupSize step at a time,
// returning the first slot whose meta byte is Empty or Deleted. The probe
// chain for insertion never needs to stop earlier: an occupied slot (Valid)
// just means "keep scanning this group, then the next".
func (t *Table[K, V]) findEmpty(index int64) int64 {
	for {
		window := t.d.metaWindow(index, groupSize)
		emptyMask, ok1 := matchByte(metaEmpty, window)
		deletedMask, ok2 := matchByte(metaDeleted, window)
		if debug && (!ok1 || !ok2) {
			panic("short group window")
		}
		bm := newBitMask(emptyMask | deletedMask)
		if pos, ok := bm.Next(); ok {
			return t.dataIndex(index + int64(pos))
		}
		index = t.nextGroupIndex(index)
	}
}

// findIndex walks groups starting at index looking for a slot whose meta
// byte equals metaValue (the H2 fingerprint) and that satisfies match. It
// stops — returning Cap() meaning "not found" — the moment it reaches a
// group containing an Empty byte, since a live entry can never have probed
// past an Empty slot to land further along the chain.
func (t *Table[K, V]) findIndex(index int64, metaValue byte, match func(int64) bool) int64 {
	for {
		window := t.d.metaWindow(index, groupSize)
		mask, ok := matchByte(metaValue, window)
		if debug && !ok {
			panic("short group window")
		}
		bm := newBitMask(mask)
		for {
			pos, ok := bm.Next()
			if !ok {
				break
			}
			candidate := t.dataIndex(index + int64(pos))
			if match(candidate) {
				return candidate
			}
		}
		if !t.isGroupFull(index) {
			return t.Cap()
		}
		index = t.nextGroupIndex(index)
	}
}

// findAll is findIndex generalized to collect every matching slot instead
// of stopping at the first.
func (t *Table[K, V]) findAll(index int64, metaValue byte, match func(int64) bool) []int64 {
	var found []int64
	for {
		window := t.d.metaWindow(index, groupSize)
		mask, ok := matchByte(metaValue, window)
		if debug && !ok {
			panic("short group window")
		}
		bm := newBitMask(mask)
		for {
			pos, ok := bm.Next()
			if !ok {
				break
			}
			candidate := t.dataIndex(index + int64(pos))
			if match(candidate) {
				found = append(found, candidate)
			}
		}
		if !t.isGroupFull(index) {
			return found
		}
		index = t.nextGroupIndex(index)
	}
}

func (t *Table[K, V]) findNext(index int64) int64 {
	for index++; index < t.Cap(); index++ {
		if t.isValid(index) {
			break
		}
	}
	return index
}

func (t *Table[K, V]) findPrevious(index int64) int64 {
	for index--; index >= 0; index-- {
		if t.isValid(index) {
			break
		}
	}
	return index
}

// Insert grows the table first (if needed), then places (k, v) in the
// earliest free slot of k's probe chain. Matching original_source's
// insert(), which increments the live count and rehashes BEFORE computing
// the placement hash: a grow changes Cap(), so the hash must be taken
// against the post-grow size or the slot picked would be wrong.
func (t *Table[K, V]) Insert(k K, v V) Handle {
	t.count++
	t.maybeResize()

	hash := t.hashFunc(k)
	start := h1(hash, t.Cap())
	index := t.findEmpty(start)
	return Handle{index: t.insertData(index, k, v, h2(hash))}
}

// Find returns a Handle to some occurrence of k, or the end-handle if k is
// absent. When k has multiple stored values, which occurrence is returned
// is whichever the probe chain reaches first.
func (t *Table[K, V]) Find(k K) Handle {
	hash := t.hashFunc(k)
	index := t.findIndex(h1(hash, t.Cap()), h2(hash), func(i int64) bool {
		return t.d.key(i) == k
	})
	return Handle{index: index}
}

// FindKV returns a Handle to the (k, v) pair if present, or the end-handle.
func (t *Table[K, V]) FindKV(k K, v V) Handle {
	hash := t.hashFunc(k)
	index := t.findIndex(h1(hash, t.Cap()), h2(hash), func(i int64) bool {
		return t.d.key(i) == k && t.d.value(i) == v
	})
	return Handle{index: index}
}

// Contains reports whether k has at least one stored value.
func (t *Table[K, V]) Contains(k K) bool {
	return !t.IsEnd(t.Find(k))
}

// ContainsKV reports whether the exact pair (k, v) is stored.
func (t *Table[K, V]) ContainsKV(k K, v V) bool {
	return !t.IsEnd(t.FindKV(k, v))
}

// Count returns the number of stored values under k.
func (t *Table[K, V]) Count(k K) int64 {
	hash := t.hashFunc(k)
	return int64(len(t.findAll(h1(hash, t.Cap()), h2(hash), func(i int64) bool {
		return t.d.key(i) == k
	})))
}

// CountKV returns the number of times the exact pair (k, v) is stored.
func (t *Table[K, V]) CountKV(k K, v V) int64 {
	hash := t.hashFunc(k)
	return int64(len(t.findAll(h1(hash, t.Cap()), h2(hash), func(i int64) bool {
		return t.d.key(i) == k && t.d.value(i) == v
	})))
}

// Values returns every stored value under k, in probe order. The returned
// slice is a fresh copy; mutating it does not affect the table.
func (t *Table[K, V]) Values(k K) []V {
	hash := t.hashFunc(k)
	indexes := t.findAll(h1(hash, t.Cap()), h2(hash), func(i int64) bool {
		return t.d.key(i) == k
	})
	values := make([]V, len(indexes))
	for i, idx := range indexes {
		values[i] = t.d.value(idx)
	}
	return values
}

// Value returns the first stored value under k in probe order, or
// defaultValue if k is absent.
func (t *Table[K, V]) Value(k K, defaultValue V) V {
	h := t.Find(k)
	if t.IsEnd(h) {
		return defaultValue
	}
	return t.ValueAt(h)
}

// Get is the idiomatic two-value form of Find: it reports whether k has at
// least one stored value, returning the first one in probe order alongside
// true, or the zero value and false if k is absent. Grounded on the
// teacher's own Map.Get, which returns this shape for its single-valued map.
func (t *Table[K, V]) Get(k K) (V, bool) {
	h := t.Find(k)
	if t.IsEnd(h) {
		var zero V
		return zero, false
	}
	return t.ValueAt(h), true
}

// GetOrZero returns the first stored value under k, or V's zero value if k
// is absent — the Go equivalent of the original's const operator[], which
// default-constructs rather than taking an explicit fallback.
func (t *Table[K, V]) GetOrZero(k K) V {
	var zero V
	return t.Value(k, zero)
}

// At returns a pointer to the first value stored under k, inserting (k,
// zero value) first if k is absent — the Go equivalent of the original's
// mutable operator[], which returns an assignable Reference that inserts
// on first access.
func (t *Table[K, V]) At(k K) *V {
	h := t.Find(k)
	if t.IsEnd(h) {
		var zero V
		h = t.Insert(k, zero)
	}
	return &t.d.entries[h.index].value
}

// Replace overwrites the value at the first occurrence of k with newValue.
// It is a no-op if k is absent.
func (t *Table[K, V]) Replace(k K, newValue V) {
	h := t.Find(k)
	if t.IsEnd(h) {
		return
	}
	t.d.setValue(h.index, newValue)
}

// ReplaceKV overwrites newValue in place of oldValue under k. It is a no-op
// if the (k, oldValue) pair isn't found.
func (t *Table[K, V]) ReplaceKV(k K, oldValue, newValue V) {
	h := t.FindKV(k, oldValue)
	if t.IsEnd(h) {
		return
	}
	t.d.setValue(h.index, newValue)
}

// Remove deletes every stored value under k, rehashing once afterward if
// the table has crossed a resize threshold — matching original_source's
// batch remove(key), which rehashes once per call rather than once per
// erased slot.
func (t *Table[K, V]) Remove(k K) int64 {
	hash := t.hashFunc(k)
	indexes := t.findAll(h1(hash, t.Cap()), h2(hash), func(i int64) bool {
		return t.d.key(i) == k
	})
	for _, idx := range indexes {
		t.eraseAt(idx)
	}
	if len(indexes) > 0 {
		t.maybeResize()
	}
	return int64(len(indexes))
}

// RemoveKV deletes every occurrence of the exact pair (k, v).
func (t *Table[K, V]) RemoveKV(k K, v V) int64 {
	hash := t.hashFunc(k)
	indexes := t.findAll(h1(hash, t.Cap()), h2(hash), func(i int64) bool {
		return t.d.key(i) == k && t.d.value(i) == v
	})
	for _, idx := range indexes {
		t.eraseAt(idx)
	}
	if len(indexes) > 0 {
		t.maybeResize()
	}
	return int64(len(indexes))
}

// Erase deletes the single entry h points to and returns a handle to the
// next live entry, without triggering a rehash — matching the original's
// erase(iterator), which is the one mutation that deliberately never
// resizes, so that erasing while iterating never invalidates other handles
// mid-walk.
func (t *Table[K, V]) Erase(h Handle) Handle {
	t.eraseAt(h.index)
	return Handle{index: t.findNext(h.index)}
}

// eraseAt marks index free. The erase rule: if the slot's own group still
// has another Empty byte somewhere in it, index can become Empty too — any
// probe that would have stopped at that other Empty slot never reaches
// index anyway. Otherwise index becomes Deleted, so probes chasing a key
// further along the chain keep going instead of stopping short.
func (t *Table[K, V]) eraseAt(index int64) {
	groupStart := index - index%groupSize
	window := t.d.metaWindow(groupStart, groupSize)
	emptyMask, _ := matchByte(metaEmpty, window)

	value := metaDeleted
	if emptyMask != 0 {
		value = metaEmpty
	}
	t.setMetaValue(index, value)
	t.count--
}

// Clear empties the table back to a fresh minimum-capacity state.
func (t *Table[K, V]) Clear() {
	t.d = newData[K, V](groupSize, groupSize+groupSize, metaEmpty)
	t.count = 0
}

// Begin returns a handle to the first live entry, or the end-handle if the
// table is empty.
func (t *Table[K, V]) Begin() Handle { return Handle{index: t.findNext(-1)} }

// End returns the end-handle: one past any valid index, shared by failed
// finds and by iteration's terminal state.
func (t *Table[K, V]) End() Handle { return Handle{index: t.Cap()} }

// CBegin and CEnd mirror Begin/End; Go has no const/non-const handle split,
// so both pairs alias the same walk.
func (t *Table[K, V]) CBegin() Handle { return t.Begin() }
func (t *Table[K, V]) CEnd() Handle   { return t.End() }

// Next advances h to the next live entry in ascending slot order.
func (t *Table[K, V]) Next(h Handle) Handle { return Handle{index: t.findNext(h.index)} }

// Prev moves h to the previous live entry in ascending slot order.
func (t *Table[K, V]) Prev(h Handle) Handle { return Handle{index: t.findPrevious(h.index)} }

// IsEnd reports whether h is the end-handle for t. Lives on Table rather
// than Handle because Handle carries no type parameters of its own to
// compare against a particular Table's capacity.
func (t *Table[K, V]) IsEnd(h Handle) bool { return h.index == t.Cap() }

// KeyAt returns the key stored at h. Calling this with the end-handle, or
// any handle not currently valid, is a contract violation.
func (t *Table[K, V]) KeyAt(h Handle) K { return t.d.key(h.index) }

// ValueAt returns the value stored at h.
func (t *Table[K, V]) ValueAt(h Handle) V { return t.d.value(h.index) }

// maybeResize is the no-argument rehash(): grow when the load factor
// crosses 15/16, shrink when it drops below 7/16, otherwise do nothing.
// Shrinking never takes Cap() below groupSize.
func (t *Table[K, V]) maybeResize() {
	switch {
	case t.count >= t.maxCount():
		t.resizeTo(t.Cap() * 2)
	case t.count < t.minCount() && t.Cap() > groupSize:
		newSize := t.Cap() / 2
		if newSize < groupSize {
			newSize = groupSize
		}
		t.resizeTo(newSize)
	}
}

// resizeTo performs a full rehash to newSize in three phases — grow,
// reinsert, squeeze — matching original_source's rehash(oldSize, newSize):
// enlarge storage first (if growing) so relocated entries have somewhere to
// land, walk every old slot re-seating anything that no longer hashes to
// its current index, then shrink storage last (if shrinking) once nothing
// live remains past the new boundary.
func (t *Table[K, V]) resizeTo(newSize int64) {
	if newSize < groupSize {
		newSize = groupSize
	}
	oldSize := t.Cap()
	if newSize == oldSize {
		return
	}

	if newSize > oldSize {
		t.resizeStorage(newSize)
	}
	t.reinsertRange(oldSize, newSize)
	if newSize < oldSize {
		t.resizeStorage(newSize)
	}
}

// resizeStorage grows or shrinks the underlying arrays to newSize, keeping
// the mirror tail correct across the boundary. The slots about to become
// live primary slots (a grow turns the old mirror tail into real slots) are
// blanked to Empty first, since they currently hold stale mirror bytes, not
// the Empty state a fresh slot needs.
func (t *Table[K, V]) resizeStorage(newSize int64) {
	oldSize := t.Cap()
	emptyBlock := make([]byte, groupSize)
	for i := range emptyBlock {
		emptyBlock[i] = metaEmpty
	}
	t.d.setMetaData(oldSize, emptyBlock)

	t.d.resize(newSize, newSize+groupSize, metaEmpty)

	mirror := append([]byte(nil), t.d.metaWindow(0, groupSize)...)
	t.d.setMetaData(newSize, mirror)
}

// reinsertRange walks the old slot range, moving anything whose home slot
// under newSize is not the slot it currently occupies. Matching original_source's rehashIndex: a
// Deleted slot simply becomes Empty (tombstones never survive a rehash);
// a Valid slot is handed to reinsert, which may leave it in place or chase
// it to a new home.
func (t *Table[K, V]) reinsertRange(oldSize, newSize int64) {
	for index := int64(0); index < oldSize; index++ {
		switch {
		case t.isDeleted(index):
			t.setMetaValue(index, metaEmpty)
		case t.isValid(index):
			t.reinsert(index, newSize)
		}
	}
}

// reinsert computes where the key at index belongs under newSize. If it's
// already there, nothing moves. Otherwise the slot is vacated and the entry
// relocated to the first free slot found by freeIndex, which may itself
// displace — and so recursively relocate — whatever is squatting there.
func (t *Table[K, V]) reinsert(index, newSize int64) int64 {
	key := t.d.key(index)
	newPos := h1(t.hashFunc(key), newSize)
	if newPos == index {
		return index
	}

	metaValue := t.takeMetaValue(index)
	value := t.d.value(index)
	dest := t.freeIndex(newPos, newSize)
	return t.insertData(dest, key, value, metaValue)
}

// freeIndex walks one slot at a time (not one group at a time — rehash
// relocation is a linear chase, unlike the group-SIMD probe used for fresh
// inserts) from index until it finds a free slot. If an occupied slot along
// the way turns out to already be in its correct new home (reinsert returns
// the same index unchanged), freeIndex must step past it rather than
// loop forever.
func (t *Table[K, V]) freeIndex(index, newSize int64) int64 {
	for !t.isFree(index) && t.reinsert(index, newSize) == index {
		index = nextIndex(index, newSize)
	}
	return index
}
