package swiss

import "unsafe"

// HashFunc is any callable K -> 64-bit unsigned hash, per spec: pure,
// deterministic, equal keys produce equal hashes. The engine never
// inspects how a HashFunc is built.
type HashFunc[K comparable] func(K) uint64

// IdentityHash treats an integer-like key as already being its own hash,
// matching the default hash function the spec's test suites assume
// ("identity cast to u64"). It is grounded on the teacher's hashUint64,
// simplified to a pure cast since the teacher's use of runtime.memhash
// over a fixed key is itself just a stand-in for identity on an int64.
func IdentityHash[K ~int | ~int8 | ~int16 | ~int32 | ~int64 |
	~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr](k K) uint64 {
	return uint64(k)
}

// MemHash hashes the raw bytes of any fixed-size, non-pointer-containing
// key using the runtime's internal hash function, the same technique the
// teacher uses for hashUint64/hashString via go:linkname, generalized here
// to any comparable K via unsafe.Sizeof instead of a hardcoded width. A key
// of type string is hashed by its contents rather than by its header.
//
// Apart from that string case, K must not contain pointers, strings,
// slices, maps, interfaces, or anything else whose in-memory representation
// is not its own complete value; violating this is a documented
// precondition, not a detected error, consistent with the
// contract-violation taxonomy in spec 7.
func MemHash[K comparable](k K) uint64 {
	if s, ok := any(k).(string); ok {
		return uint64(memhash(unsafe.Pointer(unsafe.StringData(s)), 0, uintptr(len(s))))
	}
	return uint64(memhash(unsafe.Pointer(&k), 0, unsafe.Sizeof(k)))
}

//go:linkname memhash runtime.memhash
//go:noescape
func memhash(p unsafe.Pointer, seed, s uintptr) uintptr
