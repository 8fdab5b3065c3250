package swiss

import (
	"fmt"
	"math/rand"
	"testing"
)

// vtable wraps a Table[int,int] alongside a plain Go map-of-slices mirror,
// letting tests assert the table's multi-valued contents against a trusted
// model after an arbitrary sequence of mutations.
//
// Grounded on the teacher's vmap_test.go Vmap, generalized from single- to
// multi-valued semantics (the teacher's mirror is a plain map[Key]Value;
// ours has to track every occurrence per key since Table allows repeats).
type vtable struct {
	t      *Table[int, int]
	mirror map[int][]int
}

func newVtable() *vtable {
	return &vtable{t: New[int, int](IdentityHash[int]), mirror: map[int][]int{}}
}

func (v *vtable) Insert(k, val int) {
	v.t.Insert(k, val)
	v.mirror[k] = append(v.mirror[k], val)
}

func (v *vtable) Remove(k int) {
	v.t.Remove(k)
	delete(v.mirror, k)
}

func (v *vtable) RemoveKV(k, val int) {
	v.t.RemoveKV(k, val)
	vals := v.mirror[k]
	remaining := vals[:0]
	for _, x := range vals {
		if x != val {
			remaining = append(remaining, x)
		}
	}
	if len(remaining) == 0 {
		delete(v.mirror, k)
	} else {
		v.mirror[k] = remaining
	}
}

// Replace overwrites whichever occurrence Get would currently report — the
// same one Table.Replace itself overwrites, since both resolve to the
// first probe-order match — so the mirror updates the matching slice
// element rather than assuming insertion-order position. It is a no-op,
// on both the table and the mirror, when k is absent.
func (v *vtable) Replace(k, newVal int) {
	old, existed := v.t.Get(k)
	v.t.Replace(k, newVal)
	if !existed {
		return
	}
	vals := v.mirror[k]
	for i, x := range vals {
		if x == old {
			vals[i] = newVal
			break
		}
	}
}

func (v *vtable) check(t *testing.T) {
	t.Helper()

	wantLen := 0
	for _, vals := range v.mirror {
		wantLen += len(vals)
	}
	if got := v.t.Len(); got != int64(wantLen) {
		t.Fatalf("Len() = %d, want %d", got, wantLen)
	}

	for k, wantVals := range v.mirror {
		gotVals := v.t.Values(k)
		if !sameMultiset(gotVals, wantVals) {
			t.Fatalf("Values(%d) = %v, want multiset %v", k, gotVals, wantVals)
		}
	}
}

func sameMultiset(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	counts := map[int]int{}
	for _, x := range a {
		counts[x]++
	}
	for _, x := range b {
		counts[x]--
	}
	for _, c := range counts {
		if c != 0 {
			return false
		}
	}
	return true
}

// TestVtableRandomSequence drives a long, deterministic sequence of
// insert/remove/replace operations against both the real table and the
// mirror, checking agreement after every step — exercising grow and
// shrink transitions along the way.
func TestVtableRandomSequence(t *testing.T) {
	for _, seed := range []int64{1, 2, 3, 42} {
		t.Run(fmt.Sprintf("seed %d", seed), func(t *testing.T) {
			r := rand.New(rand.NewSource(seed))
			v := newVtable()

			const steps = 5000
			const keySpace = 200
			for i := 0; i < steps; i++ {
				k := r.Intn(keySpace)
				val := r.Intn(1000)

				switch r.Intn(4) {
				case 0:
					v.Insert(k, val)
				case 1:
					v.Remove(k)
				case 2:
					if vals, ok := v.mirror[k]; ok && len(vals) > 0 {
						v.RemoveKV(k, vals[0])
					} else {
						v.RemoveKV(k, val)
					}
				case 3:
					v.Replace(k, val)
				}

				v.check(t)
			}
		})
	}
}

func TestVtableEraseWhileIteratingMatchesMirror(t *testing.T) {
	v := newVtable()
	for i := 0; i < 500; i++ {
		v.Insert(i%50, i)
	}
	v.check(t)

	for h := v.t.Begin(); !v.t.IsEnd(h); {
		k := v.t.KeyAt(h)
		val := v.t.ValueAt(h)
		if val%3 == 0 {
			h = v.t.Erase(h)
			v.RemoveKV(k, val)
		} else {
			h = v.t.Next(h)
		}
	}

	v.check(t)
}
