// Command demo builds a small Table of words (one inserted twice), prints
// its length and capacity, and dumps the live entries — key and value, in
// ascending slot order; meta bytes and the mirror tail are not shown.
// Grounded on the teacher's cmd/main.go (which drove matchByte
// directly) and Saiprakashreddy14-swiss's Visualize, generalized from a
// bespoke printer to sanity-io/litter for the structured dump.
package main

import (
	"fmt"

	"github.com/sanity-io/litter"

	"github.com/adb-collections/swiss"
)

type slot struct {
	Key   string
	Value string
}

func main() {
	t := swiss.New[string, int](swiss.MemHash[string])
	words := []string{"alpha", "bravo", "charlie", "delta", "echo", "foxtrot", "golf", "alpha"}
	for i, w := range words {
		t.Insert(w, i)
	}

	fmt.Printf("len=%d cap=%d\n", t.Len(), t.Cap())

	litter.Dump(dumpSlots(t))
}

func dumpSlots[K comparable, V comparable](t *swiss.Table[K, V]) []slot {
	var slots []slot
	for h := t.Begin(); !t.IsEnd(h); h = t.Next(h) {
		slots = append(slots, slot{
			Key:   fmt.Sprint(t.KeyAt(h)),
			Value: fmt.Sprint(t.ValueAt(h)),
		})
	}
	return slots
}
