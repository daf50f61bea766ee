package regexlib

import (
	"encoding/binary"
	"hash/fnv"
	"slices"
)

// vecIndex maps int vectors to ids by structural equality. Vectors are hashed and collisions
// resolved by comparing contents.
type vecIndex struct {
	buckets map[uint64][]vecEntry
}

type vecEntry struct {
	vec []int
	id  int
}

func newVecIndex() *vecIndex { return &vecIndex{buckets: map[uint64][]vecEntry{}} }

func hashVec(vec []int) uint64 {
	h := fnv.New64a()
	var buf [8]byte
	for _, v := range vec {
		binary.LittleEndian.PutUint64(buf[:], uint64(v))
		h.Write(buf[:])
	}
	return h.Sum64()
}

func (x *vecIndex) lookup(vec []int) (int, bool) {
	for _, e := range x.buckets[hashVec(vec)] {
		if slices.Equal(e.vec, vec) {
			return e.id, true
		}
	}
	return 0, false
}

// insert records vec under id. The caller must not modify vec afterwards.
func (x *vecIndex) insert(vec []int, id int) {
	h := hashVec(vec)
	x.buckets[h] = append(x.buckets[h], vecEntry{vec: vec, id: id})
}
