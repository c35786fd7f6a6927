package sharemap

import (
	lru "github.com/hashicorp/golang-lru"
)

// Stats summarizes structural sharing across a collection of Maps.
type Stats struct {
	// TotalNodes and TotalLeaves count every interior/container node and
	// every leaf reachable from any root in the collection, counting a
	// node shared between two of the maps once per holder.
	TotalNodes  int
	TotalLeaves int
	// UniqueNodes and UniqueLeaves count each distinct node or leaf
	// object exactly once, by identity, regardless of how many maps (or
	// how many places within one map) reach it.
	UniqueNodes  int
	UniqueLeaves int
}

// visitedSet tracks node/leaf identities already counted. It is backed by a
// bounded LRU cache rather than an unbounded map: SharingStats first walks
// every map once to get an exact count of nodes and leaves reachable (with
// duplicates), which is a sound upper bound on how many distinct identities
// the second, uniqueness-counting walk can ever insert. Sizing the cache to
// that bound makes eviction impossible, so the cache behaves exactly like
// an unbounded set for this specific, single-pass-after-sizing use.
type visitedSet struct {
	cache *lru.Cache
}

func newVisitedSet(capacity int) *visitedSet {
	if capacity < 1 {
		capacity = 1
	}
	c, err := lru.New(capacity)
	if err != nil {
		// Only returns an error for a non-positive size, excluded above.
		panic(err)
	}
	return &visitedSet{cache: c}
}

// seen reports whether ptr has been recorded before, recording it if not.
func (v *visitedSet) seen(ptr interface{}) bool {
	if v.cache.Contains(ptr) {
		return true
	}
	v.cache.Add(ptr, struct{}{})
	return false
}

// SharingStats walks every map in maps and reports how much structural
// sharing is present across the whole collection. It runs in two passes --
// one to size the visited sets, one to count unique identities -- rather
// than the four independent passes the diagnostic allows, since a single
// pair of LRU-backed sets can safely track both nodes and leaves for every
// map at once. Cost is proportional to the combined TotalNodes +
// TotalLeaves across the collection.
func SharingStats[K comparable, V any](maps ...*Map[K, V]) Stats {
	var s Stats
	for _, m := range maps {
		countAll(m.root, &s)
	}

	nodeVisited := newVisitedSet(s.TotalNodes)
	leafVisited := newVisitedSet(s.TotalLeaves)
	for _, m := range maps {
		countUnique(m.root, nodeVisited, leafVisited, &s)
	}
	return s
}

func countAll[K comparable, V any](n *node[K, V], s *Stats) {
	if n == nil {
		return
	}
	s.TotalNodes++
	if n.tag == tagContainer {
		for l := n.leaves; l != nil; l = l.next {
			s.TotalLeaves++
		}
		return
	}
	for _, c := range n.children {
		countAll(c, s)
	}
}

func countUnique[K comparable, V any](n *node[K, V], nodes, leaves *visitedSet, s *Stats) {
	if n == nil {
		return
	}
	if !nodes.seen(n) {
		s.UniqueNodes++
	}
	if n.tag == tagContainer {
		for l := n.leaves; l != nil; l = l.next {
			if !leaves.seen(l) {
				s.UniqueLeaves++
			}
		}
		return
	}
	for _, c := range n.children {
		countUnique(c, nodes, leaves, s)
	}
}
