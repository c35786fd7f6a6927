package sharemap

import (
	"fmt"
	"os"
)

// Insert adds key with value. Panics if key is already present -- insert of
// an existing key is a programmer error, not a recoverable failure.
func (m *Map[K, V]) Insert(key K, value V) {
	if m.HasKey(key) {
		panic(&ProgrammerError{Op: "Insert", Key: key, Msg: "key already present"})
	}
	h := m.hash(key)
	slot := &m.root
	for level := 0; ; level++ {
		interior := makeUnique(slot)
		d := m.digit(h, level)
		childSlot := &interior.children[d]
		child := *childSlot

		switch {
		case child == nil:
			*childSlot = newSingularContainer[K, V](key, value)
			interior.nchild++
			m.size++
			if m.Debug {
				fmt.Fprintf(os.Stderr, "sharemap: insert placed new container at level %d digit %d\n", level, d)
			}
			return

		case child.tag == tagContainer:
			cUnique := makeUnique(childSlot)
			if level == m.h-1 {
				prependLeaf(cUnique, key, value)
				m.size++
				return
			}
			target := m.migrate(level, cUnique, h, childSlot)
			prependLeaf(target, key, value)
			m.size++
			return

		default:
			slot = childSlot
		}
	}
}

// migrate pushes the singular container at *slot (holding exactly one
// leaf, per invariant 3) deeper into the trie, level by level, until the
// existing leaf's hash and newHash diverge or the maximum depth is reached.
// It returns the container the caller should place the new leaf into.
func (m *Map[K, V]) migrate(level int, existingContainer *node[K, V], newHash uint64, slot **node[K, V]) *node[K, V] {
	existingLeaf := existingContainer.leaves
	debugAssert(existingLeaf != nil && existingLeaf.next == nil, "migrate: container was not singular")
	existingHash := m.hash(existingLeaf.key)

	cur := newEmptyInterior[K, V]()
	*slot = cur

	for i := level + 1; ; i++ {
		d1 := m.digit(existingHash, i)
		d2 := m.digit(newHash, i)

		if d1 != d2 {
			cur.children[d1] = &node[K, V]{tag: tagContainer, refs: 1, leaves: existingLeaf}
			cur.nchild++
			target := newEmptyContainer[K, V]()
			cur.children[d2] = target
			cur.nchild++
			return target
		}

		if i == m.h-1 {
			// Both keys collide across every configured hash bit: the
			// existing leaf and the new one that's about to be prepended
			// by the caller share one bottom container as a chain.
			bottom := &node[K, V]{tag: tagContainer, refs: 1, leaves: existingLeaf}
			cur.children[d1] = bottom
			cur.nchild++
			return bottom
		}

		next := newEmptyInterior[K, V]()
		cur.children[d1] = next
		cur.nchild++
		cur = next
	}
}

// pathStep records one interior visited while descending toward a key, for
// use by EraseIfExists's two-phase cut-point search.
type pathStep[K comparable, V any] struct {
	n     *node[K, V]
	digit int
}

// Erase removes key. Panics if key is not present.
func (m *Map[K, V]) Erase(key K) {
	if !m.EraseIfExists(key) {
		panic(&ProgrammerError{Op: "Erase", Key: key, Msg: "key not present"})
	}
}

// EraseIfExists removes key if present, reporting whether it was. Unlike
// Erase it is a total function: erasing an absent key is a documented no-op.
func (m *Map[K, V]) EraseIfExists(key K) bool {
	h := m.hash(key)

	var path []pathStep[K, V]
	n := m.root
	for n.tag == tagInterior {
		d := m.digit(h, len(path))
		path = append(path, pathStep[K, V]{n: n, digit: d})
		child := n.children[d]
		if child == nil {
			return false
		}
		n = child
	}
	if findLeafInContainer(n, key) == nil {
		return false
	}
	single := n.leaves.next == nil

	// Find the cut point: the deepest interior on the path with more than
	// one child, falling back to the root. Below the cut point, a
	// single-leaf branch can be deleted in one step; a multi-leaf
	// container needs the full path made unique down to itself.
	cutIdx := 0
	for i := len(path) - 1; i >= 0; i-- {
		if path[i].n.nchild > 1 {
			cutIdx = i
			break
		}
	}

	depth := cutIdx
	if !single {
		depth = len(path) - 1
	}

	slot := &m.root
	for i := 0; i <= depth; i++ {
		interior := makeUnique(slot)
		d := path[i].digit
		slot = &interior.children[d]
		if i == depth {
			if single {
				removed := *slot
				*slot = nil
				interior.nchild--
				if removed != nil {
					removed.refs--
				}
			} else {
				cUnique := makeUnique(slot)
				removeLeafFromContainer(cUnique, key)
			}
		}
	}
	m.size--
	if m.Debug {
		fmt.Fprintf(os.Stderr, "sharemap: erased key at cut depth %d (single=%v)\n", cutIdx, single)
	}
	return true
}

// Replace overwrites the value stored for key. Panics if key is not
// present, or (in fail-if-equal mode) if newValue equals the value it would
// replace.
func (m *Map[K, V]) Replace(key K, newValue V) {
	m.mutateLeaf("Replace", key, func(l *leaf[K, V]) {
		if m.failIfEqual && m.equal(l.value, newValue) {
			panic(&ProgrammerError{Op: "Replace", Key: key, Msg: "fail-if-equal: new value equals current value"})
		}
		l.value = newValue
	})
}

// Update invokes mutator on the stored value for key exactly once, in
// place. Panics if key is not present, or (in fail-if-equal mode) if the
// mutator leaves the value unchanged. mutator must not retain the pointer
// past the call.
func (m *Map[K, V]) Update(key K, mutator func(*V)) {
	m.mutateLeaf("Update", key, func(l *leaf[K, V]) {
		var before V
		if m.failIfEqual {
			before = l.value
		}
		mutator(&l.value)
		if m.failIfEqual && m.equal(before, l.value) {
			panic(&ProgrammerError{Op: "Update", Key: key, Msg: "fail-if-equal: mutator did not change the value"})
		}
	})
}

// mutateLeaf descends to key's leaf, making every node on the path -- every
// interior, the container, and every leaf from the chain head down to and
// including the target -- uniquely owned, then invokes fn on the target.
// Predecessors in the chain must be made unique too, not just skipped over:
// makeUnique(childSlot) only privatizes the container's own head pointer, so
// a non-head target's immediate predecessor is still a leaf that may be
// shared with another container's chain, and splicing through it in place
// would corrupt that other chain. Existence is checked up front via a plain
// read-only Find so a doomed call never clones anything.
func (m *Map[K, V]) mutateLeaf(op string, key K, fn func(*leaf[K, V])) {
	if !m.HasKey(key) {
		panic(&ProgrammerError{Op: op, Key: key, Msg: "key not present"})
	}
	h := m.hash(key)
	slot := &m.root
	for level := 0; ; level++ {
		interior := makeUnique(slot)
		d := m.digit(h, level)
		childSlot := &interior.children[d]
		if (*childSlot).tag == tagContainer {
			cUnique := makeUnique(childSlot)
			leafSlot := &cUnique.leaves
			for *leafSlot != nil {
				l := makeUniqueLeaf(leafSlot)
				if l.key == key {
					fn(l)
					return
				}
				leafSlot = &l.next
			}
			debugAssert(false, "mutateLeaf: key confirmed present by HasKey but missing on the mutating descent")
			return
		}
		slot = childSlot
	}
}
