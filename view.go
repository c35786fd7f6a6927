package sharemap

import (
	"fmt"
	"io"
)

// Entry is one key-value pair yielded by GetView.
type Entry[K comparable, V any] struct {
	Key   K
	Value V
}

// Iterate calls fn once for every entry, in an unspecified order, stopping
// early if fn returns false. It returns false if it was stopped early.
func (m *Map[K, V]) Iterate(fn func(key K, value V) bool) bool {
	return iterateNode(m.root, fn)
}

func iterateNode[K comparable, V any](n *node[K, V], fn func(K, V) bool) bool {
	if n == nil {
		return true
	}
	if n.tag == tagContainer {
		for l := n.leaves; l != nil; l = l.next {
			if !fn(l.key, l.value) {
				return false
			}
		}
		return true
	}
	for _, c := range n.children {
		if !iterateNode(c, fn) {
			return false
		}
	}
	return true
}

// GetView returns every entry in the map as a slice, in an unspecified
// order.
func (m *Map[K, V]) GetView() []Entry[K, V] {
	view := make([]Entry[K, V], 0, m.size)
	m.Iterate(func(k K, v V) bool {
		view = append(view, Entry[K, V]{Key: k, Value: v})
		return true
	})
	return view
}

// Keys returns every key in the map, in an unspecified order.
func (m *Map[K, V]) Keys() []K {
	keys := make([]K, 0, m.size)
	m.Iterate(func(k K, _ V) bool {
		keys = append(keys, k)
		return true
	})
	return keys
}

// Values returns every value in the map, in an unspecified order,
// parallel to Keys only in length, not in correspondence.
func (m *Map[K, V]) Values() []V {
	values := make([]V, 0, m.size)
	m.Iterate(func(_ K, v V) bool {
		values = append(values, v)
		return true
	})
	return values
}

// DebugDump writes a terse structural sketch of the trie to w, one line per
// node, indented by depth. Intended for use while debugging a failing test,
// not for parsing.
func (m *Map[K, V]) DebugDump(w io.Writer) {
	dumpNode(w, m.root, 0)
}

func dumpNode[K comparable, V any](w io.Writer, n *node[K, V], depth int) {
	if n == nil {
		return
	}
	indent := make([]byte, depth*2)
	for i := range indent {
		indent[i] = ' '
	}
	w.Write(indent)
	if n.tag == tagContainer {
		count := 0
		for l := n.leaves; l != nil; l = l.next {
			count++
		}
		fmt.Fprintf(w, "container refs=%d leaves=%d\n", n.refs, count)
		return
	}
	fmt.Fprintf(w, "interior refs=%d nchild=%d\n", n.refs, n.nchild)
	for _, c := range n.children {
		dumpNode(w, c, depth+1)
	}
}
