package kernel

import "fmt"

// ElemID names one ZDD variable. It is a positive integer assigned by
// NewElems; the zero value is never a valid element.
type ElemID uint32

// NodeID is an opaque handle to a ZDD node owned by a Table. NodeIDs are
// assigned sequentially during construction and remain valid for the
// lifetime of the Table that created them.
type NodeID uint32

// Terminal and sentinel node identities.
const (
	// NullNode is an invalid or uninitialized reference.
	NullNode NodeID = 0

	// Bot is the 0-terminal: the empty family of sets.
	Bot NodeID = 1

	// Top is the 1-terminal: the family containing only the empty set.
	Top NodeID = 2
)

// Node is a ZDD node: a top variable and two outgoing arcs. Lo is the
// "element absent" branch, Hi is the "element present" branch. Terminal
// nodes have Var == 0 and null arcs.
//
// Node is used directly as a hash-cons key, so it must stay comparable and
// must never include mutable bookkeeping (see Table.refs for that).
type Node struct {
	Var ElemID
	Lo  NodeID
	Hi  NodeID
}

// IsTerminal reports whether n is a terminal node.
func (n Node) IsTerminal() bool { return n.Var == 0 }

// Table is the hash-consed node arena underlying a Kernel. It guarantees
// structural sharing (identical (Var,Lo,Hi) triples share one NodeID) and
// the ZDD zero-suppression rule (a node whose Hi arc is Bot is elided in
// favor of its Lo child) — both enforced centrally in Make, following the
// a standard hash-consed node arena.
type Table struct {
	nodes []Node
	refs  []uint32
	uniq  map[Node]NodeID
	next  NodeID
}

// NewTable returns a Table pre-populated with the Null/Bot/Top terminals.
func NewTable() *Table {
	t := &Table{
		nodes: make([]Node, 3),
		refs:  make([]uint32, 3),
		uniq:  make(map[Node]NodeID),
		next:  3,
	}
	t.nodes[Bot] = Node{}
	t.nodes[Top] = Node{}
	// Terminals are permanently referenced; they are never collected.
	t.refs[Bot] = 1
	t.refs[Top] = 1
	return t
}

// Get returns the Node stored at id, or ErrInvalidNode if id is out of range.
func (t *Table) Get(id NodeID) (Node, error) {
	if id == NullNode || int(id) >= len(t.nodes) {
		return Node{}, fmt.Errorf("%w: node %d", ErrInvalidNode, id)
	}
	return t.nodes[id], nil
}

// TopVar returns the top variable of id, or 0 for a terminal. It panics only
// on a corrupted table (an id never returned by this Table), which would be
// a kernel bug, not a caller error.
func (t *Table) TopVar(id NodeID) ElemID {
	if id == NullNode || int(id) >= len(t.nodes) {
		panic(fmt.Sprintf("kernel: TopVar on invalid node %d", id))
	}
	return t.nodes[id].Var
}

// Make returns the unique node for (v, lo, hi), applying the ZDD
// zero-suppression rule. v must be strictly greater than the top variables
// of both lo and hi.
func (t *Table) Make(v ElemID, lo, hi NodeID) (NodeID, error) {
	if lo == NullNode || hi == NullNode || int(lo) >= len(t.nodes) || int(hi) >= len(t.nodes) {
		return NullNode, fmt.Errorf("%w: Make(%d, %d, %d)", ErrInvalidNode, v, lo, hi)
	}
	if v <= t.nodes[lo].Var || v <= t.nodes[hi].Var {
		return NullNode, fmt.Errorf("%w: Make(%d, lo.var=%d, hi.var=%d)", ErrBadOrder, v, t.nodes[lo].Var, t.nodes[hi].Var)
	}
	if hi == Bot {
		return lo, nil
	}
	key := Node{Var: v, Lo: lo, Hi: hi}
	if id, ok := t.uniq[key]; ok {
		return id, nil
	}
	id := t.next
	t.next++
	if int(id) >= len(t.nodes) {
		t.nodes = append(t.nodes, key)
		t.refs = append(t.refs, 0)
	} else {
		t.nodes[id] = key
	}
	t.uniq[key] = id
	return id, nil
}

// IncRef increments id's reference count. Terminals are unaffected.
func (t *Table) IncRef(id NodeID) {
	if id != NullNode && int(id) < len(t.refs) {
		t.refs[id]++
	}
}

// DecRef decrements id's reference count. It does not reclaim node storage
// (the arena is append-only); it exists so
// SetSet ownership transfers are observable and so a future compacting GC
// pass has the bookkeeping it needs.
func (t *Table) DecRef(id NodeID) {
	if id != NullNode && int(id) < len(t.refs) && t.refs[id] > 0 {
		t.refs[id]--
	}
}

// RefCount returns id's current reference count.
func (t *Table) RefCount(id NodeID) uint32 {
	if id == NullNode || int(id) >= len(t.refs) {
		return 0
	}
	return t.refs[id]
}

// Size returns the number of live node slots, excluding NullNode.
func (t *Table) Size() int { return int(t.next) - 1 }
