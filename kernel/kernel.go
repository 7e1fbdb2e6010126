package kernel

import (
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// Kernel is the process-wide ZDD collaborator: the node table plus the
// element (ZDD variable) universe and a handful of globally-mutable knobs
// (num_elems, the show-messages flag). A Kernel is not safe for
// concurrent builds — the core is single-threaded by design — but
// independent Kernels may be used from independent goroutines.
type Kernel struct {
	table *Table

	mu       sync.Mutex
	nextElem ElemID
	sealed   bool

	cfg *Config

	msgMu sync.Mutex
	show  bool
}

// NewKernel returns an empty Kernel with no elements allocated yet.
func NewKernel(opts ...Option) *Kernel {
	return &Kernel{
		table: NewTable(),
		cfg:   newConfig(opts...),
	}
}

// Bot returns the canonical empty-family terminal.
func (k *Kernel) Bot() NodeID { return Bot }

// Top returns the canonical family-of-the-empty-set terminal.
func (k *Kernel) Top() NodeID { return Top }

// NewElems allocates n fresh, contiguous ElemIDs and returns them in
// ascending order. It fails once the kernel has been sealed by a build:
// num_elems is immutable once any ZDD referencing it exists.
func (k *Kernel) NewElems(n int) ([]ElemID, error) {
	k.mu.Lock()
	defer k.mu.Unlock()
	if k.sealed {
		return nil, ErrSealed
	}
	ids := make([]ElemID, n)
	for i := 0; i < n; i++ {
		k.nextElem++
		ids[i] = k.nextElem
	}
	return ids, nil
}

// NumElems returns the size of the element universe allocated so far.
func (k *Kernel) NumElems() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return int(k.nextElem)
}

// Seal freezes the element universe. Called by the builder before its first
// ZDD is materialized; idempotent.
func (k *Kernel) Seal() {
	k.mu.Lock()
	k.sealed = true
	k.mu.Unlock()
}

// ShowMessages toggles progress logging and returns the previous value.
func (k *Kernel) ShowMessages(show bool) bool {
	k.msgMu.Lock()
	defer k.msgMu.Unlock()
	prev := k.show
	k.show = show
	return prev
}

// logger returns the configured logger if progress messages are enabled,
// otherwise a no-op logger.
func (k *Kernel) logger() *zap.Logger {
	k.msgMu.Lock()
	show := k.show
	k.msgMu.Unlock()
	if !show {
		return zap.NewNop()
	}
	return k.cfg.Logger
}

// Logger exposes the kernel's progress logger for use by the builder
// (package builder calls this rather than duplicating the show/hide logic).
func (k *Kernel) Logger() *zap.Logger { return k.logger() }

// Make wraps Table.Make, additionally enforcing the configured memory limit.
func (k *Kernel) Make(v ElemID, lo, hi NodeID) (NodeID, error) {
	if k.cfg.MemoryLimit > 0 && k.table.Size() >= k.cfg.MemoryLimit {
		return NullNode, fmt.Errorf("%w: node table at %d nodes", ErrExhausted, k.table.Size())
	}
	return k.table.Make(v, lo, hi)
}

// TopVar reports id's top variable, 0 for a terminal.
func (k *Kernel) TopVar(id NodeID) ElemID { return k.table.TopVar(id) }

// Node returns the raw node for id.
func (k *Kernel) Node(id NodeID) (Node, error) { return k.table.Get(id) }

// IncRef/DecRef/RefCount expose the table's reference counting to SetSet.
func (k *Kernel) IncRef(id NodeID)       { k.table.IncRef(id) }
func (k *Kernel) DecRef(id NodeID)       { k.table.DecRef(id) }
func (k *Kernel) RefCount(id NodeID) uint32 { return k.table.RefCount(id) }

// Size returns the number of node-table slots in use.
func (k *Kernel) Size() int { return k.table.Size() }
