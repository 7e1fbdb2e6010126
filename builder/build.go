// Package builder materializes a ddspec.Spec into a kernel-owned ZDD via
// a level-by-level state-table construction: a descending expansion pass
// discovers every distinct reachable state per level via the state's own
// Hash/Equal, then an ascending pack pass turns each level's states into
// hash-consed kernel nodes once their children are already built.
package builder

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/edgezdd/digraphzdd/ddspec"
	"github.com/edgezdd/digraphzdd/kernel"
)

// childRef records where one branch of a state leads: either straight to
// a terminal, or to a (level, index) pair into that level's table, to be
// resolved to a real kernel.NodeID once that level has been packed.
type childRef struct {
	isTerminal bool
	terminal   kernel.NodeID
	level      int
	idx        int
}

// levelTable holds every distinct state discovered at one level, keyed by
// Hash with an Equal-scanned bucket to resolve collisions, mirroring the
// hash-consing kernel.Table itself performs one layer down.
type levelTable struct {
	states  []ddspec.State
	lo, hi  []childRef
	buckets map[uint64][]int
	nodeIDs []kernel.NodeID
}

func newLevelTable() *levelTable {
	return &levelTable{buckets: make(map[uint64][]int)}
}

func (lt *levelTable) addState(s ddspec.State) int {
	h := s.Hash()
	for _, idx := range lt.buckets[h] {
		if lt.states[idx].Equal(s) {
			return idx
		}
	}
	idx := len(lt.states)
	lt.states = append(lt.states, s)
	lt.lo = append(lt.lo, childRef{})
	lt.hi = append(lt.hi, childRef{})
	lt.buckets[h] = append(lt.buckets[h], idx)
	return idx
}

// Build runs spec to completion over k, returning the NodeID of the
// resulting ZDD. It allocates any elements spec's root level needs beyond
// what k already has, then seals k's element universe, since num_elems
// must stay fixed once a build starts.
//
// The returned NodeID carries no reference yet; callers (ordinarily the
// setset package) are responsible for IncRef'ing it into a live handle.
func Build(ctx context.Context, k *kernel.Kernel, spec ddspec.Spec) (kernel.NodeID, error) {
	log := k.Logger()

	rootState, rootLevel := spec.Root()
	if rootLevel == ddspec.Accept {
		return kernel.Top, nil
	}
	if rootLevel == ddspec.Reject {
		return kernel.Bot, nil
	}
	if rootLevel < 1 {
		return kernel.NullNode, fmt.Errorf("builder: spec root returned invalid level %d", rootLevel)
	}

	if have := k.NumElems(); have < rootLevel {
		if _, err := k.NewElems(rootLevel - have); err != nil {
			return kernel.NullNode, fmt.Errorf("builder: allocating elements: %w", err)
		}
	}
	k.Seal()

	levels := make([]*levelTable, rootLevel+1)
	for l := 1; l <= rootLevel; l++ {
		levels[l] = newLevelTable()
	}
	levels[rootLevel].addState(rootState)

	resolve := func(state ddspec.State, level int) childRef {
		switch level {
		case ddspec.Accept:
			return childRef{isTerminal: true, terminal: kernel.Top}
		case ddspec.Reject:
			return childRef{isTerminal: true, terminal: kernel.Bot}
		default:
			idx := levels[level].addState(state)
			return childRef{level: level, idx: idx}
		}
	}

	for level := rootLevel; level >= 1; level-- {
		select {
		case <-ctx.Done():
			return kernel.NullNode, ctx.Err()
		default:
		}
		lt := levels[level]
		log.Debug("expanding level", zap.Int("level", level), zap.Int("states", len(lt.states)))
		// lt.states grows as sibling states at this same level are
		// discovered by earlier iterations' Child calls, so re-read len
		// on every pass rather than capturing it up front.
		for i := 0; i < len(lt.states); i++ {
			st := lt.states[i]
			loState, loLevel := spec.Child(st, level, 0)
			hiState, hiLevel := spec.Child(st, level, 1)
			lt.lo[i] = resolve(loState, loLevel)
			lt.hi[i] = resolve(hiState, hiLevel)
		}
	}

	resolveNode := func(ref childRef) (kernel.NodeID, error) {
		if ref.isTerminal {
			return ref.terminal, nil
		}
		src := levels[ref.level]
		if ref.idx >= len(src.nodeIDs) {
			return kernel.NullNode, fmt.Errorf("builder: child at level %d not yet packed", ref.level)
		}
		return src.nodeIDs[ref.idx], nil
	}

	var total int
	for level := 1; level <= rootLevel; level++ {
		lt := levels[level]
		lt.nodeIDs = make([]kernel.NodeID, len(lt.states))
		for i := range lt.states {
			loID, err := resolveNode(lt.lo[i])
			if err != nil {
				return kernel.NullNode, err
			}
			hiID, err := resolveNode(lt.hi[i])
			if err != nil {
				return kernel.NullNode, err
			}
			id, err := k.Make(kernel.ElemID(level), loID, hiID)
			if err != nil {
				return kernel.NullNode, fmt.Errorf("builder: level %d: %w", level, err)
			}
			lt.nodeIDs[i] = id
		}
		total += len(lt.states)
	}

	log.Info("build complete", zap.Int("distinct_states", total), zap.Int("table_size", k.Size()))
	return levels[rootLevel].nodeIDs[0], nil
}
