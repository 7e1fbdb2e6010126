package kernel

import "math/big"

// Count and weighted/optimal extraction. Count is a bottom-up memoized
// size accumulation widened to math/big.Int, since families of
// edge-subsets on graphs with a few dozen vertices routinely overflow 64
// bits. Optimize generalizes the same recursion to an arbitrary
// per-element weight function, for the weighted extraction operations
// built on top of it.

// Count returns the number of sets in f as an arbitrary-precision integer.
func (k *Kernel) Count(f NodeID) (*big.Int, error) {
	memo := make(map[NodeID]*big.Int)
	return k.countMemo(f, memo)
}

func (k *Kernel) countMemo(f NodeID, memo map[NodeID]*big.Int) (*big.Int, error) {
	if f == Bot {
		return big.NewInt(0), nil
	}
	if f == Top {
		return big.NewInt(1), nil
	}
	if v, ok := memo[f]; ok {
		return v, nil
	}
	n, err := k.Node(f)
	if err != nil {
		return nil, err
	}
	lo, err := k.countMemo(n.Lo, memo)
	if err != nil {
		return nil, err
	}
	hi, err := k.countMemo(n.Hi, memo)
	if err != nil {
		return nil, err
	}
	sum := new(big.Int).Add(lo, hi)
	memo[f] = sum
	return sum, nil
}

// Weight assigns a numeric weight to an element, used by Optimize and the
// weighted iteration helpers in iterate.go.
type Weight func(ElemID) float64

// Optimize walks f choosing, at every node, whichever branch yields the
// larger (maximize=true) or smaller (maximize=false) total weight, and
// returns the chosen set together with its total weight. It breaks ties by
// preferring the Lo branch. f must be non-empty (not Bot).
func (k *Kernel) Optimize(f NodeID, w Weight, maximize bool) ([]ElemID, float64, error) {
	if f == Bot {
		return nil, 0, ErrEmptyFamily
	}
	type best struct {
		cost  float64
		set   []ElemID
		valid bool
	}
	memo := make(map[NodeID]best)
	var walk func(NodeID) (best, error)
	walk = func(id NodeID) (best, error) {
		if id == Bot {
			// No sets live below this branch; it never wins a comparison.
			return best{valid: false}, nil
		}
		if id == Top {
			return best{cost: 0, set: nil, valid: true}, nil
		}
		if b, ok := memo[id]; ok {
			return b, nil
		}
		n, err := k.Node(id)
		if err != nil {
			return best{}, err
		}
		loBest, err := walk(n.Lo)
		if err != nil {
			return best{}, err
		}
		// A node's Hi branch is never Bot: zero-suppression elides any node
		// whose Hi arc is Bot, so walk(n.Hi) always yields a valid result.
		hiBest, err := walk(n.Hi)
		if err != nil {
			return best{}, err
		}
		hiBest.cost += w(n.Var)
		hiSet := make([]ElemID, 0, len(hiBest.set)+1)
		hiSet = append(hiSet, n.Var)
		hiSet = append(hiSet, hiBest.set...)
		hiBest.set = hiSet

		var result best
		switch {
		case !loBest.valid:
			result = hiBest
		case maximize && hiBest.cost > loBest.cost:
			result = hiBest
		case !maximize && hiBest.cost < loBest.cost:
			result = hiBest
		default:
			result = loBest
		}
		memo[id] = result
		return result, nil
	}
	b, err := walk(f)
	if err != nil {
		return nil, 0, err
	}
	return b.set, b.cost, nil
}
