package kernel

import (
	"context"
	"math/big"
	"math/rand"
)

// Iteration. Iterate follows the goroutine-plus-channel "stateful iterator"
// idiom for a cancellable lazy generator: a producer goroutine walks
// the ZDD depth-first, emitting one completed set at a time, and respects
// context cancellation so a caller that stops consuming early doesn't leak
// the goroutine. Random and weighted extraction are built on Count/Optimize
// rather than full enumeration, so both run in time proportional to the
// ZDD's size, not the family's cardinality.

// Iterate returns a channel that emits every set in f exactly once, each as
// its member ElemIDs in descending order. The channel is closed when enumeration
// completes or ctx is cancelled.
func (k *Kernel) Iterate(ctx context.Context, f NodeID) <-chan []ElemID {
	out := make(chan []ElemID)
	go func() {
		defer close(out)
		var walk func(NodeID, []ElemID) bool // returns false to stop
		walk = func(id NodeID, prefix []ElemID) bool {
			select {
			case <-ctx.Done():
				return false
			default:
			}
			if id == Bot {
				return true
			}
			if id == Top {
				set := make([]ElemID, len(prefix))
				copy(set, prefix)
				select {
				case out <- set:
					return true
				case <-ctx.Done():
					return false
				}
			}
			n, err := k.Node(id)
			if err != nil {
				return false
			}
			if !walk(n.Lo, prefix) {
				return false
			}
			return walk(n.Hi, append(prefix, n.Var))
		}
		walk(f, nil)
	}()
	return out
}

// RandomChoice draws one set from f uniformly at random using Knuth's
// algorithm B: at each node, descend into Lo or Hi with probability
// proportional to the number of sets reachable through each branch. f must
// be non-empty.
func (k *Kernel) RandomChoice(f NodeID, rng *rand.Rand) ([]ElemID, error) {
	if f == Bot {
		return nil, ErrEmptyFamily
	}
	counts := make(map[NodeID]*big.Int)
	total, err := k.countMemo(f, counts)
	if err != nil {
		return nil, err
	}
	if total.Sign() == 0 {
		return nil, ErrEmptyFamily
	}

	var set []ElemID
	id := f
	for id != Top {
		n, err := k.Node(id)
		if err != nil {
			return nil, err
		}
		loCount, err := k.countMemo(n.Lo, counts)
		if err != nil {
			return nil, err
		}
		hiCount, err := k.countMemo(n.Hi, counts)
		if err != nil {
			return nil, err
		}
		nodeTotal := new(big.Int).Add(loCount, hiCount)
		r := randomBigInt(rng, nodeTotal)
		if r.Cmp(loCount) < 0 {
			id = n.Lo
		} else {
			set = append(set, n.Var)
			id = n.Hi
		}
	}
	return set, nil
}

// randomBigInt returns a random value in [0, n). For n up to ~1e17 it
// scales a float64 draw by n, accepting the float64 precision loss; above
// that it draws exactly by rejection sampling over n's bit length.
func randomBigInt(rng *rand.Rand, n *big.Int) *big.Int {
	const float64ExactThreshold = 1e17
	nf := new(big.Float).SetInt(n)
	f, _ := nf.Float64()
	if f <= float64ExactThreshold {
		return big.NewInt(int64(rng.Float64() * f))
	}
	bits := n.BitLen()
	for {
		r := new(big.Int).Rand(rng, new(big.Int).Lsh(big.NewInt(1), uint(bits)))
		if r.Cmp(n) < 0 {
			return r
		}
	}
}

// MaxIterate returns the up-to-limit highest-weight sets in f, in descending
// order of weight, by repeatedly extracting the current optimum via Optimize
// and removing it from the working family. limit<=0 means no limit (stops
// when f is exhausted).
func (k *Kernel) MaxIterate(ctx context.Context, f NodeID, w Weight, limit int) ([][]ElemID, error) {
	return k.extremeIterate(ctx, f, w, limit, true)
}

// MinIterate is MaxIterate with ascending weight order.
func (k *Kernel) MinIterate(ctx context.Context, f NodeID, w Weight, limit int) ([][]ElemID, error) {
	return k.extremeIterate(ctx, f, w, limit, false)
}

func (k *Kernel) extremeIterate(ctx context.Context, f NodeID, w Weight, limit int, maximize bool) ([][]ElemID, error) {
	var results [][]ElemID
	cur := f
	for cur != Bot {
		if limit > 0 && len(results) >= limit {
			break
		}
		select {
		case <-ctx.Done():
			return results, ctx.Err()
		default:
		}
		set, _, err := k.Optimize(cur, w, maximize)
		if err != nil {
			return results, err
		}
		results = append(results, set)
		exclude, err := k.setOf(set)
		if err != nil {
			return results, err
		}
		cur, err = k.Diff(cur, exclude)
		if err != nil {
			return results, err
		}
	}
	return results, nil
}

// setOf builds the single-set ZDD {E} from an element slice sorted in
// descending order, the order Optimize returns.
func (k *Kernel) setOf(elems []ElemID) (NodeID, error) {
	id := Top
	for i := len(elems) - 1; i >= 0; i-- {
		var err error
		id, err = k.Make(elems[i], Bot, id)
		if err != nil {
			return NullNode, err
		}
	}
	return id, nil
}
