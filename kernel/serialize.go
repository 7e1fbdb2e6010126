package kernel

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
)

// Serialization. Dump/Load use a line-oriented text format (one node per
// line: id, var, lo, hi) addressed by the node's position in the table, in
// a plain line-oriented format chosen over a binary one so the kernel has
// no encoding/gob or protobuf dependency for what is,
// in the end, a few integers per line; Enum produces the brace-nested
// "{a, b}, {c}" human-readable form callers use to render a family.

// Dump writes every node reachable from f to w, one per line, terminated by
// a line naming f's own id so Load knows which node is the root.
func (k *Kernel) Dump(w io.Writer, f NodeID) error {
	bw := bufio.NewWriter(w)
	visited := make(map[NodeID]bool)
	var order []NodeID
	var visit func(NodeID)
	visit = func(id NodeID) {
		if id == Bot || id == Top || visited[id] {
			return
		}
		visited[id] = true
		n, err := k.Node(id)
		if err != nil {
			return
		}
		visit(n.Lo)
		visit(n.Hi)
		order = append(order, id)
	}
	visit(f)
	for _, id := range order {
		n, err := k.Node(id)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(bw, "%d %d %d %d\n", id, n.Var, n.Lo, n.Hi); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(bw, "root %d\n", f); err != nil {
		return err
	}
	return bw.Flush()
}

// Load reads a family previously written by Dump, recreating its nodes in
// this kernel (re-hash-consing against whatever already exists) and
// returning the root's NodeID in this kernel.
func (k *Kernel) Load(r io.Reader) (NodeID, error) {
	scanner := bufio.NewScanner(r)
	remap := make(map[NodeID]NodeID)
	var root NodeID
	haveRoot := false
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if fields[0] == "root" {
			if len(fields) != 2 {
				return NullNode, fmt.Errorf("kernel: malformed root line %q", line)
			}
			oldRoot, err := strconv.ParseUint(fields[1], 10, 32)
			if err != nil {
				return NullNode, err
			}
			if mapped, ok := remap[NodeID(oldRoot)]; ok {
				root = mapped
			} else if NodeID(oldRoot) == Bot || NodeID(oldRoot) == Top {
				root = NodeID(oldRoot)
			} else {
				return NullNode, fmt.Errorf("kernel: root %d never defined", oldRoot)
			}
			haveRoot = true
			continue
		}
		if len(fields) != 4 {
			return NullNode, fmt.Errorf("kernel: malformed node line %q", line)
		}
		oldID, err := parseNodeLine(fields)
		if err != nil {
			return NullNode, err
		}
		lo := resolveRef(remap, oldID.lo)
		hi := resolveRef(remap, oldID.hi)
		newID, err := k.Make(oldID.v, lo, hi)
		if err != nil {
			return NullNode, err
		}
		remap[oldID.id] = newID
	}
	if err := scanner.Err(); err != nil {
		return NullNode, err
	}
	if !haveRoot {
		return NullNode, fmt.Errorf("kernel: dump missing root line")
	}
	return root, nil
}

type nodeLine struct {
	id NodeID
	v  ElemID
	lo NodeID
	hi NodeID
}

func parseNodeLine(fields []string) (nodeLine, error) {
	var vals [4]uint64
	for i, f := range fields {
		n, err := strconv.ParseUint(f, 10, 32)
		if err != nil {
			return nodeLine{}, err
		}
		vals[i] = n
	}
	return nodeLine{
		id: NodeID(vals[0]),
		v:  ElemID(vals[1]),
		lo: NodeID(vals[2]),
		hi: NodeID(vals[3]),
	}, nil
}

func resolveRef(remap map[NodeID]NodeID, old NodeID) NodeID {
	if old == Bot || old == Top {
		return old
	}
	if mapped, ok := remap[old]; ok {
		return mapped
	}
	return old
}

// Enum writes f in the brace-nested human-readable notation, e.g.
// "{1, 2}, {3}" for a family of two sets, sorted lexicographically by
// member sequence, and "{}" for the single-member family containing only
// the empty set, and "" (no braces at all) for the empty family.
func (k *Kernel) Enum(w io.Writer, f NodeID) error {
	var sets [][]ElemID
	var walk func(NodeID, []ElemID) error
	walk = func(id NodeID, prefix []ElemID) error {
		if id == Bot {
			return nil
		}
		if id == Top {
			set := make([]ElemID, len(prefix))
			copy(set, prefix)
			sets = append(sets, set)
			return nil
		}
		n, err := k.Node(id)
		if err != nil {
			return err
		}
		if err := walk(n.Lo, prefix); err != nil {
			return err
		}
		return walk(n.Hi, append(prefix, n.Var))
	}
	if err := walk(f, nil); err != nil {
		return err
	}
	// Members arrive in descending ElemID order (the top-down walk visits
	// the largest remaining variable first); sort each set ascending for a
	// conventional left-to-right display.
	for _, s := range sets {
		sort.Slice(s, func(i, j int) bool { return s[i] < s[j] })
	}
	sort.Slice(sets, func(i, j int) bool {
		a, b := sets[i], sets[j]
		for x := 0; x < len(a) && x < len(b); x++ {
			if a[x] != b[x] {
				return a[x] < b[x]
			}
		}
		return len(a) < len(b)
	})
	parts := make([]string, len(sets))
	for i, s := range sets {
		members := make([]string, len(s))
		for j, e := range s {
			members[j] = strconv.FormatUint(uint64(e), 10)
		}
		parts[i] = "{" + strings.Join(members, ", ") + "}"
	}
	_, err := io.WriteString(w, strings.Join(parts, ", "))
	return err
}
