// Package dag implements the graph algorithms shared by every Backend
// implementation: height computation and the total, deterministic
// topological ordering used both to list a Tree/subtree and to fold CRDT
// merges in a fixed "last writer" order.
package dag

import "sort"

// Node is the minimal shape the ordering algorithms need: an ID and its
// parents within whatever dimension (Tree or a single subtree) is being
// ordered.
type Node struct {
	ID      string
	Parents []string
}

// Heights computes, for every node in nodes, the number of parent edges on
// the longest path from a node with no predecessor (a root of the
// restricted subgraph) to that node; such a root has height 0. It assumes nodes forms a DAG: a
// parent referenced by any node's Parents must also appear in nodes, or it
// is treated as external and ignored for height purposes (this lets
// callers order a single subtree, whose parent pointers only ever
// reference other entries that themselves contain that subtree, per the
// engine's invariant 6).
func Heights(nodes []Node) map[string]int {
	byID := make(map[string]Node, len(nodes))
	for _, n := range nodes {
		byID[n.ID] = n
	}
	// Kahn-style BFS: in-degree counts only parents that are themselves
	// present in this node set.
	indegree := make(map[string]int, len(nodes))
	children := make(map[string][]string, len(nodes))
	for _, n := range nodes {
		deg := 0
		for _, p := range n.Parents {
			if _, ok := byID[p]; ok {
				deg++
				children[p] = append(children[p], n.ID)
			}
		}
		indegree[n.ID] = deg
	}

	height := make(map[string]int, len(nodes))
	var queue []string
	for _, n := range nodes {
		if indegree[n.ID] == 0 {
			height[n.ID] = 0
			queue = append(queue, n.ID)
		}
	}
	sort.Strings(queue)

	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		for _, c := range children[id] {
			if height[id]+1 > height[c] {
				height[c] = height[id] + 1
			}
			indegree[c]--
			if indegree[c] == 0 {
				queue = append(queue, c)
				sort.Strings(queue)
			}
		}
	}
	return height
}

// TopoSort returns nodes ordered by the engine's total ordering rule:
// height ascending, then ID ascending lexicographic. This is the ordering
// used both for Backend.GetTree/GetSubtree and for folding CRDT merges
// over an ancestor set.
func TopoSort(nodes []Node) []Node {
	heights := Heights(nodes)
	out := make([]Node, len(nodes))
	copy(out, nodes)
	sort.Slice(out, func(i, j int) bool {
		hi, hj := heights[out[i].ID], heights[out[j].ID]
		if hi != hj {
			return hi < hj
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// Tips returns the IDs, among nodes, that have no child within nodes — the
// entries that no other node in the set lists in its Parents. The result
// is sorted.
func Tips(nodes []Node) []string {
	hasChild := make(map[string]bool, len(nodes))
	present := make(map[string]bool, len(nodes))
	for _, n := range nodes {
		present[n.ID] = true
	}
	for _, n := range nodes {
		for _, p := range n.Parents {
			if present[p] {
				hasChild[p] = true
			}
		}
	}
	var tips []string
	for _, n := range nodes {
		if !hasChild[n.ID] {
			tips = append(tips, n.ID)
		}
	}
	sort.Strings(tips)
	return tips
}

// Ancestors returns, among nodes, the transitive closure of parents
// (within the dimension restricted to nodes) reachable from tips,
// including the tips themselves. The result is not ordered; callers
// typically pass it straight to TopoSort.
func Ancestors(nodes []Node, tips []string) []Node {
	byID := make(map[string]Node, len(nodes))
	for _, n := range nodes {
		byID[n.ID] = n
	}
	seen := make(map[string]bool, len(nodes))
	var stack []string
	stack = append(stack, tips...)
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if seen[id] {
			continue
		}
		n, ok := byID[id]
		if !ok {
			continue
		}
		seen[id] = true
		stack = append(stack, n.Parents...)
	}
	out := make([]Node, 0, len(seen))
	for _, n := range nodes {
		if seen[n.ID] {
			out = append(out, n)
		}
	}
	return out
}
