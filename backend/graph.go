package backend

import (
	"github.com/eidetica/eideticadb/dag"
	"github.com/eidetica/eideticadb/entry"
)

// FilterTree returns, among all, the Entries belonging to treeID: the
// root Entry itself (ID == treeID, Root == "") plus every Entry whose
// tree.Root is treeID.
func FilterTree(all map[string]entry.Entry, treeID string) []entry.Entry {
	var out []entry.Entry
	if root, ok := all[treeID]; ok && root.IsRoot() {
		out = append(out, root)
	}
	for _, e := range all {
		if e.Root() == treeID {
			out = append(out, e)
		}
	}
	return out
}

// FilterSubtree restricts treeEntries to those containing the named
// subtree.
func FilterSubtree(treeEntries []entry.Entry, name string) []entry.Entry {
	var out []entry.Entry
	for _, e := range treeEntries {
		if e.HasSubtree(name) {
			out = append(out, e)
		}
	}
	return out
}

// TreeDagNodes builds dag.Node values from treeEntries using the
// Tree-dimension parent list.
func TreeDagNodes(treeEntries []entry.Entry) []dag.Node {
	nodes := make([]dag.Node, len(treeEntries))
	for i, e := range treeEntries {
		nodes[i] = dag.Node{ID: e.MustID(), Parents: e.Parents()}
	}
	return nodes
}

// SubtreeDagNodes builds dag.Node values from subtreeEntries using each
// Entry's subtree-dimension parent list for name.
func SubtreeDagNodes(subtreeEntries []entry.Entry, name string) []dag.Node {
	nodes := make([]dag.Node, len(subtreeEntries))
	for i, e := range subtreeEntries {
		rec, _ := e.Subtree(name)
		nodes[i] = dag.Node{ID: e.MustID(), Parents: rec.Parents}
	}
	return nodes
}

// OrderEntries sorts entries to match the height-then-ID order of nodes
// (which must name the same IDs as entries, e.g. from TreeDagNodes or
// SubtreeDagNodes over the same slice).
func OrderEntries(entries []entry.Entry, nodes []dag.Node) []entry.Entry {
	sorted := dag.TopoSort(nodes)
	byID := make(map[string]entry.Entry, len(entries))
	for _, e := range entries {
		byID[e.MustID()] = e
	}
	out := make([]entry.Entry, 0, len(sorted))
	for _, n := range sorted {
		out = append(out, byID[n.ID])
	}
	return out
}
