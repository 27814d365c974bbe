package entry

import "sort"

// Builder accumulates an Entry's fields and finalizes them into an
// immutable Entry. It is the only path to a newly constructed Entry
// (FromCanonical only reloads persisted ones): there is no way to obtain a
// partially-built or later-mutated value.
type Builder struct {
	tree     TreeData
	subtrees map[string]SubtreeRecord
}

// NewBuilder starts a fresh Builder for an Entry in the Tree identified by
// root (use RootSentinel for a Tree's own root Entry).
func NewBuilder(root string) *Builder {
	return &Builder{
		tree:     TreeData{Root: root},
		subtrees: make(map[string]SubtreeRecord),
	}
}

// SetParents sets the Tree-dimension parent IDs. Order does not matter:
// Build sorts them.
func (b *Builder) SetParents(parents []string) *Builder {
	b.tree.Parents = append([]string(nil), parents...)
	return b
}

// SetData sets the serialized main-tree payload.
func (b *Builder) SetData(data string) *Builder {
	b.tree.Data = data
	return b
}

// SetMetadata sets the optional metadata side channel.
func (b *Builder) SetMetadata(metadata string) *Builder {
	b.tree.Metadata = metadata
	return b
}

// SetSubtree stages a subtree's data and parent list under name. Calling it
// again for the same name overwrites the prior stage. Subtrees whose data
// is empty at Build time are stripped from the finalized Entry.
func (b *Builder) SetSubtree(name string, parents []string, data string) *Builder {
	b.subtrees[name] = SubtreeRecord{
		Name:    name,
		Parents: append([]string(nil), parents...),
		Data:    data,
	}
	return b
}

// Build finalizes the staged fields into an immutable Entry:
//  1. sorts tree.parents and every subtree's parents lexicographically,
//  2. drops subtrees whose data is empty,
//  3. sorts the remaining subtrees by name,
//  4. freezes the result — nothing about the returned Entry is mutable.
func (b *Builder) Build() Entry {
	sort.Strings(b.tree.Parents)

	subtrees := make([]SubtreeRecord, 0, len(b.subtrees))
	for _, rec := range b.subtrees {
		if rec.Data == "" {
			continue
		}
		sort.Strings(rec.Parents)
		subtrees = append(subtrees, rec)
	}
	sort.Slice(subtrees, func(i, j int) bool { return subtrees[i].Name < subtrees[j].Name })

	return Entry{
		tree:     b.tree,
		subtrees: subtrees,
	}
}
