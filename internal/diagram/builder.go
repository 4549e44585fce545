package diagram

import (
	"fmt"

	"github.com/ostkit/ostkit/pkg/schema"
)

// Build converts a tree into the renderer-neutral Model. Render ids are
// assigned in pre-order, so the same tree always builds the same model.
func Build(tree *schema.Tree) (*Model, error) {
	root := tree.Root()
	if root == nil {
		return nil, schema.NewError(schema.ErrCodeNotFound, "tree has no root to diagram")
	}

	model := &Model{Title: root.Content}
	ids := make(map[string]string, tree.Len())

	seq := 0
	tree.Walk(func(n *schema.Node, depth int) {
		seq++
		renderID := fmt.Sprintf("n%d", seq)
		ids[n.ID] = renderID

		count := 0
		for _, f := range n.Metadata {
			count += len(f.Values)
		}
		model.Nodes = append(model.Nodes, &Node{
			ID:             renderID,
			NodeID:         n.ID,
			Label:          n.Content,
			Kind:           n.Kind,
			Depth:          depth,
			MetadataCount:  count,
			HasDescription: n.Description != "",
		})

		for len(model.Levels) <= depth {
			model.Levels = append(model.Levels, nil)
		}
		model.Levels[depth] = append(model.Levels[depth], renderID)

		if n.ParentID != "" {
			model.Edges = append(model.Edges, Edge{From: ids[n.ParentID], To: renderID})
		}
	})

	return model, nil
}
