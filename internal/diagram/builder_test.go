package diagram

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ostkit/ostkit/pkg/schema"
)

func buildSampleTree(t *testing.T) *schema.Tree {
	t.Helper()

	tree, err := schema.NewTree("Grow revenue")
	require.NoError(t, err)
	root := tree.Root()

	opp1, err := tree.AddChild(root.ID, schema.KindOpportunity, "Increase signups")
	require.NoError(t, err)
	opp2, err := tree.AddChild(root.ID, schema.KindOpportunity, "Reduce churn")
	require.NoError(t, err)

	sol, err := tree.AddChild(opp1.ID, schema.KindSolution, "Referral program")
	require.NoError(t, err)
	sol.Description = "Reward both sides of the referral."
	sol.AddMetadata("Evidence", "Interview batch 3")
	sol.AddMetadata("Effort", "M")

	_, err = tree.AddChild(opp2.ID, schema.KindSolution, "Win-back emails")
	require.NoError(t, err)

	return tree
}

func TestBuild_PreOrderModel(t *testing.T) {
	tree := buildSampleTree(t)

	model, err := Build(tree)
	require.NoError(t, err)

	require.Len(t, model.Nodes, 5)
	assert.Equal(t, "Grow revenue", model.Title)

	assert.Equal(t, "n1", model.Nodes[0].ID)
	assert.Equal(t, schema.KindOutcome, model.Nodes[0].Kind)
	assert.Equal(t, 0, model.Nodes[0].Depth)

	assert.Equal(t, "Increase signups", model.Nodes[1].Label)
	assert.Equal(t, "Referral program", model.Nodes[2].Label)
	assert.Equal(t, 2, model.Nodes[2].Depth)
	assert.Equal(t, 2, model.Nodes[2].MetadataCount)
	assert.True(t, model.Nodes[2].HasDescription)

	assert.Equal(t, "Reduce churn", model.Nodes[3].Label)
	assert.Equal(t, "Win-back emails", model.Nodes[4].Label)
}

func TestBuild_EdgesAndLevels(t *testing.T) {
	tree := buildSampleTree(t)

	model, err := Build(tree)
	require.NoError(t, err)

	require.Len(t, model.Edges, 4)
	assert.Contains(t, model.Edges, Edge{From: "n1", To: "n2"})
	assert.Contains(t, model.Edges, Edge{From: "n2", To: "n3"})
	assert.Contains(t, model.Edges, Edge{From: "n1", To: "n4"})
	assert.Contains(t, model.Edges, Edge{From: "n4", To: "n5"})

	require.Len(t, model.Levels, 3)
	assert.Equal(t, []string{"n1"}, model.Levels[0])
	assert.Equal(t, []string{"n2", "n4"}, model.Levels[1])
	assert.Equal(t, []string{"n3", "n5"}, model.Levels[2])
}

func TestBuild_NoRoot(t *testing.T) {
	_, err := Build(&schema.Tree{Nodes: map[string]*schema.Node{}})
	require.Error(t, err)

	var engErr *schema.EngineError
	require.ErrorAs(t, err, &engErr)
	assert.Equal(t, schema.ErrCodeNotFound, engErr.Code)
}

func TestBuild_Deterministic(t *testing.T) {
	tree := buildSampleTree(t)

	first, err := Build(tree)
	require.NoError(t, err)
	second, err := Build(tree)
	require.NoError(t, err)

	assert.Equal(t, first.Edges, second.Edges)
	assert.Equal(t, first.Levels, second.Levels)
	for i := range first.Nodes {
		assert.Equal(t, first.Nodes[i].ID, second.Nodes[i].ID)
		assert.Equal(t, first.Nodes[i].Label, second.Nodes[i].Label)
	}
}
