package diagram

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderMermaid_Shapes(t *testing.T) {
	tree := buildSampleTree(t)
	model, err := Build(tree)
	require.NoError(t, err)

	out := RenderMermaid(model)

	assert.True(t, strings.HasPrefix(out, "graph TD\n"))
	assert.Contains(t, out, "%% Grow revenue")
	assert.Contains(t, out, `n1(["Grow revenue"])`)
	assert.Contains(t, out, `n2["Increase signups"]`)
	assert.Contains(t, out, `n3("Referral program")`)
	assert.Contains(t, out, `n4["Reduce churn"]`)
}

func TestRenderMermaid_EdgesAndClasses(t *testing.T) {
	tree := buildSampleTree(t)
	model, err := Build(tree)
	require.NoError(t, err)

	out := RenderMermaid(model)

	assert.Contains(t, out, "n1 --> n2")
	assert.Contains(t, out, "n2 --> n3")
	assert.Contains(t, out, "n1 --> n4")
	assert.Contains(t, out, "n4 --> n5")

	assert.Contains(t, out, "classDef outcome")
	assert.Contains(t, out, "classDef subopportunity")
	assert.Contains(t, out, "class n1 outcome")
	assert.Contains(t, out, "class n3 solution")
}

func TestRenderMermaid_SubOpportunityShape(t *testing.T) {
	tree := buildSampleTree(t)
	opp := tree.Nodes[tree.Root().Children[0]]
	_, err := tree.AddChild(opp.ID, "sub-opportunity", "Mobile signups lag")
	require.NoError(t, err)

	model, err := Build(tree)
	require.NoError(t, err)
	out := RenderMermaid(model)

	assert.Contains(t, out, `[["Mobile signups lag"]]`)
	assert.Contains(t, out, "subopportunity")
}

func TestRenderMermaid_MultilineLabelTruncated(t *testing.T) {
	tree := buildSampleTree(t)
	tree.Root().Content = "Grow revenue\nsecond line"

	model, err := Build(tree)
	require.NoError(t, err)
	out := RenderMermaid(model)

	assert.Contains(t, out, `n1(["Grow revenue"])`)
	assert.NotContains(t, out, "second line\"")
}
