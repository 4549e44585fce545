package outline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ostkit/ostkit/pkg/schema"
)

// roundtrip serializes a tree with shorthand prefixes, reparses the text,
// and returns the reconstructed tree.
func roundtrip(t *testing.T, tree *schema.Tree) *schema.Tree {
	t.Helper()
	text := Serialize(tree, DefaultSerializeOptions()).Text
	r := Parse(text)
	require.True(t, r.Success, "reparse failed: %v\ntext:\n%s", r.Diagnostics, text)
	return r.Tree
}

func TestRoundTrip_SampleTree(t *testing.T) {
	tree := buildSampleTree(t)
	assertTreesEquivalent(t, tree, roundtrip(t, tree))
}

func TestRoundTrip_MetadataReorderedIntoPriorityOrder(t *testing.T) {
	// Fields added against the priority order come back reordered (Evidence
	// before custom fields) but with no names or values lost.
	tree, err := schema.NewTree("root")
	require.NoError(t, err)
	root := tree.Root()
	root.AddMetadata("Owner", "growth team")
	root.AddMetadata("Evidence", "funnel drop-off")

	rt := roundtrip(t, tree)
	assertTreesEquivalent(t, tree, rt)

	rtRoot := rt.Root()
	require.Len(t, rtRoot.Metadata, 2)
	assert.Equal(t, "Evidence", rtRoot.Metadata[0].Name)
	assert.Equal(t, "Owner", rtRoot.Metadata[1].Name)
	assert.Equal(t, []string{"growth team"}, rtRoot.MetadataValues("Owner"))
	assert.Equal(t, []string{"funnel drop-off"}, rtRoot.MetadataValues("Evidence"))
}

func TestRoundTrip_MinimalTree(t *testing.T) {
	tree, err := schema.NewTree("just the outcome")
	require.NoError(t, err)
	assertTreesEquivalent(t, tree, roundtrip(t, tree))
}

func TestRoundTrip_WideTree(t *testing.T) {
	tree, err := schema.NewTree("root")
	require.NoError(t, err)
	for i := 0; i < 8; i++ {
		opp, err := tree.AddChild(tree.RootID, schema.KindOpportunity, "opp "+string(rune('a'+i)))
		require.NoError(t, err)
		for j := 0; j < 3; j++ {
			_, err := tree.AddChild(opp.ID, schema.KindSolution, "sol "+string(rune('a'+j)))
			require.NoError(t, err)
		}
	}
	rt := roundtrip(t, tree)
	assertTreesEquivalent(t, tree, rt)
	assert.Equal(t, 33, rt.Len())
}

func TestRoundTrip_AlternatingKinds(t *testing.T) {
	// opportunity → sub-opportunity → solution → sub-opportunity chain.
	tree, err := schema.NewTree("root")
	require.NoError(t, err)
	opp, err := tree.AddChild(tree.RootID, schema.KindOpportunity, "opp")
	require.NoError(t, err)
	sub, err := tree.AddChild(opp.ID, schema.KindSubOpportunity, "sub")
	require.NoError(t, err)
	sol, err := tree.AddChild(sub.ID, schema.KindSolution, "sol")
	require.NoError(t, err)
	_, err = tree.AddChild(sol.ID, schema.KindSubOpportunity, "deeper sub")
	require.NoError(t, err)

	assertTreesEquivalent(t, tree, roundtrip(t, tree))
}

func TestRoundTrip_MetadataAndDescriptions(t *testing.T) {
	tree, err := schema.NewTree("root")
	require.NoError(t, err)
	root := tree.Root()
	root.AddMetadata("Evidence", "A")
	root.AddMetadata("Evidence", "B")
	root.AddMetadata("Custom Field 1", "value with: colon inside")
	root.Description = "single line summary"

	opp, err := tree.AddChild(tree.RootID, schema.KindOpportunity, "opp")
	require.NoError(t, err)
	opp.Description = "line one\nline two\nline three"

	rt := roundtrip(t, tree)
	rtRoot := rt.Root()
	assert.Equal(t, []string{"A", "B"}, rtRoot.MetadataValues("Evidence"))
	assert.Equal(t, []string{"value with: colon inside"}, rtRoot.MetadataValues("Custom Field 1"))
	assert.Equal(t, "single line summary", rtRoot.Description)

	rtOpp := rt.Get(rtRoot.Children[0])
	assert.Equal(t, "line one\nline two\nline three", rtOpp.Description)
}

func TestRoundTrip_LineMapsAgree(t *testing.T) {
	// The serializer's line map and the parser's line map must describe
	// the same declaration lines for structurally corresponding nodes.
	tree := buildSampleTree(t)
	ser := Serialize(tree, DefaultSerializeOptions())
	parsed := Parse(ser.Text)
	require.True(t, parsed.Success)

	serLines := make(map[int]bool, len(ser.NodeLines))
	for _, ln := range ser.NodeLines {
		serLines[ln] = true
	}
	for _, ln := range parsed.NodeLines {
		assert.True(t, serLines[ln], "parser found a declaration on line %d the serializer did not emit", ln)
	}
	assert.Equal(t, len(ser.NodeLines), len(parsed.NodeLines))
}

func TestRoundTrip_PreservesChildOrder(t *testing.T) {
	tree, err := schema.NewTree("root")
	require.NoError(t, err)
	names := []string{"third", "first", "second"}
	for _, name := range names {
		_, err := tree.AddChild(tree.RootID, schema.KindOpportunity, name)
		require.NoError(t, err)
	}

	rt := roundtrip(t, tree)
	var got []string
	for _, id := range rt.Root().Children {
		got = append(got, rt.Get(id).Content)
	}
	assert.Equal(t, names, got)
}
