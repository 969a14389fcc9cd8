package render

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/graph/formats/dot"
	"gonum.org/v1/gonum/graph/formats/dot/ast"

	"github.com/TFMV/ontograph/models"
)

func sampleSnapshot() *models.Snapshot {
	s := models.NewSnapshot(3)
	s.Nodes = []models.NodeState{
		{ID: "animal", Label: "Animal"},
		{ID: "dog", Label: `The "good" dog`},
		{ID: `C:\`, Label: `C:\ drive`},
	}
	s.Edges = []models.EdgeState{
		{Source: "dog", Target: "animal", Label: "subClassOf", Relations: 1},
		{Source: `C:\`, Target: "dog", Label: `a\b`, Relations: 1},
	}
	return s
}

func TestDOTRenderer(t *testing.T) {
	out, err := (&DOTRenderer{}).Render(sampleSnapshot())
	require.NoError(t, err)

	want := "strict digraph ontology {\n" +
		"\t\"dog\" -> \"animal\" [label=\"subClassOf\"];\n" +
		"\t\"C:\\\\\" -> \"dog\" [label=\"a\\\\b\"];\n" +
		"\t\"animal\" [label=\"Animal\"];\n" +
		"\t\"dog\" [label=\"The \\\"good\\\" dog\"];\n" +
		"\t\"C:\\\\\" [label=\"C:\\\\ drive\"];\n" +
		"}\n"
	assert.Equal(t, want, string(out))
}

func TestDOTRendererEmpty(t *testing.T) {
	out, err := (&DOTRenderer{}).Render(models.NewSnapshot(0))
	require.NoError(t, err)
	assert.Equal(t, "strict digraph ontology {\n}\n", string(out))
}

var dotUnescaper = strings.NewReplacer(`\\`, `\`, `\"`, `"`)

func unquote(id string) string {
	if len(id) >= 2 && id[0] == '"' && id[len(id)-1] == '"' {
		id = id[1 : len(id)-1]
	}
	return dotUnescaper.Replace(id)
}

func TestDOTRendererParses(t *testing.T) {
	out, err := (&DOTRenderer{}).Render(sampleSnapshot())
	require.NoError(t, err)

	file, err := dot.ParseBytes(out)
	require.NoError(t, err)
	require.Len(t, file.Graphs, 1)

	g := file.Graphs[0]
	assert.True(t, g.Strict)
	assert.True(t, g.Directed)
	assert.Equal(t, "ontology", g.ID)

	var edges [][2]string
	labels := map[string]string{}
	for _, stmt := range g.Stmts {
		switch st := stmt.(type) {
		case *ast.EdgeStmt:
			from, ok := st.From.(*ast.Node)
			require.True(t, ok)
			to, ok := st.To.Vertex.(*ast.Node)
			require.True(t, ok)
			edges = append(edges, [2]string{unquote(from.ID), unquote(to.ID)})
		case *ast.NodeStmt:
			for _, attr := range st.Attrs {
				if attr.Key == "label" {
					labels[unquote(st.Node.ID)] = unquote(attr.Val)
				}
			}
		}
	}

	assert.Equal(t, [][2]string{{"dog", "animal"}, {`C:\`, "dog"}}, edges)
	assert.Equal(t, map[string]string{
		"animal": "Animal",
		"dog":    `The "good" dog`,
		`C:\`:   `C:\ drive`,
	}, labels)
}

func TestJSONRenderer(t *testing.T) {
	out, err := (&JSONRenderer{}).Render(sampleSnapshot())
	require.NoError(t, err)
	assert.Contains(t, string(out), `"source": "dog"`)
	assert.Contains(t, string(out), `"tick": 3`)
}

func TestGetRenderer(t *testing.T) {
	for format, name := range map[string]string{
		"dot":      "DOT Renderer",
		"GraphViz": "DOT Renderer",
		"json":     "JSON Renderer",
	} {
		r, err := GetRenderer(format)
		require.NoError(t, err, format)
		assert.Equal(t, name, r.Name())
		assert.NotEmpty(t, r.Description())
	}

	_, err := GetRenderer("svg")
	assert.Error(t, err)
}

func TestSaveGraphViz(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.dot")
	require.NoError(t, SaveGraphViz(sampleSnapshot(), path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "strict digraph ontology {\n"))
}

func TestSaveGraphVizDefaultPath(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	require.NoError(t, SaveGraphViz(sampleSnapshot(), ""))
	_, err = os.Stat(filepath.Join(dir, DefaultGraphVizFile))
	assert.NoError(t, err)
}
