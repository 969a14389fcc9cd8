package cmd

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TFMV/ontograph/config"
)

func writeFixtures(t *testing.T) (cfgPath, feedPath string) {
	t.Helper()
	dir := t.TempDir()

	cfgPath = filepath.Join(dir, "config.toml")
	c := config.Default()
	c.Placement = config.PlacementConfig{Strategy: "noise", Seed: 1}
	c.Log.Level = "error"
	require.NoError(t, config.Save(c, cfgPath))

	feedPath = filepath.Join(dir, "zoo.jsonl")
	feed := strings.Join([]string{
		`{"op":"node","id":"animal","label":"Animal","type":"class"}`,
		`{"op":"node","id":"dog","label":"Dog","type":"class","near":"animal"}`,
		`{"op":"relation","from":"dog","to":"animal","type":"subclass","label":"subClassOf"}`,
	}, "\n")
	require.NoError(t, os.WriteFile(feedPath, []byte(feed), 0o644))
	return cfgPath, feedPath
}

func TestLayoutCommand(t *testing.T) {
	cfgPath, feedPath := writeFixtures(t)
	out := filepath.Join(t.TempDir(), "ontology.dot")

	rootCmd.SetArgs([]string{"--config", cfgPath, "layout", feedPath, "-o", out, "--select", "dog"})
	require.NoError(t, rootCmd.ExecuteContext(context.Background()))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "strict digraph ontology {\n"+
		"\t\"dog\" -> \"animal\" [label=\"subClassOf\"];\n"+
		"\t\"animal\" [label=\"Animal\"];\n"+
		"\t\"dog\" [label=\"Dog\"];\n"+
		"}\n", string(data))
}

func TestLayoutCommandDefaultExportPath(t *testing.T) {
	cfgPath, feedPath := writeFixtures(t)
	c, err := config.Load(cfgPath)
	require.NoError(t, err)
	c.Export.Path = filepath.Join(t.TempDir(), "export.dot")
	require.NoError(t, config.Save(c, cfgPath))

	rootCmd.SetArgs([]string{"--config", cfgPath, "layout", feedPath, "-o", "", "-f", "dot"})
	require.NoError(t, rootCmd.ExecuteContext(context.Background()))

	data, err := os.ReadFile(c.Export.Path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "strict digraph ontology {\n"))
}

func TestLayoutCommandUnknownNode(t *testing.T) {
	cfgPath, feedPath := writeFixtures(t)

	rootCmd.SetArgs([]string{"--config", cfgPath, "layout", feedPath, "-o", "-", "--select", "cat"})
	assert.Error(t, rootCmd.ExecuteContext(context.Background()))
}

func TestConfigInit(t *testing.T) {
	cfgPath, _ := writeFixtures(t)
	target := filepath.Join(t.TempDir(), "fresh.toml")

	rootCmd.SetArgs([]string{"--config", cfgPath, "config", "init", target})
	require.NoError(t, rootCmd.ExecuteContext(context.Background()))

	loaded, err := config.Load(target)
	require.NoError(t, err)
	assert.Equal(t, config.Default(), loaded)
}
