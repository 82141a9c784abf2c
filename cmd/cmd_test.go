package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const shopJSON = `{
  "type": "root", "name": "Root",
  "children": [
    {"type": "class", "name": "Cart", "comment": "Shopping cart.",
     "children": [
       {"type": "methods", "name": "Methods",
        "children": [{"type": "method", "name": "public void add(Item item)"}]}
     ]},
    {"type": "class", "name": "Item"}
  ]
}`

func writeDoc(t *testing.T) (dir, path string) {
	t.Helper()
	dir = t.TempDir()
	path = filepath.Join(dir, "shop.json")
	require.NoError(t, os.WriteFile(path, []byte(shopJSON), 0o644))
	return dir, path
}

func run(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append([]string{"--config", filepath.Join(dir, "astview.toml")}, args...))
	err := rootCmd.Execute()
	return out.String(), err
}

func TestExportFormat(t *testing.T) {
	tests := []struct {
		format, output string
		want           string
		wantErr        bool
	}{
		{"", "", "png", false},
		{"", "tree.TXT", "txt", false},
		{"", "tree.png", "png", false},
		{"text", "tree.png", "txt", false},
		{"PNG", "", "png", false},
		{"svg", "", "", true},
	}
	for _, tt := range tests {
		got, err := exportFormat(tt.format, tt.output)
		if tt.wantErr {
			assert.Error(t, err)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "%q %q", tt.format, tt.output)
	}
}

func TestClassesCommand(t *testing.T) {
	dir, path := writeDoc(t)
	out, err := run(t, dir, "classes", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Cart")
	assert.Contains(t, out, "Item")
	assert.Contains(t, out, "2 classes")
}

func TestExportTextCommand(t *testing.T) {
	dir, path := writeDoc(t)
	output := filepath.Join(dir, "tree.txt")

	out, err := run(t, dir, "export", path, "-o", output, "--mode", "full")
	require.NoError(t, err)
	assert.Contains(t, out, "exported "+output)

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(data), "▾ Cart *")
	assert.Contains(t, string(data), "public void add(Item item)")
	assert.Contains(t, string(data), "• Item")
}

func TestExportPNGCommand(t *testing.T) {
	dir, path := writeDoc(t)
	output := filepath.Join(dir, "tree.png")

	_, err := run(t, dir, "export", path, "-o", output, "--mode", "compressed", "--theme", "dark")
	require.NoError(t, err)

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t, []byte("\x89PNG"), data[:4])
}

func TestExportMissingDocument(t *testing.T) {
	dir := t.TempDir()
	_, err := run(t, dir, "export", filepath.Join(dir, "missing.json"), "-o", filepath.Join(dir, "x.txt"))
	assert.Error(t, err)
}

func TestConfigInit(t *testing.T) {
	dir := t.TempDir()
	out, err := run(t, dir, "config", "init")
	require.NoError(t, err)
	assert.Contains(t, out, "wrote")
	assert.FileExists(t, filepath.Join(dir, "astview.toml"))

	_, err = run(t, dir, "config", "init")
	assert.Error(t, err)

	out, err = run(t, dir, "config", "path")
	require.NoError(t, err)
	assert.Contains(t, out, filepath.Join(dir, "astview.toml"))
}
