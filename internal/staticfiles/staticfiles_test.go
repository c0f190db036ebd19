package staticfiles

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestCollect(t *testing.T) {
	dir := t.TempDir()
	srcA := filepath.Join(dir, "static")
	srcB := filepath.Join(dir, "theme")
	root := filepath.Join(dir, "staticfiles")

	writeFile(t, filepath.Join(srcA, "css", "site.css"), "body{}")
	writeFile(t, filepath.Join(srcA, "js", "app.js"), "app")
	writeFile(t, filepath.Join(srcB, "css", "site.css"), "theme-override")
	writeFile(t, filepath.Join(srcB, "img", "logo.svg"), "<svg/>")

	res, err := Collect(root, []string{srcA, srcB})
	require.NoError(t, err)

	assert.Equal(t, 3, res.Copied)
	assert.Equal(t, 1, res.Skipped)

	// First source wins for duplicated relative paths.
	got, err := os.ReadFile(filepath.Join(root, "css", "site.css"))
	require.NoError(t, err)
	assert.Equal(t, "body{}", string(got))

	_, err = os.Stat(filepath.Join(root, "img", "logo.svg"))
	assert.NoError(t, err)
}

func TestCollect_MissingSourceIgnored(t *testing.T) {
	dir := t.TempDir()
	res, err := Collect(filepath.Join(dir, "out"), []string{filepath.Join(dir, "nope")})
	require.NoError(t, err)
	assert.Zero(t, res.Copied)
}
