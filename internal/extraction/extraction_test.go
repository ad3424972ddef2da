package extraction

import (
	"archive/zip"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeZip(t *testing.T, entries map[string]string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "upload.zip")
	f, err := os.Create(path)
	require.NoError(t, err)
	zw := zip.NewWriter(f)
	for name, body := range entries {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(body))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())
	return path
}

func TestExtractArchive(t *testing.T) {
	path := writeZip(t, map[string]string{
		"chair/chair.gltf":        "{}",
		"chair/chair.bin":         "bin",
		"chair/textures/wood.png": "png",
		"__MACOSX/chair/._x":      "fork",
		"chair/.DS_Store":         "ds",
	})

	files, dir, err := ExtractArchive(context.Background(), path)
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	var rels []string
	for _, f := range files {
		rels = append(rels, f.Rel)
		assert.FileExists(t, f.Path)
	}
	assert.ElementsMatch(t, []string{"chair/chair.gltf", "chair/chair.bin", "chair/textures/wood.png"}, rels)

	primary, err := PrimaryModel(files)
	require.NoError(t, err)
	assert.Equal(t, "chair/chair.gltf", primary.Rel)
}

func TestPrimaryModel(t *testing.T) {
	_, err := PrimaryModel([]File{{Rel: "a.png"}})
	assert.Error(t, err)

	_, err = PrimaryModel([]File{{Rel: "a.glb"}, {Rel: "b.GLTF"}})
	assert.Error(t, err)

	f, err := PrimaryModel([]File{{Rel: "a.bin"}, {Rel: "Sofa.GLB"}})
	require.NoError(t, err)
	assert.Equal(t, "Sofa.GLB", f.Rel)
}
