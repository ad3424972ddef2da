// Package extraction unpacks uploaded archives of glTF assets.
package extraction

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/mholt/archives"
)

// File is one extracted entry.
type File struct {
	Path string // absolute path on disk
	Rel  string // slash-separated path inside the archive
}

// ExtractArchive extracts the contents of a ZIP archive to a temporary
// directory. The caller removes destDir.
func ExtractArchive(ctx context.Context, archivePath string) (files []File, destDir string, err error) {
	destDir, err = os.MkdirTemp("", "extract-*")
	if err != nil {
		return nil, "", err
	}

	fsys, err := archives.FileSystem(ctx, archivePath, nil)
	if err != nil {
		os.RemoveAll(destDir)
		return nil, "", err
	}

	err = fs.WalkDir(fsys, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || ShouldIgnore(path) {
			return nil
		}
		reader, err := fsys.Open(path)
		if err != nil {
			return err
		}
		defer reader.Close()

		destPath := filepath.Join(destDir, filepath.FromSlash(path))
		if err := os.MkdirAll(filepath.Dir(destPath), 0o755); err != nil {
			return err
		}
		outFile, err := os.Create(destPath)
		if err != nil {
			return err
		}
		defer outFile.Close()

		if _, err := io.Copy(outFile, reader); err != nil {
			return err
		}
		files = append(files, File{Path: destPath, Rel: path})
		return nil
	})
	if err != nil {
		os.RemoveAll(destDir)
		return nil, "", err
	}
	return files, destDir, nil
}

// IsModelFile reports whether ext names a loadable model.
func IsModelFile(ext string) bool {
	switch strings.ToLower(ext) {
	case ".glb", ".gltf":
		return true
	}
	return false
}

// ShouldIgnore skips OS metadata such as macOS resource forks.
func ShouldIgnore(path string) bool {
	if strings.HasPrefix(path, "__MACOSX/") {
		return true
	}
	name := filepath.Base(path)
	return strings.HasPrefix(name, ".") || strings.EqualFold(name, "thumbs.db") || name == ""
}

// PrimaryModel returns the single model file among files.
func PrimaryModel(files []File) (File, error) {
	var found []File
	for _, f := range files {
		if IsModelFile(filepath.Ext(f.Rel)) {
			found = append(found, f)
		}
	}
	switch len(found) {
	case 0:
		return File{}, fmt.Errorf("no .glb or .gltf file in archive")
	case 1:
		return found[0], nil
	}
	names := make([]string, len(found))
	for i, f := range found {
		names[i] = f.Rel
	}
	return File{}, fmt.Errorf("multiple model files in archive: %s", strings.Join(names, ", "))
}
