package manifest

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"github.com/bmatcuk/doublestar/v4"
)

// Resolve returns the manifest files an apply step targets, joined to dir.
// Either file or pattern is set; pattern uses doublestar syntax and matches
// are returned in lexical order.
func Resolve(dir, file, pattern string) ([]string, error) {
	if file != "" {
		path := file
		if !filepath.IsAbs(path) {
			path = filepath.Join(dir, path)
		}
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("manifest %s: %w", path, err)
		}
		if info.IsDir() {
			return nil, fmt.Errorf("manifest %s is a directory", path)
		}
		return []string{path}, nil
	}

	matches, err := globFiles(os.DirFS(dir), pattern)
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("no manifests match %q in %s", pattern, dir)
	}

	paths := make([]string, len(matches))
	for i, m := range matches {
		paths[i] = filepath.Join(dir, filepath.FromSlash(m))
	}
	return paths, nil
}

func globFiles(fsys fs.FS, pattern string) ([]string, error) {
	matches, err := doublestar.Glob(fsys, pattern)
	if err != nil {
		return nil, fmt.Errorf("glob %q: %w", pattern, err)
	}

	var result []string
	for _, m := range matches {
		info, err := fs.Stat(fsys, m)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", m, err)
		}
		if info.IsDir() {
			continue
		}
		result = append(result, m)
	}
	slices.Sort(result)
	return slices.Compact(result), nil
}
