package manifest

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// Substitute replaces every occurrence of placeholder with image and returns
// the new content and the number of replacements.
func Substitute(content []byte, placeholder, image string) ([]byte, int) {
	if placeholder == "" {
		return content, 0
	}
	n := bytes.Count(content, []byte(placeholder))
	if n == 0 {
		return content, 0
	}
	return bytes.ReplaceAll(content, []byte(placeholder), []byte(image)), n
}

// Render writes a copy of the manifest at path with the placeholder replaced
// into a temporary directory. The caller must call cleanup once the rendered
// file has been applied. The source file is never modified.
func Render(path, placeholder, image string) (rendered string, cleanup func(), err error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", nil, fmt.Errorf("reading manifest: %w", err)
	}

	out, n := Substitute(content, placeholder, image)
	if n == 0 {
		slog.Warn("template manifest does not contain the image placeholder", "file", path, "placeholder", placeholder)
	} else {
		slog.Debug("substituted image placeholder", "file", path, "occurrences", n, "image", image)
	}

	dir, err := os.MkdirTemp("", "deploy-manifest-")
	if err != nil {
		return "", nil, fmt.Errorf("creating temp directory: %w", err)
	}
	cleanup = func() {
		if rmErr := os.RemoveAll(dir); rmErr != nil {
			slog.Warn("failed to remove rendered manifest", "path", dir, "error", rmErr)
		}
	}

	rendered = filepath.Join(dir, filepath.Base(path))
	if err := os.WriteFile(rendered, out, 0o600); err != nil {
		cleanup()
		return "", nil, fmt.Errorf("writing rendered manifest: %w", err)
	}

	return rendered, cleanup, nil
}
