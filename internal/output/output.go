// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package output derives image paths for rendered diagrams and writes the
// images to disk.
package output

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/mermaid-render/internal/extract"
)

// imagesDirSuffix names the per-document directory: {stem}_mermaid_images.
const imagesDirSuffix = "_mermaid_images"

// Namer derives output paths. The zero value places images in a directory
// beside each document; a non-empty Dir collects every image in one place.
type Namer struct {
	Dir string
}

// Path returns the image path for the fragment at position in docPath:
// {dir}/{stem}_{chart_type}_{position:02d}.png. It has no side effects.
func (n Namer) Path(docPath string, position int, source string) string {
	stem := Stem(docPath)
	name := fmt.Sprintf("%s_%s_%02d.png", stem, extract.Classify(source), position)
	return filepath.Join(n.dirFor(docPath, stem), name)
}

// Resolve returns Path and makes sure the containing directory exists.
func (n Namer) Resolve(docPath string, position int, source string) (string, error) {
	p := n.Path(docPath, position, source)
	dir := filepath.Dir(p)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating directory %s: %w", dir, err)
	}
	return p, nil
}

func (n Namer) dirFor(docPath, stem string) string {
	if n.Dir != "" {
		return n.Dir
	}
	return filepath.Join(filepath.Dir(docPath), stem+imagesDirSuffix)
}

// Stem returns the file name of path without its final extension. A name
// that is only an extension, such as ".md", is its own stem.
func Stem(path string) string {
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	if ext == base {
		return base
	}
	return strings.TrimSuffix(base, ext)
}
