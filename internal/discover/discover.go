// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package discover finds the Markdown documents a run should process.
package discover

import (
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"sort"
)

// DefaultExtensions is used when the caller passes no extensions.
var DefaultExtensions = []string{".md"}

// Exists reports whether path names an existing file or directory.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Documents returns the documents found at path. A document file yields a
// single-element list; a directory yields every document file at any depth,
// sorted. A missing path or a file with another extension yields nil.
//
// Unreadable subdirectories are skipped rather than aborting the walk.
func Documents(path string, exts []string) ([]string, error) {
	if len(exts) == 0 {
		exts = DefaultExtensions
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	if !info.IsDir() {
		if info.Mode().IsRegular() && hasExt(path, exts) {
			return []string{path}, nil
		}
		return nil, nil
	}

	var docs []string
	err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if d != nil && d.IsDir() && p != path {
				return fs.SkipDir
			}
			return err
		}
		if hasExt(p, exts) && isRegular(p, d) {
			docs = append(docs, p)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(docs)
	return docs, nil
}

// isRegular reports whether d is a regular file, following a symlink to
// its target. Broken links are not documents.
func isRegular(p string, d fs.DirEntry) bool {
	if d.Type()&fs.ModeSymlink == 0 {
		return d.Type().IsRegular()
	}
	info, err := os.Stat(p)
	return err == nil && info.Mode().IsRegular()
}

func hasExt(path string, exts []string) bool {
	return slices.Contains(exts, filepath.Ext(path))
}
