// Package filesystem lists directories for the file_list tool.
package filesystem

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// NoteNotDirectory is reported when the requested path is missing or not a directory.
const NoteNotDirectory = "directory does not exist or is not a folder"

// Item describes one directory entry. Entries that could not be inspected
// carry Error instead of IsDir and Size.
type Item struct {
	Name  string
	Path  string
	IsDir bool
	Size  *int64
	Error string
}

// MarshalJSON emits {name, path, is_dir, size} or {name, path, error}.
func (i Item) MarshalJSON() ([]byte, error) {
	if i.Error != "" {
		return json.Marshal(struct {
			Name  string `json:"name"`
			Path  string `json:"path"`
			Error string `json:"error"`
		}{i.Name, i.Path, i.Error})
	}
	return json.Marshal(struct {
		Name  string `json:"name"`
		Path  string `json:"path"`
		IsDir bool   `json:"is_dir"`
		Size  *int64 `json:"size"`
	}{i.Name, i.Path, i.IsDir, i.Size})
}

// Listing is the result of List.
type Listing struct {
	Directory string `json:"directory"`
	Items     []Item `json:"items"`
	Note      string `json:"note,omitempty"`
}

// Resolve returns the absolute, symlink-resolved form of p. Relative paths
// are taken relative to baseDir. Symlinks are left as-is when they cannot
// be resolved.
func Resolve(baseDir, p string) string {
	if p == "" {
		p = "."
	}
	if !filepath.IsAbs(p) {
		p = filepath.Join(baseDir, p)
	}
	if abs, err := filepath.Abs(p); err == nil {
		p = abs
	}
	if resolved, err := filepath.EvalSymlinks(p); err == nil {
		p = resolved
	}
	return p
}

// List returns the entries of dirPath sorted by name. Files report their
// size, directories a nil size.
func List(baseDir, dirPath string) Listing {
	dir := Resolve(baseDir, dirPath)
	listing := Listing{Directory: dir, Items: []Item{}}

	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		listing.Note = NoteNotDirectory
		return listing
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		listing.Note = err.Error()
		return listing
	}

	for _, entry := range entries {
		item := Item{Name: entry.Name(), Path: filepath.Join(dir, entry.Name())}
		fi, err := os.Stat(item.Path)
		if err != nil {
			fi, err = os.Lstat(item.Path)
		}
		if err != nil {
			item.Error = err.Error()
			listing.Items = append(listing.Items, item)
			continue
		}
		item.IsDir = fi.IsDir()
		if fi.Mode().IsRegular() {
			size := fi.Size()
			item.Size = &size
		}
		listing.Items = append(listing.Items, item)
	}
	return listing
}
