package workflow

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// mediaExtensions lists the container formats accepted as conversion sources.
var mediaExtensions = map[string]struct{}{
	".mp4":  {},
	".mov":  {},
	".m4v":  {},
	".avi":  {},
	".mkv":  {},
	".wmv":  {},
	".webm": {},
	".mpg":  {},
	".mpeg": {},
	".3gp":  {},
	".ts":   {},
}

// IsMediaFile reports whether the path carries a recognized media extension.
func IsMediaFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	_, ok := mediaExtensions[ext]
	return ok
}

// Discover returns the media files under root in sorted order. Without
// recursive only the top level is scanned. Hidden files and non-regular
// entries are ignored.
func Discover(root string, recursive bool) ([]string, error) {
	var files []string

	if recursive {
		err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if entry.IsDir() {
				if path != root && strings.HasPrefix(entry.Name(), ".") {
					return filepath.SkipDir
				}
				return nil
			}
			if accepted(path, entry) {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", root, err)
		}
	} else {
		entries, err := os.ReadDir(root)
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", root, err)
		}
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			path := filepath.Join(root, entry.Name())
			if accepted(path, entry) {
				files = append(files, path)
			}
		}
	}

	sort.Strings(files)
	return files, nil
}

// accepted follows symlinks so a linked media file is treated like the file
// it points at; broken links are dropped.
func accepted(path string, entry fs.DirEntry) bool {
	name := entry.Name()
	if strings.HasPrefix(name, ".") {
		return false
	}
	if !IsMediaFile(name) {
		return false
	}
	if entry.Type().IsRegular() {
		return true
	}
	if entry.Type()&fs.ModeSymlink != 0 {
		info, err := os.Stat(path)
		return err == nil && info.Mode().IsRegular()
	}
	return false
}
