package pipeline

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/backmassage/mkv2mp4/internal/config"
)

// sourceExt is the container converted by directory scans.
const sourceExt = ".mkv"

// Discover collects *.mkv files (case-insensitive) under root that pass
// filter. When recursive is false only root's direct entries are read.
// Paths are sorted lexicographically for deterministic processing order.
func Discover(root string, recursive bool, filter *Filter) ([]string, error) {
	var files []string
	keep := func(path string) {
		name := filepath.Base(path)
		if strings.EqualFold(filepath.Ext(name), sourceExt) && filter.Match(name) {
			files = append(files, path)
		}
	}

	if recursive {
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() {
				keep(path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	} else {
		entries, err := os.ReadDir(root)
		if err != nil {
			return nil, err
		}
		for _, e := range entries {
			if !e.IsDir() {
				keep(filepath.Join(root, e.Name()))
			}
		}
	}

	sort.Strings(files)
	return files, nil
}

// ResolveInputs returns the source files selected by cfg: the single
// --file (any extension, filters not applied) or a directory scan.
func ResolveInputs(cfg *config.Config) ([]string, error) {
	if cfg.File != "" {
		fi, err := os.Stat(cfg.File)
		if err != nil {
			return nil, fmt.Errorf("input not found: %w", err)
		}
		if fi.IsDir() {
			return nil, errors.New("--file points to a directory; use --directory")
		}
		return []string{cfg.File}, nil
	}

	filter, err := NewFilter(cfg.Include, cfg.Exclude)
	if err != nil {
		return nil, err
	}
	root, recursive := cfg.Input()
	return Discover(root, recursive, filter)
}
