package pipeline

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"
)

// targetExt is the output container extension.
const targetExt = ".mp4"

// OutputPath returns <dir>/<stem>.mp4 where dir is outputDir when set and
// the source's own directory otherwise.
func OutputPath(src, outputDir string) string {
	dir := outputDir
	if dir == "" {
		dir = filepath.Dir(src)
	}
	base := filepath.Base(src)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(dir, stem+targetExt)
}

// CollisionResolver tracks output paths claimed by source files and
// resolves duplicates (same stem in different directories flattened into
// one --output-dir) by appending " - dupN". All methods are goroutine-safe.
type CollisionResolver struct {
	mu       sync.Mutex
	owners   map[string]string // output path → source path that owns it
	counters map[string]int    // base output path → next dup counter
}

// NewCollisionResolver creates a ready-to-use resolver.
func NewCollisionResolver() *CollisionResolver {
	return &CollisionResolver{
		owners:   make(map[string]string),
		counters: make(map[string]int),
	}
}

// Resolve returns the final output path for src. If requested is
// unclaimed (or already owned by src) it is returned as-is.
func (cr *CollisionResolver) Resolve(src, requested string) string {
	cr.mu.Lock()
	defer cr.mu.Unlock()

	owner, exists := cr.owners[requested]
	if !exists || owner == src {
		cr.owners[requested] = src
		return requested
	}

	dir := filepath.Dir(requested)
	base := filepath.Base(requested)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)

	counter := cr.counters[requested]
	if counter == 0 {
		counter = 1
	}
	for {
		candidate := filepath.Join(dir, fmt.Sprintf("%s - dup%d%s", stem, counter, ext))
		cOwner, cExists := cr.owners[candidate]
		if !cExists || cOwner == src {
			cr.counters[requested] = counter + 1
			cr.owners[candidate] = src
			return candidate
		}
		counter++
	}
}
