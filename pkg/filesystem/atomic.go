package filesystem

import (
	"os"
	"path/filepath"
	"regexp"
	"time"

	log "github.com/kolja-aws/kolja/pkg/logger"
)

// WriteFileAtomic writes data to filename so that readers observe either the
// fully-old or fully-new content, never a partial write. The temp file lives
// in the target's directory so the final rename stays on one filesystem.
func WriteFileAtomic(filename string, data []byte, perm os.FileMode) error {
	return writeFileAtomicImpl(filename, data, perm)
}

// staleTempAge is how old a leftover temp file must be before the sweep
// removes it. Young temp files may belong to a concurrent writer.
const staleTempAge = 10 * time.Minute

// RemoveStaleTempFiles deletes temp files that a crashed earlier run left
// next to path. Only names matching the atomic-write temp pattern for this
// exact target are considered.
func RemoveStaleTempFiles(path string) {
	dir := filepath.Dir(path)
	base := filepath.Base(path)

	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}

	// Temp names are "." + base + random digits, with renameio inserting
	// another dot before the digits.
	pattern := regexp.MustCompile(`^\.` + regexp.QuoteMeta(base) + `\.?[0-9]+$`)

	for _, entry := range entries {
		if entry.IsDir() || !pattern.MatchString(entry.Name()) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if time.Since(info.ModTime()) < staleTempAge {
			continue
		}
		stale := filepath.Join(dir, entry.Name())
		if err := os.Remove(stale); err != nil {
			log.Trace("Failed to remove stale temp file", "path", stale, "error", err)
			continue
		}
		log.Debug("Removed stale temp file", "path", stale)
	}
}
