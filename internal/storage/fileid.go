package storage

import (
	"crypto/sha256"
	"encoding/hex"
	"path/filepath"
)

// FileIDLength is the truncation length of asset identifiers. Together with
// the hash algorithm it forms a cross-process contract: the server and the
// offline thumbnail generator must derive bit-identical IDs from the same
// relative path, because thumbnail filenames are keyed by them. Changing
// either orphans every thumbnail already on disk.
const FileIDLength = 16

// FileID derives the stable short identifier for an asset from its path
// relative to the models or trajectories root. The input must use forward
// slashes; use FileIDFromPath when the path may carry OS separators.
func FileID(relPath string) string {
	sum := sha256.Sum256([]byte(relPath))
	return hex.EncodeToString(sum[:])[:FileIDLength]
}

// FileIDFromPath normalizes OS path separators to forward slashes before
// hashing, so Windows and Unix walks of the same tree agree on IDs.
func FileIDFromPath(relPath string) string {
	return FileID(filepath.ToSlash(relPath))
}
