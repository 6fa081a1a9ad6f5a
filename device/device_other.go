//go:build !linux

package device

import (
	"fmt"
	"os"
)

// directFlag has no portable equivalent outside Linux; Direct-mode
// opens on other platforms simply fall back to cached I/O.
const directFlag = 0

// geometry falls back to Stat everywhere outside Linux: block-device
// ioctls are platform-specific and out of scope for this engine (spec.md
// §1 "Out of scope": discovery/identification are external
// collaborators).
func geometry(f *os.File, path string) (blockSize, hardSectorSize, size int64, err error) {
	fi, statErr := f.Stat()
	if statErr != nil {
		return 0, 0, 0, fmt.Errorf("device: stat %s: %w", path, statErr)
	}
	return 512, 512, fi.Size(), nil
}
