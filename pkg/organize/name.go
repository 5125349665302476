package organize

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gitlab.com/tozd/go/errors"
)

// maxNameAttempts bounds collision probing. Unbounded probing on a
// pathological filesystem would loop forever.
const maxNameAttempts = 10000

// ErrNamingExhausted means collision resolution gave up before finding a
// free name.
var ErrNamingExhausted = errors.New("could not find a collision-free name")

// UniquePath returns target unchanged if nothing exists there. Otherwise
// it probes stem_1.ext, stem_2.ext, ... in increasing order and returns
// the first free path. Deterministic: the same filesystem state always
// yields the same answer.
func UniquePath(target string) (string, error) {
	if !pathExists(target) {
		return target, nil
	}

	dir := filepath.Dir(target)
	base := filepath.Base(target)
	suffix := filepath.Ext(base)
	stem := strings.TrimSuffix(base, suffix)

	for i := 1; i <= maxNameAttempts; i++ {
		candidate := filepath.Join(dir, fmt.Sprintf("%s_%d%s", stem, i, suffix))
		if !pathExists(candidate) {
			return candidate, nil
		}
	}
	return "", errors.Errorf("%w after %d attempts: %s", ErrNamingExhausted, maxNameAttempts, target)
}

func pathExists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}
