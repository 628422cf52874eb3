package snapshot

import (
	"fmt"

	"github.com/minio/highwayhash"
)

// digestKey is the fixed highwayhash key. Digests only need to be stable
// across runs, not secret.
var digestKey = []byte("ft-patch-snapshot-digest-key-001")

// Digest returns the highwayhash-64 digest of data as a fixed-width hex
// string.
func Digest(data []byte) (string, error) {
	h, err := highwayhash.New64(digestKey)
	if err != nil {
		return "", err
	}
	if _, err := h.Write(data); err != nil {
		return "", err
	}
	return fmt.Sprintf("%016x", h.Sum64()), nil
}
