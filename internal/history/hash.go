package history

import (
	"fmt"

	"github.com/minio/highwayhash"
)

var fingerprintKey = []byte("objmacro-gcode-fingerprint-key-1")

// Fingerprint returns the HighwayHash-64 of data as 16 hex digits.
func Fingerprint(data []byte) (string, error) {
	hash, err := highwayhash.New64(fingerprintKey)
	if err != nil {
		return "", err
	}
	if _, err := hash.Write(data); err != nil {
		return "", err
	}
	return fmt.Sprintf("%016x", hash.Sum64()), nil
}
