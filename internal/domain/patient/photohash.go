package patient

import (
	"encoding/base64"
	"fmt"
	"hash/fnv"
)

// PhotoHash derives a duplicate-detection fingerprint from an intake photo.
//
// This is a placeholder for a real perceptual hash: it decodes the base64
// payload and runs FNV-1a over the raw bytes, so only byte-identical photos
// collide. Good enough to catch the common case of the same photo being
// registered twice from different devices.
func PhotoHash(photoBase64 string) (string, error) {
	if photoBase64 == "" {
		return "", nil
	}

	data, err := base64.StdEncoding.DecodeString(photoBase64)
	if err != nil {
		return "", fmt.Errorf("decode photo: %w", err)
	}

	h := fnv.New64a()
	h.Write(data)
	return fmt.Sprintf("%016x", h.Sum64()), nil
}
