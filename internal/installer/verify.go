package installer

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
	"os"
	"strings"

	"runtime-setup/internal/logger"
)

// VerifyFile reports whether the file at path hashes to the expected
// SHA-256 digest (lowercase hex). A missing or unreadable file is an
// ordinary miss, not an error; the installer relies on that to test
// whether a cached archive can be reused.
func VerifyFile(path, expected string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		logger.Debug("[DEBUG] Hashing %s failed: %v\n", path, err)
		return false
	}

	actual := hex.EncodeToString(h.Sum(nil))
	logger.Debug("[DEBUG] SHA-256 of %s: %s\n", path, actual)
	return actual == strings.ToLower(expected)
}
