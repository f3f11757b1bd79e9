package state

import (
	"encoding/json"
	"os"
	"time"

	"runtime-setup/internal/logger"
)

// Record describes the last successful install. It is purely
// informational: the pipeline decides cache hits from the archive digest,
// never from this file.
type Record struct {
	Version     string    `json:"version"`      // Installed runtime version
	SHA256      string    `json:"sha256"`       // Digest of the archive that was extracted
	InstallPath string    `json:"install_path"` // Versioned directory the current link points at
	InstalledAt time.Time `json:"installed_at"` // Completion time of the run, UTC
}

// Load reads the record at path. A missing or unreadable file yields a
// zero record.
func Load(path string) *Record {
	raw, err := os.ReadFile(path)
	if err != nil {
		return &Record{}
	}

	var r Record
	_ = json.Unmarshal(raw, &r)
	return &r
}

// Save writes the record as indented JSON. Errors are logged rather than
// propagated: a failed state write must not fail an install that already
// completed.
func Save(path string, r *Record) {
	raw, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		logger.Error("[ERROR] Failed to marshal state: %v\n", err)
		return
	}

	logger.Debug("[DEBUG] Writing state to %s\n", path)
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		logger.Error("[ERROR] Failed to write state file %s: %v\n", path, err)
	}
}
