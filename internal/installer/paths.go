package installer

import (
	"path/filepath"

	"runtime-setup/internal/config"
)

const (
	// appDir is the directory name the installer claims under each of
	// the user's base directories.
	appDir = "sprout"
	// bundleDir groups everything belonging to the runtime bundle:
	// versioned trees, the cached archive and the current link.
	bundleDir = "runtime"
)

// Paths is every location the pipeline touches, derived once from the
// base-directory settings, the bundle version and the archive filename.
type Paths struct {
	BundleDir      string // <dataHome>/sprout/runtime
	VersionDir     string // <dataHome>/sprout/runtime/<version>
	CurrentLink    string // <dataHome>/sprout/runtime/current
	ArchivePath    string // <dataHome>/sprout/runtime/<filename>
	StatePath      string // <dataHome>/sprout/state.json
	StagingDir     string // <runtimeHome>/sprout
	IncompletePath string // <runtimeHome>/sprout/<filename>.incomplete
	ConfigDir      string // <configHome>/sprout
}

// Plan computes the full path layout. It is a pure function of its
// inputs and never touches disk; callers create the directories they
// need before use.
func Plan(s config.Settings, version, filename string) Paths {
	bundle := filepath.Join(s.DataHome, appDir, bundleDir)
	staging := filepath.Join(s.RuntimeHome, appDir)
	return Paths{
		BundleDir:      bundle,
		VersionDir:     filepath.Join(bundle, version),
		CurrentLink:    filepath.Join(bundle, "current"),
		ArchivePath:    filepath.Join(bundle, filename),
		StatePath:      filepath.Join(s.DataHome, appDir, "state.json"),
		StagingDir:     staging,
		IncompletePath: filepath.Join(staging, filename+".incomplete"),
		ConfigDir:      filepath.Join(s.ConfigHome, appDir),
	}
}
