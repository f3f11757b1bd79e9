package main

import (
	"runtime-setup/cmd"
)

// runtime-setup provisions the sprout runtime on a workstation:
//   - Resolves the bundle built for the host platform from a static
//     table keyed by the exact OS and architecture strings
//   - Downloads it from the first mirror that serves content matching
//     the expected SHA-256, caching the verified archive
//   - Replaces the prior extracted installation and repoints a stable
//     "current" symlink at the fresh versioned directory
//
// The pipeline is strictly sequential and idempotent: re-running on a
// machine that is already up to date reduces to a digest check, a
// re-extract and a relink. Behavior is entirely environment-driven (the
// standard per-user base-directory variables); the runtime version is
// compiled in.
func main() {
	cmd.Execute()
}
