package installer

import (
	"fmt"
	"os/exec"
	"strings"
)

// requirement is one host tool the preflight demands, satisfiable by any
// of several interchangeable commands.
type requirement struct {
	name string   // reported when missing
	any  []string // alternatives, first one found on PATH wins
}

// requiredTools is the host toolset the installed runtime's own
// bootstrap scripts depend on: an HTTP client, a SHA-256 digest tool,
// archive extraction, decompression, and field extraction.
var requiredTools = []requirement{
	{name: "curl", any: []string{"curl"}},
	{name: "sha256sum or shasum", any: []string{"sha256sum", "shasum"}},
	{name: "tar", any: []string{"tar"}},
	{name: "gzip", any: []string{"gzip"}},
	{name: "cut", any: []string{"cut"}},
}

// lookPath is swapped out by tests.
var lookPath = exec.LookPath

// CheckRequirements verifies every required host tool is present on the
// search path. All missing tools are accumulated into a single report so
// the user can fix them in one pass instead of replaying failures.
func CheckRequirements() error {
	var missing []string
	for _, req := range requiredTools {
		found := false
		for _, tool := range req.any {
			if _, err := lookPath(tool); err == nil {
				found = true
				break
			}
		}
		if !found {
			missing = append(missing, req.name)
		}
	}
	if len(missing) == 0 {
		return nil
	}

	noun := "tool"
	if len(missing) > 1 {
		noun = "tools"
	}
	return fmt.Errorf("missing %d required %s: %s", len(missing), noun, strings.Join(missing, ", "))
}
