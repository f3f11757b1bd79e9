package installer

import (
	"testing"

	"runtime-setup/internal/config"
)

func TestPlan(t *testing.T) {
	s := config.Settings{
		DataHome:    "/home/u/.local/share",
		RuntimeHome: "/run/user/1000",
		ConfigHome:  "/home/u/.config",
	}
	p := Plan(s, "1.4.2", "sprout-1.4.2-linux-x86_64.tar.gz")

	tests := []struct {
		name, got, want string
	}{
		{"BundleDir", p.BundleDir, "/home/u/.local/share/sprout/runtime"},
		{"VersionDir", p.VersionDir, "/home/u/.local/share/sprout/runtime/1.4.2"},
		{"CurrentLink", p.CurrentLink, "/home/u/.local/share/sprout/runtime/current"},
		{"ArchivePath", p.ArchivePath, "/home/u/.local/share/sprout/runtime/sprout-1.4.2-linux-x86_64.tar.gz"},
		{"StatePath", p.StatePath, "/home/u/.local/share/sprout/state.json"},
		{"StagingDir", p.StagingDir, "/run/user/1000/sprout"},
		{"IncompletePath", p.IncompletePath, "/run/user/1000/sprout/sprout-1.4.2-linux-x86_64.tar.gz.incomplete"},
		{"ConfigDir", p.ConfigDir, "/home/u/.config/sprout"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s = %q, want %q", tt.name, tt.got, tt.want)
		}
	}
}

func TestPlanIsDeterministic(t *testing.T) {
	s := config.Settings{DataHome: "/d", RuntimeHome: "/r", ConfigHome: "/c"}
	if Plan(s, "2.0.0", "f.tar.gz") != Plan(s, "2.0.0", "f.tar.gz") {
		t.Error("Plan is not deterministic")
	}
}
