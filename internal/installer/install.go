package installer

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"runtime-setup/internal/config"
	"runtime-setup/internal/logger"
	"runtime-setup/internal/platform"
	"runtime-setup/internal/state"
)

// Installer runs the download-verify-extract-publish pipeline for one
// resolved bundle. All inputs are fixed at construction; Run is a
// straight line through the pipeline with no branching back.
type Installer struct {
	Spec    platform.BundleSpec
	Version string
	Paths   Paths
	Fetcher *Fetcher
}

// New plans the path layout for the resolved bundle and folds any user
// mirror overrides from mirrors.yaml into the mirror list. User mirrors
// are tried first, since they exist to route around unreachable
// defaults; the built-in mirrors keep their declared relative order.
func New(cfg config.Settings, spec platform.BundleSpec, version string) (*Installer, error) {
	paths := Plan(cfg, version, spec.Filename)

	bases, err := config.LoadMirrors(paths.ConfigDir)
	if err != nil {
		return nil, err
	}
	if len(bases) > 0 {
		mirrors := make([]string, 0, len(bases)+len(spec.Mirrors))
		for _, base := range bases {
			mirrors = append(mirrors, strings.TrimRight(base, "/")+"/"+spec.Filename)
		}
		spec.Mirrors = append(mirrors, spec.Mirrors...)
	}

	return &Installer{
		Spec:    spec,
		Version: version,
		Paths:   paths,
		Fetcher: NewFetcher(),
	}, nil
}

// stripComponents is how many leading path components the bundle
// archives carry above the real payload tree.
const stripComponents = 2

// Run executes the pipeline: ensure directories, reuse or download the
// archive, clear and repopulate the versioned install directory, and
// repoint the current link. Any failure before extraction leaves the
// filesystem as it was found. A failure between clearing the old version
// directory and finishing extraction leaves a partial tree; the next run
// repairs it from the cached archive.
func (inst *Installer) Run(ctx context.Context) error {
	p := inst.Paths

	if prev := state.Load(p.StatePath); prev.Version != "" && prev.Version != inst.Version {
		logger.Info("[INFO] Replacing sprout runtime v%s with v%s\n", prev.Version, inst.Version)
	}

	if err := os.MkdirAll(p.StagingDir, 0o700); err != nil {
		return fmt.Errorf("create staging dir: %w", err)
	}
	if err := os.MkdirAll(p.BundleDir, 0o755); err != nil {
		return fmt.Errorf("create bundle dir: %w", err)
	}

	// The staging file never outlives a run, whichever way the run ends.
	defer os.Remove(p.IncompletePath)

	if VerifyFile(p.ArchivePath, inst.Spec.SHA256) {
		logger.Info("[INFO] Using cached archive %s\n", p.ArchivePath)
	} else {
		logger.Info("[INFO] Downloading %s\n", inst.Spec.Filename)
		if err := inst.Fetcher.Fetch(ctx, inst.Spec.Mirrors, p.IncompletePath, inst.Spec.SHA256); err != nil {
			return err
		}
		if err := moveFile(p.IncompletePath, p.ArchivePath); err != nil {
			return fmt.Errorf("move archive into cache: %w", err)
		}
	}

	// Destructive from here on: the verified archive is guaranteed
	// present, so the old tree can go.
	if err := os.RemoveAll(p.VersionDir); err != nil {
		return fmt.Errorf("clear old install: %w", err)
	}
	if err := os.MkdirAll(p.VersionDir, 0o755); err != nil {
		return fmt.Errorf("create version dir: %w", err)
	}
	if err := ExtractArchive(p.ArchivePath, p.VersionDir, stripComponents); err != nil {
		return fmt.Errorf("extract %s: %w", p.ArchivePath, err)
	}

	if err := publishCurrent(p.VersionDir, p.CurrentLink); err != nil {
		return err
	}

	state.Save(p.StatePath, &state.Record{
		Version:     inst.Version,
		SHA256:      inst.Spec.SHA256,
		InstallPath: p.VersionDir,
		InstalledAt: time.Now().UTC(),
	})

	logger.Info("[INFO] Installed sprout runtime v%s -> %s\n",
		inst.Version, filepath.Join(p.CurrentLink, "bin", "sprout"))
	return nil
}

// publishCurrent repoints the "current" symlink at dir. The link is
// created under a temporary name and renamed over the old one, so there
// is never a window where the link is missing.
func publishCurrent(dir, link string) error {
	tmp := link + ".new"
	os.Remove(tmp)
	if err := os.Symlink(dir, tmp); err != nil {
		return fmt.Errorf("create current symlink: %w", err)
	}
	if err := os.Rename(tmp, link); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("publish current symlink: %w", err)
	}
	return nil
}

// moveFile renames src to dst, falling back to a copy-then-rename inside
// the destination directory when the two live on different filesystems
// (the runtime dir is often a tmpfs). Either way dst only ever appears
// fully written.
func moveFile(src, dst string) error {
	if err := os.Rename(src, dst); err == nil {
		return nil
	}

	partial := dst + ".partial"
	if err := copyFile(src, partial); err != nil {
		os.Remove(partial)
		return err
	}
	if err := os.Rename(partial, dst); err != nil {
		os.Remove(partial)
		return err
	}
	return os.Remove(src)
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
