// Package platform maps the host operating system and CPU architecture
// to the runtime bundle built for it. Keys are the exact strings uname
// reports; there is no normalization and no partial matching, so
// Darwin/x86_64 and Darwin/arm64 are distinct entries with distinct
// payloads and digests.
package platform

import (
	"errors"
	"fmt"
)

// Version is the compiled-in runtime version this build installs.
const Version = "1.4.2"

// The two mirror families every bundle is served from, in priority
// order: the content-addressed registry blob first, the tagged GitHub
// release asset second. Both must serve byte-identical content for a
// given digest.
const (
	blobURLFormat    = "https://ghcr.io/v2/sprout-run/sprout/blobs/sha256:%s"
	releaseURLFormat = "https://github.com/sprout-run/sprout/releases/download/v%s/%s"
)

// ErrUnsupportedPlatform is returned by Resolve for any OS/arch
// combination without a published bundle.
var ErrUnsupportedPlatform = errors.New("unsupported platform")

// Key identifies a host platform by the strings uname reports.
type Key struct {
	OS   string // e.g. "Darwin", "Linux"
	Arch string // e.g. "arm64", "x86_64", "aarch64"
}

func (k Key) String() string {
	return k.OS + "/" + k.Arch
}

// BundleSpec describes the runtime bundle for one platform: the archive
// name, its expected SHA-256 in lowercase hex, and the ordered list of
// mirrors that serve it.
type BundleSpec struct {
	Filename string
	SHA256   string
	Mirrors  []string
}

// bundles is the static table of published per-platform archives.
var bundles = map[Key]struct {
	filename string
	sha256   string
}{
	{OS: "Darwin", Arch: "arm64"}: {
		filename: "sprout-1.4.2-darwin-arm64.tar.gz",
		sha256:   "46592d255a24e56e953c025e6b04253b35989fa3caaf6b1742f69e5ad9d13164",
	},
	{OS: "Darwin", Arch: "x86_64"}: {
		filename: "sprout-1.4.2-darwin-x86_64.tar.gz",
		sha256:   "22364d3f3982e23dd51dd44038d5a397b2b0775ca4aa3448eb237837b78aad37",
	},
	{OS: "Linux", Arch: "x86_64"}: {
		filename: "sprout-1.4.2-linux-x86_64.tar.gz",
		sha256:   "b96c579a14106902a04750fd78948afdcf5208690fa6e596fd3dd6ea13301d01",
	},
	{OS: "Linux", Arch: "aarch64"}: {
		filename: "sprout-1.4.2-linux-aarch64.tar.gz",
		sha256:   "434fdf775390210df83f34f3e8c82ecc2cc7f18f44a163c57e0192e08e42b57f",
	},
}

// Resolve returns the bundle published for the given platform key. It
// performs no I/O; an unknown combination is an error and the caller is
// expected to abort before touching the network or the filesystem.
func Resolve(osName, arch string) (BundleSpec, error) {
	b, ok := bundles[Key{OS: osName, Arch: arch}]
	if !ok {
		return BundleSpec{}, fmt.Errorf("%w: %s/%s", ErrUnsupportedPlatform, osName, arch)
	}
	return BundleSpec{
		Filename: b.filename,
		SHA256:   b.sha256,
		Mirrors: []string{
			fmt.Sprintf(blobURLFormat, b.sha256),
			fmt.Sprintf(releaseURLFormat, Version, b.filename),
		},
	}, nil
}

// Supported returns every platform key with a published bundle.
func Supported() []Key {
	keys := make([]Key, 0, len(bundles))
	for k := range bundles {
		keys = append(keys, k)
	}
	return keys
}

// goRuntimeKey maps Go runtime identifiers onto the uname vocabulary the
// bundle table is keyed by. Used when uname itself is unavailable.
func goRuntimeKey(goos, goarch string) Key {
	var k Key
	switch goos {
	case "darwin":
		k.OS = "Darwin"
	case "linux":
		k.OS = "Linux"
	default:
		k.OS = goos
	}
	switch goarch {
	case "amd64":
		k.Arch = "x86_64"
	case "arm64":
		if k.OS == "Linux" {
			k.Arch = "aarch64"
		} else {
			k.Arch = "arm64"
		}
	default:
		k.Arch = goarch
	}
	return k
}
