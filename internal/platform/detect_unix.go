//go:build darwin || linux

package platform

import (
	"bytes"
	"runtime"

	"golang.org/x/sys/unix"
)

// Detect returns the host platform key exactly as uname reports it.
// If the uname syscall fails it falls back to mapping the Go runtime
// identifiers, so resolution always has a key to look up.
func Detect() Key {
	var uts unix.Utsname
	if err := unix.Uname(&uts); err != nil {
		return goRuntimeKey(runtime.GOOS, runtime.GOARCH)
	}
	return Key{
		OS:   utsField(uts.Sysname[:]),
		Arch: utsField(uts.Machine[:]),
	}
}

// utsField converts a NUL-padded utsname field to a string.
func utsField(b []byte) string {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	return string(b)
}
