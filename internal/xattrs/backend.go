// Package xattrs provides the platform extended-attribute backend used to
// probe for and remove named attributes from files.
//
// A Backend is chosen once at process start (see ForPlatform) and injected
// into the per-file worker; core logic never inspects the operating system
// itself. All backend failures degrade to "attribute absent" at the
// RemoveAttr layer, so no backend error ever aborts a run.
package xattrs

import (
	"errors"

	"github.com/pkg/xattr"
)

// Backend abstracts the platform mechanism for extended-attribute access.
// Implementations must be safe for concurrent use.
type Backend interface {
	// Name identifies the backend for diagnostics.
	Name() string

	// Supported reports whether this backend can ever succeed on the
	// current platform.
	Supported() bool

	// Probe reports whether the named attribute is present on path.
	// An absent attribute is (false, nil); other failures return the
	// underlying error alongside false.
	Probe(path, name string) (bool, error)

	// Remove deletes the named attribute from path.
	Remove(path, name string) error
}

// ForPlatform selects the backend for the current operating system: the
// native xattr backend where the platform supports extended attributes
// (Linux, macOS, the BSDs), otherwise a no-op backend that reports every
// attribute absent.
func ForPlatform() Backend {
	if xattr.XATTR_SUPPORTED {
		return &nativeBackend{}
	}
	return &noopBackend{}
}

// nativeBackend talks to the filesystem through the xattr syscall wrappers.
type nativeBackend struct{}

func (b *nativeBackend) Name() string    { return "native" }
func (b *nativeBackend) Supported() bool { return true }

// Probe reads the attribute value to test for presence. The read result is
// discarded; only existence matters.
func (b *nativeBackend) Probe(path, name string) (bool, error) {
	_, err := xattr.Get(path, name)
	if err == nil {
		return true, nil
	}
	if isAbsent(err) {
		return false, nil
	}
	return false, err
}

func (b *nativeBackend) Remove(path, name string) error {
	return xattr.Remove(path, name)
}

// isAbsent reports whether err means the attribute does not exist.
// pkg/xattr wraps the raw errno in *xattr.Error; errors.Is unwraps it.
func isAbsent(err error) bool {
	return errors.Is(err, xattr.ENOATTR)
}

// noopBackend is used on platforms without extended-attribute support.
// Every probe reports absent and removal is rejected.
type noopBackend struct{}

func (b *noopBackend) Name() string    { return "noop" }
func (b *noopBackend) Supported() bool { return false }

func (b *noopBackend) Probe(path, name string) (bool, error) {
	return false, nil
}

func (b *noopBackend) Remove(path, name string) error {
	return errors.New("extended attributes not supported on this platform")
}
