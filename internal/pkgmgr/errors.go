// Package pkgmgr drives the npm, yarn and pnpm command line tools through
// one adapter whose behavior is selected entirely by a static descriptor
// table.
package pkgmgr

import "errors"

// Sentinel errors for the pkgmgr package.
var (
	// ErrUnknownVariant is returned when a package manager name is not supported.
	ErrUnknownVariant = errors.New("pkgmgr: unknown package manager")

	// ErrUnsupportedVersion is returned when the installed tool is older than the minimum.
	ErrUnsupportedVersion = errors.New("pkgmgr: unsupported package manager version")

	// ErrNoPackages is returned when an operation requires at least one package name.
	ErrNoPackages = errors.New("pkgmgr: no packages given")
)
