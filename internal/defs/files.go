// Package defs holds file and directory names shared across seed packages.
package defs

// Files written into a generated project.
const (
	// PackageJSON is the project manifest consumed by every package manager.
	PackageJSON = "package.json"

	// MetadataJSON records the preset a project was created from.
	MetadataJSON = ".seed.json"

	// ReadmeMD is written after dependencies are installed.
	ReadmeMD = "README.md"

	// GitIgnore is the default ignore file for generated projects.
	GitIgnore = ".gitignore"
)

// Lock files, one per supported package manager.
const (
	NpmLock  = "package-lock.json"
	YarnLock = "yarn.lock"
	PnpmLock = "pnpm-lock.yaml"
)

// User-level configuration.
const (
	// RCFile is the user rc file stored in the home directory.
	RCFile = ".seedrc.yaml"

	// RCEnv overrides the rc file location.
	RCEnv = "SEED_RC"

	// EnvPrefix is the prefix for environment overrides read by the config layer.
	EnvPrefix = "SEED"
)
