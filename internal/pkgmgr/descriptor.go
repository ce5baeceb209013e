package pkgmgr

import (
	"slices"
	"strings"

	"github.com/modu-ai/seedkit/internal/defs"
)

// registryPlaceholder is replaced by the registry URL in RegistryFlag.
const registryPlaceholder = "{url}"

// Descriptor is the static argument table for one package manager.
// Every variant-specific behavior of Adapter is read from here.
type Descriptor struct {
	Name       string // Canonical name, also the config value
	Executable string // Command looked up on PATH
	LockFile   string // Lock file written next to package.json
	MinVersion string // semver constraint the installed tool must satisfy

	InstallAll []string // Install everything in package.json; may be empty
	Add        []string // Add runtime dependencies
	AddDev     []string // Dev-specific add base, empty when DevFlag is used
	DevFlag    string   // Appended to Add when AddDev is empty
	AddGlobal  []string // Add packages globally
	Uninstall  []string
	Update     []string
	List       []string // Must print JSON
	Outdated   []string // Must print JSON
	CleanCache []string
	LockOnly   []string // Write the lock file without installing
	Run        []string // Run a package.json script

	// ValidateLock checks the lock file against package.json without
	// touching node_modules.
	ValidateLock []string

	ScriptArgSeparator string // Placed between script name and its arguments

	ProductionFlag string
	ForceFlag      string
	NoOptionalFlag string
	DryRunFlag     string
	RegistryFlag   []string // Tokens containing {url}
}

// descriptors is indexed by Variant and sized by variantCount.
// TestDescriptors_Complete fails when a variant has no entry.
var descriptors = [variantCount]Descriptor{
	Npm: {
		Name:       "npm",
		Executable: "npm",
		LockFile:   defs.NpmLock,
		MinVersion: ">= 6.0.0",

		InstallAll: []string{"install", "--loglevel", "error"},
		Add:        []string{"install", "--loglevel", "error"},
		AddDev:     []string{"install", "--loglevel", "error", "--save-dev"},
		AddGlobal:  []string{"install", "--global"},
		Uninstall:  []string{"uninstall"},
		Update:     []string{"update"},
		List:       []string{"ls", "--json", "--depth=0"},
		Outdated:   []string{"outdated", "--json"},
		CleanCache: []string{"cache", "clean", "--force"},
		LockOnly:   []string{"install", "--package-lock-only"},
		Run:        []string{"run"},

		ValidateLock: []string{"install", "--dry-run", "--package-lock-only"},

		ScriptArgSeparator: "--",

		ProductionFlag: "--omit=dev",
		ForceFlag:      "--force",
		NoOptionalFlag: "--omit=optional",
		DryRunFlag:     "--dry-run",
		RegistryFlag:   []string{"--registry=" + registryPlaceholder},
	},
	Yarn: {
		Name:       "yarn",
		Executable: "yarn",
		LockFile:   defs.YarnLock,
		MinVersion: ">= 1.10.0",

		InstallAll: nil,
		Add:        []string{"add"},
		DevFlag:    "--dev",
		AddGlobal:  []string{"global", "add"},
		Uninstall:  []string{"remove"},
		Update:     []string{"upgrade"},
		List:       []string{"list", "--json", "--depth=0"},
		Outdated:   []string{"outdated", "--json"},
		CleanCache: []string{"cache", "clean"},
		LockOnly:   []string{"install"},
		Run:        []string{"run"},

		ValidateLock: []string{"check", "--integrity"},

		ProductionFlag: "--production",
		ForceFlag:      "--force",
		NoOptionalFlag: "--ignore-optional",
		DryRunFlag:     "--frozen-lockfile",
		RegistryFlag:   []string{"--registry", registryPlaceholder},
	},
	Pnpm: {
		Name:       "pnpm",
		Executable: "pnpm",
		LockFile:   defs.PnpmLock,
		MinVersion: ">= 7.0.0",

		InstallAll: []string{"install", "--reporter", "silent"},
		Add:        []string{"add", "--reporter", "silent"},
		DevFlag:    "--save-dev",
		AddGlobal:  []string{"add", "--global"},
		Uninstall:  []string{"remove"},
		Update:     []string{"update"},
		List:       []string{"list", "--json", "--depth=0"},
		Outdated:   []string{"outdated", "--format", "json"},
		CleanCache: []string{"store", "prune"},
		LockOnly:   []string{"install", "--lockfile-only"},
		Run:        []string{"run"},

		ValidateLock: []string{"install", "--frozen-lockfile", "--lockfile-only"},

		ScriptArgSeparator: "--",

		ProductionFlag: "--prod",
		ForceFlag:      "--force",
		NoOptionalFlag: "--no-optional",
		DryRunFlag:     "--frozen-lockfile",
		RegistryFlag:   []string{"--registry=" + registryPlaceholder},
	},
}

// registryArgs expands RegistryFlag for url. An empty url yields nil.
func (d Descriptor) registryArgs(url string) []string {
	if url == "" {
		return nil
	}
	out := make([]string, len(d.RegistryFlag))
	for i, tok := range d.RegistryFlag {
		out[i] = strings.ReplaceAll(tok, registryPlaceholder, url)
	}
	return out
}

// base returns a copy of a template so callers can append freely.
func base(tmpl []string) []string {
	return slices.Clone(tmpl)
}
