package proc

import (
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// defaultPathExt is used on windows when PATHEXT is unset.
const defaultPathExt = ".COM;.EXE;.BAT;.CMD"

// Resolver finds the absolute path of a command on the current host.
type Resolver struct {
	goos      string
	path      string
	pathExt   []string
	fallbacks map[string][]string
	stat      func(string) (fs.FileInfo, error)
}

// ResolverOption customizes a Resolver.
type ResolverOption func(*Resolver)

// WithGOOS overrides the platform used to decide separator and extension rules.
func WithGOOS(goos string) ResolverOption {
	return func(r *Resolver) { r.goos = goos }
}

// WithSearchPath overrides the PATH value.
func WithSearchPath(path string) ResolverOption {
	return func(r *Resolver) { r.path = path }
}

// WithPathExt overrides the executable extensions tried on windows.
func WithPathExt(exts ...string) ResolverOption {
	return func(r *Resolver) { r.pathExt = exts }
}

// WithFallbacks replaces the per-command fallback directory table.
func WithFallbacks(fallbacks map[string][]string) ResolverOption {
	return func(r *Resolver) { r.fallbacks = fallbacks }
}

// NewResolver creates a Resolver for the running host. Options override
// values read from the environment.
func NewResolver(opts ...ResolverOption) *Resolver {
	r := &Resolver{
		goos: runtime.GOOS,
		path: os.Getenv("PATH"),
		stat: os.Stat,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.pathExt == nil && r.goos == "windows" {
		ext := os.Getenv("PATHEXT")
		if ext == "" {
			ext = defaultPathExt
		}
		r.pathExt = splitNonEmpty(ext, ";")
	}
	if r.fallbacks == nil {
		r.fallbacks = defaultFallbacks(r.goos)
	}
	return r
}

// defaultFallbacks lists conventional install locations for npm, which
// is the tool most often missing from a minimal PATH (GUI shells, cron).
func defaultFallbacks(goos string) map[string][]string {
	if goos == "windows" {
		var dirs []string
		if pf := os.Getenv("ProgramFiles"); pf != "" {
			dirs = append(dirs, filepath.Join(pf, "nodejs"))
		}
		if appData := os.Getenv("APPDATA"); appData != "" {
			dirs = append(dirs, filepath.Join(appData, "npm"))
		}
		return map[string][]string{"npm": dirs}
	}
	return map[string][]string{
		"npm": {"/usr/local/bin", "/opt/homebrew/bin", "/usr/bin"},
	}
}

// Resolve returns the path of name and true, or "" and false when the
// command cannot be found. An absolute name is returned unchanged.
func (r *Resolver) Resolve(name string) (string, bool) {
	if name == "" {
		return "", false
	}
	if filepath.IsAbs(name) {
		return name, true
	}

	for _, dir := range splitNonEmpty(r.path, r.listSeparator()) {
		if p, ok := r.lookIn(dir, name); ok {
			return p, true
		}
	}
	for _, dir := range r.fallbacks[name] {
		if p, ok := r.lookIn(dir, name); ok {
			return p, true
		}
	}
	return "", false
}

// lookIn tests the extension-qualified names first, then the bare name.
func (r *Resolver) lookIn(dir, name string) (string, bool) {
	for _, ext := range r.pathExt {
		candidate := filepath.Join(dir, name+strings.ToLower(ext))
		if r.isExecutable(candidate) {
			return candidate, true
		}
	}
	candidate := filepath.Join(dir, name)
	if r.isExecutable(candidate) {
		return candidate, true
	}
	return "", false
}

func (r *Resolver) isExecutable(path string) bool {
	info, err := r.stat(path)
	if err != nil || info.IsDir() {
		return false
	}
	if r.goos == "windows" {
		return true
	}
	return info.Mode().Perm()&0o111 != 0
}

func (r *Resolver) listSeparator() string {
	if r.goos == "windows" {
		return ";"
	}
	return ":"
}

func splitNonEmpty(s, sep string) []string {
	var out []string
	for part := range strings.SplitSeq(s, sep) {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
