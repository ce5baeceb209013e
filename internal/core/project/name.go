package project

import (
	"net/url"
	"slices"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// maxNameLength is the npm registry limit for package names.
const maxNameLength = 214

// reservedNames cannot be published and would shadow Node.js core modules.
var reservedNames = []string{
	"node_modules", "favicon.ico",
	"assert", "async_hooks", "buffer", "child_process", "cluster", "console",
	"constants", "crypto", "dgram", "diagnostics_channel", "dns", "domain",
	"events", "fs", "http", "http2", "https", "inspector", "module", "net",
	"os", "path", "perf_hooks", "process", "punycode", "querystring",
	"readline", "repl", "stream", "string_decoder", "sys", "timers", "tls",
	"trace_events", "tty", "url", "util", "v8", "vm", "wasi",
	"worker_threads", "zlib",
}

// NormalizeName returns name in Unicode NFC form, so visually identical
// names typed on different platforms validate the same way.
func NormalizeName(name string) string {
	return norm.NFC.String(name)
}

// ValidateName reports whether name can be used as the package name of a
// new project. It touches nothing on disk.
func ValidateName(name string) error {
	name = NormalizeName(name)
	var problems []string

	if name == "" {
		return &ValidationError{Name: name, Problems: []string{"name must not be empty"}}
	}
	if strings.TrimSpace(name) != name {
		problems = append(problems, "name cannot contain leading or trailing spaces")
	}
	if strings.ContainsAny(name, " \t") {
		problems = append(problems, "name cannot contain spaces")
	}
	if strings.HasPrefix(name, ".") {
		problems = append(problems, "name cannot start with a period")
	}
	if strings.HasPrefix(name, "_") {
		problems = append(problems, "name cannot start with an underscore")
	}
	if len(name) > maxNameLength {
		problems = append(problems, "name cannot be longer than 214 characters")
	}
	if strings.ToLower(name) != name {
		problems = append(problems, "name cannot contain capital letters")
	}
	if strings.ContainsAny(name, "~'!()*") {
		problems = append(problems, `name cannot contain special characters ("~'!()*")`)
	}
	if !urlSafe(name) {
		problems = append(problems, "name can only contain URL-friendly characters")
	}

	reserved := slices.Contains(reservedNames, strings.ToLower(name))
	if reserved {
		problems = append(problems, name+" is a reserved name")
	}

	if len(problems) > 0 {
		return &ValidationError{Name: name, Problems: problems, Reserved: reserved}
	}
	return nil
}

// urlSafe allows a single scope segment ("@scope/name"); every other
// character must survive path escaping unchanged.
func urlSafe(name string) bool {
	if scope, pkg, ok := strings.Cut(name, "/"); ok && strings.HasPrefix(scope, "@") {
		return len(scope) > 1 && pkg != "" &&
			url.PathEscape(scope[1:]) == scope[1:] && url.PathEscape(pkg) == pkg
	}
	return url.PathEscape(name) == name
}
