package pkgmgr

import "github.com/modu-ai/seedkit/internal/proc"

// detectOrder is the preference order when nothing chose a manager.
var detectOrder = []Variant{Yarn, Pnpm, Npm}

// Detect returns the first variant whose executable lookup can find, or
// Npm when none is installed.
func Detect(lookup proc.Lookup) Variant {
	for _, v := range detectOrder {
		if _, ok := lookup.Resolve(v.Descriptor().Executable); ok {
			return v
		}
	}
	return Npm
}
