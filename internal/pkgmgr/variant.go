package pkgmgr

import (
	"fmt"
	"strings"
)

// Variant is one of the supported package manager dialects. The set is
// closed: values outside Npm..Pnpm are never produced by this package.
type Variant uint8

const (
	Npm Variant = iota
	Yarn
	Pnpm

	variantCount
)

// Variants returns every supported variant in table order.
func Variants() []Variant {
	out := make([]Variant, 0, variantCount)
	for v := range variantCount {
		out = append(out, v)
	}
	return out
}

// ParseVariant maps a name such as "yarn" to its Variant. Unknown names
// are an error; there is no fallback variant.
func ParseVariant(name string) (Variant, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	for _, v := range Variants() {
		if descriptors[v].Name == key {
			return v, nil
		}
	}
	return 0, fmt.Errorf("%w: %q (want one of %s)", ErrUnknownVariant, name, strings.Join(Names(), ", "))
}

// Names returns the names of all supported variants.
func Names() []string {
	out := make([]string, 0, variantCount)
	for _, v := range Variants() {
		out = append(out, descriptors[v].Name)
	}
	return out
}

// Valid reports whether v is a member of the supported set.
func (v Variant) Valid() bool {
	return v < variantCount
}

func (v Variant) String() string {
	if !v.Valid() {
		return fmt.Sprintf("Variant(%d)", uint8(v))
	}
	return descriptors[v].Name
}

// Descriptor returns the static descriptor for v.
func (v Variant) Descriptor() Descriptor {
	return descriptors[v]
}

// MarshalText implements encoding.TextMarshaler.
func (v Variant) MarshalText() ([]byte, error) {
	if !v.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownVariant, uint8(v))
	}
	return []byte(v.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (v *Variant) UnmarshalText(text []byte) error {
	parsed, err := ParseVariant(string(text))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}
