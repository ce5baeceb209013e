package pkgmgr

import (
	"context"
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Version returns the installed tool's version.
func (a *Adapter) Version(ctx context.Context) (*semver.Version, error) {
	out, err := a.capture(ctx, []string{"--version"})
	if err != nil {
		return nil, err
	}
	raw := strings.TrimSpace(out.Stdout)
	v, err := semver.NewVersion(raw)
	if err != nil {
		return nil, fmt.Errorf("parse %s version %q: %w", a.desc.Name, raw, err)
	}
	return v, nil
}

// CheckVersion verifies the installed tool satisfies the descriptor's
// minimum version.
func (a *Adapter) CheckVersion(ctx context.Context) error {
	v, err := a.Version(ctx)
	if err != nil {
		return err
	}
	c, err := semver.NewConstraint(a.desc.MinVersion)
	if err != nil {
		return fmt.Errorf("parse %s constraint %q: %w", a.desc.Name, a.desc.MinVersion, err)
	}
	if !c.Check(v) {
		return fmt.Errorf("%w: %s %s does not satisfy %s", ErrUnsupportedVersion, a.desc.Name, v, a.desc.MinVersion)
	}
	return nil
}
