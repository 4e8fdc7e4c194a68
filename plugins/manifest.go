package plugins

import "fmt"

// Manifest is the static, author-supplied declaration of a unit. It is
// immutable once registered: the registry copies what it needs and never
// writes back into a manifest.
type Manifest struct {
	// ID uniquely identifies the unit among all registered units.
	ID string

	// Name is the human-readable display name of the unit.
	Name string

	// Version is the informational semantic version of the unit.
	Version string

	// Provides lists the capability names this unit exposes to others.
	// A capability name may have at most one provider across all units.
	Provides []string

	// Consumes lists the capability names this unit requires from others.
	Consumes []string

	// DefaultConfig is the base configuration merged (shallowly) with any
	// caller-supplied override during activation.
	DefaultConfig map[string]any
}

// Validate checks the manifest structurally: identity fields must be
// non-empty and capability lists must be proper sets (no empty names, no
// duplicates within a list). Cross-unit uniqueness is enforced later, at
// capability claim time during activation.
func (m *Manifest) Validate() error {
	if m.ID == "" {
		return NewPluginError(m.ID, "register", "manifest has empty id", ErrInvalidManifest)
	}
	if m.Name == "" {
		return NewPluginError(m.ID, "register", "manifest has empty name", ErrInvalidManifest)
	}
	if m.Version == "" {
		return NewPluginError(m.ID, "register", "manifest has empty version", ErrInvalidManifest)
	}
	if err := validateCapabilitySet(m.ID, "provides", m.Provides); err != nil {
		return err
	}
	return validateCapabilitySet(m.ID, "consumes", m.Consumes)
}

func validateCapabilitySet(pluginID, field string, caps []string) error {
	seen := make(map[string]bool, len(caps))
	for _, c := range caps {
		if c == "" {
			return NewPluginError(pluginID, "register",
				fmt.Sprintf("manifest %s contains an empty capability name", field), ErrInvalidManifest)
		}
		if seen[c] {
			return NewPluginError(pluginID, "register",
				fmt.Sprintf("manifest %s lists capability %q twice", field, c), ErrInvalidManifest)
		}
		seen[c] = true
	}
	return nil
}
