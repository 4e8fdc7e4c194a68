package plugins

import (
	"errors"
	"testing"
)

func validManifest() Manifest {
	return Manifest{
		ID:       "viewer.zoom",
		Name:     "Zoom",
		Version:  "1.0.0",
		Provides: []string{"view.zoom"},
		Consumes: []string{"render.pipeline"},
		DefaultConfig: map[string]any{
			"initial": 1.0,
		},
	}
}

func TestManifestValidate(t *testing.T) {
	m := validManifest()
	if err := m.Validate(); err != nil {
		t.Fatalf("valid manifest rejected: %v", err)
	}
}

func TestManifestValidateRejects(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Manifest)
	}{
		{"empty id", func(m *Manifest) { m.ID = "" }},
		{"empty name", func(m *Manifest) { m.Name = "" }},
		{"empty version", func(m *Manifest) { m.Version = "" }},
		{"empty provides entry", func(m *Manifest) { m.Provides = []string{""} }},
		{"duplicate provides entry", func(m *Manifest) { m.Provides = []string{"x", "x"} }},
		{"empty consumes entry", func(m *Manifest) { m.Consumes = []string{"a", ""} }},
		{"duplicate consumes entry", func(m *Manifest) { m.Consumes = []string{"a", "a"} }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := validManifest()
			tc.mutate(&m)
			err := m.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !errors.Is(err, ErrInvalidManifest) {
				t.Errorf("expected ErrInvalidManifest, got %v", err)
			}
		})
	}
}

func TestPluginErrorUnwrap(t *testing.T) {
	err := NewPluginError("viewer.zoom", "initialize", "boom", ErrCapabilityNotMet)
	if !errors.Is(err, ErrCapabilityNotMet) {
		t.Errorf("PluginError must unwrap to its cause, got %v", err)
	}
	if err.Error() == "" {
		t.Error("PluginError message must not be empty")
	}
}
