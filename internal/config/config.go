// Package config holds the flag-bound global settings and the saved profile
// file with service URLs and tokens.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Global carries the settings shared by every command. Flags bind directly to
// these fields; empty fields are hydrated from the saved profile.
var Global struct {
	URL1   string
	URL2   string
	Token1 string
	Token2 string
	URL    string
	Token  string
	Debug  bool
}

// SiteProfile holds the saved endpoint and token of one service.
type SiteProfile struct {
	URL   string `yaml:"url"`
	Token string `yaml:"token,omitempty"`
}

// Profile is the saved configuration file. Values may reference environment
// variables as ${VAR}; they are expanded on load.
type Profile struct {
	Site1 SiteProfile `yaml:"site1"`
	Site2 SiteProfile `yaml:"site2"`
	Xray  SiteProfile `yaml:"xray"`
}

// DefaultProfilePath returns the profile location under the user's home
// directory.
func DefaultProfilePath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".jfrog-sagen", "config.yaml"), nil
}

// LoadProfile reads a profile file, expanding ${VAR} environment references
// in its content before parsing.
func LoadProfile(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read profile: %w", err)
	}
	expanded := os.Expand(string(data), os.Getenv)
	var profile Profile
	if err := yaml.Unmarshal([]byte(expanded), &profile); err != nil {
		return nil, fmt.Errorf("parse profile: %w", err)
	}
	return &profile, nil
}

// SaveProfile writes the profile with owner-only permissions, creating the
// profile directory when needed.
func SaveProfile(path string, profile *Profile) error {
	data, err := yaml.Marshal(profile)
	if err != nil {
		return fmt.Errorf("marshal profile: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create profile directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write profile: %w", err)
	}
	return nil
}

// Hydrate fills empty Global fields from the profile. Flags win over saved
// values.
func Hydrate(profile *Profile) {
	if profile == nil {
		return
	}
	if Global.URL1 == "" {
		Global.URL1 = profile.Site1.URL
	}
	if Global.Token1 == "" {
		Global.Token1 = profile.Site1.Token
	}
	if Global.URL2 == "" {
		Global.URL2 = profile.Site2.URL
	}
	if Global.Token2 == "" {
		Global.Token2 = profile.Site2.Token
	}
	if Global.URL == "" {
		Global.URL = profile.Xray.URL
	}
	if Global.Token == "" {
		Global.Token = profile.Xray.Token
	}
}
