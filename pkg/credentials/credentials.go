// Package credentials stores Responses API keys per profile in
// credentials.toml inside the .ores/ directory.
package credentials

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/BurntSushi/toml"

	"github.com/papercomputeco/ores/pkg/dotdir"
)

const (
	credentialsFile = "credentials.toml"

	currentVersion = 0

	// DefaultProfile is used when no profile is named.
	DefaultProfile = "default"

	// EnvAPIKey takes precedence over any stored key.
	EnvAPIKey = "ORES_API_KEY"

	// EnvOpenAIAPIKey is consulted when no key is stored.
	EnvOpenAIAPIKey = "OPENAI_API_KEY"
)

// Source says where a resolved key came from.
type Source string

const (
	SourceEnv     Source = "env"
	SourceFile    Source = "file"
	SourceOpenAI  Source = "openai-env"
	SourceMissing Source = ""
)

// ErrNoAPIKey is returned by Resolve when no key is available.
var ErrNoAPIKey = errors.New("no API key: run 'ores auth' or set " + EnvAPIKey)

// Manager reads and writes credentials.toml.
type Manager struct {
	targetPath string
}

// NewManager creates a Manager for the .ores/ directory resolved from
// override. ~/.ores/ is created when nothing else resolves.
func NewManager(override string) (*Manager, error) {
	target, err := dotdir.NewManager().EnsureTarget(override)
	if err != nil {
		return nil, err
	}

	return &Manager{targetPath: filepath.Join(target, credentialsFile)}, nil
}

// Load reads credentials.toml. A missing file yields empty credentials.
func (m *Manager) Load() (*Credentials, error) {
	data, err := os.ReadFile(m.targetPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Credentials{
				Version:  currentVersion,
				Profiles: make(map[string]ProfileCredential),
			}, nil
		}
		return nil, fmt.Errorf("reading credentials: %w", err)
	}

	creds := &Credentials{}
	if err := toml.Unmarshal(data, creds); err != nil {
		return nil, fmt.Errorf("parsing credentials: %w", err)
	}

	if creds.Profiles == nil {
		creds.Profiles = make(map[string]ProfileCredential)
	}

	return creds, nil
}

// Save writes credentials.toml with 0600 permissions.
func (m *Manager) Save(creds *Credentials) error {
	if creds == nil {
		return errors.New("cannot save nil credentials")
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(creds); err != nil {
		return fmt.Errorf("encoding credentials: %w", err)
	}

	if err := os.WriteFile(m.targetPath, buf.Bytes(), 0o600); err != nil {
		return fmt.Errorf("writing credentials: %w", err)
	}

	return nil
}

// Set stores the credential of a profile.
func (m *Manager) Set(profile string, cred ProfileCredential) error {
	creds, err := m.Load()
	if err != nil {
		return err
	}

	creds.Profiles[profileName(profile)] = cred

	return m.Save(creds)
}

// Get returns the stored credential of a profile and whether one exists.
func (m *Manager) Get(profile string) (ProfileCredential, bool, error) {
	creds, err := m.Load()
	if err != nil {
		return ProfileCredential{}, false, err
	}

	cred, ok := creds.Profiles[profileName(profile)]
	return cred, ok, nil
}

// Remove deletes the stored credential of a profile.
func (m *Manager) Remove(profile string) error {
	creds, err := m.Load()
	if err != nil {
		return err
	}

	name := profileName(profile)
	if _, ok := creds.Profiles[name]; !ok {
		return fmt.Errorf("no stored credentials for profile %q", name)
	}
	delete(creds.Profiles, name)

	return m.Save(creds)
}

// ListProfiles returns the names of profiles with stored credentials, sorted.
func (m *Manager) ListProfiles() ([]string, error) {
	creds, err := m.Load()
	if err != nil {
		return nil, err
	}

	profiles := make([]string, 0, len(creds.Profiles))
	for name := range creds.Profiles {
		profiles = append(profiles, name)
	}
	sort.Strings(profiles)

	return profiles, nil
}

// Resolve finds the API key for a profile: ORES_API_KEY, then the stored
// key, then OPENAI_API_KEY.
func (m *Manager) Resolve(profile string) (ProfileCredential, Source, error) {
	if key := os.Getenv(EnvAPIKey); key != "" {
		return ProfileCredential{APIKey: key}, SourceEnv, nil
	}

	cred, ok, err := m.Get(profile)
	if err != nil {
		return ProfileCredential{}, SourceMissing, err
	}
	if ok && cred.APIKey != "" {
		return cred, SourceFile, nil
	}

	if key := os.Getenv(EnvOpenAIAPIKey); key != "" {
		return ProfileCredential{APIKey: key}, SourceOpenAI, nil
	}

	return ProfileCredential{}, SourceMissing, ErrNoAPIKey
}

// GetTarget returns the path of credentials.toml.
func (m *Manager) GetTarget() string {
	return m.targetPath
}

func profileName(profile string) string {
	if profile == "" {
		return DefaultProfile
	}
	return profile
}
