// Package prefs persists the last-used connection form values between runs.
//
// Non-secret values live in a YAML file. The ticket-cache passphrase, when
// one was committed, goes to a SecretStore instead and never touches disk.
package prefs

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/acolita/hdfs-connect/internal/adapters/realfs"
	"github.com/acolita/hdfs-connect/internal/connform"
	"github.com/acolita/hdfs-connect/internal/ports"
	"github.com/acolita/hdfs-connect/internal/security"
)

const fileVersion = 1

// document is the on-disk layout of the preferences file.
type document struct {
	Version  int             `yaml:"version"`
	LastUsed connform.Fields `yaml:"last_used"`
}

// Store reads and writes the preferences file.
type Store struct {
	path    string
	profile string
	fs      ports.FileSystem
	secrets ports.SecretStore
	mu      sync.Mutex
}

// Option configures a Store.
type Option func(*Store)

// WithFileSystem sets the filesystem used by Store.
func WithFileSystem(fs ports.FileSystem) Option {
	return func(s *Store) {
		s.fs = fs
	}
}

// WithSecretStore keeps the passphrase in secrets. Without one the
// passphrase is not persisted.
func WithSecretStore(secrets ports.SecretStore) Option {
	return func(s *Store) {
		s.secrets = secrets
	}
}

// WithProfile sets the profile name the passphrase is stored under.
func WithProfile(profile string) Option {
	return func(s *Store) {
		s.profile = profile
	}
}

// NewStore creates a store for the preferences file at path.
func NewStore(path string, opts ...Option) *Store {
	s := &Store{
		path:    path,
		profile: "default",
		fs:      realfs.New(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Path returns the preferences file path.
func (s *Store) Path() string {
	return s.path
}

// Load returns the saved values laid over base. Values absent from the file
// keep base's. found reports whether a non-empty preferences file existed.
func (s *Store) Load(base connform.Fields) (f connform.Fields, found bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.fs.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return base, false, nil
		}
		return base, false, fmt.Errorf("read preferences: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return base, false, nil
	}

	doc := document{LastUsed: base}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return base, false, fmt.Errorf("parse preferences: %w", err)
	}
	if doc.Version > fileVersion {
		return base, false, fmt.Errorf("preferences version %d is newer than supported version %d", doc.Version, fileVersion)
	}

	f = doc.LastUsed
	f.Password = base.Password
	if pass := s.loadPassphrase(); pass != "" {
		f.Password = pass
	}
	return f, true, nil
}

// Save writes f to the preferences file. The file is replaced atomically.
func (s *Store) Save(f connform.Fields) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := yaml.Marshal(document{Version: fileVersion, LastUsed: f})
	if err != nil {
		return fmt.Errorf("marshal preferences: %w", err)
	}

	if err := s.fs.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("create preferences directory: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := s.fs.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("write preferences: %w", err)
	}
	if err := s.fs.Rename(tmp, s.path); err != nil {
		_ = s.fs.Remove(tmp)
		return fmt.Errorf("replace preferences: %w", err)
	}

	s.savePassphrase(f.Password)
	return nil
}

// Reset removes the preferences file and the stored passphrase.
func (s *Store) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.fs.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove preferences: %w", err)
	}
	if s.secretsEnabled() {
		if err := s.secrets.Delete(security.PassphraseKey(s.profile)); err != nil {
			return fmt.Errorf("delete stored passphrase: %w", err)
		}
	}
	return nil
}

func (s *Store) secretsEnabled() bool {
	return s.secrets != nil && s.secrets.Enabled()
}

// loadPassphrase returns the stored passphrase, or "" if there is none or
// the secret store cannot be read.
func (s *Store) loadPassphrase() string {
	if !s.secretsEnabled() {
		return ""
	}
	secret, err := s.secrets.Get(security.PassphraseKey(s.profile))
	if err != nil {
		slog.Warn("failed to read stored passphrase", slog.String("error", err.Error()))
		return ""
	}
	defer security.WipeBytes(secret)
	return string(secret)
}

// savePassphrase stores or clears the passphrase. Failures are logged; the
// non-secret values are already on disk.
func (s *Store) savePassphrase(pass string) {
	if !s.secretsEnabled() {
		return
	}
	key := security.PassphraseKey(s.profile)

	var err error
	if pass == "" {
		err = s.secrets.Delete(key)
	} else {
		err = s.secrets.Set(key, []byte(pass))
	}
	if err != nil {
		slog.Warn("failed to update stored passphrase", slog.String("error", err.Error()))
	}
}
