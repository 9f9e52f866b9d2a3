// Package config handles configuration parsing for hdfs-connect.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/acolita/hdfs-connect/internal/ports"
	"github.com/acolita/hdfs-connect/internal/protocol"
)

const appDir = "hdfs-connect"

// EnvLogLevel overrides logging.level when set.
const EnvLogLevel = "HDFS_CONNECT_LOG_LEVEL"

// DefaultConfigPath returns the default config file path:
// $XDG_CONFIG_HOME/hdfs-connect/config.yaml or ~/.config/hdfs-connect/config.yaml
func DefaultConfigPath(fsys ports.FileSystem) string {
	return configFile(fsys, "config.yaml")
}

// DefaultPrefsPath returns the default path of the last-used preferences file.
func DefaultPrefsPath(fsys ports.FileSystem) string {
	return configFile(fsys, "last-used.yaml")
}

func configFile(fsys ports.FileSystem, name string) string {
	dir := fsys.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := fsys.UserHomeDir()
		if err != nil {
			return ""
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, appDir, name)
}

// Config represents the top-level configuration.
type Config struct {
	Logging  LoggingConfig  `yaml:"logging"`
	HDFS     HDFSConfig     `yaml:"hdfs"`
	Kerberos KerberosConfig `yaml:"kerberos"`
	Defaults DefaultsConfig `yaml:"defaults"`
}

// LoggingConfig defines logging settings.
type LoggingConfig struct {
	Level    string `yaml:"level" validate:"oneof=debug info warn error"`
	Sanitize bool   `yaml:"sanitize"` // redact passwords and passphrases from logs
}

// HDFSConfig overrides the protocol defaults.
type HDFSConfig struct {
	StandardPort    int    `yaml:"standard_port" validate:"min=1,max=65535"`
	DefaultUsername string `yaml:"default_username"` // empty: the OS user
}

// KerberosConfig defines where the Kerberos configuration lives.
type KerberosConfig struct {
	Krb5Conf  string `yaml:"krb5_conf"`  // KRB5_CONFIG takes precedence
	SeedRealm bool   `yaml:"seed_realm"` // seed the realm field from libdefaults.default_realm
}

// DefaultsConfig defines how last-used values are persisted.
type DefaultsConfig struct {
	Path       string `yaml:"path"` // empty: DefaultPrefsPath()
	Profile    string `yaml:"profile" validate:"required,excludesall=/\\"`
	UseKeyring bool   `yaml:"use_keyring"` // keep the ticket-cache passphrase in the OS keyring
	Watch      bool   `yaml:"watch"`       // pick up last-used values saved by other instances
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:    "info",
			Sanitize: true,
		},
		HDFS: HDFSConfig{
			StandardPort: standardPort(),
		},
		Kerberos: KerberosConfig{
			SeedRealm: true,
		},
		Defaults: DefaultsConfig{
			Profile:    "default",
			UseKeyring: true,
			Watch:      true,
		},
	}
}

// Load loads configuration from a YAML file.
// An optional FileSystem can be passed for testing; if omitted, the real OS is used.
func Load(path string, fsys ...ports.FileSystem) (*Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		return cfg, nil
	}

	var data []byte
	var err error
	if len(fsys) > 0 && fsys[0] != nil {
		data, err = fsys[0].ReadFile(path)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}

	return cfg, nil
}

// ApplyEnv applies environment overrides.
func (c *Config) ApplyEnv(getenv func(string) string) {
	if level := getenv(EnvLogLevel); level != "" {
		c.Logging.Level = level
	}
}

// Validate fills in zero values and validates the configuration.
func (c *Config) Validate() error {
	c.Logging.Level = strings.ToLower(c.Logging.Level)
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.HDFS.StandardPort == 0 {
		c.HDFS.StandardPort = standardPort()
	}
	if c.Defaults.Profile == "" {
		c.Defaults.Profile = "default"
	}

	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Protocol returns the HDFS protocol with the configured overrides.
func (c *Config) Protocol() protocol.Protocol {
	p, ok := protocol.Lookup(protocol.HDFS.ID)
	if !ok {
		p = protocol.HDFS
	}
	p.StandardPort = c.HDFS.StandardPort
	p.DefaultUser = c.HDFS.DefaultUsername
	return p
}

// PrefsPath returns the preferences file path.
func (c *Config) PrefsPath(fsys ports.FileSystem) string {
	if c.Defaults.Path != "" {
		return c.Defaults.Path
	}
	return DefaultPrefsPath(fsys)
}

func standardPort() int {
	if port, ok := protocol.StandardPort(protocol.HDFS.ID); ok {
		return port
	}
	return protocol.HDFS.StandardPort
}

// Save writes the configuration to a YAML file, creating its directory.
// An optional FileSystem can be passed for testing; if omitted, the real OS is used.
func Save(cfg *Config, path string, fsys ...ports.FileSystem) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if len(fsys) > 0 && fsys[0] != nil {
		if err := fsys[0].MkdirAll(filepath.Dir(path), 0755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
		return fsys[0].WriteFile(path, data, 0644)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}
