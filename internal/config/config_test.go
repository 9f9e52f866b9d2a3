package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/acolita/hdfs-connect/internal/testing/fakes/fakefs"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, "info")
	}
	if !cfg.Logging.Sanitize {
		t.Error("Logging.Sanitize = false, want true")
	}
	if cfg.HDFS.StandardPort != 8020 {
		t.Errorf("HDFS.StandardPort = %d, want 8020", cfg.HDFS.StandardPort)
	}
	if !cfg.Kerberos.SeedRealm {
		t.Error("Kerberos.SeedRealm = false, want true")
	}
	if cfg.Defaults.Profile != "default" {
		t.Errorf("Defaults.Profile = %q, want %q", cfg.Defaults.Profile, "default")
	}
	if !cfg.Defaults.UseKeyring {
		t.Error("Defaults.UseKeyring = false, want true")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() on defaults error: %v", err)
	}
}

func TestLoadEmptyPath(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") error: %v", err)
	}
	if cfg.HDFS.StandardPort != 8020 {
		t.Errorf("HDFS.StandardPort = %d, want 8020 (default)", cfg.HDFS.StandardPort)
	}
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load("/nonexistent/path/config.yaml")
	if err != nil {
		t.Fatalf("Load(nonexistent) error: %v", err)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, "info")
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "bad.yaml")
	if err := os.WriteFile(path, []byte(":::invalid:::yaml{{{"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Fatal("Load(invalid YAML) expected error, got nil")
	}
}

func TestLoadValidConfig(t *testing.T) {
	content := `
logging:
  level: debug
  sanitize: false
hdfs:
  standard_port: 9000
  default_username: hdfs
kerberos:
  krb5_conf: /opt/krb5/krb5.conf
  seed_realm: false
defaults:
  path: /var/lib/hdfs-connect/last-used.yaml
  profile: cluster-a
  use_keyring: false
  watch: false
`
	fsys := fakefs.New()
	fsys.AddFile("/etc/hdfs-connect/config.yaml", []byte(content), 0644)

	cfg, err := Load("/etc/hdfs-connect/config.yaml", fsys)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error: %v", err)
	}

	if cfg.Logging.Level != "debug" || cfg.Logging.Sanitize {
		t.Errorf("Logging = %+v", cfg.Logging)
	}
	if cfg.HDFS.StandardPort != 9000 || cfg.HDFS.DefaultUsername != "hdfs" {
		t.Errorf("HDFS = %+v", cfg.HDFS)
	}
	if cfg.Kerberos.Krb5Conf != "/opt/krb5/krb5.conf" || cfg.Kerberos.SeedRealm {
		t.Errorf("Kerberos = %+v", cfg.Kerberos)
	}
	if cfg.Defaults.Profile != "cluster-a" || cfg.Defaults.UseKeyring || cfg.Defaults.Watch {
		t.Errorf("Defaults = %+v", cfg.Defaults)
	}
	if got := cfg.PrefsPath(fsys); got != "/var/lib/hdfs-connect/last-used.yaml" {
		t.Errorf("PrefsPath() = %q", got)
	}

	p := cfg.Protocol()
	if p.ID != "hdfs" || p.StandardPort != 9000 || p.DefaultUsername() != "hdfs" {
		t.Errorf("Protocol() = %+v", p)
	}
}

func TestLoadPartialConfig(t *testing.T) {
	fsys := fakefs.New()
	fsys.AddFile("/cfg.yaml", []byte("logging:\n  level: warn\n"), 0644)

	cfg, err := Load("/cfg.yaml", fsys)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, "warn")
	}
	// Unset sections keep their defaults.
	if cfg.HDFS.StandardPort != 8020 {
		t.Errorf("HDFS.StandardPort = %d, want 8020", cfg.HDFS.StandardPort)
	}
	if !cfg.Defaults.UseKeyring {
		t.Error("Defaults.UseKeyring = false, want true")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(c *Config) {}, false},
		{"uppercase level", func(c *Config) { c.Logging.Level = "DEBUG" }, false},
		{"unknown level", func(c *Config) { c.Logging.Level = "verbose" }, true},
		{"zero port filled in", func(c *Config) { c.HDFS.StandardPort = 0 }, false},
		{"port too large", func(c *Config) { c.HDFS.StandardPort = 70000 }, true},
		{"negative port", func(c *Config) { c.HDFS.StandardPort = -1 }, true},
		{"profile with slash", func(c *Config) { c.Defaults.Profile = "a/b" }, true},
		{"empty profile filled in", func(c *Config) { c.Defaults.Profile = "" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateFillsZeroValues(t *testing.T) {
	cfg := &Config{}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error: %v", err)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, "info")
	}
	if cfg.HDFS.StandardPort != 8020 {
		t.Errorf("HDFS.StandardPort = %d, want 8020", cfg.HDFS.StandardPort)
	}
	if cfg.Defaults.Profile != "default" {
		t.Errorf("Defaults.Profile = %q, want %q", cfg.Defaults.Profile, "default")
	}
}

func TestApplyEnv(t *testing.T) {
	fsys := fakefs.New()
	fsys.SetEnv(EnvLogLevel, "error")

	cfg := DefaultConfig()
	cfg.ApplyEnv(fsys.Getenv)
	if cfg.Logging.Level != "error" {
		t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, "error")
	}

	cfg = DefaultConfig()
	cfg.ApplyEnv(fakefs.New().Getenv)
	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level = %q, want unchanged %q", cfg.Logging.Level, "info")
	}
}

func TestSaveAndReload(t *testing.T) {
	fsys := fakefs.New()
	cfg := DefaultConfig()
	cfg.HDFS.StandardPort = 9820

	if err := Save(cfg, "/home/test/.config/hdfs-connect/config.yaml", fsys); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	data, _ := fsys.ReadFile("/home/test/.config/hdfs-connect/config.yaml")
	if !strings.Contains(string(data), "standard_port: 9820") {
		t.Errorf("saved YAML missing port:\n%s", data)
	}

	loaded, err := Load("/home/test/.config/hdfs-connect/config.yaml", fsys)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if loaded.HDFS.StandardPort != 9820 {
		t.Errorf("HDFS.StandardPort = %d, want 9820", loaded.HDFS.StandardPort)
	}
}

func TestSaveRealFS(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	if err := Save(DefaultConfig(), path); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("saved file missing: %v", err)
	}
}

func TestDefaultPaths(t *testing.T) {
	t.Run("xdg config home", func(t *testing.T) {
		fsys := fakefs.New()
		fsys.SetEnv("XDG_CONFIG_HOME", "/xdg")

		if got := DefaultConfigPath(fsys); got != "/xdg/hdfs-connect/config.yaml" {
			t.Errorf("DefaultConfigPath() = %q", got)
		}
		if got := DefaultPrefsPath(fsys); got != "/xdg/hdfs-connect/last-used.yaml" {
			t.Errorf("DefaultPrefsPath() = %q", got)
		}
		if got := DefaultConfig().PrefsPath(fsys); got != "/xdg/hdfs-connect/last-used.yaml" {
			t.Errorf("PrefsPath() = %q", got)
		}
	})

	t.Run("home directory", func(t *testing.T) {
		fsys := fakefs.New()
		fsys.SetHomeDir("/home/alice")

		if got := DefaultConfigPath(fsys); got != "/home/alice/.config/hdfs-connect/config.yaml" {
			t.Errorf("DefaultConfigPath() = %q", got)
		}
	})
}

func TestProtocolUsesStandardPort(t *testing.T) {
	cfg := &Config{}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error: %v", err)
	}
	p := cfg.Protocol()
	if p.ID != "hdfs" || p.StandardPort != 8020 {
		t.Errorf("Protocol() = %+v, want hdfs on 8020", p)
	}
}
