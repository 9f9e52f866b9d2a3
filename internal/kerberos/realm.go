// Package kerberos reads the local Kerberos configuration to seed the realm
// field of the connection form.
//
// Only libdefaults are consulted. Realm syntax is not validated and ticket
// caches are never read.
package kerberos

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	krb5config "github.com/jcmturner/gokrb5/v8/config"

	"github.com/acolita/hdfs-connect/internal/ports"
)

// DefaultKrb5ConfPath is used when neither KRB5_CONFIG nor the config file
// name a krb5.conf.
const DefaultKrb5ConfPath = "/etc/krb5.conf"

// EnvKrb5Config is the MIT Kerberos environment variable naming krb5.conf.
const EnvKrb5Config = "KRB5_CONFIG"

// ResolveKrb5ConfPath returns the krb5.conf path to use. KRB5_CONFIG takes
// precedence over the configured path.
func ResolveKrb5ConfPath(fsys ports.FileSystem, configured string) string {
	if env := fsys.Getenv(EnvKrb5Config); env != "" {
		return env
	}
	if configured != "" {
		return configured
	}
	return DefaultKrb5ConfPath
}

// DefaultRealm returns libdefaults.default_realm from the krb5.conf at path.
// A missing file yields an empty realm and no error.
func DefaultRealm(fsys ports.FileSystem, path string) (string, error) {
	data, err := fsys.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("read krb5.conf: %w", err)
	}
	return ParseDefaultRealm(string(data))
}

// ParseDefaultRealm returns libdefaults.default_realm from krb5.conf content.
func ParseDefaultRealm(content string) (string, error) {
	cfg, err := krb5config.NewFromString(content)
	if err != nil {
		// gokrb5 still returns a usable config for directives it does not
		// understand.
		var unsupported krb5config.UnsupportedDirective
		if !errors.As(err, &unsupported) || cfg == nil {
			return "", fmt.Errorf("parse krb5.conf: %w", err)
		}
		slog.Debug("krb5.conf has unsupported directives", slog.String("error", err.Error()))
	}
	return cfg.LibDefaults.DefaultRealm, nil
}
