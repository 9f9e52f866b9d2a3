package session

import (
	"log/slog"

	"github.com/acolita/hdfs-connect/internal/config"
	"github.com/acolita/hdfs-connect/internal/connform"
	"github.com/acolita/hdfs-connect/internal/kerberos"
	"github.com/acolita/hdfs-connect/internal/ports"
	"github.com/acolita/hdfs-connect/internal/prefs"
)

// Fallback returns the built-in defaults for cfg. When realm seeding is on,
// the realm comes from libdefaults.default_realm in krb5.conf.
func Fallback(cfg *config.Config, fsys ports.FileSystem) connform.Fields {
	base := connform.BuiltinDefaults(cfg.Protocol())
	if !cfg.Kerberos.SeedRealm {
		return base
	}

	path := kerberos.ResolveKrb5ConfPath(fsys, cfg.Kerberos.Krb5Conf)
	realm, err := kerberos.DefaultRealm(fsys, path)
	if err != nil {
		slog.Warn("failed to read default realm",
			slog.String("path", path),
			slog.String("error", err.Error()),
		)
		return base
	}
	base.KerberosRealm = realm
	return base
}

// LoadDefaults builds the process defaults from the fallback and, when store
// is non-nil, the saved last-used values. An unreadable preferences file is
// logged and the fallback is used.
func LoadDefaults(cfg *config.Config, fsys ports.FileSystem, store *prefs.Store) *connform.Defaults {
	base := Fallback(cfg, fsys)
	if store == nil {
		return connform.NewDefaults(base)
	}

	f, found, err := store.Load(base)
	if err != nil {
		slog.Warn("ignoring saved last-used values",
			slog.String("path", store.Path()),
			slog.String("error", err.Error()),
		)
		return connform.NewDefaults(base)
	}
	if found {
		slog.Debug("loaded last-used values", slog.String("path", store.Path()))
	}
	return connform.NewDefaults(f)
}
