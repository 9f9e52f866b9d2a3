// Package commands implements the hdfs-connect command line.
package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/acolita/hdfs-connect/internal/adapters/realdialog"
	"github.com/acolita/hdfs-connect/internal/adapters/realfs"
	"github.com/acolita/hdfs-connect/internal/config"
	"github.com/acolita/hdfs-connect/internal/connform"
	"github.com/acolita/hdfs-connect/internal/logging"
	"github.com/acolita/hdfs-connect/internal/ports"
	"github.com/acolita/hdfs-connect/internal/prefs"
	"github.com/acolita/hdfs-connect/internal/security"
	"github.com/acolita/hdfs-connect/internal/session"
)

// Version information injected at build time.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// Option configures the command tree's external dependencies.
type Option func(*env)

// WithFileSystem sets the filesystem used for config, preferences and krb5.conf.
func WithFileSystem(fsys ports.FileSystem) Option {
	return func(e *env) { e.fsys = fsys }
}

// WithDialog sets the dialog used by connect.
func WithDialog(dialog ports.DialogProvider) Option {
	return func(e *env) { e.dialog = dialog }
}

// WithSecretStore sets the store used for the passphrase when the keyring
// is enabled in the config.
func WithSecretStore(secrets ports.SecretStore) Option {
	return func(e *env) { e.secrets = secrets }
}

// env holds the global flags and the dependencies shared by subcommands.
type env struct {
	cfgFile string
	cfgPath string
	debug   bool

	fsys    ports.FileSystem
	dialog  ports.DialogProvider
	secrets ports.SecretStore

	cfg   *config.Config
	store *prefs.Store
}

// NewRootCmd builds the command tree.
func NewRootCmd(opts ...Option) *cobra.Command {
	e := &env{fsys: realfs.New()}
	for _, opt := range opts {
		opt(e)
	}

	root := &cobra.Command{
		Use:   "hdfs-connect",
		Short: "Build HDFS connection descriptors",
		Long: `hdfs-connect collects the parameters of an HDFS connection (host, port,
user, initial directory and Kerberos settings) and prints the connection URL.

Last-used values are remembered between runs. Use "hdfs-connect [command] --help"
for more information about a command.`,
		Version:       fmt.Sprintf("%s (commit %s, built %s)", Version, Commit, Date),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return e.setup()
		},
	}

	root.PersistentFlags().StringVar(&e.cfgFile, "config", "", "config file (default: $XDG_CONFIG_HOME/hdfs-connect/config.yaml)")
	root.PersistentFlags().BoolVar(&e.debug, "debug", false, "enable debug logging")

	root.AddCommand(newConnectCmd(e))
	root.AddCommand(newURLCmd(e))
	root.AddCommand(newDefaultsCmd(e))
	root.AddCommand(newConfigCmd(e))

	root.CompletionOptions.DisableDefaultCmd = true
	return root
}

// Execute runs the command line.
func Execute() error {
	return NewRootCmd().Execute()
}

// setup loads the config, installs the logger and opens the preferences store.
func (e *env) setup() error {
	path := e.cfgFile
	if path == "" {
		path = config.DefaultConfigPath(e.fsys)
	}
	e.cfgPath = path

	cfg, err := config.Load(path, e.fsys)
	if err != nil {
		return err
	}
	cfg.ApplyEnv(e.fsys.Getenv)
	if e.debug {
		cfg.Logging.Level = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logging.Setup(cfg.Logging.Level, cfg.Logging.Sanitize)

	storeOpts := []prefs.Option{
		prefs.WithFileSystem(e.fsys),
		prefs.WithProfile(cfg.Defaults.Profile),
	}
	if cfg.Defaults.UseKeyring {
		if e.secrets == nil {
			e.secrets = security.NewKeyringStore()
		}
		storeOpts = append(storeOpts, prefs.WithSecretStore(e.secrets))
	}

	e.cfg = cfg
	e.store = prefs.NewStore(cfg.PrefsPath(e.fsys), storeOpts...)
	return nil
}

// defaults loads the process defaults.
func (e *env) defaults() *connform.Defaults {
	return session.LoadDefaults(e.cfg, e.fsys, e.store)
}

func (e *env) dialogProvider(accessible bool) ports.DialogProvider {
	if e.dialog != nil {
		return e.dialog
	}
	return realdialog.New(realdialog.WithAccessible(accessible))
}
