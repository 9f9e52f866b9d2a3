package commands

import (
	"fmt"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/cobra"

	"github.com/acolita/hdfs-connect/internal/connform"
	"github.com/acolita/hdfs-connect/internal/descriptor"
	"github.com/acolita/hdfs-connect/internal/protocol"
)

type urlOptions struct {
	host         string
	username     string
	password     string
	path         string
	port         int
	useKerberos  bool
	realm        string
	useOSTicket  bool
	save         bool
	showPassword bool
}

// urlRequest is validated after the flags are laid over the last-used values.
type urlRequest struct {
	Host string `validate:"required"`
	Port int    `validate:"min=1,max=65535"`
}

func newURLCmd(e *env) *cobra.Command {
	var opts urlOptions

	cmd := &cobra.Command{
		Use:   "url",
		Short: "Print a connection URL without showing the form",
		Long: `Build a connection URL from flags. Fields without a flag take their
last-used values.

Examples:
  # Plain connection
  hdfs-connect url --host nn1.cluster.local --user alice

  # Kerberos with the OS ticket cache, remembered for the next run
  hdfs-connect url --host nn1 --kerberos --realm EXAMPLE.COM --os-ticket --save`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := buildURL(cmd, e, opts)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), render(d, opts.showPassword))
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.host, "host", "", "namenode host")
	f.StringVar(&opts.username, "user", "", "user name (empty: the default user)")
	f.StringVar(&opts.password, "password", "", "password, or the ticket cache passphrase with --os-ticket")
	f.StringVar(&opts.path, "path", "/", "initial directory")
	f.IntVar(&opts.port, "port", protocol.HDFS.StandardPort, "namenode port")
	f.BoolVar(&opts.useKerberos, "kerberos", false, "authenticate with Kerberos")
	f.StringVar(&opts.realm, "realm", "", "Kerberos realm")
	f.BoolVar(&opts.useOSTicket, "os-ticket", false, "use the OS ticket cache")
	f.BoolVar(&opts.save, "save", false, "remember the values as last used")
	f.BoolVar(&opts.showPassword, "show-password", false, "print the password in the URL")
	return cmd
}

func buildURL(cmd *cobra.Command, e *env, opts urlOptions) (descriptor.Descriptor, error) {
	defaults := e.defaults()
	st := connform.New(defaults, e.cfg.Protocol())

	flags := cmd.Flags()
	if flags.Changed("host") {
		st.SetHost(opts.host)
	}
	if flags.Changed("user") {
		st.SetUsername(opts.username)
	}
	if flags.Changed("password") {
		st.SetPassword(opts.password)
	}
	if flags.Changed("path") {
		st.SetInitialPath(opts.path)
	}
	if flags.Changed("kerberos") {
		st.SetUseKerberos(opts.useKerberos)
	}
	if flags.Changed("realm") {
		st.SetKerberosRealm(opts.realm)
	}
	if flags.Changed("os-ticket") {
		st.SetUseOSTicket(opts.useOSTicket)
	}

	port := st.Fields().Port
	if flags.Changed("port") {
		port = opts.port
	}

	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.Struct(urlRequest{Host: st.Fields().Host, Port: port}); err != nil {
		return descriptor.Descriptor{}, fmt.Errorf("invalid arguments: %w", err)
	}
	st.EditPort(strconv.Itoa(port))

	if !opts.save {
		if err := st.CommitPort(); err != nil {
			return descriptor.Descriptor{}, err
		}
		return st.BuildDescriptor()
	}

	d, err := st.Submit()
	if serr := e.store.Save(defaults.Snapshot()); serr != nil {
		return descriptor.Descriptor{}, fmt.Errorf("save last-used values: %w", serr)
	}
	return d, err
}
