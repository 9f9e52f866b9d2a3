package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/acolita/hdfs-connect/internal/descriptor"
	"github.com/acolita/hdfs-connect/internal/prefs"
	"github.com/acolita/hdfs-connect/internal/session"
)

type connectOptions struct {
	repeat       int
	accessible   bool
	showPassword bool
}

func newConnectCmd(e *env) *cobra.Command {
	var opts connectOptions

	cmd := &cobra.Command{
		Use:   "connect",
		Short: "Fill in the connection form and print the connection URL",
		Long: `Show the interactive connection form, seeded with the last-used values,
and print the connection URL built from the submitted values.

Examples:
  # One connection
  hdfs-connect connect

  # Keep showing the form until it is cancelled
  hdfs-connect connect --repeat 0`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConnect(cmd, e, opts)
		},
	}

	cmd.Flags().IntVar(&opts.repeat, "repeat", 1, "number of forms to show (0: until cancelled)")
	cmd.Flags().BoolVar(&opts.accessible, "accessible", false, "use line-based prompts")
	cmd.Flags().BoolVar(&opts.showPassword, "show-password", false, "print the password in the URL")
	return cmd
}

func runConnect(cmd *cobra.Command, e *env, opts connectOptions) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	runner := session.NewRunner(
		e.dialogProvider(opts.accessible),
		e.defaults(),
		e.cfg.Protocol(),
		session.WithStore(e.store),
	)

	if e.cfg.Defaults.Watch {
		w, err := prefs.NewWatcher(e.store, session.Fallback(e.cfg, e.fsys), runner.ApplyExternal)
		if err != nil {
			slog.Warn("last-used values will not follow other instances",
				slog.String("error", err.Error()),
			)
		} else {
			defer w.Close()
		}
	}

	out := cmd.OutOrStdout()
	failed := 0
	err := runner.RunRepeat(ctx, opts.repeat, func(d descriptor.Descriptor, err error) error {
		if err != nil {
			failed++
			cmd.PrintErrf("Error: %v\n", err)
			return nil
		}
		fmt.Fprintln(out, render(d, opts.showPassword))
		return nil
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	if failed > 0 {
		return fmt.Errorf("%d connection form submission(s) failed", failed)
	}
	return nil
}

func render(d descriptor.Descriptor, showPassword bool) string {
	if showPassword {
		return d.String()
	}
	return d.Redacted()
}
