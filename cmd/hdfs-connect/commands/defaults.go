package commands

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	keyStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Width(16)
)

func newDefaultsCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "defaults",
		Short: "Inspect or clear the last-used values",
	}
	cmd.AddCommand(newDefaultsShowCmd(e))
	cmd.AddCommand(newDefaultsResetCmd(e))
	return cmd
}

func newDefaultsShowCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Display the values the next form starts with",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := e.defaults().Snapshot()

			passphrase := "not stored"
			if f.Password != "" {
				passphrase = "stored"
			}

			rows := [][2]string{
				{"host", f.Host},
				{"username", f.Username},
				{"initial path", f.InitialPath},
				{"port", strconv.Itoa(f.Port)},
				{"mode", f.Mode().String()},
				{"use kerberos", strconv.FormatBool(f.UseKerberos)},
				{"realm", f.KerberosRealm},
				{"use os ticket", strconv.FormatBool(f.UseOSTicket)},
				{"passphrase", passphrase},
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, titleStyle.Render("Last-used values ("+e.store.Path()+")"))
			for _, row := range rows {
				fmt.Fprintln(out, lipgloss.JoinHorizontal(lipgloss.Top, keyStyle.Render(row[0]), row[1]))
			}
			return nil
		},
	}
}

func newDefaultsResetCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Forget the last-used values and the stored passphrase",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := e.store.Reset(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Last-used values cleared.")
			return nil
		},
	}
}
