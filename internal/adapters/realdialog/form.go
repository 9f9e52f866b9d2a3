// Package realdialog provides a TUI-based DialogProvider using charmbracelet/huh.
//
// Rows that the current auth mode does not read are hidden: the realm and
// OS-ticket rows only appear with Kerberos on, and the password row is
// hidden in realm mode. Hidden rows keep their prefilled values.
//
// In accessible mode the rows are asked as line prompts, which also works
// with piped input. The password is only masked when the input is a
// terminal.
package realdialog

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/acolita/hdfs-connect/internal/connform"
	"github.com/acolita/hdfs-connect/internal/ports"
)

var headerStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("12")).
	MarginLeft(2)

// Provider implements ports.DialogProvider with a huh form on the terminal.
type Provider struct {
	title      string
	accessible bool
	in         io.Reader
	out        io.Writer
}

// Option configures a Provider.
type Option func(*Provider)

// WithTitle sets the header printed above the form.
func WithTitle(title string) Option {
	return func(p *Provider) { p.title = title }
}

// WithAccessible switches huh to line-based prompts, for screen readers
// and terminals without cursor control.
func WithAccessible(accessible bool) Option {
	return func(p *Provider) { p.accessible = accessible }
}

// WithIO sets the form's input and output streams.
func WithIO(in io.Reader, out io.Writer) Option {
	return func(p *Provider) {
		p.in = in
		p.out = out
	}
}

// New returns a new TUI dialog provider.
func New(opts ...Option) *Provider {
	p := &Provider{
		title: "Connect to HDFS server",
		in:    os.Stdin,
		out:   os.Stdout,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ConnectionForm runs the form. Aborting with ctrl+c returns the prefill
// unconfirmed and no error.
func (p *Provider) ConnectionForm(prefill ports.ConnectionFormData) (ports.ConnectionFormData, error) {
	result := prefill
	result.Confirmed = true

	fmt.Fprintln(p.out, headerStyle.Render(p.title))

	var err error
	if p.accessible {
		err = p.runLines(&result)
	} else {
		err = buildForm(&result, huh.EchoModePassword).
			WithInput(p.in).
			WithOutput(p.out).
			Run()
	}
	if err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			prefill.Confirmed = false
			return prefill, nil
		}
		return prefill, fmt.Errorf("connection form: %w", err)
	}
	return result, nil
}

// runLines asks the visible rows one group at a time with line prompts.
// Visibility is decided after the previous groups were answered.
func (p *Provider) runLines(result *ports.ConnectionFormData) error {
	echo := huh.EchoModePassword
	if !isTerminal(p.in) {
		echo = huh.EchoModeNormal
	}
	in := newLineReader(p.in)

	for _, s := range sections(result, echo) {
		if s.hidden != nil && s.hidden() {
			continue
		}
		err := huh.NewForm(s.group).
			WithAccessible(true).
			WithInput(in).
			WithOutput(p.out).
			Run()
		if err != nil {
			return err
		}
	}
	return nil
}

func buildForm(result *ports.ConnectionFormData, echo huh.EchoMode) *huh.Form {
	secs := sections(result, echo)
	groups := make([]*huh.Group, len(secs))
	for i, s := range secs {
		groups[i] = s.group
		if s.hidden != nil {
			groups[i] = s.group.WithHideFunc(s.hidden)
		}
	}
	return huh.NewForm(groups...)
}

// section is a form group and the condition that hides it.
type section struct {
	group  *huh.Group
	hidden func() bool
}

func sections(result *ports.ConnectionFormData, echo huh.EchoMode) []section {
	return []section{
		{group: huh.NewGroup(
			huh.NewInput().
				Title("Server").
				Description("NameNode host name or IP address").
				Value(&result.Host),

			huh.NewInput().
				Title("Port").
				Description("Invalid values keep the previous port").
				CharLimit(5).
				Value(&result.Port),

			huh.NewInput().
				Title("Username").
				Description("Leave empty for the default user").
				Value(&result.Username),

			huh.NewInput().
				Title("Initial directory").
				Value(&result.InitialPath),

			huh.NewConfirm().
				Title("Use Kerberos").
				Value(&result.UseKerberos),
		)},
		{
			group: huh.NewGroup(
				huh.NewInput().
					Title("Realm").
					Description("Kerberos realm, e.g. EXAMPLE.COM").
					Value(&result.KerberosRealm),

				huh.NewConfirm().
					Title("Use OS ticket").
					Description("Take tickets from the OS credential cache").
					Value(&result.UseOSTicket),
			),
			hidden: func() bool { return !hasKerberosRows(*result) },
		},
		{
			group: huh.NewGroup(
				huh.NewInput().
					TitleFunc(func() string { return passwordTitle(*result) }, result).
					EchoMode(echo).
					Value(&result.Password),
			),
			hidden: func() bool { return !hasPasswordRow(*result) },
		},
		{group: huh.NewGroup(
			huh.NewConfirm().
				Title("Connect?").
				Affirmative("Connect").
				Negative("Cancel").
				Value(&result.Confirmed),
		)},
	}
}

func modeOf(data ports.ConnectionFormData) connform.AuthMode {
	return connform.Fields{UseKerberos: data.UseKerberos, UseOSTicket: data.UseOSTicket}.Mode()
}

func hasKerberosRows(data ports.ConnectionFormData) bool {
	return modeOf(data).Reads(connform.FieldKerberosRealm)
}

func hasPasswordRow(data ports.ConnectionFormData) bool {
	return modeOf(data).Reads(connform.FieldPassword)
}

func passwordTitle(data ports.ConnectionFormData) string {
	if modeOf(data) == connform.ModeKerberosOSTicket {
		return "Ticket cache passphrase"
	}
	return "Password"
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}

// lineReader hands out at most one line per Read. Each line prompt scans
// the input with its own buffer, so a prompt must not consume the answers
// meant for the next one.
type lineReader struct {
	r       *bufio.Reader
	pending []byte
}

func newLineReader(r io.Reader) *lineReader {
	return &lineReader{r: bufio.NewReader(r)}
}

func (l *lineReader) Read(p []byte) (int, error) {
	if len(l.pending) == 0 {
		line, err := l.r.ReadBytes('\n')
		if len(line) == 0 {
			return 0, err
		}
		l.pending = line
	}
	n := copy(p, l.pending)
	l.pending = l.pending[n:]
	return n, nil
}
