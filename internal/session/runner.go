// Package session runs interactive connection form sessions.
//
// A Runner shows the form through a DialogProvider, feeds the edited values
// into a connform.State and persists the committed defaults.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/acolita/hdfs-connect/internal/connform"
	"github.com/acolita/hdfs-connect/internal/descriptor"
	"github.com/acolita/hdfs-connect/internal/ports"
	"github.com/acolita/hdfs-connect/internal/prefs"
	"github.com/acolita/hdfs-connect/internal/protocol"
)

// ErrCancelled is returned when the user leaves the form without submitting.
var ErrCancelled = errors.New("connection form cancelled")

// Runner runs connection form sessions against shared defaults.
type Runner struct {
	dialog   ports.DialogProvider
	defaults *connform.Defaults
	proto    protocol.Protocol
	store    *prefs.Store
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithStore saves the defaults to store after every submission.
func WithStore(store *prefs.Store) RunnerOption {
	return func(r *Runner) {
		r.store = store
	}
}

// NewRunner creates a runner.
func NewRunner(dialog ports.DialogProvider, defaults *connform.Defaults, proto protocol.Protocol, opts ...RunnerOption) *Runner {
	r := &Runner{
		dialog:   dialog,
		defaults: defaults,
		proto:    proto,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Defaults returns the defaults the runner seeds sessions from.
func (r *Runner) Defaults() *connform.Defaults {
	return r.defaults
}

// Run shows the form once and returns the descriptor built from the
// submitted values. A cancelled form returns ErrCancelled and leaves the
// defaults untouched.
func (r *Runner) Run(ctx context.Context) (descriptor.Descriptor, error) {
	if err := ctx.Err(); err != nil {
		return descriptor.Descriptor{}, err
	}

	st := connform.New(r.defaults, r.proto)
	data, err := r.dialog.ConnectionForm(FormData(st.Fields()))
	if err != nil {
		return descriptor.Descriptor{}, fmt.Errorf("connection form: %w", err)
	}
	if !data.Confirmed {
		slog.Debug("connection form abandoned")
		return descriptor.Descriptor{}, ErrCancelled
	}

	Apply(st, data)
	d, err := st.Submit()
	r.persist()
	if err != nil {
		return descriptor.Descriptor{}, err
	}

	slog.Info("connection descriptor built",
		slog.String("url", d.Redacted()),
		slog.String("mode", st.Mode().String()),
	)
	return d, nil
}

// RunRepeat runs up to n sessions, or until cancelled when n <= 0, calling
// fn with each descriptor. Descriptor errors are passed to fn and do not
// stop the loop; a non-nil error from fn does.
func (r *Runner) RunRepeat(ctx context.Context, n int, fn func(descriptor.Descriptor, error) error) error {
	for i := 0; n <= 0 || i < n; i++ {
		d, err := r.Run(ctx)
		if errors.Is(err, ErrCancelled) {
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if ferr := fn(d, err); ferr != nil {
			return ferr
		}
	}
	return nil
}

// ApplyExternal replaces the defaults with values saved by another process.
// A passphrase that could not be reloaded keeps its in-process value.
// Values equal to the current defaults, such as this process's own saves,
// are ignored.
func (r *Runner) ApplyExternal(f connform.Fields) {
	r.applyExternal(f)
}

func (r *Runner) applyExternal(f connform.Fields) bool {
	if f.Password == "" {
		f.Password = r.defaults.Snapshot().Password
	}
	if !r.defaults.ReplaceIfChanged(f) {
		return false
	}
	slog.Debug("last-used values replaced by another instance", slog.String("host", f.Host))
	return true
}

func (r *Runner) persist() {
	if r.store == nil {
		return
	}
	if err := r.store.Save(r.defaults.Snapshot()); err != nil {
		slog.Warn("failed to save last-used values",
			slog.String("path", r.store.Path()),
			slog.String("error", err.Error()),
		)
	}
}

// FormData converts form values into dialog data.
func FormData(f connform.Fields) ports.ConnectionFormData {
	return ports.ConnectionFormData{
		Host:          f.Host,
		Username:      f.Username,
		Password:      f.Password,
		InitialPath:   f.InitialPath,
		Port:          strconv.Itoa(f.Port),
		UseKerberos:   f.UseKerberos,
		KerberosRealm: f.KerberosRealm,
		UseOSTicket:   f.UseOSTicket,
	}
}

// Apply feeds dialog data into a form session as field edits.
func Apply(st *connform.State, data ports.ConnectionFormData) {
	st.SetHost(data.Host)
	st.SetUsername(data.Username)
	st.SetPassword(data.Password)
	st.SetInitialPath(data.InitialPath)
	st.EditPort(data.Port)
	st.SetUseKerberos(data.UseKerberos)
	st.SetKerberosRealm(data.KerberosRealm)
	st.SetUseOSTicket(data.UseOSTicket)
}
