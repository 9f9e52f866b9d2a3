// Package connform holds the state of an HDFS connection form session and
// turns it into a connection descriptor.
//
// A session is seeded from the last-used defaults, receives raw field edits,
// and on submission commits its values back to the defaults and builds the
// descriptor. Which fields a commit copies depends on the auth mode: values
// of fields the mode does not read are left untouched in the defaults.
package connform

import (
	"log/slog"
	"strconv"
	"strings"

	"github.com/acolita/hdfs-connect/internal/descriptor"
	"github.com/acolita/hdfs-connect/internal/protocol"
)

// State is one connection form session. It is not safe for concurrent use;
// the Defaults it commits to are.
type State struct {
	defaults *Defaults
	proto    protocol.Protocol

	host          string
	username      string
	password      string
	initialPath   string
	port          portField
	useKerberos   bool
	kerberosRealm string
	useOSTicket   bool
}

// New starts a session seeded from the current defaults.
func New(defaults *Defaults, proto protocol.Protocol) *State {
	seed := defaults.Snapshot()
	return &State{
		defaults:      defaults,
		proto:         proto,
		host:          seed.Host,
		username:      seed.Username,
		password:      seed.Password,
		initialPath:   seed.InitialPath,
		port:          newPortField(seed.Port),
		useKerberos:   seed.UseKerberos,
		kerberosRealm: seed.KerberosRealm,
		useOSTicket:   seed.UseOSTicket,
	}
}

func (s *State) SetHost(v string)          { s.host = v }
func (s *State) SetUsername(v string)      { s.username = v }
func (s *State) SetPassword(v string)      { s.password = v }
func (s *State) SetInitialPath(v string)   { s.initialPath = v }
func (s *State) SetUseKerberos(v bool)     { s.useKerberos = v }
func (s *State) SetKerberosRealm(v string) { s.kerberosRealm = v }
func (s *State) SetUseOSTicket(v bool)     { s.useOSTicket = v }

// EditPort records text typed into the port field. It takes effect on the
// next CommitPort or Commit.
func (s *State) EditPort(text string) { s.port.edit(text) }

// Mode returns the current auth mode.
func (s *State) Mode() AuthMode {
	return modeOf(s.useKerberos, s.useOSTicket)
}

// Fields returns the current values, with the last committed port.
func (s *State) Fields() Fields {
	return Fields{
		Host:          s.host,
		Username:      s.username,
		Password:      s.password,
		InitialPath:   s.initialPath,
		Port:          s.port.value(),
		UseKerberos:   s.useKerberos,
		KerberosRealm: s.kerberosRealm,
		UseOSTicket:   s.useOSTicket,
	}
}

// CommitPort flushes a pending port edit. On error the previously committed
// port stays in effect.
func (s *State) CommitPort() error {
	return s.port.commit()
}

// Commit flushes the port edit and records the session's values as the
// last-used defaults. A port that fails to commit is logged and ignored.
func (s *State) Commit() {
	if err := s.CommitPort(); err != nil {
		slog.Debug("pending port edit discarded",
			slog.String("error", err.Error()),
			slog.Int("port", s.port.value()),
		)
	}

	mode := s.Mode()
	current := s.Fields()
	s.defaults.update(func(prev Fields) Fields {
		next := prev
		for f := FieldHost; f <= FieldUseOSTicket; f++ {
			if mode.Persists(f) {
				copyField(&next, current, f)
			}
		}
		return next
	})

	slog.Debug("connection form committed",
		slog.String("host", current.Host),
		slog.String("mode", mode.String()),
	)
}

// BuildDescriptor assembles the connection descriptor from the current
// values. Call Commit first so that a pending port edit is included.
func (s *State) BuildDescriptor() (descriptor.Descriptor, error) {
	b, err := descriptor.New(s.proto.ID, s.host, NormalizePath(s.initialPath))
	if err != nil {
		return descriptor.Descriptor{}, &ValidationError{Kind: MalformedDescriptor, Err: err}
	}

	b.Port(s.port.value())
	b.Property(protocol.PropUseKerberos, strconv.FormatBool(s.useKerberos))
	if s.useKerberos {
		b.Property(protocol.PropUseOSTicket, strconv.FormatBool(s.useOSTicket))
		b.Property(protocol.PropKerberosRealm, s.kerberosRealm)
	}

	username := s.username
	if username == "" {
		username = s.proto.DefaultUsername()
	}
	b.Credentials(descriptor.Credentials{Username: username, Password: s.password})

	return b.Build(), nil
}

// Submit commits the session and builds its descriptor.
func (s *State) Submit() (descriptor.Descriptor, error) {
	s.Commit()
	return s.BuildDescriptor()
}

// NormalizePath makes p absolute by prepending a slash when it lacks one.
func NormalizePath(p string) string {
	if strings.HasPrefix(p, "/") {
		return p
	}
	return "/" + p
}

func copyField(dst *Fields, src Fields, f Field) {
	switch f {
	case FieldHost:
		dst.Host = src.Host
	case FieldUsername:
		dst.Username = src.Username
	case FieldPassword:
		dst.Password = src.Password
	case FieldInitialPath:
		dst.InitialPath = src.InitialPath
	case FieldPort:
		dst.Port = src.Port
	case FieldUseKerberos:
		dst.UseKerberos = src.UseKerberos
	case FieldKerberosRealm:
		dst.KerberosRealm = src.KerberosRealm
	case FieldUseOSTicket:
		dst.UseOSTicket = src.UseOSTicket
	}
}
