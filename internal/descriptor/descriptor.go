// Package descriptor builds connection descriptors: the URL, credentials and
// named properties a file-access layer needs to open a remote filesystem.
package descriptor

import (
	"errors"
	"fmt"
	"maps"
	"net"
	"net/url"
	"strconv"
	"strings"
	"unicode"
)

// ErrMalformed is returned when the scheme, authority or path cannot form a
// structurally valid descriptor.
var ErrMalformed = errors.New("malformed connection descriptor")

// Credentials are attached to a descriptor as-is.
type Credentials struct {
	Username string
	Password string
}

// Descriptor is an immutable connection descriptor.
type Descriptor struct {
	scheme string
	host   string
	port   int
	path   string
	creds  Credentials
	props  map[string]string
}

// Scheme returns the protocol identifier.
func (d Descriptor) Scheme() string { return d.scheme }

// Host returns the host without port or brackets.
func (d Descriptor) Host() string { return d.host }

// Port returns the port, or 0 if none was set.
func (d Descriptor) Port() int { return d.port }

// Path returns the absolute path.
func (d Descriptor) Path() string { return d.path }

// Credentials returns the attached credentials.
func (d Descriptor) Credentials() Credentials { return d.creds }

// Property returns the named property and whether it is set.
func (d Descriptor) Property(key string) (string, bool) {
	v, ok := d.props[key]
	return v, ok
}

// Properties returns a copy of all properties.
func (d Descriptor) Properties() map[string]string {
	return maps.Clone(d.props)
}

// Authority returns host:port, or just the host when no port is set.
func (d Descriptor) Authority() string {
	if d.port == 0 {
		if strings.Contains(d.host, ":") {
			return "[" + d.host + "]"
		}
		return d.host
	}
	return net.JoinHostPort(d.host, strconv.Itoa(d.port))
}

// URL renders the descriptor as a URL. Properties become query parameters,
// sorted by key.
func (d Descriptor) URL() *url.URL {
	u := &url.URL{
		Scheme: d.scheme,
		Host:   d.Authority(),
		Path:   d.path,
	}
	switch {
	case d.creds.Password != "":
		u.User = url.UserPassword(d.creds.Username, d.creds.Password)
	case d.creds.Username != "":
		u.User = url.User(d.creds.Username)
	}
	if len(d.props) > 0 {
		q := url.Values{}
		for k, v := range d.props {
			q.Set(k, v)
		}
		u.RawQuery = q.Encode()
	}
	return u
}

// String returns the canonical URL form, including the password.
func (d Descriptor) String() string {
	return d.URL().String()
}

// Redacted returns the URL form with the password masked.
func (d Descriptor) Redacted() string {
	return d.URL().Redacted()
}

// Builder assembles a Descriptor.
type Builder struct {
	d Descriptor
}

// New validates scheme, authority and path and returns a builder for the
// descriptor. The authority is a host with an optional port; credentials
// are attached separately and must not appear in it.
func New(scheme, authority, path string) (*Builder, error) {
	if scheme == "" {
		return nil, fmt.Errorf("%w: empty scheme", ErrMalformed)
	}
	if strings.ContainsAny(authority, "/?#@") {
		return nil, fmt.Errorf("%w: invalid authority %q", ErrMalformed, authority)
	}

	u, err := url.Parse(scheme + "://" + authority)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	// An unbracketed IPv6 literal parses with its last group taken as the
	// port; only accept authorities that reassemble unchanged.
	if joinAuthority(u.Hostname(), u.Port()) != u.Host {
		return nil, fmt.Errorf("%w: invalid authority %q", ErrMalformed, authority)
	}

	if !strings.HasPrefix(path, "/") {
		return nil, fmt.Errorf("%w: path %q is not absolute", ErrMalformed, path)
	}
	if strings.ContainsFunc(path, unicode.IsControl) {
		return nil, fmt.Errorf("%w: path contains control characters", ErrMalformed)
	}

	b := &Builder{d: Descriptor{
		scheme: u.Scheme,
		host:   u.Hostname(),
		path:   path,
		props:  make(map[string]string),
	}}
	if p := u.Port(); p != "" {
		port, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid port %q", ErrMalformed, p)
		}
		b.d.port = port
	}
	return b, nil
}

func joinAuthority(host, port string) string {
	if port != "" {
		return net.JoinHostPort(host, port)
	}
	if strings.Contains(host, ":") {
		return "[" + host + "]"
	}
	return host
}

// Port sets the port, replacing any port given in the authority.
func (b *Builder) Port(port int) *Builder {
	b.d.port = port
	return b
}

// Credentials attaches credentials.
func (b *Builder) Credentials(c Credentials) *Builder {
	b.d.creds = c
	return b
}

// Property sets a named property.
func (b *Builder) Property(key, value string) *Builder {
	b.d.props[key] = value
	return b
}

// Build returns the descriptor. The builder may keep being used; later
// changes do not affect descriptors already built.
func (b *Builder) Build() Descriptor {
	d := b.d
	d.props = maps.Clone(b.d.props)
	return d
}
