package connform

import (
	"sync"

	"github.com/acolita/hdfs-connect/internal/protocol"
)

// Fields holds the values of every input of the connection form.
type Fields struct {
	Host          string `yaml:"host"`
	Username      string `yaml:"username"`
	Password      string `yaml:"-"`
	InitialPath   string `yaml:"initial_path"`
	Port          int    `yaml:"port"`
	UseKerberos   bool   `yaml:"use_kerberos"`
	KerberosRealm string `yaml:"kerberos_realm"`
	UseOSTicket   bool   `yaml:"use_os_ticket"`
}

// Mode returns the auth mode the toggles select.
func (f Fields) Mode() AuthMode {
	return modeOf(f.UseKerberos, f.UseOSTicket)
}

// BuiltinDefaults returns the values a form starts with before anything was
// ever committed.
func BuiltinDefaults(proto protocol.Protocol) Fields {
	return Fields{
		Username:    proto.DefaultUsername(),
		InitialPath: "/",
		Port:        proto.StandardPort,
	}
}

// Defaults holds the last-used values that seed new form sessions. It is
// safe for concurrent use; every update replaces the whole record.
type Defaults struct {
	mu   sync.RWMutex
	last Fields
}

// NewDefaults returns defaults initialized to fallback.
func NewDefaults(fallback Fields) *Defaults {
	return &Defaults{last: fallback}
}

// Snapshot returns a copy of the current defaults.
func (d *Defaults) Snapshot() Fields {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.last
}

// Replace overwrites the defaults with f.
func (d *Defaults) Replace(f Fields) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.last = f
}

// ReplaceIfChanged overwrites the defaults with f unless they already hold
// f, and reports whether they changed.
func (d *Defaults) ReplaceIfChanged(f Fields) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.last == f {
		return false
	}
	d.last = f
	return true
}

// update applies fn to the current defaults under the write lock so that
// read-then-write commits from concurrent sessions do not interleave.
func (d *Defaults) update(fn func(prev Fields) Fields) Fields {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.last = fn(d.last)
	return d.last
}
