// Package protocol describes the remote filesystem protocols a connection
// descriptor can target.
package protocol

import (
	"os"
	"os/user"
)

// Property keys understood by the HDFS file-access layer.
const (
	PropUseKerberos   = "USE_KERBEROS"
	PropUseOSTicket   = "USE_OS_TICKET"
	PropKerberosRealm = "KERBEROS_REALM"
)

// Port range accepted by the port field.
const (
	MinPort = 1
	MaxPort = 65535
)

// fallbackUsername is used when neither the OS nor the environment name a user.
const fallbackUsername = "hadoop"

// Protocol identifies a file-access protocol and its defaults.
type Protocol struct {
	ID           string
	StandardPort int

	// DefaultUser overrides the OS user lookup when non-empty.
	DefaultUser string
}

// HDFS is the Hadoop distributed filesystem protocol.
var HDFS = Protocol{
	ID:           "hdfs",
	StandardPort: 8020,
}

// known holds the protocols a descriptor can target, by id.
var known = map[string]Protocol{
	HDFS.ID: HDFS,
}

// Lookup returns the known protocol with the given id.
func Lookup(id string) (Protocol, bool) {
	p, ok := known[id]
	return p, ok
}

// StandardPort returns the standard port of the protocol with the given id.
func StandardPort(id string) (int, bool) {
	p, ok := Lookup(id)
	if !ok {
		return 0, false
	}
	return p.StandardPort, true
}

// DefaultUsername returns the username the client uses when none is entered.
// Like the Hadoop client, it is the name of the user running the process.
func (p Protocol) DefaultUsername() string {
	if p.DefaultUser != "" {
		return p.DefaultUser
	}
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	if name := os.Getenv("USER"); name != "" {
		return name
	}
	return fallbackUsername
}

// ValidPort reports whether p lies within the network port range.
func ValidPort(p int) bool {
	return p >= MinPort && p <= MaxPort
}
