package connform

// Field identifies an input of the connection form.
type Field int

const (
	FieldHost Field = iota
	FieldUsername
	FieldPassword
	FieldInitialPath
	FieldPort
	FieldUseKerberos
	FieldKerberosRealm
	FieldUseOSTicket
)

var fieldNames = [...]string{
	FieldHost:          "host",
	FieldUsername:      "username",
	FieldPassword:      "password",
	FieldInitialPath:   "initial_path",
	FieldPort:          "port",
	FieldUseKerberos:   "use_kerberos",
	FieldKerberosRealm: "kerberos_realm",
	FieldUseOSTicket:   "use_os_ticket",
}

func (f Field) String() string {
	if f < 0 || int(f) >= len(fieldNames) {
		return "unknown"
	}
	return fieldNames[f]
}

// AuthMode is the authentication sub-state of a form session.
type AuthMode int

const (
	// ModePlain authenticates with username and password.
	ModePlain AuthMode = iota
	// ModeKerberosRealm authenticates against a Kerberos realm.
	ModeKerberosRealm
	// ModeKerberosOSTicket uses the OS credential cache; the password field
	// holds the ticket-cache passphrase.
	ModeKerberosOSTicket
)

func (m AuthMode) String() string {
	switch m {
	case ModePlain:
		return "plain"
	case ModeKerberosRealm:
		return "kerberos-realm"
	case ModeKerberosOSTicket:
		return "kerberos-os-ticket"
	default:
		return "unknown"
	}
}

// modeOf derives the auth mode from the two toggles. The OS-ticket toggle
// only matters while Kerberos is on.
func modeOf(useKerberos, useOSTicket bool) AuthMode {
	switch {
	case !useKerberos:
		return ModePlain
	case useOSTicket:
		return ModeKerberosOSTicket
	default:
		return ModeKerberosRealm
	}
}

// Kerberos reports whether the mode is one of the Kerberos modes.
func (m AuthMode) Kerberos() bool {
	return m == ModeKerberosRealm || m == ModeKerberosOSTicket
}

// Reads reports whether the form reads f while in mode m. The Kerberos
// toggle is always read.
func (m AuthMode) Reads(f Field) bool {
	switch f {
	case FieldHost, FieldUsername, FieldInitialPath, FieldPort, FieldUseKerberos:
		return true
	case FieldPassword:
		return m == ModePlain || m == ModeKerberosOSTicket
	case FieldKerberosRealm, FieldUseOSTicket:
		return m.Kerberos()
	default:
		return false
	}
}

// Persists reports whether a commit in mode m copies f into the last-used
// defaults. Fields a mode does not persist keep their previous defaults.
func (m AuthMode) Persists(f Field) bool {
	switch f {
	case FieldHost, FieldUsername, FieldInitialPath, FieldPort, FieldUseKerberos:
		return true
	case FieldKerberosRealm, FieldUseOSTicket:
		return m.Kerberos()
	case FieldPassword:
		return m == ModeKerberosOSTicket
	default:
		return false
	}
}
