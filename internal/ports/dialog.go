package ports

// ConnectionFormData carries the connection form's values to and from a
// dialog. Port is the raw text of the port input; it is committed by the
// form session, not by the dialog.
type ConnectionFormData struct {
	Host          string `json:"host"`
	Username      string `json:"username"`
	Password      string `json:"password"`
	InitialPath   string `json:"initial_path"`
	Port          string `json:"port"`
	UseKerberos   bool   `json:"use_kerberos"`
	KerberosRealm string `json:"kerberos_realm"`
	UseOSTicket   bool   `json:"use_os_ticket"`
	Confirmed     bool   `json:"confirmed"`
}

// DialogProvider abstracts interactive user dialogs.
// Implementations may use TUI forms or test fakes.
type DialogProvider interface {
	// ConnectionForm shows the connection form pre-filled with prefill.
	// Returns the edited values with Confirmed=true if the user submitted.
	ConnectionForm(prefill ConnectionFormData) (ConnectionFormData, error)
}
