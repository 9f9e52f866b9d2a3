package connform

import "testing"

func TestModeOf(t *testing.T) {
	tests := []struct {
		useKerberos bool
		useOSTicket bool
		want        AuthMode
	}{
		{false, false, ModePlain},
		{false, true, ModePlain},
		{true, false, ModeKerberosRealm},
		{true, true, ModeKerberosOSTicket},
	}

	for _, tt := range tests {
		if got := modeOf(tt.useKerberos, tt.useOSTicket); got != tt.want {
			t.Errorf("modeOf(%v, %v) = %v, want %v", tt.useKerberos, tt.useOSTicket, got, tt.want)
		}
	}
}

func TestModeTransitions(t *testing.T) {
	s, _ := newTestState(BuiltinDefaults(testProto))
	if s.Mode() != ModePlain {
		t.Fatalf("initial Mode() = %v, want %v", s.Mode(), ModePlain)
	}

	// The OS-ticket toggle has no effect while Kerberos is off.
	s.SetUseOSTicket(true)
	if s.Mode() != ModePlain {
		t.Errorf("Mode() = %v, want %v", s.Mode(), ModePlain)
	}

	s.SetUseKerberos(true)
	if s.Mode() != ModeKerberosOSTicket {
		t.Errorf("Mode() = %v, want %v", s.Mode(), ModeKerberosOSTicket)
	}

	s.SetUseOSTicket(false)
	if s.Mode() != ModeKerberosRealm {
		t.Errorf("Mode() = %v, want %v", s.Mode(), ModeKerberosRealm)
	}

	s.SetUseKerberos(false)
	if s.Mode() != ModePlain {
		t.Errorf("Mode() = %v, want %v", s.Mode(), ModePlain)
	}
}

func TestModeReads(t *testing.T) {
	tests := []struct {
		mode  AuthMode
		reads []Field
	}{
		{ModePlain, []Field{FieldHost, FieldUsername, FieldPassword, FieldInitialPath, FieldPort}},
		{ModeKerberosRealm, []Field{FieldHost, FieldUsername, FieldInitialPath, FieldPort, FieldKerberosRealm}},
		{ModeKerberosOSTicket, []Field{FieldHost, FieldUsername, FieldInitialPath, FieldPort, FieldKerberosRealm, FieldPassword}},
	}

	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			want := make(map[Field]bool)
			for _, f := range tt.reads {
				want[f] = true
			}
			for _, f := range []Field{FieldHost, FieldUsername, FieldPassword, FieldInitialPath, FieldPort, FieldKerberosRealm} {
				if got := tt.mode.Reads(f); got != want[f] {
					t.Errorf("Reads(%v) = %v, want %v", f, got, want[f])
				}
			}
		})
	}
}

func TestModePersistsPassword(t *testing.T) {
	if ModePlain.Persists(FieldPassword) {
		t.Error("ModePlain persists password")
	}
	if ModeKerberosRealm.Persists(FieldPassword) {
		t.Error("ModeKerberosRealm persists password")
	}
	if !ModeKerberosOSTicket.Persists(FieldPassword) {
		t.Error("ModeKerberosOSTicket does not persist password")
	}
	if ModePlain.Persists(FieldKerberosRealm) || ModePlain.Persists(FieldUseOSTicket) {
		t.Error("ModePlain persists Kerberos fields")
	}
}

func TestFieldString(t *testing.T) {
	if FieldKerberosRealm.String() != "kerberos_realm" {
		t.Errorf("String() = %q, want %q", FieldKerberosRealm.String(), "kerberos_realm")
	}
	if Field(99).String() != "unknown" {
		t.Errorf("String() = %q, want %q", Field(99).String(), "unknown")
	}
}
