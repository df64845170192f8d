package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.ini")
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatalf("writing test config: %v", err)
	}
	return path
}

func TestLoadAppliesDefaultsAndTimezone(t *testing.T) {
	path := writeConfig(t, `
[DEFAULT]
timezone = America/New_York

[tenantA]
user = svc@tenanta.onmicrosoft.com
pass = hunter2
`)

	sessions, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sessions) != 1 {
		t.Fatalf("expected 1 session, got %d", len(sessions))
	}
	s := sessions[0]
	if s.Server != defaultServer || s.Version != defaultVersion {
		t.Fatalf("expected defaults applied, got %+v", s)
	}
	if s.Timezone != "America/New_York" {
		t.Fatalf("expected DEFAULT timezone propagated, got %s", s.Timezone)
	}
}

func TestLoadPreservesFileOrder(t *testing.T) {
	path := writeConfig(t, `
[tenantB]
user = b@tenantb.onmicrosoft.com
pass = secret

[tenantA]
user = a@tenanta.onmicrosoft.com
pass = secret
`)

	sessions, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sessions) != 2 || sessions[0].User != "b@tenantb.onmicrosoft.com" {
		t.Fatalf("expected tenantB first, got %+v", sessions)
	}
}

func TestLoadRequiresUserAndPass(t *testing.T) {
	path := writeConfig(t, `
[tenantA]
server = outlook.office365.com
`)

	if _, err := Load(path); err == nil {
		t.Fatal("expected error for missing user/pass")
	}
}
