package cli

import (
	"strings"
	"testing"

	"github.com/evcraddock/realty-site/internal/clientstate"
)

func TestLogoutClearsSession(t *testing.T) {
	isolate(t, "http://127.0.0.1:1")

	state := testState(t)
	if err := state.SaveSession(clientstate.Tokens{AccessToken: "a", RefreshToken: "r"}, "ana@example.com"); err != nil {
		t.Fatalf("save session: %v", err)
	}
	if err := state.SetTheme(clientstate.ThemeDark); err != nil {
		t.Fatalf("set theme: %v", err)
	}

	out := captureStdout(t, func() {
		if err := runLogout(); err != nil {
			t.Errorf("logout: %v", err)
		}
	})
	if !strings.Contains(out, "Logged out") {
		t.Errorf("output = %q", out)
	}

	if _, ok, err := state.Profile(); err != nil || ok {
		t.Errorf("profile after logout: ok=%v err=%v", ok, err)
	}
	if tok, _ := state.AccessToken(); tok != "" {
		t.Errorf("access token = %q, want empty after logout", tok)
	}
	// Theme should be preserved
	if theme, _ := state.Theme(); theme != clientstate.ThemeDark {
		t.Errorf("theme = %q, want preserved after logout", theme)
	}
}

func TestLogoutWhenNotLoggedIn(t *testing.T) {
	isolate(t, "http://127.0.0.1:1")

	out := captureStdout(t, func() {
		if err := runLogout(); err != nil {
			t.Errorf("logout with no session: %v", err)
		}
	})
	if !strings.Contains(out, "Not logged in.") {
		t.Errorf("output = %q", out)
	}
}
