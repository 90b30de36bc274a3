package login

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/studybuddy/internal/auth"
)

func typeText(s *LoginScreen, text string) {
	for _, r := range text {
		s.Update(tea.KeyPressMsg{Code: r, Text: string(r)})
	}
}

func press(s *LoginScreen, code rune) tea.Cmd {
	_, cmd := s.Update(tea.KeyPressMsg{Code: code})
	return cmd
}

// submit types both fields and returns the check command.
func submit(t *testing.T, s *LoginScreen, username, password string) tea.Cmd {
	t.Helper()
	typeText(s, username)
	press(s, tea.KeyEnter) // to password
	typeText(s, password)
	cmd := press(s, tea.KeyEnter)
	if cmd == nil {
		t.Fatal("enter on password should submit")
	}
	return cmd
}

func newScreen() *LoginScreen {
	s := New(auth.New(auth.DefaultConfig()))
	s.Init()
	return s
}

func TestLoginSuccess(t *testing.T) {
	s := newScreen()
	cmd := submit(t, s, "Aditi", "Snowy")

	if !s.SigningIn() {
		t.Error("expected signing-in state while the check runs")
	}
	if !strings.Contains(s.View(80, 24), "Signing In...") {
		t.Error("expected Signing In... label")
	}

	_, next := s.Update(cmd())
	if next == nil {
		t.Fatal("expected success command")
	}
	if _, ok := next().(SucceededMsg); !ok {
		t.Errorf("expected SucceededMsg, got %T", next())
	}
	if s.Err() != "" {
		t.Errorf("expected no error, got %q", s.Err())
	}
}

func TestLoginFailure(t *testing.T) {
	s := newScreen()
	cmd := submit(t, s, "aditi", "Snowy")

	s.Update(cmd())
	if s.SigningIn() {
		t.Error("signing-in should end after the check")
	}
	if s.Err() != "Invalid username or password" {
		t.Errorf("unexpected error %q", s.Err())
	}
	if !strings.Contains(s.View(80, 24), "Invalid username or password") {
		t.Error("error should be shown inline")
	}
	if s.password.Value() != "" {
		t.Error("password should be cleared after a failed attempt")
	}
	if s.focus != fieldPassword {
		t.Error("focus should return to the password field")
	}
}

func TestErrorClearedOnNextAttempt(t *testing.T) {
	s := newScreen()
	cmd := submit(t, s, "Aditi", "wrong")
	s.Update(cmd())
	if s.Err() == "" {
		t.Fatal("expected error after wrong password")
	}

	typeText(s, "Snowy")
	cmd = press(s, tea.KeyEnter)
	if s.Err() != "" {
		t.Error("error should clear when the next attempt starts")
	}
	_, next := s.Update(cmd())
	if next == nil {
		t.Fatal("second attempt should succeed")
	}
}

func TestKeysIgnoredWhileSigningIn(t *testing.T) {
	s := newScreen()
	submit(t, s, "Aditi", "Snowy")

	typeText(s, "xyz")
	if s.password.Value() != "Snowy" {
		t.Errorf("input should be frozen while signing in, got %q", s.password.Value())
	}
	if cmd := press(s, tea.KeyEnter); cmd != nil {
		t.Error("enter should not resubmit while signing in")
	}
}

func TestTabSwitchesFields(t *testing.T) {
	s := newScreen()
	if s.focus != fieldUsername {
		t.Fatal("username should have initial focus")
	}
	press(s, tea.KeyTab)
	if s.focus != fieldPassword {
		t.Error("tab should move to password")
	}
	press(s, tea.KeyTab)
	if s.focus != fieldUsername {
		t.Error("tab should wrap to username")
	}
}

func TestEmptyCredentialsRejected(t *testing.T) {
	s := newScreen()
	press(s, tea.KeyEnter)
	cmd := press(s, tea.KeyEnter)
	s.Update(cmd())
	if s.Err() == "" {
		t.Error("empty credentials should be rejected")
	}
}

func TestPasswordMaskedInView(t *testing.T) {
	s := newScreen()
	typeText(s, "Aditi")
	press(s, tea.KeyEnter)
	typeText(s, "Snowy")

	view := s.View(80, 24)
	if !strings.Contains(view, "Aditi") {
		t.Error("username should be visible")
	}
	if strings.Contains(view, "Snowy") {
		t.Error("password should be masked")
	}
}
