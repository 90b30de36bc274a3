// Package auth implements the local sign-in check shown before the study screens.
//
// This is NOT a security boundary. The expected username and password digest are
// compiled into the binary (or read from a local config file) and compared
// in-process, so anyone holding the binary or the config can read or replace them.
// There are no tokens, no persistence and no lockout. It reproduces a login screen;
// it does not provide access control.
package auth

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

const (
	// DefaultUsername is the embedded expected username.
	DefaultUsername = "Aditi"

	// DefaultPasswordDigest is the SHA-256 hex digest of the embedded password.
	DefaultPasswordDigest = "2a3fb91a00d659d55c073d30d02fb61f2a52c4a3414f994f27901a28fb15caa2"

	// InvalidCredentialsMessage is shown when Check fails.
	InvalidCredentialsMessage = "Invalid username or password"
)

// Config holds the gate settings.
type Config struct {
	// Enabled shows the login screen before the app. When false the gate is skipped.
	Enabled bool `mapstructure:"enabled"`

	// Username must match the candidate exactly (case-sensitive).
	Username string `mapstructure:"username" validate:"required"`

	// PasswordDigest is either a lowercase SHA-256 hex digest or a bcrypt hash ("$2a$...").
	PasswordDigest string `mapstructure:"password_digest" validate:"required"`
}

// DefaultConfig returns the embedded credentials with the gate enabled.
func DefaultConfig() Config {
	return Config{
		Enabled:        true,
		Username:       DefaultUsername,
		PasswordDigest: DefaultPasswordDigest,
	}
}

// Gate compares candidate credentials against one expected pair.
type Gate struct {
	username string
	digest   string
}

// New creates a Gate from config. Empty fields fall back to the embedded defaults.
func New(cfg Config) *Gate {
	g := &Gate{username: cfg.Username, digest: strings.TrimSpace(cfg.PasswordDigest)}
	if g.username == "" {
		g.username = DefaultUsername
	}
	if g.digest == "" {
		g.digest = DefaultPasswordDigest
	}
	return g
}

// Check reports whether username and password match the expected pair.
func (g *Gate) Check(username, password string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(g.username)) == 1

	var passOK bool
	if isBcrypt(g.digest) {
		passOK = bcrypt.CompareHashAndPassword([]byte(g.digest), []byte(password)) == nil
	} else {
		got := Digest(password)
		passOK = subtle.ConstantTimeCompare([]byte(got), []byte(strings.ToLower(g.digest))) == 1
	}

	return userOK && passOK
}

// Check runs the default gate with the embedded credentials.
func Check(username, password string) bool {
	return New(DefaultConfig()).Check(username, password)
}

// Digest returns the lowercase SHA-256 hex digest of password.
func Digest(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

// BcryptDigest returns a bcrypt hash of password suitable for Config.PasswordDigest.
func BcryptDigest(password string, cost int) (string, error) {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	b, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func isBcrypt(digest string) bool {
	return strings.HasPrefix(digest, "$2")
}
