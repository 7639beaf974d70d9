// Package torrc renders the tor configuration a resolved target
// requires. Targets declare directive names (PORT, PASSWORD, COOKIE,
// SOCKET); this package expands them into concrete torrc lines
// appended to a base configuration.
package torrc

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// Directive identifies one torrc option a target requires.
type Directive string

const (
	// Port opens the control port.
	Port Directive = "PORT"

	// Password enables hashed password authentication.
	Password Directive = "PASSWORD"

	// Cookie enables cookie authentication.
	Cookie Directive = "COOKIE"

	// Socket opens a control socket in the data directory.
	Socket Directive = "SOCKET"
)

// Fixed values the harness uses for every integration run, matching
// what the test suites expect to connect with.
const (
	ControlPort = 1111
	SocksPort   = 1112

	// ControlPassword is the plaintext for the hashed password below.
	ControlPassword = "pw"

	hashedPassword = "16:0102405162896A6823618636F445861B88E54C7656BF3981F4B1D5DC"
)

// UnknownDirectiveError indicates a torrc directive name with no
// rendering, i.e. a typo in a target's torrc attribute.
type UnknownDirectiveError struct {
	Name string
}

// Error implements the error interface.
func (e *UnknownDirectiveError) Error() string {
	return fmt.Sprintf("unrecognized torrc directive: %s", e.Name)
}

// IsUnknownDirective returns true if the error is an
// UnknownDirectiveError. Uses errors.As to handle wrapped errors.
func IsUnknownDirective(err error) bool {
	var ude *UnknownDirectiveError
	return errors.As(err, &ude)
}

// ParseDirectives converts a target's torrc attribute entries into
// typed directives, preserving order.
func ParseDirectives(names []string) ([]Directive, error) {
	directives := make([]Directive, 0, len(names))
	for _, name := range names {
		directive := Directive(strings.ToUpper(strings.TrimSpace(name)))
		switch directive {
		case Port, Password, Cookie, Socket:
			directives = append(directives, directive)
		default:
			return nil, &UnknownDirectiveError{Name: name}
		}
	}
	return directives, nil
}

// lines renders the torrc lines for a single directive.
func (d Directive) lines(dataDir string) []string {
	switch d {
	case Port:
		return []string{fmt.Sprintf("ControlPort %d", ControlPort)}
	case Password:
		return []string{"HashedControlPassword " + hashedPassword}
	case Cookie:
		return []string{"CookieAuthentication 1"}
	case Socket:
		return []string{"ControlSocket " + filepath.ToSlash(filepath.Join(dataDir, "socket"))}
	default:
		return nil
	}
}

// Build renders a complete torrc for the given directives: the base
// configuration (data directory and socks port) followed by each
// directive's lines in the order given. The directive list is
// authoritative, an empty list yields just the base configuration.
func Build(dataDir string, directives []Directive) string {
	var b strings.Builder

	b.WriteString("DataDirectory " + filepath.ToSlash(dataDir) + "\n")
	b.WriteString(fmt.Sprintf("SocksPort %d\n", SocksPort))

	for _, directive := range directives {
		for _, line := range directive.lines(dataDir) {
			b.WriteString(line + "\n")
		}
	}

	return b.String()
}
