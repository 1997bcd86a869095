package lock

import (
	"errors"
	"fmt"
	"strings"
)

// Key is a single character produced by the keypad.
type Key byte

// NoKey is the zero Key and means that nothing was pressed.
const NoKey Key = 0

const (
	// PassLen is the fixed length of every code and credential.
	PassLen = 4
	// DefaultCredential is the factory default password.
	DefaultCredential = "1234"
	// KeyAlphabet lists every character the keypad can produce.
	KeyAlphabet = "0123456789ABCD*#"
	// Placeholder is the glyph drawn for each typed character.
	Placeholder = '*'
)

// Layout is the physical 4x4 keypad matrix, row by row.
//
//nolint:gochecknoglobals // Read-only key matrix shared by the keypad and the panel.
var Layout = [4][4]Key{
	{'1', '2', '3', 'A'},
	{'4', '5', '6', 'B'},
	{'7', '8', '9', 'C'},
	{'*', '0', '#', 'D'},
}

var (
	// ErrCodeLength is returned when a code does not have PassLen characters.
	ErrCodeLength = errors.New("code has wrong length")
	// ErrCodeAlphabet is returned when a code contains a character the keypad cannot produce.
	ErrCodeAlphabet = errors.New("code contains a character outside the keypad alphabet")
)

// Valid reports whether the key belongs to the keypad alphabet.
func (k Key) Valid() bool {
	return k != NoKey && strings.IndexByte(KeyAlphabet, byte(k)) >= 0
}

// String returns the key as a one-character string.
func (k Key) String() string {
	if k == NoKey {
		return ""
	}

	return string(rune(k))
}

// ParseKey converts a typed rune into a keypad key. Letters are accepted in
// either case.
func ParseKey(r rune) (Key, bool) {
	if r >= 'a' && r <= 'd' {
		r -= 'a' - 'A'
	}

	if r > 0x7f {
		return NoKey, false
	}

	k := Key(r)
	if !k.Valid() {
		return NoKey, false
	}

	return k, true
}

// WellFormedCredential reports whether a stored credential can be used as is.
// Empty and wrong-length values are treated as absent.
func WellFormedCredential(s string) bool {
	return len(s) == PassLen
}

// ValidateCode checks that a code can be typed on the keypad.
func ValidateCode(code string) error {
	if len(code) != PassLen {
		return fmt.Errorf("%w: got %d, want %d", ErrCodeLength, len(code), PassLen)
	}

	for i := 0; i < len(code); i++ {
		if !Key(code[i]).Valid() {
			return fmt.Errorf("%w: %q at position %d", ErrCodeAlphabet, code[i], i+1)
		}
	}

	return nil
}
