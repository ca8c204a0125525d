// Package playername validates leaderboard names and remembers the chosen
// name for the rest of a session.
package playername

import (
	"errors"
	"regexp"
	"unicode/utf8"
)

// MaxLen is the longest accepted name, in characters.
const MaxLen = 10

// Hint describes the accepted format to the player.
const Hint = "Enter your name (lowercase letters, digits, _ and -, up to 10 characters)"

var (
	ErrEmpty        = errors.New("playername: name is empty")
	ErrTooLong      = errors.New("playername: name is too long, up to 10 characters allowed")
	ErrInvalidChars = errors.New("playername: name contains characters that are not allowed")
)

var namePattern = regexp.MustCompile(`^[a-z0-9_-]+$`)

// Validate reports whether name is a valid leaderboard name.
// Length is checked before the character set.
func Validate(name string) error {
	switch n := utf8.RuneCountInString(name); {
	case n == 0:
		return ErrEmpty
	case n > MaxLen:
		return ErrTooLong
	}
	if !namePattern.MatchString(name) {
		return ErrInvalidChars
	}
	return nil
}

// Message returns the text shown to the player for a validation error.
func Message(err error) string {
	switch {
	case errors.Is(err, ErrTooLong):
		return "Name is too long. Up to 10 characters."
	case errors.Is(err, ErrInvalidChars):
		return "Name contains characters that are not allowed."
	case errors.Is(err, ErrEmpty):
		return "Name is empty."
	case err != nil:
		return err.Error()
	default:
		return ""
	}
}
