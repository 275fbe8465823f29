// Package validate provides pure client-side form validators mirroring
// the server's limits, so obviously bad input fails before a request is
// made.
package validate

import (
	"errors"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Limits count characters, not bytes, matching the server.
const (
	// MaxTitleLen is the task title limit.
	MaxTitleLen = 200

	// MaxDescriptionLen is the task description limit.
	MaxDescriptionLen = 2000

	// MaxMessageLen is the chat message limit.
	MaxMessageLen = 2000

	// MinPasswordLen is the minimum password length.
	MinPasswordLen = 8
)

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Email checks that s looks like an email address.
func Email(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("email is required")
	}
	if !emailRe.MatchString(s) {
		return errors.New("invalid email address")
	}
	return nil
}

// Password checks the minimum password requirements.
func Password(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("password is required")
	}
	if utf8.RuneCountInString(s) < MinPasswordLen {
		return errors.New("password must be at least 8 characters")
	}
	return nil
}

// TaskTitle checks that a title is non-empty and within the limit.
func TaskTitle(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("title is required")
	}
	if utf8.RuneCountInString(s) > MaxTitleLen {
		return errors.New("title is too long (maximum 200 characters)")
	}
	return nil
}

// TaskDescription checks an optional description against the limit.
func TaskDescription(s string) error {
	if utf8.RuneCountInString(s) > MaxDescriptionLen {
		return errors.New("description is too long (maximum 2000 characters)")
	}
	return nil
}

// ChatMessage checks that a chat message is non-empty and within the
// limit.
func ChatMessage(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("message cannot be empty")
	}
	if utf8.RuneCountInString(s) > MaxMessageLen {
		return errors.New("message is too long (maximum 2000 characters)")
	}
	return nil
}
