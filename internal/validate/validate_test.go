package validate

import (
	"strings"
	"testing"
)

func TestEmail(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr string
	}{
		{"valid", "user@example.com", ""},
		{"valid with plus", "user+tag@example.com", ""},
		{"empty", "", "email is required"},
		{"whitespace only", "   ", "email is required"},
		{"missing at", "userexample.com", "invalid email address"},
		{"missing domain dot", "user@example", "invalid email address"},
		{"embedded space", "us er@example.com", "invalid email address"},
		{"double at", "user@@example.com", "invalid email address"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Email(tt.input)
			checkErr(t, err, tt.wantErr)
		})
	}
}

func TestPassword(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr string
	}{
		{"valid", "hunter22!", ""},
		{"exactly 8", "12345678", ""},
		{"empty", "", "password is required"},
		{"too short", "short", "password must be at least 8 characters"},
		{"seven chars", "1234567", "password must be at least 8 characters"},
		{"eight multibyte runes", strings.Repeat("日", 8), ""},
		{"seven multibyte runes", strings.Repeat("日", 7), "password must be at least 8 characters"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Password(tt.input)
			checkErr(t, err, tt.wantErr)
		})
	}
}

func TestTaskTitle(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr string
	}{
		{"valid", "Buy milk", ""},
		{"exactly at limit", strings.Repeat("a", MaxTitleLen), ""},
		{"empty", "", "title is required"},
		{"whitespace only", "  \t ", "title is required"},
		{"over limit", strings.Repeat("a", MaxTitleLen+1), "title is too long (maximum 200 characters)"},
		{"multibyte under limit", strings.Repeat("日", 150), ""},
		{"multibyte at limit", strings.Repeat("日", MaxTitleLen), ""},
		{"multibyte over limit", strings.Repeat("日", MaxTitleLen+1), "title is too long (maximum 200 characters)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := TaskTitle(tt.input)
			checkErr(t, err, tt.wantErr)
		})
	}
}

func TestTaskDescription(t *testing.T) {
	if err := TaskDescription(""); err != nil {
		t.Errorf("empty description should be valid, got %v", err)
	}
	if err := TaskDescription(strings.Repeat("a", MaxDescriptionLen)); err != nil {
		t.Errorf("description at limit should be valid, got %v", err)
	}
	if err := TaskDescription(strings.Repeat("日", MaxDescriptionLen)); err != nil {
		t.Errorf("multibyte description at limit should be valid, got %v", err)
	}
	err := TaskDescription(strings.Repeat("a", MaxDescriptionLen+1))
	checkErr(t, err, "description is too long (maximum 2000 characters)")
}

func TestChatMessage(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr string
	}{
		{"valid", "add a task to buy milk", ""},
		{"exactly at limit", strings.Repeat("a", MaxMessageLen), ""},
		{"empty", "", "message cannot be empty"},
		{"whitespace only", "   ", "message cannot be empty"},
		{"over limit", strings.Repeat("a", MaxMessageLen+1), "message is too long (maximum 2000 characters)"},
		{"multibyte at limit", strings.Repeat("日", MaxMessageLen), ""},
		{"multibyte over limit", strings.Repeat("日", MaxMessageLen+1), "message is too long (maximum 2000 characters)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ChatMessage(tt.input)
			checkErr(t, err, tt.wantErr)
		})
	}
}

func checkErr(t *testing.T, err error, want string) {
	t.Helper()
	if want == "" {
		if err != nil {
			t.Errorf("expected no error, got %v", err)
		}
		return
	}
	if err == nil {
		t.Fatalf("expected error %q, got nil", want)
	}
	if err.Error() != want {
		t.Errorf("expected error %q, got %q", want, err.Error())
	}
}
