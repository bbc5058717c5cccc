package errors

import (
	"strings"
	"testing"
)

func TestValidateID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid simple", "entrance", false},
		{"valid uuid", "3f1c9a52-6a0e-4b7d-9d61-0c3b1f4e8a77", false},
		{"valid with space", "Small Room 1", false},

		{"empty", "", true},
		{"too long", strings.Repeat("a", 200), true},
		{"traversal", "a..b", true},
		{"slash", "a/b", true},
		{"backslash", "a\\b", true},
		{"control char", "a\x01b", true},
		{"newline", "a\nb", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateID(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateID(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidInput) {
				t.Errorf("ValidateID(%q) code = %v, want %v", tt.input, GetCode(err), ErrCodeInvalidInput)
			}
		})
	}
}

func TestValidateLevelFilename(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid", "crypt.toml", false},
		{"valid with dash", "level-1.toml", false},

		{"empty", "", true},
		{"with path /", "levels/crypt.toml", true},
		{"with path \\", "levels\\crypt.toml", true},
		{"hidden", ".crypt.toml", true},
		{"wrong extension", "crypt.json", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateLevelFilename(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateLevelFilename(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
