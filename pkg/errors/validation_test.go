package errors

import (
	"strings"
	"testing"
)

func TestValidateIdentifier(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"semester", "2024-1", false},
		{"week", "week-07", false},
		{"dotted", "hk1.2024", false},
		{"underscore", "w_3", false},

		{"empty", "", true},
		{"too long", strings.Repeat("a", 65), true},
		{"path traversal", "a..b", true},
		{"slash", "2024/1", true},
		{"backslash", "2024\\1", true},
		{"leading dash", "-w1", true},
		{"null byte", "w\x001", true},
		{"newline", "w\n1", true},
		{"space", "week 1", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateIdentifier("week", tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateIdentifier(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidWeek) {
				t.Errorf("error code = %q, want %q", GetCode(err), ErrCodeInvalidWeek)
			}
		})
	}
}

func TestValidateDate(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"2024-09-04", false},
		{"2024-02-29", false},
		{"2023-02-29", true},
		{"04/09/2024", true},
		{"", true},
	}
	for _, tt := range tests {
		err := ValidateDate(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateDate(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
		}
	}
}

func TestValidateClock(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"07:00", false},
		{"23:59", false},
		{"7:00", true},
		{"24:00", true},
		{"12:60", true},
		{"", true},
	}
	for _, tt := range tests {
		err := ValidateClock(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateClock(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
		}
	}
}

func TestValidateURL(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"https://portal.example.edu/api", false},
		{"http://localhost:8080", false},
		{"ftp://example.com", true},
		{"", true},
	}
	for _, tt := range tests {
		err := ValidateURL(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateURL(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
		}
	}
}
