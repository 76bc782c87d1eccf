package domain

import (
	"strings"
	"testing"
)

func TestValidName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"Simple", "Alice", true},
		{"TrimmedToEmpty", "   ", false},
		{"Empty", "", false},
		{"AtLimit", strings.Repeat("x", 20), true},
		{"OverLimit", strings.Repeat("x", 21), false},
		{"PaddedWithinLimit", "  Alice  ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidName(tt.input, 20); got != tt.want {
				t.Errorf("ValidName(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestValidRoomCode(t *testing.T) {
	tests := []struct {
		name string
		code string
		want bool
	}{
		{"FourDigits", "0427", true},
		{"TooShort", "042", false},
		{"TooLong", "04271", false},
		{"NonDigit", "04a7", false},
		{"Empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidRoomCode(tt.code, 4); got != tt.want {
				t.Errorf("ValidRoomCode(%q) = %v, want %v", tt.code, got, tt.want)
			}
		})
	}
}

func TestValidChatText(t *testing.T) {
	if !ValidChatText("hello", 200) {
		t.Error("plain message rejected")
	}
	if ValidChatText("   ", 200) {
		t.Error("whitespace-only message accepted")
	}
	if ValidChatText(strings.Repeat("x", 201), 200) {
		t.Error("over-limit message accepted")
	}
}
