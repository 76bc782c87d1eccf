package domain

import "strings"

// ValidName reports whether a display name is non-empty after trimming and
// within the length limit.
func ValidName(name string, maxLen int) bool {
	trimmed := strings.TrimSpace(name)
	return len(trimmed) > 0 && len([]rune(trimmed)) <= maxLen
}

// ValidRoomCode reports whether a code is exactly width digits.
func ValidRoomCode(code string, width int) bool {
	if len(code) != width {
		return false
	}
	for _, r := range code {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// ValidChatText reports whether a chat message is non-empty after trimming
// and within the length limit.
func ValidChatText(text string, maxLen int) bool {
	trimmed := strings.TrimSpace(text)
	return len(trimmed) > 0 && len([]rune(trimmed)) <= maxLen
}
