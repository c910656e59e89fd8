package helpers

import (
	"fmt"
	"strconv"
	"strings"
)

// StringTrim removes surrounding whitespace and quotes that clients sometimes
// leave around path values.
func StringTrim(s string) string {
	s = strings.TrimSpace(s)
	return strings.Trim(s, "\"'")
}

// ParseID parses a positive numeric event id from a path parameter.
func ParseID(raw string) (int64, error) {
	raw = StringTrim(raw)
	if raw == "" {
		return 0, fmt.Errorf("event ID is required")
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid event ID %q: %w", raw, err)
	}
	if id <= 0 {
		return 0, fmt.Errorf("invalid event ID %d: must be positive", id)
	}
	return id, nil
}
