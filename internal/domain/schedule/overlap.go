package schedule

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseMinutes converts an HH:MM clock string into minutes since midnight.
func ParseMinutes(value string) (int, error) {
	parts := strings.SplitN(strings.TrimSpace(value), ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid time %q", value)
	}
	hours, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid time %q", value)
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("invalid time %q", value)
	}
	if hours < 0 || hours > 23 || minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("time %q out of range", value)
	}
	return hours*60 + minutes, nil
}

// Overlaps applies the half-open overlap rule to two windows expressed in
// minutes since midnight: back-to-back windows do not overlap.
func Overlaps(startA, endA, startB, endB int) bool {
	return startA < endB && endA > startB
}

// TimesOverlap parses two HH:MM windows and reports whether they overlap.
// Malformed input is reported as an error rather than a silent non-conflict.
func TimesOverlap(startA, endA, startB, endB string) (bool, error) {
	sa, err := ParseMinutes(startA)
	if err != nil {
		return false, err
	}
	ea, err := ParseMinutes(endA)
	if err != nil {
		return false, err
	}
	sb, err := ParseMinutes(startB)
	if err != nil {
		return false, err
	}
	eb, err := ParseMinutes(endB)
	if err != nil {
		return false, err
	}
	return Overlaps(sa, ea, sb, eb), nil
}
