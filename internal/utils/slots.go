package utils

import "regexp"

// Slots are stored as "HH:MM-HH:MM" with zero-padded 24-hour times.
var slotPattern = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]-([01][0-9]|2[0-3]):[0-5][0-9]$`)

// ValidSlot reports whether s is a well-formed time slot.
func ValidSlot(s string) bool {
	return slotPattern.MatchString(s)
}
