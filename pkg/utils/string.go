package utils

// Truncate shortens s to at most maxLen runes, adding "..." when anything was
// cut.
func Truncate(s string, maxLen int) string {
	runes := 0
	for i := range s {
		if runes == maxLen {
			return s[:i] + "..."
		}
		runes++
	}
	return s
}
