package vars

import "strings"

// FirstNonZero picks the first value that is set, in priority order
func FirstNonZero[T comparable](values ...T) (ret T) {
	var zero T
	for _, value := range values {
		if value != zero {
			return value
		}
	}
	return
}

// StrToBool parses flag words like yes, no, t, f. Unknown words are false.
func StrToBool(str string) bool {
	switch strings.ToLower(strings.TrimSpace(str)) {
	case "true", "t", "yes", "y", "1", "on":
		return true
	}
	return false
}
