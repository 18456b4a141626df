package textutil

import "strings"

var generationalSuffixes = map[string]bool{
	"Jr": true, "Sr": true, "II": true, "III": true, "IV": true, "V": true,
}

// SplitName derives (first, last) components from a full name, ignoring
// generational suffixes. A single-word name is used for both components.
func SplitName(fullName string) (first, last string) {
	parts := strings.Fields(strings.TrimSpace(fullName))
	if len(parts) == 0 {
		return "", ""
	}
	if len(parts) == 1 {
		return parts[0], parts[0]
	}
	clean := parts[:0:0]
	for _, p := range parts {
		if generationalSuffixes[strings.TrimRight(p, ".")] {
			continue
		}
		clean = append(clean, p)
	}
	if len(clean) == 0 {
		clean = parts
	}
	return clean[0], clean[len(clean)-1]
}
