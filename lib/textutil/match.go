package textutil

import "strings"

// NamesMatch reports whether two full-name strings denote the same person.
//
// The rules are deliberately permissive: this feeds a human-reviewed report,
// so recall is favored over precision and false positives are expected to be
// caught in review. It is symmetric and reflexive for non-empty names.
func NamesMatch(a, b string) bool {
	if a == "" || b == "" {
		return false
	}

	n1 := NormalizeName(a)
	n2 := NormalizeName(b)
	if n1 == n2 {
		return true
	}

	parts1 := strings.Fields(n1)
	parts2 := strings.Fields(n2)
	if len(parts1) == 0 || len(parts2) == 0 {
		return false
	}

	// a bare compound-last-name fragment like "Harris" vs "Harris Davila"
	// has no first token to compare, so a token-level hit is enough
	if len(parts1) == 1 && containsToken(parts2, parts1[0]) {
		return true
	}
	if len(parts2) == 1 && containsToken(parts1, parts2[0]) {
		return true
	}

	if !lastNamesMatch(parts1, parts2) {
		return false
	}
	return firstNamesMatch(parts1, parts2)
}

func containsToken(parts []string, token string) bool {
	for _, p := range parts {
		if p == token {
			return true
		}
	}
	return false
}

// lastNamesMatch compares final tokens, falling back to the remainder after
// the first token so compound last names like "Harris Davila" still match
// "Harris".
func lastNamesMatch(parts1, parts2 []string) bool {
	last1 := parts1[len(parts1)-1]
	last2 := parts2[len(parts2)-1]
	if last1 == last2 {
		return true
	}

	full1 := last1
	if len(parts1) > 1 {
		full1 = strings.Join(parts1[1:], " ")
	}
	full2 := last2
	if len(parts2) > 1 {
		full2 = strings.Join(parts2[1:], " ")
	}
	if strings.HasPrefix(full1, full2) || strings.HasPrefix(full2, full1) {
		return true
	}
	return strings.Contains(full2, last1) || strings.Contains(full1, last2)
}

func firstNamesMatch(parts1, parts2 []string) bool {
	first1 := parts1[0]
	first2 := parts2[0]

	if first1 == first2 {
		return true
	}
	if NicknamesMatch(first1, first2) {
		return true
	}

	// one side is a bare initial
	if len(first1) <= 2 && strings.HasPrefix(first2, strings.TrimRight(first1, ".")) {
		return true
	}
	if len(first2) <= 2 && strings.HasPrefix(first1, strings.TrimRight(first2, ".")) {
		return true
	}

	// shared 3-char prefix; the length guard keeps very short names from
	// colliding
	if len(first1) >= 3 && len(first2) >= 3 && first1[:3] == first2[:3] {
		return true
	}

	// multi-word first names like "Maria Luisa": retry the nickname table
	// against an increasing join of leading tokens
	for split := 1; split < len(parts1); split++ {
		if NicknamesMatch(strings.Join(parts1[:split], " "), first2) {
			return true
		}
	}
	for split := 1; split < len(parts2); split++ {
		if NicknamesMatch(first1, strings.Join(parts2[:split], " ")) {
			return true
		}
	}

	return false
}
