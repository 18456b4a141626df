package reconcile

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"statehouse-backend/services/members"
	"statehouse-backend/services/seatstore"
)

// KeySet is the set of district keys the store actually contains for the
// current cycle, used to confirm a candidate canonicalization.
type KeySet map[seatstore.SeatKey]bool

func (k KeySet) has(state, chamber, district string) bool {
	return k[seatstore.SeatKey{State: state, Chamber: chamber, District: district}]
}

var (
	numericRegex    = regexp.MustCompile(`^\d+$`)
	pairedABRegex   = regexp.MustCompile(`^(\d+)([AB])$`)
	positionRegex   = regexp.MustCompile(`^(\d+)-Position\s+\d+$`)
	maSuffixRegex   = regexp.MustCompile(`\s+District$`)
	senateOrdinals  = []string{"1st ", "2nd ", "3rd ", "4th ", "5th "}
	ordinalSpelling = map[string]string{
		"1st ": "First ", "2nd ": "Second ", "3rd ": "Third ",
		"4th ": "Fourth ", "5th ": "Fifth ",
	}
)

// Normalizer maps a source district label to the store's canonical
// district key for a (state, chamber). It carries the alphabetical-rank
// maps for named-district chambers, built once per run from the full
// member enumeration; the rank of any one district depends on the whole
// set, so the maps cannot be hard-coded.
type Normalizer struct {
	maHouse  map[string]string
	maSenate map[string]string
}

// sortableName rewrites a source district name into the form the store
// sorted when it assigned numbers: spelled-out leading ordinals for
// Senate districts and no Oxford comma.
func sortableName(name, chamber string) string {
	result := name
	if chamber == "Senate" {
		for _, abbr := range senateOrdinals {
			if strings.HasPrefix(result, abbr) {
				result = ordinalSpelling[abbr] + result[len(abbr):]
				break
			}
		}
	}
	return strings.ReplaceAll(result, ", and ", " and ")
}

func buildRankMap(names map[string]bool, chamber string) map[string]string {
	sorted := make([]string, 0, len(names))
	for name := range names {
		sorted = append(sorted, sortableName(name, chamber))
	}
	sort.Strings(sorted)

	rank := make(map[string]string, len(sorted))
	for i, name := range sorted {
		rank[name] = strconv.Itoa(i + 1)
	}

	byRaw := make(map[string]string, len(names))
	for name := range names {
		if num, ok := rank[sortableName(name, chamber)]; ok {
			byRaw[name] = num
		}
	}
	return byRaw
}

// BuildNormalizer derives the per-run district maps from the complete
// source record set. Massachusetts names its districts; the store numbers
// them by the 1-based rank of each name in the alphabetically sorted full
// list, so both chambers' rank maps are rebuilt from scratch here.
func BuildNormalizer(records []members.Record) Normalizer {
	houseNames := map[string]bool{}
	senateNames := map[string]bool{}
	for _, r := range records {
		if r.State != "MA" {
			continue
		}
		name := maSuffixRegex.ReplaceAllString(r.District, "")
		switch r.Chamber {
		case "House":
			houseNames[name] = true
		case "Senate":
			senateNames[name] = true
		}
	}
	return Normalizer{
		maHouse:  buildRankMap(houseNames, "House"),
		maSenate: buildRankMap(senateNames, "Senate"),
	}
}

// Canonicalize resolves a raw source district label to the store key for
// that (state, chamber), confirming every candidate against the known key
// set. Returns ok=false when no rule produces a key the store contains;
// callers must surface that as an explicit no-district-match, never guess.
func (n Normalizer) Canonicalize(state, chamber, raw string, known KeySet) (string, bool) {
	district := strings.TrimSpace(raw)

	if known.has(state, chamber, district) {
		return district, true
	}

	// numeric labels: strip leading zeros
	if numericRegex.MatchString(district) {
		stripped := strings.TrimLeft(district, "0")
		if stripped == "" {
			stripped = "0"
		}
		if known.has(state, chamber, stripped) {
			return stripped, true
		}
	}

	// MA named districts resolve through the alphabetical-rank maps
	if state == "MA" {
		name := maSuffixRegex.ReplaceAllString(district, "")
		var rankMap map[string]string
		switch chamber {
		case "House":
			rankMap = n.maHouse
		case "Senate":
			rankMap = n.maSenate
		}
		if num, ok := rankMap[name]; ok && known.has(state, chamber, num) {
			return num, true
		}
	}

	// MN House sub-districts: Senate district N splits into NA and NB,
	// stored as 2N-1 and 2N
	if state == "MN" && chamber == "House" {
		if m := pairedABRegex.FindStringSubmatch(district); m != nil {
			parent, _ := strconv.Atoi(m[1])
			num := 2*parent - 1
			if m[2] == "B" {
				num = 2 * parent
			}
			key := strconv.Itoa(num)
			if known.has(state, chamber, key) {
				return key, true
			}
		}
	}

	// AK Senate letter districts: A=1 through T=20
	if state == "AK" && chamber == "Senate" && len(district) == 1 {
		letter := district[0]
		if letter >= 'a' && letter <= 'z' {
			letter -= 'a' - 'A'
		}
		if letter >= 'A' && letter <= 'Z' {
			key := strconv.Itoa(int(letter-'A') + 1)
			if known.has(state, chamber, key) {
				return key, true
			}
		}
	}

	// paired two-member lower chambers: the base district groups both
	// seats, so "1-Position 2" and "1B" both resolve to "1"
	if pairedHouseState(state) && (chamber == "House" || chamber == "Assembly") {
		base := ""
		if m := positionRegex.FindStringSubmatch(district); m != nil {
			base = m[1]
		} else if m := pairedABRegex.FindStringSubmatch(district); m != nil {
			base = m[1]
		}
		if base != "" && known.has(state, chamber, base) {
			return base, true
		}
	}

	if state == "VT" {
		if key, ok := n.canonicalizeVermont(state, chamber, district, known); ok {
			return key, true
		}
	}

	return "", false
}

func pairedHouseState(state string) bool {
	switch state {
	case "WA", "ID", "NJ", "ND", "SD", "AZ":
		return true
	}
	return false
}

// canonicalizeVermont handles the named multi-county districts: the store
// may use spaces where the source hyphenates ("Grand-Isle-Chittenden" vs
// "Grand Isle-Chittenden"), may drop a trailing "-1" on single districts,
// and may merge two source-separate Senate districts into one combined
// name ("Essex" is a component of "Essex-Orleans").
func (n Normalizer) canonicalizeVermont(state, chamber, district string, known KeySet) (string, bool) {
	if base, ok := strings.CutSuffix(district, "-1"); ok {
		if known.has(state, chamber, base) {
			return base, true
		}
	}

	if strings.Contains(district, "-") {
		parts := strings.Split(district, "-")

		allSpaces := strings.Join(parts, " ")
		if known.has(state, chamber, allSpaces) {
			return allSpaces, true
		}

		// first i words joined by spaces, the rest by hyphens
		for i := 2; i < len(parts); i++ {
			candidate := strings.Join(parts[:i], " ") + "-" + strings.Join(parts[i:], "-")
			if known.has(state, chamber, candidate) {
				return candidate, true
			}
			if base, ok := strings.CutSuffix(candidate, "-1"); ok {
				if known.has(state, chamber, base) {
					return base, true
				}
			}
		}
	}

	if chamber == "Senate" {
		spaced := strings.ReplaceAll(district, "-", " ")
		keys := make([]seatstore.SeatKey, 0, len(known))
		for key := range known {
			keys = append(keys, key)
		}
		sort.Slice(keys, func(i, j int) bool { return keys[i].District < keys[j].District })
		for _, key := range keys {
			if key.State != "VT" || key.Chamber != "Senate" {
				continue
			}
			for _, component := range strings.Split(key.District, "-") {
				if component == district || component == spaced {
					return key.District, true
				}
			}
		}
	}

	return "", false
}
