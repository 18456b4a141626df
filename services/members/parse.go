package members

import (
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var (
	whitespaceRegex   = regexp.MustCompile(`\s+`)
	districtTailRegex = regexp.MustCompile(`(?i)District\s+(.+)$`)
	countyNumRegex    = regexp.MustCompile(`^(.+?)\s+(\d+)$`)
	trailingDistRegex = regexp.MustCompile(`\s+District$`)
	leadingDistRegex  = regexp.MustCompile(`^District\s+`)
)

func cleanCellText(s string) string {
	return strings.TrimSpace(whitespaceRegex.ReplaceAllString(s, " "))
}

// ExtractDistrict pulls the district label out of the Office column text.
//
// Examples:
//
//	"Texas State Senate District 1"                      -> "1"
//	"Maryland House of Delegates District 1A"            -> "1A"
//	"New Hampshire House of Representatives Belknap 5"   -> "Belknap-5"
//	"Vermont House of Representatives Addison 1 District" -> "Addison-1"
//	"Vermont State Senate Grand Isle District"           -> "Grand-Isle"
func ExtractDistrict(officeText, state, chamber string) string {
	text := strings.TrimSpace(officeText)

	// NH House districts are county name plus number, no "District" word.
	if state == "NH" && chamber == "House" {
		const prefix = "New Hampshire House of Representatives "
		if remainder, ok := strings.CutPrefix(text, prefix); ok {
			remainder = strings.TrimSpace(remainder)
			if m := countyNumRegex.FindStringSubmatch(remainder); m != nil {
				return m[1] + "-" + m[2]
			}
			return remainder
		}
	}

	// VT districts are named. Join words with hyphens to match the store's
	// "Addison-1" / "Caledonia-Essex" convention.
	if state == "VT" {
		for _, prefix := range []string{
			"Vermont House of Representatives ",
			"Vermont State Senate ",
		} {
			if remainder, ok := strings.CutPrefix(text, prefix); ok {
				remainder = trailingDistRegex.ReplaceAllString(strings.TrimSpace(remainder), "")
				return strings.ReplaceAll(remainder, " ", "-")
			}
		}
	}

	if m := districtTailRegex.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}

	// Fallback: everything after the last recognized chamber word.
	for _, pattern := range []string{
		"Senate ", "House of Representatives ", "House of Delegates ",
		"State Assembly ", "General Assembly ", "Assembly ", "Legislature ",
	} {
		idx := strings.LastIndex(text, pattern)
		if idx >= 0 {
			remainder := text[idx+len(pattern):]
			return strings.TrimSpace(leadingDistRegex.ReplaceAllString(remainder, ""))
		}
	}

	return text
}

func isVacantCell(name string) bool {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "vacant", "", "—", "-", "n/a":
		return true
	}
	return false
}

// ParseMemberTable parses a chamber roster page. The member table carries
// class "bptable gray" with columns Office | Name | Party | Date assumed
// office; some pages use "wikitable sortable" instead.
func ParseMemberTable(doc *goquery.Document, state, chamber string) ([]Record, error) {
	tables := doc.Find("table.bptable.gray")
	if tables.Length() == 0 {
		tables = doc.Find("table.wikitable.sortable")
	}
	if tables.Length() == 0 {
		return nil, fmt.Errorf("no member table found for %s %s", state, chamber)
	}

	memberTable := findMemberTable(tables)
	if memberTable == nil {
		return nil, fmt.Errorf("could not identify member table for %s %s", state, chamber)
	}

	var records []Record
	memberTable.Find("tr").Each(func(_ int, row *goquery.Selection) {
		if row.Find("th").Length() > 0 {
			return
		}
		cells := row.Find("td")
		if cells.Length() < 3 {
			return
		}

		office := cleanCellText(cells.Eq(0).Text())
		name := cleanCellText(cells.Eq(1).Text())
		party := cleanCellText(cells.Eq(2).Text())
		assumed := ""
		if cells.Length() >= 4 {
			assumed = cleanCellText(cells.Eq(3).Text())
		}

		district := ExtractDistrict(office, state, chamber)
		if district == "" {
			slog.Warn("skipping row with no district", "state", state, "chamber", chamber, "office", office)
			return
		}

		vacant := isVacantCell(name)
		if vacant {
			name = ""
			party = ""
		} else {
			party = PartyAbbrev(party)
		}

		records = append(records, Record{
			State:         state,
			Chamber:       chamber,
			District:      district,
			Name:          name,
			Party:         party,
			AssumedOffice: assumed,
			IsVacant:      vacant,
		})
	})

	return records, nil
}

// findMemberTable picks the table whose headers include both Office and
// Name, falling back to the first table with at least four columns.
func findMemberTable(tables *goquery.Selection) *goquery.Selection {
	var match *goquery.Selection
	tables.EachWithBreak(func(_ int, t *goquery.Selection) bool {
		hasOffice := false
		hasName := false
		t.Find("th").Each(func(_ int, th *goquery.Selection) {
			header := cleanCellText(th.Text())
			if strings.Contains(header, "Office") {
				hasOffice = true
			}
			if strings.Contains(header, "Name") {
				hasName = true
			}
		})
		if hasOffice && hasName {
			match = t
			return false
		}
		return true
	})
	if match != nil {
		return match
	}

	tables.EachWithBreak(func(_ int, t *goquery.Selection) bool {
		if t.Find("th").Length() >= 4 {
			match = t
			return false
		}
		return true
	})
	return match
}
