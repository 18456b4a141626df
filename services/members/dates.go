package members

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// AssumedDate is a parsed "Date assumed office" value. YearOnly marks
// dates the source reports with no month or day; those default to
// January 1 when rendered.
type AssumedDate struct {
	Year     int
	Month    int
	Day      int
	YearOnly bool
}

func (d AssumedDate) ISO() string {
	month := d.Month
	day := d.Day
	if month == 0 {
		month = 1
	}
	if day == 0 {
		day = 1
	}
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, month, day)
}

var (
	fullDateRegex = regexp.MustCompile(`^(\w+)\s+(\d{1,2}),?\s+(\d{4})$`)
	yearOnlyRegex = regexp.MustCompile(`^(\d{4})$`)
)

var monthNumbers = map[string]int{
	"january": 1, "february": 2, "march": 3, "april": 4,
	"may": 5, "june": 6, "july": 7, "august": 8,
	"september": 9, "october": 10, "november": 11, "december": 12,
}

// ParseAssumedDate parses the source's assumed-office field, either
// "January 10, 2017" or a bare year "2015". Placeholder values and
// unparseable strings return ok=false.
func ParseAssumedDate(s string) (AssumedDate, bool) {
	s = strings.TrimSpace(s)
	switch s {
	case "", "—", "-", "N/A":
		return AssumedDate{}, false
	}

	if m := fullDateRegex.FindStringSubmatch(s); m != nil {
		month := monthNumbers[strings.ToLower(m[1])]
		if month == 0 {
			return AssumedDate{}, false
		}
		day, _ := strconv.Atoi(m[2])
		year, _ := strconv.Atoi(m[3])
		return AssumedDate{Year: year, Month: month, Day: day}, true
	}

	if m := yearOnlyRegex.FindStringSubmatch(s); m != nil {
		year, _ := strconv.Atoi(m[1])
		return AssumedDate{Year: year, Month: 1, Day: 1, YearOnly: true}, true
	}

	return AssumedDate{}, false
}
