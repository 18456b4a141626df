package reconcile

import (
	"fmt"
	"io"
	"sort"

	"github.com/antzucaro/matchr"
	"github.com/jedib0t/go-pretty/v6/table"

	"statehouse-backend/lib/textutil"
)

// categoryOrder fixes the report layout.
var categoryOrder = []Category{
	CategoryMatch,
	CategoryDateUpdate,
	CategoryMidtermStart,
	CategoryNameMismatch,
	CategoryVacancyConfirmed,
	CategoryVacancyNew,
	CategoryFilledVacancy,
	CategoryNoDistrictMatch,
}

var categoryTitles = map[Category]string{
	CategoryMatch:            "Matches (no action)",
	CategoryDateUpdate:       "Date updates possible",
	CategoryMidtermStart:     "Mid-term starts detected",
	CategoryNameMismatch:     "Name mismatches",
	CategoryVacancyConfirmed: "Vacancies (confirmed)",
	CategoryVacancyNew:       "Vacancies (new in source)",
	CategoryFilledVacancy:    "Filled vacancies",
	CategoryNoDistrictMatch:  "No district match",
}

// WriteSummary prints the aggregate category counts.
func WriteSummary(w io.Writer, gaps []Gap) {
	counts := map[Category]int{}
	for _, g := range gaps {
		counts[g.Category]++
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"Category", "Count"})
	for _, cat := range categoryOrder {
		t.AppendRow(table.Row{categoryTitles[cat], counts[cat]})
	}
	issues := counts[CategoryNameMismatch] + counts[CategoryVacancyNew] +
		counts[CategoryFilledVacancy] + counts[CategoryMidtermStart]
	t.AppendFooter(table.Row{"Issues to investigate", issues})
	t.Render()
}

func byState(gaps []Gap) []Gap {
	ordered := make([]Gap, len(gaps))
	copy(ordered, gaps)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].State < ordered[j].State })
	return ordered
}

// WriteDetail prints per-record tables for every category that needs
// review. Matches are counted in the summary only.
func WriteDetail(w io.Writer, gaps []Gap) {
	grouped := map[Category][]Gap{}
	for _, g := range gaps {
		grouped[g.Category] = append(grouped[g.Category], g)
	}

	if mismatches := grouped[CategoryNameMismatch]; len(mismatches) > 0 {
		fmt.Fprintf(w, "\n%s:\n", categoryTitles[CategoryNameMismatch])
		t := table.NewWriter()
		t.SetOutputMirror(w)
		t.SetStyle(table.StyleRounded)
		t.AppendHeader(table.Row{"Seat", "Source", "Store", "Similarity", "Class", "Action", "Notes"})
		for _, g := range byState(mismatches) {
			t.AppendRow(table.Row{
				g.SeatLabel, g.SourceName, g.StoreHolder,
				similarity(g.SourceName, g.StoreHolder),
				g.Classification, g.Action, mismatchNotes(g),
			})
		}
		t.Render()
	}

	if vacancies := grouped[CategoryVacancyNew]; len(vacancies) > 0 {
		fmt.Fprintf(w, "\n%s:\n", categoryTitles[CategoryVacancyNew])
		t := table.NewWriter()
		t.SetOutputMirror(w)
		t.SetStyle(table.StyleRounded)
		t.AppendHeader(table.Row{"Seat", "Store holder", "Special on record"})
		for _, g := range byState(vacancies) {
			t.AppendRow(table.Row{g.SeatLabel, g.StoreHolder, g.HasSpecialElection})
		}
		t.Render()
	}

	if filled := grouped[CategoryFilledVacancy]; len(filled) > 0 {
		fmt.Fprintf(w, "\n%s:\n", categoryTitles[CategoryFilledVacancy])
		t := table.NewWriter()
		t.SetOutputMirror(w)
		t.SetStyle(table.StyleRounded)
		t.AppendHeader(table.Row{"Seat", "Source holder", "Party", "Assumed office"})
		for _, g := range byState(filled) {
			t.AppendRow(table.Row{g.SeatLabel, g.SourceName, g.SourceParty, g.AssumedOffice})
		}
		t.Render()
	}

	if midterms := grouped[CategoryMidtermStart]; len(midterms) > 0 {
		fmt.Fprintf(w, "\n%s:\n", categoryTitles[CategoryMidtermStart])
		t := table.NewWriter()
		t.SetOutputMirror(w)
		t.SetStyle(table.StyleRounded)
		t.AppendHeader(table.Row{"Seat", "Holder", "Assumed office", "Store start", "Store reason"})
		for _, g := range byState(midterms) {
			t.AppendRow(table.Row{g.SeatLabel, g.SourceName, g.AssumedOffice, g.StoreStartDate, g.StoreStartReason})
		}
		t.Render()
	}

	if unmatched := grouped[CategoryNoDistrictMatch]; len(unmatched) > 0 {
		fmt.Fprintf(w, "\n%s:\n", categoryTitles[CategoryNoDistrictMatch])
		t := table.NewWriter()
		t.SetOutputMirror(w)
		t.SetStyle(table.StyleRounded)
		t.AppendHeader(table.Row{"State", "Chamber", "District", "Holder"})
		for _, g := range byState(unmatched) {
			name := g.SourceName
			if name == "" {
				name = "VACANT"
			}
			t.AppendRow(table.Row{g.State, g.Chamber, g.District, name})
		}
		t.Render()
	}
}

// similarity scores a mismatched name pair so a reviewer can spot the
// near-misses (likely nicknames or spelling drift) at a glance.
func similarity(a, b string) string {
	if a == "" || b == "" {
		return "-"
	}
	score := matchr.JaroWinkler(textutil.NormalizeName(a), textutil.NormalizeName(b), true)
	return fmt.Sprintf("%.2f", score)
}

func mismatchNotes(g Gap) string {
	notes := g.Notes
	if g.HasSpecialElection {
		if notes != "" {
			notes += "; "
		}
		notes += "has special"
	}
	return notes
}
