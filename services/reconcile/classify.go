package reconcile

import (
	"statehouse-backend/services/members"
	"statehouse-backend/services/seatstore"
)

// bare-year assumed-office dates older than this are treated as normal
// inaugurations; recent ones lack the precision to rule out a mid-term
// start and get flagged
const bareYearCutoff = 2024

// placeholder start date assigned during the initial bulk load
const placeholderStartDate = "2025-01-01"

// OverrideEntry names one district group in the curated overrides config.
type OverrideEntry struct {
	State    string `json:"state"`
	Chamber  string `json:"chamber"`
	District string `json:"district"`
	Note     string `json:"note"`
}

// Overrides is the curated exceptions list for name-mismatch
// sub-classification. Heuristics cannot reliably tell a nickname from a
// married name from a genuine replacement, so these facts are maintained
// by hand in a versioned config rather than inferred.
type Overrides struct {
	// SamePerson lists districts where the mismatched names are known to
	// denote one person (nickname, use-name).
	SamePerson []OverrideEntry `json:"same_person"`
	// MarriedName lists known maiden/married name changes.
	MarriedName []OverrideEntry `json:"married_name"`
	// StaleSource lists districts where the store's holder was loaded
	// from an upstream that was already out of date.
	StaleSource []OverrideEntry `json:"stale_source"`
	// Family lists look-alike mismatches that are actually two relatives,
	// so the name-fix shortcut must not apply.
	Family []OverrideEntry `json:"family"`
	// Skip lists districts where the source itself is known to lag.
	Skip []OverrideEntry `json:"skip"`
}

func containsKey(entries []OverrideEntry, state, chamber, district string) bool {
	for _, e := range entries {
		if e.State == state && e.Chamber == chamber && e.District == district {
			return true
		}
	}
	return false
}

// Classifier assigns exactly one category and action to every pairing.
type Classifier struct {
	Overrides Overrides
	// Specials holds the district groups with a special election on
	// record; a special explains a mid-term assumed-office date.
	Specials map[seatstore.SeatKey]bool
}

// IsMidterm reports whether an assumed-office date suggests the holder
// took office mid-term. January and December inaugurations are normal in
// every state regardless of year parity.
func IsMidterm(d members.AssumedDate) bool {
	if d.YearOnly {
		return d.Year >= bareYearCutoff
	}
	return d.Month != 1 && d.Month != 12
}

// Classify turns one pairing into a gap record. Every pairing yields
// exactly one category.
func (c Classifier) Classify(state, chamber, district string, p Pairing) Gap {
	gap := Gap{State: state, Chamber: chamber, District: district}
	hasSpecial := c.Specials[seatstore.SeatKey{State: state, Chamber: chamber, District: district}]

	if p.Source != nil {
		gap.SourceName = p.Source.Name
		gap.SourceParty = p.Source.Party
		gap.AssumedOffice = p.Source.AssumedOffice
	}
	if p.Seat != nil {
		gap.SeatID = p.Seat.SeatID
		gap.TermID = p.Seat.OpenTermID
		gap.SeatLabel = p.Seat.SeatLabel
		gap.StoreHolder = p.Seat.CurrentHolder
		gap.StoreParty = p.Seat.CurrentHolderParty
		gap.StoreStartDate = p.Seat.OpenTermStartDate
		gap.StoreStartReason = p.Seat.OpenTermStartReason
	}
	if gap.SeatLabel == "" {
		gap.SeatLabel = state + " " + chamber + " " + district
	}

	switch p.Kind {
	case PairNameMatched:
		assumed, hasDate := members.ParseAssumedDate(gap.AssumedOffice)
		switch {
		case hasDate && IsMidterm(assumed) && !hasSpecial:
			gap.Category = CategoryMidtermStart
			gap.Action = ActionReviewStartReason
		case hasDate && gap.StoreStartDate == placeholderStartDate && gap.StoreStartReason == "elected":
			gap.Category = CategoryDateUpdate
			gap.Action = ActionUpdateStartDate
		default:
			gap.Category = CategoryMatch
			gap.Action = ActionNone
		}

	case PairHolderChanged:
		gap.Category = CategoryNameMismatch
		gap.HasSpecialElection = hasSpecial
		c.subclassifyMismatch(&gap)

	case PairFilledVacantSeat:
		gap.Category = CategoryFilledVacancy
		gap.Action = ActionCreateSeatTerm

	case PairFilledNoSeat:
		gap.Category = CategoryNameMismatch
		gap.Action = ActionReportOnly
		gap.Notes = "no unmatched store seat"

	case PairVacantFilledSeat:
		gap.Category = CategoryVacancyNew
		gap.HasSpecialElection = hasSpecial
		gap.Action = ActionCloseSeatTerm

	case PairBothVacant:
		gap.Category = CategoryVacancyConfirmed
		gap.Action = ActionNone

	case PairStoreOnly:
		// possible source staleness or incomplete coverage; always
		// reported, never auto-corrected
		gap.Category = CategoryNameMismatch
		gap.Action = ActionReportOnly
		gap.Notes = "not in source"
	}

	return gap
}

// subclassifyMismatch resolves a holder-changed gap against the override
// tables, in priority order. Only a real replacement may create a new
// candidate; the same-person cases must correct the existing row.
func (c Classifier) subclassifyMismatch(gap *Gap) {
	state, chamber, district := gap.State, gap.Chamber, gap.District

	switch {
	case containsKey(c.Overrides.Skip, state, chamber, district):
		gap.Classification = "skip"
		gap.Action = ActionReportOnly
	case containsKey(c.Overrides.SamePerson, state, chamber, district):
		gap.Classification = "nickname"
		gap.Action = ActionUpdateName
	case containsKey(c.Overrides.MarriedName, state, chamber, district):
		gap.Classification = "married_name"
		gap.Action = ActionUpdateName
	case containsKey(c.Overrides.StaleSource, state, chamber, district):
		gap.Classification = "stale_source"
		gap.Action = ActionUpdateHolder
	case containsKey(c.Overrides.Family, state, chamber, district):
		gap.Classification = "family"
		gap.Action = ActionReplaceHolder
	default:
		gap.Classification = "real_replacement"
		gap.Action = ActionReplaceHolder
	}
}

// NoDistrictGap builds the report-only gap for a source record whose
// district label resolved to nothing in the store.
func NoDistrictGap(r members.Record) Gap {
	return Gap{
		State:         r.State,
		Chamber:       r.Chamber,
		District:      r.District,
		SeatLabel:     r.State + " " + r.Chamber + " " + r.District,
		Category:      CategoryNoDistrictMatch,
		Action:        ActionReportOnly,
		SourceName:    r.Name,
		SourceParty:   r.Party,
		AssumedOffice: r.AssumedOffice,
	}
}
