// Package reconcile diffs source officeholder records against the store
// of record and turns the differences into an ordered, idempotent
// correction plan.
package reconcile

// Category is the single classification assigned to every pairing of a
// source record with a store seat (or the absence of one).
type Category string

const (
	// CategoryMatch means the source and store agree; no action.
	CategoryMatch Category = "match"
	// CategoryDateUpdate means the holder matches but the store carries a
	// generic placeholder start date.
	CategoryDateUpdate Category = "date_update"
	// CategoryMidtermStart means the holder matches but the assumed-office
	// date falls outside the normal inauguration window and no special
	// election is on record.
	CategoryMidtermStart Category = "midterm_start"
	// CategoryNameMismatch means both sides report a holder and the names
	// do not match.
	CategoryNameMismatch Category = "name_mismatch"
	// CategoryVacancyNew means the source says vacant while the store
	// still has a holder.
	CategoryVacancyNew Category = "vacancy_new"
	// CategoryVacancyConfirmed means both sides say vacant.
	CategoryVacancyConfirmed Category = "vacancy_confirmed"
	// CategoryFilledVacancy means the source has a holder where the store
	// says vacant.
	CategoryFilledVacancy Category = "filled_vacancy"
	// CategoryNoDistrictMatch means the district label resolved to no
	// store district; reported, never acted on.
	CategoryNoDistrictMatch Category = "no_district_match"
)

// Action is the store mutation a gap calls for.
type Action string

const (
	ActionNone            Action = "none"
	ActionReportOnly      Action = "report_only"
	ActionUpdateStartDate Action = "update_start_date"
	// ActionReviewStartReason flags a probable mid-term installation for
	// human review; the start_reason is never silently assumed.
	ActionReviewStartReason Action = "review_start_reason"
	ActionCloseSeatTerm     Action = "close_seat_term"
	ActionCreateSeatTerm    Action = "create_seat_term"
	ActionReplaceHolder     Action = "replace_holder"
	ActionUpdateHolder      Action = "update_holder"
	ActionUpdateName        Action = "update_name"
)

// Gap is one comparison result: a district-group slot annotated with its
// classification and required action. Gaps are transient run artifacts,
// never persisted.
type Gap struct {
	State    string `json:"state"`
	Chamber  string `json:"chamber"`
	District string `json:"district"`

	Category Category `json:"category"`
	Action   Action   `json:"action"`
	// Classification refines name mismatches: nickname, married_name,
	// family, stale_source, skip, or real_replacement.
	Classification string `json:"classification,omitempty"`

	SeatID    int64  `json:"seat_id,omitempty"`
	TermID    int64  `json:"term_id,omitempty"`
	SeatLabel string `json:"seat_label,omitempty"`

	SourceName    string `json:"source_name,omitempty"`
	SourceParty   string `json:"source_party,omitempty"`
	AssumedOffice string `json:"assumed_office,omitempty"`

	StoreHolder      string `json:"store_holder,omitempty"`
	StoreParty       string `json:"store_party,omitempty"`
	StoreStartDate   string `json:"store_start_date,omitempty"`
	StoreStartReason string `json:"store_start_reason,omitempty"`

	HasSpecialElection bool `json:"has_special_election,omitempty"`

	// StartReason and EndReason are filled by research before planning.
	StartReason string `json:"start_reason,omitempty"`
	EndReason   string `json:"end_reason,omitempty"`
	Notes       string `json:"notes,omitempty"`
}

// Actionable reports whether the gap's action mutates the store.
func (g Gap) Actionable() bool {
	switch g.Action {
	case ActionCloseSeatTerm, ActionCreateSeatTerm, ActionReplaceHolder,
		ActionUpdateHolder, ActionUpdateName, ActionUpdateStartDate:
		return true
	}
	return false
}
