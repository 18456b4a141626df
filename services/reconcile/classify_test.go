package reconcile

import (
	"testing"

	"github.com/stretchr/testify/require"

	"statehouse-backend/services/members"
	"statehouse-backend/services/seatstore"
)

func TestIsMidterm(t *testing.T) {
	for _, tc := range []struct {
		date string
		want bool
	}{
		{"January 10, 2023", false},
		{"December 4, 2024", false},
		{"March 15, 2025", true},
		{"August 1, 2024", true},
		{"2015", false},
		{"2013", false},
		// a recent bare year is too imprecise to call normal
		{"2025", true},
	} {
		d, ok := members.ParseAssumedDate(tc.date)
		require.True(t, ok, tc.date)
		require.Equal(t, tc.want, IsMidterm(d), "date %q", tc.date)
	}
}

func classifyKind(t *testing.T, c Classifier, kind PairingKind, src *members.Record, seat *seatstore.Seat) Gap {
	t.Helper()
	return c.Classify("OK", "House", "71", Pairing{Kind: kind, Source: src, Seat: seat})
}

func TestClassifyMatched(t *testing.T) {
	c := Classifier{}
	seat := filledSeat(1, "", "Jane Doe")
	seat.OpenTermStartDate = "2023-01-10"
	src := filledRecord("Jane Doe")
	src.AssumedOffice = "January 10, 2023"

	gap := classifyKind(t, c, PairNameMatched, &src, &seat)
	require.Equal(t, CategoryMatch, gap.Category)
	require.Equal(t, ActionNone, gap.Action)
}

func TestClassifyDateUpdate(t *testing.T) {
	c := Classifier{}
	seat := filledSeat(1, "", "Jane Doe")
	seat.OpenTermStartDate = "2025-01-01"
	seat.OpenTermStartReason = "elected"
	src := filledRecord("Jane Doe")
	src.AssumedOffice = "January 8, 2025"

	gap := classifyKind(t, c, PairNameMatched, &src, &seat)
	require.Equal(t, CategoryDateUpdate, gap.Category)
	require.Equal(t, ActionUpdateStartDate, gap.Action)
}

func TestClassifyMidterm(t *testing.T) {
	seat := filledSeat(1, "", "Jane Doe")
	src := filledRecord("Jane Doe")
	src.AssumedOffice = "June 3, 2025"

	gap := Classifier{}.Classify("OK", "House", "71",
		Pairing{Kind: PairNameMatched, Source: &src, Seat: &seat})
	require.Equal(t, CategoryMidtermStart, gap.Category)
	require.Equal(t, ActionReviewStartReason, gap.Action)

	// a special election on record explains the off-cycle date
	withSpecial := Classifier{Specials: map[seatstore.SeatKey]bool{
		{State: "OK", Chamber: "House", District: "71"}: true,
	}}
	gap = withSpecial.Classify("OK", "House", "71",
		Pairing{Kind: PairNameMatched, Source: &src, Seat: &seat})
	require.Equal(t, CategoryMatch, gap.Category)
}

func TestClassifyMismatchOverrides(t *testing.T) {
	seat := filledSeat(1, "", "Old Holder")
	src := filledRecord("New Holder")

	for _, tc := range []struct {
		name           string
		overrides      Overrides
		classification string
		action         Action
	}{
		{
			"default real replacement",
			Overrides{},
			"real_replacement", ActionReplaceHolder,
		},
		{
			"same person",
			Overrides{SamePerson: []OverrideEntry{{State: "OK", Chamber: "House", District: "71"}}},
			"nickname", ActionUpdateName,
		},
		{
			"married name",
			Overrides{MarriedName: []OverrideEntry{{State: "OK", Chamber: "House", District: "71"}}},
			"married_name", ActionUpdateName,
		},
		{
			"stale source",
			Overrides{StaleSource: []OverrideEntry{{State: "OK", Chamber: "House", District: "71"}}},
			"stale_source", ActionUpdateHolder,
		},
		{
			"family lookalike",
			Overrides{Family: []OverrideEntry{{State: "OK", Chamber: "House", District: "71"}}},
			"family", ActionReplaceHolder,
		},
		{
			"skip list",
			Overrides{Skip: []OverrideEntry{{State: "OK", Chamber: "House", District: "71"}}},
			"skip", ActionReportOnly,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			c := Classifier{Overrides: tc.overrides}
			gap := classifyKind(t, c, PairHolderChanged, &src, &seat)
			require.Equal(t, CategoryNameMismatch, gap.Category)
			require.Equal(t, tc.classification, gap.Classification)
			require.Equal(t, tc.action, gap.Action)
		})
	}
}

func TestClassifyTotality(t *testing.T) {
	// every pairing kind yields exactly one category and one action
	c := Classifier{}
	src := filledRecord("Somebody New")
	vacant := vacantRecord()
	seat := filledSeat(1, "", "Somebody Old")
	empty := vacantSeat(2, "")

	cases := []Pairing{
		{Kind: PairNameMatched, Source: &src, Seat: &seat},
		{Kind: PairHolderChanged, Source: &src, Seat: &seat},
		{Kind: PairFilledVacantSeat, Source: &src, Seat: &empty},
		{Kind: PairFilledNoSeat, Source: &src},
		{Kind: PairVacantFilledSeat, Source: &vacant, Seat: &seat},
		{Kind: PairBothVacant, Source: &vacant, Seat: &empty},
		{Kind: PairBothVacant, Source: &vacant},
		{Kind: PairStoreOnly, Seat: &seat},
	}
	for _, p := range cases {
		gap := c.Classify("OK", "House", "71", p)
		require.NotEmpty(t, gap.Category, "kind %d", p.Kind)
		require.NotEmpty(t, gap.Action, "kind %d", p.Kind)
		require.NotEmpty(t, gap.SeatLabel, "kind %d", p.Kind)
	}
}

func TestClassifyVacancies(t *testing.T) {
	c := Classifier{}
	vacant := vacantRecord()
	seat := filledSeat(1, "", "John Roe")

	gap := classifyKind(t, c, PairVacantFilledSeat, &vacant, &seat)
	require.Equal(t, CategoryVacancyNew, gap.Category)
	require.Equal(t, ActionCloseSeatTerm, gap.Action)
	require.Equal(t, "John Roe", gap.StoreHolder)

	empty := vacantSeat(1, "")
	gap = classifyKind(t, c, PairBothVacant, &vacant, &empty)
	require.Equal(t, CategoryVacancyConfirmed, gap.Category)
	require.Equal(t, ActionNone, gap.Action)
}

func TestNoDistrictGap(t *testing.T) {
	gap := NoDistrictGap(members.Record{
		State: "NH", Chamber: "House", District: "Coos-99", Name: "Ghost Member",
	})
	require.Equal(t, CategoryNoDistrictMatch, gap.Category)
	require.Equal(t, ActionReportOnly, gap.Action)
	require.False(t, gap.Actionable())
}

func TestNormalizeReasons(t *testing.T) {
	require.Equal(t, "elected", NormalizeStartReason("special_election"))
	require.Equal(t, "appointed", NormalizeStartReason("appointed"))
	require.Equal(t, "elected", NormalizeStartReason(""))
	require.Equal(t, "elected", NormalizeStartReason("bogus"))

	require.Equal(t, "resigned", NormalizeEndReason("data_correction"))
	require.Equal(t, "died", NormalizeEndReason("died"))
	require.Equal(t, "resigned", NormalizeEndReason(""))
	require.Equal(t, "resigned", NormalizeEndReason("bogus"))
}
