package reconcile

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"statehouse-backend/services/members"
)

func TestAuditOrdering(t *testing.T) {
	store, ctx := setupStore(t)
	stateID, err := store.CreateState(ctx, "OK", "Oklahoma")
	require.NoError(t, err)

	seedSeatWithHolder(t, ctx, store, stateID, "House", "1", "Alice Baker", "R")
	seedSeatWithHolder(t, ctx, store, stateID, "House", "2", "Carl Dent", "R")
	seedSeatWithHolder(t, ctx, store, stateID, "Senate", "3", "Frank Giles", "D")

	records := []members.Record{
		{State: "OK", Chamber: "Senate", District: "3", IsVacant: true},
		{State: "OK", Chamber: "House", District: "099", Name: "Hana Ito", Party: "Republican"},
		{State: "OK", Chamber: "House", District: "2", Name: "Dana Evans", Party: "Democratic", AssumedOffice: "February 4, 2025"},
		{State: "OK", Chamber: "House", District: "1", Name: "Alice Baker", Party: "Republican", AssumedOffice: "January 10, 2023"},
	}

	gaps, err := Audit(ctx, store, records, AuditParams{SpecialYears: []int{2025, 2026}})
	require.NoError(t, err)

	type row struct {
		Chamber  string
		District string
		Category Category
		Action   Action
	}
	var got []row
	for _, g := range gaps {
		got = append(got, row{g.Chamber, g.District, g.Category, g.Action})
	}

	// districts the store has never heard of come first, then every
	// district group in state/chamber/district order
	want := []row{
		{"House", "099", CategoryNoDistrictMatch, ActionReportOnly},
		{"House", "1", CategoryMatch, ActionNone},
		{"House", "2", CategoryNameMismatch, ActionReplaceHolder},
		{"Senate", "3", CategoryVacancyNew, ActionCloseSeatTerm},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("gap list mismatch (-want +got):\n%s", diff)
	}
}

func TestAuditStateFilter(t *testing.T) {
	store, ctx := setupStore(t)
	okID, err := store.CreateState(ctx, "OK", "Oklahoma")
	require.NoError(t, err)
	ksID, err := store.CreateState(ctx, "KS", "Kansas")
	require.NoError(t, err)

	seedSeatWithHolder(t, ctx, store, okID, "House", "1", "Alice Baker", "R")
	seedSeatWithHolder(t, ctx, store, ksID, "House", "1", "Ben Cole", "R")

	records := []members.Record{
		{State: "OK", Chamber: "House", District: "1", IsVacant: true},
		{State: "KS", Chamber: "House", District: "1", IsVacant: true},
	}

	gaps, err := Audit(ctx, store, records, AuditParams{State: "KS"})
	require.NoError(t, err)
	require.Len(t, gaps, 1)
	require.Equal(t, "KS", gaps[0].State)
	require.Equal(t, CategoryVacancyNew, gaps[0].Category)
}
