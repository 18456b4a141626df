package reconcile

import (
	"context"
	"log/slog"
	"sort"

	"go.opentelemetry.io/otel"

	"statehouse-backend/services/members"
	"statehouse-backend/services/seatstore"
)

var tracer = otel.Tracer("statehouse.services.reconcile")

// AuditParams configures one audit run.
type AuditParams struct {
	// State restricts the run to one state abbreviation.
	State string
	// SpecialYears are the election years cross-referenced for specials.
	SpecialYears []int
	Overrides    Overrides
}

// Audit diffs the source records against the store and returns every gap,
// classified. The walk order is deterministic so repeated runs over the
// same inputs produce identical reports.
func Audit(ctx context.Context, store seatstore.Store, records []members.Record, params AuditParams) ([]Gap, error) {
	ctx, span := tracer.Start(ctx, "Audit")
	defer span.End()

	if params.State != "" {
		var filtered []members.Record
		for _, r := range records {
			if r.State == params.State {
				filtered = append(filtered, r)
			}
		}
		records = filtered
	}

	seats, err := store.GetSeats(ctx, params.State)
	if err != nil {
		return nil, err
	}
	specials, err := store.SpecialElectionKeys(ctx, params.State, params.SpecialYears)
	if err != nil {
		return nil, err
	}

	known := KeySet{}
	seatsByKey := map[seatstore.SeatKey][]seatstore.Seat{}
	for _, seat := range seats {
		key := seatstore.SeatKey{State: seat.State, Chamber: seat.Chamber, District: seat.DistrictNumber}
		known[key] = true
		seatsByKey[key] = append(seatsByKey[key], seat)
	}

	normalizer := BuildNormalizer(records)
	classifier := Classifier{Overrides: params.Overrides, Specials: specials}

	var gaps []Gap
	groups := map[seatstore.SeatKey][]members.Record{}
	var groupOrder []seatstore.SeatKey
	for _, r := range records {
		canonical, ok := normalizer.Canonicalize(r.State, r.Chamber, r.District, known)
		if !ok {
			gaps = append(gaps, NoDistrictGap(r))
			continue
		}
		key := seatstore.SeatKey{State: r.State, Chamber: r.Chamber, District: canonical}
		if _, seen := groups[key]; !seen {
			groupOrder = append(groupOrder, key)
		}
		groups[key] = append(groups[key], r)
	}
	sort.Slice(groupOrder, func(i, j int) bool {
		a, b := groupOrder[i], groupOrder[j]
		if a.State != b.State {
			return a.State < b.State
		}
		if a.Chamber != b.Chamber {
			return a.Chamber < b.Chamber
		}
		return a.District < b.District
	})

	for _, key := range groupOrder {
		pairings := PairDistrict(groups[key], seatsByKey[key])
		for _, p := range pairings {
			gaps = append(gaps, classifier.Classify(key.State, key.Chamber, key.District, p))
		}
	}

	counts := map[Category]int{}
	for _, g := range gaps {
		counts[g.Category]++
	}
	slog.InfoContext(ctx, "audit complete",
		"records", len(records), "seats", len(seats), "gaps", len(gaps),
		"matches", counts[CategoryMatch],
		"mismatches", counts[CategoryNameMismatch],
		"no_district", counts[CategoryNoDistrictMatch])

	return gaps, nil
}
