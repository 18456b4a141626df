package reconcile

import (
	"sort"

	"statehouse-backend/lib/textutil"
	"statehouse-backend/services/members"
	"statehouse-backend/services/seatstore"
)

// PairingKind records how a source record and a store seat came to be
// paired (or left unpaired).
type PairingKind int

const (
	// PairNameMatched pairs a filled source record with the store seat
	// whose current holder matched by name.
	PairNameMatched PairingKind = iota
	// PairHolderChanged pairs a filled source record with a leftover
	// filled store seat after name matching failed.
	PairHolderChanged
	// PairFilledVacantSeat pairs a filled source record with a vacant
	// store seat.
	PairFilledVacantSeat
	// PairFilledNoSeat is a filled source record with no store seat left.
	PairFilledNoSeat
	// PairVacantFilledSeat pairs a vacant source record with a filled
	// store seat.
	PairVacantFilledSeat
	// PairBothVacant pairs a vacant source record with a vacant store
	// seat, or with no seat at all.
	PairBothVacant
	// PairStoreOnly is a filled store seat no source record accounts for.
	PairStoreOnly
)

// Pairing is one matcher output. Source is nil for store-only seats and
// Seat is nil when the source reports a slot the store has no seat for.
type Pairing struct {
	Kind   PairingKind
	Source *members.Record
	Seat   *seatstore.Seat
}

// PairDistrict pairs one district group's source records against the
// store's seats for that group. Matching is greedy in source order: the
// first store seat whose holder name matches wins, and both leave their
// pools. The ordering is a deliberate, stable tie-break so repeated runs
// over the same inputs produce identical pairings.
func PairDistrict(sources []members.Record, seats []seatstore.Seat) []Pairing {
	var srcFilled, srcVacant []*members.Record
	for i := range sources {
		if sources[i].IsVacant {
			srcVacant = append(srcVacant, &sources[i])
		} else {
			srcFilled = append(srcFilled, &sources[i])
		}
	}

	var dbFilled, dbVacant []*seatstore.Seat
	for i := range seats {
		if seats[i].HasHolder() {
			dbFilled = append(dbFilled, &seats[i])
		} else {
			dbVacant = append(dbVacant, &seats[i])
		}
	}

	var pairings []Pairing
	srcMatched := make([]bool, len(srcFilled))
	dbMatched := make([]bool, len(dbFilled))

	// pass 1: filled vs filled by name
	for i, src := range srcFilled {
		for j, seat := range dbFilled {
			if dbMatched[j] {
				continue
			}
			if textutil.NamesMatch(src.Name, seat.CurrentHolder) {
				srcMatched[i] = true
				dbMatched[j] = true
				pairings = append(pairings, Pairing{Kind: PairNameMatched, Source: src, Seat: seat})
				break
			}
		}
	}

	takeUnmatchedFilled := func() *seatstore.Seat {
		for j, seat := range dbFilled {
			if !dbMatched[j] {
				dbMatched[j] = true
				return seat
			}
		}
		return nil
	}

	// pass 2: leftover filled source records are holder-change candidates
	// against leftover filled seats, then fall to vacant seats
	for i, src := range srcFilled {
		if srcMatched[i] {
			continue
		}
		if seat := takeUnmatchedFilled(); seat != nil {
			pairings = append(pairings, Pairing{Kind: PairHolderChanged, Source: src, Seat: seat})
		} else if len(dbVacant) > 0 {
			seat := dbVacant[0]
			dbVacant = dbVacant[1:]
			pairings = append(pairings, Pairing{Kind: PairFilledVacantSeat, Source: src, Seat: seat})
		} else {
			pairings = append(pairings, Pairing{Kind: PairFilledNoSeat, Source: src})
		}
	}

	// pass 3: vacant source records close out filled seats first
	for _, src := range srcVacant {
		if seat := takeUnmatchedFilled(); seat != nil {
			pairings = append(pairings, Pairing{Kind: PairVacantFilledSeat, Source: src, Seat: seat})
		} else if len(dbVacant) > 0 {
			seat := dbVacant[0]
			dbVacant = dbVacant[1:]
			pairings = append(pairings, Pairing{Kind: PairBothVacant, Source: src, Seat: seat})
		} else {
			pairings = append(pairings, Pairing{Kind: PairBothVacant, Source: src})
		}
	}

	// pass 4: filled seats nothing in the source accounts for
	for j, seat := range dbFilled {
		if !dbMatched[j] {
			pairings = append(pairings, Pairing{Kind: PairStoreOnly, Seat: seat})
		}
	}

	return pairings
}

// RankedWinner is one declared winner of a multi-winner contest, in
// source declaration order.
type RankedWinner struct {
	Name  string
	Party string
	Votes int64
}

// SeatAssignment binds a ranked winner to a seat designator.
type SeatAssignment struct {
	Seat   *seatstore.Seat
	Winner RankedWinner
}

// AssignWinnersBySeat assigns the winners of a top-N multi-winner race to
// the district's seats: descending vote order against ascending seat
// designator, ties broken by declaration order. Extra winners beyond the
// seat count are dropped.
func AssignWinnersBySeat(winners []RankedWinner, seats []seatstore.Seat) []SeatAssignment {
	ranked := make([]RankedWinner, len(winners))
	copy(ranked, winners)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Votes > ranked[j].Votes
	})

	ordered := make([]*seatstore.Seat, 0, len(seats))
	for i := range seats {
		ordered = append(ordered, &seats[i])
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].SeatDesignator < ordered[j].SeatDesignator
	})

	var assignments []SeatAssignment
	for i, seat := range ordered {
		if i >= len(ranked) {
			break
		}
		assignments = append(assignments, SeatAssignment{Seat: seat, Winner: ranked[i]})
	}
	return assignments
}
