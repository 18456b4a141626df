package reconcile

import (
	"testing"

	"github.com/stretchr/testify/require"

	"statehouse-backend/services/members"
	"statehouse-backend/services/seatstore"
)

func filledRecord(name string) members.Record {
	return members.Record{State: "ID", Chamber: "House", District: "4", Name: name}
}

func vacantRecord() members.Record {
	return members.Record{State: "ID", Chamber: "House", District: "4", IsVacant: true}
}

func filledSeat(id int64, designator, holder string) seatstore.Seat {
	return seatstore.Seat{
		SeatID:         id,
		State:          "ID",
		Chamber:        "House",
		DistrictNumber: "4",
		SeatDesignator: designator,
		CurrentHolder:  holder,
		OpenTermID:     id * 100,
	}
}

func vacantSeat(id int64, designator string) seatstore.Seat {
	return seatstore.Seat{
		SeatID:         id,
		State:          "ID",
		Chamber:        "House",
		DistrictNumber: "4",
		SeatDesignator: designator,
	}
}

func kinds(pairings []Pairing) []PairingKind {
	out := make([]PairingKind, len(pairings))
	for i, p := range pairings {
		out[i] = p.Kind
	}
	return out
}

func TestPairDistrictSingleMatch(t *testing.T) {
	pairings := PairDistrict(
		[]members.Record{filledRecord("Jane A. Doe")},
		[]seatstore.Seat{filledSeat(1, "", "Jane Doe")},
	)
	require.Len(t, pairings, 1)
	require.Equal(t, PairNameMatched, pairings[0].Kind)
	require.Equal(t, int64(1), pairings[0].Seat.SeatID)
}

func TestPairDistrictMultiMember(t *testing.T) {
	// matching is by name, not by seat designator order
	pairings := PairDistrict(
		[]members.Record{filledRecord("Alice Alpha"), filledRecord("Bob Beta")},
		[]seatstore.Seat{filledSeat(1, "A", "Bob Beta"), filledSeat(2, "B", "Alice Alpha")},
	)
	require.Len(t, pairings, 2)
	for _, p := range pairings {
		require.Equal(t, PairNameMatched, p.Kind)
	}
	require.Equal(t, int64(2), pairings[0].Seat.SeatID)
	require.Equal(t, int64(1), pairings[1].Seat.SeatID)
}

func TestPairDistrictHolderChanged(t *testing.T) {
	pairings := PairDistrict(
		[]members.Record{filledRecord("New Person")},
		[]seatstore.Seat{filledSeat(1, "", "Old Person")},
	)
	require.Equal(t, []PairingKind{PairHolderChanged}, kinds(pairings))
}

func TestPairDistrictVacancies(t *testing.T) {
	// source vacancy against a filled seat
	pairings := PairDistrict(
		[]members.Record{vacantRecord()},
		[]seatstore.Seat{filledSeat(1, "", "John Roe")},
	)
	require.Equal(t, []PairingKind{PairVacantFilledSeat}, kinds(pairings))

	// both vacant
	pairings = PairDistrict(
		[]members.Record{vacantRecord()},
		[]seatstore.Seat{vacantSeat(1, "")},
	)
	require.Equal(t, []PairingKind{PairBothVacant}, kinds(pairings))

	// source holder against a vacant seat
	pairings = PairDistrict(
		[]members.Record{filledRecord("New Person")},
		[]seatstore.Seat{vacantSeat(1, "")},
	)
	require.Equal(t, []PairingKind{PairFilledVacantSeat}, kinds(pairings))
}

func TestPairDistrictStoreOnly(t *testing.T) {
	pairings := PairDistrict(nil, []seatstore.Seat{filledSeat(1, "", "Lonely Holder")})
	require.Equal(t, []PairingKind{PairStoreOnly}, kinds(pairings))
}

func TestPairDistrictDeterministicGreedy(t *testing.T) {
	// two source records that both match the same holder: the first in
	// source order takes the seat, the second becomes a holder change
	sources := []members.Record{filledRecord("Bob Smith"), filledRecord("Robert Smith")}
	seats := []seatstore.Seat{filledSeat(1, "A", "Robert Smith"), filledSeat(2, "B", "Someone Else")}

	first := PairDistrict(sources, seats)
	second := PairDistrict(sources, seats)
	require.Equal(t, kinds(first), kinds(second))
	require.Equal(t, PairNameMatched, first[0].Kind)
	require.Equal(t, int64(1), first[0].Seat.SeatID)
	require.Equal(t, PairHolderChanged, first[1].Kind)
}

func TestAssignWinnersBySeat(t *testing.T) {
	seats := []seatstore.Seat{filledSeat(2, "B", ""), filledSeat(1, "A", "")}
	winners := []RankedWinner{
		{Name: "Low Votes", Votes: 900},
		{Name: "High Votes", Votes: 1200},
	}

	assignments := AssignWinnersBySeat(winners, seats)
	require.Len(t, assignments, 2)
	require.Equal(t, "A", assignments[0].Seat.SeatDesignator)
	require.Equal(t, "High Votes", assignments[0].Winner.Name)
	require.Equal(t, "B", assignments[1].Seat.SeatDesignator)
	require.Equal(t, "Low Votes", assignments[1].Winner.Name)
}

func TestAssignWinnersBySeatTieBreak(t *testing.T) {
	// equal votes keep declaration order
	seats := []seatstore.Seat{filledSeat(1, "A", ""), filledSeat(2, "B", "")}
	winners := []RankedWinner{
		{Name: "Declared First", Votes: 1000},
		{Name: "Declared Second", Votes: 1000},
	}

	assignments := AssignWinnersBySeat(winners, seats)
	require.Equal(t, "Declared First", assignments[0].Winner.Name)
	require.Equal(t, "Declared Second", assignments[1].Winner.Name)
}
