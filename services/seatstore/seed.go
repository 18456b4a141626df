package seatstore

import "context"

// Initial-load helpers. States, districts and seats are created once per
// redistricting cycle and never deleted; reconciliation only ever touches
// candidates, terms and the seat cache.

func (s Store) CreateState(ctx context.Context, abbreviation, name string) (int64, error) {
	var id int64
	err := retryWrite(ctx, func() error {
		return s.db.QueryRowContext(ctx,
			`INSERT INTO states (abbreviation, name) VALUES (?, ?) RETURNING id`,
			abbreviation, name,
		).Scan(&id)
	})
	return id, err
}

type CreateDistrictParams struct {
	StateID        int64
	Chamber        string
	DistrictNumber string
	NumSeats       int
	IsFloterial    bool
	Cycle          string
}

func (s Store) CreateDistrict(ctx context.Context, params CreateDistrictParams) (int64, error) {
	if params.NumSeats == 0 {
		params.NumSeats = 1
	}
	if params.Cycle == "" {
		params.Cycle = "2020s"
	}
	var id int64
	err := retryWrite(ctx, func() error {
		return s.db.QueryRowContext(ctx,
			`INSERT INTO districts (state_id, chamber, district_number, num_seats, is_floterial, cycle)
			 VALUES (?, ?, ?, ?, ?, ?) RETURNING id`,
			params.StateID, params.Chamber, params.DistrictNumber,
			params.NumSeats, params.IsFloterial, params.Cycle,
		).Scan(&id)
	})
	return id, err
}

type CreateSeatParams struct {
	DistrictID     int64
	SeatDesignator string
	SeatLabel      string
	OfficeType     string
}

func (s Store) CreateSeat(ctx context.Context, params CreateSeatParams) (int64, error) {
	var id int64
	err := retryWrite(ctx, func() error {
		return s.db.QueryRowContext(ctx,
			`INSERT INTO seats (district_id, seat_designator, seat_label, office_type)
			 VALUES (?, ?, ?, ?) RETURNING id`,
			params.DistrictID, params.SeatDesignator, params.SeatLabel, params.OfficeType,
		).Scan(&id)
	})
	return id, err
}
