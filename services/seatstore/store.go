package seatstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"statehouse-backend/lib/textutil"

	"go.opentelemetry.io/otel"

	_ "github.com/tursodatabase/libsql-client-go/libsql"
	_ "modernc.org/sqlite"
)

var tracer = otel.Tracer("statehouse.services.seatstore")

var (
	ErrOpenTermExists = errors.New("seat already has an open term")
	ErrTermClosed     = errors.New("term is already closed")
	ErrTermNotFound   = errors.New("term not found")
)

const (
	writeRetries = 5
	// insert batch size, to stay under payload limits on remote backends
	BatchSize = 50
)

type Store struct {
	db *sql.DB
}

func NewStore(database *sql.DB) Store {
	return Store{db: database}
}

// retryWrite retries transient write failures (busy/locked databases,
// remote rate limits) with exponential backoff. Retries exhausting is the
// caller's signal to abort the run.
func retryWrite(ctx context.Context, fn func() error) error {
	var err error
	for attempt := 0; attempt < writeRetries; attempt++ {
		err = fn()
		if err == nil {
			return nil
		}
		if !isTransient(err) {
			return err
		}
		wait := time.Duration(attempt+1) * 5 * time.Second
		slog.WarnContext(ctx, "store write rate limited, backing off", "wait", wait, "err", err)
		select {
		case <-time.After(wait):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return fmt.Errorf("store write retries exhausted: %w", err)
}

func isTransient(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "database is locked") ||
		strings.Contains(msg, "busy") ||
		strings.Contains(msg, "429")
}

type Seat struct {
	SeatID             int64
	State              string
	Chamber            string
	DistrictNumber     string
	NumSeats           int
	IsFloterial        bool
	SeatDesignator     string
	SeatLabel          string
	OfficeType         string
	CurrentHolder      string
	CurrentHolderParty string
	OpenTermID         int64
	OpenTermCandidate  int64
	OpenTermStartDate  string
	OpenTermStartReason string
}

// HasHolder reports whether the seat's open term has an occupant.
func (s Seat) HasHolder() bool {
	return s.CurrentHolder != ""
}

// GetSeats loads every elected legislative seat alongside its open term, if
// any. Pass an empty state to load all states.
func (s Store) GetSeats(ctx context.Context, state string) ([]Seat, error) {
	ctx, span := tracer.Start(ctx, "GetSeats")
	defer span.End()

	query := `
	SELECT
		st.abbreviation,
		d.chamber,
		d.district_number,
		d.num_seats,
		d.is_floterial,
		s.id,
		s.seat_designator,
		s.seat_label,
		s.office_type,
		COALESCE(s.current_holder, ''),
		COALESCE(s.current_holder_party, ''),
		COALESCE(t.id, 0),
		COALESCE(t.candidate_id, 0),
		COALESCE(t.start_date, ''),
		COALESCE(t.start_reason, '')
	FROM seats s
	JOIN districts d ON s.district_id = d.id
	JOIN states st ON d.state_id = st.id
	LEFT JOIN seat_terms t ON t.seat_id = s.id AND t.end_date IS NULL
	WHERE d.office_level = 'Legislative'
	  AND s.selection_method = 'Elected'`
	args := []any{}
	if state != "" {
		query += ` AND st.abbreviation = ?`
		args = append(args, state)
	}
	query += `
	ORDER BY st.abbreviation, d.chamber, d.district_number, s.seat_designator`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var seats []Seat
	for rows.Next() {
		var seat Seat
		var floterial int
		err := rows.Scan(
			&seat.State, &seat.Chamber, &seat.DistrictNumber,
			&seat.NumSeats, &floterial,
			&seat.SeatID, &seat.SeatDesignator, &seat.SeatLabel, &seat.OfficeType,
			&seat.CurrentHolder, &seat.CurrentHolderParty,
			&seat.OpenTermID, &seat.OpenTermCandidate,
			&seat.OpenTermStartDate, &seat.OpenTermStartReason,
		)
		if err != nil {
			return nil, err
		}
		seat.IsFloterial = floterial != 0
		seats = append(seats, seat)
	}
	return seats, rows.Err()
}

type Candidate struct {
	CandidateID int64
	FullName    string
	FirstName   string
	LastName    string
}

// GetCandidates returns candidates whose full name contains the filter
// substring; an empty filter returns everything.
func (s Store) GetCandidates(ctx context.Context, nameFilter string) ([]Candidate, error) {
	query := `SELECT id, full_name, first_name, last_name FROM candidates`
	args := []any{}
	if nameFilter != "" {
		query += ` WHERE full_name LIKE ?`
		args = append(args, "%"+nameFilter+"%")
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Candidate
	for rows.Next() {
		var c Candidate
		if err := rows.Scan(&c.CandidateID, &c.FullName, &c.FirstName, &c.LastName); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// FindCandidateByName searches by exact full name, then by the
// accent-stripped spelling. Returns 0 when nothing matches.
func (s Store) FindCandidateByName(ctx context.Context, fullName string) (int64, error) {
	var id int64
	err := s.db.QueryRowContext(ctx,
		`SELECT id FROM candidates WHERE full_name = ? LIMIT 1`, fullName,
	).Scan(&id)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, err
	}

	stripped := textutil.StripAccents(fullName)
	if stripped == fullName {
		return 0, nil
	}
	err = s.db.QueryRowContext(ctx,
		`SELECT id FROM candidates WHERE full_name = ? LIMIT 1`, stripped,
	).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (s Store) CreateCandidate(ctx context.Context, fullName, firstName, lastName string) (int64, error) {
	var id int64
	err := retryWrite(ctx, func() error {
		return s.db.QueryRowContext(ctx,
			`INSERT INTO candidates (full_name, first_name, last_name) VALUES (?, ?, ?) RETURNING id`,
			fullName, firstName, lastName,
		).Scan(&id)
	})
	return id, err
}

func (s Store) UpdateCandidateName(ctx context.Context, candidateID int64, fullName, firstName, lastName string) error {
	return retryWrite(ctx, func() error {
		_, err := s.db.ExecContext(ctx,
			`UPDATE candidates SET full_name = ?, first_name = ?, last_name = ? WHERE id = ?`,
			fullName, firstName, lastName, candidateID,
		)
		return err
	})
}

// LatestParty returns the party from the candidate's most recent term, or
// empty when unknown.
func (s Store) LatestParty(ctx context.Context, candidateID int64) (string, error) {
	var party string
	err := s.db.QueryRowContext(ctx,
		`SELECT party FROM seat_terms
		 WHERE candidate_id = ? AND party IS NOT NULL
		 ORDER BY id DESC LIMIT 1`,
		candidateID,
	).Scan(&party)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	return party, err
}

type OpenTerm struct {
	TermID      int64
	CandidateID int64
	HolderName  string
}

// OpenTermForSeat returns the seat's currently open term, or nil.
func (s Store) OpenTermForSeat(ctx context.Context, seatID int64) (*OpenTerm, error) {
	var t OpenTerm
	err := s.db.QueryRowContext(ctx,
		`SELECT t.id, t.candidate_id, c.full_name
		 FROM seat_terms t JOIN candidates c ON t.candidate_id = c.id
		 WHERE t.seat_id = ? AND t.end_date IS NULL`,
		seatID,
	).Scan(&t.TermID, &t.CandidateID, &t.HolderName)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// TermOpen reports whether the term exists and has no end date.
func (s Store) TermOpen(ctx context.Context, termID int64) (bool, error) {
	var endDate sql.NullString
	err := s.db.QueryRowContext(ctx,
		`SELECT end_date FROM seat_terms WHERE id = ?`, termID,
	).Scan(&endDate)
	if errors.Is(err, sql.ErrNoRows) {
		return false, ErrTermNotFound
	}
	if err != nil {
		return false, err
	}
	return !endDate.Valid, nil
}

type CreateTermParams struct {
	SeatID      int64
	CandidateID int64
	Party       string
	Caucus      string
	StartDate   string
	StartReason string
}

// CreateTerm opens a term on a seat. The open-term invariant is re-checked
// here even though callers verify it first.
func (s Store) CreateTerm(ctx context.Context, params CreateTermParams) (int64, error) {
	existing, err := s.OpenTermForSeat(ctx, params.SeatID)
	if err != nil {
		return 0, err
	}
	if existing != nil {
		return 0, fmt.Errorf("%w: term %d held by %s", ErrOpenTermExists, existing.TermID, existing.HolderName)
	}

	var id int64
	err = retryWrite(ctx, func() error {
		return s.db.QueryRowContext(ctx,
			`INSERT INTO seat_terms (seat_id, candidate_id, party, caucus, start_date, start_reason)
			 VALUES (?, ?, ?, ?, ?, ?) RETURNING id`,
			params.SeatID, params.CandidateID,
			nullable(params.Party), nullable(params.Caucus),
			nullable(params.StartDate), nullable(params.StartReason),
		).Scan(&id)
	})
	return id, err
}

// CloseTerm sets the end date and reason together; closing an
// already-closed term is an error.
func (s Store) CloseTerm(ctx context.Context, termID int64, endDate, endReason string) error {
	open, err := s.TermOpen(ctx, termID)
	if err != nil {
		return err
	}
	if !open {
		return fmt.Errorf("%w: term %d", ErrTermClosed, termID)
	}
	return retryWrite(ctx, func() error {
		_, err := s.db.ExecContext(ctx,
			`UPDATE seat_terms SET end_date = ?, end_reason = ? WHERE id = ?`,
			endDate, endReason, termID,
		)
		return err
	})
}

// UpdateTermStartDate corrects a placeholder start date on a term.
func (s Store) UpdateTermStartDate(ctx context.Context, termID int64, startDate string) error {
	return retryWrite(ctx, func() error {
		res, err := s.db.ExecContext(ctx,
			`UPDATE seat_terms SET start_date = ? WHERE id = ?`,
			startDate, termID,
		)
		if err != nil {
			return err
		}
		n, err := res.RowsAffected()
		if err == nil && n == 0 {
			return fmt.Errorf("%w: term %d", ErrTermNotFound, termID)
		}
		return err
	})
}

// TermCandidate returns the candidate holding the given term.
func (s Store) TermCandidate(ctx context.Context, termID int64) (int64, error) {
	var candidateID int64
	err := s.db.QueryRowContext(ctx,
		`SELECT candidate_id FROM seat_terms WHERE id = ?`, termID,
	).Scan(&candidateID)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("%w: term %d", ErrTermNotFound, termID)
	}
	return candidateID, err
}

// RefreshSeatCache recomputes the seat's denormalized current-holder fields
// from its open term. It must be called after every term mutation so the
// cache never drifts from the seat_terms table.
func (s Store) RefreshSeatCache(ctx context.Context, seatID int64) error {
	return retryWrite(ctx, func() error {
		_, err := s.db.ExecContext(ctx, `
			UPDATE seats SET
				current_holder = (
					SELECT c.full_name FROM seat_terms t
					JOIN candidates c ON t.candidate_id = c.id
					WHERE t.seat_id = seats.id AND t.end_date IS NULL
				),
				current_holder_party = (
					SELECT t.party FROM seat_terms t
					WHERE t.seat_id = seats.id AND t.end_date IS NULL
				),
				current_holder_caucus = (
					SELECT t.caucus FROM seat_terms t
					WHERE t.seat_id = seats.id AND t.end_date IS NULL
				)
			WHERE id = ?`,
			seatID,
		)
		return err
	})
}

// SeatKey identifies a district group the way source records do.
type SeatKey struct {
	State    string
	Chamber  string
	District string
}

// SpecialElectionKeys returns the district groups that have a special
// election on record for the given years, used to cross-reference midterm
// starts and vacancies.
func (s Store) SpecialElectionKeys(ctx context.Context, state string, years []int) (map[SeatKey]bool, error) {
	if len(years) == 0 {
		return map[SeatKey]bool{}, nil
	}
	placeholders := make([]string, len(years))
	args := []any{}
	for i, y := range years {
		placeholders[i] = "?"
		args = append(args, y)
	}
	query := fmt.Sprintf(`
	SELECT st.abbreviation, d.chamber, d.district_number
	FROM elections e
	JOIN seats s ON e.seat_id = s.id
	JOIN districts d ON s.district_id = d.id
	JOIN states st ON d.state_id = st.id
	WHERE e.election_type IN ('Special', 'Special_Primary', 'Special_Runoff')
	  AND e.election_year IN (%s)`, strings.Join(placeholders, ", "))
	if state != "" {
		query += ` AND st.abbreviation = ?`
		args = append(args, state)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	keys := make(map[SeatKey]bool)
	for rows.Next() {
		var k SeatKey
		if err := rows.Scan(&k.State, &k.Chamber, &k.District); err != nil {
			return nil, err
		}
		keys[k] = true
	}
	return keys, rows.Err()
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
