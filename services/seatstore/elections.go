package seatstore

import (
	"context"
	"errors"
	"fmt"
)

var ErrDuplicateWinner = errors.New("election already has a winning candidacy")

type CreateElectionParams struct {
	SeatID       int64
	ElectionType string
	ElectionDate string
	ElectionYear int
	ResultStatus string
}

func (s Store) CreateElection(ctx context.Context, params CreateElectionParams) (int64, error) {
	var id int64
	err := retryWrite(ctx, func() error {
		return s.db.QueryRowContext(ctx,
			`INSERT INTO elections (seat_id, election_type, election_date, election_year, result_status)
			 VALUES (?, ?, ?, ?, ?) RETURNING id`,
			params.SeatID, params.ElectionType,
			nullable(params.ElectionDate), params.ElectionYear,
			nullable(params.ResultStatus),
		).Scan(&id)
	})
	return id, err
}

// Candidacy links a candidate to an election. Result is "Won", "Lost" or
// empty for undecided contests. Exact vote ties are represented as data:
// IsTie marks the tied candidacies and TieResolution records how the tie
// was broken (e.g. "won by lot") when known, rather than forcing a
// Won/Lost guess.
type Candidacy struct {
	ElectionID    int64
	CandidateID   int64
	Party         string
	Votes         int64
	VotePct       float64
	Result        string
	IsTie         bool
	TieResolution string
}

func (s Store) CreateCandidacy(ctx context.Context, c Candidacy) error {
	if c.Result == "Won" && !c.IsTie {
		var winners int
		err := s.db.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM candidacies WHERE election_id = ? AND result = 'Won'`,
			c.ElectionID,
		).Scan(&winners)
		if err != nil {
			return err
		}
		if winners > 0 {
			return fmt.Errorf("%w: election %d", ErrDuplicateWinner, c.ElectionID)
		}
	}
	return retryWrite(ctx, func() error {
		_, err := s.db.ExecContext(ctx,
			`INSERT INTO candidacies
			 (election_id, candidate_id, party, votes_received, vote_percentage, result, is_tie, tie_resolution)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			c.ElectionID, c.CandidateID, nullable(c.Party),
			c.Votes, c.VotePct, nullable(c.Result),
			c.IsTie, nullable(c.TieResolution),
		)
		return err
	})
}

// BulkCreateCandidacies inserts in fixed-size chunks, each in its own
// transaction. Chunking exists to stay under request limits, not for
// atomicity: a mid-run failure leaves earlier chunks committed, and
// recovery is idempotent re-application.
func (s Store) BulkCreateCandidacies(ctx context.Context, candidacies []Candidacy) error {
	for start := 0; start < len(candidacies); start += BatchSize {
		end := min(start+BatchSize, len(candidacies))
		chunk := candidacies[start:end]

		err := retryWrite(ctx, func() error {
			tx, err := s.db.BeginTx(ctx, nil)
			if err != nil {
				return err
			}
			defer tx.Rollback()
			for _, c := range chunk {
				_, err := tx.ExecContext(ctx,
					`INSERT OR IGNORE INTO candidacies
					 (election_id, candidate_id, party, votes_received, vote_percentage, result, is_tie, tie_resolution)
					 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
					c.ElectionID, c.CandidateID, nullable(c.Party),
					c.Votes, c.VotePct, nullable(c.Result),
					c.IsTie, nullable(c.TieResolution),
				)
				if err != nil {
					return err
				}
			}
			return tx.Commit()
		})
		if err != nil {
			return fmt.Errorf("candidacy chunk %d-%d: %w", start, end, err)
		}
	}
	return nil
}
