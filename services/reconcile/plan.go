package reconcile

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"statehouse-backend/lib/textutil"
	"statehouse-backend/services/members"
	"statehouse-backend/services/seatstore"
	"statehouse-backend/services/seatstore/db"
)

// startReasonAliases maps research labels onto the store's start_reason
// values.
var startReasonAliases = map[string]string{
	"special_election": "elected",
}

// endReasonAliases maps research labels onto the store's end_reason
// values. A stale-data correction closes the bogus term as resigned.
var endReasonAliases = map[string]string{
	"data_correction": "resigned",
}

func normalizeReason(reason string, aliases map[string]string, valid map[string]bool, fallback string) string {
	if reason == "" {
		return fallback
	}
	if mapped, ok := aliases[reason]; ok {
		reason = mapped
	}
	if valid[reason] {
		return reason
	}
	slog.Warn("unknown reason, using default", "reason", reason, "default", fallback)
	return fallback
}

func NormalizeStartReason(reason string) string {
	return normalizeReason(reason, startReasonAliases, db.ValidStartReasons, "elected")
}

func NormalizeEndReason(reason string) string {
	return normalizeReason(reason, endReasonAliases, db.ValidEndReasons, "resigned")
}

// actionOrder fixes the application sequence within one run. Closes go
// first so a later create or replace never collides with a term an
// earlier gap on the same seat should already have closed.
var actionOrder = []Action{
	ActionCloseSeatTerm,
	ActionCreateSeatTerm,
	ActionReplaceHolder,
	ActionUpdateHolder,
	ActionUpdateName,
	ActionUpdateStartDate,
}

// Stats counts apply outcomes by result label.
type Stats map[string]int

// Applier executes a classified gap list against the store. Every
// mutation re-checks its own precondition immediately before writing and
// skips with a logged reason instead of erroring, so a partially applied
// run can be replayed safely. In dry-run mode every step runs except the
// writes, and the logged effect is exactly what a live run would attempt.
type Applier struct {
	Store  seatstore.Store
	DryRun bool
	// Now anchors the default end dates used when the source gives none.
	Now time.Time
}

func (a Applier) defaultEndDate(endReason string) string {
	now := a.Now
	if now.IsZero() {
		now = time.Now()
	}
	if endReason == "term_expired" {
		return fmt.Sprintf("%04d-01-01", now.Year())
	}
	return now.Format("2006-01-02")
}

// Apply runs the actionable gaps in fixed action order and returns the
// outcome counts. The first store error aborts the run; already-applied
// mutations stay, and re-running recovers via the precondition skips.
func (a Applier) Apply(ctx context.Context, gaps []Gap) (Stats, error) {
	ctx, span := tracer.Start(ctx, "Apply")
	defer span.End()

	byAction := map[Action][]Gap{}
	for _, g := range gaps {
		if g.Actionable() {
			byAction[g.Action] = append(byAction[g.Action], g)
		}
	}

	stats := Stats{}
	for _, action := range actionOrder {
		group := byAction[action]
		if len(group) == 0 {
			continue
		}
		slog.InfoContext(ctx, "processing action group", "action", action, "items", len(group))
		for _, gap := range group {
			result, err := a.applyOne(ctx, gap)
			if err != nil {
				return stats, fmt.Errorf("%s %s: %w", gap.Action, gap.SeatLabel, err)
			}
			stats[result]++
		}
	}
	return stats, nil
}

func (a Applier) applyOne(ctx context.Context, gap Gap) (string, error) {
	switch gap.Action {
	case ActionCloseSeatTerm:
		return a.closeSeatTerm(ctx, gap)
	case ActionCreateSeatTerm:
		return a.createSeatTerm(ctx, gap)
	case ActionReplaceHolder:
		return a.replaceHolder(ctx, gap)
	case ActionUpdateHolder:
		return a.replaceHolder(ctx, gap)
	case ActionUpdateName:
		return a.updateName(ctx, gap)
	case ActionUpdateStartDate:
		return a.updateStartDate(ctx, gap)
	}
	return "", fmt.Errorf("unhandled action %q", gap.Action)
}

// findOrCreateCandidate resolves a holder name to a candidate row,
// creating one only when no equivalent name exists.
func (a Applier) findOrCreateCandidate(ctx context.Context, name, party string) (int64, error) {
	id, err := a.Store.FindCandidateByName(ctx, name)
	if err != nil {
		return 0, err
	}
	if id != 0 {
		return id, nil
	}
	if a.DryRun {
		slog.InfoContext(ctx, "[dry run] would create candidate", "name", name, "party", party)
		return 0, nil
	}
	first, last := textutil.SplitName(name)
	id, err = a.Store.CreateCandidate(ctx, name, first, last)
	if err != nil {
		return 0, err
	}
	slog.InfoContext(ctx, "created candidate", "candidate_id", id, "name", name, "party", party)
	return id, nil
}

func (a Applier) closeSeatTerm(ctx context.Context, gap Gap) (string, error) {
	endReason := NormalizeEndReason(gap.EndReason)
	endDate := a.defaultEndDate(endReason)

	slog.InfoContext(ctx, "closing term",
		"seat", gap.SeatLabel, "holder", gap.StoreHolder,
		"end_date", endDate, "end_reason", endReason,
		"has_special", gap.HasSpecialElection)

	open, err := a.Store.TermOpen(ctx, gap.TermID)
	if err != nil {
		return "", err
	}
	if !open {
		slog.InfoContext(ctx, "skip: term already closed", "term_id", gap.TermID)
		return "skipped", nil
	}
	if a.DryRun {
		slog.InfoContext(ctx, "[dry run] would close term and refresh cache", "term_id", gap.TermID)
		return "would_close", nil
	}

	if err := a.Store.CloseTerm(ctx, gap.TermID, endDate, endReason); err != nil {
		return "", err
	}
	if err := a.Store.RefreshSeatCache(ctx, gap.SeatID); err != nil {
		return "", err
	}
	return "closed", nil
}

func (a Applier) createSeatTerm(ctx context.Context, gap Gap) (string, error) {
	startReason := NormalizeStartReason(gap.StartReason)
	startDate := ""
	if d, ok := members.ParseAssumedDate(gap.AssumedOffice); ok {
		startDate = d.ISO()
	}

	slog.InfoContext(ctx, "creating term",
		"seat", gap.SeatLabel, "holder", gap.SourceName, "party", gap.SourceParty,
		"start_date", startDate, "start_reason", startReason)

	existing, err := a.Store.OpenTermForSeat(ctx, gap.SeatID)
	if err != nil {
		return "", err
	}
	if existing != nil {
		slog.InfoContext(ctx, "skip: seat already has open term",
			"term_id", existing.TermID, "holder", existing.HolderName)
		return "skipped", nil
	}
	if a.DryRun {
		slog.InfoContext(ctx, "[dry run] would create candidate, term, refresh cache")
		return "would_create", nil
	}

	candidateID, err := a.findOrCreateCandidate(ctx, gap.SourceName, gap.SourceParty)
	if err != nil {
		return "", err
	}
	_, err = a.Store.CreateTerm(ctx, seatstore.CreateTermParams{
		SeatID:      gap.SeatID,
		CandidateID: candidateID,
		Party:       gap.SourceParty,
		Caucus:      gap.SourceParty,
		StartDate:   startDate,
		StartReason: startReason,
	})
	if err != nil {
		return "", err
	}
	if err := a.Store.RefreshSeatCache(ctx, gap.SeatID); err != nil {
		return "", err
	}
	return "created", nil
}

// replaceHolder closes the incumbent's term and opens one for the
// source's holder. It also serves update_holder, where the closed term
// was stale upstream data rather than a real succession.
func (a Applier) replaceHolder(ctx context.Context, gap Gap) (string, error) {
	startReason := NormalizeStartReason(gap.StartReason)
	endReason := NormalizeEndReason(gap.EndReason)
	startDate := ""
	if d, ok := members.ParseAssumedDate(gap.AssumedOffice); ok {
		startDate = d.ISO()
	}

	slog.InfoContext(ctx, "replacing holder",
		"seat", gap.SeatLabel, "old", gap.StoreHolder, "new", gap.SourceName,
		"classification", gap.Classification,
		"start_date", startDate, "start_reason", startReason, "end_reason", endReason)

	termOpen := false
	if gap.TermID != 0 {
		var err error
		termOpen, err = a.Store.TermOpen(ctx, gap.TermID)
		if err != nil {
			return "", err
		}
		if !termOpen {
			slog.WarnContext(ctx, "old term already closed, still creating new term", "term_id", gap.TermID)
		}
	}
	if a.DryRun {
		slog.InfoContext(ctx, "[dry run] would close old term and create new term",
			"term_id", gap.TermID, "term_open", termOpen)
		return "would_replace", nil
	}

	if termOpen {
		endDate := startDate
		if endDate == "" {
			endDate = a.defaultEndDate(endReason)
		}
		if err := a.Store.CloseTerm(ctx, gap.TermID, endDate, endReason); err != nil {
			return "", err
		}
	}

	candidateID, err := a.findOrCreateCandidate(ctx, gap.SourceName, gap.SourceParty)
	if err != nil {
		return "", err
	}

	// the roster rarely carries party for replacements; prefer the new
	// holder's own latest recorded party, then the outgoing holder's
	party := gap.SourceParty
	if party == "" {
		party, err = a.Store.LatestParty(ctx, candidateID)
		if err != nil {
			return "", err
		}
	}
	if party == "" {
		party = gap.StoreParty
	}

	_, err = a.Store.CreateTerm(ctx, seatstore.CreateTermParams{
		SeatID:      gap.SeatID,
		CandidateID: candidateID,
		Party:       party,
		Caucus:      party,
		StartDate:   startDate,
		StartReason: startReason,
	})
	if err != nil {
		return "", err
	}
	if err := a.Store.RefreshSeatCache(ctx, gap.SeatID); err != nil {
		return "", err
	}
	return "replaced", nil
}

// updateName corrects the candidate row behind the open term; the person
// is the same, only the surface form of the name changed.
func (a Applier) updateName(ctx context.Context, gap Gap) (string, error) {
	slog.InfoContext(ctx, "updating name",
		"seat", gap.SeatLabel, "classification", gap.Classification,
		"old", gap.StoreHolder, "new", gap.SourceName)

	candidateID, err := a.Store.TermCandidate(ctx, gap.TermID)
	if err != nil {
		if a.DryRun {
			slog.InfoContext(ctx, "[dry run] term lookup failed", "term_id", gap.TermID, "err", err)
			return "skipped", nil
		}
		return "", err
	}
	if a.DryRun {
		slog.InfoContext(ctx, "[dry run] would update candidate name and refresh cache",
			"candidate_id", candidateID)
		return "would_update", nil
	}

	first, last := textutil.SplitName(gap.SourceName)
	if err := a.Store.UpdateCandidateName(ctx, candidateID, gap.SourceName, first, last); err != nil {
		return "", err
	}
	if err := a.Store.RefreshSeatCache(ctx, gap.SeatID); err != nil {
		return "", err
	}
	return "updated", nil
}

func (a Applier) updateStartDate(ctx context.Context, gap Gap) (string, error) {
	d, ok := members.ParseAssumedDate(gap.AssumedOffice)
	if !ok {
		slog.InfoContext(ctx, "skip: no parseable assumed-office date", "seat", gap.SeatLabel)
		return "skipped", nil
	}

	slog.InfoContext(ctx, "updating start date",
		"seat", gap.SeatLabel, "holder", gap.StoreHolder,
		"old", gap.StoreStartDate, "new", d.ISO())

	open, err := a.Store.TermOpen(ctx, gap.TermID)
	if err != nil {
		return "", err
	}
	if !open {
		slog.InfoContext(ctx, "skip: term no longer open", "term_id", gap.TermID)
		return "skipped", nil
	}
	if a.DryRun {
		slog.InfoContext(ctx, "[dry run] would update start date", "term_id", gap.TermID)
		return "would_update", nil
	}

	if err := a.Store.UpdateTermStartDate(ctx, gap.TermID, d.ISO()); err != nil {
		return "", err
	}
	return "updated", nil
}
