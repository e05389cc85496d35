package ballot

import (
	"context"
	"fmt"
	"time"

	"ballotbox/internal/logging"
	"ballotbox/internal/store"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Store is the persistence the Recorder needs. store.CSVStore and
// store.IndexedStore both satisfy it.
type Store interface {
	Append(ctx context.Context, rec store.Record) error
	Contains(ctx context.Context, identifier string) (bool, error)
}

// Recorder runs the validate, check-duplicate, append sequence for one vote.
// It keeps no state between submissions.
type Recorder struct {
	store Store
	log   *zap.Logger
}

// NewRecorder creates a Recorder writing to s.
func NewRecorder(s Store) *Recorder {
	return &Recorder{
		store: s,
		log:   logging.Get(logging.CategoryBallot),
	}
}

// SubmitVote records a vote for candidate under identifier, unless the candidate is
// not on the ballot, the identifier is malformed, or it has already voted. Rejections
// come back as an Outcome with a nil error. A non-nil error means the store could not
// be read or written; no Outcome applies in that case.
//
// The duplicate check and the append are separate file operations with no lock
// between them, so two processes sharing a store can both record the same identifier.
func (r *Recorder) SubmitVote(ctx context.Context, candidate Candidate, identifier string) (Outcome, error) {
	defer logging.StartTimer(logging.CategoryBallot, "submit").StopWithThreshold(time.Second)
	log := r.log.With(zap.String("submission_id", uuid.NewString()))

	if !candidate.Valid() {
		out := NoCandidateOutcome()
		log.Info("vote rejected", zap.Stringer("outcome", out.Kind), zap.String("candidate", string(candidate)))
		return out, nil
	}

	if reason, ok := ValidateIdentifier(identifier); !ok {
		out := InvalidIdentifier(reason)
		log.Info("vote rejected", zap.Stringer("outcome", out.Kind), zap.String("reason", string(reason)))
		return out, nil
	}

	dup, err := r.store.Contains(ctx, identifier)
	if err != nil {
		log.Error("duplicate check failed", zap.Error(err))
		return Outcome{}, fmt.Errorf("check identifier: %w", err)
	}
	if dup {
		out := Duplicate()
		log.Info("vote rejected", zap.Stringer("outcome", out.Kind))
		return out, nil
	}

	rec := store.Record{Identifier: identifier, Candidate: string(candidate)}
	if err := r.store.Append(ctx, rec); err != nil {
		log.Error("append failed", zap.Error(err))
		return Outcome{}, fmt.Errorf("record vote: %w", err)
	}

	log.Info("vote recorded", zap.String("candidate", string(candidate)))
	return Accepted(candidate), nil
}
