package brief

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/briefdesk-backend/internal/domain"
)

// policy says what a failing step does to the operation.
type policy int

const (
	// mustApply failures abort the operation and undo completed steps.
	mustApply policy = iota
	// bestEffort failures are logged and swallowed.
	bestEffort
)

// step is one write in an orchestrated operation. undo, if set, compensates
// a completed step when a later mustApply step fails.
type step struct {
	name   string
	policy policy
	apply  func(ctx context.Context) error
	undo   func(ctx context.Context) error
}

// runSteps applies steps in order. On the first mustApply failure it undoes
// the completed steps in reverse and returns the classified error.
func (s *Service) runSteps(ctx context.Context, steps []step) error {
	done := make([]step, 0, len(steps))

	for _, st := range steps {
		err := st.apply(ctx)
		if err == nil {
			done = append(done, st)
			continue
		}

		if st.policy == bestEffort {
			s.log.WarnContext(ctx, "best-effort step failed",
				slog.String("step", st.name),
				slog.String("error", err.Error()),
			)
			continue
		}

		for i := len(done) - 1; i >= 0; i-- {
			if done[i].undo == nil {
				continue
			}
			if undoErr := done[i].undo(ctx); undoErr != nil {
				s.log.ErrorContext(ctx, "compensation failed",
					slog.String("step", done[i].name),
					slog.String("cause", st.name),
					slog.String("error", undoErr.Error()),
				)
			}
		}
		return classify(fmt.Errorf("%s: %w", st.name, err))
	}

	return nil
}

// classify leaves domain and context errors intact and marks every other
// failure as a database error.
func classify(err error) error {
	if err == nil || domain.IsClassified(err) ||
		errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return fmt.Errorf("%w: %w", domain.ErrDatabase, err)
}
