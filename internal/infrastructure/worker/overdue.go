package worker

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/biblioteca/library-system/internal/core/ports"
)

const defaultSweepInterval = time.Hour

// OverdueSweeper periodically flips ACTIVE loans past their due date to LATE.
// Loan mutations through the API stay synchronous; only this status
// transition happens in the background.
type OverdueSweeper struct {
	loans    ports.LoanRepository
	interval time.Duration
	log      zerolog.Logger
}

// NewOverdueSweeper creates a sweeper with the given tick interval.
// If interval <= 0, defaultSweepInterval is used.
func NewOverdueSweeper(loans ports.LoanRepository, interval time.Duration, log zerolog.Logger) *OverdueSweeper {
	if interval <= 0 {
		interval = defaultSweepInterval
	}
	return &OverdueSweeper{loans: loans, interval: interval, log: log}
}

// Start launches the sweep loop in a goroutine. One sweep runs immediately;
// the loop stops when ctx is cancelled.
func (s *OverdueSweeper) Start(ctx context.Context) {
	go s.run(ctx)
}

func (s *OverdueSweeper) run(ctx context.Context) {
	s.sweep(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *OverdueSweeper) sweep(ctx context.Context) {
	n, err := s.loans.MarkOverdue(ctx, time.Now().UTC())
	if err != nil {
		s.log.Error().Err(err).Msg("overdue sweep failed")
		return
	}
	if n > 0 {
		s.log.Info().Int64("loans", n).Msg("loans marked late")
	}
}
