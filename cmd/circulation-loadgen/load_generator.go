package main

import (
	"context"
	"errors"
	"log/slog"
	"math/rand/v2"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/AntonStoeckl/library-circulation-go/features/command/borrowtitle"
	"github.com/AntonStoeckl/library-circulation-go/features/command/cancelreservation"
	"github.com/AntonStoeckl/library-circulation-go/features/command/reservetitle"
	"github.com/AntonStoeckl/library-circulation-go/features/command/returnloan"
	"github.com/AntonStoeckl/library-circulation-go/features/query/loanledger"
	"github.com/AntonStoeckl/library-circulation-go/features/query/registeredpatrons"
	"github.com/AntonStoeckl/library-circulation-go/features/query/reservationqueue"
	"github.com/AntonStoeckl/library-circulation-go/features/query/titlesincatalog"
	"github.com/AntonStoeckl/library-circulation-go/shared/core"
	"github.com/AntonStoeckl/library-circulation-go/shared/shell/httpapi"
)

const (
	scenarioLending   = "lending"
	scenarioReserving = "reserving"

	scenarioTimeout = 5 * time.Second
	reportInterval  = 10 * time.Second
)

// ErrEmptyLibrary is returned by Prepare when there is nobody or nothing to circulate.
var ErrEmptyLibrary = errors.New("the library has no approved patrons or no titles, run circulation-seed first")

// Stats counts scenario outcomes. Rejected scenarios ended in a domain error, which is expected
// under load (no copies left, quota reached). Failed scenarios hit anything else.
type Stats struct {
	Scenarios int64
	Rejected  int64
	Failed    int64
}

// LoadGenerator drives borrow, return, reserve and cancel traffic through the command handlers
// at a fixed rate, using the patrons and titles already in the library.
type LoadGenerator struct {
	handlers httpapi.Handlers
	config   Config
	logger   *slog.Logger
	now      func() time.Time

	patrons []core.PatronID
	titles  []core.TitleID

	scenarios atomic.Int64
	rejected  atomic.Int64
	failed    atomic.Int64

	startTime time.Time
	stopChan  chan struct{}
	stopOnce  sync.Once
	wg        sync.WaitGroup
}

// NewLoadGenerator creates a LoadGenerator. Call Prepare before Start.
func NewLoadGenerator(handlers httpapi.Handlers, config Config, logger *slog.Logger) *LoadGenerator {
	return &LoadGenerator{
		handlers: handlers,
		config:   config,
		logger:   logger,
		now:      time.Now,
		stopChan: make(chan struct{}),
	}
}

// Prepare loads the approved, active patrons and the catalog the scenarios pick from.
func (lg *LoadGenerator) Prepare(ctx context.Context) error {
	approved, active := true, true

	patrons, err := lg.handlers.RegisteredPatrons.Handle(ctx, registeredpatrons.BuildQuery(&approved, &active, 0, 0))
	if err != nil {
		return err
	}

	titles, err := lg.handlers.TitlesInCatalog.Handle(ctx, titlesincatalog.BuildQuery("", 0, 0))
	if err != nil {
		return err
	}

	if patrons.Count == 0 || titles.Count == 0 {
		return ErrEmptyLibrary
	}

	lg.patrons = make([]core.PatronID, 0, patrons.Count)
	for _, patron := range patrons.Patrons {
		lg.patrons = append(lg.patrons, patron.ID)
	}

	lg.titles = make([]core.TitleID, 0, titles.Count)
	for _, title := range titles.Titles {
		lg.titles = append(lg.titles, title.ID)
	}

	return nil
}

// Start runs scenarios at the configured rate until ctx is done or Stop is called.
func (lg *LoadGenerator) Start(ctx context.Context) error {
	lg.startTime = time.Now()

	interval := time.Second / time.Duration(lg.config.Rate)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	lg.logger.Info("load generator starting",
		"rate", lg.config.Rate,
		"interval", interval.String(),
		"patrons", len(lg.patrons),
		"titles", len(lg.titles),
	)

	lg.wg.Add(1)
	go lg.statsReporter(ctx)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case <-lg.stopChan:
			return nil

		case <-ticker.C:
			lg.wg.Add(1)
			go func() {
				defer lg.wg.Done()
				lg.RunScenario(ctx)
			}()
		}
	}
}

// Stop waits for in-flight scenarios, bounded by ctx, and logs the final numbers.
func (lg *LoadGenerator) Stop(ctx context.Context) error {
	lg.stopOnce.Do(func() { close(lg.stopChan) })

	done := make(chan struct{})
	go func() {
		lg.wg.Wait()
		close(done)
	}()

	defer lg.logStats("load generator final stats")

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return errors.New("shutdown timeout exceeded")
	}
}

// Stats returns the outcome counters so far.
func (lg *LoadGenerator) Stats() Stats {
	return Stats{
		Scenarios: lg.scenarios.Load(),
		Rejected:  lg.rejected.Load(),
		Failed:    lg.failed.Load(),
	}
}

// RunScenario picks and runs one weighted scenario and counts its outcome.
func (lg *LoadGenerator) RunScenario(ctx context.Context) {
	opCtx, cancel := context.WithTimeout(ctx, scenarioTimeout)
	defer cancel()

	scenario := lg.selectScenario()

	var err error
	switch scenario {
	case scenarioLending:
		err = lg.runLendingScenario(opCtx)
	default:
		err = lg.runReservingScenario(opCtx)
	}

	lg.scenarios.Add(1)

	switch {
	case err == nil:
	case core.IsDomainError(err):
		lg.rejected.Add(1)
	default:
		lg.failed.Add(1)
		lg.logger.Warn("scenario failed", "scenario", scenario, "error", err)
	}
}

func (lg *LoadGenerator) selectScenario() string {
	if rand.IntN(100) < lg.config.LendingWeight { //nolint:gosec // load shape only
		return scenarioLending
	}

	return scenarioReserving
}

// runLendingScenario borrows a random title, or returns one of the patron's open loans.
func (lg *LoadGenerator) runLendingScenario(ctx context.Context) error {
	patronID := lg.randomPatron()
	actor := core.PatronActor(patronID)

	if rand.IntN(2) == 0 { //nolint:gosec // load shape only
		command := borrowtitle.BuildCommand(patronID, lg.randomTitle(), lg.handlers.Policy.LoanDays, actor, lg.now())
		_, err := lg.handlers.BorrowTitle.Handle(ctx, command)

		return err
	}

	open := core.LoanStatusOpen
	loans, err := lg.handlers.LoanLedger.Handle(ctx, loanledger.BuildQuery(&patronID, nil, &open, false, 0, lg.now()))
	if err != nil || loans.Count == 0 {
		return err
	}

	loan := loans.Loans[rand.IntN(loans.Count)] //nolint:gosec // load shape only
	_, err = lg.handlers.ReturnLoan.Handle(ctx, returnloan.BuildCommand(loan.ID, lg.handlers.Policy.LoanDays, actor, lg.now()))

	return err
}

// runReservingScenario queues the patron for a random title, or cancels one of their live reservations.
func (lg *LoadGenerator) runReservingScenario(ctx context.Context) error {
	patronID := lg.randomPatron()
	actor := core.PatronActor(patronID)

	if rand.IntN(2) == 0 { //nolint:gosec // load shape only
		command := reservetitle.BuildCommand(patronID, lg.randomTitle(), lg.handlers.Policy.ReservationDays, actor, lg.now())
		_, err := lg.handlers.ReserveTitle.Handle(ctx, command)

		return err
	}

	active := core.ReservationStatusActive
	reservations, err := lg.handlers.ReservationQueue.Handle(ctx, reservationqueue.BuildQuery(&patronID, nil, &active, false, 0, lg.now()))
	if err != nil || reservations.Count == 0 {
		return err
	}

	reservation := reservations.Reservations[rand.IntN(reservations.Count)] //nolint:gosec // load shape only
	_, err = lg.handlers.CancelReservation.Handle(ctx, cancelreservation.BuildCommand(reservation.ID, actor, lg.now()))

	return err
}

func (lg *LoadGenerator) randomPatron() core.PatronID {
	return lg.patrons[rand.IntN(len(lg.patrons))] //nolint:gosec // load shape only
}

func (lg *LoadGenerator) randomTitle() core.TitleID {
	return lg.titles[rand.IntN(len(lg.titles))] //nolint:gosec // load shape only
}

func (lg *LoadGenerator) statsReporter(ctx context.Context) {
	defer lg.wg.Done()

	ticker := time.NewTicker(reportInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-lg.stopChan:
			return
		case <-ticker.C:
			lg.logStats("load generator stats")
		}
	}
}

func (lg *LoadGenerator) logStats(msg string) {
	stats := lg.Stats()
	elapsed := time.Since(lg.startTime)

	if elapsed <= 0 || stats.Scenarios == 0 {
		return
	}

	lg.logger.Info(msg,
		"scenarios", stats.Scenarios,
		"per_second", float64(stats.Scenarios)/elapsed.Seconds(),
		"rejected", stats.Rejected,
		"failed", stats.Failed,
		"goroutines", runtime.NumGoroutine(),
	)
}
