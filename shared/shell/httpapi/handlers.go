package httpapi

import (
	"github.com/AntonStoeckl/library-circulation-go/features/command/addtitle"
	"github.com/AntonStoeckl/library-circulation-go/features/command/approvepatron"
	"github.com/AntonStoeckl/library-circulation-go/features/command/borrowtitle"
	"github.com/AntonStoeckl/library-circulation-go/features/command/cancelloan"
	"github.com/AntonStoeckl/library-circulation-go/features/command/cancelreservation"
	"github.com/AntonStoeckl/library-circulation-go/features/command/changepatronstatus"
	"github.com/AntonStoeckl/library-circulation-go/features/command/extendloan"
	"github.com/AntonStoeckl/library-circulation-go/features/command/extendreservation"
	"github.com/AntonStoeckl/library-circulation-go/features/command/fulfillreservation"
	"github.com/AntonStoeckl/library-circulation-go/features/command/increasecopies"
	"github.com/AntonStoeckl/library-circulation-go/features/command/registerpatron"
	"github.com/AntonStoeckl/library-circulation-go/features/command/removetitle"
	"github.com/AntonStoeckl/library-circulation-go/features/command/reservetitle"
	"github.com/AntonStoeckl/library-circulation-go/features/command/returnloan"
	"github.com/AntonStoeckl/library-circulation-go/features/query/audittrail"
	"github.com/AntonStoeckl/library-circulation-go/features/query/circulationstats"
	"github.com/AntonStoeckl/library-circulation-go/features/query/loanledger"
	"github.com/AntonStoeckl/library-circulation-go/features/query/registeredpatrons"
	"github.com/AntonStoeckl/library-circulation-go/features/query/reservationqueue"
	"github.com/AntonStoeckl/library-circulation-go/features/query/titlesincatalog"
	"github.com/AntonStoeckl/library-circulation-go/ledger"
	"github.com/AntonStoeckl/library-circulation-go/shared/core"
	"github.com/AntonStoeckl/library-circulation-go/shared/shell"
	"github.com/AntonStoeckl/library-circulation-go/shared/shell/observable"
)

// Handlers are the command and query handlers served by the API, together with the lending
// terms used when a request does not name its own.
type Handlers struct {
	Policy core.Policy

	AddTitle           shell.CoreCommandHandler[addtitle.Command]
	IncreaseCopies     shell.CoreCommandHandler[increasecopies.Command]
	RemoveTitle        shell.CoreCommandHandler[removetitle.Command]
	RegisterPatron     shell.CoreCommandHandler[registerpatron.Command]
	ApprovePatron      shell.CoreCommandHandler[approvepatron.Command]
	ChangePatronStatus shell.CoreCommandHandler[changepatronstatus.Command]
	BorrowTitle        shell.CoreCommandHandler[borrowtitle.Command]
	ReturnLoan         shell.CoreCommandHandler[returnloan.Command]
	CancelLoan         shell.CoreCommandHandler[cancelloan.Command]
	ExtendLoan         shell.CoreCommandHandler[extendloan.Command]
	ReserveTitle       shell.CoreCommandHandler[reservetitle.Command]
	CancelReservation  shell.CoreCommandHandler[cancelreservation.Command]
	ExtendReservation  shell.CoreCommandHandler[extendreservation.Command]
	FulfillReservation shell.CoreCommandHandler[fulfillreservation.Command]

	TitlesInCatalog   shell.CoreQueryHandler[titlesincatalog.Query, titlesincatalog.TitlesInCatalog]
	RegisteredPatrons shell.CoreQueryHandler[registeredpatrons.Query, registeredpatrons.RegisteredPatrons]
	LoanLedger        shell.CoreQueryHandler[loanledger.Query, loanledger.LoanLedger]
	ReservationQueue  shell.CoreQueryHandler[reservationqueue.Query, reservationqueue.ReservationQueue]
	CirculationStats  shell.CoreQueryHandler[circulationstats.Query, circulationstats.Stats]
	AuditTrail        shell.CoreQueryHandler[audittrail.Query, audittrail.AuditTrail]
}

// Observers are the optional observability collaborators every handler is wrapped with.
type Observers = shell.Observers

// NewHandlers builds all handlers on top of the store and wraps each of them with the observers.
// retryOptions apply to every command; retry metrics are labeled per command type.
func NewHandlers(
	transactor ledger.Transactor,
	reader ledger.Reader,
	policy core.Policy,
	observers Observers,
	retryOptions ...shell.RetryOption,
) (Handlers, error) {
	if err := shell.ValidateRetryOptions(retryOptions...); err != nil {
		return Handlers{}, err
	}

	h := Handlers{Policy: policy}
	b := builder{observers: observers, retryOptions: retryOptions}

	h.AddTitle = observeCommand[addtitle.Command](&b, addtitle.NewCommandHandler(transactor,
		addtitle.WithRetryOptions(b.retryFor(addtitle.Command{})...)))
	h.IncreaseCopies = observeCommand[increasecopies.Command](&b, increasecopies.NewCommandHandler(transactor,
		increasecopies.WithRetryOptions(b.retryFor(increasecopies.Command{})...)))
	h.RemoveTitle = observeCommand[removetitle.Command](&b, removetitle.NewCommandHandler(transactor,
		removetitle.WithRetryOptions(b.retryFor(removetitle.Command{})...)))
	h.RegisterPatron = observeCommand[registerpatron.Command](&b, registerpatron.NewCommandHandler(transactor,
		registerpatron.WithPolicy(policy),
		registerpatron.WithRetryOptions(b.retryFor(registerpatron.Command{})...)))
	h.ApprovePatron = observeCommand[approvepatron.Command](&b, approvepatron.NewCommandHandler(transactor,
		approvepatron.WithRetryOptions(b.retryFor(approvepatron.Command{})...)))
	h.ChangePatronStatus = observeCommand[changepatronstatus.Command](&b, changepatronstatus.NewCommandHandler(transactor,
		changepatronstatus.WithRetryOptions(b.retryFor(changepatronstatus.Command{})...)))
	h.BorrowTitle = observeCommand[borrowtitle.Command](&b, borrowtitle.NewCommandHandler(transactor,
		borrowtitle.WithRetryOptions(b.retryFor(borrowtitle.Command{})...)))
	h.ReturnLoan = observeCommand[returnloan.Command](&b, returnloan.NewCommandHandler(transactor,
		returnloan.WithRetryOptions(b.retryFor(returnloan.Command{})...)))
	h.CancelLoan = observeCommand[cancelloan.Command](&b, cancelloan.NewCommandHandler(transactor,
		cancelloan.WithRetryOptions(b.retryFor(cancelloan.Command{})...)))
	h.ExtendLoan = observeCommand[extendloan.Command](&b, extendloan.NewCommandHandler(transactor,
		extendloan.WithRetryOptions(b.retryFor(extendloan.Command{})...)))
	h.ReserveTitle = observeCommand[reservetitle.Command](&b, reservetitle.NewCommandHandler(transactor,
		reservetitle.WithRetryOptions(b.retryFor(reservetitle.Command{})...)))
	h.CancelReservation = observeCommand[cancelreservation.Command](&b, cancelreservation.NewCommandHandler(transactor,
		cancelreservation.WithRetryOptions(b.retryFor(cancelreservation.Command{})...)))
	h.ExtendReservation = observeCommand[extendreservation.Command](&b, extendreservation.NewCommandHandler(transactor,
		extendreservation.WithRetryOptions(b.retryFor(extendreservation.Command{})...)))
	h.FulfillReservation = observeCommand[fulfillreservation.Command](&b, fulfillreservation.NewCommandHandler(transactor,
		fulfillreservation.WithRetryOptions(b.retryFor(fulfillreservation.Command{})...)))

	h.TitlesInCatalog = observeQuery[titlesincatalog.Query, titlesincatalog.TitlesInCatalog](&b, titlesincatalog.NewQueryHandler(reader))
	h.RegisteredPatrons = observeQuery[registeredpatrons.Query, registeredpatrons.RegisteredPatrons](&b, registeredpatrons.NewQueryHandler(reader))
	h.LoanLedger = observeQuery[loanledger.Query, loanledger.LoanLedger](&b, loanledger.NewQueryHandler(reader))
	h.ReservationQueue = observeQuery[reservationqueue.Query, reservationqueue.ReservationQueue](&b, reservationqueue.NewQueryHandler(reader))
	h.CirculationStats = observeQuery[circulationstats.Query, circulationstats.Stats](&b, circulationstats.NewQueryHandler(reader))
	h.AuditTrail = observeQuery[audittrail.Query, audittrail.AuditTrail](&b, audittrail.NewQueryHandler(reader))

	return h, nil
}

// builder adds the per-command retry metrics to the shared retry options.
type builder struct {
	observers    Observers
	retryOptions []shell.RetryOption
}

func (b *builder) retryFor(command shell.Command) []shell.RetryOption {
	options := append([]shell.RetryOption{}, b.retryOptions...)

	if b.observers.Metrics != nil {
		options = append(options, shell.WithMetrics(b.observers.Metrics, command.CommandType()))
	}

	return options
}

func observeCommand[C shell.Command](b *builder, handler shell.CoreCommandHandler[C]) shell.CoreCommandHandler[C] {
	return observable.NewCommandWrapper(handler, b.observers)
}

func observeQuery[Q shell.Query, R shell.QueryResult](b *builder, handler shell.CoreQueryHandler[Q, R]) shell.CoreQueryHandler[Q, R] {
	return observable.NewQueryWrapper(handler, b.observers)
}
