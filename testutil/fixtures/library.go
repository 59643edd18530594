package fixtures

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation-go/features/command/addtitle"
	"github.com/AntonStoeckl/library-circulation-go/features/command/approvepatron"
	"github.com/AntonStoeckl/library-circulation-go/features/command/borrowtitle"
	"github.com/AntonStoeckl/library-circulation-go/features/command/changepatronstatus"
	"github.com/AntonStoeckl/library-circulation-go/features/command/registerpatron"
	"github.com/AntonStoeckl/library-circulation-go/features/command/reservetitle"
	"github.com/AntonStoeckl/library-circulation-go/ledger/sqlengine"
	"github.com/AntonStoeckl/library-circulation-go/shared/core"
	"github.com/AntonStoeckl/library-circulation-go/testutil/sqlitetest"
)

// Library is a test double of the circulation desk with its own database and clock.
type Library struct {
	t      testing.TB
	Ctx    context.Context
	Engine *sqlengine.Engine
	Policy core.Policy
	Now    time.Time
}

// NewLibrary opens a fresh engine. The clock starts at a fixed instant so that due dates are predictable.
func NewLibrary(t testing.TB, options ...sqlengine.Option) *Library {
	t.Helper()

	return &Library{
		t:      t,
		Ctx:    context.Background(),
		Engine: sqlitetest.NewEngine(t, options...),
		Policy: core.DefaultPolicy(),
		Now:    time.Date(2025, time.March, 3, 10, 0, 0, 0, time.UTC),
	}
}

// Advance moves the library clock forward.
func (l *Library) Advance(d time.Duration) {
	l.Now = l.Now.Add(d)
}

// Tick moves the clock by one second, so that consecutive fixtures get distinct timestamps.
func (l *Library) Tick() time.Time {
	l.Now = l.Now.Add(time.Second)
	return l.Now
}

// AddTitle puts a new title with the given number of copies into the catalog.
func (l *Library) AddTitle(title, author string, copies int) core.TitleID {
	l.t.Helper()

	command := addtitle.BuildCommand(core.Title{Title: title, Author: author}, copies, core.AdminActor(nil), l.Tick())
	result, err := addtitle.NewCommandHandler(l.Engine).Handle(l.Ctx, command)
	require.NoError(l.t, err)

	titleID, ok := addtitle.TitleIDFrom(result)
	require.True(l.t, ok, "adding a title should produce a title id")

	return titleID
}

// PendingPatron registers a patron that still awaits approval.
func (l *Library) PendingPatron(name string) core.Patron {
	l.t.Helper()

	return l.register(name, nil)
}

// ApprovedPatron registers and approves a patron with the default quota.
func (l *Library) ApprovedPatron(name string) core.Patron {
	l.t.Helper()

	return l.approve(l.register(name, nil))
}

// ApprovedPatronWithQuota registers and approves a patron with the given quota.
func (l *Library) ApprovedPatronWithQuota(name string, quota int) core.Patron {
	l.t.Helper()

	return l.approve(l.register(name, &quota))
}

// Deactivate switches the patron to inactive.
func (l *Library) Deactivate(patronID core.PatronID) {
	l.t.Helper()

	command := changepatronstatus.BuildCommand(patronID, false, core.AdminActor(nil), l.Tick())
	_, err := changepatronstatus.NewCommandHandler(l.Engine).Handle(l.Ctx, command)
	require.NoError(l.t, err)
}

func (l *Library) approve(patron core.Patron) core.Patron {
	l.t.Helper()

	_, err := approvepatron.NewCommandHandler(l.Engine).
		Handle(l.Ctx, approvepatron.BuildCommand(patron.ID, core.AdminActor(nil), l.Tick()))
	require.NoError(l.t, err)

	patron.Approved = true
	approvedAt := core.ToOccurredAt(l.Now)
	patron.ApprovedAt = &approvedAt

	return patron
}

// Borrow lends a copy of titleID to patronID with the policy's loan period.
func (l *Library) Borrow(patronID core.PatronID, titleID core.TitleID) core.Loan {
	l.t.Helper()

	command := borrowtitle.BuildCommand(patronID, titleID, l.Policy.LoanDays, core.PatronActor(patronID), l.Tick())
	result, err := borrowtitle.NewCommandHandler(l.Engine).Handle(l.Ctx, command)
	require.NoError(l.t, err)

	loan, ok := borrowtitle.LoanFrom(result)
	require.True(l.t, ok, "borrowing should open a loan")

	return loan
}

// Reserve queues patronID for titleID with the policy's reservation period.
func (l *Library) Reserve(patronID core.PatronID, titleID core.TitleID) core.Reservation {
	l.t.Helper()

	command := reservetitle.BuildCommand(patronID, titleID, l.Policy.ReservationDays, core.PatronActor(patronID), l.Tick())
	result, err := reservetitle.NewCommandHandler(l.Engine).Handle(l.Ctx, command)
	require.NoError(l.t, err)

	reservation, ok := reservetitle.ReservationFrom(result)
	require.True(l.t, ok, "reserving should place a reservation")

	return reservation
}

func (l *Library) register(name string, quota *int) core.Patron {
	l.t.Helper()

	email := strings.ToLower(strings.ReplaceAll(name, " ", ".")) + "@example.org"
	command := registerpatron.BuildCommand(name, email, nil, nil, nil, quota, core.AdminActor(nil), l.Tick())

	result, err := registerpatron.NewCommandHandler(l.Engine, registerpatron.WithPolicy(l.Policy)).Handle(l.Ctx, command)
	require.NoError(l.t, err)

	patron, ok := registerpatron.PatronFrom(result)
	require.True(l.t, ok, "registering should produce a patron")

	return patron
}
