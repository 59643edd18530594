package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/AntonStoeckl/library-circulation-go/features/command/addtitle"
	"github.com/AntonStoeckl/library-circulation-go/features/command/approvepatron"
	"github.com/AntonStoeckl/library-circulation-go/features/command/registerpatron"
	"github.com/AntonStoeckl/library-circulation-go/features/query/titlesincatalog"
	"github.com/AntonStoeckl/library-circulation-go/ledger"
	"github.com/AntonStoeckl/library-circulation-go/shared/core"
)

// SeedResult counts what a seeding run added.
type SeedResult struct {
	TitlesAdded  int
	PatronsAdded int
}

type seeder struct {
	catalog  titlesincatalog.QueryHandler
	addTitle addtitle.CommandHandler
	register registerpatron.CommandHandler
	approve  approvepatron.CommandHandler
	logger   *slog.Logger
	now      func() time.Time
}

func newSeeder(transactor ledger.Transactor, reader ledger.Reader, policy core.Policy, logger *slog.Logger) seeder {
	return seeder{
		catalog:  titlesincatalog.NewQueryHandler(reader),
		addTitle: addtitle.NewCommandHandler(transactor),
		register: registerpatron.NewCommandHandler(transactor, registerpatron.WithPolicy(policy)),
		approve:  approvepatron.NewCommandHandler(transactor),
		logger:   logger,
		now:      time.Now,
	}
}

// Seed adds the sample catalog and patrons. Entries that already exist are left alone,
// so running it twice changes nothing.
func (s seeder) Seed(ctx context.Context) (SeedResult, error) {
	var result SeedResult

	for i, entry := range seedCatalog {
		added, err := s.seedTitle(ctx, i+1, entry)
		if err != nil {
			return result, fmt.Errorf("seeding %q: %w", entry.title, err)
		}
		if added {
			result.TitlesAdded++
		}
	}

	for i, entry := range seedPatrons {
		added, err := s.seedPatron(ctx, i+1, entry)
		if err != nil {
			return result, fmt.Errorf("seeding patron %s: %w", entry.email, err)
		}
		if added {
			result.PatronsAdded++
		}
	}

	return result, nil
}

func (s seeder) seedTitle(ctx context.Context, seq int, entry seedTitle) (bool, error) {
	existing, err := s.catalog.Handle(ctx, titlesincatalog.BuildQuery(entry.title, 0, 0))
	if err != nil {
		return false, err
	}

	for _, title := range existing.Titles {
		if title.Title.Title == entry.title && title.Author == entry.author {
			s.logger.Debug("title already in catalog", "title", entry.title)
			return false, nil
		}
	}

	isbn := fmt.Sprintf("9780000%06d", seq)
	language := seedLanguage
	category := seedCategory

	title := core.Title{
		Title:    entry.title,
		Author:   entry.author,
		ISBN:     &isbn,
		Language: &language,
		Category: &category,
	}

	_, err = s.addTitle.Handle(ctx, addtitle.BuildCommand(title, entry.copies, core.SystemActor(), s.now()))
	if err != nil {
		return false, err
	}

	return true, nil
}

func (s seeder) seedPatron(ctx context.Context, seq int, entry seedPatron) (bool, error) {
	cardNumber := fmt.Sprintf("CARD-SEED-%04d", seq)
	affiliation := seedAffiliation

	command := registerpatron.BuildCommand(entry.name, entry.email, &cardNumber, &affiliation, nil, nil, core.SystemActor(), s.now())

	result, err := s.register.Handle(ctx, command)
	if errors.Is(err, core.ErrConflict) {
		s.logger.Debug("patron already registered", "email", entry.email)
		return false, nil
	}
	if err != nil {
		return false, err
	}

	patron, ok := registerpatron.PatronFrom(result)
	if !ok {
		return false, errors.New("registration produced no patron")
	}

	if _, err = s.approve.Handle(ctx, approvepatron.BuildCommand(patron.ID, core.SystemActor(), s.now())); err != nil {
		return false, err
	}

	return true, nil
}
