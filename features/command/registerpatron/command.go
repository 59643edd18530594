package registerpatron

import (
	"strings"
	"time"

	"github.com/AntonStoeckl/library-circulation-go/shared/core"
)

const (
	commandType = "RegisterPatron"
)

// Command represents the intent of a person to become a patron.
// A nil Quota is replaced with the library's default quota. Zero is a valid quota.
type Command struct {
	Name        string
	Email       string
	CardNumber  *string
	Affiliation *string
	Phone       *string
	Quota       *int
	Actor       core.Actor
	OccurredAt  core.OccurredAt
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command from the registration form values.
func BuildCommand(
	name string,
	email string,
	cardNumber *string,
	affiliation *string,
	phone *string,
	quota *int,
	actor core.Actor,
	occurredAt time.Time,
) Command {
	return Command{
		Name:        strings.TrimSpace(name),
		Email:       strings.ToLower(strings.TrimSpace(email)),
		CardNumber:  trimmedOrNil(cardNumber),
		Affiliation: trimmedOrNil(affiliation),
		Phone:       trimmedOrNil(phone),
		Quota:       quota,
		Actor:       actor,
		OccurredAt:  core.ToOccurredAt(occurredAt),
	}
}

func trimmedOrNil(s *string) *string {
	if s == nil {
		return nil
	}

	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}

	return &trimmed
}
