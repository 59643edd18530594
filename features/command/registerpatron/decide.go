package registerpatron

import (
	"fmt"

	"github.com/AntonStoeckl/library-circulation-go/shared/core"
)

// State is what Decide needs to know, loaded inside the command's transaction.
type State struct {
	EmailInUse      bool
	CardNumberInUse bool
	DefaultQuota    int
}

// Decide implements the business logic of a patron registration.
//
// Business Rules:
//
//	GIVEN: a name and an email
//	WHEN: RegisterPatron command is received
//	THEN: PatronRegistered with approved = false and active = true
//	AND: the quota is DefaultQuota unless the command sets one, zero included
//	ERROR: InvalidInput if name or email is blank or Quota < 0
//	ERROR: Conflict if the email or card number belongs to another patron
func Decide(command Command, s State) core.DecisionResult {
	if command.Name == "" || command.Email == "" {
		return core.ErrorDecision(core.Failure(core.ErrInvalidInput, "name and email are required"))
	}

	if command.Quota != nil && *command.Quota < 0 {
		return core.ErrorDecision(core.Failure(core.ErrInvalidInput, "quota must not be negative"))
	}

	if s.EmailInUse {
		return core.ErrorDecision(core.Failure(core.ErrConflict, fmt.Sprintf("email %s is already registered", command.Email)))
	}

	if s.CardNumberInUse {
		return core.ErrorDecision(core.Failure(core.ErrConflict, fmt.Sprintf("card number %s is already registered", *command.CardNumber)))
	}

	quota := s.DefaultQuota
	if command.Quota != nil {
		quota = *command.Quota
	}

	patron := core.Patron{
		Name:        command.Name,
		Email:       command.Email,
		CardNumber:  command.CardNumber,
		Affiliation: command.Affiliation,
		Phone:       command.Phone,
		Quota:       quota,
	}

	return core.SuccessDecision(core.BuildPatronRegistered(patron, command.OccurredAt))
}
