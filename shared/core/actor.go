package core

import "fmt"

// ActorRole names who triggered an operation.
type ActorRole string

const (
	ActorAdmin  ActorRole = "admin"
	ActorPatron ActorRole = "patron"
	ActorSystem ActorRole = "system"
)

// Actor is passed explicitly into every command; it feeds the audit trail.
type Actor struct {
	Role ActorRole `json:"role"`
	ID   *int64    `json:"id,omitempty"`
}

// SystemActor is used when no caller identity is known.
func SystemActor() Actor {
	return Actor{Role: ActorSystem}
}

// AdminActor builds an admin actor, optionally identified.
func AdminActor(id *int64) Actor {
	return Actor{Role: ActorAdmin, ID: id}
}

// PatronActor builds an actor for the patron with the given id.
func PatronActor(id PatronID) Actor {
	return Actor{Role: ActorPatron, ID: &id}
}

// ParseActorRole converts external input into an ActorRole. Empty input means system.
func ParseActorRole(s string) (ActorRole, error) {
	switch ActorRole(s) {
	case "":
		return ActorSystem, nil
	case ActorAdmin, ActorPatron, ActorSystem:
		return ActorRole(s), nil
	default:
		return "", Failure(ErrInvalidInput, fmt.Sprintf("unknown actor role %q", s))
	}
}
