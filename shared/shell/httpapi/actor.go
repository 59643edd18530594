package httpapi

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/AntonStoeckl/library-circulation-go/shared/core"
)

const (
	headerActorRole = "X-Actor-Role"
	headerActorID   = "X-Actor-ID"
)

// actorFrom reads the caller from the actor headers. A patron must name its id.
func actorFrom(c *gin.Context) (core.Actor, error) {
	role, err := core.ParseActorRole(strings.ToLower(strings.TrimSpace(c.GetHeader(headerActorRole))))
	if err != nil {
		return core.Actor{}, err
	}

	actor := core.Actor{Role: role}

	if raw := strings.TrimSpace(c.GetHeader(headerActorID)); raw != "" {
		id, parseErr := strconv.ParseInt(raw, 10, 64)
		if parseErr != nil || id <= 0 {
			return core.Actor{}, invalidInput("X-Actor-ID must be a positive integer")
		}
		actor.ID = &id
	}

	if actor.Role == core.ActorPatron && actor.ID == nil {
		return core.Actor{}, invalidInput("a patron actor needs X-Actor-ID")
	}

	return actor, nil
}
