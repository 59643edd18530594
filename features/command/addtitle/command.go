package addtitle

import (
	"strings"
	"time"

	"github.com/AntonStoeckl/library-circulation-go/shared/core"
)

const (
	commandType = "AddTitle"
)

// Command represents the intent to put copies of a title on the shelves.
type Command struct {
	Title      core.Title
	Copies     int
	Actor      core.Actor
	OccurredAt core.OccurredAt
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command. Surrounding blanks are trimmed and blank optional fields are dropped.
func BuildCommand(title core.Title, copies int, actor core.Actor, occurredAt time.Time) Command {
	title.ID = 0
	title.Title = strings.TrimSpace(title.Title)
	title.Author = strings.TrimSpace(title.Author)
	title.ISBN = trimmedOrNil(title.ISBN)
	title.Publisher = trimmedOrNil(title.Publisher)
	title.Language = trimmedOrNil(title.Language)
	title.Category = trimmedOrNil(title.Category)

	return Command{
		Title:      title,
		Copies:     copies,
		Actor:      actor,
		OccurredAt: core.ToOccurredAt(occurredAt),
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
