package shell

import (
	"context"
)

// Command represents the contract for all command types of the circulation service.
// The CommandType method enables polymorphic handling and observability instrumentation.
type Command interface {
	CommandType() string
}

// CoreCommandHandler defines the contract for components that process commands.
// Handlers run the transaction workflow: lock -> Decide -> apply -> audit.
// Implementations focus on business logic and are wrapped with observability decorators.
// Handlers return HandlerResult containing business outcomes (idempotency) and retry metadata.
type CoreCommandHandler[C Command] interface {
	Handle(ctx context.Context, command C) (HandlerResult, error)
}

// Query represents the contract for all query types of the read views.
type Query interface {
	QueryType() string
}

// QueryResult represents the contract for all read view results.
// ResultCount reports how many rows the view holds, for logging.
type QueryResult interface {
	ResultCount() int
}

// CoreQueryHandler defines the contract for components that serve read views.
// The generic parameters Q and R keep queries and their results paired.
type CoreQueryHandler[Q Query, R QueryResult] interface {
	Handle(ctx context.Context, query Q) (R, error)
}
