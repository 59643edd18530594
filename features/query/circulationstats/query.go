package circulationstats

import (
	"time"

	"github.com/AntonStoeckl/library-circulation-go/shared/core"
)

const (
	queryType = "CirculationStats"

	// DefaultPopularLimit is the length of the most-reserved ranking.
	DefaultPopularLimit = 5
)

// Query represents the intent to read the circulation stats at Now.
type Query struct {
	Now          time.Time
	PopularLimit int
}

// BuildQuery creates a Query with the default ranking length.
func BuildQuery(now time.Time) Query {
	return Query{
		Now:          core.ToOccurredAt(now),
		PopularLimit: DefaultPopularLimit,
	}
}

// QueryType returns the query type.
func (q Query) QueryType() string {
	return queryType
}
