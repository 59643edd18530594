package registeredpatrons

import (
	"github.com/AntonStoeckl/library-circulation-go/shared/core"
)

const (
	queryType = "RegisteredPatrons"
)

// Query represents the intent to read patrons.
// With PatronID set, exactly that patron is read and the filters are ignored.
type Query struct {
	PatronID *core.PatronID
	Approved *bool
	Active   *bool
	Limit    int
	Offset   int
}

// BuildQuery creates a listing Query. Nil filters match every patron.
func BuildQuery(approved, active *bool, limit, offset int) Query {
	return Query{
		Approved: approved,
		Active:   active,
		Limit:    limit,
		Offset:   offset,
	}
}

// BuildPatronQuery creates a Query for one patron.
func BuildPatronQuery(patronID core.PatronID) Query {
	return Query{PatronID: &patronID}
}

// QueryType returns the query type.
func (q Query) QueryType() string {
	return queryType
}
