package titlesincatalog

import (
	"strings"

	"github.com/AntonStoeckl/library-circulation-go/shared/core"
)

const (
	queryType = "TitlesInCatalog"

	// LatestTitlesLimit is the number of titles in the "latest titles" view.
	LatestTitlesLimit = 6
)

// Query represents the intent to read catalog entries.
// With TitleID set, exactly that title is read and the other fields are ignored.
type Query struct {
	TitleID     *core.TitleID
	Search      string
	NewestFirst bool
	Limit       int
	Offset      int
}

// BuildQuery creates a listing Query. Search may be empty.
func BuildQuery(search string, limit, offset int) Query {
	return Query{
		Search: strings.TrimSpace(search),
		Limit:  limit,
		Offset: offset,
	}
}

// BuildTitleQuery creates a Query for one title.
func BuildTitleQuery(titleID core.TitleID) Query {
	return Query{TitleID: &titleID}
}

// BuildLatestQuery creates a Query for the most recently added titles.
func BuildLatestQuery() Query {
	return Query{NewestFirst: true, Limit: LatestTitlesLimit}
}

// QueryType returns the query type.
func (q Query) QueryType() string {
	return queryType
}
