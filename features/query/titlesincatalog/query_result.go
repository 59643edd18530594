package titlesincatalog

import (
	"github.com/AntonStoeckl/library-circulation-go/shared/core"
)

// TitleInfo is a catalog entry as shown to readers of the catalog.
type TitleInfo struct {
	core.Title
	OpenLoans       int `json:"open_loans"`
	AvailableCopies int `json:"available_copies"`
}

// TitlesInCatalog represents the query result.
type TitlesInCatalog struct {
	Titles []TitleInfo `json:"titles"`
	Count  int         `json:"count"`
}

// ResultCount returns the number of titles in the result.
func (r TitlesInCatalog) ResultCount() int {
	return r.Count
}
