package core

import "time"

// Title is a catalog entry for a work. Availability is never stored, see AvailableCopies.
type Title struct {
	ID              TitleID   `json:"id"`
	Title           string    `json:"title"`
	Author          string    `json:"author"`
	ISBN            *string   `json:"isbn,omitempty"`
	Publisher       *string   `json:"publisher,omitempty"`
	PublicationYear *int      `json:"publication_year,omitempty"`
	Language        *string   `json:"language,omitempty"`
	Category        *string   `json:"category,omitempty"`
	TotalCopies     int       `json:"total_copies"`
	CreatedAt       time.Time `json:"created_at"`
}

// AvailableCopies derives the number of copies that can still be lent out.
// It is recomputed from the live open-loan count every time and floored at zero.
func AvailableCopies(totalCopies int, openLoans int) int {
	available := totalCopies - openLoans
	if available < 0 {
		return 0
	}

	return available
}
