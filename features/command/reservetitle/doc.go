// Package reservetitle implements the Reserve Title use case.
//
// A reservation puts the patron in the title's FIFO queue. Reserving while copies are on the
// shelf is allowed. A patron holds at most one live reservation per title; a reservation of the
// same pair that is still stored active but already past its expiry is expired first.
package reservetitle
