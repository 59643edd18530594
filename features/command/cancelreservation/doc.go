// Package cancelreservation implements the Cancel Reservation use case.
// Cancelling leaves the queue without promoting anyone.
package cancelreservation
