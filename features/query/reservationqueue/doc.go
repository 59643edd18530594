// Package reservationqueue implements the Reservation Queue query use case.
//
// Reads never persist a passive expiry: a reservation stored as active but past its expiry is
// reported as expired, and only the next command touching it writes that down. Live reservations
// of a title listed in queue order carry their position in the FIFO queue.
package reservationqueue
