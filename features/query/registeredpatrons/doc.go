// Package registeredpatrons implements the Registered Patrons query use case: the member list,
// optionally narrowed to pending or inactive patrons, and the lookup of one patron.
package registeredpatrons
