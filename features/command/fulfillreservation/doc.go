// Package fulfillreservation implements the Fulfill Reservation use case.
//
// A librarian hands a copy to the patron holding a live reservation. Unlike the promotion that
// follows a return, this path respects the copy count and the patron's quota.
package fulfillreservation
