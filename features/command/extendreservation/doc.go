// Package extendreservation implements the Extend Reservation use case.
//
// The new expiry is max(expires_at, now) + days, so a reservation that is still stored active but
// already past its expiry is revived from now instead of staying in the past.
package extendreservation
