// Package changepatronstatus implements deactivating and reactivating a patron.
//
// An inactive patron can no longer borrow or reserve; loans already out stay valid and can be
// returned as usual.
package changepatronstatus
