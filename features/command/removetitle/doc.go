// Package removetitle implements the Remove Title use case.
//
// A title leaves the catalog together with its closed loan and reservation history, but only while
// nobody holds a copy and nobody is waiting for one. Reservations that are stored active but already
// past their expiry do not block the removal.
package removetitle
