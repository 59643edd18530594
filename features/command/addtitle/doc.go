// Package addtitle implements the Add Title use case.
//
// Adding a title that is already in the catalog under the same title and author does not create
// a duplicate: the copies are added to the existing entry instead. A new entry must not reuse an
// ISBN that another title already carries.
package addtitle
