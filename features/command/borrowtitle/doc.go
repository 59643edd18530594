// Package borrowtitle implements the Borrow Title use case.
//
// A patron takes one copy of a title home. The command is checked against the patron's
// standing, the title's availability and the patron's quota, in that order, and the first
// failing check is the one reported.
package borrowtitle
