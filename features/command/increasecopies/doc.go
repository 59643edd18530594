// Package increasecopies implements the Increase Copies use case.
package increasecopies
