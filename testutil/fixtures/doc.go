// Package fixtures builds library state for tests by running the real command handlers against a
// throwaway SQLite engine. Every helper fails the test on error, so tests can read like a story:
//
//	lib := fixtures.NewLibrary(t)
//	title := lib.AddTitle("1984", "George Orwell", 1)
//	alice := lib.ApprovedPatron("alice")
//	lib.Borrow(alice.ID, title)
package fixtures
