// Package titlesincatalog implements the Titles In Catalog query use case.
//
// It serves the catalog listing, the lookup of a single title, the title/author search and the
// "latest titles" teaser. Every entry carries its available copies, derived from the live
// open-loan count at read time; availability is never stored.
package titlesincatalog
