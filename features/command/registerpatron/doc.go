// Package registerpatron implements the Register Patron use case.
//
// New patrons start pending: they cannot borrow or reserve until an administrator approves them.
// Email addresses are compared case-insensitively, so they are stored lowercased.
package registerpatron
