// Package approvepatron implements the Approve Patron use case, the Pending -> Approved transition
// that lets a registered patron borrow and reserve. Approving twice is a no-op.
package approvepatron
