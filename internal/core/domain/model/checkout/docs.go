// Package checkout contains the shipping-label purchase workflow: the Session
// aggregate that drives a user through address entry, package entry, rate
// selection, payment, and label issuance.
//
// The package is deliberately free of I/O. External collaborators (address
// validation, rate shopping, payment, label purchase) are invoked by the
// application layer; their outcomes are fed back into the Session, which is
// the single authority on step ordering, invalidation of stale data, and the
// at-most-once label issuance guarantee.
package checkout
