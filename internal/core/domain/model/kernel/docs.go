// Package kernel contains shared value objects used across the domain model.
// These are the building blocks every aggregate relies on: identifiers and
// the constructor-guard pattern that protects their invariants.
//
// Value objects in this package are immutable and safe for concurrent use.
// Their zero values are invalid; construct them via the provided factory
// functions and check Validate() when reconstructing from external sources.
package kernel
