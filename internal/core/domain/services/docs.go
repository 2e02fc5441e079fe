// Package services contains stateless domain services: business logic that
// operates across value objects without belonging to any single aggregate.
package services
