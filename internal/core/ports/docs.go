// Package ports defines the contracts between the checkout core and its
// collaborators: persistence repositories, the carrier aggregator, the
// payment provider, the address-parsing service, and event publication.
// These interfaces establish the dependency inversion boundary; the core only
// ever sees canonical domain shapes, never provider response formats.
package ports
