package ports

import (
	"context"

	"shiplabel/internal/core/domain/model/address"
)

// AddressNormalizer produces a best-guess structured address from free-form
// text or a partially structured input. It is best-effort by contract: it
// never blocks the flow and never errors into the orchestrator.
type AddressNormalizer interface {
	// Normalize returns a normalized copy of the input address, or the input
	// unchanged when the extraction service fails or adds nothing. The
	// returned ok flag reports whether normalization actually applied.
	Normalize(ctx context.Context, addr address.Address) (normalized address.Address, ok bool)
}

// AddressValidator submits a structured address to the external carrier
// validation service, the authoritative gate before rate shopping.
//
// Implementations must apply a bounded timeout and report its expiry as
// ErrNetworkOrTimeout, never as an isValid:false verdict. The caller's
// address is never mutated; a standardized variant arrives as
// ValidationResult.Corrected.
type AddressValidator interface {
	Validate(ctx context.Context, addr address.Address) (address.ValidationResult, error)
}
