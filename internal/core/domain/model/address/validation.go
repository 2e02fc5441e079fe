package address

// ValidationResult is the canonical outcome of a carrier address-validation
// call, already mapped from whatever shape the provider answered with.
// Corrected, when present, is the standardized address the provider suggests;
// on a valid verdict it must replace the submitted draft.
type ValidationResult struct {
	IsValid   bool
	Messages  []string
	Corrected *Address
}
