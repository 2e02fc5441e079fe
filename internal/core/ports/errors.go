package ports

import "errors"

// ErrNetworkOrTimeout is the generic transport failure of any external call:
// a connection error, an aborted request, or an exceeded deadline. Adapters
// wrap transport faults with this sentinel so the core can distinguish
// "the service could not be reached" from a business rejection, which always
// has its own typed error. Workflow state is left unchanged on this error so
// the user can retry without re-entering data.
var ErrNetworkOrTimeout = errors.New("external service unreachable or timed out")
