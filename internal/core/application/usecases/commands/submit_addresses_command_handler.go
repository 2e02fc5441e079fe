package commands

import (
	"context"
	"sync"

	"shiplabel/internal/core/domain/model/address"
	"shiplabel/internal/core/domain/model/checkout"
	"shiplabel/internal/core/ports"

	"github.com/hashicorp/go-multierror"
)

// SubmitAddressesCommandHandler runs the address step: stores both drafts on
// the session, validates them with the carrier-grade validator, and applies
// the all-or-nothing gate.
//
// Both validations run concurrently; the step advances only when both pass in
// the same attempt. Corrected addresses replace the drafts and the field diff
// is recorded on the session as correction notices.
type SubmitAddressesCommandHandler struct {
	sessions   ports.SessionStore
	normalizer ports.AddressNormalizer
	validator  ports.AddressValidator
}

// NewSubmitAddressesCommandHandler creates the address-step handler.
// The normalizer may be nil when no normalization provider is configured.
func NewSubmitAddressesCommandHandler(
	sessions ports.SessionStore,
	normalizer ports.AddressNormalizer,
	validator ports.AddressValidator,
) SubmitAddressesCommandHandler {
	return SubmitAddressesCommandHandler{
		sessions:   sessions,
		normalizer: normalizer,
		validator:  validator,
	}
}

// Handle processes the address submission.
//
// A transport fault on either validation call leaves the session on the
// address step with both drafts intact and returns ports.ErrNetworkOrTimeout;
// a rejection by the validator returns checkout.ValidationRejectedError with
// the failing side's messages only.
func (h *SubmitAddressesCommandHandler) Handle(ctx context.Context, cmd SubmitAddressesCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	session, err := h.sessions.Get(ctx, cmd.SessionID())
	if err != nil {
		return err
	}

	if !session.TryBeginCall() {
		return checkout.ErrStepCallInFlight
	}
	defer session.EndCall()

	if err = session.SubmitAddresses(cmd.From(), cmd.To()); err != nil {
		return err
	}

	from := h.normalize(ctx, session.From())
	to := h.normalize(ctx, session.To())

	var (
		fromResult, toResult address.ValidationResult
		callErrs             *multierror.Error
		wg                   sync.WaitGroup
		mu                   sync.Mutex
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		result, callErr := h.validator.Validate(ctx, from)
		mu.Lock()
		defer mu.Unlock()
		fromResult = result
		callErrs = multierror.Append(callErrs, callErr)
	}()
	go func() {
		defer wg.Done()
		result, callErr := h.validator.Validate(ctx, to)
		mu.Lock()
		defer mu.Unlock()
		toResult = result
		callErrs = multierror.Append(callErrs, callErr)
	}()
	wg.Wait()

	if err = callErrs.ErrorOrNil(); err != nil {
		session.RecordFailure("address validation is temporarily unavailable, please retry")
		return err
	}

	_, err = session.ApplyValidationOutcome(fromResult, toResult)
	return err
}

// normalize is a best-effort cleanup pass before validation. A normalizer
// failure or a no-confidence result leaves the draft unchanged.
func (h *SubmitAddressesCommandHandler) normalize(ctx context.Context, addr address.Address) address.Address {
	if h.normalizer == nil {
		return addr
	}

	normalized, ok := h.normalizer.Normalize(ctx, addr)
	if !ok {
		return addr
	}
	return normalized
}
