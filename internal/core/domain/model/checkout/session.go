package checkout

import (
	"errors"
	"fmt"

	"shiplabel/internal/core/domain/model/address"
	"shiplabel/internal/core/domain/model/kernel"
	"shiplabel/internal/core/domain/model/parcel"
	"shiplabel/internal/core/domain/model/rate"
	"shiplabel/internal/pkg/errs"

	"go.uber.org/atomic"
)

var (
	// ErrSessionIsNotConstructed is returned when a Session instance was not
	// created through the NewSession factory function.
	ErrSessionIsNotConstructed = errors.New("Session must be created via NewSession constructor")

	// ErrStepCallInFlight is returned when a step submission arrives while a
	// previous call for the same session is still outstanding.
	ErrStepCallInFlight = errors.New("a call for this session is already in flight")
)

// Session is the checkout workflow aggregate: the orchestrator's working state
// for one shipping-label purchase by one user. It is a pure state machine; all
// external calls happen in the application layer, which feeds their outcomes
// back in through the methods below.
//
// Session enforces the workflow invariants:
//   - The address gate is all-or-nothing: both addresses must pass carrier
//     validation in the same attempt before the step advances
//   - A validator-corrected address replaces the draft, and the field diff is
//     surfaced as notices
//   - Any package change discards fetched rates and the selection; any rate
//     list replacement discards the selection
//   - Payment requires a rate selected from the currently-fetched list
//   - A payment intent is bound to the rate it was created for and goes stale
//     when the selection changes
//   - Label issuance happens at most once per payment intent
//   - Failures keep the step and all entered data; only an error message is
//     attached
//
// A Session is exclusively owned by one user flow, never shared across
// concurrent purchase attempts, and destroyed (not reused) on completion.
type Session struct {
	id      kernel.UUID
	buyerID kernel.UUID
	step    Step

	from, to           address.Address
	addressesSubmitted bool
	correctionNotices  []address.FieldChange

	pkg *parcel.Parcel

	rates    []rate.Rate
	selected *rate.Rate

	intentID        string
	intentRateID    string
	paymentAttempts int

	issued         *atomic.Bool
	issuedIntentID string

	shipmentID *kernel.UUID

	lastError string

	// inFlight blocks concurrent duplicate submissions of the same step
	// while an external call is outstanding.
	inFlight *atomic.Bool

	isConstructed bool
}

// NewSession creates a Session at the Address step for the given buyer.
func NewSession(id, buyerID kernel.UUID) (*Session, error) {
	if err := errors.Join(id.Validate(), buyerID.Validate()); err != nil {
		return nil, err
	}

	return &Session{
		id:            id,
		buyerID:       buyerID,
		step:          StepAddress,
		issued:        atomic.NewBool(false),
		inFlight:      atomic.NewBool(false),
		isConstructed: true,
	}, nil
}

// Validate ensures the Session was properly constructed through NewSession.
func (s *Session) Validate() error {
	if s == nil || !s.isConstructed {
		return ErrSessionIsNotConstructed
	}
	return nil
}

// ID returns the session identifier.
func (s *Session) ID() kernel.UUID { return s.id }

// BuyerID returns the purchasing user's identifier.
func (s *Session) BuyerID() kernel.UUID { return s.buyerID }

// Step returns the current wizard step.
func (s *Session) Step() Step { return s.step }

// From returns the working origin address draft.
func (s *Session) From() address.Address { return s.from }

// To returns the working destination address draft.
func (s *Session) To() address.Address { return s.to }

// CorrectionNotices returns the field-change notices of the last successful
// validation, for display on the address step.
func (s *Session) CorrectionNotices() []address.FieldChange { return s.correctionNotices }

// Parcel returns the working package draft, or nil before package entry.
func (s *Session) Parcel() *parcel.Parcel { return s.pkg }

// Rates returns the currently fetched, ranked rate list.
func (s *Session) Rates() []rate.Rate { return s.rates }

// SelectedRate returns the selected rate, or nil when none is selected.
func (s *Session) SelectedRate() *rate.Rate { return s.selected }

// IntentID returns the current payment intent handle, or empty.
func (s *Session) IntentID() string { return s.intentID }

// ShipmentID returns the resulting shipment identifier once complete.
func (s *Session) ShipmentID() *kernel.UUID { return s.shipmentID }

// LastError returns the step-local error text attached by the last failure.
func (s *Session) LastError() string { return s.lastError }

// TryBeginCall latches the session for one outstanding external call.
// Returns false when another call for this session is already in flight.
func (s *Session) TryBeginCall() bool {
	return s.inFlight.CompareAndSwap(false, true)
}

// EndCall releases the in-flight latch taken by TryBeginCall.
func (s *Session) EndCall() {
	s.inFlight.Store(false)
}

// RecordFailure attaches a step-local, human-readable error message.
// The step and all entered data remain untouched so the user can retry.
func (s *Session) RecordFailure(message string) {
	s.lastError = message
}

// SubmitAddresses stores the origin and destination drafts for validation.
// Allowed only while the session is at the Address step. Submitting addresses
// that differ from the current drafts discards fetched rates, the selection,
// and any payment intent: rates quoted for other addresses must never be
// reused.
func (s *Session) SubmitAddresses(from, to address.Address) error {
	if err := s.requireStep(StepAddress); err != nil {
		return err
	}
	if err := errors.Join(from.Validate(), to.Validate()); err != nil {
		return err
	}

	if !s.addressesSubmitted || !s.from.IsEqual(from) || !s.to.IsEqual(to) {
		s.invalidateRates()
	}

	s.from = from
	s.to = to
	s.addressesSubmitted = true
	s.correctionNotices = nil
	s.lastError = ""
	return nil
}

// ApplyValidationOutcome evaluates the all-or-nothing address gate with the
// validator results for both addresses.
//
// When both results are valid, any corrected addresses replace the drafts,
// the combined correction notices are recorded and returned, and the session
// advances to the PackageAndRates step.
//
// When either result is invalid the step does not advance and a
// ValidationRejectedError carrying only the failing side's messages is
// returned. Partial validity never leaks into the next step.
func (s *Session) ApplyValidationOutcome(
	fromResult, toResult address.ValidationResult,
) ([]address.FieldChange, error) {
	if err := s.requireStep(StepAddress); err != nil {
		return nil, err
	}
	if !s.addressesSubmitted {
		return nil, errs.NewValueIsRequiredError("addresses must be submitted before validation")
	}

	if !fromResult.IsValid || !toResult.IsValid {
		rejection := &ValidationRejectedError{}
		if !fromResult.IsValid {
			rejection.FromMessages = fromResult.Messages
		}
		if !toResult.IsValid {
			rejection.ToMessages = toResult.Messages
		}
		s.lastError = rejection.Error()
		return nil, rejection
	}

	notices := make([]address.FieldChange, 0)
	if fromResult.Corrected != nil {
		notices = append(notices, s.from.DiffCorrected(*fromResult.Corrected)...)
		s.from = *fromResult.Corrected
	}
	if toResult.Corrected != nil {
		notices = append(notices, s.to.DiffCorrected(*toResult.Corrected)...)
		s.to = *toResult.Corrected
	}

	// A correction changed the drafts the same way a resubmission would have.
	if len(notices) > 0 {
		s.invalidateRates()
	}

	s.correctionNotices = notices
	s.step = StepPackageAndRates
	s.lastError = ""
	return notices, nil
}

// SetParcel stores the package draft. Any previously fetched rates, the
// selection, and any payment intent are discarded: rates quoted for a
// different package must never be reused.
func (s *Session) SetParcel(pkg parcel.Parcel) error {
	if err := s.requireStepReached(StepPackageAndRates); err != nil {
		return err
	}
	if err := pkg.Validate(); err != nil {
		return err
	}

	if s.pkg != nil && s.pkg.IsEqual(pkg) {
		return nil
	}

	s.pkg = &pkg
	s.invalidateRates()
	s.lastError = ""
	return nil
}

// CanFetchRates reports whether rate shopping is currently permitted:
// the session passed the address gate and carries a positive-dimension parcel.
func (s *Session) CanFetchRates() bool {
	return s.step == StepPackageAndRates && s.pkg != nil
}

// PutRates replaces the fetched rate list with a freshly ranked one.
// The previous selection and any payment intent are discarded so stale and
// fresh rates can never mix in one displayed list.
func (s *Session) PutRates(rates []rate.Rate) error {
	if !s.CanFetchRates() {
		return errs.NewValueIsInvalidErrorWithCause("session",
			fmt.Errorf("rates cannot be stored at step %s without package details", s.step))
	}
	if len(rates) == 0 {
		s.lastError = ErrNoRatesAvailable.Error()
		return ErrNoRatesAvailable
	}

	s.rates = rates
	s.selected = nil
	s.invalidateIntent()
	s.lastError = ""
	return nil
}

// SelectRate marks one of the currently-fetched rates as selected.
// Selecting an identifier that is not in the current list fails: a rate from
// a discarded fetch cannot be bought.
func (s *Session) SelectRate(rateID string) error {
	if err := s.requireStep(StepPackageAndRates); err != nil {
		return err
	}

	for i := range s.rates {
		if s.rates[i].ID() == rateID {
			selected := s.rates[i]
			if s.selected == nil || !s.selected.IsEqual(selected) {
				s.invalidateIntent()
			}
			s.selected = &selected
			s.lastError = ""
			return nil
		}
	}

	return errs.NewObjectNotFoundError("rate", rateID)
}

// AdvanceToPayment moves to the Payment step. Requires a selected rate.
func (s *Session) AdvanceToPayment() error {
	if err := s.requireStep(StepPackageAndRates); err != nil {
		return err
	}
	if s.selected == nil {
		return errs.NewValueIsRequiredError("a rate must be selected before payment")
	}

	s.step = StepPayment
	s.lastError = ""
	return nil
}

// maxPaymentAttempts bounds user-initiated payment retries per checkout.
// Each attached intent counts as one attempt; retries are never automatic.
const maxPaymentAttempts = 5

// AttachIntent binds a freshly created payment intent to the session and to
// the rate it was priced from. Each attached intent consumes one payment
// attempt; once the bound is reached no further intent can be attached and
// the buyer must start a new checkout.
func (s *Session) AttachIntent(intentID string) error {
	if err := s.requireStep(StepPayment); err != nil {
		return err
	}
	if intentID == "" {
		return errs.NewValueIsRequiredError("intent id")
	}
	if s.selected == nil {
		return errs.NewValueIsRequiredError("a rate must be selected before payment")
	}
	if s.PaymentAttemptsExhausted() {
		return ErrTooManyPaymentAttempts
	}

	s.intentID = intentID
	s.intentRateID = s.selected.ID()
	s.paymentAttempts++
	s.lastError = ""
	return nil
}

// PaymentAttempts returns how many payment intents were attached so far.
func (s *Session) PaymentAttempts() int { return s.paymentAttempts }

// PaymentAttemptsExhausted reports whether the payment retry bound is reached.
func (s *Session) PaymentAttemptsExhausted() bool {
	return s.paymentAttempts >= maxPaymentAttempts
}

// ExpireIntent discards the attached payment intent after an ambiguous
// confirmation outcome: the charge may or may not have gone through, so the
// expired intent must never be confirmed again. A retry has to start payment
// anew, which always prices a fresh intent.
func (s *Session) ExpireIntent() {
	s.invalidateIntent()
}

// IntentIsStale reports whether a new payment intent must be created before
// confirmation: there is none, or the selection changed since it was created.
func (s *Session) IntentIsStale() bool {
	if s.intentID == "" || s.selected == nil {
		return true
	}
	return s.intentRateID != s.selected.ID()
}

// BeginIssuance takes the label-issuance latch for a confirmed payment.
//
// The latch guarantees at most one issueLabel call per successful payment
// confirmation even when confirmation callbacks fire more than once; the
// payment intent identifier is the idempotency key. The latch is never
// released: a failed issuance after captured payment must not be silently
// retried (see LabelIssuanceFailedError).
func (s *Session) BeginIssuance(intentID string) error {
	if err := s.requireStep(StepPayment); err != nil {
		return err
	}
	if intentID == "" || intentID != s.intentID {
		return errs.NewValueIsInvalidErrorWithCause("intent id",
			fmt.Errorf("%q does not match the session's current intent", intentID))
	}

	if !s.issued.CompareAndSwap(false, true) {
		return ErrDuplicateIssuance
	}

	s.issuedIntentID = intentID
	return nil
}

// Complete records the resulting shipment and moves to the terminal step.
// The session's data has been copied out into the Shipment; the caller
// destroys the session afterwards, it is never reused for a second purchase.
func (s *Session) Complete(shipmentID kernel.UUID) error {
	if err := s.requireStep(StepPayment); err != nil {
		return err
	}
	if err := shipmentID.Validate(); err != nil {
		return err
	}
	if s.issuedIntentID == "" {
		return errs.NewValueIsRequiredError("label issuance must precede completion")
	}

	s.shipmentID = &shipmentID
	s.step = StepComplete
	s.lastError = ""
	return nil
}

// Back navigates to a previously completed step. Forward jumps and leaving
// the terminal step are rejected. Returning to or before rate selection
// invalidates any payment intent.
func (s *Session) Back(target Step) error {
	if err := target.Validate(); err != nil {
		return err
	}
	if s.step == StepComplete {
		return errs.NewValueIsInvalidError("a completed checkout cannot be navigated")
	}
	if target >= s.step {
		return errs.NewValueIsInvalidErrorWithCause("step",
			fmt.Errorf("%s has not been completed yet", target))
	}

	s.step = target
	s.invalidateIntent()
	s.lastError = ""
	return nil
}

// ReturnToRateSelection puts a session back on the PackageAndRates step after
// a cancelled or failed payment redirect, keeping the fetched rates and the
// selection so the user does not re-enter anything.
func (s *Session) ReturnToRateSelection() error {
	if err := s.requireStep(StepPayment); err != nil {
		return err
	}

	s.step = StepPackageAndRates
	s.invalidateIntent()
	return nil
}

func (s *Session) invalidateRates() {
	s.rates = nil
	s.selected = nil
	s.invalidateIntent()
}

func (s *Session) invalidateIntent() {
	s.intentID = ""
	s.intentRateID = ""
}

func (s *Session) requireStep(step Step) error {
	if err := s.Validate(); err != nil {
		return err
	}
	if s.step != step {
		return errs.NewValueIsInvalidErrorWithCause("step",
			fmt.Errorf("operation requires step %s, session is at %s", step, s.step))
	}
	return nil
}

func (s *Session) requireStepReached(step Step) error {
	if err := s.Validate(); err != nil {
		return err
	}
	if s.step < step || s.step == StepComplete {
		return errs.NewValueIsInvalidErrorWithCause("step",
			fmt.Errorf("operation requires step %s reached, session is at %s", step, s.step))
	}
	return nil
}
