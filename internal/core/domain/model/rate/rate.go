// Package rate defines the carrier service offer value object. Rates are
// immutable snapshots of what the rate-shopping provider quoted: once fetched
// they are ranked and displayed as-is, and a change to the package details
// discards them rather than recomputing anything locally.
package rate

import (
	"errors"
	"fmt"
	"strings"

	"shiplabel/internal/pkg/errs"
	"shiplabel/internal/pkg/guard"
)

// ErrRateIsNotConstructed is returned when a Rate instance was not created
// through the NewRate factory function.
var ErrRateIsNotConstructed = errors.New("Rate must be created via NewRate constructor")

// DefaultCurrency is assumed when the rate-shopping provider omits a currency.
const DefaultCurrency = "USD"

// Rate is one priced carrier service offer for a specific shipment.
//
// Invariants:
//   - ID is the provider's opaque rate identifier and is required
//   - Amount is non-negative in the stated currency
//   - DeliveryDays is a non-negative transit estimate
//   - EstimatedDeliveryDate is display-only and carried verbatim
//
// BestValue and Fastest are derived display facts assigned by the ranking
// service; they are not part of the provider's response.
type Rate struct { //nolint:recvcheck //using for validation
	id                    string
	carrier               string
	serviceName           string
	amount                float64
	currency              string
	deliveryDays          int
	estimatedDeliveryDate string

	bestValue bool
	fastest   bool

	guard guard.ConstructorGuard
}

// NewRate creates a Rate from a provider offer. An empty currency defaults to
// DefaultCurrency. The estimated delivery date is optional and not parsed.
func NewRate(
	id, carrier, serviceName string,
	amount float64,
	currency string,
	deliveryDays int,
	estimatedDeliveryDate string,
) (Rate, error) {
	r := Rate{
		estimatedDeliveryDate: estimatedDeliveryDate,
		guard:                 guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		r.setID(id),
		r.setCarrier(carrier),
		r.setServiceName(serviceName),
		r.setAmount(amount),
		r.setCurrency(currency),
		r.setDeliveryDays(deliveryDays),
	); err != nil {
		return Rate{}, err
	}

	return r, nil
}

// Validate ensures the Rate was created through NewRate.
func (r Rate) Validate() error {
	return r.guard.Validate(ErrRateIsNotConstructed)
}

// IsEqual compares two rates by their provider-assigned identifiers.
func (r Rate) IsEqual(other Rate) bool {
	return r.id == other.id
}

// Flagged returns a copy of the rate carrying the derived display flags.
// Used by the ranking service only.
func (r Rate) Flagged(bestValue, fastest bool) Rate {
	r.bestValue = bestValue
	r.fastest = fastest
	return r
}

// ID returns the provider's opaque rate identifier.
func (r Rate) ID() string { return r.id }

// Carrier returns the carrier name, e.g. "USPS".
func (r Rate) Carrier() string { return r.carrier }

// ServiceName returns the human-readable service name, e.g. "Priority Mail".
func (r Rate) ServiceName() string { return r.serviceName }

// Amount returns the total price in the rate's currency.
func (r Rate) Amount() float64 { return r.amount }

// Currency returns the price currency code.
func (r Rate) Currency() string { return r.currency }

// DeliveryDays returns the estimated transit time in days.
func (r Rate) DeliveryDays() int { return r.deliveryDays }

// EstimatedDeliveryDate returns the provider's display-only delivery date.
func (r Rate) EstimatedDeliveryDate() string { return r.estimatedDeliveryDate }

// BestValue reports whether the ranker flagged this rate as the cheapest offer.
func (r Rate) BestValue() bool { return r.bestValue }

// Fastest reports whether the ranker flagged this rate among the quickest offers.
func (r Rate) Fastest() bool { return r.fastest }

func (r *Rate) setID(id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return errs.NewValueIsRequiredError("rate id")
	}
	r.id = id
	return nil
}

func (r *Rate) setCarrier(carrier string) error {
	carrier = strings.TrimSpace(carrier)
	if carrier == "" {
		return errs.NewValueIsRequiredError("carrier")
	}
	r.carrier = carrier
	return nil
}

func (r *Rate) setServiceName(serviceName string) error {
	serviceName = strings.TrimSpace(serviceName)
	if serviceName == "" {
		return errs.NewValueIsRequiredError("service name")
	}
	r.serviceName = serviceName
	return nil
}

func (r *Rate) setAmount(amount float64) error {
	if amount < 0 {
		return errs.NewValueIsInvalidErrorWithCause("amount",
			fmt.Errorf("%v is negative", amount))
	}
	r.amount = amount
	return nil
}

func (r *Rate) setCurrency(currency string) error {
	currency = strings.TrimSpace(currency)
	if currency == "" {
		currency = DefaultCurrency
	}
	r.currency = currency
	return nil
}

func (r *Rate) setDeliveryDays(days int) error {
	if days < 0 {
		return errs.NewValueIsInvalidErrorWithCause("delivery days",
			fmt.Errorf("%d is negative", days))
	}
	r.deliveryDays = days
	return nil
}
