package address

import (
	"errors"
	"strings"

	"shiplabel/internal/pkg/errs"
	"shiplabel/internal/pkg/guard"
)

// ErrAddressIsNotConstructed is returned when an Address instance was not created
// through NewAddress or RestoreAddress. This ensures all addresses are validated.
var ErrAddressIsNotConstructed = errors.New("Address must be created via NewAddress or RestoreAddress")

// DefaultCountry is assumed when the sender omits a country code.
const DefaultCountry = "US"

// Address is a value object describing the postal address of a shipment party.
//
// Address follows these invariants:
//   - Name, street line 1, city, state, and postal code are required
//   - Country defaults to "US" when not provided
//   - Company, street line 2, phone, and email are optional
//   - Instances are immutable; derived variants are produced via With* copies
//
// Completeness is necessary but not sufficient for deliverability: the external
// carrier validation service remains authoritative, and a validated address may
// come back standardized. Storage identity of saved address-book entries is a
// collaborator concern; the domain only carries address content.
type Address struct { //nolint:recvcheck //using for validation
	name    string
	company string
	street1 string
	street2 string
	city    string
	state   string
	zip     string
	country string
	phone   string
	email   string

	guard guard.ConstructorGuard
}

// NewAddress creates an Address from the required fields, defaulting the
// country to DefaultCountry. All required fields are trimmed and must be
// non-empty. Optional fields are attached via the With* methods.
func NewAddress(name, street1, city, state, zip string) (Address, error) {
	a := Address{
		country: DefaultCountry,
		guard:   guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		a.setName(name),
		a.setStreet1(street1),
		a.setCity(city),
		a.setState(state),
		a.setZip(zip),
	); err != nil {
		return Address{}, err
	}

	return a, nil
}

// RestoreAddress reconstructs an Address from persistence or from an external
// validator response, including the optional fields. The same required-field
// rules as NewAddress apply; an empty country falls back to DefaultCountry.
func RestoreAddress(
	name, company, street1, street2, city, state, zip, country, phone, email string,
) (Address, error) {
	a, err := NewAddress(name, street1, city, state, zip)
	if err != nil {
		return Address{}, err
	}

	a.company = strings.TrimSpace(company)
	a.street2 = strings.TrimSpace(street2)
	a.phone = strings.TrimSpace(phone)
	a.email = strings.TrimSpace(email)
	if c := strings.TrimSpace(country); c != "" {
		a.country = c
	}

	return a, nil
}

// Validate ensures the Address was constructed through one of the factory functions.
func (a Address) Validate() error {
	return a.guard.Validate(ErrAddressIsNotConstructed)
}

// IsComplete reports whether every field required for carrier validation
// is present: name, street line 1, city, state, and postal code.
func (a Address) IsComplete() bool {
	return a.name != "" && a.street1 != "" && a.city != "" && a.state != "" && a.zip != ""
}

// IsEqual compares two addresses field by field, case-insensitively.
func (a Address) IsEqual(other Address) bool {
	return strings.EqualFold(a.name, other.name) &&
		strings.EqualFold(a.company, other.company) &&
		strings.EqualFold(a.street1, other.street1) &&
		strings.EqualFold(a.street2, other.street2) &&
		strings.EqualFold(a.city, other.city) &&
		strings.EqualFold(a.state, other.state) &&
		strings.EqualFold(a.zip, other.zip) &&
		strings.EqualFold(a.country, other.country) &&
		a.phone == other.phone &&
		a.email == other.email
}

// WithCompany returns a copy of the address carrying a company line.
func (a Address) WithCompany(company string) Address {
	a.company = strings.TrimSpace(company)
	return a
}

// WithStreet2 returns a copy of the address carrying a second street line.
func (a Address) WithStreet2(street2 string) Address {
	a.street2 = strings.TrimSpace(street2)
	return a
}

// WithCountry returns a copy of the address with an explicit country code.
// An empty country keeps the current value.
func (a Address) WithCountry(country string) Address {
	if c := strings.TrimSpace(country); c != "" {
		a.country = c
	}
	return a
}

// WithPhone returns a copy of the address carrying a contact phone number.
func (a Address) WithPhone(phone string) Address {
	a.phone = strings.TrimSpace(phone)
	return a
}

// WithEmail returns a copy of the address carrying a contact email.
func (a Address) WithEmail(email string) Address {
	a.email = strings.TrimSpace(email)
	return a
}

// Name returns the recipient or sender name.
func (a Address) Name() string { return a.name }

// Company returns the optional company line.
func (a Address) Company() string { return a.company }

// Street1 returns the first street line.
func (a Address) Street1() string { return a.street1 }

// Street2 returns the optional second street line.
func (a Address) Street2() string { return a.street2 }

// City returns the city.
func (a Address) City() string { return a.city }

// State returns the state or region code.
func (a Address) State() string { return a.state }

// Zip returns the postal code.
func (a Address) Zip() string { return a.zip }

// Country returns the two-letter country code.
func (a Address) Country() string { return a.country }

// Phone returns the optional contact phone number.
func (a Address) Phone() string { return a.phone }

// Email returns the optional contact email.
func (a Address) Email() string { return a.email }

func (a *Address) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	a.name = name
	return nil
}

func (a *Address) setStreet1(street1 string) error {
	street1 = strings.TrimSpace(street1)
	if street1 == "" {
		return errs.NewValueIsRequiredError("street1")
	}
	a.street1 = street1
	return nil
}

func (a *Address) setCity(city string) error {
	city = strings.TrimSpace(city)
	if city == "" {
		return errs.NewValueIsRequiredError("city")
	}
	a.city = city
	return nil
}

func (a *Address) setState(state string) error {
	state = strings.TrimSpace(state)
	if state == "" {
		return errs.NewValueIsRequiredError("state")
	}
	a.state = state
	return nil
}

func (a *Address) setZip(zip string) error {
	zip = strings.TrimSpace(zip)
	if zip == "" {
		return errs.NewValueIsRequiredError("zip")
	}
	a.zip = zip
	return nil
}
