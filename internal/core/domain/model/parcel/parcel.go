// Package parcel defines the physical package descriptor used for rate
// shopping and label purchase. All numeric dimensions must be strictly
// positive before a rate request is permitted; unit conversion for any
// particular carrier integration is an adapter concern.
package parcel

import (
	"errors"
	"fmt"

	"shiplabel/internal/pkg/errs"
	"shiplabel/internal/pkg/guard"
)

// ErrParcelIsNotConstructed is returned when a Parcel instance was not created
// through the NewParcel factory function.
var ErrParcelIsNotConstructed = errors.New("Parcel must be created via NewParcel constructor")

// DimensionUnit is the unit of the length, width, and height measurements.
type DimensionUnit string

// WeightUnit is the unit of the weight measurement.
type WeightUnit string

const (
	Inches      DimensionUnit = "in"
	Centimeters DimensionUnit = "cm"

	Pounds    WeightUnit = "lb"
	Kilograms WeightUnit = "kg"
)

// Validate checks the dimension unit against the supported set.
func (u DimensionUnit) Validate() error {
	if u != Inches && u != Centimeters {
		return errs.NewValueIsInvalidErrorWithCause("dimension unit",
			fmt.Errorf("%q is not one of %q, %q", string(u), Inches, Centimeters))
	}
	return nil
}

// Validate checks the weight unit against the supported set.
func (u WeightUnit) Validate() error {
	if u != Pounds && u != Kilograms {
		return errs.NewValueIsInvalidErrorWithCause("weight unit",
			fmt.Errorf("%q is not one of %q, %q", string(u), Pounds, Kilograms))
	}
	return nil
}

// Parcel is a value object describing the physical package being shipped:
// outer dimensions, weight, and the units both were entered in.
//
// Invariant: length, width, height, and weight are strictly positive.
// Parcel is immutable; editing package details in the checkout flow replaces
// the whole value, which in turn invalidates previously fetched rates.
type Parcel struct { //nolint:recvcheck //using for validation
	length float64
	width  float64
	height float64
	weight float64

	dimensionUnit DimensionUnit
	weightUnit    WeightUnit

	guard guard.ConstructorGuard
}

// NewParcel creates a Parcel, validating that every dimension and the weight
// are strictly positive and both units are supported.
func NewParcel(
	length, width, height, weight float64,
	dimensionUnit DimensionUnit,
	weightUnit WeightUnit,
) (Parcel, error) {
	p := Parcel{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		p.setDimension("length", &p.length, length),
		p.setDimension("width", &p.width, width),
		p.setDimension("height", &p.height, height),
		p.setDimension("weight", &p.weight, weight),
		p.setDimensionUnit(dimensionUnit),
		p.setWeightUnit(weightUnit),
	); err != nil {
		return Parcel{}, err
	}

	return p, nil
}

// Validate ensures the Parcel was created through NewParcel.
func (p Parcel) Validate() error {
	return p.guard.Validate(ErrParcelIsNotConstructed)
}

// IsEqual compares two parcels by all measurements and units.
func (p Parcel) IsEqual(other Parcel) bool {
	return p.length == other.length &&
		p.width == other.width &&
		p.height == other.height &&
		p.weight == other.weight &&
		p.dimensionUnit == other.dimensionUnit &&
		p.weightUnit == other.weightUnit
}

// Length returns the package length.
func (p Parcel) Length() float64 { return p.length }

// Width returns the package width.
func (p Parcel) Width() float64 { return p.width }

// Height returns the package height.
func (p Parcel) Height() float64 { return p.height }

// Weight returns the package weight.
func (p Parcel) Weight() float64 { return p.weight }

// DimensionUnit returns the unit the dimensions were entered in.
func (p Parcel) DimensionUnit() DimensionUnit { return p.dimensionUnit }

// WeightUnit returns the unit the weight was entered in.
func (p Parcel) WeightUnit() WeightUnit { return p.weightUnit }

func (p *Parcel) setDimension(name string, target *float64, value float64) error {
	if value <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(name,
			fmt.Errorf("%v is not greater than 0", value))
	}
	*target = value
	return nil
}

func (p *Parcel) setDimensionUnit(unit DimensionUnit) error {
	if err := unit.Validate(); err != nil {
		return err
	}
	p.dimensionUnit = unit
	return nil
}

func (p *Parcel) setWeightUnit(unit WeightUnit) error {
	if err := unit.Validate(); err != nil {
		return err
	}
	p.weightUnit = unit
	return nil
}
