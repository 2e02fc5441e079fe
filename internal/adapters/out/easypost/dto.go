package easypost

import (
	"strconv"

	"shiplabel/internal/core/domain/model/address"
	"shiplabel/internal/core/domain/model/parcel"
	"shiplabel/internal/core/domain/model/rate"
)

// addressPayload mirrors the provider's address object on both requests
// and responses.
type addressPayload struct {
	Name    string `json:"name"`
	Company string `json:"company,omitempty"`
	Street1 string `json:"street1"`
	Street2 string `json:"street2,omitempty"`
	City    string `json:"city"`
	State   string `json:"state"`
	Zip     string `json:"zip"`
	Country string `json:"country"`
	Phone   string `json:"phone,omitempty"`
	Email   string `json:"email,omitempty"`
}

func addressToPayload(addr address.Address) addressPayload {
	return addressPayload{
		Name:    addr.Name(),
		Company: addr.Company(),
		Street1: addr.Street1(),
		Street2: addr.Street2(),
		City:    addr.City(),
		State:   addr.State(),
		Zip:     addr.Zip(),
		Country: addr.Country(),
		Phone:   addr.Phone(),
		Email:   addr.Email(),
	}
}

func (p addressPayload) toDomain() (address.Address, error) {
	addr, err := address.NewAddress(p.Name, p.Street1, p.City, p.State, p.Zip)
	if err != nil {
		return address.Address{}, err
	}
	if p.Company != "" {
		addr = addr.WithCompany(p.Company)
	}
	if p.Street2 != "" {
		addr = addr.WithStreet2(p.Street2)
	}
	if p.Country != "" {
		addr = addr.WithCountry(p.Country)
	}
	if p.Phone != "" {
		addr = addr.WithPhone(p.Phone)
	}
	if p.Email != "" {
		addr = addr.WithEmail(p.Email)
	}
	return addr, nil
}

// parcelPayload carries package dimensions in the units the buyer entered;
// the provider handles conversion on its side.
type parcelPayload struct {
	Length        float64 `json:"length"`
	Width         float64 `json:"width"`
	Height        float64 `json:"height"`
	Weight        float64 `json:"weight"`
	DimensionUnit string  `json:"dimension_unit"`
	WeightUnit    string  `json:"weight_unit"`
}

func parcelToPayload(pkg parcel.Parcel) parcelPayload {
	return parcelPayload{
		Length:        pkg.Length(),
		Width:         pkg.Width(),
		Height:        pkg.Height(),
		Weight:        pkg.Weight(),
		DimensionUnit: string(pkg.DimensionUnit()),
		WeightUnit:    string(pkg.WeightUnit()),
	}
}

// ratePayload is one service offer. The provider quotes money as a decimal
// string.
type ratePayload struct {
	ID           string `json:"id"`
	Carrier      string `json:"carrier"`
	Service      string `json:"service"`
	Rate         string `json:"rate"`
	Currency     string `json:"currency"`
	DeliveryDays int    `json:"delivery_days"`
	DeliveryDate string `json:"delivery_date"`
}

func (p ratePayload) toDomain() (rate.Rate, error) {
	amount, err := strconv.ParseFloat(p.Rate, 64)
	if err != nil {
		return rate.Rate{}, err
	}
	return rate.NewRate(p.ID, p.Carrier, p.Service, amount, p.Currency, p.DeliveryDays, p.DeliveryDate)
}
