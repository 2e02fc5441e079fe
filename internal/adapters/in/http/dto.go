package http

import (
	"shiplabel/internal/core/application/usecases/queries"
	"shiplabel/internal/core/domain/model/address"
	"shiplabel/internal/core/domain/model/checkout"
	"shiplabel/internal/core/domain/model/parcel"
	"shiplabel/internal/core/domain/model/rate"
)

// Error is the uniform error envelope of every non-2xx answer.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// ValidationError extends the envelope with the per-address rejection
// messages of a failed validation gate.
type ValidationError struct {
	Code         int      `json:"code"`
	Message      string   `json:"message"`
	FromMessages []string `json:"from_messages,omitempty"`
	ToMessages   []string `json:"to_messages,omitempty"`
}

// Address is the wire shape of an address on requests and responses.
type Address struct {
	Name    string `json:"name"`
	Company string `json:"company,omitempty"`
	Street1 string `json:"street1"`
	Street2 string `json:"street2,omitempty"`
	City    string `json:"city"`
	State   string `json:"state"`
	Zip     string `json:"zip"`
	Country string `json:"country,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Email   string `json:"email,omitempty"`
}

func (a Address) toDomain() (address.Address, error) {
	addr, err := address.NewAddress(a.Name, a.Street1, a.City, a.State, a.Zip)
	if err != nil {
		return address.Address{}, err
	}
	if a.Company != "" {
		addr = addr.WithCompany(a.Company)
	}
	if a.Street2 != "" {
		addr = addr.WithStreet2(a.Street2)
	}
	if a.Country != "" {
		addr = addr.WithCountry(a.Country)
	}
	if a.Phone != "" {
		addr = addr.WithPhone(a.Phone)
	}
	if a.Email != "" {
		addr = addr.WithEmail(a.Email)
	}
	return addr, nil
}

func addressFromDomain(addr address.Address) Address {
	return Address{
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

// Package is the wire shape of the package details form.
type Package struct {
	Length        float64 `json:"length"`
	Width         float64 `json:"width"`
	Height        float64 `json:"height"`
	Weight        float64 `json:"weight"`
	DimensionUnit string  `json:"dimension_unit"`
	WeightUnit    string  `json:"weight_unit"`
}

func (p Package) toDomain() (parcel.Parcel, error) {
	return parcel.NewParcel(
		p.Length, p.Width, p.Height, p.Weight,
		parcel.DimensionUnit(p.DimensionUnit), parcel.WeightUnit(p.WeightUnit),
	)
}

func packageFromDomain(pkg parcel.Parcel) Package {
	return Package{
		Length:        pkg.Length(),
		Width:         pkg.Width(),
		Height:        pkg.Height(),
		Weight:        pkg.Weight(),
		DimensionUnit: string(pkg.DimensionUnit()),
		WeightUnit:    string(pkg.WeightUnit()),
	}
}

// Rate is one ranked service offer.
type Rate struct {
	ID                    string  `json:"id"`
	Carrier               string  `json:"carrier"`
	ServiceName           string  `json:"service_name"`
	Amount                float64 `json:"amount"`
	Currency              string  `json:"currency"`
	DeliveryDays          int     `json:"delivery_days"`
	EstimatedDeliveryDate string  `json:"estimated_delivery_date,omitempty"`
	BestValue             bool    `json:"best_value"`
	Fastest               bool    `json:"fastest"`
}

func rateFromDomain(r rate.Rate) Rate {
	return Rate{
		ID:                    r.ID(),
		Carrier:               r.Carrier(),
		ServiceName:           r.ServiceName(),
		Amount:                r.Amount(),
		Currency:              r.Currency(),
		DeliveryDays:          r.DeliveryDays(),
		EstimatedDeliveryDate: r.EstimatedDeliveryDate(),
		BestValue:             r.BestValue(),
		Fastest:               r.Fastest(),
	}
}

// Session is the full checkout state the frontend renders after every step.
type Session struct {
	SessionID         string   `json:"session_id"`
	BuyerID           string   `json:"buyer_id"`
	Step              string   `json:"step"`
	From              *Address `json:"from,omitempty"`
	To                *Address `json:"to,omitempty"`
	CorrectionNotices []string `json:"correction_notices,omitempty"`
	Package           *Package `json:"package,omitempty"`
	Rates             []Rate   `json:"rates,omitempty"`
	SelectedRateID    string   `json:"selected_rate_id,omitempty"`
	PaymentAttempts   int      `json:"payment_attempts,omitempty"`
	ShipmentID        string   `json:"shipment_id,omitempty"`
	LastError         string   `json:"last_error,omitempty"`
}

func sessionFromDomain(session *checkout.Session) Session {
	response := Session{
		SessionID:       session.ID().String(),
		BuyerID:         session.BuyerID().String(),
		Step:            session.Step().String(),
		PaymentAttempts: session.PaymentAttempts(),
		LastError:       session.LastError(),
	}

	if session.From().IsComplete() {
		from := addressFromDomain(session.From())
		response.From = &from
	}
	if session.To().IsComplete() {
		to := addressFromDomain(session.To())
		response.To = &to
	}
	for _, change := range session.CorrectionNotices() {
		response.CorrectionNotices = append(response.CorrectionNotices, change.Notice())
	}
	if pkg := session.Parcel(); pkg != nil {
		wire := packageFromDomain(*pkg)
		response.Package = &wire
	}
	for _, offer := range session.Rates() {
		response.Rates = append(response.Rates, rateFromDomain(offer))
	}
	if selected := session.SelectedRate(); selected != nil {
		response.SelectedRateID = selected.ID()
	}
	if shipmentID := session.ShipmentID(); shipmentID != nil {
		response.ShipmentID = shipmentID.String()
	}
	return response
}

// PaymentIntent is the answer to beginning payment; ClientSecret is what the
// frontend hands to the payment widget.
type PaymentIntent struct {
	IntentID     string `json:"intent_id"`
	ClientSecret string `json:"client_secret"`
	AmountCents  int64  `json:"amount_cents"`
	Currency     string `json:"currency"`
}

// Shipment is a purchased shipment as returned by the read side.
type Shipment struct {
	ID             string  `json:"id"`
	BuyerID        string  `json:"buyer_id,omitempty"`
	Status         string  `json:"status"`
	FromName       string  `json:"from_name,omitempty"`
	FromCity       string  `json:"from_city,omitempty"`
	FromState      string  `json:"from_state,omitempty"`
	ToName         string  `json:"to_name"`
	ToCity         string  `json:"to_city"`
	ToState        string  `json:"to_state"`
	Carrier        string  `json:"carrier"`
	ServiceName    string  `json:"service_name"`
	Amount         float64 `json:"amount"`
	Currency       string  `json:"currency"`
	TrackingNumber string  `json:"tracking_number"`
	LabelURL       string  `json:"label_url,omitempty"`
}

func shipmentFromQuery(q queries.GetShipmentQueryResponse) Shipment {
	return Shipment{
		ID:             q.ID.String(),
		BuyerID:        q.BuyerID.String(),
		Status:         q.Status,
		FromName:       q.FromName,
		FromCity:       q.FromCity,
		FromState:      q.FromState,
		ToName:         q.ToName,
		ToCity:         q.ToCity,
		ToState:        q.ToState,
		Carrier:        q.Carrier,
		ServiceName:    q.ServiceName,
		Amount:         q.Amount,
		Currency:       q.Currency,
		TrackingNumber: q.TrackingNumber,
		LabelURL:       q.LabelURL,
	}
}

func shipmentFromHistory(q queries.GetShipmentsForBuyerQueryResponse) Shipment {
	return Shipment{
		ID:             q.ID.String(),
		Status:         q.Status,
		ToName:         q.ToName,
		ToCity:         q.ToCity,
		ToState:        q.ToState,
		Carrier:        q.Carrier,
		ServiceName:    q.ServiceName,
		Amount:         q.Amount,
		Currency:       q.Currency,
		TrackingNumber: q.TrackingNumber,
	}
}

func savedAddressFromQuery(q queries.GetSavedAddressesQueryResponse) Address {
	return Address{
		Name:    q.Name,
		Company: q.Company,
		Street1: q.Street1,
		Street2: q.Street2,
		City:    q.City,
		State:   q.State,
		Zip:     q.Zip,
		Country: q.Country,
		Phone:   q.Phone,
		Email:   q.Email,
	}
}
