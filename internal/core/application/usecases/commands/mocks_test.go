package commands_test

import (
	"context"
	"testing"
	"time"

	"shiplabel/internal/core/application/usecases/commands"
	"shiplabel/internal/core/domain/model/address"
	"shiplabel/internal/core/domain/model/checkout"
	"shiplabel/internal/core/domain/model/kernel"
	"shiplabel/internal/core/domain/model/parcel"
	"shiplabel/internal/core/domain/model/rate"
	"shiplabel/internal/core/domain/model/shipment"
	"shiplabel/internal/core/ports"
	"shiplabel/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// fakeSessionStore is a map-backed store; handlers need the same session
// instance back on every Get, which a recorded mock obscures.
type fakeSessionStore struct {
	sessions map[kernel.UUID]*checkout.Session
}

func newFakeSessionStore(sessions ...*checkout.Session) *fakeSessionStore {
	store := &fakeSessionStore{sessions: make(map[kernel.UUID]*checkout.Session)}
	for _, s := range sessions {
		store.sessions[s.ID()] = s
	}
	return store
}

func (f *fakeSessionStore) Add(_ context.Context, session *checkout.Session) error {
	if _, ok := f.sessions[session.ID()]; ok {
		return errs.NewValueIsInvalidError("session already exists")
	}
	f.sessions[session.ID()] = session
	return nil
}

func (f *fakeSessionStore) Get(_ context.Context, id kernel.UUID) (*checkout.Session, error) {
	session, ok := f.sessions[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("session", id.String())
	}
	return session, nil
}

func (f *fakeSessionStore) Remove(_ context.Context, id kernel.UUID) error {
	delete(f.sessions, id)
	return nil
}

type MockAddressNormalizer struct{ mock.Mock }

func (m *MockAddressNormalizer) Normalize(ctx context.Context, addr address.Address) (address.Address, bool) {
	args := m.Called(ctx, addr)
	return args.Get(0).(address.Address), args.Bool(1)
}

type MockAddressValidator struct{ mock.Mock }

func (m *MockAddressValidator) Validate(ctx context.Context, addr address.Address) (address.ValidationResult, error) {
	args := m.Called(ctx, addr)
	return args.Get(0).(address.ValidationResult), args.Error(1)
}

type MockRateShopper struct{ mock.Mock }

func (m *MockRateShopper) FetchRates(
	ctx context.Context,
	from, to address.Address,
	pkg parcel.Parcel,
) ([]rate.Rate, error) {
	args := m.Called(ctx, from, to, pkg)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]rate.Rate), args.Error(1)
}

type MockPaymentGateway struct{ mock.Mock }

func (m *MockPaymentGateway) CreateIntent(
	ctx context.Context,
	amountCents int64,
	currency string,
	metadata map[string]string,
) (ports.PaymentIntent, error) {
	args := m.Called(ctx, amountCents, currency, metadata)
	return args.Get(0).(ports.PaymentIntent), args.Error(1)
}

func (m *MockPaymentGateway) Confirm(ctx context.Context, intentID string) (ports.PaymentConfirmation, error) {
	args := m.Called(ctx, intentID)
	return args.Get(0).(ports.PaymentConfirmation), args.Error(1)
}

func (m *MockPaymentGateway) VerifySession(ctx context.Context, token string) (ports.PaymentVerification, error) {
	args := m.Called(ctx, token)
	return args.Get(0).(ports.PaymentVerification), args.Error(1)
}

type MockLabelProvider struct{ mock.Mock }

func (m *MockLabelProvider) IssueLabel(
	ctx context.Context,
	from, to address.Address,
	pkg parcel.Parcel,
	selected rate.Rate,
	buyerID kernel.UUID,
) (ports.Label, error) {
	args := m.Called(ctx, from, to, pkg, selected, buyerID)
	return args.Get(0).(ports.Label), args.Error(1)
}

func (m *MockLabelProvider) VoidLabel(ctx context.Context, trackingNumber string) error {
	args := m.Called(ctx, trackingNumber)
	return args.Error(0)
}

type MockEventPublisher struct{ mock.Mock }

func (m *MockEventPublisher) PublishShipmentPurchased(ctx context.Context, aggregate *shipment.Shipment) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockEventPublisher) PublishShipmentCancelled(ctx context.Context, aggregate *shipment.Shipment) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockEventPublisher) Close() error { return nil }

type MockShipmentRepository struct{ mock.Mock }

func (m *MockShipmentRepository) Add(ctx context.Context, aggregate *shipment.Shipment) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockShipmentRepository) Update(ctx context.Context, aggregate *shipment.Shipment) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockShipmentRepository) Get(ctx context.Context, id kernel.UUID) (*shipment.Shipment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shipment.Shipment), args.Error(1)
}

func (m *MockShipmentRepository) GetAllForBuyer(ctx context.Context, buyerID kernel.UUID) ([]*shipment.Shipment, error) {
	args := m.Called(ctx, buyerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*shipment.Shipment), args.Error(1)
}

type MockDraftRepository struct{ mock.Mock }

func (m *MockDraftRepository) Add(ctx context.Context, draft *checkout.Draft) error {
	args := m.Called(ctx, draft)
	return args.Error(0)
}

func (m *MockDraftRepository) Consume(ctx context.Context, intentID string) (*checkout.Draft, error) {
	args := m.Called(ctx, intentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*checkout.Draft), args.Error(1)
}

func (m *MockDraftRepository) Delete(ctx context.Context, intentID string) error {
	args := m.Called(ctx, intentID)
	return args.Error(0)
}

func (m *MockDraftRepository) DeleteExpired(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

type MockAddressBookRepository struct{ mock.Mock }

func (m *MockAddressBookRepository) Add(ctx context.Context, buyerID kernel.UUID, addr address.Address) error {
	args := m.Called(ctx, buyerID, addr)
	return args.Error(0)
}

func (m *MockAddressBookRepository) GetAllForBuyer(ctx context.Context, buyerID kernel.UUID) ([]address.Address, error) {
	args := m.Called(ctx, buyerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]address.Address), args.Error(1)
}

type MockDraftUoW struct{ mock.Mock }

func (m *MockDraftUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockDraftUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockDraftUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockDraftUoW) DraftRepository() ports.DraftRepository {
	args := m.Called()
	return args.Get(0).(ports.DraftRepository)
}

type MockDraftUoWFactory struct{ mock.Mock }

func (m *MockDraftUoWFactory) Create() commands.DraftUoW {
	args := m.Called()
	return args.Get(0).(commands.DraftUoW)
}

type MockPurchaseUoW struct{ mock.Mock }

func (m *MockPurchaseUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockPurchaseUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockPurchaseUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockPurchaseUoW) ShipmentRepository() ports.ShipmentRepository {
	args := m.Called()
	return args.Get(0).(ports.ShipmentRepository)
}

func (m *MockPurchaseUoW) DraftRepository() ports.DraftRepository {
	args := m.Called()
	return args.Get(0).(ports.DraftRepository)
}

type MockPurchaseUoWFactory struct{ mock.Mock }

func (m *MockPurchaseUoWFactory) Create() commands.PurchaseUoW {
	args := m.Called()
	return args.Get(0).(commands.PurchaseUoW)
}

type MockShipmentUoW struct{ mock.Mock }

func (m *MockShipmentUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockShipmentUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockShipmentUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockShipmentUoW) ShipmentRepository() ports.ShipmentRepository {
	args := m.Called()
	return args.Get(0).(ports.ShipmentRepository)
}

type MockShipmentUoWFactory struct{ mock.Mock }

func (m *MockShipmentUoWFactory) Create() commands.ShipmentUoW {
	args := m.Called()
	return args.Get(0).(commands.ShipmentUoW)
}

type MockAddressBookUoW struct{ mock.Mock }

func (m *MockAddressBookUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockAddressBookUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockAddressBookUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockAddressBookUoW) AddressBookRepository() ports.AddressBookRepository {
	args := m.Called()
	return args.Get(0).(ports.AddressBookRepository)
}

type MockAddressBookUoWFactory struct{ mock.Mock }

func (m *MockAddressBookUoWFactory) Create() commands.AddressBookUoW {
	args := m.Called()
	return args.Get(0).(commands.AddressBookUoW)
}

// Shared fixtures.

func testAddress(t *testing.T, name, street, city, state, zip string) address.Address {
	t.Helper()
	addr, err := address.NewAddress(name, street, city, state, zip)
	require.NoError(t, err)
	return addr
}

func testParcel(t *testing.T) parcel.Parcel {
	t.Helper()
	pkg, err := parcel.NewParcel(10, 8, 4, 2.5, parcel.Inches, parcel.Pounds)
	require.NoError(t, err)
	return pkg
}

func testRate(t *testing.T, id string, amount float64, days int) rate.Rate {
	t.Helper()
	r, err := rate.NewRate(id, "USPS", "Ground Advantage", amount, "USD", days, "")
	require.NoError(t, err)
	return r
}

// sessionAtPackageStep returns a session that already passed the address gate.
func sessionAtPackageStep(t *testing.T) *checkout.Session {
	t.Helper()
	session, err := checkout.NewSession(kernel.NewUUID(), kernel.NewUUID())
	require.NoError(t, err)

	from := testAddress(t, "Ann Sender", "1 Origin Way", "Austin", "TX", "78701")
	to := testAddress(t, "Bob Receiver", "2 Delivery Rd", "Denver", "CO", "80201")
	require.NoError(t, session.SubmitAddresses(from, to))

	valid := address.ValidationResult{IsValid: true}
	_, err = session.ApplyValidationOutcome(valid, valid)
	require.NoError(t, err)
	return session
}

// sessionAtRateSelection returns a session with a parcel and the given rates
// fetched, none selected.
func sessionAtRateSelection(t *testing.T, rates ...rate.Rate) *checkout.Session {
	t.Helper()
	session := sessionAtPackageStep(t)
	require.NoError(t, session.SetParcel(testParcel(t)))
	require.NoError(t, session.PutRates(rates))
	return session
}

// sessionAtPayment returns a session on the payment step with the first rate
// selected and the given intent attached.
func sessionAtPayment(t *testing.T, intentID string, rates ...rate.Rate) *checkout.Session {
	t.Helper()
	session := sessionAtRateSelection(t, rates...)
	require.NoError(t, session.SelectRate(rates[0].ID()))
	require.NoError(t, session.AdvanceToPayment())
	require.NoError(t, session.AttachIntent(intentID))
	return session
}
