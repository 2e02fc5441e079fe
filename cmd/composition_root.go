package cmd

import (
	"log/slog"

	"shiplabel/internal/adapters/out/addressai"
	"shiplabel/internal/adapters/out/easypost"
	"shiplabel/internal/adapters/out/kafka"
	"shiplabel/internal/adapters/out/memsession"
	"shiplabel/internal/adapters/out/postgres"
	"shiplabel/internal/adapters/out/stripepay"
	"shiplabel/internal/core/application/usecases/commands"
	"shiplabel/internal/core/application/usecases/queries"
	"shiplabel/internal/core/domain/services"
	"shiplabel/internal/core/ports"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory

	sessions   ports.SessionStore
	gateway    ports.PaymentGateway
	carrier    *easypost.Client
	normalizer ports.AddressNormalizer
	publisher  ports.EventPublisher
	ranker     services.RateRanker
	logger     *slog.Logger
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) CompositionRoot {
	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		sessions:   memsession.NewStore(memsession.DefaultTTL),
		gateway:    stripepay.NewGateway(config.StripeAPIKey),
		carrier:    easypost.NewClient(config.EasyPostBaseURL, config.EasyPostAPIKey, logger),
		normalizer: addressai.NewNormalizer(config.AddressAIBaseURL, logger),
		publisher:  kafka.NewPublisher(config.KafkaHost, config.KafkaShipmentsTopic, logger),
		ranker:     services.NewRateRanker(),
		logger:     logger,
	}
}

// SessionStore exposes the session store so the HTTP layer can render
// current wizard state.
func (c *CompositionRoot) SessionStore() ports.SessionStore {
	return c.sessions
}

// EventPublisher exposes the publisher so main can close it on shutdown.
func (c *CompositionRoot) EventPublisher() ports.EventPublisher {
	return c.publisher
}

func (c *CompositionRoot) CreateStartCheckoutCommandHandler() commands.StartCheckoutCommandHandler {
	return commands.NewStartCheckoutCommandHandler(c.sessions)
}

func (c *CompositionRoot) CreateSubmitAddressesCommandHandler() commands.SubmitAddressesCommandHandler {
	return commands.NewSubmitAddressesCommandHandler(c.sessions, c.normalizer, c.carrier)
}

func (c *CompositionRoot) CreateSubmitPackageCommandHandler() commands.SubmitPackageCommandHandler {
	return commands.NewSubmitPackageCommandHandler(c.sessions)
}

func (c *CompositionRoot) CreateFetchRatesCommandHandler() commands.FetchRatesCommandHandler {
	return commands.NewFetchRatesCommandHandler(c.sessions, c.carrier, c.ranker)
}

func (c *CompositionRoot) CreateSelectRateCommandHandler() commands.SelectRateCommandHandler {
	return commands.NewSelectRateCommandHandler(c.sessions)
}

func (c *CompositionRoot) CreateBeginPaymentCommandHandler() commands.BeginPaymentCommandHandler {
	var f commands.DraftUoWFactory = FuncDraftUoWFactory(func() commands.DraftUoW {
		return c.uowFactory.Create()
	})
	return commands.NewBeginPaymentCommandHandler(c.sessions, c.gateway, f)
}

func (c *CompositionRoot) CreateConfirmPaymentCommandHandler() commands.ConfirmPaymentCommandHandler {
	var f commands.PurchaseUoWFactory = FuncPurchaseUoWFactory(func() commands.PurchaseUoW {
		return c.uowFactory.Create()
	})
	return commands.NewConfirmPaymentCommandHandler(c.sessions, c.gateway, c.carrier, f, c.publisher, c.logger)
}

func (c *CompositionRoot) CreateResumeCheckoutCommandHandler() commands.ResumeCheckoutCommandHandler {
	var f commands.PurchaseUoWFactory = FuncPurchaseUoWFactory(func() commands.PurchaseUoW {
		return c.uowFactory.Create()
	})
	return commands.NewResumeCheckoutCommandHandler(
		c.sessions, c.gateway, c.carrier, f, c.publisher, c.ranker, c.logger)
}

func (c *CompositionRoot) CreateGoBackCommandHandler() commands.GoBackCommandHandler {
	return commands.NewGoBackCommandHandler(c.sessions)
}

func (c *CompositionRoot) CreateVoidShipmentCommandHandler() commands.VoidShipmentCommandHandler {
	var f commands.ShipmentUoWFactory = FuncShipmentUoWFactory(func() commands.ShipmentUoW {
		return c.uowFactory.Create()
	})
	return commands.NewVoidShipmentCommandHandler(f, c.carrier, c.publisher, c.logger)
}

func (c *CompositionRoot) CreateSaveAddressCommandHandler() commands.SaveAddressCommandHandler {
	var f commands.AddressBookUoWFactory = FuncAddressBookUoWFactory(func() commands.AddressBookUoW {
		return c.uowFactory.Create()
	})
	return commands.NewSaveAddressCommandHandler(f)
}

func (c *CompositionRoot) CreateCleanupExpiredDraftsCommandHandler() commands.CleanupExpiredDraftsCommandHandler {
	var f commands.DraftUoWFactory = FuncDraftUoWFactory(func() commands.DraftUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCleanupExpiredDraftsCommandHandler(f)
}

func (c *CompositionRoot) CreateGetShipmentQueryHandler() queries.GetShipmentQueryHandler {
	return queries.NewGetShipmentQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetShipmentsForBuyerQueryHandler() queries.GetShipmentsForBuyerQueryHandler {
	return queries.NewGetShipmentsForBuyerQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetSavedAddressesQueryHandler() queries.GetSavedAddressesQueryHandler {
	return queries.NewGetSavedAddressesQueryHandler(c.gormDB)
}

type FuncShipmentUoWFactory func() commands.ShipmentUoW

func (f FuncShipmentUoWFactory) Create() commands.ShipmentUoW {
	return f()
}

type FuncDraftUoWFactory func() commands.DraftUoW

func (f FuncDraftUoWFactory) Create() commands.DraftUoW {
	return f()
}

type FuncAddressBookUoWFactory func() commands.AddressBookUoW

func (f FuncAddressBookUoWFactory) Create() commands.AddressBookUoW {
	return f()
}

type FuncPurchaseUoWFactory func() commands.PurchaseUoW

func (f FuncPurchaseUoWFactory) Create() commands.PurchaseUoW {
	return f()
}
