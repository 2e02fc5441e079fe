// Package http exposes the checkout workflow over a JSON API.
// It binds requests, translates them into commands and queries, and renders
// the session state the frontend drives the wizard with.
package http

import (
	"net/http"

	"shiplabel/internal/core/application/usecases/commands"
	"shiplabel/internal/core/application/usecases/queries"
	"shiplabel/internal/core/domain/model/checkout"
	"shiplabel/internal/core/domain/model/kernel"
	"shiplabel/internal/core/ports"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	sessions ports.SessionStore

	// Command handlers
	startCheckoutHandler   commands.StartCheckoutCommandHandler
	submitAddressesHandler commands.SubmitAddressesCommandHandler
	submitPackageHandler   commands.SubmitPackageCommandHandler
	fetchRatesHandler      commands.FetchRatesCommandHandler
	selectRateHandler      commands.SelectRateCommandHandler
	beginPaymentHandler    commands.BeginPaymentCommandHandler
	confirmPaymentHandler  commands.ConfirmPaymentCommandHandler
	resumeCheckoutHandler  commands.ResumeCheckoutCommandHandler
	goBackHandler          commands.GoBackCommandHandler
	voidShipmentHandler    commands.VoidShipmentCommandHandler
	saveAddressHandler     commands.SaveAddressCommandHandler

	// Query handlers
	getShipmentHandler          queries.GetShipmentQueryHandler
	getShipmentsForBuyerHandler queries.GetShipmentsForBuyerQueryHandler
	getSavedAddressesHandler    queries.GetSavedAddressesQueryHandler
}

// NewServer creates an HTTP server wired with the given handlers. The session
// store is used read-only, to render the current wizard state after each
// command.
func NewServer(
	sessions ports.SessionStore,
	startCheckoutHandler commands.StartCheckoutCommandHandler,
	submitAddressesHandler commands.SubmitAddressesCommandHandler,
	submitPackageHandler commands.SubmitPackageCommandHandler,
	fetchRatesHandler commands.FetchRatesCommandHandler,
	selectRateHandler commands.SelectRateCommandHandler,
	beginPaymentHandler commands.BeginPaymentCommandHandler,
	confirmPaymentHandler commands.ConfirmPaymentCommandHandler,
	resumeCheckoutHandler commands.ResumeCheckoutCommandHandler,
	goBackHandler commands.GoBackCommandHandler,
	voidShipmentHandler commands.VoidShipmentCommandHandler,
	saveAddressHandler commands.SaveAddressCommandHandler,
	getShipmentHandler queries.GetShipmentQueryHandler,
	getShipmentsForBuyerHandler queries.GetShipmentsForBuyerQueryHandler,
	getSavedAddressesHandler queries.GetSavedAddressesQueryHandler,
) *Server {
	return &Server{
		sessions:                    sessions,
		startCheckoutHandler:        startCheckoutHandler,
		submitAddressesHandler:      submitAddressesHandler,
		submitPackageHandler:        submitPackageHandler,
		fetchRatesHandler:           fetchRatesHandler,
		selectRateHandler:           selectRateHandler,
		beginPaymentHandler:         beginPaymentHandler,
		confirmPaymentHandler:       confirmPaymentHandler,
		resumeCheckoutHandler:       resumeCheckoutHandler,
		goBackHandler:               goBackHandler,
		voidShipmentHandler:         voidShipmentHandler,
		saveAddressHandler:          saveAddressHandler,
		getShipmentHandler:          getShipmentHandler,
		getShipmentsForBuyerHandler: getShipmentsForBuyerHandler,
		getSavedAddressesHandler:    getSavedAddressesHandler,
	}
}

// RegisterRoutes mounts the API under /api/v1.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	v1 := e.Group("/api/v1")

	v1.POST("/checkouts", s.StartCheckout)
	v1.POST("/checkouts/resume", s.ResumeCheckout)
	v1.GET("/checkouts/:sessionID", s.GetCheckout)
	v1.POST("/checkouts/:sessionID/addresses", s.SubmitAddresses)
	v1.POST("/checkouts/:sessionID/package", s.SubmitPackage)
	v1.POST("/checkouts/:sessionID/rates", s.FetchRates)
	v1.POST("/checkouts/:sessionID/rates/:rateID/select", s.SelectRate)
	v1.POST("/checkouts/:sessionID/payment", s.BeginPayment)
	v1.POST("/checkouts/:sessionID/payment/confirm", s.ConfirmPayment)
	v1.POST("/checkouts/:sessionID/back", s.GoBack)

	v1.GET("/shipments/:shipmentID", s.GetShipment)
	v1.POST("/shipments/:shipmentID/void", s.VoidShipment)

	v1.GET("/buyers/:buyerID/shipments", s.GetShipmentsForBuyer)
	v1.GET("/buyers/:buyerID/addresses", s.GetSavedAddresses)
	v1.POST("/buyers/:buyerID/addresses", s.SaveAddress)
}

// StartCheckout handles POST /api/v1/checkouts - opens a new checkout session.
func (s *Server) StartCheckout(ctx echo.Context) error {
	var request struct {
		BuyerID string `json:"buyer_id"`
	}
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "invalid request body")
	}
	buyerID, err := kernel.UUIDFromString(request.BuyerID)
	if err != nil {
		return badRequest(ctx, "invalid buyer id")
	}

	sessionID := kernel.NewUUID()
	cmd, err := commands.NewStartCheckoutCommand(sessionID, buyerID)
	if err != nil {
		return respondError(ctx, err)
	}
	if err := s.startCheckoutHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return s.renderSession(ctx, http.StatusCreated, sessionID)
}

// GetCheckout handles GET /api/v1/checkouts/:sessionID - current wizard state.
func (s *Server) GetCheckout(ctx echo.Context) error {
	sessionID, err := pathUUID(ctx, "sessionID")
	if err != nil {
		return badRequest(ctx, "invalid session id")
	}
	return s.renderSession(ctx, http.StatusOK, sessionID)
}

// SubmitAddresses handles POST /api/v1/checkouts/:sessionID/addresses.
func (s *Server) SubmitAddresses(ctx echo.Context) error {
	sessionID, err := pathUUID(ctx, "sessionID")
	if err != nil {
		return badRequest(ctx, "invalid session id")
	}

	var request struct {
		From Address `json:"from"`
		To   Address `json:"to"`
	}
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	from, err := request.From.toDomain()
	if err != nil {
		return respondError(ctx, err)
	}
	to, err := request.To.toDomain()
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewSubmitAddressesCommand(sessionID, from, to)
	if err != nil {
		return respondError(ctx, err)
	}
	if err := s.submitAddressesHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return s.renderSession(ctx, http.StatusOK, sessionID)
}

// SubmitPackage handles POST /api/v1/checkouts/:sessionID/package.
func (s *Server) SubmitPackage(ctx echo.Context) error {
	sessionID, err := pathUUID(ctx, "sessionID")
	if err != nil {
		return badRequest(ctx, "invalid session id")
	}

	var request struct {
		Package Package `json:"package"`
	}
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	pkg, err := request.Package.toDomain()
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewSubmitPackageCommand(sessionID, pkg)
	if err != nil {
		return respondError(ctx, err)
	}
	if err := s.submitPackageHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return s.renderSession(ctx, http.StatusOK, sessionID)
}

// FetchRates handles POST /api/v1/checkouts/:sessionID/rates - shops and
// ranks carrier rates for the entered addresses and package.
func (s *Server) FetchRates(ctx echo.Context) error {
	sessionID, err := pathUUID(ctx, "sessionID")
	if err != nil {
		return badRequest(ctx, "invalid session id")
	}

	cmd, err := commands.NewFetchRatesCommand(sessionID)
	if err != nil {
		return respondError(ctx, err)
	}
	if err := s.fetchRatesHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return s.renderSession(ctx, http.StatusOK, sessionID)
}

// SelectRate handles POST /api/v1/checkouts/:sessionID/rates/:rateID/select.
func (s *Server) SelectRate(ctx echo.Context) error {
	sessionID, err := pathUUID(ctx, "sessionID")
	if err != nil {
		return badRequest(ctx, "invalid session id")
	}

	cmd, err := commands.NewSelectRateCommand(sessionID, ctx.Param("rateID"))
	if err != nil {
		return respondError(ctx, err)
	}
	if err := s.selectRateHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return s.renderSession(ctx, http.StatusOK, sessionID)
}

// BeginPayment handles POST /api/v1/checkouts/:sessionID/payment - creates a
// fresh payment intent for the selected rate.
func (s *Server) BeginPayment(ctx echo.Context) error {
	sessionID, err := pathUUID(ctx, "sessionID")
	if err != nil {
		return badRequest(ctx, "invalid session id")
	}

	cmd, err := commands.NewBeginPaymentCommand(sessionID)
	if err != nil {
		return respondError(ctx, err)
	}
	intent, err := s.beginPaymentHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, PaymentIntent{
		IntentID:     intent.ID,
		ClientSecret: intent.ClientSecret,
		AmountCents:  intent.AmountCents,
		Currency:     intent.Currency,
	})
}

// ConfirmPayment handles POST /api/v1/checkouts/:sessionID/payment/confirm -
// settles the payment and, on success, purchases the label.
func (s *Server) ConfirmPayment(ctx echo.Context) error {
	sessionID, err := pathUUID(ctx, "sessionID")
	if err != nil {
		return badRequest(ctx, "invalid session id")
	}

	cmd, err := commands.NewConfirmPaymentCommand(sessionID)
	if err != nil {
		return respondError(ctx, err)
	}
	if err := s.confirmPaymentHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return s.renderSession(ctx, http.StatusOK, sessionID)
}

// ResumeCheckout handles POST /api/v1/checkouts/resume - resumes a checkout
// after the buyer returns from an external payment redirect.
func (s *Server) ResumeCheckout(ctx echo.Context) error {
	var request struct {
		PaymentSessionToken string `json:"payment_session_token"`
	}
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	cmd, err := commands.NewResumeCheckoutCommand(request.PaymentSessionToken)
	if err != nil {
		return respondError(ctx, err)
	}
	session, err := s.resumeCheckoutHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, sessionFromDomain(session))
}

// GoBack handles POST /api/v1/checkouts/:sessionID/back - navigates the
// wizard back to a previously completed step.
func (s *Server) GoBack(ctx echo.Context) error {
	sessionID, err := pathUUID(ctx, "sessionID")
	if err != nil {
		return badRequest(ctx, "invalid session id")
	}

	var request struct {
		Target string `json:"target"`
	}
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "invalid request body")
	}
	target, ok := stepFromString(request.Target)
	if !ok {
		return badRequest(ctx, "invalid target step")
	}

	cmd, err := commands.NewGoBackCommand(sessionID, target)
	if err != nil {
		return respondError(ctx, err)
	}
	if err := s.goBackHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return s.renderSession(ctx, http.StatusOK, sessionID)
}

// GetShipment handles GET /api/v1/shipments/:shipmentID.
func (s *Server) GetShipment(ctx echo.Context) error {
	shipmentID, err := pathUUID(ctx, "shipmentID")
	if err != nil {
		return badRequest(ctx, "invalid shipment id")
	}

	query, err := queries.NewGetShipmentQuery(shipmentID)
	if err != nil {
		return respondError(ctx, err)
	}
	response, err := s.getShipmentHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, shipmentFromQuery(response))
}

// VoidShipment handles POST /api/v1/shipments/:shipmentID/void.
func (s *Server) VoidShipment(ctx echo.Context) error {
	shipmentID, err := pathUUID(ctx, "shipmentID")
	if err != nil {
		return badRequest(ctx, "invalid shipment id")
	}

	cmd, err := commands.NewVoidShipmentCommand(shipmentID)
	if err != nil {
		return respondError(ctx, err)
	}
	if err := s.voidShipmentHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetShipmentsForBuyer handles GET /api/v1/buyers/:buyerID/shipments.
func (s *Server) GetShipmentsForBuyer(ctx echo.Context) error {
	buyerID, err := pathUUID(ctx, "buyerID")
	if err != nil {
		return badRequest(ctx, "invalid buyer id")
	}

	query, err := queries.NewGetShipmentsForBuyerQuery(buyerID)
	if err != nil {
		return respondError(ctx, err)
	}
	shipments, err := s.getShipmentsForBuyerHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	response := make([]Shipment, len(shipments))
	for i, item := range shipments {
		response[i] = shipmentFromHistory(item)
	}
	return ctx.JSON(http.StatusOK, response)
}

// GetSavedAddresses handles GET /api/v1/buyers/:buyerID/addresses.
func (s *Server) GetSavedAddresses(ctx echo.Context) error {
	buyerID, err := pathUUID(ctx, "buyerID")
	if err != nil {
		return badRequest(ctx, "invalid buyer id")
	}

	query, err := queries.NewGetSavedAddressesQuery(buyerID)
	if err != nil {
		return respondError(ctx, err)
	}
	saved, err := s.getSavedAddressesHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	response := make([]Address, len(saved))
	for i, item := range saved {
		response[i] = savedAddressFromQuery(item)
	}
	return ctx.JSON(http.StatusOK, response)
}

// SaveAddress handles POST /api/v1/buyers/:buyerID/addresses.
func (s *Server) SaveAddress(ctx echo.Context) error {
	buyerID, err := pathUUID(ctx, "buyerID")
	if err != nil {
		return badRequest(ctx, "invalid buyer id")
	}

	var request struct {
		Address Address `json:"address"`
	}
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "invalid request body")
	}
	addr, err := request.Address.toDomain()
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewSaveAddressCommand(buyerID, addr)
	if err != nil {
		return respondError(ctx, err)
	}
	if err := s.saveAddressHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusCreated)
}

func (s *Server) renderSession(ctx echo.Context, code int, sessionID kernel.UUID) error {
	session, err := s.sessions.Get(ctx.Request().Context(), sessionID)
	if err != nil {
		return respondError(ctx, err)
	}
	return ctx.JSON(code, sessionFromDomain(session))
}

func pathUUID(ctx echo.Context, param string) (kernel.UUID, error) {
	return kernel.UUIDFromString(ctx.Param(param))
}

func stepFromString(s string) (checkout.Step, bool) {
	switch s {
	case "address":
		return checkout.StepAddress, true
	case "package_and_rates":
		return checkout.StepPackageAndRates, true
	case "payment":
		return checkout.StepPayment, true
	default:
		return checkout.StepUnknown, false
	}
}
