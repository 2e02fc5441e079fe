package http

import (
	"errors"
	"net/http"

	"shiplabel/internal/core/domain/model/checkout"
	"shiplabel/internal/core/ports"
	"shiplabel/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// respondError maps the checkout failure taxonomy onto HTTP statuses. Every
// handler funnels its errors through here so the frontend sees one
// consistent vocabulary.
func respondError(ctx echo.Context, err error) error {
	var validationErr *checkout.ValidationRejectedError
	if errors.As(err, &validationErr) {
		return ctx.JSON(http.StatusUnprocessableEntity, ValidationError{
			Code:         http.StatusUnprocessableEntity,
			Message:      "address validation rejected",
			FromMessages: validationErr.FromMessages,
			ToMessages:   validationErr.ToMessages,
		})
	}

	var paymentErr *checkout.PaymentFailedError
	if errors.As(err, &paymentErr) {
		return respond(ctx, http.StatusPaymentRequired, paymentErr.Error())
	}

	var issuanceErr *checkout.LabelIssuanceFailedError
	if errors.As(err, &issuanceErr) {
		return respond(ctx, http.StatusInternalServerError, issuanceErr.Error())
	}

	switch {
	case errors.Is(err, checkout.ErrNoRatesAvailable):
		return respond(ctx, http.StatusConflict, err.Error())
	case errors.Is(err, checkout.ErrPaymentTimedOut):
		return respond(ctx, http.StatusGatewayTimeout, err.Error())
	case errors.Is(err, checkout.ErrDuplicateIssuance):
		return respond(ctx, http.StatusConflict, err.Error())
	case errors.Is(err, checkout.ErrTooManyPaymentAttempts):
		return respond(ctx, http.StatusTooManyRequests, err.Error())
	case errors.Is(err, ports.ErrNetworkOrTimeout):
		return respond(ctx, http.StatusGatewayTimeout, "upstream provider did not answer, please retry")
	case errors.Is(err, errs.ErrObjectNotFound):
		return respond(ctx, http.StatusNotFound, err.Error())
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return respond(ctx, http.StatusBadRequest, err.Error())
	default:
		return respond(ctx, http.StatusInternalServerError, "internal error")
	}
}

func respond(ctx echo.Context, code int, message string) error {
	return ctx.JSON(code, Error{Code: code, Message: message})
}

func badRequest(ctx echo.Context, message string) error {
	return respond(ctx, http.StatusBadRequest, message)
}
