package easypost

import (
	"context"
	"log/slog"

	"shiplabel/internal/core/domain/model/address"
	"shiplabel/internal/core/ports"
)

var _ ports.AddressValidator = (*Client)(nil)

type verifyAddressRequest struct {
	Address addressPayload `json:"address"`
}

type verifyAddressResponse struct {
	Success bool `json:"success"`
	Errors  []struct {
		Field   string `json:"field"`
		Message string `json:"message"`
	} `json:"errors"`
	Address *addressPayload `json:"address"`
}

// Validate submits the address to the provider's verification endpoint. A
// rejected address is a successful call; transport trouble is the only error
// path, so a timeout never masquerades as an invalid address.
func (c *Client) Validate(ctx context.Context, addr address.Address) (address.ValidationResult, error) {
	request := verifyAddressRequest{Address: addressToPayload(addr)}

	var response verifyAddressResponse
	if err := c.post(ctx, validateTimeout, "/v2/addresses/verify", request, &response); err != nil {
		return address.ValidationResult{}, err
	}

	result := address.ValidationResult{IsValid: response.Success}
	for _, verdict := range response.Errors {
		result.Messages = append(result.Messages, verdict.Message)
	}

	if response.Success && response.Address != nil {
		corrected, err := response.Address.toDomain()
		if err != nil {
			// An unusable standardized variant is dropped, not fatal; the
			// submitted address already passed.
			c.logger.Warn("dropping unusable corrected address", slog.Any("error", err))
		} else if !addr.IsEqual(corrected) {
			result.Corrected = &corrected
		}
	}
	return result, nil
}
