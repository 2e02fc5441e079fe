package easypost

import (
	"context"
	"log/slog"

	"shiplabel/internal/core/domain/model/address"
	"shiplabel/internal/core/domain/model/parcel"
	"shiplabel/internal/core/domain/model/rate"
	"shiplabel/internal/core/ports"
)

var _ ports.RateShopper = (*Client)(nil)

type fetchRatesRequest struct {
	FromAddress addressPayload `json:"from_address"`
	ToAddress   addressPayload `json:"to_address"`
	Parcel      parcelPayload  `json:"parcel"`
}

type fetchRatesResponse struct {
	Rates []ratePayload `json:"rates"`
}

// FetchRates asks the provider for every available service offer. An empty
// answer is returned as an empty slice; the caller decides what that means.
func (c *Client) FetchRates(
	ctx context.Context,
	from, to address.Address,
	pkg parcel.Parcel,
) ([]rate.Rate, error) {
	request := fetchRatesRequest{
		FromAddress: addressToPayload(from),
		ToAddress:   addressToPayload(to),
		Parcel:      parcelToPayload(pkg),
	}

	var response fetchRatesResponse
	if err := c.post(ctx, ratesTimeout, "/v2/rates", request, &response); err != nil {
		return nil, err
	}

	rates := make([]rate.Rate, 0, len(response.Rates))
	for _, offer := range response.Rates {
		mapped, err := offer.toDomain()
		if err != nil {
			// A single malformed offer must not sink the whole quote.
			c.logger.Warn("skipping malformed rate offer",
				slog.String("rate_id", offer.ID), slog.Any("error", err))
			continue
		}
		rates = append(rates, mapped)
	}
	return rates, nil
}
