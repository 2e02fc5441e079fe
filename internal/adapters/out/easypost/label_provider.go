package easypost

import (
	"context"
	"fmt"
	"log/slog"

	"shiplabel/internal/core/domain/model/address"
	"shiplabel/internal/core/domain/model/kernel"
	"shiplabel/internal/core/domain/model/parcel"
	"shiplabel/internal/core/domain/model/rate"
	"shiplabel/internal/core/ports"
)

var _ ports.LabelProvider = (*Client)(nil)

type issueLabelRequest struct {
	RateID      string         `json:"rate_id"`
	BuyerID     string         `json:"buyer_id"`
	FromAddress addressPayload `json:"from_address"`
	ToAddress   addressPayload `json:"to_address"`
	Parcel      parcelPayload  `json:"parcel"`
}

type issueLabelResponse struct {
	TrackingCode string `json:"tracking_code"`
	LabelURL     string `json:"label_url"`
}

// IssueLabel buys the selected rate. The call is not idempotent on the
// provider side, so callers guard it with their own issuance latch. The
// buyer id goes along as the purchase reference.
func (c *Client) IssueLabel(
	ctx context.Context,
	from, to address.Address,
	pkg parcel.Parcel,
	selected rate.Rate,
	buyerID kernel.UUID,
) (ports.Label, error) {
	request := issueLabelRequest{
		RateID:      selected.ID(),
		BuyerID:     buyerID.String(),
		FromAddress: addressToPayload(from),
		ToAddress:   addressToPayload(to),
		Parcel:      parcelToPayload(pkg),
	}

	var response issueLabelResponse
	if err := c.post(ctx, labelTimeout, "/v2/labels", request, &response); err != nil {
		return ports.Label{}, err
	}
	if response.TrackingCode == "" || response.LabelURL == "" {
		return ports.Label{}, fmt.Errorf("carrier answered without a tracking code or label url")
	}

	c.logger.Info("label issued",
		slog.String("rate_id", selected.ID()),
		slog.String("tracking_code", response.TrackingCode))

	return ports.Label{
		TrackingNumber: response.TrackingCode,
		LabelURL:       response.LabelURL,
	}, nil
}

// VoidLabel refunds an unused label by tracking number.
func (c *Client) VoidLabel(ctx context.Context, trackingNumber string) error {
	path := fmt.Sprintf("/v2/labels/%s/void", trackingNumber)
	if err := c.post(ctx, labelTimeout, path, nil, nil); err != nil {
		return err
	}
	c.logger.Info("label voided", slog.String("tracking_code", trackingNumber))
	return nil
}
