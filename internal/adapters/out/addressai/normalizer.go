// Package addressai calls the address extraction service that turns messy
// buyer input into a structured best guess. The service is advisory only:
// any failure here returns the input untouched, and the flow moves on to the
// authoritative carrier validation.
package addressai

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"time"

	"shiplabel/internal/core/domain/model/address"
	"shiplabel/internal/core/ports"

	gojson "github.com/goccy/go-json"
)

// normalizeTimeout is deliberately tight; a slow guess is worth less than no
// guess.
const normalizeTimeout = 5 * time.Second

type Normalizer struct {
	httpClient *http.Client
	baseURL    string
	logger     *slog.Logger
}

var _ ports.AddressNormalizer = (*Normalizer)(nil)

func NewNormalizer(baseURL string, logger *slog.Logger) *Normalizer {
	return &Normalizer{
		httpClient: &http.Client{},
		baseURL:    baseURL,
		logger:     logger.With(slog.String("infra", "addressai")),
	}
}

type normalizeRequest struct {
	Name    string `json:"name"`
	Street1 string `json:"street1"`
	Street2 string `json:"street2,omitempty"`
	City    string `json:"city"`
	State   string `json:"state"`
	Zip     string `json:"zip"`
}

type normalizeResponse struct {
	Confident bool             `json:"confident"`
	Address   normalizeRequest `json:"address"`
}

// Normalize returns the service's structured guess, or the input unchanged
// when the service is down, slow, unsure, or answers garbage.
func (n *Normalizer) Normalize(ctx context.Context, addr address.Address) (address.Address, bool) {
	ctx, cancel := context.WithTimeout(ctx, normalizeTimeout)
	defer cancel()

	body, err := gojson.Marshal(normalizeRequest{
		Name:    addr.Name(),
		Street1: addr.Street1(),
		Street2: addr.Street2(),
		City:    addr.City(),
		State:   addr.State(),
		Zip:     addr.Zip(),
	})
	if err != nil {
		return addr, false
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.baseURL+"/v1/normalize", bytes.NewReader(body))
	if err != nil {
		return addr, false
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		n.logger.Warn("normalization unavailable", slog.Any("error", err))
		return addr, false
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		n.logger.Warn("normalization refused", slog.Int("status_code", resp.StatusCode))
		return addr, false
	}

	var guess normalizeResponse
	if err := gojson.NewDecoder(resp.Body).Decode(&guess); err != nil || !guess.Confident {
		return addr, false
	}

	normalized, err := address.NewAddress(
		guess.Address.Name, guess.Address.Street1, guess.Address.City,
		guess.Address.State, guess.Address.Zip,
	)
	if err != nil {
		n.logger.Warn("discarding incomplete normalization guess", slog.Any("error", err))
		return addr, false
	}
	if guess.Address.Street2 != "" {
		normalized = normalized.WithStreet2(guess.Address.Street2)
	}
	// Carry over contact details the extractor does not handle.
	if addr.Company() != "" {
		normalized = normalized.WithCompany(addr.Company())
	}
	if addr.Phone() != "" {
		normalized = normalized.WithPhone(addr.Phone())
	}
	if addr.Email() != "" {
		normalized = normalized.WithEmail(addr.Email())
	}
	return normalized, true
}
