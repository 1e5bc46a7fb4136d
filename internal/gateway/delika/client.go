// Package delika is the HTTP client for the Delika backend. Every exchange
// is a plain JSON request/response; failures surface immediately with no
// automatic retry.
package delika

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/Krontiva/rider-web-app/internal/apperr"
	"github.com/Krontiva/rider-web-app/internal/config"
	"github.com/Krontiva/rider-web-app/internal/credentials"
	"github.com/Krontiva/rider-web-app/internal/domain"
	"github.com/Krontiva/rider-web-app/internal/logx"
)

// Xano-style auth headers expected by the backend.
const (
	headerAuth     = "X-Xano-Authorization"
	headerAuthOnly = "X-Xano-Authorization-Only"
)

// Client talks to the Delika backend over HTTP.
type Client struct {
	api        config.API
	httpClient *http.Client
	creds      credentials.Store
	logger     logx.Logger
}

// NewClient creates a backend client. A nil credentials store makes the
// constructor return nil, matching how a miswired gateway fails fast.
func NewClient(api config.API, creds credentials.Store, logger logx.Logger) *Client {
	if creds == nil {
		return nil
	}
	if logger == nil {
		logger = logx.Nop()
	}
	return &Client{
		api:        api,
		httpClient: &http.Client{Timeout: api.Timeout},
		creds:      creds,
		logger:     logger,
	}
}

// LoginByPhone signs the rider in by phone number. The backend issues an
// OTP to the phone as a side effect; the returned token is not trusted
// until VerifyOTP succeeds. Calling it again resends the code.
func (c *Client) LoginByPhone(ctx context.Context, phone string) (string, error) {
	var resp loginResponse
	err := c.doJSON(ctx, http.MethodPost, c.api.BaseURL+"/auth/login/phoneNumber/rider",
		false, loginRequest{PhoneNumber: phone}, &resp)
	if err != nil {
		return "", fmt.Errorf("delika gateway: LoginByPhone: %w", err)
	}
	return resp.AuthToken, nil
}

// VerifyOTP checks the sign-in code sent to the rider's phone.
func (c *Client) VerifyOTP(ctx context.Context, phone string, code int) (bool, error) {
	var resp verifyOTPResponse
	err := c.doJSON(ctx, http.MethodPost, c.api.BaseURL+"/verify/otp/code/phoneNumber",
		false, verifyOTPRequest{OTP: code, Contact: phone}, &resp)
	if err != nil {
		return false, fmt.Errorf("delika gateway: VerifyOTP: %w", err)
	}
	return resp.OTPValidate, nil
}

// Me fetches the identity behind the stored bearer token.
func (c *Client) Me(ctx context.Context) (domain.User, error) {
	var dto userDTO
	err := c.doJSON(ctx, http.MethodGet, c.api.BaseURL+"/auth/me", true, nil, &dto)
	if err != nil {
		return domain.User{}, fmt.Errorf("delika gateway: Me: %w", err)
	}
	return dto.toDomain(), nil
}

// MarkOffTrip marks the rider as off trip after sign-in. Best effort on the
// caller's side; this method only reports the outcome.
func (c *Client) MarkOffTrip(ctx context.Context, userID string) error {
	u := c.api.TripsBaseURL + "/riderOfftrip/" + url.PathEscape(userID)
	if err := c.doJSON(ctx, http.MethodPost, u, true, nil, nil); err != nil {
		return fmt.Errorf("delika gateway: MarkOffTrip: %w", err)
	}
	return nil
}

// ListOrders fetches every order visible to the rider's credential.
func (c *Client) ListOrders(ctx context.Context) ([]domain.Order, error) {
	var dtos []orderDTO
	err := c.doJSON(ctx, http.MethodGet, c.api.BaseURL+"/delikaquickshipper_orders_table", true, nil, &dtos)
	if err != nil {
		return nil, fmt.Errorf("delika gateway: ListOrders: %w", err)
	}
	orders := make([]domain.Order, 0, len(dtos))
	for _, d := range dtos {
		orders = append(orders, d.toDomain())
	}
	return orders, nil
}

// GetOrder fetches one order by id.
func (c *Client) GetOrder(ctx context.Context, id string) (domain.Order, error) {
	var dto orderDTO
	u := c.api.BaseURL + "/delikaquickshipper_orders_table/" + url.PathEscape(id)
	if err := c.doJSON(ctx, http.MethodGet, u, true, nil, &dto); err != nil {
		return domain.Order{}, fmt.Errorf("delika gateway: GetOrder: %w", err)
	}
	return dto.toDomain(), nil
}

// PatchOrderStatus applies a status transition with its timestamps.
func (c *Client) PatchOrderStatus(ctx context.Context, id string, patch domain.StatusPatch) error {
	u := c.api.BaseURL + "/delikaquickshipper_orders_table/" + url.PathEscape(id)
	if err := c.doJSON(ctx, http.MethodPatch, u, true, toStatusPatchDTO(patch), nil); err != nil {
		return fmt.Errorf("delika gateway: PatchOrderStatus: %w", err)
	}
	return nil
}

// VerifyCompletion checks the dropoff code provided by the customer. The
// response body shape varies; any non-empty, non-false value confirms.
func (c *Client) VerifyCompletion(ctx context.Context, orderOTP string) (bool, error) {
	var resp any
	err := c.doJSON(ctx, http.MethodPost, c.api.BaseURL+"/verifyCompletion",
		false, verifyCompletionRequest{OrderOTP: orderOTP}, &resp)
	if err != nil {
		return false, fmt.Errorf("delika gateway: VerifyCompletion: %w", err)
	}
	return truthy(resp), nil
}

// truthy applies loose JSON truthiness: null, false, 0 and "" reject,
// everything else (including empty objects and arrays) confirms.
func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case float64:
		return t != 0
	case string:
		return t != ""
	default:
		return true
	}
}

// ListPricing fetches every rider price submission.
func (c *Client) ListPricing(ctx context.Context) ([]domain.PriceSubmission, error) {
	var dtos []priceSubmissionDTO
	err := c.doJSON(ctx, http.MethodGet, c.api.BaseURL+"/delikeriderpricing", true, nil, &dtos)
	if err != nil {
		return nil, fmt.Errorf("delika gateway: ListPricing: %w", err)
	}
	subs := make([]domain.PriceSubmission, 0, len(dtos))
	for _, d := range dtos {
		subs = append(subs, d.toDomain())
	}
	return subs, nil
}

// StandardPricing fetches the fixed reference submission's entries.
func (c *Client) StandardPricing(ctx context.Context) ([]domain.PriceEntry, error) {
	var dto priceSubmissionDTO
	u := c.api.BaseURL + "/delikeriderpricing/" + url.PathEscape(c.api.StandardPricingID)
	if err := c.doJSON(ctx, http.MethodGet, u, true, nil, &dto); err != nil {
		return nil, fmt.Errorf("delika gateway: StandardPricing: %w", err)
	}
	return dto.toDomain().Prices, nil
}

// CreatePricing creates the rider's price submission and returns its id.
func (c *Client) CreatePricing(ctx context.Context, userID string, entries []domain.PriceEntry) (string, error) {
	var resp createPricingResponse
	err := c.doJSON(ctx, http.MethodPost, c.api.BaseURL+"/delikeriderpricing",
		true, toPricingPayload(userID, entries), &resp)
	if err != nil {
		return "", fmt.Errorf("delika gateway: CreatePricing: %w", err)
	}
	return resp.ID, nil
}

// UpdatePricing replaces the entries of an existing submission in place.
func (c *Client) UpdatePricing(ctx context.Context, id, userID string, entries []domain.PriceEntry) error {
	u := c.api.BaseURL + "/delikeriderpricing/" + url.PathEscape(id)
	err := c.doJSON(ctx, http.MethodPatch, u, true, toPricingPayload(userID, entries), nil)
	if err != nil {
		return fmt.Errorf("delika gateway: UpdatePricing: %w", err)
	}
	return nil
}

// doJSON performs one request. A nil body sends no payload; a nil out
// discards the response body.
func (c *Client) doJSON(ctx context.Context, method, rawURL string, auth bool, body, out any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if auth {
		token, err := c.creds.Get()
		if err != nil {
			if errors.Is(err, credentials.ErrNoToken) {
				return apperr.Unauthorized
			}
			return fmt.Errorf("read credential: %w", err)
		}
		req.Header.Set(headerAuth, "Bearer "+token)
		req.Header.Set(headerAuthOnly, "true")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, rawURL, err)
	}
	defer resp.Body.Close()

	c.logger.Debug("backend request",
		logx.String("method", method),
		logx.String("url", rawURL),
		logx.Int("status", resp.StatusCode),
		logx.Duration("elapsed", time.Since(start)),
	)

	if err := statusToError(resp.StatusCode); err != nil {
		io.Copy(io.Discard, resp.Body)
		return fmt.Errorf("%s %s: status %d: %w", method, rawURL, resp.StatusCode, err)
	}
	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func statusToError(code int) error {
	switch {
	case code >= 200 && code < 300:
		return nil
	case code == http.StatusUnauthorized || code == http.StatusForbidden:
		return apperr.Unauthorized
	case code == http.StatusNotFound:
		return apperr.NotFound
	default:
		return apperr.RequestFailed
	}
}
