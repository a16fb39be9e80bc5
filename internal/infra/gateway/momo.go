package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"bundlemart-api/internal/pkg/config"
)

// ErrorKind classifies gateway failures the way call sites need to react to
// them: rejected requests surface the gateway message, not-found forces a
// fresh transaction, network failures are retryable.
type ErrorKind string

const (
	KindRejected ErrorKind = "REJECTED"
	KindNotFound ErrorKind = "NOT_FOUND"
	KindNetwork  ErrorKind = "NETWORK"
)

type Error struct {
	Kind    ErrorKind
	Message string
	err     error
}

func (e *Error) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.err
}

func IsKind(err error, kind ErrorKind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

// GatewayMessage extracts the user-facing message from a gateway error, if any.
func GatewayMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return ""
}

// MomoClient talks to the mobile-money payment gateway over HTTP JSON with a
// bearer secret. Every call carries the request context and the configured
// client timeout; a timed-out call is reported as a network error, never as
// an approval.
type MomoClient struct {
	baseURL    string
	secretKey  string
	currency   string
	httpClient *http.Client
}

func NewMomoClient(cfg config.MomoConfig) *MomoClient {
	return &MomoClient{
		baseURL:    cfg.BaseURL,
		secretKey:  cfg.SecretKey,
		currency:   cfg.Currency,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

type InitiateDepositParams struct {
	UserRef     string
	Amount      float64
	PhoneNumber string
	Network     string
}

type InitiateDepositResult struct {
	RequiresOtp bool
	Reference   string
	ExternalRef *string
	Message     string
}

type initiateDepositRequest struct {
	UserRef     string  `json:"user_ref"`
	Amount      float64 `json:"amount"`
	Currency    string  `json:"currency"`
	PhoneNumber string  `json:"phone_number"`
	Network     string  `json:"network"`
}

type initiateDepositResponse struct {
	Success     bool    `json:"success"`
	RequiresOtp bool    `json:"requires_otp"`
	Reference   string  `json:"reference"`
	ExternalRef *string `json:"external_ref,omitempty"`
	Message     string  `json:"message,omitempty"`
}

func (c *MomoClient) InitiateDeposit(ctx context.Context, p InitiateDepositParams) (*InitiateDepositResult, error) {
	body := initiateDepositRequest{
		UserRef:     p.UserRef,
		Amount:      p.Amount,
		Currency:    c.currency,
		PhoneNumber: p.PhoneNumber,
		Network:     p.Network,
	}

	var resp initiateDepositResponse
	if err := c.post(ctx, "/deposits", body, &resp); err != nil {
		return nil, err
	}

	if !resp.Success {
		return nil, &Error{Kind: KindRejected, Message: nonEmpty(resp.Message, "deposit was not accepted")}
	}

	return &InitiateDepositResult{
		RequiresOtp: resp.RequiresOtp,
		Reference:   resp.Reference,
		ExternalRef: resp.ExternalRef,
		Message:     resp.Message,
	}, nil
}

type verifyOtpRequest struct {
	Reference   string `json:"reference"`
	Otp         string `json:"otp"`
	PhoneNumber string `json:"phone_number"`
}

type verifyOtpResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

func (c *MomoClient) VerifyOtp(ctx context.Context, reference, otpCode, phoneNumber string) error {
	body := verifyOtpRequest{
		Reference:   reference,
		Otp:         otpCode,
		PhoneNumber: phoneNumber,
	}

	var resp verifyOtpResponse
	if err := c.post(ctx, "/deposits/otp", body, &resp); err != nil {
		return err
	}

	if !resp.Success {
		return &Error{Kind: KindRejected, Message: nonEmpty(resp.Message, "otp was not accepted")}
	}
	return nil
}

type StatusResult struct {
	Status string
	Amount float64
}

type checkStatusResponse struct {
	Success bool `json:"success"`
	Data    struct {
		Status string  `json:"status"`
		Amount float64 `json:"amount"`
	} `json:"data"`
	Message string `json:"message,omitempty"`
}

func (c *MomoClient) CheckStatus(ctx context.Context, reference string) (*StatusResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/deposits/"+reference, nil)
	if err != nil {
		return nil, &Error{Kind: KindNetwork, Message: "failed to build status request", err: err}
	}
	c.setHeaders(req)

	var resp checkStatusResponse
	if err := c.do(req, &resp); err != nil {
		return nil, err
	}

	if !resp.Success {
		return nil, &Error{Kind: KindRejected, Message: nonEmpty(resp.Message, "status check was not accepted")}
	}

	return &StatusResult{Status: resp.Data.Status, Amount: resp.Data.Amount}, nil
}

func (c *MomoClient) post(ctx context.Context, path string, body any, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return &Error{Kind: KindNetwork, Message: "failed to encode request", err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return &Error{Kind: KindNetwork, Message: "failed to build request", err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	c.setHeaders(req)

	return c.do(req, out)
}

func (c *MomoClient) do(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &Error{Kind: KindNetwork, Message: "gateway unreachable", err: err}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return &Error{Kind: KindNotFound, Message: "transaction not found"}
	case resp.StatusCode >= 500:
		return &Error{Kind: KindNetwork, Message: fmt.Sprintf("gateway returned %d", resp.StatusCode)}
	case resp.StatusCode >= 400:
		return &Error{Kind: KindRejected, Message: readErrorMessage(resp.Body)}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &Error{Kind: KindNetwork, Message: "failed to decode gateway response", err: err}
	}
	return nil
}

func (c *MomoClient) setHeaders(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	req.Header.Set("Accept", "application/json")
}

func readErrorMessage(body io.Reader) string {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(body).Decode(&payload); err == nil && payload.Message != "" {
		return payload.Message
	}
	return "request rejected by gateway"
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
