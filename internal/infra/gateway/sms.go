package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"bundlemart-api/internal/pkg/config"
)

// SMSStatusError is a response the SMS gateway returned but declined. It is
// distinct from transport failures so callers can back off differently.
type SMSStatusError struct {
	Code    string
	Message string
}

func (e *SMSStatusError) Error() string {
	return fmt.Sprintf("sms gateway declined: code=%s message=%s", e.Code, e.Message)
}

// SuccessPredicate decides whether a gateway response code counts as
// delivered. Provider accounts differ on what they return for success.
type SuccessPredicate func(code string) bool

func defaultSuccessPredicate(code string) bool {
	return code == "ok"
}

// SMSClient sends messages through the provider's HTTP GET API. The provider
// accepts all parameters as query strings and answers with a small JSON
// envelope.
type SMSClient struct {
	baseURL    string
	apiKey     string
	senderID   string
	httpClient *http.Client
	isSuccess  SuccessPredicate
}

func NewSMSClient(cfg config.SMSConfig, pred SuccessPredicate) *SMSClient {
	if pred == nil {
		pred = defaultSuccessPredicate
	}
	return &SMSClient{
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		senderID:   cfg.SenderID,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		isSuccess:  pred,
	}
}

type smsResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Send delivers one message. A nil return means the gateway acknowledged the
// message; *SMSStatusError means the gateway answered but declined; any other
// error is a transport failure.
func (c *SMSClient) Send(ctx context.Context, to, message string) error {
	q := url.Values{}
	q.Set("key", c.apiKey)
	q.Set("to", to)
	q.Set("msg", message)
	q.Set("sender_id", c.senderID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return fmt.Errorf("failed to build sms request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("sms gateway unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 500 {
		return fmt.Errorf("sms gateway returned %d", resp.StatusCode)
	}

	var body smsResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return fmt.Errorf("failed to decode sms response: %w", err)
	}

	if !c.isSuccess(body.Code) {
		return &SMSStatusError{Code: body.Code, Message: body.Message}
	}
	return nil
}
