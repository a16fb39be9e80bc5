//go:build unit

package gateway_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"bundlemart-api/internal/infra/gateway"
	"bundlemart-api/internal/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func smsClient(t *testing.T, pred gateway.SuccessPredicate, handler http.HandlerFunc) *gateway.SMSClient {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return gateway.NewSMSClient(config.SMSConfig{
		BaseURL:  server.URL,
		APIKey:   "test-key",
		SenderID: "BUNDLEMART",
		Timeout:  2 * time.Second,
	}, pred)
}

func TestSend(t *testing.T) {
	t.Run("sends query parameters and accepts ok", func(t *testing.T) {
		client := smsClient(t, nil, func(w http.ResponseWriter, r *http.Request) {
			q := r.URL.Query()
			assert.Equal(t, "test-key", q.Get("key"))
			assert.Equal(t, "0244123456", q.Get("to"))
			assert.Equal(t, "Your deposit was successful", q.Get("msg"))
			assert.Equal(t, "BUNDLEMART", q.Get("sender_id"))

			_ = json.NewEncoder(w).Encode(map[string]string{"code": "ok", "message": "queued"})
		})

		assert.NoError(t, client.Send(context.Background(), "0244123456", "Your deposit was successful"))
	})

	t.Run("gateway decline surfaces as status error", func(t *testing.T) {
		client := smsClient(t, nil, func(w http.ResponseWriter, _ *http.Request) {
			_ = json.NewEncoder(w).Encode(map[string]string{"code": "1002", "message": "invalid sender id"})
		})

		err := client.Send(context.Background(), "0244123456", "hello")

		var statusErr *gateway.SMSStatusError
		require.True(t, errors.As(err, &statusErr))
		assert.Equal(t, "1002", statusErr.Code)
		assert.Equal(t, "invalid sender id", statusErr.Message)
	})

	t.Run("custom success predicate", func(t *testing.T) {
		pred := func(code string) bool { return code == "1000" }
		client := smsClient(t, pred, func(w http.ResponseWriter, _ *http.Request) {
			_ = json.NewEncoder(w).Encode(map[string]string{"code": "1000"})
		})

		assert.NoError(t, client.Send(context.Background(), "0244123456", "hello"))
	})

	t.Run("http 500 is a transport error, not a status error", func(t *testing.T) {
		client := smsClient(t, nil, func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})

		err := client.Send(context.Background(), "0244123456", "hello")

		require.Error(t, err)
		var statusErr *gateway.SMSStatusError
		assert.False(t, errors.As(err, &statusErr))
	})

	t.Run("unreachable gateway is a transport error", func(t *testing.T) {
		client := gateway.NewSMSClient(config.SMSConfig{
			BaseURL: "http://127.0.0.1:1",
			APIKey:  "x",
			Timeout: 500 * time.Millisecond,
		}, nil)

		err := client.Send(context.Background(), "0244123456", "hello")

		require.Error(t, err)
		var statusErr *gateway.SMSStatusError
		assert.False(t, errors.As(err, &statusErr))
	})
}
