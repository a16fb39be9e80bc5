//go:build e2e

package deposit_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"bundlemart-api/internal/domain/user"
	"bundlemart-api/internal/handler/dto/request"
	resdto "bundlemart-api/internal/handler/dto/response"
	"bundlemart-api/tests/common/dbtest"
	"bundlemart-api/tests/common/httptest"
	"bundlemart-api/tests/e2e"
	jwtHelper "bundlemart-api/tests/e2e/common/helper"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

const depositsURL = "/api/deposits"

type depositSuite struct {
	e2e.SharedSuite
	jwtHelper *jwtHelper.JWTTestHelper
}

func TestDepositSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(depositSuite))
}

func (s *depositSuite) SetupSuite() {
	s.SharedSuite.SetupSuite()
	s.jwtHelper = jwtHelper.NewJWTTestHelper(s.DB, s.Config.JWT)
}

func (s *depositSuite) submitBody() request.SubmitDepositRequest {
	return request.SubmitDepositRequest{
		AmountGHS:   50,
		PhoneNumber: "0244123456",
		Network:     "mtn",
	}
}

// stubMomo wires a gateway stub that issues one fixed reference and then
// reports the given status on checks.
func (s *depositSuite) stubMomo(reference string, requiresOtp bool, checkStatus string, amount float64, otpAccepted bool) {
	s.Momo.SetHandler(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/deposits":
			_ = json.NewEncoder(w).Encode(map[string]any{
				"success":      true,
				"requires_otp": requiresOtp,
				"reference":    reference,
			})
		case r.Method == http.MethodPost && r.URL.Path == "/deposits/otp":
			if otpAccepted {
				_ = json.NewEncoder(w).Encode(map[string]any{"success": true})
				return
			}
			_ = json.NewEncoder(w).Encode(map[string]any{"success": false, "message": "invalid otp"})
		default:
			_ = json.NewEncoder(w).Encode(map[string]any{
				"success": true,
				"data":    map[string]any{"status": checkStatus, "amount": amount},
			})
		}
	})
}

func (s *depositSuite) TestDepositLifecycle() {
	s.Run("deposit without OTP completes and credits the wallet", func() {
		userID := s.jwtHelper.CreateTestUser(s.T(), "0244000001", string(user.RoleCustomer))
		token := s.jwtHelper.LoginUser(s.T(), s.Router, "0244000001", "password123")
		s.stubMomo("DEP-E2E-1", false, "completed", 49.5, true)

		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, depositsURL, s.submitBody(), token)

		var created resdto.SubmitDepositResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &created)
		s.Equal("DEP-E2E-1", created.Deposit.Reference)
		s.Equal("awaiting_approval", created.Deposit.State)
		s.False(created.RequiresOtp)

		rec = httptest.PerformRequest(s.T(), s.Router, http.MethodPost, depositsURL+"/DEP-E2E-1/check", nil, token)

		var checked resdto.DepositResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &checked)
		s.Equal("completed", checked.State)
		s.Require().NotNil(checked.SettledAmountGHS)
		s.InDelta(49.5, *checked.SettledAmountGHS, 0.0001)

		s.Equal(int64(4950), dbtest.WalletBalance(s.T(), s.DB, userID))
	})

	s.Run("deposit with OTP requires the code before settlement", func() {
		s.jwtHelper.CreateTestUser(s.T(), "0244000002", string(user.RoleCustomer))
		token := s.jwtHelper.LoginUser(s.T(), s.Router, "0244000002", "password123")
		s.stubMomo("DEP-E2E-2", true, "completed", 50, true)

		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, depositsURL, s.submitBody(), token)

		var created resdto.SubmitDepositResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &created)
		s.Equal("otp_pending", created.Deposit.State)
		s.True(created.RequiresOtp)

		// Checking before the OTP is verified is rejected.
		rec = httptest.PerformRequest(s.T(), s.Router, http.MethodPost, depositsURL+"/DEP-E2E-2/check", nil, token)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "OTP")

		rec = httptest.PerformRequest(s.T(), s.Router, http.MethodPost, depositsURL+"/DEP-E2E-2/otp",
			request.SubmitOtpRequest{OtpCode: "123456"}, token)

		var verified resdto.DepositResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &verified)
		s.Equal("awaiting_approval", verified.State)

		rec = httptest.PerformRequest(s.T(), s.Router, http.MethodPost, depositsURL+"/DEP-E2E-2/check", nil, token)

		var checked resdto.DepositResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &checked)
		s.Equal("completed", checked.State)
	})

	s.Run("repeated wrong OTP codes abandon the deposit", func() {
		s.jwtHelper.CreateTestUser(s.T(), "0244000003", string(user.RoleCustomer))
		token := s.jwtHelper.LoginUser(s.T(), s.Router, "0244000003", "password123")
		s.stubMomo("DEP-E2E-3", true, "processing", 0, false)

		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, depositsURL, s.submitBody(), token)
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, nil)

		body := request.SubmitOtpRequest{OtpCode: "000000"}
		for attempt := 1; attempt < 5; attempt++ {
			rec = httptest.PerformRequest(s.T(), s.Router, http.MethodPost, depositsURL+"/DEP-E2E-3/otp", body, token)
			httptest.AssertErrorResponse(s.T(), rec, http.StatusUnprocessableEntity, "rejected")
		}

		// Fifth failure exhausts the attempt ceiling.
		rec = httptest.PerformRequest(s.T(), s.Router, http.MethodPost, depositsURL+"/DEP-E2E-3/otp", body, token)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnprocessableEntity, "Too many failed OTP attempts")

		rec = httptest.PerformRequest(s.T(), s.Router, http.MethodGet, depositsURL+"/DEP-E2E-3", nil, token)

		var view resdto.DepositResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &view)
		s.Equal("failed", view.State)
	})

	s.Run("exhausted status checks park the deposit as pending", func() {
		s.jwtHelper.CreateTestUser(s.T(), "0244000004", string(user.RoleCustomer))
		token := s.jwtHelper.LoginUser(s.T(), s.Router, "0244000004", "password123")
		s.stubMomo("DEP-E2E-4", false, "processing", 0, true)

		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, depositsURL, s.submitBody(), token)
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, nil)

		var view resdto.DepositResponse
		for check := 1; check <= 10; check++ {
			rec = httptest.PerformRequest(s.T(), s.Router, http.MethodPost, depositsURL+"/DEP-E2E-4/check", nil, token)
			httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &view)
			if check < 10 {
				s.Equal("awaiting_approval", view.State, fmt.Sprintf("check %d", check))
			}
		}
		s.Equal("pending", view.State)

		// Once parked, checks replay the stored view without hitting the gateway.
		rec = httptest.PerformRequest(s.T(), s.Router, http.MethodPost, depositsURL+"/DEP-E2E-4/check", nil, token)
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &view)
		s.Equal("pending", view.State)
	})

	s.Run("idempotency key replays the original deposit", func() {
		s.jwtHelper.CreateTestUser(s.T(), "0244000005", string(user.RoleCustomer))
		token := s.jwtHelper.LoginUser(s.T(), s.Router, "0244000005", "password123")
		s.stubMomo("DEP-E2E-5", false, "processing", 0, true)

		key := uuid.NewString()
		headers := map[string]string{"Idempotency-Key": key}

		rec := httptest.PerformRequestWithHeaders(s.T(), s.Router, http.MethodPost, depositsURL, s.submitBody(), headers, token)
		var first resdto.SubmitDepositResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &first)

		rec = httptest.PerformRequestWithHeaders(s.T(), s.Router, http.MethodPost, depositsURL, s.submitBody(), headers, token)
		var replayed resdto.SubmitDepositResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &replayed)
		s.Equal(first.Deposit.Reference, replayed.Deposit.Reference)

		// A different payload under the same key is refused.
		altered := s.submitBody()
		altered.AmountGHS = 75
		rec = httptest.PerformRequestWithHeaders(s.T(), s.Router, http.MethodPost, depositsURL, altered, headers, token)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "")
	})

	s.Run("deposits are invisible to other users", func() {
		s.jwtHelper.CreateTestUser(s.T(), "0244000006", string(user.RoleCustomer))
		ownerToken := s.jwtHelper.LoginUser(s.T(), s.Router, "0244000006", "password123")
		s.stubMomo("DEP-E2E-6", false, "processing", 0, true)

		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, depositsURL, s.submitBody(), ownerToken)
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, nil)

		otherToken := s.jwtHelper.CreateAndLogin(s.T(), s.Router, "0244000007", string(user.RoleCustomer))
		rec = httptest.PerformRequest(s.T(), s.Router, http.MethodGet, depositsURL+"/DEP-E2E-6", nil, otherToken)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "")
	})

	s.Run("requests without a token are rejected", func() {
		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodGet, depositsURL, nil, "")
		s.Equal(http.StatusUnauthorized, rec.Code)
	})
}
