//go:build unit

package api_test

import (
	"errors"
	"net/http"
	"testing"

	"bundlemart-api/internal/handler/api"
	reqdto "bundlemart-api/internal/handler/dto/request"
	resdto "bundlemart-api/internal/handler/dto/response"
	"bundlemart-api/internal/usecase/commands"
	"bundlemart-api/internal/usecase/queries"
	"bundlemart-api/tests/common/builder"
	"bundlemart-api/tests/common/httptest"
	"bundlemart-api/tests/common/testutil"
	commandsmock "bundlemart-api/tests/mock/commands"
	queriesmock "bundlemart-api/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type DepositHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockDepositCommands
	mockQueries  *queriesmock.MockDepositQueries
	handler      *api.DepositHandler
	userID       uuid.UUID
}

func (s *DepositHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockDepositCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockDepositQueries(s.mockCtrl)
	s.handler = api.NewDepositHandler(s.mockCommands, s.mockQueries)
	s.userID = uuid.New()

	// Mock middleware behavior: an authenticated customer on every route.
	authed := func(h gin.HandlerFunc) gin.HandlerFunc {
		return func(c *gin.Context) {
			c.Set("user_id", s.userID)
			h(c)
		}
	}
	s.router.POST("/deposits", authed(s.handler.SubmitDeposit))
	s.router.GET("/deposits", authed(s.handler.ListDeposits))
	s.router.GET("/deposits/:reference", authed(s.handler.GetDeposit))
	s.router.POST("/deposits/:reference/otp", authed(s.handler.SubmitOtp))
	s.router.POST("/deposits/:reference/check", authed(s.handler.CheckStatus))
}

func (s *DepositHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestDepositHandlerSuite(t *testing.T) {
	suite.Run(t, new(DepositHandlerTestSuite))
}

func (s *DepositHandlerTestSuite) depositView(reference string, requiresOtp bool) queries.DepositView {
	view, err := builder.NewDepositBuilder().WithUserID(s.userID).BuildView(reference, requiresOtp)
	s.Require().NoError(err)
	return view
}

func (s *DepositHandlerTestSuite) TestSubmitDeposit() {
	url := "/deposits"
	reqBody := reqdto.SubmitDepositRequest{
		AmountGHS:   50,
		PhoneNumber: "0244123456",
		Network:     "mtn",
	}

	s.Run("success: returns 201 Created for a new deposit", func() {
		view := s.depositView("DEP-100", true)
		s.mockCommands.EXPECT().SubmitDeposit(gomock.Any(), reqBody, s.userID, nil).
			Return(&commands.SubmitDepositResult{
				Deposit:     view,
				RequiresOtp: true,
				Message:     "Enter the OTP sent to your phone",
			}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")

		var response resdto.SubmitDepositResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &response)
		s.Equal("DEP-100", response.Deposit.Reference)
		s.True(response.RequiresOtp)
	})

	s.Run("success: replayed idempotent request returns 200 OK", func() {
		key := uuid.New()
		view := s.depositView("DEP-100", false)
		s.mockCommands.EXPECT().SubmitDeposit(gomock.Any(), reqBody, s.userID, &key).
			Return(&commands.SubmitDepositResult{Deposit: view, IsReplayed: true}, nil).Times(1)

		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, url, reqBody,
			map[string]string{"Idempotency-Key": key.String()}, "")

		var response resdto.SubmitDepositResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal("DEP-100", response.Deposit.Reference)
	})

	s.Run("error: 400 Bad Request on malformed idempotency key", func() {
		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, url, reqBody,
			map[string]string{"Idempotency-Key": "not-a-uuid"}, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "idempotency key")
	})

	s.Run("error: 400 Bad Request on validation errors", func() {
		testCases := []struct {
			name   string
			mutate func(m map[string]any)
		}{
			{name: "missing amount", mutate: testutil.Field("amount_ghs", nil)},
			{name: "zero amount", mutate: testutil.Field("amount_ghs", 0)},
			{name: "missing phone number", mutate: testutil.Field("phone_number", nil)},
			{name: "unknown network", mutate: testutil.Field("network", "orange")},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				requestMap := testutil.DtoMap(s.T(), reqBody, tc.mutate)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, requestMap, "")
				httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
			})
		}
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		testCases := []struct {
			name           string
			commandsError  error
			expectedStatus int
		}{
			{name: "domain validation", commandsError: commands.ErrDomainValidation, expectedStatus: http.StatusUnprocessableEntity},
			{name: "gateway rejected", commandsError: commands.ErrDepositRejected, expectedStatus: http.StatusUnprocessableEntity},
			{name: "gateway unavailable", commandsError: commands.ErrGatewayUnavailable, expectedStatus: http.StatusBadGateway},
			{name: "idempotency in progress", commandsError: commands.ErrIdempotencyInProgress, expectedStatus: http.StatusConflict},
			{name: "idempotency key reused", commandsError: commands.ErrIdempotencyKeyReused, expectedStatus: http.StatusConflict},
			{name: "unexpected failure", commandsError: errors.New("database error"), expectedStatus: http.StatusInternalServerError},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().SubmitDeposit(gomock.Any(), reqBody, s.userID, nil).
					Return(nil, tc.commandsError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, "")
			})
		}
	})
}

func (s *DepositHandlerTestSuite) TestSubmitOtp() {
	url := "/deposits/DEP-100/otp"
	reqBody := reqdto.SubmitOtpRequest{OtpCode: "123456"}

	s.Run("success: returns 200 OK when the code is accepted", func() {
		view := s.depositView("DEP-100", true)
		s.mockCommands.EXPECT().SubmitOtp(gomock.Any(), "DEP-100", reqBody, s.userID).
			Return(&view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")

		var response resdto.DepositResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal("DEP-100", response.Reference)
	})

	s.Run("error: 422 with deposit payload when the code is rejected", func() {
		view := s.depositView("DEP-100", true)
		s.mockCommands.EXPECT().SubmitOtp(gomock.Any(), "DEP-100", reqBody, s.userID).
			Return(&view, commands.ErrOtpRejected).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")

		var response struct {
			Error   string                 `json:"error"`
			Deposit resdto.DepositResponse `json:"deposit"`
		}
		s.Equal(http.StatusUnprocessableEntity, rec.Code)
		s.NoError(httptest.DecodeResponseBody(s.T(), rec.Body, &response))
		s.Contains(response.Error, "rejected")
		s.Equal("DEP-100", response.Deposit.Reference)
	})

	s.Run("error: 422 when the attempt ceiling is exhausted", func() {
		view := s.depositView("DEP-100", true)
		s.mockCommands.EXPECT().SubmitOtp(gomock.Any(), "DEP-100", reqBody, s.userID).
			Return(&view, commands.ErrOtpAbandoned).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnprocessableEntity, "Too many failed OTP attempts")
	})

	s.Run("error: 404 Not Found for an unknown reference", func() {
		s.mockCommands.EXPECT().SubmitOtp(gomock.Any(), "DEP-100", reqBody, s.userID).
			Return(nil, commands.ErrDepositNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "not found")
	})

	s.Run("error: 400 Bad Request on malformed code", func() {
		requestMap := testutil.DtoMap(s.T(), reqBody, testutil.Field("otp_code", "12345"))
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, requestMap, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
	})
}

func (s *DepositHandlerTestSuite) TestCheckStatus() {
	url := "/deposits/DEP-100/check"

	s.Run("success: returns 200 OK with the refreshed deposit", func() {
		view := s.depositView("DEP-100", false)
		s.mockCommands.EXPECT().CheckStatus(gomock.Any(), "DEP-100", s.userID).
			Return(&view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "")

		var response resdto.DepositResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal("DEP-100", response.Reference)
	})

	s.Run("error: 409 Conflict while OTP verification is pending", func() {
		s.mockCommands.EXPECT().CheckStatus(gomock.Any(), "DEP-100", s.userID).
			Return(nil, commands.ErrOtpRequired).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "OTP")
	})

	s.Run("error: 502 Bad Gateway when the gateway is unreachable", func() {
		s.mockCommands.EXPECT().CheckStatus(gomock.Any(), "DEP-100", s.userID).
			Return(nil, commands.ErrGatewayUnavailable).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadGateway, "")
	})
}

func (s *DepositHandlerTestSuite) TestGetDeposit() {
	s.Run("success: returns 200 OK with the deposit", func() {
		view := s.depositView("DEP-100", false)
		s.mockQueries.EXPECT().GetByReference(gomock.Any(), s.userID, "DEP-100").
			Return(&view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/deposits/DEP-100", nil, "")

		var response resdto.DepositResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal("DEP-100", response.Reference)
	})

	s.Run("error: 404 Not Found for another user's deposit", func() {
		s.mockQueries.EXPECT().GetByReference(gomock.Any(), s.userID, "DEP-100").
			Return(nil, queries.ErrDepositNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/deposits/DEP-100", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "not found")
	})
}

func (s *DepositHandlerTestSuite) TestListDeposits() {
	s.Run("success: returns the user's history newest first", func() {
		first := s.depositView("DEP-101", false)
		second := s.depositView("DEP-100", false)
		s.mockQueries.EXPECT().ListByUser(gomock.Any(), s.userID, 50).
			Return([]queries.DepositView{first, second}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/deposits", nil, "")

		var response []resdto.DepositResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Require().Len(response, 2)
		s.Equal("DEP-101", response[0].Reference)
		s.Equal("DEP-100", response[1].Reference)
	})
}
