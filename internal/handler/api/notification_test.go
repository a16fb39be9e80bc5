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
	"bundlemart-api/tests/common/httptest"
	commandsmock "bundlemart-api/tests/mock/commands"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type NotificationHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockDispatchCommands
	handler      *api.NotificationHandler
}

func (s *NotificationHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockDispatchCommands(s.mockCtrl)
	s.handler = api.NewNotificationHandler(s.mockCommands)

	s.router.POST("/notifications/dispatch", s.handler.Dispatch)
}

func (s *NotificationHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestNotificationHandlerSuite(t *testing.T) {
	suite.Run(t, new(NotificationHandlerTestSuite))
}

func (s *NotificationHandlerTestSuite) TestDispatch() {
	url := "/notifications/dispatch"
	reqBody := reqdto.DispatchRequest{
		Items: []reqdto.DispatchItem{
			{Recipient: "0244123456", Message: "Your order is ready", OrderRef: "ORD-01"},
			{Recipient: "0200111222", Message: "Your order is ready", OrderRef: "ORD-02"},
		},
	}

	s.Run("success: returns 200 OK with the delivery report", func() {
		s.mockCommands.EXPECT().RunDispatch(gomock.Any(), reqBody).
			Return(&commands.DispatchResult{Success: 1, Failed: 1}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")

		var response resdto.DispatchResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(1, response.Success)
		s.Equal(1, response.Failed)
	})

	s.Run("error: 400 Bad Request on an empty batch", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqdto.DispatchRequest{}, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
	})

	s.Run("error: 400 Bad Request on invalid recipients", func() {
		s.mockCommands.EXPECT().RunDispatch(gomock.Any(), reqBody).
			Return(nil, commands.ErrInvalidRecipient).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "phone")
	})

	s.Run("error: 500 on unexpected failure", func() {
		s.mockCommands.EXPECT().RunDispatch(gomock.Any(), reqBody).
			Return(nil, errors.New("sender unavailable")).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusInternalServerError, "")
	})
}
