//go:build unit

package api_test

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"bundlemart-api/internal/handler/api"
	reqdto "bundlemart-api/internal/handler/dto/request"
	resdto "bundlemart-api/internal/handler/dto/response"
	"bundlemart-api/internal/usecase/commands"
	"bundlemart-api/internal/usecase/queries"
	"bundlemart-api/tests/common/httptest"
	commandsmock "bundlemart-api/tests/mock/commands"
	queriesmock "bundlemart-api/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type BundleHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockBundleCommands
	mockQueries  *queriesmock.MockBundleQueries
	handler      *api.BundleHandler
}

func (s *BundleHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockBundleCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockBundleQueries(s.mockCtrl)
	s.handler = api.NewBundleHandler(s.mockCommands, s.mockQueries)

	s.router.GET("/bundles", s.handler.ListBundles)
	s.router.PATCH("/bundles/:id/availability", s.handler.SetAvailability)
}

func (s *BundleHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestBundleHandlerSuite(t *testing.T) {
	suite.Run(t, new(BundleHandlerTestSuite))
}

func testBundleView(name, network string) queries.BundleView {
	return queries.BundleView{
		ID:        uuid.New(),
		Name:      name,
		Network:   network,
		DataMB:    1024,
		PriceGHS:  5,
		InStock:   true,
		UpdatedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (s *BundleHandlerTestSuite) TestListBundles() {
	s.Run("success: returns 200 OK with all in-stock bundles", func() {
		views := []queries.BundleView{testBundleView("Starter 1GB", "mtn"), testBundleView("Weekly 5GB", "vodafone")}
		s.mockQueries.EXPECT().ListAvailable(gomock.Any(), nil).Return(views, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bundles", nil, "")

		var response []resdto.BundleResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Require().Len(response, 2)
		s.Equal("Starter 1GB", response[0].Name)
	})

	s.Run("success: passes the network filter through", func() {
		network := "mtn"
		s.mockQueries.EXPECT().ListAvailable(gomock.Any(), &network).
			Return([]queries.BundleView{testBundleView("Starter 1GB", "mtn")}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bundles?network=mtn", nil, "")

		var response []resdto.BundleResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Require().Len(response, 1)
		s.Equal("mtn", response[0].Network)
	})

	s.Run("error: 400 Bad Request on unknown network", func() {
		network := "orange"
		s.mockQueries.EXPECT().ListAvailable(gomock.Any(), &network).
			Return(nil, queries.ErrInvalidNetworkFilter).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bundles?network=orange", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "network")
	})
}

func (s *BundleHandlerTestSuite) TestSetAvailability() {
	inStock := false
	reqBody := reqdto.SetBundleAvailabilityRequest{InStock: &inStock}

	s.Run("success: returns 200 OK with the updated bundle", func() {
		view := testBundleView("Starter 1GB", "mtn")
		view.InStock = false
		s.mockCommands.EXPECT().SetAvailability(gomock.Any(), view.ID, false).
			Return(&view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, "/bundles/"+view.ID.String()+"/availability", reqBody, "")

		var response resdto.BundleResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.False(response.InStock)
	})

	s.Run("error: 400 Bad Request on malformed bundle ID", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, "/bundles/not-a-uuid/availability", reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
	})

	s.Run("error: 400 Bad Request when the flag is missing", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, "/bundles/"+uuid.NewString()+"/availability", map[string]any{}, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
	})

	s.Run("error: 404 Not Found for an unknown bundle", func() {
		bundleID := uuid.New()
		s.mockCommands.EXPECT().SetAvailability(gomock.Any(), bundleID, false).
			Return(nil, commands.ErrBundleNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, "/bundles/"+bundleID.String()+"/availability", reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "not found")
	})

	s.Run("error: 500 on unexpected failure", func() {
		bundleID := uuid.New()
		s.mockCommands.EXPECT().SetAvailability(gomock.Any(), bundleID, false).
			Return(nil, errors.New("database error")).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, "/bundles/"+bundleID.String()+"/availability", reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusInternalServerError, "")
	})
}
