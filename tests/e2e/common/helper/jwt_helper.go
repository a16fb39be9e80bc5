//go:build e2e

package helper

import (
	"net/http"
	"testing"
	"time"

	"bundlemart-api/internal/domain/user"
	"bundlemart-api/internal/handler/dto/request"
	"bundlemart-api/internal/pkg/config"
	"bundlemart-api/internal/pkg/jwt"
	"bundlemart-api/tests/common/dbtest"
	"bundlemart-api/tests/common/httptest"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

type JWTTestHelper struct {
	pool *pgxpool.Pool
	cfg  config.JWTConfig
}

func NewJWTTestHelper(pool *pgxpool.Pool, cfg config.JWTConfig) *JWTTestHelper {
	return &JWTTestHelper{pool: pool, cfg: cfg}
}

func (h *JWTTestHelper) CreateTestUser(t *testing.T, phoneNumber, role string) uuid.UUID {
	t.Helper()
	return dbtest.CreateTestUser(t, h.pool, phoneNumber, role)
}

func (h *JWTTestHelper) LoginUser(t *testing.T, router *gin.Engine, phoneNumber, password string) string {
	t.Helper()

	w := httptest.PerformRequest(t, router, http.MethodPost, "/api/auth/login",
		request.LoginRequest{PhoneNumber: phoneNumber, Password: password}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var response struct {
		Token string `json:"token"`
	}
	require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &response))
	require.NotEmpty(t, response.Token, "token not found in login response")

	return response.Token
}

func (h *JWTTestHelper) CreateAndLogin(t *testing.T, router *gin.Engine, phoneNumber, role string) string {
	t.Helper()
	h.CreateTestUser(t, phoneNumber, role)
	return h.LoginUser(t, router, phoneNumber, "password123")
}

func (h *JWTTestHelper) GenerateToken(t *testing.T, userID uuid.UUID, role user.Role) string {
	t.Helper()
	duration, _ := time.ParseDuration(h.cfg.Duration)
	service := jwt.NewService(h.cfg.Secret, duration)
	token, err := service.GenerateToken(userID, role)
	require.NoError(t, err)
	return token
}

func (h *JWTTestHelper) CreateExpiredToken(t *testing.T, userID uuid.UUID, role user.Role) string {
	t.Helper()
	service := jwt.NewService(h.cfg.Secret, 1*time.Millisecond)
	token, err := service.GenerateToken(userID, role)
	require.NoError(t, err)
	time.Sleep(10 * time.Millisecond)
	return token
}
