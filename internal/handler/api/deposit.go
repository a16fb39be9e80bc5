package api

import (
	"errors"
	"net/http"

	reqdto "bundlemart-api/internal/handler/dto/request"
	resdto "bundlemart-api/internal/handler/dto/response"
	"bundlemart-api/internal/handler/middleware"
	"bundlemart-api/internal/usecase/commands"
	"bundlemart-api/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const defaultHistoryLimit = 50

type DepositHandler struct {
	depositCommands commands.DepositCommands
	depositQueries  queries.DepositQueries
}

func NewDepositHandler(depositCommands commands.DepositCommands, depositQueries queries.DepositQueries) *DepositHandler {
	return &DepositHandler{
		depositCommands: depositCommands,
		depositQueries:  depositQueries,
	}
}

// @Summary Submit deposit
// @Description Start a mobile-money deposit through the payment gateway
// @Tags deposits
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param Idempotency-Key header string false "Idempotency key for duplicate prevention"
// @Param request body reqdto.SubmitDepositRequest true "Deposit request"
// @Success 201 {object} resdto.SubmitDepositResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Router /deposits [post]
func (h *DepositHandler) SubmitDeposit(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	idempotencyKey, err := optionalIdempotencyKey(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid idempotency key format",
		})
		return
	}

	var req reqdto.SubmitDepositRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	result, err := h.depositCommands.SubmitDeposit(c.Request.Context(), req, userID, idempotencyKey)
	if err != nil {
		h.respondDepositError(c, err)
		return
	}

	status := http.StatusCreated
	if result.IsReplayed {
		status = http.StatusOK
	}
	c.JSON(status, resdto.SubmitDepositResponse{
		Deposit:     resdto.FromDepositView(result.Deposit),
		RequiresOtp: result.RequiresOtp,
		Message:     result.Message,
	})
}

// @Summary Submit OTP
// @Description Verify the one-time passcode for a deposit
// @Tags deposits
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param reference path string true "Deposit reference"
// @Param request body reqdto.SubmitOtpRequest true "OTP code"
// @Success 200 {object} resdto.DepositResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Router /deposits/{reference}/otp [post]
func (h *DepositHandler) SubmitOtp(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	var req reqdto.SubmitOtpRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	view, err := h.depositCommands.SubmitOtp(c.Request.Context(), c.Param("reference"), req, userID)
	if err != nil {
		// Rejected and abandoned submissions still carry the updated deposit.
		switch {
		case errors.Is(err, commands.ErrOtpRejected):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "OTP code was rejected",
				"deposit": resdto.FromDepositView(*view),
			})
		case errors.Is(err, commands.ErrOtpAbandoned):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "Too many failed OTP attempts, deposit failed",
				"deposit": resdto.FromDepositView(*view),
			})
		default:
			h.respondDepositError(c, err)
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromDepositView(*view))
}

// @Summary Check deposit status
// @Description Ask the payment gateway for the current status of a deposit
// @Tags deposits
// @Produce json
// @Security BearerAuth
// @Param reference path string true "Deposit reference"
// @Success 200 {object} resdto.DepositResponse
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Router /deposits/{reference}/check [post]
func (h *DepositHandler) CheckStatus(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	view, err := h.depositCommands.CheckStatus(c.Request.Context(), c.Param("reference"), userID)
	if err != nil {
		h.respondDepositError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromDepositView(*view))
}

// @Summary Get deposit
// @Description Get one deposit by reference
// @Tags deposits
// @Produce json
// @Security BearerAuth
// @Param reference path string true "Deposit reference"
// @Success 200 {object} resdto.DepositResponse
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /deposits/{reference} [get]
func (h *DepositHandler) GetDeposit(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	view, err := h.depositQueries.GetByReference(c.Request.Context(), userID, c.Param("reference"))
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrDepositNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Deposit not found",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromDepositView(*view))
}

// @Summary List deposits
// @Description List the authenticated user's deposits, newest first
// @Tags deposits
// @Produce json
// @Security BearerAuth
// @Success 200 {array} resdto.DepositResponse
// @Failure 401 {object} map[string]string
// @Router /deposits [get]
func (h *DepositHandler) ListDeposits(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	views, err := h.depositQueries.ListByUser(c.Request.Context(), userID, defaultHistoryLimit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.FromDepositViews(views))
}

func (h *DepositHandler) respondDepositError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, commands.ErrDepositNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Deposit not found",
		})
	case errors.Is(err, commands.ErrDomainValidation):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": "Invalid deposit parameters",
		})
	case errors.Is(err, commands.ErrDepositRejected):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": "Deposit was rejected by the payment gateway",
		})
	case errors.Is(err, commands.ErrOtpRequired):
		c.JSON(http.StatusConflict, gin.H{
			"error": "OTP verification is still pending",
		})
	case errors.Is(err, commands.ErrInvalidDepositState):
		c.JSON(http.StatusConflict, gin.H{
			"error": "Deposit is not in a state that allows this operation",
		})
	case errors.Is(err, commands.ErrIdempotencyInProgress):
		c.JSON(http.StatusConflict, gin.H{
			"error": "Request with this idempotency key is still processing",
		})
	case errors.Is(err, commands.ErrIdempotencyKeyReused):
		c.JSON(http.StatusConflict, gin.H{
			"error": "Idempotency key was already used with a different request",
		})
	case errors.Is(err, commands.ErrGatewayUnavailable):
		c.JSON(http.StatusBadGateway, gin.H{
			"error": "Payment gateway is unavailable, try again shortly",
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
	}
}

func optionalIdempotencyKey(c *gin.Context) (*uuid.UUID, error) {
	keyStr := c.GetHeader("Idempotency-Key")
	if keyStr == "" {
		return nil, nil
	}

	key, err := uuid.Parse(keyStr)
	if err != nil {
		return nil, err
	}
	return &key, nil
}
