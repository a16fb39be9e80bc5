package api

import (
	"errors"
	"net/http"

	reqdto "bundlemart-api/internal/handler/dto/request"
	resdto "bundlemart-api/internal/handler/dto/response"
	"bundlemart-api/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	dispatchCommands commands.DispatchCommands
}

func NewNotificationHandler(dispatchCommands commands.DispatchCommands) *NotificationHandler {
	return &NotificationHandler{
		dispatchCommands: dispatchCommands,
	}
}

// @Summary Dispatch notifications
// @Description Send a batch of SMS messages and report how many succeeded (admin only)
// @Tags notifications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.DispatchRequest true "Messages to send"
// @Success 200 {object} resdto.DispatchResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /notifications/dispatch [post]
func (h *NotificationHandler) Dispatch(c *gin.Context) {
	var req reqdto.DispatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	result, err := h.dispatchCommands.RunDispatch(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrInvalidRecipient):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "One or more recipient phone numbers are invalid",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.DispatchResponse{
		Success: result.Success,
		Failed:  result.Failed,
	})
}
