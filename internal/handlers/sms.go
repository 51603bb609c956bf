package handlers

import (
	"errors"
	"net/http"

	"farmwatch/internal/service"

	"github.com/gin-gonic/gin"
)

// @Summary      SMS layer status
// @Description  Returns the alerting configuration and the per-category dedup state.
// @Tags         sms
// @Produce      json
// @Success      200  {object}  service.AlertingStatus
// @Router       /sms/status [get]
func (h *Handler) smsStatus(c *gin.Context) {
	c.JSON(http.StatusOK, h.services.Status())
}

// @Summary      Send a test SMS
// @Description  Delivers a test message to the configured recipient, bypassing dedup.
// @Tags         sms
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      502  {object}  map[string]string
// @Failure      503  {object}  map[string]string
// @Router       /sms/test [post]
func (h *Handler) smsTest(c *gin.Context) {
	res, err := h.services.SendTest(c.Request.Context())
	if err != nil {
		if errors.Is(err, service.ErrAlertingDisabled) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
			return
		}
		if h.log != nil {
			h.log.Errorw("sms_test_failed", "err", err)
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to send test sms"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status": "sent",
		"result": res,
	})
}
