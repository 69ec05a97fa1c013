package handlers

import (
	"net/http"

	"pawn-ledger/internal/pkg/consts"
	"pawn-ledger/internal/pkg/models"

	"github.com/gin-gonic/gin"
)

type HealthCheckHandler struct{}

func NewHealthCheckHandler() *HealthCheckHandler {
	return &HealthCheckHandler{}
}

func (h *HealthCheckHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, models.MessageResponse{Message: consts.MsgHealthCheck})
}
