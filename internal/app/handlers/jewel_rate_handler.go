package handlers

import (
	"net/http"

	"pawn-ledger/internal/pkg/consts"
	"pawn-ledger/internal/pkg/log_messages"
	"pawn-ledger/internal/pkg/logger"
	"pawn-ledger/internal/pkg/models"
	"pawn-ledger/internal/service/rates"

	"github.com/gin-gonic/gin"
)

type JewelRateHandler struct {
	service rates.JewelRateServiceInterface
}

func NewJewelRateHandler(service rates.JewelRateServiceInterface) *JewelRateHandler {
	return &JewelRateHandler{
		service: service,
	}
}

func (h *JewelRateHandler) ListJewelRates(c *gin.Context) {
	list, err := h.service.ListJewelRates(c.Request.Context())
	if err != nil {
		respondError(c, log_messages.ErrorFetchingJewelRates, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *JewelRateHandler) LatestJewelRate(c *gin.Context) {
	rate, err := h.service.LatestJewelRate(c.Request.Context(), c.Param("metalType"))
	if err != nil {
		respondError(c, log_messages.ErrorFetchingLatestJewel, err)
		return
	}
	c.JSON(http.StatusOK, rate)
}

func (h *JewelRateHandler) UpsertJewelRate(c *gin.Context) {
	var req models.JewelRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.CtxWarn(c.Request.Context(), log_messages.InvalidRequestBody)
		c.JSON(http.StatusBadRequest, models.MessageResponse{Message: consts.MsgJewelRateFieldsRequired})
		return
	}

	saved, err := h.service.UpsertJewelRate(c.Request.Context(), req)
	if err != nil {
		respondError(c, log_messages.ErrorUpsertingJewelRate, err)
		return
	}
	c.JSON(http.StatusOK, saved)
}
