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

type InterestRateHandler struct {
	service rates.InterestRateServiceInterface
}

func NewInterestRateHandler(service rates.InterestRateServiceInterface) *InterestRateHandler {
	return &InterestRateHandler{
		service: service,
	}
}

func (h *InterestRateHandler) ListInterestRates(c *gin.Context) {
	list, err := h.service.ListInterestRates(c.Request.Context())
	if err != nil {
		respondError(c, log_messages.ErrorFetchingInterestRates, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *InterestRateHandler) CreateInterestRate(c *gin.Context) {
	var req models.InterestRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.CtxWarn(c.Request.Context(), log_messages.InvalidRequestBody)
		c.JSON(http.StatusBadRequest, models.MessageResponse{Message: consts.MsgMalformedRequestBody})
		return
	}

	created, err := h.service.CreateInterestRate(c.Request.Context(), req)
	if err != nil {
		respondError(c, log_messages.ErrorCreatingInterestRate, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *InterestRateHandler) UpdateInterestRate(c *gin.Context) {
	var req models.InterestRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.CtxWarn(c.Request.Context(), log_messages.InvalidRequestBody)
		c.JSON(http.StatusBadRequest, models.MessageResponse{Message: consts.MsgMalformedRequestBody})
		return
	}

	updated, err := h.service.UpdateInterestRate(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, log_messages.ErrorUpdatingInterestRate, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *InterestRateHandler) DeleteInterestRate(c *gin.Context) {
	if err := h.service.DeleteInterestRate(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, log_messages.ErrorDeletingInterestRate, err)
		return
	}
	c.JSON(http.StatusOK, models.MessageResponse{Message: consts.MsgInterestRateDeleted})
}
