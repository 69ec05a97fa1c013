package handlers

import (
	"net/http"

	"pawn-ledger/internal/pkg/consts"
	"pawn-ledger/internal/pkg/log_messages"
	"pawn-ledger/internal/pkg/logger"
	"pawn-ledger/internal/pkg/models"
	"pawn-ledger/internal/service/ledger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type LedgerHandler struct {
	service ledger.LedgerServiceInterface
}

func NewLedgerHandler(service ledger.LedgerServiceInterface) *LedgerHandler {
	return &LedgerHandler{
		service: service,
	}
}

// GetLedger serves GET /ledger?date=YYYY-MM-DD. The day is materialized on
// first read.
func (h *LedgerHandler) GetLedger(c *gin.Context) {
	ctx := c.Request.Context()
	raw := c.Query("date")

	day, err := h.service.ParseQueryDate(raw)
	if err != nil {
		logger.CtxWarn(ctx, log_messages.InvalidLedgerDate, zap.String("date", raw))
		c.JSON(http.StatusBadRequest, models.LedgerErrorResponse{
			Success: false,
			Message: consts.MsgInvalidLedgerDate,
			Error:   err.Error(),
		})
		return
	}

	view, err := h.service.GetLedgerView(ctx, day)
	if err != nil {
		logger.CtxError(ctx, log_messages.ErrorBuildingLedgerView, err, zap.String("date", raw))
		c.JSON(http.StatusInternalServerError, models.LedgerErrorResponse{
			Success: false,
			Message: consts.MsgLedgerFetchFailed,
			Error:   publicMessage(err),
		})
		return
	}

	c.JSON(http.StatusOK, models.LedgerResponse{Success: true, LedgerView: view})
}
