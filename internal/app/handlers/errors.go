package handlers

import (
	"errors"
	"net/http"

	"pawn-ledger/internal/pkg/consts"
	"pawn-ledger/internal/pkg/logger"
	"pawn-ledger/internal/pkg/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func statusForError(err error) int {
	switch {
	case models.IsValidationError(err):
		return http.StatusBadRequest
	case models.IsNotFoundError(err):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes {message}. Store failures are logged in full and the
// caller only sees a generic message.
func respondError(c *gin.Context, logMsg string, err error) {
	status := statusForError(err)
	if status == http.StatusInternalServerError {
		logger.CtxError(c.Request.Context(), logMsg, err,
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
		)
		c.JSON(status, models.MessageResponse{Message: consts.MsgServerError})
		return
	}
	c.JSON(status, models.MessageResponse{Message: publicMessage(err)})
}

func publicMessage(err error) string {
	var ce *models.CustomError
	if errors.As(err, &ce) {
		return ce.Message
	}
	return consts.MsgServerError
}
