package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apperrors "github.com/lutfiEmre/todolist/internal/common/errors"
	"github.com/lutfiEmre/todolist/internal/common/logger"
	"github.com/lutfiEmre/todolist/internal/task/dto"
)

// writeError maps err onto a status code and an {"error": ...} body.
// notFoundMsg replaces the message of not found errors.
func writeError(c *gin.Context, log *logger.Logger, err error, notFoundMsg string) {
	status := apperrors.GetHTTPStatus(err)
	_ = c.Error(err)

	switch {
	case status == http.StatusNotFound && notFoundMsg != "":
		c.JSON(status, dto.ErrorResponse{Error: notFoundMsg})
	case status >= http.StatusInternalServerError:
		log.WithContext(c.Request.Context()).Error("request failed",
			zap.String("path", c.FullPath()),
			zap.Error(err))
		c.JSON(status, dto.ErrorResponse{Error: apperrors.PublicMessage(err)})
	default:
		c.JSON(status, dto.ErrorResponse{Error: apperrors.PublicMessage(err)})
	}
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: msg})
}
