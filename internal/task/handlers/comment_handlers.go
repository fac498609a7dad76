package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/lutfiEmre/todolist/internal/task/dto"
	"github.com/lutfiEmre/todolist/internal/task/models"
)

// httpListComments answers an empty list when taskId is missing or not a number.
func (h *TaskHandlers) httpListComments(c *gin.Context) {
	taskID, err := strconv.ParseInt(c.Query("taskId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusOK, []*models.Comment{})
		return
	}

	comments, err := h.service.ListComments(c.Request.Context(), taskID)
	if err != nil {
		writeError(c, h.logger, err, "")
		return
	}
	c.JSON(http.StatusOK, comments)
}

func (h *TaskHandlers) httpCreateComment(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		badRequest(c, "failed to read body")
		return
	}
	comment, err := dto.DecodeComment(body)
	if err != nil {
		badRequest(c, err.Error())
		return
	}

	created, err := h.service.CreateComment(c.Request.Context(), comment)
	if err != nil {
		writeError(c, h.logger, err, "")
		return
	}
	c.JSON(http.StatusCreated, created)
}
