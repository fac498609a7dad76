// Package handlers exposes the board service over HTTP.
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/lutfiEmre/todolist/internal/common/logger"
	"github.com/lutfiEmre/todolist/internal/task/dto"
	"github.com/lutfiEmre/todolist/internal/task/models"
	"github.com/lutfiEmre/todolist/internal/task/service"
)

// TaskHandlers serves the task and comment endpoints.
type TaskHandlers struct {
	service *service.Service
	logger  *logger.Logger
}

// NewTaskHandlers creates a new TaskHandlers instance
func NewTaskHandlers(svc *service.Service, log *logger.Logger) *TaskHandlers {
	return &TaskHandlers{
		service: svc,
		logger:  log.WithFields(zap.String("component", "task-handlers")),
	}
}

// RegisterTaskRoutes mounts the board API under /api.
func RegisterTaskRoutes(router *gin.Engine, svc *service.Service, log *logger.Logger) {
	h := NewTaskHandlers(svc, log)
	h.registerHTTP(router)
}

func (h *TaskHandlers) registerHTTP(router *gin.Engine) {
	api := router.Group("/api")
	api.GET("/tasks", h.httpListTasks)
	api.POST("/tasks", h.httpCreateTask)
	api.PATCH("/tasks", h.httpPatchTask)
	api.PUT("/tasks", h.httpPatchTask)
	api.DELETE("/tasks", h.httpDeleteTask)
	api.PUT("/tasks/order", h.httpReorderColumn)
	api.GET("/tasks/comments", h.httpListComments)
	api.POST("/tasks/comments", h.httpCreateComment)
}

func (h *TaskHandlers) httpListTasks(c *gin.Context) {
	var status *models.Status
	if raw := c.Query("status"); raw != "" {
		s := models.Status(raw)
		status = &s
	}

	tasks, err := h.service.ListTasks(c.Request.Context(), status)
	if err != nil {
		writeError(c, h.logger, err, "")
		return
	}
	c.JSON(http.StatusOK, tasks)
}

func (h *TaskHandlers) httpCreateTask(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		badRequest(c, "failed to read body")
		return
	}
	task, err := dto.DecodeTask(body)
	if err != nil {
		badRequest(c, err.Error())
		return
	}

	created, err := h.service.CreateTask(c.Request.Context(), task)
	if err != nil {
		writeError(c, h.logger, err, "")
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *TaskHandlers) httpPatchTask(c *gin.Context) {
	id, ok := queryID(c, "id")
	if !ok {
		return
	}
	body, err := c.GetRawData()
	if err != nil {
		badRequest(c, "failed to read body")
		return
	}
	patch, err := dto.DecodeTaskPatch(body)
	if err != nil {
		badRequest(c, err.Error())
		return
	}

	task, err := h.service.PatchTask(c.Request.Context(), id, patch)
	if err != nil {
		writeError(c, h.logger, err, "Task not found")
		return
	}
	c.JSON(http.StatusOK, task)
}

func (h *TaskHandlers) httpDeleteTask(c *gin.Context) {
	id, ok := queryID(c, "id")
	if !ok {
		return
	}
	if err := h.service.DeleteTask(c.Request.Context(), id); err != nil {
		writeError(c, h.logger, err, "")
		return
	}
	c.JSON(http.StatusOK, dto.DeleteResponse{Success: true})
}

func (h *TaskHandlers) httpReorderColumn(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		badRequest(c, "failed to read body")
		return
	}
	req, err := dto.DecodeReorder(body)
	if err != nil {
		badRequest(c, err.Error())
		return
	}

	if err := h.service.ReorderColumn(c.Request.Context(), req.Status, req.OrderedIDs); err != nil {
		writeError(c, h.logger, err, "")
		return
	}
	c.JSON(http.StatusOK, dto.ReorderResponse{OK: true})
}

// queryID parses a required integer query parameter, answering 400 itself when it cannot.
func queryID(c *gin.Context, name string) (int64, bool) {
	raw := c.Query(name)
	if raw == "" {
		badRequest(c, name+" is required")
		return 0, false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		badRequest(c, name+" must be an integer")
		return 0, false
	}
	return id, true
}
